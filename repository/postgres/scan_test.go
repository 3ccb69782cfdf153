package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	feedbacks []byte
	photos    []byte
}

func (r fakeRow) Scan(dest ...interface{}) error {
	*dest[0].(*string) = "act-1"
	*dest[1].(*string) = "P"
	*dest[2].(*string) = "Picnic"
	*dest[3].(*bool) = false
	*dest[5].(*[]byte) = r.feedbacks
	*dest[6].(*[]byte) = r.photos
	*dest[7].(*time.Time) = time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	return nil
}

func TestScanActivityDecodesJSONColumns(t *testing.T) {
	a, err := scanActivity(fakeRow{feedbacks: []byte(`[]`), photos: []byte(`["p1","p2"]`)})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, a.Photos)
	assert.Empty(t, a.Feedbacks)

	a, err = scanActivity(fakeRow{feedbacks: []byte(`[]`), photos: []byte(`[]`)})
	require.NoError(t, err)
	assert.Nil(t, a.Photos)
}

func TestScanActivityRejectsCorruptJSON(t *testing.T) {
	_, err := scanActivity(fakeRow{feedbacks: []byte(`[]`), photos: []byte(`{not json`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode photos of act-1")

	_, err = scanActivity(fakeRow{feedbacks: []byte(`{`), photos: []byte(`[]`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode feedbacks of act-1")
}
