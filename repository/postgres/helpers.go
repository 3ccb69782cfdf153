package postgres

import (
	"encoding/json"
	"time"
)

func marshalJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("[]")
	}
	return b
}

func nullTime(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}

func createdAt(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
