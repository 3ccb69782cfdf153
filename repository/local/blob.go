package local

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/alphadate/internal/infrastructure/localstore"
)

const (
	KeyPrefix      = "doublea_"
	KeyActivities  = KeyPrefix + "activities"
	KeyFeedbacks   = KeyPrefix + "feedbacks"
	KeyCurrentUser = KeyPrefix + "currentUser"
)

// blob reads and writes one JSON array under a fixed key. Every operation
// rewrites the whole array; the mutex serialises read-modify-write cycles.
type blob[T any] struct {
	store  *localstore.Store
	key    string
	logger *zap.Logger
	mu     sync.Mutex
}

func newBlob[T any](store *localstore.Store, key string, logger *zap.Logger) *blob[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &blob[T]{store: store, key: key, logger: logger}
}

// load returns the stored items. A value that cannot be decoded reads as empty.
func (b *blob[T]) load() ([]T, error) {
	raw, err := b.store.Get(b.key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		b.logger.Warn("discarding unreadable local blob", zap.String("key", b.key), zap.Error(err))
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (b *blob[T]) write(items []T) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return b.store.Put(b.key, payload)
}

// update runs fn over the current items and persists the result.
func (b *blob[T]) update(fn func(items []T) []T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load()
	if err != nil {
		return err
	}
	return b.write(fn(items))
}

func (b *blob[T]) read() ([]T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load()
}
