package local

import (
	"go.uber.org/zap"

	"github.com/fastygo/alphadate/internal/infrastructure/localstore"
	"github.com/fastygo/alphadate/repository"
)

// StoreName identifies the local-fallback backend in logs and health output.
const StoreName = "local"

// NewStore wires both local repositories over the same file.
func NewStore(store *localstore.Store, logger *zap.Logger) repository.Store {
	return repository.Store{
		Name:       StoreName,
		Activities: NewActivityRepository(store, logger),
		Feedbacks:  NewFeedbackRepository(store, logger),
	}
}
