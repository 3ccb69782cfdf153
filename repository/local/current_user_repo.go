package local

import (
	"context"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/internal/infrastructure/localstore"
	"github.com/fastygo/alphadate/repository"
)

type currentUserRepository struct {
	store *localstore.Store
}

// NewCurrentUserRepository stores the selected user under KeyCurrentUser.
func NewCurrentUserRepository(store *localstore.Store) repository.CurrentUserRepository {
	return &currentUserRepository{store: store}
}

func (r *currentUserRepository) Get(ctx context.Context) (domain.User, error) {
	raw, err := r.store.Get(KeyCurrentUser)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", domain.ErrNoCurrentUser
	}
	user, err := domain.ParseUser(string(raw))
	if err != nil {
		return "", domain.ErrNoCurrentUser
	}
	return user, nil
}

func (r *currentUserRepository) Set(ctx context.Context, user domain.User) error {
	u, err := domain.ParseUser(string(user))
	if err != nil {
		return err
	}
	return r.store.Put(KeyCurrentUser, []byte(u))
}

func (r *currentUserRepository) Clear(ctx context.Context) error {
	return r.store.Delete(KeyCurrentUser)
}
