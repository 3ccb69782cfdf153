package redis

import (
	"context"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/alphadate/domain"
	"github.com/fastygo/alphadate/repository"
)

const DefaultCurrentUserKey = "doublea:currentUser"

type currentUserRepository struct {
	client *redislib.Client
	key    string
	ttl    time.Duration
}

// NewCurrentUserRepository creates a Redis-backed current user store.
// A zero ttl keeps the value until it is cleared.
func NewCurrentUserRepository(client *redislib.Client, key string, ttl time.Duration) repository.CurrentUserRepository {
	if key == "" {
		key = DefaultCurrentUserKey
	}
	if ttl < 0 {
		ttl = 0
	}
	return &currentUserRepository{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (r *currentUserRepository) Get(ctx context.Context) (domain.User, error) {
	result, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", domain.ErrNoCurrentUser
		}
		return "", err
	}
	user, err := domain.ParseUser(result)
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
	return r.client.Set(ctx, r.key, string(u), r.ttl).Err()
}

func (r *currentUserRepository) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
