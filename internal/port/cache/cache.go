package cache

import (
	"context"
	"time"

	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
)

// ProfileCache is a read-through cache for profiles, keyed by id. A nil
// profile with a nil error means a cache miss.
type ProfileCache interface {
	Get(ctx context.Context, id string) (*entity.Profile, error)
	Set(ctx context.Context, profile *entity.Profile, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
