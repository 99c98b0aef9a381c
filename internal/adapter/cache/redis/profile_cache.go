package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sahilraj3324/Hello-Rommie-Backend/internal/entity"
)

// ProfileCache keeps hot profiles in redis so the auth middleware can
// re-check is_active without a mongo round trip on every request.
type ProfileCache struct {
	client *redis.Client
}

// cachedProfile is the trimmed view stored in redis. The password hash and
// any pending reset OTP stay in mongo only; the middleware needs nothing
// beyond identity and the active flag.
type cachedProfile struct {
	ID            string `json:"id"`
	ContactNumber string `json:"contact_number"`
	FullName      string `json:"full_name,omitempty"`
	IsActive      bool   `json:"is_active"`
}

func toCachedProfile(p *entity.Profile) cachedProfile {
	return cachedProfile{
		ID:            p.ID,
		ContactNumber: p.ContactNumber,
		FullName:      p.FullName,
		IsActive:      p.IsActive,
	}
}

func toProfileEntity(c cachedProfile) *entity.Profile {
	return &entity.Profile{
		ID:            c.ID,
		ContactNumber: c.ContactNumber,
		FullName:      c.FullName,
		IsActive:      c.IsActive,
	}
}

func NewProfileCache(addr string) (*ProfileCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &ProfileCache{client: client}, nil
}

func (c *ProfileCache) Get(ctx context.Context, id string) (*entity.Profile, error) {
	data, err := c.client.Get(ctx, "profile:"+id).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var cached cachedProfile
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return toProfileEntity(cached), nil
}

func (c *ProfileCache) Set(ctx context.Context, profile *entity.Profile, ttl time.Duration) error {
	data, err := json.Marshal(toCachedProfile(profile))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "profile:"+profile.ID, data, ttl).Err()
}

func (c *ProfileCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "profile:"+id).Err()
}

func (c *ProfileCache) Close() error {
	return c.client.Close()
}
