package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"garagedesk/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Permission caching. A user's snapshot is the role plus their
	// ModulePermission rows; it is invalidated whenever the matrix changes.
	GetUserPermissions(ctx context.Context, userID uuid.UUID) (*UserPermissions, error)
	SetUserPermissions(ctx context.Context, userID uuid.UUID, perms *UserPermissions, ttl time.Duration) error
	InvalidateUserPermissions(ctx context.Context, userID uuid.UUID) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	IncrementRateLimit(ctx context.Context, key string, window time.Duration) error

	// Generic string operations for refresh-token storage
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	// Ping for health checks
	Ping(ctx context.Context) error
}

// UserPermissions is the cached permission snapshot for one user.
type UserPermissions struct {
	Role string                     `json:"role"`
	Rows []*models.ModulePermission `json:"rows"`
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as bare host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func permissionsKey(userID uuid.UUID) string {
	return fmt.Sprintf("garagedesk:permissions:%s", userID.String())
}

func (r *redisCacheService) GetUserPermissions(ctx context.Context, userID uuid.UUID) (*UserPermissions, error) {
	data, err := r.client.Get(ctx, permissionsKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var perms UserPermissions
	if err := json.Unmarshal(data, &perms); err != nil {
		return nil, err
	}
	return &perms, nil
}

func (r *redisCacheService) SetUserPermissions(ctx context.Context, userID uuid.UUID, perms *UserPermissions, ttl time.Duration) error {
	data, err := json.Marshal(perms)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, permissionsKey(userID), data, ttl).Err()
}

func (r *redisCacheService) InvalidateUserPermissions(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, permissionsKey(userID)).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Get(ctx, "garagedesk:ratelimit:"+key).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return count >= limit, nil
}

func (r *redisCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	fullKey := "garagedesk:ratelimit:" + key
	count, err := r.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return r.client.Expire(ctx, fullKey, window).Err()
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
