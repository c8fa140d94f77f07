package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	roomKeyPrefix = "room:"
	roomListKey   = "rooms:list"
)

// RedisRoomCache is a read-through cache for room catalog reads. Every
// backend failure degrades to a miss so Redis is never on the critical path.
type RedisRoomCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoomCache returns a Redis-backed cache, or a no-op one when no Redis
// address is configured.
func NewRoomCache(cfg config.RedisConfig) (usecase.RoomCache, func()) {
	if cfg.Addr == "" {
		slog.Info("room cache disabled: no Redis address configured")
		return NopRoomCache{}, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close Redis client", "error", err)
		}
	}

	return &RedisRoomCache{client: client, ttl: cfg.TTL}, cleanup
}

func (c *RedisRoomCache) GetRoom(ctx context.Context, id uuid.UUID) (*readmodel.RoomRM, bool) {
	data, err := c.client.Get(ctx, roomKeyPrefix+id.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("room cache read failed", "error", err)
		}
		return nil, false
	}

	var rm readmodel.RoomRM
	if err := json.Unmarshal(data, &rm); err != nil {
		slog.Warn("room cache entry is malformed", "error", err)
		return nil, false
	}
	return &rm, true
}

func (c *RedisRoomCache) SetRoom(ctx context.Context, rm *readmodel.RoomRM) {
	data, err := json.Marshal(rm)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, roomKeyPrefix+rm.ID.String(), data, c.ttl).Err(); err != nil {
		slog.Warn("room cache write failed", "error", err)
	}
}

func (c *RedisRoomCache) GetRoomList(ctx context.Context) ([]readmodel.RoomRM, bool) {
	data, err := c.client.Get(ctx, roomListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("room list cache read failed", "error", err)
		}
		return nil, false
	}

	var rms []readmodel.RoomRM
	if err := json.Unmarshal(data, &rms); err != nil {
		slog.Warn("room list cache entry is malformed", "error", err)
		return nil, false
	}
	return rms, true
}

func (c *RedisRoomCache) SetRoomList(ctx context.Context, rms []readmodel.RoomRM) {
	data, err := json.Marshal(rms)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, roomListKey, data, c.ttl).Err(); err != nil {
		slog.Warn("room list cache write failed", "error", err)
	}
}

func (c *RedisRoomCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, roomKeyPrefix+id.String()).Err(); err != nil {
		slog.Warn("room cache invalidation failed", "error", err)
	}
}

func (c *RedisRoomCache) InvalidateList(ctx context.Context) {
	if err := c.client.Del(ctx, roomListKey).Err(); err != nil {
		slog.Warn("room list cache invalidation failed", "error", err)
	}
}

// NopRoomCache misses on every read and drops every write.
type NopRoomCache struct{}

func (NopRoomCache) GetRoom(context.Context, uuid.UUID) (*readmodel.RoomRM, bool) { return nil, false }
func (NopRoomCache) SetRoom(context.Context, *readmodel.RoomRM)                   {}
func (NopRoomCache) GetRoomList(context.Context) ([]readmodel.RoomRM, bool)       { return nil, false }
func (NopRoomCache) SetRoomList(context.Context, []readmodel.RoomRM)              {}
func (NopRoomCache) Invalidate(context.Context, uuid.UUID)                        {}
func (NopRoomCache) InvalidateList(context.Context)                               {}
