//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/redis/go-redis/v9"

	"github.com/totegamma/charsheet/core"
)

const (
	callerCachePrefix = "identity:caller:"
	guildCachePrefix  = "identity:guild:"
)

// Repository caches provider objects.
// Callers live in redis keyed by token digest, guilds in memcached.
type Repository interface {
	GetCaller(ctx context.Context, token string) (core.User, error)
	SetCaller(ctx context.Context, token string, user core.User, ttl time.Duration) error
	GetGuild(ctx context.Context, guildID string) (core.Guild, error)
	SetGuild(ctx context.Context, guild core.Guild, ttl time.Duration) error
}

type repository struct {
	rdb *redis.Client
	mc  *memcache.Client
}

func NewRepository(rdb *redis.Client, mc *memcache.Client) Repository {
	return &repository{rdb, mc}
}

func callerKey(token string) string {
	digest := sha256.Sum256([]byte(token))
	return callerCachePrefix + hex.EncodeToString(digest[:])
}

func (r *repository) GetCaller(ctx context.Context, token string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "Identity.Repository.GetCaller")
	defer span.End()

	val, err := r.rdb.Get(ctx, callerKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return core.User{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.User{}, err
	}

	var user core.User
	err = json.Unmarshal([]byte(val), &user)
	if err != nil {
		span.RecordError(err)
		return core.User{}, err
	}

	return user, nil
}

func (r *repository) SetCaller(ctx context.Context, token string, user core.User, ttl time.Duration) error {
	ctx, span := tracer.Start(ctx, "Identity.Repository.SetCaller")
	defer span.End()

	val, err := json.Marshal(user)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return r.rdb.Set(ctx, callerKey(token), val, ttl).Err()
}

func (r *repository) GetGuild(ctx context.Context, guildID string) (core.Guild, error) {
	ctx, span := tracer.Start(ctx, "Identity.Repository.GetGuild")
	defer span.End()

	item, err := r.mc.Get(guildCachePrefix + guildID)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return core.Guild{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Guild{}, err
	}

	var guild core.Guild
	err = json.Unmarshal(item.Value, &guild)
	if err != nil {
		span.RecordError(err)
		return core.Guild{}, err
	}

	return guild, nil
}

func (r *repository) SetGuild(ctx context.Context, guild core.Guild, ttl time.Duration) error {
	ctx, span := tracer.Start(ctx, "Identity.Repository.SetGuild")
	defer span.End()

	val, err := json.Marshal(guild)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return r.mc.Set(&memcache.Item{Key: guildCachePrefix + guild.ID, Value: val, Expiration: int32(ttl.Seconds())})
}
