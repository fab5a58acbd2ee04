package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	logx "github.com/stylemart/shopbot-backend/pkg/logger"

	"github.com/stylemart/shopbot-backend/internal/models"
)

const sessionKeyPrefix = "shopbot:session:"

// CachedStore layers a Redis read-through/write-through cache over the
// session operations of an inner Store. Product and customer operations pass
// straight through. Cache failures degrade to the inner store, never to the
// caller.
type CachedStore struct {
	Store
	rdb *redis.Client
	ttl time.Duration
}

// NewCachedStore wraps inner with a Redis session cache.
func NewCachedStore(inner Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{Store: inner, rdb: rdb, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (c *CachedStore) CreateSession(session *models.ChatSession) (*models.ChatSession, error) {
	created, err := c.Store.CreateSession(session)
	if err != nil {
		return nil, err
	}
	c.cacheSession(created)
	return created, nil
}

func (c *CachedStore) GetSession(sessionID string) (*models.ChatSession, error) {
	ctx := context.Background()

	raw, err := c.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == nil {
		var session models.ChatSession
		if jsonErr := json.Unmarshal(raw, &session); jsonErr == nil {
			return &session, nil
		}
		// corrupt entry, fall through to the inner store
		c.rdb.Del(ctx, sessionKey(sessionID))
	} else if !errors.Is(err, redis.Nil) {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("session cache read failed")
	}

	session, err := c.Store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	c.cacheSession(session)
	return session, nil
}

func (c *CachedStore) UpdateSession(session *models.ChatSession) error {
	if err := c.Store.UpdateSession(session); err != nil {
		return err
	}
	c.cacheSession(session)
	return nil
}

func (c *CachedStore) cacheSession(session *models.ChatSession) {
	raw, err := json.Marshal(session)
	if err != nil {
		return
	}
	if err := c.rdb.Set(context.Background(), sessionKey(session.SessionID), raw, c.ttl).Err(); err != nil {
		logx.Warn().Err(err).Str("session_id", session.SessionID).Msg("session cache write failed")
	}
}

// RedisConfig holds connection settings for the optional session cache.
type RedisConfig struct {
	URL          string `envconfig:"REDIS_URL"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
}

// Enabled reports whether a cache URL was configured.
func (r *RedisConfig) Enabled() bool {
	return r.URL != ""
}

// New builds and pings a Redis client from the config.
func (r *RedisConfig) New() (*redis.Client, error) {
	opts, err := redis.ParseURL(r.URL)
	if err != nil {
		return nil, err
	}

	opts.ReadTimeout = time.Duration(r.ReadTimeout) * time.Second
	opts.WriteTimeout = time.Duration(r.WriteTimeout) * time.Second
	opts.DialTimeout = time.Duration(r.DialTimeout) * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
