package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for session storage.
var (
	sessionErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_session_errors_total",
		Help: "Total session store errors by operation",
	}, []string{"operation"})
)

// RedisStore keeps session state in a Redis hash per session so that
// several server replicas share it.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed store. A non-positive ttl falls back
// to DefaultTTL.
func NewRedisStore(redisClient *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

func key(id string) string {
	return RedisKeyPrefix + id
}

// Get retrieves the state for id from Redis.
func (s *RedisStore) Get(ctx context.Context, id string) (*State, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	fields, err := s.redis.HGetAll(ctx, key(id)).Result()
	if err != nil {
		sessionErrorsTotal.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	if len(fields) == 0 {
		s.logger.Debug().Str("session", id).Msg("No session state in Redis, returning fresh state")
		return NewState(), nil
	}

	state := NewState()
	if v, ok := fields[fieldPage]; ok {
		page, err := strconv.Atoi(v)
		if err != nil {
			sessionErrorsTotal.WithLabelValues("get").Inc()
			return nil, fmt.Errorf("parse session page: %w", err)
		}
		state.Page = page
	}
	if v, ok := fields[fieldNotified]; ok {
		notified, err := strconv.ParseBool(v)
		if err != nil {
			sessionErrorsTotal.WithLabelValues("get").Inc()
			return nil, fmt.Errorf("parse session notified flag: %w", err)
		}
		state.Notified = notified
	}
	if v, ok := fields[fieldUpdatedAt]; ok {
		unix, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			sessionErrorsTotal.WithLabelValues("get").Inc()
			return nil, fmt.Errorf("parse session timestamp: %w", err)
		}
		state.UpdatedAt = time.Unix(unix, 0)
	}

	return state, nil
}

// Save writes state for id and refreshes the TTL atomically.
func (s *RedisStore) Save(ctx context.Context, id string, state *State) error {
	if id == "" {
		return ErrEmptyID
	}
	if state == nil {
		return ErrNilState
	}

	state.UpdatedAt = time.Now()

	pipe := s.redis.TxPipeline()
	pipe.HSet(ctx, key(id),
		fieldPage, state.Page,
		fieldNotified, strconv.FormatBool(state.Notified),
		fieldUpdatedAt, state.UpdatedAt.Unix(),
	)
	pipe.Expire(ctx, key(id), s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		sessionErrorsTotal.WithLabelValues("save").Inc()
		return fmt.Errorf("store session state in redis: %w", err)
	}

	s.logger.Debug().
		Str("session", id).
		Int("page", state.Page).
		Bool("notified", state.Notified).
		Msg("Session state saved")

	return nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}
