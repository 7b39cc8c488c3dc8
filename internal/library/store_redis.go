package library

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
)

const (
	keyGames   = "lib:games"
	keyReviews = "lib:reviews"
	keyGenres  = "lib:genres"
)

// RedisStore keeps snapshots as JSON blobs under TTL'd keys.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) load(ctx context.Context, key string, out any) (bool, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, raw, s.ttl).Err()
}

func (s *RedisStore) LoadGames(ctx context.Context) ([]domain.Game, bool, error) {
	var out []domain.Game
	ok, err := s.load(ctx, keyGames, &out)
	return out, ok, err
}

func (s *RedisStore) SaveGames(ctx context.Context, games []domain.Game) error {
	return s.save(ctx, keyGames, games)
}

func (s *RedisStore) LoadReviews(ctx context.Context) ([]domain.Review, bool, error) {
	var out []domain.Review
	ok, err := s.load(ctx, keyReviews, &out)
	return out, ok, err
}

func (s *RedisStore) SaveReviews(ctx context.Context, reviews []domain.Review) error {
	return s.save(ctx, keyReviews, reviews)
}

func (s *RedisStore) LoadGenres(ctx context.Context) ([]string, bool, error) {
	var out []string
	ok, err := s.load(ctx, keyGenres, &out)
	return out, ok, err
}

func (s *RedisStore) SaveGenres(ctx context.Context, genres []string) error {
	return s.save(ctx, keyGenres, genres)
}

func (s *RedisStore) Invalidate(ctx context.Context) error {
	return s.rdb.Del(ctx, keyGames, keyReviews, keyGenres).Err()
}
