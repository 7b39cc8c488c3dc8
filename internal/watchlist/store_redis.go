package watchlist

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const ttlMembership = 10 * time.Minute

// RedisStore keeps membership snapshots as JSON maps under wl:<email>.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func keyMembership(email string) string {
	return "wl:" + strings.ToLower(strings.TrimSpace(email))
}

func (s *RedisStore) LoadMembership(ctx context.Context, email string) (map[string]string, bool, error) {
	raw, err := s.rdb.Get(ctx, keyMembership(email)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false, err
	}
	return m, true, nil
}

func (s *RedisStore) SaveMembership(ctx context.Context, email string, byTitle map[string]string) error {
	raw, err := json.Marshal(byTitle)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyMembership(email), raw, ttlMembership).Err()
}

func (s *RedisStore) DropMembership(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, keyMembership(email)).Err()
}
