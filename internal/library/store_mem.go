package library

import (
	"context"
	"sync"
	"time"

	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
)

// MemStore is the in-process fallback used when no Redis URL is configured.
type MemStore struct {
	mu  sync.RWMutex
	ttl time.Duration

	games      []domain.Game
	gamesAt    time.Time
	reviews    []domain.Review
	reviewsAt  time.Time
	genres     []string
	genresAt   time.Time
	hasGames   bool
	hasReviews bool
	hasGenres  bool
}

func NewMemStore(ttl time.Duration) *MemStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MemStore{ttl: ttl}
}

func (s *MemStore) fresh(at time.Time) bool {
	return time.Since(at) < s.ttl
}

func (s *MemStore) LoadGames(ctx context.Context) ([]domain.Game, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasGames || !s.fresh(s.gamesAt) {
		return nil, false, nil
	}
	out := make([]domain.Game, len(s.games))
	copy(out, s.games)
	return out, true, nil
}

func (s *MemStore) SaveGames(ctx context.Context, games []domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games = append([]domain.Game(nil), games...)
	s.gamesAt = time.Now()
	s.hasGames = true
	return nil
}

func (s *MemStore) LoadReviews(ctx context.Context) ([]domain.Review, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasReviews || !s.fresh(s.reviewsAt) {
		return nil, false, nil
	}
	out := make([]domain.Review, len(s.reviews))
	copy(out, s.reviews)
	return out, true, nil
}

func (s *MemStore) SaveReviews(ctx context.Context, reviews []domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append([]domain.Review(nil), reviews...)
	s.reviewsAt = time.Now()
	s.hasReviews = true
	return nil
}

func (s *MemStore) LoadGenres(ctx context.Context) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasGenres || !s.fresh(s.genresAt) {
		return nil, false, nil
	}
	out := make([]string, len(s.genres))
	copy(out, s.genres)
	return out, true, nil
}

func (s *MemStore) SaveGenres(ctx context.Context, genres []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.genres = append([]string(nil), genres...)
	s.genresAt = time.Now()
	s.hasGenres = true
	return nil
}

func (s *MemStore) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasGames, s.hasReviews, s.hasGenres = false, false, false
	return nil
}
