package library

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/developermasrurhassan/chill-gamer-client/internal/catalog"
	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
	"github.com/developermasrurhassan/chill-gamer-client/internal/obslog"
)

// API is the slice of the store client the library needs.
type API interface {
	Games(ctx context.Context) ([]domain.Game, error)
	Reviews(ctx context.Context) ([]domain.Review, error)
	Genres(ctx context.Context) ([]string, error)
}

// fallbackGenres is served when the genres endpoint is unreachable.
var fallbackGenres = []string{"Action", "Adventure", "RPG", "Strategy", "Sports"}

// Manager owns the cached collection snapshots. Reads go through the store
// first and fall back to a fetch; a completed fetch only writes its snapshot
// back if no newer fetch started in the meantime, so a slow response can
// never clobber fresher data.
type Manager struct {
	api   API
	store Store

	mu         sync.Mutex
	genGames   uint64
	genReviews uint64
	genGenres  uint64
}

func NewManager(api API, store Store) *Manager {
	return &Manager{api: api, store: store}
}

// Games returns the games snapshot, fetching it from the store API on a
// cache miss.
func (m *Manager) Games(ctx context.Context) ([]domain.Game, error) {
	if cached, ok, err := m.store.LoadGames(ctx); err == nil && ok {
		return cached, nil
	}
	m.mu.Lock()
	m.genGames++
	gen := m.genGames
	m.mu.Unlock()

	games, err := m.api.Games(ctx)
	if err != nil {
		return nil, err
	}
	m.writeGames(ctx, gen, games)
	return games, nil
}

func (m *Manager) writeGames(ctx context.Context, gen uint64, games []domain.Game) {
	m.mu.Lock()
	stale := gen != m.genGames
	m.mu.Unlock()
	if stale {
		obslog.L().Debug("snapshot_write_suppressed", zap.String("collection", "games"))
		return
	}
	if err := m.store.SaveGames(ctx, games); err != nil {
		obslog.L().Warn("snapshot_save_failed", zap.String("collection", "games"), zap.Error(err))
	}
}

// Reviews returns the reviews snapshot, fetching on a cache miss.
func (m *Manager) Reviews(ctx context.Context) ([]domain.Review, error) {
	if cached, ok, err := m.store.LoadReviews(ctx); err == nil && ok {
		return cached, nil
	}
	m.mu.Lock()
	m.genReviews++
	gen := m.genReviews
	m.mu.Unlock()

	reviews, err := m.api.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	stale := gen != m.genReviews
	m.mu.Unlock()
	if !stale {
		if err := m.store.SaveReviews(ctx, reviews); err != nil {
			obslog.L().Warn("snapshot_save_failed", zap.String("collection", "reviews"), zap.Error(err))
		}
	}
	return reviews, nil
}

// Genres returns the known genre names. When the endpoint fails the
// documented static list is served instead; browsing stays usable.
func (m *Manager) Genres(ctx context.Context) ([]string, error) {
	if cached, ok, err := m.store.LoadGenres(ctx); err == nil && ok {
		return cached, nil
	}
	m.mu.Lock()
	m.genGenres++
	gen := m.genGenres
	m.mu.Unlock()

	genres, err := m.api.Genres(ctx)
	if err != nil {
		obslog.L().Warn("genres_fallback", zap.String("op_id", uuid.NewString()), zap.Error(err))
		return append([]string(nil), fallbackGenres...), nil
	}
	m.mu.Lock()
	stale := gen != m.genGenres
	m.mu.Unlock()
	if !stale {
		if err := m.store.SaveGenres(ctx, genres); err != nil {
			obslog.L().Warn("snapshot_save_failed", zap.String("collection", "genres"), zap.Error(err))
		}
	}
	return genres, nil
}

// GameByID scans the wholesale-fetched games snapshot. The store has no
// per-game endpoint.
func (m *Manager) GameByID(ctx context.Context, id string) (*domain.Game, error) {
	games, err := m.Games(ctx)
	if err != nil {
		return nil, err
	}
	for i := range games {
		if games[i].ID == id {
			return &games[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// GamesView derives the filtered, sorted games view for the current snapshot.
func (m *Manager) GamesView(ctx context.Context, f catalog.GameFilter, key catalog.SortKey) ([]domain.Game, error) {
	games, err := m.Games(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.DeriveGames(games, f, key), nil
}

// ReviewsView derives the filtered, sorted reviews view for the current snapshot.
func (m *Manager) ReviewsView(ctx context.Context, f catalog.ReviewFilter, key catalog.SortKey) ([]domain.Review, error) {
	reviews, err := m.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.DeriveReviews(reviews, f, key), nil
}

// Invalidate drops all cached snapshots and bumps the generation counters so
// in-flight fetch completions are discarded.
func (m *Manager) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	m.genGames++
	m.genReviews++
	m.genGenres++
	m.mu.Unlock()
	return m.store.Invalidate(ctx)
}
