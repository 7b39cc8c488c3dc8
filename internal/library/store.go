package library

import (
	"context"

	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
)

// Store caches collection snapshots between fetches. A miss is (zero, false,
// nil); errors are reserved for the backing store itself.
type Store interface {
	LoadGames(ctx context.Context) ([]domain.Game, bool, error)
	SaveGames(ctx context.Context, games []domain.Game) error
	LoadReviews(ctx context.Context) ([]domain.Review, bool, error)
	SaveReviews(ctx context.Context, reviews []domain.Review) error
	LoadGenres(ctx context.Context) ([]string, bool, error)
	SaveGenres(ctx context.Context, genres []string) error
	Invalidate(ctx context.Context) error
}
