package search

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/developermasrurhassan/chill-gamer-client/internal/catalog"
	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
	"github.com/developermasrurhassan/chill-gamer-client/internal/obslog"
)

// API is the slice of the store client the searcher needs.
type API interface {
	SearchReviews(ctx context.Context, query, genre string, minRating float64) ([]domain.Review, error)
	Reviews(ctx context.Context) ([]domain.Review, error)
}

// Source tells the caller which path produced the result set.
type Source string

const (
	SourceServer   Source = "server"
	SourceFallback Source = "fallback"
)

// Searcher wraps the remote search endpoint with a local fallback. For a
// fixed server-side snapshot both paths return the same member set: the
// fallback applies the exact predicate the server documents, via
// catalog.ReviewFilter.
type Searcher struct {
	api API
	mu  sync.Mutex
}

func NewSearcher(api API) *Searcher {
	return &Searcher{api: api}
}

// Search runs the remote search and, on any failure, re-derives the result
// locally from the full reviews collection. A successful server response is
// returned verbatim with no re-filtering on top. Searches are serialized so
// at most one request is in flight.
func (s *Searcher) Search(ctx context.Context, query, genre string, minRating float64) ([]domain.Review, Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opID := uuid.NewString()
	results, err := s.api.SearchReviews(ctx, query, genre, minRating)
	if err == nil {
		return results, SourceServer, nil
	}
	obslog.L().Warn("search_fallback",
		zap.String("op_id", opID),
		zap.String("query", query),
		zap.String("genre", genre),
		zap.Float64("min_rating", minRating),
		zap.String("kind", string(domain.KindOf(err))),
		zap.Error(err),
	)

	all, ferr := s.api.Reviews(ctx)
	if ferr != nil {
		obslog.L().Error("search_failed", zap.String("op_id", opID), zap.String("kind", string(domain.KindOf(ferr))), zap.Error(ferr))
		return []domain.Review{}, SourceFallback, ferr
	}

	filter := catalog.ReviewFilter{Search: query, Genre: genre, MinRating: minRating}
	out := make([]domain.Review, 0, len(all))
	for _, r := range all {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out, SourceFallback, nil
}
