package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
)

// SortKey names a comparator from the registry. Unknown keys leave the
// filtered sequence in input order; they never fail.
type SortKey string

const (
	SortNewest       SortKey = "newest"
	SortOldest       SortKey = "oldest"
	SortHighestRated SortKey = "highest-rated"
	SortLowestRated  SortKey = "lowest-rated"
	SortPriceLow     SortKey = "price-low"
	SortPriceHigh    SortKey = "price-high"
	SortTitleAsc     SortKey = "title-asc"
	SortTitleDesc    SortKey = "title-desc"
)

// DefaultSort is the sort key "clear filters" selects for games and reviews.
const DefaultSort = SortNewest

// GameSortKeys lists the sort orders the games view offers, in menu order.
var GameSortKeys = []SortKey{
	SortNewest, SortOldest, SortHighestRated, SortLowestRated,
	SortPriceLow, SortPriceHigh, SortTitleAsc, SortTitleDesc,
}

// ReviewSortKeys lists the sort orders the reviews view offers.
var ReviewSortKeys = []SortKey{SortNewest, SortOldest, SortHighestRated, SortLowestRated}

type gameLess func(a, b domain.Game) bool

// gameComparator resolves a sort key to its total order. The collator is
// created per call; collate.Collator is not safe for concurrent use.
func gameComparator(key SortKey) gameLess {
	switch key {
	case SortNewest:
		return func(a, b domain.Game) bool { return a.ReleaseYear > b.ReleaseYear }
	case SortOldest:
		return func(a, b domain.Game) bool { return a.ReleaseYear < b.ReleaseYear }
	case SortHighestRated:
		return func(a, b domain.Game) bool { return a.Rating > b.Rating }
	case SortLowestRated:
		return func(a, b domain.Game) bool { return a.Rating < b.Rating }
	case SortPriceLow:
		return func(a, b domain.Game) bool { return a.Price < b.Price }
	case SortPriceHigh:
		return func(a, b domain.Game) bool { return a.Price > b.Price }
	case SortTitleAsc:
		col := collate.New(language.English)
		return func(a, b domain.Game) bool { return col.CompareString(a.Title, b.Title) < 0 }
	case SortTitleDesc:
		col := collate.New(language.English)
		return func(a, b domain.Game) bool { return col.CompareString(a.Title, b.Title) > 0 }
	default:
		return nil
	}
}

type reviewLess func(a, b domain.Review) bool

func reviewComparator(key SortKey) reviewLess {
	switch key {
	case SortNewest:
		return func(a, b domain.Review) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortOldest:
		return func(a, b domain.Review) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortHighestRated:
		return func(a, b domain.Review) bool { return a.Rating > b.Rating }
	case SortLowestRated:
		return func(a, b domain.Review) bool { return a.Rating < b.Rating }
	default:
		return nil
	}
}

// DeriveGames filters and sorts a games snapshot. Pure: the source slice is
// never mutated, equal elements keep their input order, and the same inputs
// always produce the same output.
func DeriveGames(src []domain.Game, f GameFilter, key SortKey) []domain.Game {
	out := make([]domain.Game, 0, len(src))
	for _, g := range src {
		if f.Matches(g) {
			out = append(out, g)
		}
	}
	if less := gameComparator(key); less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// DeriveReviews filters and sorts a reviews snapshot with the same contract
// as DeriveGames.
func DeriveReviews(src []domain.Review, f ReviewFilter, key SortKey) []domain.Review {
	out := make([]domain.Review, 0, len(src))
	for _, r := range src {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	if less := reviewComparator(key); less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// SortWatchlist orders watchlist items by insertion time, oldest first.
func SortWatchlist(src []domain.WatchlistItem) []domain.WatchlistItem {
	out := make([]domain.WatchlistItem, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AddedAt.Before(out[j].AddedAt) })
	return out
}
