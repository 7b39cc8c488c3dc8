package catalog

import (
	"strings"

	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
)

// SentinelAll deactivates a categorical constraint. An empty string is accepted
// as the same sentinel so URL-style filters ("" = unset) behave identically.
const SentinelAll = "all"

func isSentinel(v string) bool {
	return v == "" || strings.EqualFold(v, SentinelAll)
}

// GameFilter holds the active constraints over the games collection.
// Zero thresholds and sentinel values leave a constraint inactive.
type GameFilter struct {
	Search   string
	Genre    string
	Platform string
}

// NewGameFilter returns a filter with every constraint at its sentinel.
func NewGameFilter() GameFilter {
	return GameFilter{Genre: SentinelAll, Platform: SentinelAll}
}

// Reset restores every constraint to its sentinel ("clear filters").
func (f *GameFilter) Reset() {
	*f = NewGameFilter()
}

// Matches reports whether the game satisfies every active constraint.
func (f GameFilter) Matches(g domain.Game) bool {
	if !matchText(f.Search, g.Title, g.Developer) {
		return false
	}
	if !isSentinel(f.Genre) && !containsFold(g.Genre, f.Genre) {
		return false
	}
	if !isSentinel(f.Platform) && !containsFold(g.Platforms, f.Platform) {
		return false
	}
	return true
}

// ReviewFilter holds the active constraints over the reviews collection.
// The same predicate backs both the reviews page and the search fallback,
// which is what keeps the fallback path-independent.
type ReviewFilter struct {
	Search    string
	Genre     string
	MinRating float64
}

// NewReviewFilter returns a filter with every constraint at its sentinel.
func NewReviewFilter() ReviewFilter {
	return ReviewFilter{Genre: SentinelAll}
}

// Reset restores every constraint to its sentinel.
func (f *ReviewFilter) Reset() {
	*f = NewReviewFilter()
}

// Matches reports whether the review satisfies every active constraint.
func (f ReviewFilter) Matches(r domain.Review) bool {
	if !matchText(f.Search, r.GameTitle, r.Description) {
		return false
	}
	if !isSentinel(f.Genre) && r.Genre != f.Genre {
		return false
	}
	if f.MinRating > 0 && r.Rating < f.MinRating {
		return false
	}
	return true
}

// matchText is a case-insensitive substring match OR'd across fields.
// An empty query matches everything.
func matchText(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

// Genres returns the unique genres across all games in first-seen order.
func Genres(games []domain.Game) []string {
	return uniqueFlat(games, func(g domain.Game) []string { return g.Genre })
}

// Platforms returns the unique platforms across all games in first-seen order.
func Platforms(games []domain.Game) []string {
	return uniqueFlat(games, func(g domain.Game) []string { return g.Platforms })
}

func uniqueFlat(games []domain.Game, pick func(domain.Game) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, g := range games {
		for _, v := range pick(g) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
