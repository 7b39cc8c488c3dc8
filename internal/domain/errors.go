package domain

import "errors"

// Failure kinds for operation results. Every operation boundary converts errors
// into one of these so callers never have to match on error strings.
type FailKind string

const (
	FailValidation FailKind = "validation"
	FailNetwork    FailKind = "network"
	FailDuplicate  FailKind = "duplicate"
	FailNotFound   FailKind = "not_found"
	FailStale      FailKind = "stale"
)

var (
	// ErrNotFound reports an id-based lookup that matched nothing in a
	// wholesale-fetched collection.
	ErrNotFound = errors.New("entity not found")
	// ErrDuplicateEntry reports the store's (user, gameTitle) uniqueness
	// constraint rejecting a watchlist add. Recoverable, never fatal.
	ErrDuplicateEntry = errors.New("watchlist entry already exists")
	// ErrAuthRequired reports a mutation attempted without a signed-in user.
	ErrAuthRequired = errors.New("authentication required")
)

// KindOf classifies an operation error. Errors carrying their own Kind win;
// the sentinels map to their kinds; anything else is a transport failure.
func KindOf(err error) FailKind {
	var kinder interface{ Kind() FailKind }
	switch {
	case err == nil:
		return ""
	case errors.As(err, &kinder):
		return kinder.Kind()
	case errors.Is(err, ErrDuplicateEntry):
		return FailDuplicate
	case errors.Is(err, ErrNotFound):
		return FailNotFound
	case errors.Is(err, ErrAuthRequired):
		return FailValidation
	}
	return FailNetwork
}
