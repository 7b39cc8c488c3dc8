package watchlist

import "context"

// Store caches the (gameTitle → itemID) membership snapshot per user so a
// remove does not need a second wholesale fetch. The remote store remains
// the source of truth; the cache is advisory.
type Store interface {
	LoadMembership(ctx context.Context, email string) (map[string]string, bool, error)
	SaveMembership(ctx context.Context, email string, byTitle map[string]string) error
	DropMembership(ctx context.Context, email string) error
}
