package nav

import (
	"testing"

	"github.com/developermasrurhassan/chill-gamer-client/internal/session"
)

func routes(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Route)
	}
	return out
}

func contains(rs []string, route string) bool {
	for _, r := range rs {
		if r == route {
			return true
		}
	}
	return false
}

func TestPublicSeesOnlyPublicEntries(t *testing.T) {
	got := routes(For(session.RolePublic))
	if len(got) != 5 {
		t.Fatalf("public entries: %v", got)
	}
	for _, r := range []string{"/add-review", "/my-watchlist", "/admin"} {
		if contains(got, r) {
			t.Fatalf("public role must not see %s", r)
		}
	}
}

func TestAuthenticatedSeesMemberEntries(t *testing.T) {
	got := routes(For(session.RoleAuthenticated))
	for _, r := range []string{"/", "/games", "/add-review", "/my-reviews", "/my-watchlist", "/search"} {
		if !contains(got, r) {
			t.Fatalf("authenticated role missing %s: %v", r, got)
		}
	}
	if contains(got, "/admin") {
		t.Fatalf("authenticated role must not see /admin")
	}
}

func TestAdminSeesEverything(t *testing.T) {
	got := routes(For(session.RoleAdmin))
	if len(got) != len(Table) {
		t.Fatalf("admin must see the full table, got %v", got)
	}
}

func TestEntriesKeepTableOrder(t *testing.T) {
	got := For(session.RoleAdmin)
	for i := range got {
		if got[i].Route != Table[i].Route {
			t.Fatalf("entry %d out of table order: %s", i, got[i].Route)
		}
	}
}
