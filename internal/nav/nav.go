package nav

import "github.com/developermasrurhassan/chill-gamer-client/internal/session"

// Entry is one navigation destination with the capability required to see it.
type Entry struct {
	Route      string
	Label      string
	Capability session.Role
}

// Table is the full declarative navigation table. Selection is a pure filter
// over it; nothing is concatenated at runtime.
var Table = []Entry{
	{Route: "/", Label: "Home", Capability: session.RolePublic},
	{Route: "/games", Label: "All games", Capability: session.RolePublic},
	{Route: "/reviews", Label: "All Reviews", Capability: session.RolePublic},
	{Route: "/trending", Label: "Trending", Capability: session.RolePublic},
	{Route: "/community", Label: "Community", Capability: session.RolePublic},
	{Route: "/add-review", Label: "Add Review", Capability: session.RoleAuthenticated},
	{Route: "/my-reviews", Label: "My Reviews", Capability: session.RoleAuthenticated},
	{Route: "/my-watchlist", Label: "Watch list", Capability: session.RoleAuthenticated},
	{Route: "/search", Label: "Search", Capability: session.RoleAuthenticated},
	{Route: "/admin", Label: "Admin", Capability: session.RoleAdmin},
}

// For returns the entries visible to the given role, in table order.
func For(role session.Role) []Entry {
	var out []Entry
	for _, e := range Table {
		if visible(role, e.Capability) {
			out = append(out, e)
		}
	}
	return out
}

func visible(have, need session.Role) bool {
	switch need {
	case session.RolePublic:
		return true
	case session.RoleAuthenticated:
		return have == session.RoleAuthenticated || have == session.RoleAdmin
	case session.RoleAdmin:
		return have == session.RoleAdmin
	}
	return false
}
