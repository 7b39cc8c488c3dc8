package session

import "github.com/developermasrurhassan/chill-gamer-client/internal/domain"

// Role is the caller's capability level.
type Role string

const (
	RolePublic        Role = "public"
	RoleAuthenticated Role = "authenticated"
	RoleAdmin         Role = "admin"
)

// Session exposes the current caller. It is passed explicitly from the
// composition root; there is no global auth state.
type Session interface {
	// User returns the signed-in user. ok is false for anonymous callers.
	User() (domain.User, bool)
	Role() Role
}

// Static is a fixed session, built once from configuration.
type Static struct {
	user domain.User
	role Role
}

// NewStatic builds a session for the given user. An empty email yields an
// anonymous public session regardless of the requested role.
func NewStatic(user domain.User, role Role) *Static {
	if user.Email == "" {
		return &Static{role: RolePublic}
	}
	if role != RoleAdmin && role != RoleAuthenticated {
		role = RoleAuthenticated
	}
	return &Static{user: user, role: role}
}

// Anonymous returns the session of a signed-out caller.
func Anonymous() *Static {
	return &Static{role: RolePublic}
}

func (s *Static) User() (domain.User, bool) {
	if s.user.Email == "" {
		return domain.User{}, false
	}
	return s.user, true
}

func (s *Static) Role() Role {
	return s.role
}
