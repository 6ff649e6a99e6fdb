// Package auth derives an explicit Actor from a verified bearer token.
//
// Nothing in this service reads the authenticated identity from ambient
// state: the middleware verifies the token once, builds an Actor, and every
// operation downstream takes it as an explicit argument.
package auth

import "context"

// Role tokens recognised by the order service. Claims are normalized
// (prefix stripped, uppercased) before they are compared against these.
const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)

// RoleSet is a flat set of normalized role tokens.
type RoleSet map[string]struct{}

// NewRoleSet builds a set from normalized role strings.
func NewRoleSet(roles ...string) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the given role.
func (s RoleSet) Has(role string) bool {
	_, ok := s[role]
	return ok
}

// Actor is the authenticated party making a request.
type Actor struct {
	// SubjectID is the token's subject claim. It becomes the owner id of
	// any order the actor creates.
	SubjectID string

	// Roles is the flat, normalized role set extracted from the token.
	Roles RoleSet

	// Token is the raw bearer credential (without the "Bearer " scheme).
	// It is forwarded verbatim on outbound catalog calls so the catalog's
	// own authorization sees the original caller, not a service identity.
	// Never log it.
	Token string
}

// IsAdmin reports whether the actor holds the ADMIN role.
func (a Actor) IsAdmin() bool { return a.Roles.Has(RoleAdmin) }

type ctxKey struct{}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// ActorFromContext extracts the actor placed by the auth middleware.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	return a, ok
}
