package auth

import "strings"

// RolesFromClaims extracts the caller's roles from Keycloak-shaped claims:
// the realm-level roles under realm_access.roles unioned with the
// client-scoped roles under resource_access.<clientID>.roles.
//
// The claim maps are loosely typed, so every access fails closed: any
// missing key or unexpected shape contributes nothing to the set rather
// than failing the request. An unauthenticated-looking token therefore
// yields an empty set and is rejected later by the access policy, not here.
func RolesFromClaims(claims map[string]any, clientID string) RoleSet {
	set := make(RoleSet)

	addRoles(set, nestedRoles(claims, "realm_access"))

	if resourceAccess, ok := claims["resource_access"].(map[string]any); ok {
		if client, ok := resourceAccess[clientID].(map[string]any); ok {
			addRoles(set, rolesSlice(client["roles"]))
		}
	}

	return set
}

func nestedRoles(claims map[string]any, key string) []any {
	access, ok := claims[key].(map[string]any)
	if !ok {
		return nil
	}
	return rolesSlice(access["roles"])
}

func rolesSlice(v any) []any {
	roles, _ := v.([]any)
	return roles
}

func addRoles(set RoleSet, roles []any) {
	for _, r := range roles {
		s, ok := r.(string)
		if !ok {
			continue
		}
		if role := NormalizeRole(s); role != "" {
			set[role] = struct{}{}
		}
	}
}

// NormalizeRole maps a raw role claim to the flat vocabulary used by the
// access policy: authority prefixes some identity providers add are
// stripped and the remainder is uppercased, so "ROLE_client", "SCOPE_CLIENT"
// and "client" all compare equal.
func NormalizeRole(raw string) string {
	role := strings.TrimSpace(raw)
	for _, prefix := range []string{"ROLE_", "SCOPE_"} {
		if len(role) > len(prefix) && strings.EqualFold(role[:len(prefix)], prefix) {
			role = role[len(prefix):]
			break
		}
	}
	return strings.ToUpper(role)
}
