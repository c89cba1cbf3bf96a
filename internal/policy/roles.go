// Package policy derives the role set embedded in access token claims.
// Role derivation is a function of the identity rather than a literal inside
// the token issuer, so the role source can change without touching signing.
package policy

// Roles maps a username to the roles carried in its access tokens.
type Roles func(username string) []string

// DefaultRole is what every identity gets when no catalog entry says
// otherwise.
const DefaultRole = "user"

// DefaultRoles assigns the base role to every identity.
func DefaultRoles(username string) []string {
	return []string{DefaultRole}
}
