package auth

import "github.com/olzhasbek/qazcargo/internal/model"

// LandingRoute maps a role to the dashboard route a client should land on
// after authenticating. This is the single authorization policy for
// post-login dispatch; entry points must consult it instead of branching
// on the role themselves.
func LandingRoute(role string) string {
	switch role {
	case model.RoleAdmin:
		return "/admin"
	case model.RoleWorker:
		return "/worker-profile"
	default:
		return "/profile"
	}
}
