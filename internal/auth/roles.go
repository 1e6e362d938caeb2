package auth

import "github.com/BruksfildServices01/site-backend/internal/models"

type RoleSet map[string]struct{}

func Roles(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

var (
	AdminOnly     = Roles(models.RoleAdmin)
	Authenticated = Roles(models.RoleUser, models.RoleAdmin)
)

// Allowed is the single capability check behind every protected route.
func Allowed(role string, permitted RoleSet) bool {
	_, ok := permitted[role]
	return ok
}
