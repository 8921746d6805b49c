package deck

import (
	"math/rand"

	"github.com/republica-game/republica/game"
)

// assignableRoles is the fixed set handed out on join. Oportunista is never
// assigned here; it only enters play through the secret roll at game start.
var assignableRoles = []game.Role{
	game.RolePresidente,
	game.RoleSenadora,
	game.RoleGovernador,
	game.RolePrefeita,
}

func assignable(r game.Role) bool {
	for _, role := range assignableRoles {
		if role == r {
			return true
		}
	}
	return false
}

// AssignableRoles returns the roles a joining player can receive.
func AssignableRoles() []game.Role {
	roles := make([]game.Role, len(assignableRoles))
	copy(roles, assignableRoles)
	return roles
}

// PickRole picks a uniformly random role not already held in the session.
// When every role is taken the generic Político is handed out instead.
func PickRole(rng *rand.Rand, held []game.Role) game.Role {
	taken := map[game.Role]bool{}
	for _, r := range held {
		taken[r] = true
	}

	free := []game.Role{}
	for _, r := range assignableRoles {
		if !taken[r] {
			free = append(free, r)
		}
	}

	if len(free) == 0 {
		return game.RolePolitico
	}
	return free[rng.Intn(len(free))]
}
