package player

import "fmt"

// Role is the coarse classification of the agent a player is fielded on.
type Role string

const (
	RoleDuelist    Role = "duelist"
	RoleInitiator  Role = "initiator"
	RoleController Role = "controller"
	RoleSentinel   Role = "sentinel"

	// RoleFlex is assigned when the scoreboard names an agent the role
	// table does not know about yet.
	RoleFlex Role = "flex"
	// RoleUnknown is assigned when the scoreboard row carries no agent
	// icon at all. Distinct from RoleFlex on purpose.
	RoleUnknown Role = "unknown"
)

var AllRoles = map[Role]struct{}{
	RoleDuelist:    {},
	RoleInitiator:  {},
	RoleController: {},
	RoleSentinel:   {},
	RoleFlex:       {},
	RoleUnknown:    {},
}

// Player is a competitor identified by their display name. Team and role
// are recorded on first sighting and never overwritten by later imports.
type Player struct {
	ID   int64
	Name string
	Team string
	Role Role
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}

	return nil
}
