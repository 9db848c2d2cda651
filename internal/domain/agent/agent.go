// Package agent maps in-game agent identifiers to the closed set of role
// categories used by fantasy scoring displays.
package agent

import (
	"strings"

	"github.com/vlrfantasy/backend/internal/domain/player"
)

var roleByAgent = map[string]player.Role{
	"jett":    player.RoleDuelist,
	"raze":    player.RoleDuelist,
	"reyna":   player.RoleDuelist,
	"phoenix": player.RoleDuelist,
	"yoru":    player.RoleDuelist,
	"neon":    player.RoleDuelist,
	"iso":     player.RoleDuelist,
	"waylay":  player.RoleDuelist,

	"sova":   player.RoleInitiator,
	"skye":   player.RoleInitiator,
	"breach": player.RoleInitiator,
	"kayo":   player.RoleInitiator,
	"fade":   player.RoleInitiator,
	"gekko":  player.RoleInitiator,
	"tejo":   player.RoleInitiator,

	"omen":      player.RoleController,
	"brimstone": player.RoleController,
	"astra":     player.RoleController,
	"viper":     player.RoleController,
	"harbor":    player.RoleController,
	"clove":     player.RoleController,

	"killjoy":  player.RoleSentinel,
	"cypher":   player.RoleSentinel,
	"sage":     player.RoleSentinel,
	"chamber":  player.RoleSentinel,
	"deadlock": player.RoleSentinel,
	"vyse":     player.RoleSentinel,
}

// RoleFor resolves an agent identifier as it appears in scoreboard markup
// (icon title or alt text). Agents outside the table resolve to RoleFlex.
func RoleFor(name string) player.Role {
	key := strings.ToLower(strings.TrimSpace(name))
	// "KAY/O" renders with a slash in icon titles.
	key = strings.ReplaceAll(key, "/", "")

	if role, ok := roleByAgent[key]; ok {
		return role
	}
	return player.RoleFlex
}
