package game

import (
    "time"
)

type Role string

const (
    RoleNone   Role = ""
    RoleRaja   Role = "Raja"
    RoleMantri Role = "Mantri"
    RoleChor   Role = "Chor"
    RoleSipahi Role = "Sipahi"
)

// Roles is the fixed deck dealt to a full room, one card per player.
var Roles = []Role{RoleRaja, RoleMantri, RoleChor, RoleSipahi}

var rolePoints = map[Role]int{
    RoleRaja:   1000,
    RoleMantri: 800,
    RoleChor:   0,
    RoleSipahi: 500,
}

// Points is the base value of the role before the guess is applied.
func (r Role) Points() int {
    return rolePoints[r]
}

type Phase string

const (
    PhaseUnassigned Phase = "Unassigned"
    PhaseAssigned   Phase = "Assigned"
    PhaseGuessed    Phase = "Guessed"
    PhaseResolved   Phase = "Resolved"
)

type Placement string

const (
    PlacementJoined     Placement = "joined"
    PlacementWaitlisted Placement = "waitlisted"
)

const MaxPlayers = 4

type Player struct {
    ID       string    `json:"id"`
    Name     string    `json:"name"`
    Role     Role      `json:"role,omitempty"`
    Points   int       `json:"points"`
    JoinedAt time.Time `json:"joinedAt"`
}

type RoomSummary struct {
    RoomID        string `json:"room_id"`
    PlayerCount   int    `json:"player_count"`
    WaitlistCount int    `json:"waitlist_count"`
    RolesAssigned bool   `json:"roles_assigned"`
    RoundComplete bool   `json:"round_complete"`
    Phase         Phase  `json:"phase"`
}

type ResultEntry struct {
    PlayerID string `json:"-"`
    Name     string `json:"name"`
    Role     Role   `json:"role"`
    Points   int    `json:"points"`
}

type Result struct {
    Round   int           `json:"round"`
    Entries []ResultEntry `json:"result"`
    Correct bool          `json:"correct"`

    // Standings is the leaderboard right after this round was scored.
    Standings []Standing `json:"-"`

    // Cached is set when the round had already been resolved and scores were not applied again.
    Cached bool `json:"-"`
}

type Standing struct {
    PlayerID string `json:"-"`
    Name     string `json:"name"`
    Score    int    `json:"score"`
}
