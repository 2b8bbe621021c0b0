package game

import (
    "math/rand"
    "sync"
    "time"

    "github.com/google/uuid"
)

type Room struct {
    ID        string
    CreatedAt time.Time

    players  []*Player // active roster, join order
    waitlist []*Player

    rolesAssigned bool
    mantriGuess   string
    roundComplete bool

    // per round state
    round      int
    lastResult *Result

    scores map[string]int // playerID -> cumulative points

    shuffle func(n int, swap func(i, j int))

    mu sync.Mutex
}

type RoomManager struct {
    mu    sync.RWMutex
    rooms map[string]*Room
    order []string // room ids, insertion order

    shuffle func(n int, swap func(i, j int))
}

func NewRoomManager() *RoomManager {
    return &RoomManager{rooms: make(map[string]*Room), shuffle: rand.Shuffle}
}

// CreateRoom opens a room with the creator as its only active player.
func (rm *RoomManager) CreateRoom(playerName string) (roomID string, playerID string) {
    rm.mu.Lock()
    defer rm.mu.Unlock()

    roomID = uuid.NewString()
    for rm.rooms[roomID] != nil {
        roomID = uuid.NewString()
    }
    p := newPlayer(playerName)
    r := &Room{
        ID:        roomID,
        CreatedAt: p.JoinedAt,
        players:   []*Player{p},
        scores:    map[string]int{p.ID: 0},
        shuffle:   rm.shuffle,
    }

    rm.rooms[roomID] = r
    rm.order = append(rm.order, roomID)
    return roomID, p.ID
}

func (rm *RoomManager) Get(roomID string) (*Room, error) {
    rm.mu.RLock()
    defer rm.mu.RUnlock()
    r := rm.rooms[roomID]
    if r == nil {
        return nil, ErrRoomNotFound
    }
    return r, nil
}

func (rm *RoomManager) JoinRoom(roomID, playerName string) (string, Placement, error) {
    r, err := rm.Get(roomID)
    if err != nil {
        return "", "", err
    }
    id, placement := r.Join(playerName)
    return id, placement, nil
}

func (rm *RoomManager) ListRooms() []RoomSummary {
    rm.mu.RLock()
    rooms := make([]*Room, 0, len(rm.order))
    for _, id := range rm.order {
        rooms = append(rooms, rm.rooms[id])
    }
    rm.mu.RUnlock()

    out := make([]RoomSummary, 0, len(rooms))
    for _, r := range rooms {
        out = append(out, r.Summary())
    }
    return out
}

func (rm *RoomManager) ListPlayers(roomID string) ([]*Player, error) {
    r, err := rm.Get(roomID)
    if err != nil {
        return nil, err
    }
    return r.Players(), nil
}

// Join admits a player to the active roster, or to the waitlist once the roster is full.
// Waitlisted players are not scored and are never promoted.
func (r *Room) Join(name string) (string, Placement) {
    r.mu.Lock()
    defer r.mu.Unlock()
    p := newPlayer(name)
    if len(r.players) < MaxPlayers {
        r.players = append(r.players, p)
        r.scores[p.ID] = 0
        return p.ID, PlacementJoined
    }
    r.waitlist = append(r.waitlist, p)
    return p.ID, PlacementWaitlisted
}

func (r *Room) Summary() RoomSummary {
    r.mu.Lock()
    defer r.mu.Unlock()
    return RoomSummary{
        RoomID:        r.ID,
        PlayerCount:   len(r.players),
        WaitlistCount: len(r.waitlist),
        RolesAssigned: r.rolesAssigned,
        RoundComplete: r.roundComplete,
        Phase:         r.phaseLocked(),
    }
}

func (r *Room) Players() []*Player {
    r.mu.Lock()
    defer r.mu.Unlock()
    out := make([]*Player, 0, len(r.players))
    for _, p := range r.players {
        cp := *p
        out = append(out, &cp)
    }
    return out
}

func (r *Room) Waitlist() []*Player {
    r.mu.Lock()
    defer r.mu.Unlock()
    out := make([]*Player, 0, len(r.waitlist))
    for _, p := range r.waitlist {
        cp := *p
        out = append(out, &cp)
    }
    return out
}

func (r *Room) Phase() Phase {
    r.mu.Lock()
    defer r.mu.Unlock()
    return r.phaseLocked()
}

func (r *Room) phaseLocked() Phase {
    switch {
    case r.roundComplete:
        return PhaseResolved
    case r.mantriGuess != "":
        return PhaseGuessed
    case r.rolesAssigned:
        return PhaseAssigned
    default:
        return PhaseUnassigned
    }
}

func (r *Room) playerLocked(id string) *Player {
    for _, p := range r.players {
        if p.ID == id {
            return p
        }
    }
    return nil
}

func newPlayer(name string) *Player {
    return &Player{ID: uuid.NewString(), Name: name, JoinedAt: time.Now().UTC()}
}
