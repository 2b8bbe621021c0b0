package game

import (
	"errors"
	"testing"
)

func TestNewRoomManager(t *testing.T) {
	rm := NewRoomManager()
	if rm.rooms == nil {
		t.Fatal("rooms map should be initialized")
	}
	if len(rm.ListRooms()) != 0 {
		t.Fatal("no rooms should exist initially")
	}
}

func TestCreateRoom(t *testing.T) {
	rm := NewRoomManager()
	roomID, playerID := rm.CreateRoom("Alice")

	if roomID == "" {
		t.Fatal("room ID should not be empty")
	}
	if playerID == "" {
		t.Fatal("player ID should not be empty")
	}

	room, err := rm.Get(roomID)
	if err != nil {
		t.Fatalf("should be able to retrieve created room: %v", err)
	}
	players := room.Players()
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}
	if players[0].ID != playerID || players[0].Name != "Alice" {
		t.Fatalf("unexpected creator %+v", players[0])
	}
	if players[0].Role != RoleNone {
		t.Fatalf("creator should have no role, got %s", players[0].Role)
	}
	if room.Phase() != PhaseUnassigned {
		t.Fatalf("expected phase %s, got %s", PhaseUnassigned, room.Phase())
	}

	board := room.Leaderboard()
	if len(board) != 1 || board[0].Score != 0 {
		t.Fatalf("creator should start on the leaderboard with 0, got %+v", board)
	}
}

func TestCreateRoomUniqueIDs(t *testing.T) {
	rm := NewRoomManager()
	r1, p1 := rm.CreateRoom("Alice")
	r2, p2 := rm.CreateRoom("Bob")
	if r1 == r2 {
		t.Fatal("different rooms should have different IDs")
	}
	if p1 == p2 {
		t.Fatal("different players should have different IDs")
	}
}

func TestGetUnknownRoom(t *testing.T) {
	rm := NewRoomManager()
	if _, err := rm.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := rm.JoinRoom("nope", "Bob"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected room not found on join, got %v", err)
	}
	if _, err := rm.ListPlayers("nope"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected room not found on list players, got %v", err)
	}
	if _, err := rm.Leaderboard("nope"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected room not found on leaderboard, got %v", err)
	}
}

func TestJoinRoom(t *testing.T) {
	rm := NewRoomManager()
	roomID, creatorID := rm.CreateRoom("Alice")

	playerID, placement, err := rm.JoinRoom(roomID, "Bob")
	if err != nil {
		t.Fatalf("should be able to join: %v", err)
	}
	if placement != PlacementJoined {
		t.Fatalf("expected %s, got %s", PlacementJoined, placement)
	}
	if playerID == creatorID {
		t.Fatal("joined player should get a fresh ID")
	}

	players, err := rm.ListPlayers(roomID)
	if err != nil {
		t.Fatalf("should be able to list players: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[1].Name != "Bob" {
		t.Fatalf("roster should keep join order, got %s second", players[1].Name)
	}
}

func TestJoinFullRoomIsWaitlisted(t *testing.T) {
	rm := NewRoomManager()
	roomID := fullRoom(t, rm)

	playerID, placement, err := rm.JoinRoom(roomID, "Eve")
	if err != nil {
		t.Fatalf("should be able to join a full room: %v", err)
	}
	if placement != PlacementWaitlisted {
		t.Fatalf("expected %s, got %s", PlacementWaitlisted, placement)
	}

	room, _ := rm.Get(roomID)
	if n := len(room.Players()); n != MaxPlayers {
		t.Fatalf("active roster should stay at %d, got %d", MaxPlayers, n)
	}
	wl := room.Waitlist()
	if len(wl) != 1 || wl[0].ID != playerID {
		t.Fatalf("player should be on the waitlist, got %+v", wl)
	}
	for _, s := range room.Leaderboard() {
		if s.PlayerID == playerID {
			t.Fatal("waitlisted players should not be scored")
		}
	}
	if _, err := room.RoleOf(playerID); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("waitlisted player should not be an active player, got %v", err)
	}
}

func TestListRoomsInsertionOrder(t *testing.T) {
	rm := NewRoomManager()
	first, _ := rm.CreateRoom("Alice")
	second := fullRoom(t, rm)
	rm.JoinRoom(second, "Eve")

	rooms := rm.ListRooms()
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].RoomID != first || rooms[1].RoomID != second {
		t.Fatal("rooms should be listed in creation order")
	}
	if rooms[0].PlayerCount != 1 || rooms[0].WaitlistCount != 0 {
		t.Fatalf("unexpected summary %+v", rooms[0])
	}
	if rooms[1].PlayerCount != 4 || rooms[1].WaitlistCount != 1 {
		t.Fatalf("unexpected summary %+v", rooms[1])
	}
	if rooms[1].RolesAssigned || rooms[1].RoundComplete {
		t.Fatal("fresh room should have no round state")
	}
}

func TestPlayersReturnsCopies(t *testing.T) {
	rm := NewRoomManager()
	roomID, playerID := rm.CreateRoom("Alice")
	room, _ := rm.Get(roomID)

	players := room.Players()
	players[0].Name = "Mallory"

	role, err := room.RoleOf(playerID)
	if err != nil {
		t.Fatalf("should find player: %v", err)
	}
	if role != RoleNone {
		t.Fatalf("expected no role, got %s", role)
	}
	if room.Players()[0].Name != "Alice" {
		t.Fatal("mutating a returned player should not change the room")
	}
}

func fullRoom(t *testing.T, rm *RoomManager) string {
	t.Helper()
	roomID, _ := rm.CreateRoom("Alice")
	for _, name := range []string{"Bob", "Charlie", "Dana"} {
		if _, placement, err := rm.JoinRoom(roomID, name); err != nil || placement != PlacementJoined {
			t.Fatalf("join %s: placement %s, err %v", name, placement, err)
		}
	}
	return roomID
}
