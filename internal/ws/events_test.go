package ws

import (
	"testing"

	"github.com/kiliankoe/rajamantri/internal/config"
	"github.com/kiliankoe/rajamantri/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return New(game.NewRoomManager(), config.Config{})
}

func TestCreateRemembersConnection(t *testing.T) {
	srv := newTestServer()
	ctx := &ConnCtx{}

	out := srv.create(ctx, createPayload{PlayerName: "Alice"})

	require.NotContains(t, out, "error")
	assert.Equal(t, out["room_id"], ctx.RoomID)
	assert.Equal(t, out["player_id"], ctx.PlayerID)
	assert.Equal(t, "Room created", out["message"])

	out = srv.players(ctx, roomPayload{})
	assert.Len(t, out["players"], 1)

	out = srv.role(ctx, rolePayload{})
	assert.Nil(t, out["role"])
}

func TestErrorsCarryKind(t *testing.T) {
	srv := newTestServer()
	ctx := &ConnCtx{}

	assert.Equal(t, "invalid_request", srv.create(ctx, createPayload{})["code"])
	assert.Equal(t, "not_found", srv.join(ctx, joinPayload{RoomID: "nope", PlayerName: "Bob"})["code"])
	assert.Equal(t, "not_found", srv.leaderboard(ctx, roomPayload{RoomID: "nope"})["code"])

	srv.create(ctx, createPayload{PlayerName: "Alice"})
	out := srv.assign(ctx, roomPayload{})
	assert.Equal(t, "invalid_state", out["code"])
	assert.Equal(t, "Need 4 players to assign roles", out["error"])

	out = srv.result(ctx, roomPayload{})
	assert.Equal(t, "invalid_state", out["code"])
}

func TestRoundOverSocket(t *testing.T) {
	srv := newTestServer()
	var resolved []game.Result
	srv.OnResult(func(_ *game.Room, res game.Result) { resolved = append(resolved, res) })

	host := &ConnCtx{}
	srv.create(host, createPayload{PlayerName: "Alice"})
	conns := []*ConnCtx{host}
	for _, name := range []string{"Bob", "Charlie", "Dana"} {
		c := &ConnCtx{}
		out := srv.join(c, joinPayload{RoomID: host.RoomID, PlayerName: name})
		require.Equal(t, "Joined room", out["message"])
		conns = append(conns, c)
	}

	late := &ConnCtx{}
	out := srv.join(late, joinPayload{RoomID: host.RoomID, PlayerName: "Eve"})
	assert.Equal(t, game.PlacementWaitlisted, out["placement"])

	require.NotContains(t, srv.assign(host, roomPayload{}), "error")

	byRole := map[game.Role]*ConnCtx{}
	for _, c := range conns {
		out := srv.role(c, rolePayload{})
		require.NotContains(t, out, "error")
		byRole[out["role"].(game.Role)] = c
	}
	require.Len(t, byRole, 4)

	out = srv.guess(byRole[game.RoleRaja], guessPayload{GuessedPlayerID: byRole[game.RoleChor].PlayerID})
	assert.Equal(t, "forbidden", out["code"])

	out = srv.guess(byRole[game.RoleMantri], guessPayload{GuessedPlayerID: byRole[game.RoleChor].PlayerID})
	require.NotContains(t, out, "error")

	out = srv.result(host, roomPayload{})
	require.NotContains(t, out, "error")
	assert.Equal(t, true, out["correct"])

	srv.result(host, roomPayload{})
	assert.Len(t, resolved, 1, "result hook should only fire for a fresh resolution")

	board := srv.leaderboard(host, roomPayload{})["leaderboard"].([]game.Standing)
	assert.Equal(t, 1000, board[0].Score)

	rooms := srv.list()["rooms"].([]game.RoomSummary)
	require.Len(t, rooms, 1)
	assert.Equal(t, 1, rooms[0].WaitlistCount)
	assert.Equal(t, game.PhaseResolved, rooms[0].Phase)

	srv.reset(host, roomPayload{})
	assert.Nil(t, srv.role(byRole[game.RoleMantri], rolePayload{})["role"])
}
