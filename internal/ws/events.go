package ws

import (
	"github.com/kiliankoe/rajamantri/internal/game"
	"github.com/rs/zerolog/log"
)

func (srv *Server) create(ctx *ConnCtx, p createPayload) map[string]any {
	if p.PlayerName == "" {
		return errReply("invalid_request", "player_name is required")
	}
	roomID, playerID := srv.RM.CreateRoom(p.PlayerName)
	ctx.RoomID, ctx.PlayerID = roomID, playerID
	return map[string]any{"room_id": roomID, "player_id": playerID, "message": "Room created"}
}

func (srv *Server) join(ctx *ConnCtx, p joinPayload) map[string]any {
	if p.PlayerName == "" {
		return errReply("invalid_request", "player_name is required")
	}
	playerID, placement, err := srv.RM.JoinRoom(p.RoomID, p.PlayerName)
	if err != nil {
		return failReply(err)
	}
	ctx.RoomID, ctx.PlayerID = p.RoomID, playerID
	msg := "Joined room"
	if placement == game.PlacementWaitlisted {
		msg = "Added to waitlist"
	}
	return map[string]any{"player_id": playerID, "placement": placement, "message": msg}
}

func (srv *Server) list() map[string]any {
	return map[string]any{"rooms": srv.RM.ListRooms()}
}

func (srv *Server) players(ctx *ConnCtx, p roomPayload) map[string]any {
	players, err := srv.RM.ListPlayers(ctx.room(p.RoomID))
	if err != nil {
		return failReply(err)
	}
	out := make([]map[string]any, 0, len(players))
	for _, pl := range players {
		out = append(out, map[string]any{"id": pl.ID, "name": pl.Name})
	}
	return map[string]any{"players": out}
}

func (srv *Server) assign(ctx *ConnCtx, p roomPayload) map[string]any {
	room, err := srv.RM.Get(ctx.room(p.RoomID))
	if err != nil {
		return failReply(err)
	}
	if err := room.AssignRoles(); err != nil {
		return failReply(err)
	}
	return map[string]any{"message": "Roles assigned", "status": "ready_for_guess"}
}

func (srv *Server) reset(ctx *ConnCtx, p roomPayload) map[string]any {
	room, err := srv.RM.Get(ctx.room(p.RoomID))
	if err != nil {
		return failReply(err)
	}
	room.ResetRound()
	return map[string]any{"message": "Room reset. Ready to assign roles."}
}

func (srv *Server) role(ctx *ConnCtx, p rolePayload) map[string]any {
	room, err := srv.RM.Get(ctx.room(p.RoomID))
	if err != nil {
		return failReply(err)
	}
	role, err := room.RoleOf(ctx.player(p.PlayerID))
	if err != nil {
		return failReply(err)
	}
	if role == game.RoleNone {
		return map[string]any{"role": nil}
	}
	return map[string]any{"role": role}
}

func (srv *Server) guess(ctx *ConnCtx, p guessPayload) map[string]any {
	room, err := srv.RM.Get(ctx.room(p.RoomID))
	if err != nil {
		return failReply(err)
	}
	if err := room.SubmitGuess(ctx.player(p.MantriID), p.GuessedPlayerID); err != nil {
		return failReply(err)
	}
	return map[string]any{"message": "Guess submitted"}
}

func (srv *Server) result(ctx *ConnCtx, p roomPayload) map[string]any {
	room, err := srv.RM.Get(ctx.room(p.RoomID))
	if err != nil {
		return failReply(err)
	}
	res, err := room.ComputeResult()
	if err != nil {
		return failReply(err)
	}
	if !res.Cached && srv.onResult != nil {
		srv.onResult(room, res)
	}
	return map[string]any{"round": res.Round, "result": res.Entries, "correct": res.Correct}
}

func (srv *Server) leaderboard(ctx *ConnCtx, p roomPayload) map[string]any {
	board, err := srv.RM.Leaderboard(ctx.room(p.RoomID))
	if err != nil {
		return failReply(err)
	}
	return map[string]any{"leaderboard": board}
}

// room returns the explicit id if given, else the room this connection created or joined.
func (ctx *ConnCtx) room(id string) string {
	if id != "" {
		return id
	}
	return ctx.RoomID
}

func (ctx *ConnCtx) player(id string) string {
	if id != "" {
		return id
	}
	return ctx.PlayerID
}

func errReply(code, message string) map[string]any {
	return map[string]any{"error": message, "code": code}
}

func failReply(err error) map[string]any {
	switch game.Kind(err) {
	case game.ErrNotFound:
		return errReply("not_found", err.Error())
	case game.ErrInvalidState:
		return errReply("invalid_state", err.Error())
	case game.ErrForbidden:
		return errReply("forbidden", err.Error())
	}
	log.Error().Err(err).Msg("socket internal error")
	return errReply("internal", "internal_error")
}
