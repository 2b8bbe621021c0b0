package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiliankoe/rajamantri/internal/game"
	"github.com/rs/zerolog/log"
)

type createRoomReq struct {
	PlayerName string `json:"player_name" binding:"required"`
}

type joinRoomReq struct {
	RoomID     string `json:"room_id" binding:"required"`
	PlayerName string `json:"player_name" binding:"required"`
}

// joinLinkReq is the query form of a join, as opened from a QR code.
type joinLinkReq struct {
	RoomID     string `form:"room_id" binding:"required"`
	PlayerName string `form:"player_name"`
}

type submitGuessReq struct {
	GuessedPlayerID string `json:"guessed_player_id" binding:"required"`
	MantriID        string `json:"mantri_id" binding:"required"`
}

var joinMessages = map[game.Placement]string{
	game.PlacementJoined:     "Joined room",
	game.PlacementWaitlisted: "Added to waitlist",
}

func (h *Handler) createRoom(c *gin.Context) {
	var req createRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	roomID, playerID := h.RM.CreateRoom(req.PlayerName)
	log.Info().Str("roomId", roomID).Str("playerId", playerID).Msg("room:create")
	c.JSON(http.StatusOK, gin.H{"room_id": roomID, "player_id": playerID, "message": "Room created"})
}

func (h *Handler) joinRoom(c *gin.Context) {
	var req joinRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	playerID, placement, err := h.RM.JoinRoom(req.RoomID, req.PlayerName)
	if err != nil {
		h.fail(c, err)
		return
	}
	log.Info().Str("roomId", req.RoomID).Str("playerId", playerID).Str("placement", string(placement)).Msg("room:join")
	c.JSON(http.StatusOK, gin.H{"player_id": playerID, "placement": placement, "message": joinMessages[placement]})
}

// joinLink answers the URL encoded in a room's QR code. Without a player name it
// describes the room so a client can prompt for one; with a name it joins.
func (h *Handler) joinLink(c *gin.Context) {
	var req joinLinkReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	room, err := h.RM.Get(req.RoomID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if req.PlayerName == "" {
		sum := room.Summary()
		c.JSON(http.StatusOK, gin.H{
			"room_id":        sum.RoomID,
			"player_count":   sum.PlayerCount,
			"waitlist_count": sum.WaitlistCount,
			"message":        "Add player_name to join this room",
		})
		return
	}
	playerID, placement := room.Join(req.PlayerName)
	log.Info().Str("roomId", room.ID).Str("playerId", playerID).Str("placement", string(placement)).Msg("room:join link")
	c.JSON(http.StatusOK, gin.H{"room_id": room.ID, "player_id": playerID, "placement": placement, "message": joinMessages[placement]})
}

func (h *Handler) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.RM.ListRooms()})
}

func (h *Handler) listPlayers(c *gin.Context) {
	players, err := h.RM.ListPlayers(c.Param("room_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(players))
	for _, p := range players {
		out = append(out, gin.H{"id": p.ID, "name": p.Name})
	}
	c.JSON(http.StatusOK, gin.H{"players": out})
}

func (h *Handler) assignRoles(c *gin.Context) {
	room, err := h.RM.Get(c.Param("room_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := room.AssignRoles(); err != nil {
		h.fail(c, err)
		return
	}
	log.Info().Str("roomId", room.ID).Msg("round:assign")
	c.JSON(http.StatusOK, gin.H{"message": "Roles assigned", "status": "ready_for_guess"})
}

func (h *Handler) resetRound(c *gin.Context) {
	room, err := h.RM.Get(c.Param("room_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	room.ResetRound()
	log.Info().Str("roomId", room.ID).Msg("round:reset")
	c.JSON(http.StatusOK, gin.H{"message": "Room reset. Ready to assign roles."})
}

func (h *Handler) myRole(c *gin.Context) {
	room, err := h.RM.Get(c.Param("room_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	role, err := room.RoleOf(c.Param("player_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if role == game.RoleNone {
		c.JSON(http.StatusOK, gin.H{"role": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

func (h *Handler) submitGuess(c *gin.Context) {
	room, err := h.RM.Get(c.Param("room_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	var req submitGuessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if err := room.SubmitGuess(req.MantriID, req.GuessedPlayerID); err != nil {
		h.fail(c, err)
		return
	}
	log.Info().Str("roomId", room.ID).Str("mantriId", req.MantriID).Str("guessedId", req.GuessedPlayerID).Msg("round:guess")
	c.JSON(http.StatusOK, gin.H{"message": "Guess submitted"})
}

func (h *Handler) result(c *gin.Context) {
	room, err := h.RM.Get(c.Param("room_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := room.ComputeResult()
	if err != nil {
		h.fail(c, err)
		return
	}
	if !res.Cached {
		log.Info().Str("roomId", room.ID).Int("round", res.Round).Bool("correct", res.Correct).Msg("round:result")
		h.Export(room, res)
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) leaderboard(c *gin.Context) {
	board, err := h.RM.Leaderboard(c.Param("room_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": board})
}

// Export appends a freshly resolved round to the export file when enabled.
func (h *Handler) Export(room *game.Room, res game.Result) {
	if !h.config.ExportEnabled {
		return
	}
	if err := game.ExportResult(room.ID, res, h.config.ExportFile); err != nil {
		log.Error().Err(err).Str("roomId", room.ID).Msg("failed to export round result")
		return
	}
	log.Debug().Str("roomId", room.ID).Str("file", h.config.ExportFile).Msg("exported round result")
}

// StatusFor maps a game error to its HTTP status.
func StatusFor(err error) int {
	switch game.Kind(err) {
	case game.ErrNotFound:
		return http.StatusNotFound
	case game.ErrInvalidState:
		return http.StatusBadRequest
	case game.ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("internal error")
		c.JSON(status, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
