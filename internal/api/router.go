package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiliankoe/rajamantri/internal/config"
	"github.com/kiliankoe/rajamantri/internal/game"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	RM      *game.RoomManager
	config  config.Config
	version string
}

func New(rm *game.RoomManager, cfg config.Config, version string) *Handler {
	return &Handler{RM: rm, config: cfg, version: version}
}

// Router builds the gin engine with recovery, request logging and all game routes.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": h.version})
	})

	r.POST("/rooms/create", h.createRoom)
	r.POST("/rooms/join", h.joinRoom)
	r.GET("/rooms/join", h.joinLink)
	r.GET("/rooms", h.listRooms)
	r.GET("/rooms/players/:room_id", h.listPlayers)
	r.GET("/rooms/qr/:room_id", h.joinQR)
	r.POST("/rooms/assign/:room_id", h.assignRoles)
	r.POST("/rooms/reset/:room_id", h.resetRound)
	r.GET("/role/me/:room_id/:player_id", h.myRole)
	r.POST("/guess/:room_id", h.submitGuess)
	r.GET("/result/:room_id", h.result)
	r.GET("/leaderboard/:room_id", h.leaderboard)

	return r
}

// requestLogger logs one line per request, skipping socket.io polling noise.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Request.Method).Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	}
}
