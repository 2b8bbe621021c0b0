package ws

import (
    "net/http"

    "github.com/gin-gonic/gin"
    socketio "github.com/googollee/go-socket.io"
    "github.com/kiliankoe/rajamantri/internal/config"
    "github.com/kiliankoe/rajamantri/internal/game"
    "github.com/rs/zerolog/log"
)

// ConnCtx remembers who is on the other end of a connection after create/join.
type ConnCtx struct {
    RoomID   string
    PlayerID string
}

type Server struct {
    RM       *game.RoomManager
    config   config.Config
    onResult func(room *game.Room, res game.Result)
}

type roomPayload struct {
    RoomID string `json:"room_id"`
}

type createPayload struct {
    PlayerName string `json:"player_name"`
}

type joinPayload struct {
    RoomID     string `json:"room_id"`
    PlayerName string `json:"player_name"`
}

type rolePayload struct {
    RoomID   string `json:"room_id"`
    PlayerID string `json:"player_id"`
}

type guessPayload struct {
    RoomID          string `json:"room_id"`
    MantriID        string `json:"mantri_id"`
    GuessedPlayerID string `json:"guessed_player_id"`
}

func New(rm *game.RoomManager, cfg config.Config) *Server {
    return &Server{RM: rm, config: cfg}
}

// OnResult registers a hook run after a round is freshly resolved over the socket.
func (srv *Server) OnResult(f func(room *game.Room, res game.Result)) { srv.onResult = f }

// Mount attaches Socket.IO server with handlers to the given Gin engine.
// Every event answers through its ack; nothing is broadcast, clients poll.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
    io := socketio.NewServer(nil)

    io.OnConnect("/", func(s socketio.Conn) error {
        s.SetContext(&ConnCtx{})
        log.Info().Str("sid", s.ID()).Msg("socket connected")
        return nil
    })

    io.OnEvent("/", "room:create", func(s socketio.Conn, p createPayload) map[string]any {
        return srv.reply(s, "room:create", srv.create(connCtx(s), p))
    })
    io.OnEvent("/", "room:join", func(s socketio.Conn, p joinPayload) map[string]any {
        return srv.reply(s, "room:join", srv.join(connCtx(s), p))
    })
    io.OnEvent("/", "room:list", func(s socketio.Conn) map[string]any {
        return srv.reply(s, "room:list", srv.list())
    })
    io.OnEvent("/", "room:players", func(s socketio.Conn, p roomPayload) map[string]any {
        return srv.reply(s, "room:players", srv.players(connCtx(s), p))
    })
    io.OnEvent("/", "round:assign", func(s socketio.Conn, p roomPayload) map[string]any {
        return srv.reply(s, "round:assign", srv.assign(connCtx(s), p))
    })
    io.OnEvent("/", "round:reset", func(s socketio.Conn, p roomPayload) map[string]any {
        return srv.reply(s, "round:reset", srv.reset(connCtx(s), p))
    })
    io.OnEvent("/", "role:me", func(s socketio.Conn, p rolePayload) map[string]any {
        return srv.reply(s, "role:me", srv.role(connCtx(s), p))
    })
    io.OnEvent("/", "round:guess", func(s socketio.Conn, p guessPayload) map[string]any {
        return srv.reply(s, "round:guess", srv.guess(connCtx(s), p))
    })
    io.OnEvent("/", "round:result", func(s socketio.Conn, p roomPayload) map[string]any {
        return srv.reply(s, "round:result", srv.result(connCtx(s), p))
    })
    io.OnEvent("/", "leaderboard:get", func(s socketio.Conn, p roomPayload) map[string]any {
        return srv.reply(s, "leaderboard:get", srv.leaderboard(connCtx(s), p))
    })

    io.OnError("/", func(s socketio.Conn, e error) {
        log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
    })
    io.OnDisconnect("/", func(s socketio.Conn, reason string) {
        log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
    })

    go func() {
        if err := io.Serve(); err != nil {
            log.Error().Err(err).Msg("socket.io serve")
        }
    }()

    r.GET("/socket.io/*any", gin.WrapH(io))
    r.POST("/socket.io/*any", gin.WrapH(io))

    // Basic CORS preflight for Socket.IO POST
    r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
        c.Header("Access-Control-Allow-Origin", "*")
        c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
        c.Header("Access-Control-Allow-Headers", "Content-Type")
        c.Status(http.StatusNoContent)
    })

    return io
}

// reply logs the outcome and mirrors errors onto the connection as an "error" event.
func (srv *Server) reply(s socketio.Conn, event string, out map[string]any) map[string]any {
    if msg, failed := out["error"]; failed {
        s.Emit("error", map[string]any{"code": out["code"], "message": msg})
        log.Debug().Str("sid", s.ID()).Str("event", event).Interface("code", out["code"]).Msg("socket event failed")
        return out
    }
    log.Info().Str("sid", s.ID()).Str("event", event).Msg("socket event")
    return out
}

func connCtx(s socketio.Conn) *ConnCtx {
    if ctx, ok := s.Context().(*ConnCtx); ok && ctx != nil {
        return ctx
    }
    ctx := &ConnCtx{}
    s.SetContext(ctx)
    return ctx
}
