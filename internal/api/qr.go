package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// joinQR serves a PNG QR code of the room's join link, answered by joinLink.
func (h *Handler) joinQR(c *gin.Context) {
	room, err := h.RM.Get(c.Param("room_id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	png, err := qrcode.Encode(joinURL(h.baseURL(c.Request), room.ID), qrcode.Medium, qrSize)
	if err != nil {
		log.Error().Err(err).Str("roomId", room.ID).Msg("qr generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr_generation_failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// baseURL prefers the configured public URL, then the request's scheme and host.
func (h *Handler) baseURL(r *http.Request) string {
	if h.config.PublicURL != "" {
		return strings.TrimRight(h.config.PublicURL, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func joinURL(base, roomID string) string {
	return base + "/rooms/join?room_id=" + url.QueryEscape(roomID)
}
