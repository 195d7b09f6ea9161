package handlers

import (
	"errors"
	"net/http"

	"rps_webapp/internal/game"
	"rps_webapp/internal/http/middleware"
	"rps_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Sessions *service.SessionService
}

func NewHandler(sessions *service.SessionService) *Handler {
	return &Handler{Sessions: sessions}
}

// getSessionID извлекает session_id из контекста Gin
func getSessionID(c *gin.Context) (string, bool) {
	sid := c.GetString(middleware.SessionKey)
	return sid, sid != ""
}

// writeError maps service errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidMove):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid move"})
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
