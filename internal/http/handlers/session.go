package handlers

import (
	"net/http"

	"rps_webapp/internal/domain"
	"rps_webapp/internal/logger"
	"rps_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionResponse is returned when a new game session is opened
type SessionResponse struct {
	Token     string           `json:"token"`
	SessionID string           `json:"session_id"`
	State     domain.RoundView `json:"state"`
}

// CreateSession opens a session with a fresh round and returns its token
func (h *Handler) CreateSession(c *gin.Context) {
	sess, err := h.Sessions.Create()
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := service.GenerateJWT(sess.ID)
	if err != nil {
		logger.Error("failed to sign session token", "session", sess.ID, "error", err)
		h.Sessions.Remove(sess.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{
		Token:     token,
		SessionID: sess.ID,
		State:     service.ViewOf(sess),
	})
}

// Rules returns the superiority table
func (h *Handler) Rules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rules": service.Rules()})
}
