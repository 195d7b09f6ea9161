package handlers

import (
	"net/http"

	"rps_webapp/internal/game"

	"github.com/gin-gonic/gin"
)

// PickRequest carries the human move ("ROCK", "paper", "scissors", ...)
type PickRequest struct {
	Move string `json:"move" binding:"required"`
}

// State returns the current round snapshot
func (h *Handler) State(c *gin.Context) {
	sid, ok := getSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return
	}

	view, err := h.Sessions.State(sid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Pick submits the human move; the counterpart answers in the same call
func (h *Handler) Pick(c *gin.Context) {
	sid, ok := getSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return
	}

	var req PickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	move, err := game.ParseMove(req.Move)
	if err != nil {
		writeError(c, err)
		return
	}

	view, _, err := h.Sessions.Pick(sid, move)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Restart starts a new round once the current one is over
func (h *Handler) Restart(c *gin.Context) {
	sid, ok := getSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return
	}

	view, err := h.Sessions.Restart(sid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
