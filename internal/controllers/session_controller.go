package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsongrid/backend/internal/logger"
	"github.com/jsongrid/backend/internal/middleware"
	"github.com/jsongrid/backend/internal/services"
)

type SessionController struct {
	sessionStore *services.SessionStore
}

func NewSessionController(sessionStore *services.SessionStore) *SessionController {
	return &SessionController{sessionStore: sessionStore}
}

type CreateSessionRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type SetInputRequest struct {
	Text string `json:"text"`
}

type SetModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// CreateSession starts a session, optionally with initial text and mode
func (sc *SessionController) CreateSession(c *gin.Context) {
	// The body is optional
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.WithError(err, "session_controller").Warn("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	mode, ok := resolveMode(c, req.Mode, "")
	if !ok {
		return
	}

	session := sc.sessionStore.Create(req.Text, mode)
	c.Set(middleware.SessionIDKey, session.ID)
	c.JSON(http.StatusCreated, session.State())
}

// GetSession returns the session's text, mode, result and visible rows
func (sc *SessionController) GetSession(c *gin.Context) {
	session, ok := sc.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.State())
}

// SetInput replaces the session text and re-parses it
func (sc *SessionController) SetInput(c *gin.Context) {
	session, ok := sc.lookup(c)
	if !ok {
		return
	}

	var req SetInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err, "session_controller").Warn("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result := session.SetInputText(req.Text)
	c.JSON(resultStatus(result), session.State())
}

// SetMode switches the declared mode and re-parses the current text
func (sc *SessionController) SetMode(c *gin.Context) {
	session, ok := sc.lookup(c)
	if !ok {
		return
	}

	var req SetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err, "session_controller").Warn("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	mode, ok := resolveMode(c, req.Mode, "")
	if !ok {
		return
	}

	result := session.SetMode(mode)
	c.JSON(resultStatus(result), session.State())
}

// ToggleGroup flips the collapsed state of one parent row
func (sc *SessionController) ToggleGroup(c *gin.Context) {
	sc.changeGroup(c, func(s *services.Session, parentID int) {
		s.ToggleGroup(parentID)
	})
}

// CollapseGroup hides the children of one parent row
func (sc *SessionController) CollapseGroup(c *gin.Context) {
	sc.changeGroup(c, (*services.Session).CollapseGroup)
}

// ExpandGroup shows the children of one parent row again
func (sc *SessionController) ExpandGroup(c *gin.Context) {
	sc.changeGroup(c, (*services.Session).ExpandGroup)
}

// DeleteSession discards a session
func (sc *SessionController) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.SessionIDKey, id)
	if err := sc.sessionStore.Delete(id); err != nil {
		sc.respondLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

func (sc *SessionController) changeGroup(c *gin.Context, apply func(*services.Session, int)) {
	session, ok := sc.lookup(c)
	if !ok {
		return
	}

	parentID, err := strconv.Atoi(c.Param("parentId"))
	if err != nil || parentID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent ID"})
		return
	}

	apply(session, parentID)
	c.JSON(http.StatusOK, session.State())
}

func (sc *SessionController) lookup(c *gin.Context) (*services.Session, bool) {
	id := c.Param("id")
	c.Set(middleware.SessionIDKey, id)
	session, err := sc.sessionStore.Get(id)
	if err != nil {
		sc.respondLookupError(c, err)
		return nil, false
	}
	return session, true
}

func (sc *SessionController) respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	logger.WithError(err, "session_controller").Error("Failed to load session")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
}
