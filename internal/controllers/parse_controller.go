package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsongrid/backend/internal/logger"
	"github.com/jsongrid/backend/internal/models"
	"github.com/jsongrid/backend/internal/services"
)

type ParseController struct {
	parserService *services.ParserService
	defaultMode   models.Mode
}

func NewParseController(parserService *services.ParserService, defaultMode models.Mode) *ParseController {
	return &ParseController{
		parserService: parserService,
		defaultMode:   defaultMode,
	}
}

type ParseRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type FixRequest struct {
	Text string `json:"text"`
}

// Parse runs the engine once over the request text
func (pc *ParseController) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err, "parse_controller").Warn("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	mode, ok := resolveMode(c, req.Mode, pc.defaultMode)
	if !ok {
		return
	}

	result := pc.parserService.Parse(req.Text, mode)
	c.JSON(resultStatus(result), result)
}

// Fix quotes bare object keys in the request text
func (pc *ParseController) Fix(c *gin.Context) {
	var req FixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err, "parse_controller").Warn("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text": services.RepairJSON(req.Text),
	})
}

// GetExamples lists the built-in example inputs
func (pc *ParseController) GetExamples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"examples": services.Examples(),
	})
}

// resolveMode parses an optional mode, answering 400 itself when it is invalid.
func resolveMode(c *gin.Context, raw string, fallback models.Mode) (models.Mode, bool) {
	if raw == "" {
		return fallback, true
	}
	mode, err := models.ParseMode(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return mode, true
}

// Engine failures are answered with the full result so clients can show the
// message, under 422 to tell them apart from transport errors.
func resultStatus(result models.ParseResult) int {
	if result.Failed() {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}
