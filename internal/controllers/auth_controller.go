package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jsongrid/backend/internal/logger"
)

// ErrAuthDisabled is reported when no JWT secret or password hash is configured.
var ErrAuthDisabled = errors.New("authentication is disabled")

// AuthController issues API tokens to clients that know the access password.
type AuthController struct {
	jwtSecret    string
	passwordHash string
	tokenTTL     time.Duration
}

func NewAuthController(jwtSecret, passwordHash string, tokenTTL time.Duration) *AuthController {
	return &AuthController{
		jwtSecret:    jwtSecret,
		passwordHash: passwordHash,
		tokenTTL:     tokenTTL,
	}
}

type TokenRequest struct {
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (ac *AuthController) IssueToken(c *gin.Context) {
	if ac.jwtSecret == "" || ac.passwordHash == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrAuthDisabled.Error()})
		return
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ac.passwordHash), []byte(req.Password)); err != nil {
		logger.Warn("Rejected token request", map[string]interface{}{
			"client_ip": c.ClientIP(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, expiresAt, err := ac.generateToken()
	if err != nil {
		logger.WithError(err, "auth_controller").Error("Failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Success:   true,
		Message:   "Token issued",
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func (ac *AuthController) generateToken() (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ac.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ac.jwtSecret))
	return tokenString, expiresAt, err
}
