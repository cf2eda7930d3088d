package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SubjectKey is the gin context key holding the token subject.
const SubjectKey = "subject"

var (
	errMissingHeader = errors.New("Authorization header required")
	errBadScheme     = errors.New("Invalid authorization header format")
	errBadToken      = errors.New("Invalid token")
)

// AuthMiddleware requires a valid HS256 bearer token signed with secret. An
// empty secret disables the check.
func AuthMiddleware(secret string) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		tokenString, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			unauthorized(c, err)
			return
		}

		token, err := parser.Parse(tokenString, keyFunc)
		if err != nil || !token.Valid {
			unauthorized(c, errBadToken)
			return
		}

		if subject, err := token.Claims.GetSubject(); err == nil && subject != "" {
			c.Set(SubjectKey, subject)
		}
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingHeader
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errBadScheme
	}
	return token, nil
}

func unauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": err.Error(),
	})
}
