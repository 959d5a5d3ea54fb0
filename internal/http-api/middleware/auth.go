package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by the identity provider's access tokens. The API never
// mints tokens itself; it only verifies them.
type Claims struct {
	DisplayName string `json:"name"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the Bearer token on protected routes and exposes
// the caller's id and display name to handlers via the gin context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := parseToken(parts[1], jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.Subject)
		c.Set("displayName", claims.DisplayName)

		c.Next()
	}
}

// parseToken validates signature, expiry and subject shape. Subjects must be
// UUIDs because that is what the identity provider issues; anything else is
// a forged or mangled token.
func parseToken(tokenString, jwtSecret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("token subject is not a user id: %w", err)
	}
	return claims, nil
}

// CurrentUser reads the identity set by AuthMiddleware. The bool is false on
// routes that did not pass through it.
func CurrentUser(c *gin.Context) (userID, displayName string, ok bool) {
	id, exists := c.Get("userID")
	if !exists {
		return "", "", false
	}
	userID, ok = id.(string)
	if !ok || userID == "" {
		return "", "", false
	}
	if name, exists := c.Get("displayName"); exists {
		displayName, _ = name.(string)
	}
	return userID, displayName, true
}
