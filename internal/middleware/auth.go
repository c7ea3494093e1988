package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/timbermagic/timbermagic-api/internal/config"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
)

const (
	ContextAdmin    = "adminUsername"
	ContextUserRole = "userRole"

	RoleAdmin = "admin"
)

// SignAdminToken issues the HS256 token AuthMiddleware accepts.
func SignAdminToken(secret, username string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": RoleAdmin,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseAdminToken returns the username carried by a valid admin bearer
// header, or the error code to reply with.
func parseAdminToken(header, secret string) (string, string) {
	if header == "" {
		return "", "missing_authorization_header"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "invalid_authorization_header"
	}

	token, err := jwt.Parse(
		parts[1],
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", "invalid_token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "invalid_token"
	}

	username, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if username == "" || role != RoleAdmin {
		return "", "invalid_token"
	}

	return username, ""
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, code := parseAdminToken(c.GetHeader("Authorization"), cfg.JWTSecret)
		if code != "" {
			httperr.Unauthorized(c, code, "Admin authentication required")
			return
		}

		c.Set(ContextAdmin, username)
		c.Set(ContextUserRole, RoleAdmin)

		c.Next()
	}
}

// OptionalAuthMiddleware marks the request as admin when a valid token is
// present and lets everything else through untouched.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if username, code := parseAdminToken(c.GetHeader("Authorization"), cfg.JWTSecret); code == "" {
			c.Set(ContextAdmin, username)
			c.Set(ContextUserRole, RoleAdmin)
		}
		c.Next()
	}
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextUserRole) == RoleAdmin
}

// Actor names who performed a mutation, for the audit log.
func Actor(c *gin.Context) string {
	if username := c.GetString(ContextAdmin); username != "" {
		return username
	}
	return "public"
}
