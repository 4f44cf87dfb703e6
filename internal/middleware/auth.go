package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/booking-widget/internal/httperr"
)

const ContextSessionID = "sessionID"

// IssueSessionToken signs an HS256 token whose subject is the session id.
func IssueSessionToken(secret, sessionID string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  sessionID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// SessionAuth requires a bearer session token and stores its subject under
// ContextSessionID.
func SessionAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Expected a bearer token.")
			return
		}

		var claims jwt.RegisteredClaims
		token, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Session token is invalid or expired.")
			return
		}

		if claims.Subject == "" {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Session token has no subject.")
			return
		}

		c.Set(ContextSessionID, claims.Subject)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
