package middleware

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/baotrn/jobboard-be/internal/api/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware resolves the optional viewer identity from a bearer
// token. A missing, expired or otherwise invalid token is never an
// error: the request simply proceeds anonymously and the per-user
// applied/saved flags degrade to false downstream.
func AuthMiddleware(secret string, logger *slog.Logger) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.Next()
			return
		}

		token, err := jwt.Parse(raw, keyFunc)
		if err != nil || !token.Valid {
			logger.Debug("Ignoring invalid bearer token",
				slog.String("request_id", RequestIDFrom(c)),
			)
			c.Next()
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil {
			c.Next()
			return
		}

		userID, err := strconv.ParseInt(subject, 10, 64)
		if err != nil || userID <= 0 {
			c.Next()
			return
		}

		c.Set(ViewerKey, domain.Viewer{UserID: userID})
		c.Next()
	}
}
