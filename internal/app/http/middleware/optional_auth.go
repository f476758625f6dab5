package middleware

import (
	"fmt"
	"strings"

	"thakirni-app/config"
	"thakirni-app/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OptionalAuth installs a session when a valid bearer token is present and
// lets the request through anonymously otherwise. Checkout uses this: an
// unauthenticated purchase attempt is tagged with an empty user id rather
// than rejected.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader {
			c.Next()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(config.JWT_SECRET), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}

		sess := &session.Session{}
		if sub, ok := claims["user_id"].(string); ok {
			if id, err := uuid.Parse(sub); err == nil {
				sess.UserID = id
			}
		}
		if email, ok := claims["email"].(string); ok {
			sess.Email = email
		}
		if role, ok := claims["role"].(string); ok {
			sess.Role = role
		}
		if sess.UserID != uuid.Nil {
			c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))
		}
		c.Next()
	}
}
