package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SessionMiddleware guards the analytics API. The bearer token must carry a
// valid signature and resolve to an unexpired record in the sessions
// collection; the database check is what decides validity, the signature
// check just rejects forgeries before touching the store.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if _, err := utils.ValidateToken(token); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		session, err := utils.FindSession(ctx, token)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			}
			c.Abort()
			return
		}

		c.Set("sessionToken", session.Token)

		c.Next()
	}
}
