package controllers

import (
	"context"
	"net/http"
	"time"

	"backend/config"

	"github.com/gin-gonic/gin"
)

// Health pings the store so load balancers can tell a hung database apart
// from a healthy process.
func Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := config.GetDatabase().Ping(ctx, nil); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
