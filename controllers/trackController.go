package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// newEventFromRequest fills the enrichment fields shared by visit and click
// events. Geolocation headers come from the edge proxy and are trusted as-is.
func newEventFromRequest(c *gin.Context) models.AnalyticsEvent {
	userAgent := c.GetHeader("User-Agent")
	if userAgent == "" {
		userAgent = "Unknown"
	}

	country := c.GetHeader("X-Vercel-IP-Country")
	if country == "" {
		country = "Unknown"
	}

	city := c.GetHeader("X-Vercel-IP-City")
	if city == "" {
		city = "Unknown"
	}

	return models.AnalyticsEvent{
		Country:   country,
		City:      city,
		Device:    utils.GetDeviceType(userAgent),
		Browser:   utils.GetBrowser(userAgent),
		IP:        utils.MaskIP(utils.ClientIP(c)),
		Timestamp: time.Now(),
	}
}

// TrackVisit records one page view. The page fires this request and never
// looks at the result, so a lost visit is just a lost signal.
func TrackVisit(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	event := newEventFromRequest(c)
	event.Type = models.EventVisit

	_, err := config.AnalyticsCollection.InsertOne(ctx, event)
	if err != nil {
		log.Println("Error tracking visit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// TrackClick records one link or tab click. clickType defaults to "link"
// when the page omits it.
func TrackClick(c *gin.Context) {
	var input struct {
		LinkID    string `json:"linkId"`
		ClickType string `json:"clickType"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Println("Error tracking click:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if input.ClickType == "" {
		input.ClickType = models.ClickTypeLink
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	event := newEventFromRequest(c)
	event.Type = models.EventClick
	event.LinkID = input.LinkID
	event.ClickType = input.ClickType

	_, err := config.AnalyticsCollection.InsertOne(ctx, event)
	if err != nil {
		log.Println("Error tracking click:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
