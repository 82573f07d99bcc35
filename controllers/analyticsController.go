package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"backend/config"
	"backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// resolveRange maps a named range to the window start. Anything
// unrecognized falls back to seven days, matching the dashboard default.
func resolveRange(rangeName string, now time.Time) time.Time {
	switch rangeName {
	case "24h":
		return now.Add(-24 * time.Hour)
	case "30d":
		return now.AddDate(0, 0, -30)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// windowFilter bounds a query to [start, now]. The lower bound is inclusive:
// an event stamped exactly at the window start is counted.
func windowFilter(start, now time.Time) bson.M {
	return bson.M{"$gte": start, "$lte": now}
}

func visitMatch(window bson.M) bson.M {
	return bson.M{"type": models.EventVisit, "timestamp": window}
}

func clickMatch(window bson.M) bson.M {
	return bson.M{"type": models.EventClick, "timestamp": window}
}

// linkClicksMatch selects outbound-link clicks. Everything that is not a tab
// click counts as a link click, so events recorded before clickType existed
// still show up.
func linkClicksMatch(window bson.M) bson.M {
	return bson.M{
		"type":      models.EventClick,
		"clickType": bson.M{"$ne": models.ClickTypeTab},
		"timestamp": window,
	}
}

// tabClicksMatch selects tab-navigation clicks only.
func tabClicksMatch(window bson.M) bson.M {
	return bson.M{
		"type":      models.EventClick,
		"clickType": models.ClickTypeTab,
		"timestamp": window,
	}
}

func countEvents(ctx context.Context, filter bson.M) (int64, error) {
	return config.AnalyticsCollection.CountDocuments(ctx, filter)
}

// groupAndCount buckets matching events by one field and returns the buckets
// sorted by count descending. limit <= 0 leaves the result unbounded.
func groupAndCount(ctx context.Context, match bson.M, field string, limit int64) ([]models.CountRow, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	cursor, err := config.AnalyticsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []models.CountRow{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func recentVisits(ctx context.Context, filter bson.M, limit int64) ([]models.AnalyticsEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := config.AnalyticsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	visits := []models.AnalyticsEvent{}
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

// GetAnalytics computes the dashboard aggregates over the requested window.
// Session validation happens in the middleware; by the time this runs the
// bearer token is known good. Each aggregate is an independent read over the
// append-only event log, so a concurrent insert may or may not show up —
// best-effort reporting, not a consistent snapshot.
func GetAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	start := resolveRange(c.Query("range"), now)
	window := windowFilter(start, now)

	visits := visitMatch(window)

	totalVisits, err := countEvents(ctx, visits)
	if err != nil {
		analyticsError(c, err)
		return
	}

	totalClicks, err := countEvents(ctx, clickMatch(window))
	if err != nil {
		analyticsError(c, err)
		return
	}

	totalTabs, err := countEvents(ctx, tabClicksMatch(window))
	if err != nil {
		analyticsError(c, err)
		return
	}

	clicksPerLink, err := groupAndCount(ctx, linkClicksMatch(window), "linkId", 0)
	if err != nil {
		analyticsError(c, err)
		return
	}

	clicksPerTab, err := groupAndCount(ctx, tabClicksMatch(window), "linkId", 0)
	if err != nil {
		analyticsError(c, err)
		return
	}

	topCountries, err := groupAndCount(ctx, visits, "country", 5)
	if err != nil {
		analyticsError(c, err)
		return
	}

	devices, err := groupAndCount(ctx, visits, "device", 0)
	if err != nil {
		analyticsError(c, err)
		return
	}

	browsers, err := groupAndCount(ctx, visits, "browser", 0)
	if err != nil {
		analyticsError(c, err)
		return
	}

	recent, err := recentVisits(ctx, visits, 10)
	if err != nil {
		analyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AnalyticsSummary{
		TotalVisits:   totalVisits,
		TotalClicks:   totalClicks,
		TotalTabs:     totalTabs,
		ClicksPerLink: clicksPerLink,
		ClicksPerTab:  clicksPerTab,
		TopCountries:  topCountries,
		Devices:       devices,
		Browsers:      browsers,
		RecentVisits:  recent,
	})
}

func analyticsError(c *gin.Context, err error) {
	log.Println("Analytics error:", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
