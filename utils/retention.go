package utils

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"backend/config"

	"go.mongodb.org/mongo-driver/bson"
)

// CleanupExpiredData runs from the daily scheduler. Expired sessions are
// inert but pile up forever otherwise; analytics events are pruned only when
// ANALYTICS_RETENTION_DAYS is set to a positive number of days, so the
// default keeps the full append-only history.
func CleanupExpiredData() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := config.SessionCollection.DeleteMany(ctx, bson.M{
		"expiresAt": bson.M{"$lte": time.Now()},
	})
	if err != nil {
		log.Printf("Error pruning expired sessions: %v", err)
	} else if res.DeletedCount > 0 {
		log.Printf("Pruned %d expired sessions", res.DeletedCount)
	}

	days, err := strconv.Atoi(os.Getenv("ANALYTICS_RETENTION_DAYS"))
	if err != nil || days <= 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	res, err = config.AnalyticsCollection.DeleteMany(ctx, bson.M{
		"timestamp": bson.M{"$lt": cutoff},
	})
	if err != nil {
		log.Printf("Error pruning analytics events: %v", err)
	} else if res.DeletedCount > 0 {
		log.Printf("Pruned %d analytics events older than %d days", res.DeletedCount, days)
	}
}
