package utils

import (
	"context"
	"time"

	"backend/config"
	"backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

// FindSession resolves a token to its unexpired session record. This is the
// single definition of session validity: the record exists AND expiresAt is
// still in the future, checked in the query itself, so an expired record
// behaves exactly like a missing one. Both the analytics middleware and the
// password rotation endpoint go through here.
func FindSession(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := config.SessionCollection.FindOne(ctx, bson.M{
		"token":     token,
		"expiresAt": bson.M{"$gt": time.Now()},
	}).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
