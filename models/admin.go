package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminCredential is the single administrator account. It is created lazily
// with the default password on the first login attempt and only ever mutated
// by the password rotation endpoint.
type AdminCredential struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Session grants bearer access to the admin API. A session is valid iff its
// record exists and expiresAt is still in the future; expired records are
// never consulted again and are swept by the retention job.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Token     string             `bson:"token" json:"token"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
}
