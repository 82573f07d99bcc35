package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event type discriminators stored in the analytics collection.
const (
	EventVisit = "visit"
	EventClick = "click"
)

// Click type discriminators. Tab clicks are in-page navigation, link clicks
// lead off-site.
const (
	ClickTypeLink = "link"
	ClickTypeTab  = "tab"
)

// AnalyticsEvent is one recorded visit or click. Events are append-only:
// nothing in the backend updates or deletes them, all reporting is a
// read-time fold over this log. LinkID and ClickType are only set for
// click events.
type AnalyticsEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Type      string             `bson:"type" json:"type"`
	LinkID    string             `bson:"linkId,omitempty" json:"linkId,omitempty"`
	ClickType string             `bson:"clickType,omitempty" json:"clickType,omitempty"`
	Country   string             `bson:"country" json:"country"`
	City      string             `bson:"city" json:"city"`
	Device    string             `bson:"device" json:"device"`
	Browser   string             `bson:"browser" json:"browser"`
	IP        string             `bson:"ip" json:"ip"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// CountRow is one bucket of a group-and-count aggregate, keyed by whatever
// field the pipeline grouped on.
type CountRow struct {
	ID    string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// AnalyticsSummary is the composite payload of GET /api/analytics.
type AnalyticsSummary struct {
	TotalVisits   int64            `json:"totalVisits"`
	TotalClicks   int64            `json:"totalClicks"`
	TotalTabs     int64            `json:"totalTabs"`
	ClicksPerLink []CountRow       `json:"clicksPerLink"`
	ClicksPerTab  []CountRow       `json:"clicksPerTab"`
	TopCountries  []CountRow       `json:"topCountries"`
	Devices       []CountRow       `json:"devices"`
	Browsers      []CountRow       `json:"browsers"`
	RecentVisits  []AnalyticsEvent `json:"recentVisits"`
}
