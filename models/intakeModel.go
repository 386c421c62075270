package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IntakeEntry is the simplified consumption record appended to a
// client's daily log when an order is placed. It is written atomically
// with the order and read back by the dashboard, not by the core.
type IntakeEntry struct {
	Meal_id    string  `bson:"meal_id" json:"meal_id"`
	Meal_name  string  `bson:"meal_name" json:"meal_name"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	Unit_price float64 `bson:"unit_price" json:"unit_price"`
}

// DailyIntake is one client's consumption log for one calendar day
// (Day formatted as 2006-01-02). Entries are appended with set-union
// semantics so a retried placement does not duplicate them.
type DailyIntake struct {
	ID         primitive.ObjectID `bson:"_id" json:"-"`
	Client_id  string             `bson:"client_id" json:"client_id"`
	Day        string             `bson:"day" json:"day"`
	Entries    []IntakeEntry      `bson:"entries" json:"entries"`
	Updated_at time.Time          `bson:"updated_at" json:"updated_at"`
}
