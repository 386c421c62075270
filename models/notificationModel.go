package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an unread/read message addressed to a single
// recipient. The recipient may be a client, a caterer or a delivery
// person; only the id is stored. Read_at stays nil until the
// notification is marked read.
type Notification struct {
	ID              primitive.ObjectID `bson:"_id" json:"-"`
	Notification_id string             `bson:"notification_id" json:"notification_id"`
	Recipient_id    string             `bson:"recipient_id" json:"recipient_id"`
	Message         string             `bson:"message" json:"message"`
	Is_read         bool               `bson:"is_read" json:"is_read"`
	Created_at      time.Time          `bson:"created_at" json:"created_at"`
	Read_at         *time.Time         `bson:"read_at,omitempty" json:"read_at,omitempty"`
}
