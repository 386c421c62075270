package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. An order moves forward through these one step at a
// time; "cancelled" is reachable from any non-terminal status.
const (
	StatusPending          = "pending"
	StatusInPreparation    = "in_preparation"
	StatusReadyForDelivery = "ready_for_delivery"
	StatusInDelivery       = "in_delivery"
	StatusDelivered        = "delivered"
	StatusCancelled        = "cancelled"
)

var statusTransitions = map[string][]string{
	StatusPending:          {StatusInPreparation, StatusCancelled},
	StatusInPreparation:    {StatusReadyForDelivery, StatusCancelled},
	StatusReadyForDelivery: {StatusInDelivery, StatusCancelled},
	StatusInDelivery:       {StatusDelivered, StatusCancelled},
	StatusDelivered:        {},
	StatusCancelled:        {},
}

// IsValidStatus reports whether s is one of the known order statuses.
func IsValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminalStatus reports whether no further transition is allowed out of s.
func IsTerminalStatus(s string) bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether moving an order from one status to
// another is legal.
func CanTransition(from string, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type OrderItem struct {
	Meal_id    string  `bson:"meal_id" json:"meal_id" validate:"required"`
	Meal_name  string  `bson:"meal_name" json:"meal_name" validate:"required"`
	Quantity   int     `bson:"quantity" json:"quantity" validate:"required,min=1"`
	Unit_price float64 `bson:"unit_price" json:"unit_price" validate:"min=0"`
	Caterer_id string  `bson:"caterer_id" json:"caterer_id" validate:"required"`
}

type Order struct {
	ID                 primitive.ObjectID `bson:"_id" json:"-"`
	Order_id           string             `bson:"order_id" json:"order_id"`
	Client_id          string             `bson:"client_id" json:"client_id"`
	Client_name        string             `bson:"client_name" json:"client_name"`
	Delivery_address   string             `bson:"delivery_address" json:"delivery_address"`
	Items              []OrderItem        `bson:"items" json:"items"`
	Total_price        float64            `bson:"total_price" json:"total_price"`
	Status             string             `bson:"status" json:"status"`
	Order_Date         time.Time          `bson:"order_date" json:"order_date"`
	Delivery_Date      time.Time          `bson:"delivery_date" json:"delivery_date"`
	Delivery_time      int                `bson:"delivery_time" json:"delivery_time"` // estimate in minutes
	Caterer_ids        []string           `bson:"caterer_ids" json:"caterer_ids"`
	Delivery_person_id *string            `bson:"delivery_person_id,omitempty" json:"delivery_person_id,omitempty"`
	Created_at         time.Time          `bson:"created_at" json:"created_at"`
	Updated_at         time.Time          `bson:"updated_at" json:"updated_at"`
}

// DistinctCatererIds returns the deduplicated caterer ids of the given
// line items, in first-seen order.
func DistinctCatererIds(items []OrderItem) []string {
	seen := make(map[string]bool)
	ids := []string{}
	for _, item := range items {
		if !seen[item.Caterer_id] {
			seen[item.Caterer_id] = true
			ids = append(ids, item.Caterer_id)
		}
	}
	return ids
}
