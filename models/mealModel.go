package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal carries the rating aggregate the core maintains. The rest of
// the meal catalog (images, nutrition, availability) is owned by the
// catalog subsystem and passes through untouched.
type Meal struct {
	ID             primitive.ObjectID `bson:"_id" json:"-"`
	Meal_id        string             `bson:"meal_id" json:"meal_id"`
	Name           string             `bson:"name" json:"name"`
	Caterer_id     string             `bson:"caterer_id" json:"caterer_id"`
	Price          float64            `bson:"price" json:"price"`
	Rating_average float64            `bson:"rating_average" json:"rating_average"`
	Rating_count   int                `bson:"rating_count" json:"rating_count"`
	Created_at     time.Time          `bson:"created_at" json:"created_at"`
	Updated_at     time.Time          `bson:"updated_at" json:"updated_at"`
}

// RatingAggregate is the running average/count pair stored on a meal.
// Invariant: Average == sum of individual ratings / Count.
type RatingAggregate struct {
	Average float64 `bson:"rating_average" json:"rating_average"`
	Count   int     `bson:"rating_count" json:"rating_count"`
}

// UserRating is one user's current rating of one meal. At most one
// record exists per (meal, user); a re-rate replaces it.
type UserRating struct {
	Meal_id    string    `bson:"meal_id" json:"meal_id"`
	User_id    string    `bson:"user_id" json:"user_id"`
	Rating     int       `bson:"rating" json:"rating"`
	Updated_at time.Time `bson:"updated_at" json:"updated_at"`
}
