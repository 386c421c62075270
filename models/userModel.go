package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleClient   = "CLIENT"
	RoleCaterer  = "CATERER"
	RoleDelivery = "DELIVERY"
	RoleAdmin    = "ADMIN"
)

// Caterer and delivery accounts start pending and must be approved by
// an admin before they take part in the delivery flow.
const (
	AccountPending  = "pending"
	AccountApproved = "approved"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id" json:"-"`
	Name           *string            `json:"name" validate:"required,min=2,max=100"`
	Password       *string            `json:"password" validate:"required,min=6"`
	Email          *string            `json:"email" validate:"email,required"`
	Phone          *string            `json:"phone" validate:"required"`
	User_role      *string            `json:"user_role" validate:"required,eq=CLIENT|eq=CATERER|eq=DELIVERY|eq=ADMIN"`
	Region         *string            `json:"region"`
	Account_status string             `json:"account_status"`

	Token         *string   `json:"token"`
	Refresh_Token *string   `json:"refresh_token"`
	Created_at    time.Time `json:"created_at"`
	Updated_at    time.Time `json:"updated_at"`
	User_id       string    `json:"user_id"`
}
