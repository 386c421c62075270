package services

import (
	"context"
	"errors"
	"time"

	"go-meal-delivery/models"
)

// Domain errors surfaced by the core services. Low-level storage
// errors are logged and wrapped into the generic variants so callers
// can distinguish "not found" from "transient failure" without seeing
// driver internals.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrMealNotFound       = errors.New("meal not found")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrStaleWrite         = errors.New("order was modified concurrently")
	ErrNotificationCreate = errors.New("could not create notification")
	ErrOrderPlace         = errors.New("could not place order")
	ErrStatusUpdate       = errors.New("could not update order status")
)

// StatusUpdate is the set of fields applied together, in one write,
// when an order changes status.
type StatusUpdate struct {
	Status           string
	DeliveryPersonId *string
	DeliveryDate     *time.Time
}

type NotificationStore interface {
	InsertNotification(ctx context.Context, n models.Notification) error
	UnreadByRecipient(ctx context.Context, recipientId string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationId string, readAt time.Time) error
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type OrderStore interface {
	// CreateOrderWithIntake persists the order and appends the intake
	// entries to the client's daily log as one atomic unit.
	CreateOrderWithIntake(ctx context.Context, order models.Order, clientId string, day string, entries []models.IntakeEntry) error
	OrderById(ctx context.Context, orderId string) (*models.Order, error)
	OrdersByClient(ctx context.Context, clientId string) ([]models.Order, error)
	// ApplyStatusUpdate writes the update only if the stored status
	// still equals expectStatus; returns ErrStaleWrite otherwise.
	ApplyStatusUpdate(ctx context.Context, orderId string, expectStatus string, update StatusUpdate) error
}

type DeliveryStore interface {
	ApprovedCatererIds(ctx context.Context, region string) ([]string, error)
	ReadyOrdersForCaterers(ctx context.Context, catererIds []string) ([]models.Order, error)
	OrdersByDeliveryPerson(ctx context.Context, deliveryPersonId string, statuses []string) ([]models.Order, error)
}

// RatingTx is the view of storage available inside a rating
// transaction. Reads observe a consistent snapshot; writes commit
// together or not at all.
type RatingTx interface {
	MealAggregate(mealId string) (models.RatingAggregate, error)
	UserRating(mealId string, userId string) (*models.UserRating, error)
	PutUserRating(r models.UserRating) error
	PutMealAggregate(mealId string, agg models.RatingAggregate) error
}

type RatingStore interface {
	InRatingTransaction(ctx context.Context, fn func(tx RatingTx) error) error
	MealById(ctx context.Context, mealId string) (*models.Meal, error)
}

// Pusher delivers a notification to the recipient's live connections.
// Best effort: implementations never return an error.
type Pusher interface {
	Push(recipientId string, n models.Notification)
}
