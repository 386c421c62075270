package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-meal-delivery/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Delivery estimate stamped on every new order, in minutes, until a
// real estimate exists.
const defaultDeliveryEstimate = 45

// PlaceOrderInput is the validated boundary shape for a new order.
type PlaceOrderInput struct {
	Client_id        string             `json:"client_id" validate:"required"`
	Client_name      string             `json:"client_name" validate:"required"`
	Delivery_address string             `json:"delivery_address" validate:"required"`
	Items            []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	Total_price      float64            `json:"total_price" validate:"min=0"`
}

// OrderService owns order placement and the status state machine.
type OrderService struct {
	store    OrderStore
	notifier *NotificationService
}

func NewOrderService(store OrderStore, notifier *NotificationService) *OrderService {
	return &OrderService{store: store, notifier: notifier}
}

// Place creates the order and appends its items to the client's daily
// intake log in one atomic unit, then notifies each involved caterer.
// The caterer notifications happen after the commit and are best
// effort: a failure there is logged, never returned.
func (s *OrderService) Place(ctx context.Context, input PlaceOrderInput) (string, error) {
	now := time.Now().UTC()

	order := models.Order{
		ID:               primitive.NewObjectID(),
		Client_id:        input.Client_id,
		Client_name:      input.Client_name,
		Delivery_address: input.Delivery_address,
		Items:            input.Items,
		Total_price:      input.Total_price,
		Status:           models.StatusPending,
		Order_Date:       now,
		Delivery_Date:    now, // placeholder until actually delivered
		Delivery_time:    defaultDeliveryEstimate,
		Caterer_ids:      models.DistinctCatererIds(input.Items),
		Created_at:       now,
		Updated_at:       now,
	}
	order.Order_id = order.ID.Hex()

	entries := make([]models.IntakeEntry, 0, len(input.Items))
	for _, item := range input.Items {
		entries = append(entries, models.IntakeEntry{
			Meal_id:    item.Meal_id,
			Meal_name:  item.Meal_name,
			Quantity:   item.Quantity,
			Unit_price: item.Unit_price,
		})
	}

	day := now.Format("2006-01-02")
	if err := s.store.CreateOrderWithIntake(ctx, order, input.Client_id, day, entries); err != nil {
		log.Printf("order placement failed for client %s: %v", input.Client_id, err)
		return "", ErrOrderPlace
	}

	for _, catererId := range order.Caterer_ids {
		msg := fmt.Sprintf("New order %s from %s", order.Order_id, input.Client_name)
		if _, err := s.notifier.Create(ctx, catererId, msg); err != nil {
			log.Printf("caterer notification failed for order %s: %v", order.Order_id, err)
		}
	}
	return order.Order_id, nil
}

// UpdateStatus advances the order through the state machine. At
// ready_for_delivery a delivery person may be bound; at delivered the
// delivery timestamp is stamped. The previously-read status is carried
// as a precondition on the write, so a concurrent update surfaces as
// ErrStaleWrite instead of silently last-write-wins.
func (s *OrderService) UpdateStatus(ctx context.Context, orderId string, newStatus string, deliveryPersonId *string) error {
	if !models.IsValidStatus(newStatus) {
		return ErrIllegalTransition
	}
	order, err := s.store.OrderById(ctx, orderId)
	if err != nil {
		return err
	}
	if !models.CanTransition(order.Status, newStatus) {
		return ErrIllegalTransition
	}

	update := StatusUpdate{Status: newStatus}
	if newStatus == models.StatusReadyForDelivery && deliveryPersonId != nil {
		update.DeliveryPersonId = deliveryPersonId
	}
	if newStatus == models.StatusDelivered {
		now := time.Now().UTC()
		update.DeliveryDate = &now
	}

	if err := s.store.ApplyStatusUpdate(ctx, orderId, order.Status, update); err != nil {
		if errors.Is(err, ErrStaleWrite) || errors.Is(err, ErrOrderNotFound) {
			return err
		}
		log.Printf("status update failed for order %s: %v", orderId, err)
		return ErrStatusUpdate
	}

	s.notifyStatusChange(ctx, order, newStatus, update.DeliveryPersonId)
	return nil
}

// Order fetches a single order by id.
func (s *OrderService) Order(ctx context.Context, orderId string) (*models.Order, error) {
	return s.store.OrderById(ctx, orderId)
}

// OrdersByClient returns the client's order history, newest first.
func (s *OrderService) OrdersByClient(ctx context.Context, clientId string) ([]models.Order, error) {
	return s.store.OrdersByClient(ctx, clientId)
}

var statusLabels = map[string]string{
	models.StatusInPreparation:    "being prepared",
	models.StatusReadyForDelivery: "ready for delivery",
	models.StatusDelivered:        "delivered",
	models.StatusCancelled:        "cancelled",
}

func (s *OrderService) notifyStatusChange(ctx context.Context, order *models.Order, newStatus string, deliveryPersonId *string) {
	if label, ok := statusLabels[newStatus]; ok {
		msg := fmt.Sprintf("Your order %s is now %s", order.Order_id, label)
		if _, err := s.notifier.Create(ctx, order.Client_id, msg); err != nil {
			log.Printf("client notification failed for order %s: %v", order.Order_id, err)
		}
	}
	if newStatus == models.StatusReadyForDelivery && deliveryPersonId != nil {
		msg := fmt.Sprintf("Order %s has been assigned to you for delivery", order.Order_id)
		if _, err := s.notifier.Create(ctx, *deliveryPersonId, msg); err != nil {
			log.Printf("delivery notification failed for order %s: %v", order.Order_id, err)
		}
	}
}
