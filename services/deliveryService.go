package services

import (
	"context"

	"go-meal-delivery/models"
)

// DeliveryService answers the two questions a delivery person asks:
// which orders in my region are up for grabs, and which orders are
// mine. The region filter joins through the caterer directory because
// orders do not store a region themselves.
type DeliveryService struct {
	store DeliveryStore
}

func NewDeliveryService(store DeliveryStore) *DeliveryService {
	return &DeliveryService{store: store}
}

// ListDeliverable returns ready_for_delivery orders served by approved
// caterers located in the region.
func (s *DeliveryService) ListDeliverable(ctx context.Context, region string) ([]models.Order, error) {
	catererIds, err := s.store.ApprovedCatererIds(ctx, region)
	if err != nil {
		return nil, err
	}
	if len(catererIds) == 0 {
		return []models.Order{}, nil
	}
	return s.store.ReadyOrdersForCaterers(ctx, catererIds)
}

// ListMine returns the delivery person's orders in the given statuses,
// newest first. An empty status set short-circuits without querying.
func (s *DeliveryService) ListMine(ctx context.Context, deliveryPersonId string, statuses []string) ([]models.Order, error) {
	if len(statuses) == 0 {
		return []models.Order{}, nil
	}
	return s.store.OrdersByDeliveryPerson(ctx, deliveryPersonId, statuses)
}

// ActiveDeliveries is the delivery dashboard view: orders assigned to
// the person that are not yet delivered.
func (s *DeliveryService) ActiveDeliveries(ctx context.Context, deliveryPersonId string) ([]models.Order, error) {
	return s.ListMine(ctx, deliveryPersonId, []string{models.StatusReadyForDelivery, models.StatusInDelivery})
}

// DeliveredHistory lists completed deliveries, used for payout calculation.
func (s *DeliveryService) DeliveredHistory(ctx context.Context, deliveryPersonId string) ([]models.Order, error) {
	return s.ListMine(ctx, deliveryPersonId, []string{models.StatusDelivered})
}
