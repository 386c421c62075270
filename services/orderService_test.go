package services

import (
	"context"
	"testing"
	"time"

	"go-meal-delivery/models"

	"github.com/stretchr/testify/require"
)

func newTestOrderService(store *memStore) *OrderService {
	return NewOrderService(store, NewNotificationService(store, nil))
}

func placementInput() PlaceOrderInput {
	return PlaceOrderInput{
		Client_id:        "client1",
		Client_name:      "Alice",
		Delivery_address: "12 Main St",
		Items: []models.OrderItem{
			{Meal_id: "m1", Meal_name: "Pad Thai", Quantity: 2, Unit_price: 9.5, Caterer_id: "catA"},
			{Meal_id: "m2", Meal_name: "Green Curry", Quantity: 1, Unit_price: 11.0, Caterer_id: "catA"},
			{Meal_id: "m3", Meal_name: "Spring Rolls", Quantity: 3, Unit_price: 4.0, Caterer_id: "catB"},
		},
		Total_price: 42.0,
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	store := newMemStore()
	svc := newTestOrderService(store)

	orderId, err := svc.Place(context.Background(), placementInput())
	require.NoError(t, err)
	require.NotEmpty(t, orderId)

	order, err := svc.Order(context.Background(), orderId)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, order.Status)
	require.Equal(t, "client1", order.Client_id)
	require.Equal(t, defaultDeliveryEstimate, order.Delivery_time)
	require.Equal(t, order.Order_Date, order.Delivery_Date, "delivery date starts as a placeholder")
	require.Nil(t, order.Delivery_person_id)

	day := order.Order_Date.Format("2006-01-02")
	require.Len(t, store.intake["client1|"+day], 3, "intake log written with the order")
}

func TestPlaceOrderAtomicFailure(t *testing.T) {
	store := newMemStore()
	store.failPlacement = true
	svc := newTestOrderService(store)

	_, err := svc.Place(context.Background(), placementInput())
	require.ErrorIs(t, err, ErrOrderPlace)
	require.Empty(t, store.orders, "no order persists after a failed placement")
	require.Empty(t, store.intake, "no intake entries persist after a failed placement")
	require.Empty(t, store.notifications, "no caterer is notified about a failed placement")
}

func TestPlaceOrderCatererFanOut(t *testing.T) {
	store := newMemStore()
	svc := newTestOrderService(store)

	orderId, err := svc.Place(context.Background(), placementInput())
	require.NoError(t, err)

	order, err := svc.Order(context.Background(), orderId)
	require.NoError(t, err)
	// Items from caterers {A, A, B} yield the deduplicated set {A, B}.
	require.Equal(t, []string{"catA", "catB"}, order.Caterer_ids)
	require.Len(t, store.notificationsFor("catA"), 1)
	require.Len(t, store.notificationsFor("catB"), 1)
	require.Len(t, store.notifications, 2, "one notification per distinct caterer, not per item")
}

func TestPlaceOrderSurvivesNotificationFailure(t *testing.T) {
	store := newMemStore()
	svc := newTestOrderService(store)
	store.failNotifications = true

	orderId, err := svc.Place(context.Background(), placementInput())
	require.NoError(t, err, "notification failure must not fail the placement")
	require.Contains(t, store.orders, orderId)
}

func advance(t *testing.T, svc *OrderService, orderId string, statuses ...string) {
	t.Helper()
	for _, status := range statuses {
		require.NoError(t, svc.UpdateStatus(context.Background(), orderId, status, nil))
	}
}

func TestUpdateStatusReadyBindsDeliveryPerson(t *testing.T) {
	store := newMemStore()
	svc := newTestOrderService(store)
	ctx := context.Background()

	orderId, err := svc.Place(ctx, placementInput())
	require.NoError(t, err)
	advance(t, svc, orderId, models.StatusInPreparation)

	clientBefore := len(store.notificationsFor("client1"))
	deliveryPerson := "D1"
	require.NoError(t, svc.UpdateStatus(ctx, orderId, models.StatusReadyForDelivery, &deliveryPerson))

	order, err := svc.Order(ctx, orderId)
	require.NoError(t, err)
	require.Equal(t, models.StatusReadyForDelivery, order.Status)
	require.NotNil(t, order.Delivery_person_id)
	require.Equal(t, "D1", *order.Delivery_person_id)

	require.Len(t, store.notificationsFor("client1"), clientBefore+1, "exactly one client notification for the transition")
	require.Len(t, store.notificationsFor("D1"), 1, "exactly one assignment notification")
}

func TestUpdateStatusDeliveredStampsDeliveryDate(t *testing.T) {
	store := newMemStore()
	svc := newTestOrderService(store)
	ctx := context.Background()

	orderId, err := svc.Place(ctx, placementInput())
	require.NoError(t, err)
	placedAt := store.orders[orderId].Delivery_Date

	deliveryPerson := "D1"
	advance(t, svc, orderId, models.StatusInPreparation)
	require.NoError(t, svc.UpdateStatus(ctx, orderId, models.StatusReadyForDelivery, &deliveryPerson))
	advance(t, svc, orderId, models.StatusInDelivery)

	clientBefore := len(store.notificationsFor("client1"))
	deliveryBefore := len(store.notificationsFor("D1"))
	time.Sleep(time.Millisecond)
	require.NoError(t, svc.UpdateStatus(ctx, orderId, models.StatusDelivered, nil))

	order, err := svc.Order(ctx, orderId)
	require.NoError(t, err)
	require.Equal(t, models.StatusDelivered, order.Status)
	require.True(t, order.Delivery_Date.After(placedAt), "delivered stamps a fresh delivery date")
	require.Len(t, store.notificationsFor("client1"), clientBefore+1)
	require.Len(t, store.notificationsFor("D1"), deliveryBefore, "no delivery notification on delivered")
}

func TestUpdateStatusRejectsIllegalTransitions(t *testing.T) {
	store := newMemStore()
	svc := newTestOrderService(store)
	ctx := context.Background()

	orderId, err := svc.Place(ctx, placementInput())
	require.NoError(t, err)

	require.ErrorIs(t, svc.UpdateStatus(ctx, orderId, models.StatusDelivered, nil), ErrIllegalTransition)
	require.ErrorIs(t, svc.UpdateStatus(ctx, orderId, "invented_status", nil), ErrIllegalTransition)

	advance(t, svc, orderId, models.StatusCancelled)
	require.ErrorIs(t, svc.UpdateStatus(ctx, orderId, models.StatusInPreparation, nil), ErrIllegalTransition,
		"cancelled is terminal")

	order := store.orders[orderId]
	require.Equal(t, models.StatusCancelled, order.Status)
}

func TestUpdateStatusCancelledNotifiesClient(t *testing.T) {
	store := newMemStore()
	svc := newTestOrderService(store)
	ctx := context.Background()

	orderId, err := svc.Place(ctx, placementInput())
	require.NoError(t, err)

	before := len(store.notificationsFor("client1"))
	require.NoError(t, svc.UpdateStatus(ctx, orderId, models.StatusCancelled, nil))
	require.Len(t, store.notificationsFor("client1"), before+1)
}

func TestUpdateStatusOrderNotFound(t *testing.T) {
	svc := newTestOrderService(newMemStore())
	err := svc.UpdateStatus(context.Background(), "missing", models.StatusInPreparation, nil)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusStaleWrite(t *testing.T) {
	store := newMemStore()
	svc := newTestOrderService(store)
	ctx := context.Background()

	orderId, err := svc.Place(ctx, placementInput())
	require.NoError(t, err)

	// A concurrent writer advances the order between our read and write.
	store.onOrderFetched = func() {
		store.onOrderFetched = nil
		store.setOrderStatus(orderId, models.StatusInPreparation)
	}
	err = svc.UpdateStatus(ctx, orderId, models.StatusInPreparation, nil)
	require.ErrorIs(t, err, ErrStaleWrite)
}
