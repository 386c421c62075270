package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-meal-delivery/models"
)

// memStore is the in-memory double for the Mongo-backed store. The
// rating transaction stages its writes and applies them on commit,
// matching the all-or-nothing semantics of the real sessions.
type memStore struct {
	mu            sync.Mutex
	txMu          sync.Mutex
	notifications []models.Notification
	orders        map[string]models.Order
	orderIds      []string // insertion order, oldest first
	intake        map[string][]models.IntakeEntry
	meals         map[string]models.RatingAggregate
	mealExists    map[string]bool
	ratings       map[string]models.UserRating

	approvedCaterers map[string][]string

	failPlacement     bool
	failNotifications bool
	onOrderFetched    func()

	deliveryQueries int
	readyQueries    int
}

func newMemStore() *memStore {
	return &memStore{
		orders:           make(map[string]models.Order),
		intake:           make(map[string][]models.IntakeEntry),
		meals:            make(map[string]models.RatingAggregate),
		mealExists:       make(map[string]bool),
		ratings:          make(map[string]models.UserRating),
		approvedCaterers: make(map[string][]string),
	}
}

func (s *memStore) addMeal(mealId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mealExists[mealId] = true
	s.meals[mealId] = models.RatingAggregate{}
}

func (s *memStore) setOrderStatus(orderId string, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[orderId]
	o.Status = status
	s.orders[orderId] = o
}

func (s *memStore) notificationsFor(recipientId string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Notification{}
	for _, n := range s.notifications {
		if n.Recipient_id == recipientId {
			out = append(out, n)
		}
	}
	return out
}

// ---- NotificationStore ----

func (s *memStore) InsertNotification(ctx context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNotifications {
		return errors.New("storage unavailable")
	}
	s.notifications = append(s.notifications, n)
	return nil
}

func (s *memStore) UnreadByRecipient(ctx context.Context, recipientId string) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Notification{}
	for i := len(s.notifications) - 1; i >= 0; i-- {
		n := s.notifications[i]
		if n.Recipient_id == recipientId && !n.Is_read {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *memStore) MarkNotificationRead(ctx context.Context, notificationId string, readAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].Notification_id == notificationId {
			s.notifications[i].Is_read = true
			at := readAt
			s.notifications[i].Read_at = &at
		}
	}
	return nil
}

func (s *memStore) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.notifications[:0]
	var deleted int64
	for _, n := range s.notifications {
		if n.Is_read && n.Read_at != nil && n.Read_at.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	s.notifications = kept
	return deleted, nil
}

// ---- OrderStore ----

func (s *memStore) CreateOrderWithIntake(ctx context.Context, order models.Order, clientId string, day string, entries []models.IntakeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPlacement {
		return errors.New("storage unavailable")
	}
	s.orders[order.Order_id] = order
	s.orderIds = append(s.orderIds, order.Order_id)
	key := clientId + "|" + day
	for _, e := range entries {
		if !containsEntry(s.intake[key], e) {
			s.intake[key] = append(s.intake[key], e)
		}
	}
	return nil
}

func (s *memStore) OrderById(ctx context.Context, orderId string) (*models.Order, error) {
	s.mu.Lock()
	order, ok := s.orders[orderId]
	s.mu.Unlock()
	if !ok {
		return nil, ErrOrderNotFound
	}
	if s.onOrderFetched != nil {
		s.onOrderFetched()
	}
	return &order, nil
}

func (s *memStore) OrdersByClient(ctx context.Context, clientId string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for i := len(s.orderIds) - 1; i >= 0; i-- {
		o := s.orders[s.orderIds[i]]
		if o.Client_id == clientId {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *memStore) ApplyStatusUpdate(ctx context.Context, orderId string, expectStatus string, update StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderId]
	if !ok {
		return ErrOrderNotFound
	}
	if order.Status != expectStatus {
		return ErrStaleWrite
	}
	order.Status = update.Status
	if update.DeliveryPersonId != nil {
		order.Delivery_person_id = update.DeliveryPersonId
	}
	if update.DeliveryDate != nil {
		order.Delivery_Date = *update.DeliveryDate
	}
	order.Updated_at = time.Now().UTC()
	s.orders[orderId] = order
	return nil
}

// ---- DeliveryStore ----

func (s *memStore) ApprovedCatererIds(ctx context.Context, region string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.approvedCaterers[region], nil
}

func (s *memStore) ReadyOrdersForCaterers(ctx context.Context, catererIds []string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readyQueries++
	allowed := make(map[string]bool)
	for _, id := range catererIds {
		allowed[id] = true
	}
	out := []models.Order{}
	for i := len(s.orderIds) - 1; i >= 0; i-- {
		o := s.orders[s.orderIds[i]]
		if o.Status != models.StatusReadyForDelivery {
			continue
		}
		for _, catererId := range o.Caterer_ids {
			if allowed[catererId] {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

func (s *memStore) OrdersByDeliveryPerson(ctx context.Context, deliveryPersonId string, statuses []string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveryQueries++
	wanted := make(map[string]bool)
	for _, st := range statuses {
		wanted[st] = true
	}
	out := []models.Order{}
	for i := len(s.orderIds) - 1; i >= 0; i-- {
		o := s.orders[s.orderIds[i]]
		if o.Delivery_person_id != nil && *o.Delivery_person_id == deliveryPersonId && wanted[o.Status] {
			out = append(out, o)
		}
	}
	return out, nil
}

// ---- RatingStore ----

type memRatingTx struct {
	s              *memStore
	pendingRatings []models.UserRating
	pendingAggs    map[string]models.RatingAggregate
}

func (t *memRatingTx) MealAggregate(mealId string) (models.RatingAggregate, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if !t.s.mealExists[mealId] {
		return models.RatingAggregate{}, ErrMealNotFound
	}
	return t.s.meals[mealId], nil
}

func (t *memRatingTx) UserRating(mealId string, userId string) (*models.UserRating, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if r, ok := t.s.ratings[mealId+"|"+userId]; ok {
		return &r, nil
	}
	return nil, nil
}

func (t *memRatingTx) PutUserRating(r models.UserRating) error {
	t.pendingRatings = append(t.pendingRatings, r)
	return nil
}

func (t *memRatingTx) PutMealAggregate(mealId string, agg models.RatingAggregate) error {
	t.pendingAggs[mealId] = agg
	return nil
}

func (s *memStore) InRatingTransaction(ctx context.Context, fn func(tx RatingTx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	tx := &memRatingTx{s: s, pendingAggs: make(map[string]models.RatingAggregate)}
	if err := fn(tx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range tx.pendingRatings {
		s.ratings[r.Meal_id+"|"+r.User_id] = r
	}
	for mealId, agg := range tx.pendingAggs {
		s.meals[mealId] = agg
	}
	return nil
}

func (s *memStore) MealById(ctx context.Context, mealId string) (*models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mealExists[mealId] {
		return nil, ErrMealNotFound
	}
	agg := s.meals[mealId]
	return &models.Meal{
		Meal_id:        mealId,
		Rating_average: agg.Average,
		Rating_count:   agg.Count,
	}, nil
}

func containsEntry(entries []models.IntakeEntry, e models.IntakeEntry) bool {
	for _, existing := range entries {
		if existing == e {
			return true
		}
	}
	return false
}
