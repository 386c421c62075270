package database

import (
	"context"
	"time"

	"go-meal-delivery/models"
	"go-meal-delivery/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements the services' store interfaces on top of the
// orders, notifications, meals, userRatings, intake and users
// collections. Multi-document atomicity (order placement, rating)
// goes through sessions.
type MongoStore struct {
	client        *mongo.Client
	orders        *mongo.Collection
	notifications *mongo.Collection
	meals         *mongo.Collection
	userRatings   *mongo.Collection
	intake        *mongo.Collection
	users         *mongo.Collection
}

func NewMongoStore(client *mongo.Client) *MongoStore {
	return &MongoStore{
		client:        client,
		orders:        OpenCollection(client, "orders"),
		notifications: OpenCollection(client, "notifications"),
		meals:         OpenCollection(client, "meals"),
		userRatings:   OpenCollection(client, "userRatings"),
		intake:        OpenCollection(client, "intake"),
		users:         OpenCollection(client, "users"),
	}
}

// ---- NotificationStore ----

func (m *MongoStore) InsertNotification(ctx context.Context, n models.Notification) error {
	_, err := m.notifications.InsertOne(ctx, n)
	return err
}

func (m *MongoStore) UnreadByRecipient(ctx context.Context, recipientId string) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.notifications.Find(ctx, bson.M{"recipient_id": recipientId, "is_read": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (m *MongoStore) MarkNotificationRead(ctx context.Context, notificationId string, readAt time.Time) error {
	_, err := m.notifications.UpdateOne(
		ctx,
		bson.M{"notification_id": notificationId},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_read", Value: true},
			{Key: "read_at", Value: readAt},
		}}},
	)
	return err
}

func (m *MongoStore) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := m.notifications.DeleteMany(ctx, bson.M{
		"is_read": true,
		"read_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// ---- OrderStore ----

func (m *MongoStore) CreateOrderWithIntake(ctx context.Context, order models.Order, clientId string, day string, entries []models.IntakeEntry) error {
	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := m.orders.InsertOne(sc, order); err != nil {
			return nil, err
		}
		// $addToSet keeps the append idempotent across placement retries.
		filter := bson.M{"client_id": clientId, "day": day}
		update := bson.M{
			"$addToSet": bson.M{"entries": bson.M{"$each": entries}},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		}
		if _, err := m.intake.UpdateOne(sc, filter, update, options.Update().SetUpsert(true)); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

func (m *MongoStore) OrderById(ctx context.Context, orderId string) (*models.Order, error) {
	var order models.Order
	err := m.orders.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, services.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (m *MongoStore) OrdersByClient(ctx context.Context, clientId string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}})
	return m.findOrders(ctx, bson.M{"client_id": clientId}, opts)
}

func (m *MongoStore) ApplyStatusUpdate(ctx context.Context, orderId string, expectStatus string, update services.StatusUpdate) error {
	var updateObj bson.D
	updateObj = append(updateObj, bson.E{Key: "status", Value: update.Status})
	if update.DeliveryPersonId != nil {
		updateObj = append(updateObj, bson.E{Key: "delivery_person_id", Value: *update.DeliveryPersonId})
	}
	if update.DeliveryDate != nil {
		updateObj = append(updateObj, bson.E{Key: "delivery_date", Value: *update.DeliveryDate})
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now().UTC()})

	// The expected status in the filter is the optimistic-concurrency
	// precondition: zero matches on an existing order means a
	// concurrent writer got there first.
	filter := bson.M{"order_id": orderId, "status": expectStatus}
	result, err := m.orders.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		count, err := m.orders.CountDocuments(ctx, bson.M{"order_id": orderId})
		if err != nil {
			return err
		}
		if count == 0 {
			return services.ErrOrderNotFound
		}
		return services.ErrStaleWrite
	}
	return nil
}

// ---- DeliveryStore ----

func (m *MongoStore) ApprovedCatererIds(ctx context.Context, region string) ([]string, error) {
	filter := bson.M{
		"user_role":      models.RoleCaterer,
		"account_status": models.AccountApproved,
		"region":         region,
	}
	cursor, err := m.users.Find(ctx, filter, options.Find().SetProjection(bson.M{"user_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var caterers []struct {
		User_id string `bson:"user_id"`
	}
	if err := cursor.All(ctx, &caterers); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(caterers))
	for _, c := range caterers {
		ids = append(ids, c.User_id)
	}
	return ids, nil
}

func (m *MongoStore) ReadyOrdersForCaterers(ctx context.Context, catererIds []string) ([]models.Order, error) {
	filter := bson.M{
		"status":      models.StatusReadyForDelivery,
		"caterer_ids": bson.M{"$in": catererIds},
	}
	opts := options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}})
	return m.findOrders(ctx, filter, opts)
}

func (m *MongoStore) OrdersByDeliveryPerson(ctx context.Context, deliveryPersonId string, statuses []string) ([]models.Order, error) {
	filter := bson.M{
		"delivery_person_id": deliveryPersonId,
		"status":             bson.M{"$in": statuses},
	}
	opts := options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}})
	return m.findOrders(ctx, filter, opts)
}

func (m *MongoStore) findOrders(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Order, error) {
	cursor, err := m.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ---- RatingStore ----

type mongoRatingTx struct {
	sc mongo.SessionContext
	m  *MongoStore
}

func (t *mongoRatingTx) MealAggregate(mealId string) (models.RatingAggregate, error) {
	var meal models.Meal
	err := t.m.meals.FindOne(t.sc, bson.M{"meal_id": mealId}).Decode(&meal)
	if err == mongo.ErrNoDocuments {
		return models.RatingAggregate{}, services.ErrMealNotFound
	}
	if err != nil {
		return models.RatingAggregate{}, err
	}
	return models.RatingAggregate{Average: meal.Rating_average, Count: meal.Rating_count}, nil
}

func (t *mongoRatingTx) UserRating(mealId string, userId string) (*models.UserRating, error) {
	var rating models.UserRating
	err := t.m.userRatings.FindOne(t.sc, bson.M{"meal_id": mealId, "user_id": userId}).Decode(&rating)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (t *mongoRatingTx) PutUserRating(r models.UserRating) error {
	filter := bson.M{"meal_id": r.Meal_id, "user_id": r.User_id}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "rating", Value: r.Rating},
		{Key: "updated_at", Value: r.Updated_at},
	}}}
	_, err := t.m.userRatings.UpdateOne(t.sc, filter, update, options.Update().SetUpsert(true))
	return err
}

func (t *mongoRatingTx) PutMealAggregate(mealId string, agg models.RatingAggregate) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "rating_average", Value: agg.Average},
		{Key: "rating_count", Value: agg.Count},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}
	_, err := t.m.meals.UpdateOne(t.sc, bson.M{"meal_id": mealId}, update)
	return err
}

func (m *MongoStore) InRatingTransaction(ctx context.Context, fn func(tx services.RatingTx) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(&mongoRatingTx{sc: sc, m: m})
	})
	return err
}

func (m *MongoStore) MealById(ctx context.Context, mealId string) (*models.Meal, error) {
	var meal models.Meal
	err := m.meals.FindOne(ctx, bson.M{"meal_id": mealId}).Decode(&meal)
	if err == mongo.ErrNoDocuments {
		return nil, services.ErrMealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}
