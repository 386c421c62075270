package services

import (
	"context"
	"time"

	"go-meal-delivery/models"
)

// RatingService maintains the running average rating on each meal.
// The whole read-modify-write runs in one transaction so concurrent
// ratings from different users serialize without lost updates, and a
// re-rate adjusts the sum by the delta instead of double-counting.
type RatingService struct {
	store RatingStore
}

func NewRatingService(store RatingStore) *RatingService {
	return &RatingService{store: store}
}

// Rate records the user's 1..5 star rating of the meal. A prior rating
// by the same user is replaced; the count stays unchanged in that case.
func (s *RatingService) Rate(ctx context.Context, mealId string, userId string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return s.store.InRatingTransaction(ctx, func(tx RatingTx) error {
		agg, err := tx.MealAggregate(mealId)
		if err != nil {
			return err
		}
		prior, err := tx.UserRating(mealId, userId)
		if err != nil {
			return err
		}

		sum := agg.Average * float64(agg.Count)
		count := agg.Count
		if prior != nil {
			sum += float64(rating - prior.Rating)
		} else {
			sum += float64(rating)
			count++
		}

		if err := tx.PutUserRating(models.UserRating{
			Meal_id:    mealId,
			User_id:    userId,
			Rating:     rating,
			Updated_at: time.Now().UTC(),
		}); err != nil {
			return err
		}
		return tx.PutMealAggregate(mealId, models.RatingAggregate{
			Average: sum / float64(count),
			Count:   count,
		})
	})
}

// Meal returns the meal with its current rating aggregate.
func (s *RatingService) Meal(ctx context.Context, mealId string) (*models.Meal, error) {
	return s.store.MealById(ctx, mealId)
}
