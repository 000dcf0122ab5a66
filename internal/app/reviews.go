package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookreviews/internal/events"
	"bookreviews/pkg/domain"
)

// SubmitReview creates a review for a book owned by the caller. The book
// reference is validated here and never re-checked on later mutations.
func (a *App) SubmitReview(caller domain.User, bookID string, rating float64, comment string) (domain.Review, error) {
	_, ok, err := a.store.GetBook(bookID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("get book: %w", err)
	}
	if !ok {
		return domain.Review{}, ErrBookNotFound
	}
	now := time.Now().UTC()
	review := domain.Review{
		ID:        uuid.NewString(),
		BookID:    bookID,
		UserID:    caller.ID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.SaveReview(review); err != nil {
		return domain.Review{}, fmt.Errorf("save review: %w", err)
	}
	a.publishReview(events.ReviewEvent{
		Type:      events.ReviewCreated,
		ReviewID:  review.ID,
		BookID:    review.BookID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Timestamp: now,
	})
	return review, nil
}

// UpdateReview applies the supplied fields to a review owned by the caller.
// Nil means "leave unchanged", so a rating of 0 or an empty comment are
// legitimate updates.
func (a *App) UpdateReview(caller domain.User, reviewID string, rating *float64, comment *string) (domain.Review, error) {
	review, ok, err := a.store.GetReview(reviewID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("get review: %w", err)
	}
	if !ok {
		return domain.Review{}, ErrReviewNotFound
	}
	if review.UserID != caller.ID {
		return domain.Review{}, ErrNotReviewOwner
	}
	if rating != nil {
		review.Rating = *rating
	}
	if comment != nil {
		review.Comment = *comment
	}
	review.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveReview(review); err != nil {
		return domain.Review{}, fmt.Errorf("save review: %w", err)
	}
	a.publishReview(events.ReviewEvent{
		Type:      events.ReviewUpdated,
		ReviewID:  review.ID,
		BookID:    review.BookID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Timestamp: review.UpdatedAt,
	})
	return review, nil
}

// DeleteReview removes a review owned by the caller.
func (a *App) DeleteReview(caller domain.User, reviewID string) error {
	review, ok, err := a.store.GetReview(reviewID)
	if err != nil {
		return fmt.Errorf("get review: %w", err)
	}
	if !ok {
		return ErrReviewNotFound
	}
	if review.UserID != caller.ID {
		return ErrNotReviewOwner
	}
	if err := a.store.DeleteReview(reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	a.publishReview(events.ReviewEvent{
		Type:      events.ReviewDeleted,
		ReviewID:  review.ID,
		BookID:    review.BookID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Timestamp: time.Now().UTC(),
	})
	return nil
}
