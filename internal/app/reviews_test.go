package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bookreviews/internal/events"
	"bookreviews/pkg/domain"
	"bookreviews/pkg/store"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ReviewEvent
	fail   bool
}

func (p *recordingPublisher) PublishReview(_ context.Context, event events.ReviewEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) recorded() []events.ReviewEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.ReviewEvent(nil), p.events...)
}

func newTestApp(t *testing.T, publisher events.Publisher) (*App, domain.User) {
	t.Helper()
	sessions, err := store.NewJWTSessionStore("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	a, err := New(Config{
		Store:     store.NewMemoryStore(),
		Sessions:  sessions,
		Publisher: publisher,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	user, _, err := a.SignUp("Frodo", "frodo@shire.example", "LongPassword1")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	return a, user
}

func TestReviewLifecyclePublishesEvents(t *testing.T) {
	publisher := &recordingPublisher{}
	a, user := newTestApp(t, publisher)

	book, err := a.AddBook(user, "The Hobbit", "J.R.R. Tolkien", "fantasy", 1937)
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	review, err := a.SubmitReview(user, book.ID, 5, "great")
	if err != nil {
		t.Fatalf("submit review: %v", err)
	}
	zero := 0.0
	if _, err := a.UpdateReview(user, review.ID, &zero, nil); err != nil {
		t.Fatalf("update review: %v", err)
	}
	if err := a.DeleteReview(user, review.ID); err != nil {
		t.Fatalf("delete review: %v", err)
	}

	recorded := publisher.recorded()
	if len(recorded) != 3 {
		t.Fatalf("events = %d, want 3", len(recorded))
	}
	wantTypes := []string{events.ReviewCreated, events.ReviewUpdated, events.ReviewDeleted}
	for i, want := range wantTypes {
		if recorded[i].Type != want {
			t.Fatalf("event %d type = %q, want %q", i, recorded[i].Type, want)
		}
		if recorded[i].ReviewID != review.ID || recorded[i].BookID != book.ID {
			t.Fatalf("event %d references %+v", i, recorded[i])
		}
	}
	if recorded[1].Rating != 0 {
		t.Fatalf("updated event rating = %v, want 0", recorded[1].Rating)
	}
}

func TestPublisherFailureDoesNotSurfaceToCaller(t *testing.T) {
	publisher := &recordingPublisher{fail: true}
	a, user := newTestApp(t, publisher)

	book, err := a.AddBook(user, "Dune", "Frank Herbert", "sci-fi", 1965)
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	if _, err := a.SubmitReview(user, book.ID, 4, ""); err != nil {
		t.Fatalf("submit review should not fail on publisher error, got: %v", err)
	}
}

func TestUpdateReviewAppliesOnlyPresentFields(t *testing.T) {
	a, user := newTestApp(t, nil)

	book, err := a.AddBook(user, "Dune", "Frank Herbert", "sci-fi", 1965)
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	review, err := a.SubmitReview(user, book.ID, 4, "classic")
	if err != nil {
		t.Fatalf("submit review: %v", err)
	}

	// Absent fields stay untouched.
	updated, err := a.UpdateReview(user, review.ID, nil, nil)
	if err != nil {
		t.Fatalf("update review: %v", err)
	}
	if updated.Rating != 4 || updated.Comment != "classic" {
		t.Fatalf("no-op update changed review: %+v", updated)
	}

	// Explicit zero values are applied.
	zero := 0.0
	empty := ""
	updated, err = a.UpdateReview(user, review.ID, &zero, &empty)
	if err != nil {
		t.Fatalf("update review: %v", err)
	}
	if updated.Rating != 0 || updated.Comment != "" {
		t.Fatalf("zero-value update not applied: %+v", updated)
	}
}
