package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookreviews/pkg/domain"
)

const (
	defaultListLimit    = 10
	defaultReviewsLimit = 5
)

// AddBook creates a book owned by the caller. Duplicates are allowed; two
// identical submissions create two records.
func (a *App) AddBook(caller domain.User, title, author, genre string, publishedYear int) (domain.Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	genre = strings.TrimSpace(genre)
	if title == "" || author == "" || genre == "" {
		return domain.Book{}, ErrMissingBookFields
	}
	now := time.Now().UTC()
	book := domain.Book{
		ID:            uuid.NewString(),
		Title:         title,
		Author:        author,
		Genre:         genre,
		PublishedYear: publishedYear,
		CreatedBy:     caller.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := a.store.SaveBook(book); err != nil {
		return domain.Book{}, fmt.Errorf("save book: %w", err)
	}
	return book, nil
}

// ListBooks returns one page of books ordered newest first, with the
// pagination envelope computed over the filtered total.
func (a *App) ListBooks(page, limit int, filter domain.BookFilter) (domain.BookPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultListLimit
	}
	books, total, err := a.store.ListBooks(filter, page, limit)
	if err != nil {
		return domain.BookPage{}, fmt.Errorf("list books: %w", err)
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return domain.BookPage{
		Docs:        books,
		TotalDocs:   total,
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
	}, nil
}

// GetBookDetail returns the book plus rating aggregates over the FULL review
// set and one page of reviews with the author reference expanded.
func (a *App) GetBookDetail(bookID string, page, limit int) (domain.BookDetail, error) {
	book, ok, err := a.store.GetBook(bookID)
	if err != nil {
		return domain.BookDetail{}, fmt.Errorf("get book: %w", err)
	}
	if !ok {
		return domain.BookDetail{}, ErrBookNotFound
	}

	average, count, err := a.store.ReviewStats(bookID)
	if err != nil {
		return domain.BookDetail{}, fmt.Errorf("review stats: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultReviewsLimit
	}
	reviews, err := a.store.ListReviewsByBook(bookID, page, limit)
	if err != nil {
		return domain.BookDetail{}, fmt.Errorf("list reviews: %w", err)
	}

	expanded := make([]domain.ReviewWithUser, 0, len(reviews))
	for _, review := range reviews {
		entry := domain.ReviewWithUser{
			Review: review,
			User:   domain.ReviewUser{ID: review.UserID},
		}
		if user, ok, err := a.store.GetUserByID(review.UserID); err == nil && ok {
			entry.User.Name = user.Name
		}
		expanded = append(expanded, entry)
	}

	return domain.BookDetail{
		Book:          book,
		AverageRating: strconv.FormatFloat(average, 'f', 1, 64),
		ReviewCount:   count,
		Reviews:       expanded,
	}, nil
}

// SearchBooks runs a full-text search over title and author, ordered by
// descending relevance. Results are not paginated.
func (a *App) SearchBooks(query string) ([]domain.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrSearchQueryRequired
	}
	books, err := a.store.SearchBooks(query)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}
