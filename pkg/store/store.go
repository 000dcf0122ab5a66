package store

import "bookreviews/pkg/domain"

// Store defines persistence operations for users, books, and reviews.
// Pagination, text ranking, and rating aggregation are owned by the backing
// store; callers only see ordered pages and computed aggregates.
type Store interface {
	// users
	SaveUser(domain.User) error
	HasUserEmail(email string) (bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id string) (domain.User, bool, error)

	// books
	SaveBook(domain.Book) error
	GetBook(id string) (domain.Book, bool, error)
	// ListBooks returns one page ordered by createdAt descending plus the
	// total count of books matching the filter.
	ListBooks(filter domain.BookFilter, page, limit int) ([]domain.Book, int64, error)
	// SearchBooks runs a full-text match over title and author, ordered by
	// descending relevance.
	SearchBooks(query string) ([]domain.Book, error)

	// reviews
	SaveReview(domain.Review) error
	GetReview(id string) (domain.Review, bool, error)
	DeleteReview(id string) error
	// ListReviewsByBook returns one page ordered by createdAt descending.
	ListReviewsByBook(bookID string, page, limit int) ([]domain.Review, error)
	// ReviewStats aggregates over the full review set of a book.
	ReviewStats(bookID string) (average float64, count int64, err error)
}

// SessionStore issues and resolves session tokens.
type SessionStore interface {
	NewSession(userID string) (string, error)
	GetUserIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}
