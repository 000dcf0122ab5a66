package store

import (
	"sort"
	"strings"
	"sync"

	"bookreviews/pkg/domain"
)

// MemoryStore keeps all records in-process. It mirrors the ordering and
// aggregation semantics of GormStore so tests can run against it.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	email   map[string]string // email -> user ID
	books   map[string]domain.Book
	reviews map[string]domain.Review
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]domain.User),
		email:   make(map[string]string),
		books:   make(map[string]domain.Book),
		reviews: make(map[string]domain.Review),
	}
}

// users

func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	m.email[u.Email] = u.ID
	return nil
}

func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.email[email]
	return ok, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.email[email]
	if !ok {
		return domain.User{}, false, nil
	}
	u, ok := m.users[id]
	return u, ok, nil
}

func (m *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// books

func (m *MemoryStore) SaveBook(b domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[b.ID] = b
	return nil
}

func (m *MemoryStore) GetBook(id string) (domain.Book, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	return b, ok, nil
}

func (m *MemoryStore) ListBooks(filter domain.BookFilter, page, limit int) ([]domain.Book, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]domain.Book, 0, len(m.books))
	for _, b := range m.books {
		if filter.Author != "" && b.Author != filter.Author {
			continue
		}
		if filter.Genre != "" && b.Genre != filter.Genre {
			continue
		}
		matched = append(matched, b)
	}
	sortBooksNewestFirst(matched)
	total := int64(len(matched))
	return pageOf(matched, page, limit), total, nil
}

func (m *MemoryStore) SearchBooks(query string) ([]domain.Book, error) {
	terms := strings.Fields(strings.ToLower(query))
	m.mu.RLock()
	defer m.mu.RUnlock()

	type scored struct {
		book  domain.Book
		score int
	}
	var hits []scored
	for _, b := range m.books {
		haystack := strings.ToLower(b.Title + " " + b.Author)
		score := 0
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{book: b, score: score})
		}
	}
	// Matched-term count stands in for the tsvector rank of the SQL store.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].book.CreatedAt.After(hits[j].book.CreatedAt)
	})
	books := make([]domain.Book, 0, len(hits))
	for _, h := range hits {
		books = append(books, h.book)
	}
	return books, nil
}

// reviews

func (m *MemoryStore) SaveReview(r domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[r.ID] = r
	return nil
}

func (m *MemoryStore) GetReview(id string) (domain.Review, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reviews[id]
	return r, ok, nil
}

func (m *MemoryStore) DeleteReview(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reviews, id)
	return nil
}

func (m *MemoryStore) ListReviewsByBook(bookID string, page, limit int) ([]domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]domain.Review, 0)
	for _, r := range m.reviews {
		if r.BookID == bookID {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	return pageOf(matched, page, limit), nil
}

func (m *MemoryStore) ReviewStats(bookID string) (float64, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum float64
	var count int64
	for _, r := range m.reviews {
		if r.BookID == bookID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

func sortBooksNewestFirst(books []domain.Book) {
	sort.Slice(books, func(i, j int) bool {
		if !books[i].CreatedAt.Equal(books[j].CreatedAt) {
			return books[i].CreatedAt.After(books[j].CreatedAt)
		}
		return books[i].ID < books[j].ID
	})
}

func pageOf[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
