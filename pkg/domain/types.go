package domain

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Book is a catalog record. Books are never updated or deleted once created;
// the only mutations in this surface happen on reviews.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	PublishedYear int       `json:"publishedYear,omitempty"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book"`
	UserID    string    `json:"user"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewWithUser is a review with its author reference expanded for display.
type ReviewWithUser struct {
	Review
	User ReviewUser `json:"user"`
}

// ReviewUser is the subset of User embedded in expanded reviews.
type ReviewUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookDetail is a book plus rating aggregates computed over the full review
// set and one page of expanded reviews.
type BookDetail struct {
	Book
	AverageRating string           `json:"averageRating"`
	ReviewCount   int64            `json:"reviewCount"`
	Reviews       []ReviewWithUser `json:"reviews"`
}

// BookPage is the pagination envelope returned by the book listing.
type BookPage struct {
	Docs        []Book `json:"docs"`
	TotalDocs   int64  `json:"totalDocs"`
	Limit       int    `json:"limit"`
	Page        int    `json:"page"`
	TotalPages  int    `json:"totalPages"`
	HasPrevPage bool   `json:"hasPrevPage"`
	HasNextPage bool   `json:"hasNextPage"`
}

// BookFilter narrows a listing by exact match on author and/or genre.
type BookFilter struct {
	Author string
	Genre  string
}
