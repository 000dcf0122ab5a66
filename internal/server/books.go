package server

import (
	"net/http"
	"strings"

	"bookreviews/pkg/domain"
)

type addBookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	PublishedYear int    `json:"publishedYear"`
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListBooks(w, r)
	case http.MethodPost:
		user, ok := s.authorize(w, r)
		if !ok {
			return
		}
		s.handleAddBook(w, r, user)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request, user domain.User) {
	var req addBookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	book, err := s.app.AddBook(user, req.Title, req.Author, req.Genre, req.PublishedYear)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := positiveIntOrDefault(query.Get("page"), 1)
	limit := positiveIntOrDefault(query.Get("limit"), 10)
	filter := domain.BookFilter{
		Author: query.Get("author"),
		Genre:  query.Get("genre"),
	}
	result, err := s.app.ListBooks(page, limit, filter)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	books, err := s.app.SearchBooks(r.URL.Query().Get("query"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	if books == nil {
		books = []domain.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

// handleBookSubtree dispatches /api/books/{id} and /api/books/{id}/reviews.
func (s *Server) handleBookSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/books/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleBookDetail(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "reviews":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		user, ok := s.authorize(w, r)
		if !ok {
			return
		}
		s.handleSubmitReview(w, r, user, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleBookDetail(w http.ResponseWriter, r *http.Request, bookID string) {
	query := r.URL.Query()
	page := positiveIntOrDefault(query.Get("page"), 1)
	limit := positiveIntOrDefault(query.Get("limit"), 5)
	detail, err := s.app.GetBookDetail(bookID, page, limit)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
