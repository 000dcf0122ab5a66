package server

import (
	"net/http"
	"strings"

	"bookreviews/pkg/domain"
)

type submitReviewRequest struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// updateReviewRequest uses pointers so that absent fields are left unchanged
// while explicit zero values (rating 0, empty comment) are applied.
type updateReviewRequest struct {
	Rating  *float64 `json:"rating"`
	Comment *string  `json:"comment"`
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request, user domain.User, bookID string) {
	var req submitReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	review, err := s.app.SubmitReview(user, bookID, req.Rating, req.Comment)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) handleReviewByID(w http.ResponseWriter, r *http.Request) {
	reviewID := strings.TrimPrefix(r.URL.Path, "/api/reviews/")
	if reviewID == "" || strings.Contains(reviewID, "/") {
		http.NotFound(w, r)
		return
	}
	user, ok := s.authorize(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPut:
		s.handleUpdateReview(w, r, user, reviewID)
	case http.MethodDelete:
		s.handleDeleteReview(w, user, reviewID)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request, user domain.User, reviewID string) {
	var req updateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	review, err := s.app.UpdateReview(user, reviewID, req.Rating, req.Comment)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, user domain.User, reviewID string) {
	if err := s.app.DeleteReview(user, reviewID); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Review removed"})
}
