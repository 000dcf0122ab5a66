package app

import "errors"

var (
	ErrBookNotFound   = errors.New("Book not found")
	ErrReviewNotFound = errors.New("Review not found")

	// ErrNotReviewOwner is returned when a caller acts on a review submitted
	// by another user.
	ErrNotReviewOwner = errors.New("Not authorized to modify this review")

	ErrSearchQueryRequired = errors.New("Search query is required")
	ErrMissingBookFields   = errors.New("title, author and genre are required")

	// ErrInvalidCredentials is shown to end users and deliberately does not
	// reveal whether the email is registered.
	ErrInvalidCredentials = errors.New("Incorrect email address or password")

	ErrSignupFieldsRequired = errors.New("name, email and password are required")
	ErrEmailAlreadyExists   = errors.New("email already exists")
)
