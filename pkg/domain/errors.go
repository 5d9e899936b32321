package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWeakPassword       = errors.New("password does not meet requirements")
)

// Tenant errors
var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrQRCodeNotFound  = errors.New("QR code not found")
	ErrQRCodeInactive  = errors.New("QR code is inactive")
)

// Feedback errors
var (
	ErrInvalidRating = errors.New("rating must be between 1 and 10")
	ErrInvalidPage   = errors.New("page must be 1 or greater")
)

// Summarizer errors
var (
	ErrSummaryNotConfigured = errors.New("summarization is not configured")
	ErrSummaryUpstream      = errors.New("summarization upstream error")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
)
