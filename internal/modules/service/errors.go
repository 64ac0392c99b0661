package service

import "errors"

// Service layer errors for better error handling
var (
	ErrNotFound  = errors.New("record not found")
	ErrSlugTaken = errors.New("slug is already in use")

	// Challenge errors
	ErrChallengeClosed = errors.New("challenge is not accepting scores")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
