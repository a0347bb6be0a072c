package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Tenant errors
var (
	ErrNoOrganization       = errors.New("no organization resolved")
	ErrOrganizationNotFound = errors.New("organization not found")
)

// Ledger errors
var (
	ErrLoanNotFound     = errors.New("loan not found")
	ErrBorrowerNotFound = errors.New("borrower not found")
)
