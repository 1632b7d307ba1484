package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_FAILED"
	ErrCodeDishNotFound     = "DISH_NOT_FOUND"
	ErrCodeCommentNotFound  = "COMMENT_NOT_FOUND"
	ErrCodeNotCommentAuthor = "NOT_COMMENT_AUTHOR"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business error that knows the HTTP status it maps to.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// Common domain errors
var (
	ErrUnauthorised           = NewDomainError(ErrCodeUnauthorised, "Unauthorized", http.StatusUnauthorized)
	ErrAdminRequired          = NewDomainError(ErrCodeForbidden, "You are not authorized to perform this operation!", http.StatusForbidden)
	ErrNotCommentAuthor       = NewDomainError(ErrCodeNotCommentAuthor, "You are not authorised to modify someone else's comment", http.StatusForbidden)
	ErrNotCommentAuthorDelete = NewDomainError(ErrCodeNotCommentAuthor, "You are not authorised to delete someone else's comment", http.StatusForbidden)
	ErrInvalidJSON            = NewDomainError(ErrCodeInvalidJSON, "request body must be valid JSON", http.StatusBadRequest)
)

// ErrDishNotFound reports that no dish exists under id.
func ErrDishNotFound(id string) *DomainError {
	return NewDomainError(ErrCodeDishNotFound, fmt.Sprintf("Dish %s not found", id), http.StatusNotFound)
}

// ErrCommentNotFound reports that the dish has no comment under id.
func ErrCommentNotFound(id string) *DomainError {
	return NewDomainError(ErrCodeCommentNotFound, fmt.Sprintf("Comment %s not found", id), http.StatusNotFound)
}

// ErrValidation wraps a payload validation failure.
func ErrValidation(err error) *DomainError {
	return NewDomainError(ErrCodeValidation, err.Error(), http.StatusBadRequest)
}

// HasCode reports whether err is a DomainError carrying code.
func HasCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
