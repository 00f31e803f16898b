package services

import "errors"

var (
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrCoachNotFound  = errors.New("coach not found")
	ErrClientNotFound = errors.New("client not found")
)
