package services

import "errors"

// ErrNotFound matches every not-found error returned by the services.
var ErrNotFound = errors.New("not found")

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

var (
	ErrSessionNotFound      = &NotFoundError{Entity: "Session"}
	ErrProfileNotFound      = &NotFoundError{Entity: "Profile"}
	ErrSlotNotFound         = &NotFoundError{Entity: "Slot"}
	ErrRequestNotFound      = &NotFoundError{Entity: "Request"}
	ErrNotificationNotFound = &NotFoundError{Entity: "Notification"}
)

var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrRequestProcessed   = errors.New("Request already processed")
)
