package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Order store validation failures.
	ErrEmptyImage         = errors.New("empty image")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrOrderDecided       = errors.New("order already decided")
	ErrInvalidGallerySlot = errors.New("gallery image number out of range")
	ErrEmptyImageURL      = errors.New("image url cannot be empty")

	// Workflow business rules.
	ErrInvalidUDID       = errors.New("invalid udid format")
	ErrInvalidPlan       = errors.New("unknown payment plan")
	ErrSessionExpired    = errors.New("session expired")
	ErrAlreadyProcessing = errors.New("request already being processed")
	ErrExpiredApproval   = errors.New("approval request expired or unknown")
)
