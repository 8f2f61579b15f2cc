package model

// Admin represents a panel operator allowed to manage orders.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
}
