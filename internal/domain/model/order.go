package model

import "time"

// OrderStatus describes the approval lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusRejected OrderStatus = "rejected"
)

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusRejected:
		return true
	}
	return false
}

// Decided reports whether the status is a terminal admin decision.
func (s OrderStatus) Decided() bool {
	return s == OrderStatusApproved || s == OrderStatusRejected
}

// Order describes a purchase request persisted by the order store.
type Order struct {
	ID           int64
	Name         string
	UDID         string
	ImageURL     string
	Status       OrderStatus
	DownloadLink string
	Price        string
	CreatedAt    time.Time
}

// OrderPage is one page of a filtered order listing.
type OrderPage struct {
	Items    []Order
	Total    int
	Page     int
	PageSize int
}
