package repository

import (
	"context"

	"github.com/nhoyhub/esignhub/internal/domain/model"
)

// OrderFilter narrows and pages an order listing.
type OrderFilter struct {
	Status   *model.OrderStatus
	Query    string
	Page     int
	PageSize int
	SortAsc  bool
}

// OrderDraft carries the fields of an order being created.
type OrderDraft struct {
	Name         string
	UDID         string
	ImageURL     string
	Price        string
	DownloadLink string
}

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, draft OrderDraft) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, int, error)
	Update(ctx context.Context, order *model.Order) error
	// UpdateStatus transitions a pending order to a terminal status.
	// A second transition fails with ErrOrderDecided.
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error
	Delete(ctx context.Context, id int64) error
}
