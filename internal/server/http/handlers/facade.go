package handlers

import (
	"context"

	"github.com/nhoyhub/esignhub/internal/domain/model"
	"github.com/nhoyhub/esignhub/internal/domain/repository"
	"github.com/nhoyhub/esignhub/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, name, udid, imageName string, image []byte) (*model.Order, error)
	Orders(ctx context.Context, filter repository.OrderFilter, adminView bool) (*model.OrderPage, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
	UpdateOrder(ctx context.Context, id int64, params usecase.UpdateParams) (*model.Order, error)
	DecideOrder(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

// SettingsFacade provides configuration operations.
type SettingsFacade interface {
	Settings(ctx context.Context) (map[string]string, error)
	SetPublicImage(ctx context.Context, url string) error
	SetGalleryImage(ctx context.Context, slot int, url string) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	OrderFacade
	SettingsFacade
	HealthCheck(ctx context.Context) error
}
