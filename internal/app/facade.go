package app

import (
	"context"

	"github.com/nhoyhub/esignhub/internal/domain/model"
	"github.com/nhoyhub/esignhub/internal/domain/repository"
	"github.com/nhoyhub/esignhub/internal/storage/postgres"
	"github.com/nhoyhub/esignhub/internal/usecase"
)

// StoreFacade aggregates the order store operations exposed over HTTP.
type StoreFacade struct {
	orders   *usecase.OrderUseCase
	settings *usecase.SettingsUseCase
	auth     *usecase.AuthUseCase
	storage  *postgres.Storage
}

// NewStoreFacade constructs StoreFacade.
func NewStoreFacade(orders *usecase.OrderUseCase, settings *usecase.SettingsUseCase, auth *usecase.AuthUseCase, storage *postgres.Storage) *StoreFacade {
	return &StoreFacade{orders: orders, settings: settings, auth: auth, storage: storage}
}

func (f *StoreFacade) Login(ctx context.Context, username, password string) (string, error) {
	return f.auth.Login(ctx, username, password)
}

func (f *StoreFacade) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	return f.auth.EnsureDefaultAdmin(ctx, username, password)
}

func (f *StoreFacade) CreateOrder(ctx context.Context, name, udid, imageName string, image []byte) (*model.Order, error) {
	return f.orders.Create(ctx, name, udid, imageName, image)
}

func (f *StoreFacade) Orders(ctx context.Context, filter repository.OrderFilter, adminView bool) (*model.OrderPage, error) {
	return f.orders.List(ctx, filter, adminView)
}

func (f *StoreFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *StoreFacade) UpdateOrder(ctx context.Context, id int64, params usecase.UpdateParams) (*model.Order, error) {
	return f.orders.Update(ctx, id, params)
}

func (f *StoreFacade) DecideOrder(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	return f.orders.Decide(ctx, id, status)
}

func (f *StoreFacade) DeleteOrder(ctx context.Context, id int64) error {
	return f.orders.Delete(ctx, id)
}

func (f *StoreFacade) Settings(ctx context.Context) (map[string]string, error) {
	return f.settings.Snapshot(ctx)
}

func (f *StoreFacade) SetPublicImage(ctx context.Context, url string) error {
	return f.settings.SetPublicImage(ctx, url)
}

func (f *StoreFacade) SetGalleryImage(ctx context.Context, slot int, url string) error {
	return f.settings.SetGalleryImage(ctx, slot, url)
}

func (f *StoreFacade) HealthCheck(ctx context.Context) error {
	return f.storage.HealthCheck(ctx)
}
