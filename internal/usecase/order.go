package usecase

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	domainErrors "github.com/nhoyhub/esignhub/internal/domain/errors"
	"github.com/nhoyhub/esignhub/internal/domain/model"
	"github.com/nhoyhub/esignhub/internal/domain/repository"
)

// Listing bounds. Page size is clamped, never rejected.
const (
	defaultPageSize = 12
	maxPageSize     = 50
)

var priceRe = regexp.MustCompile(`\$(\d+)`)

// FileStore persists uploaded screenshot bytes and serves them by URL path.
type FileStore interface {
	Save(originalName string, data []byte) (string, error)
	Remove(publicPath string) error
}

// OrderUseCase encapsulates order store lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
	config repository.ConfigRepository
	files  FileStore
	logger *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, config repository.ConfigRepository, files FileStore, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, config: config, files: files, logger: logger}
}

// Create stores the screenshot and inserts a pending order. The price is
// extracted from the "$N" fragment embedded in the display name.
func (u *OrderUseCase) Create(ctx context.Context, name, udid, imageName string, image []byte) (*model.Order, error) {
	if len(image) == 0 {
		return nil, domainErrors.ErrEmptyImage
	}

	price := "N/A"
	if m := priceRe.FindStringSubmatch(name); m != nil {
		price = m[1]
	}

	imageURL, err := u.files.Save(imageName, image)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.Create(ctx, repository.OrderDraft{
		Name:     name,
		UDID:     udid,
		ImageURL: imageURL,
		Price:    price,
	})
	if err != nil {
		if rmErr := u.files.Remove(imageURL); rmErr != nil {
			u.logger.Warn("orphaned upload left behind", slog.String("path", imageURL), slog.String("error", rmErr.Error()))
		}
		return nil, err
	}
	return order, nil
}

// List returns one page of orders. Non-admin callers see the configured
// placeholder instead of the real screenshot URL.
func (u *OrderUseCase) List(ctx context.Context, filter repository.OrderFilter, adminView bool) (*model.OrderPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize < 1 {
		filter.PageSize = 1
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	items, total, err := u.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if !adminView {
		placeholder, err := u.config.Get(ctx, model.ConfigKeyPublicImage)
		if err != nil {
			if !errors.Is(err, domainErrors.ErrNotFound) {
				return nil, err
			}
			placeholder = model.DefaultPublicImageURL
		}
		for i := range items {
			items[i].ImageURL = placeholder
		}
	}

	return &model.OrderPage{Items: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

// Get fetches a single order.
func (u *OrderUseCase) Get(ctx context.Context, id int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// Decide transitions a pending order to approved or rejected, exactly once.
func (u *OrderUseCase) Decide(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Decided() {
		return nil, domainErrors.ErrInvalidStatus
	}
	if err := u.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, id)
}

// UpdateParams carries the optional fields of an order edit. Status is
// deliberately absent; decisions go through Decide.
type UpdateParams struct {
	Name         *string
	UDID         *string
	DownloadLink *string
	Image        []byte
	ImageName    string
}

// Update applies a partial edit and returns the updated order.
func (u *OrderUseCase) Update(ctx context.Context, id int64, params UpdateParams) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		order.Name = *params.Name
	}
	if params.UDID != nil {
		order.UDID = *params.UDID
	}
	if params.DownloadLink != nil {
		order.DownloadLink = *params.DownloadLink
		if order.DownloadLink == "" {
			order.DownloadLink = model.DefaultDownloadLink
		}
	}

	oldImage := ""
	if len(params.Image) > 0 {
		imageURL, err := u.files.Save(params.ImageName, params.Image)
		if err != nil {
			return nil, err
		}
		oldImage = order.ImageURL
		order.ImageURL = imageURL
	}

	if err := u.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	if oldImage != "" {
		if err := u.files.Remove(oldImage); err != nil {
			u.logger.Warn("stale upload not removed", slog.String("path", oldImage), slog.String("error", err.Error()))
		}
	}
	return order, nil
}

// Delete removes an order and its stored screenshot.
func (u *OrderUseCase) Delete(ctx context.Context, id int64) error {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.orders.Delete(ctx, id); err != nil {
		return err
	}
	if err := u.files.Remove(order.ImageURL); err != nil {
		u.logger.Warn("upload not removed on delete", slog.String("path", order.ImageURL), slog.String("error", err.Error()))
	}
	return nil
}
