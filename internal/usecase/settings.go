package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/nhoyhub/esignhub/internal/domain/errors"
	"github.com/nhoyhub/esignhub/internal/domain/model"
	"github.com/nhoyhub/esignhub/internal/domain/repository"
)

// SettingsUseCase manages the placeholder image and gallery slots.
type SettingsUseCase struct {
	config repository.ConfigRepository
}

// NewSettingsUseCase constructs SettingsUseCase.
func NewSettingsUseCase(config repository.ConfigRepository) *SettingsUseCase {
	return &SettingsUseCase{config: config}
}

// Snapshot returns all known config values, falling back to defaults for
// keys that were never stored.
func (u *SettingsUseCase) Snapshot(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, model.GallerySlots+1)

	value, err := u.get(ctx, model.ConfigKeyPublicImage, model.DefaultPublicImageURL)
	if err != nil {
		return nil, err
	}
	out[model.ConfigKeyPublicImage] = value

	for i := 1; i <= model.GallerySlots; i++ {
		key := model.GalleryKey(i)
		value, err := u.get(ctx, key, model.DefaultGalleryImage)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

func (u *SettingsUseCase) get(ctx context.Context, key, fallback string) (string, error) {
	value, err := u.config.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return fallback, nil
		}
		return "", err
	}
	return value, nil
}

// SetPublicImage replaces the placeholder shown to non-admin listings.
func (u *SettingsUseCase) SetPublicImage(ctx context.Context, url string) error {
	if url == "" {
		return domainErrors.ErrEmptyImageURL
	}
	return u.config.Put(ctx, model.ConfigKeyPublicImage, url)
}

// SetGalleryImage replaces one of the fixed gallery slots.
func (u *SettingsUseCase) SetGalleryImage(ctx context.Context, slot int, url string) error {
	if slot < 1 || slot > model.GallerySlots {
		return domainErrors.ErrInvalidGallerySlot
	}
	if url == "" {
		return domainErrors.ErrEmptyImageURL
	}
	return u.config.Put(ctx, model.GalleryKey(slot), url)
}
