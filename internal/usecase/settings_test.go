package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/nhoyhub/esignhub/internal/domain/errors"
	"github.com/nhoyhub/esignhub/internal/domain/model"
)

func TestSettingsSnapshotUsesDefaultsForMissingKeys(t *testing.T) {
	uc := NewSettingsUseCase(stubConfigRepository{})

	snapshot, err := uc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snapshot) != model.GallerySlots+1 {
		t.Fatalf("expected %d entries, got %d", model.GallerySlots+1, len(snapshot))
	}
	if snapshot[model.ConfigKeyPublicImage] != model.DefaultPublicImageURL {
		t.Fatalf("unexpected placeholder %q", snapshot[model.ConfigKeyPublicImage])
	}
	for i := 1; i <= model.GallerySlots; i++ {
		if snapshot[model.GalleryKey(i)] != model.DefaultGalleryImage {
			t.Fatalf("slot %d missing default", i)
		}
	}
}

func TestSettingsSnapshotPrefersStoredValues(t *testing.T) {
	uc := NewSettingsUseCase(stubConfigRepository{values: map[string]string{
		model.ConfigKeyPublicImage: "https://cdn.example/custom.jpg",
		model.GalleryKey(3):        "https://cdn.example/slot3.jpg",
	}})

	snapshot, err := uc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot[model.ConfigKeyPublicImage] != "https://cdn.example/custom.jpg" {
		t.Fatalf("stored placeholder ignored: %q", snapshot[model.ConfigKeyPublicImage])
	}
	if snapshot[model.GalleryKey(3)] != "https://cdn.example/slot3.jpg" {
		t.Fatalf("stored slot ignored: %q", snapshot[model.GalleryKey(3)])
	}
	if snapshot[model.GalleryKey(1)] != model.DefaultGalleryImage {
		t.Fatal("unset slots should keep defaults")
	}
}

func TestSettingsSetPublicImageValidatesURL(t *testing.T) {
	uc := NewSettingsUseCase(stubConfigRepository{values: map[string]string{}})

	if err := uc.SetPublicImage(context.Background(), ""); !errors.Is(err, domainErrors.ErrEmptyImageURL) {
		t.Fatalf("expected empty url error, got %v", err)
	}
	if err := uc.SetPublicImage(context.Background(), "https://cdn.example/x.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSettingsSetGalleryImageValidatesSlot(t *testing.T) {
	var gotKey string
	cfg := stubConfigRepository{putFn: func(key, _ string) error {
		gotKey = key
		return nil
	}}
	uc := NewSettingsUseCase(cfg)

	for _, slot := range []int{0, -1, model.GallerySlots + 1} {
		if err := uc.SetGalleryImage(context.Background(), slot, "https://x"); !errors.Is(err, domainErrors.ErrInvalidGallerySlot) {
			t.Fatalf("slot %d: expected invalid slot error, got %v", slot, err)
		}
	}
	if err := uc.SetGalleryImage(context.Background(), 2, ""); !errors.Is(err, domainErrors.ErrEmptyImageURL) {
		t.Fatalf("expected empty url error, got %v", err)
	}

	if err := uc.SetGalleryImage(context.Background(), 2, "https://cdn.example/x.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != model.GalleryKey(2) {
		t.Fatalf("wrote to wrong key %q", gotKey)
	}
}
