package repository

import (
	"context"

	"github.com/nhoyhub/esignhub/internal/domain/model"
)

// AdminRepository describes persistence operations for panel admins.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	// Ensure creates the admin if no row with that username exists.
	Ensure(ctx context.Context, username, passwordHash string) error
}
