package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/nhoyhub/esignhub/internal/config"
	"github.com/nhoyhub/esignhub/internal/domain/repository"
	pkgAuth "github.com/nhoyhub/esignhub/internal/pkg/auth"
	"github.com/nhoyhub/esignhub/internal/storage/files"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newOrderUseCase,
	NewSettingsUseCase,
	newAuthUseCase,
)

type orderParams struct {
	fx.In

	Orders repository.OrderRepository
	Config repository.ConfigRepository
	Files  *files.Store
	Logger *slog.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Config, p.Files, p.Logger)
}

type authParams struct {
	fx.In

	Admins repository.AdminRepository
	Hasher pkgAuth.PasswordHasher
	Config *config.API
}

func newAuthUseCase(p authParams) *AuthUseCase {
	return NewAuthUseCase(p.Admins, p.Hasher, p.Config.AdminToken)
}
