package di

import (
	"go.uber.org/fx"

	"github.com/nhoyhub/esignhub/internal/app"
	"github.com/nhoyhub/esignhub/internal/bot"
	"github.com/nhoyhub/esignhub/internal/config"
	"github.com/nhoyhub/esignhub/internal/logger"
	"github.com/nhoyhub/esignhub/internal/pkg/auth"
	"github.com/nhoyhub/esignhub/internal/server/http/router"
	"github.com/nhoyhub/esignhub/internal/storage/files"
	"github.com/nhoyhub/esignhub/internal/storage/postgres"
	"github.com/nhoyhub/esignhub/internal/usecase"
)

// APIModule assembles the order store HTTP service.
func APIModule(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.APIModule,
		logger.Module,
		auth.Module,
		postgres.Module,
		files.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

// BotModule assembles the approval bot process.
func BotModule(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.BotModule,
		logger.Module,
		bot.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
