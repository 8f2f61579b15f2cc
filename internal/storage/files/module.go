package files

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/nhoyhub/esignhub/internal/config"
)

// Module exposes the upload file store to the fx graph.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Config *config.API
	Logger *slog.Logger
}

func newStore(p storeParams) (*Store, error) {
	return New(p.Config.UploadsDir, p.Logger)
}
