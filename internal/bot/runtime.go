package bot

import (
	"context"
	"log/slog"

	"github.com/nhoyhub/esignhub/internal/adapter/telegram"
	"github.com/nhoyhub/esignhub/internal/workflow"
)

// Runtime owns the two polling loops and the transient workflow state.
type Runtime struct {
	userPoller  *telegram.Poller
	adminPoller *telegram.Poller
	store       *workflow.Store
	logger      *slog.Logger
}

// NewRuntime bundles the pollers and state store under one lifecycle.
func NewRuntime(userPoller, adminPoller *telegram.Poller, store *workflow.Store, logger *slog.Logger) *Runtime {
	return &Runtime{
		userPoller:  userPoller,
		adminPoller: adminPoller,
		store:       store,
		logger:      logger,
	}
}

// Start launches both polling loops.
func (r *Runtime) Start(ctx context.Context) {
	r.userPoller.Start(ctx)
	r.adminPoller.Start(ctx)
	r.logger.Info("approval bot started")
}

// Stop halts polling and cancels all scheduled follow-ups.
func (r *Runtime) Stop() {
	r.userPoller.Stop()
	r.adminPoller.Stop()
	r.store.Close()
	r.logger.Info("approval bot stopped")
}
