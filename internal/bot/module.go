package bot

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/nhoyhub/esignhub/internal/adapter/orderapi"
	"github.com/nhoyhub/esignhub/internal/adapter/telegram"
	"github.com/nhoyhub/esignhub/internal/config"
	"github.com/nhoyhub/esignhub/internal/workflow"
)

// clients keeps the two bot identities apart in the dependency graph.
type clients struct {
	user  *telegram.Client
	admin *telegram.Client
}

func newClients(cfg *config.Bot, logger *slog.Logger) (*clients, error) {
	user, err := telegram.NewClient(cfg.TelegramAPIBase, cfg.UserBotToken, logger)
	if err != nil {
		return nil, fmt.Errorf("user bot client: %w", err)
	}
	admin, err := telegram.NewClient(cfg.TelegramAPIBase, cfg.AdminBotToken, logger)
	if err != nil {
		return nil, fmt.Errorf("admin bot client: %w", err)
	}
	return &clients{user: user, admin: admin}, nil
}

func newNotifier(c *clients, cfg *config.Bot) *telegram.Notifier {
	return telegram.NewNotifier(c.user, c.admin, cfg.AdminChatID)
}

func newOrderClient(cfg *config.Bot, logger *slog.Logger) (*orderapi.Client, error) {
	return orderapi.NewClient(cfg.OrderAPIAddress, cfg.OrderAPIToken, logger)
}

func newEngine(store *workflow.Store, orders *orderapi.Client, notifier *telegram.Notifier, cfg *config.Bot, logger *slog.Logger) *workflow.Engine {
	opts := workflow.Options{
		CreateTimeout: cfg.CreateTimeout,
		UpdateTimeout: cfg.UpdateTimeout,
		SendTimeout:   cfg.SendTimeout,
		FollowupDelay: cfg.FollowupDelay,
	}
	return workflow.NewEngine(store, orders, notifier, notifier, opts, logger)
}

func newRuntime(c *clients, engine *workflow.Engine, store *workflow.Store, cfg *config.Bot, logger *slog.Logger) *Runtime {
	userPoller := telegram.NewPoller(c.user, engine.HandleUserEvent, cfg.PollTimeout, logger.With(slog.String("poller", "user")))
	adminPoller := telegram.NewPoller(c.admin, engine.HandleAdminEvent, cfg.PollTimeout, logger.With(slog.String("poller", "admin")))
	return NewRuntime(userPoller, adminPoller, store, logger)
}

func registerLifecycle(lc fx.Lifecycle, runtime *Runtime) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			runtime.Start(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			runtime.Stop()
			return nil
		},
	})
}

// Module assembles the approval bot runtime.
var Module = fx.Options(
	fx.Provide(
		newClients,
		newNotifier,
		newOrderClient,
		workflow.NewStore,
		newEngine,
		newRuntime,
	),
	fx.Invoke(registerLifecycle),
)
