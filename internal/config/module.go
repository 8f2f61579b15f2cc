package config

import "go.uber.org/fx"

// APIModule exposes the order store configuration loader for fx graphs.
var APIModule = fx.Provide(LoadAPI)

// BotModule exposes the bot configuration loader for fx graphs.
var BotModule = fx.Provide(LoadBot)
