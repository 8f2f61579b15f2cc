package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

type envLookup func(string) (string, bool)

// API holds configuration for the order store HTTP service.
type API struct {
	RunAddress      string
	DatabaseURI     string
	AdminToken      string
	AdminUsername   string
	AdminPassword   string
	UploadsDir      string
	ShutdownTimeout time.Duration
}

// Bot holds configuration for the approval workflow bot process.
type Bot struct {
	UserBotToken    string
	AdminBotToken   string
	AdminChatID     int64
	TelegramAPIBase string
	OrderAPIAddress string
	OrderAPIToken   string
	PollTimeout     time.Duration
	SendTimeout     time.Duration
	CreateTimeout   time.Duration
	UpdateTimeout   time.Duration
	FollowupDelay   time.Duration
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8000"
	defaultUploadsDir      = "uploads"
	defaultAdminUsername   = "admin"
	defaultShutdownTimeout = 10 * time.Second

	defaultTelegramAPIBase = "https://api.telegram.org"
	defaultPollTimeout     = 30 * time.Second
	defaultSendTimeout     = 30 * time.Second
	defaultCreateTimeout   = 30 * time.Second
	defaultUpdateTimeout   = 10 * time.Second
	defaultFollowupDelay   = 30 * 24 * time.Hour
)

// LoadAPI parses order store configuration from flags and environment.
func LoadAPI() (*API, error) {
	return loadAPI(os.Args[1:], os.LookupEnv)
}

func loadAPI(args []string, lookup envLookup) (*API, error) {
	cfg := &API{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		AdminToken:      getString(lookup, "ADMIN_TOKEN", ""),
		AdminUsername:   getString(lookup, "ADMIN_USERNAME", defaultAdminUsername),
		AdminPassword:   getString(lookup, "ADMIN_PASSWORD", ""),
		UploadsDir:      getString(lookup, "UPLOADS_DIR", defaultUploadsDir),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("orderapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AdminToken, "admin-token", cfg.AdminToken, "Shared admin bearer token")
	fs.StringVar(&cfg.UploadsDir, "uploads-dir", cfg.UploadsDir, "Directory for payment screenshots")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}
	if cfg.AdminToken == "" {
		return nil, fmt.Errorf("admin token must be provided")
	}
	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("admin password must be provided")
	}

	return cfg, nil
}

// LoadBot parses bot configuration from flags and environment.
func LoadBot() (*Bot, error) {
	return loadBot(os.Args[1:], os.LookupEnv)
}

func loadBot(args []string, lookup envLookup) (*Bot, error) {
	cfg := &Bot{
		UserBotToken:    getString(lookup, "BOT_TOKEN", ""),
		AdminBotToken:   getString(lookup, "ADMIN_BOT_TOKEN", ""),
		TelegramAPIBase: getString(lookup, "TELEGRAM_API_BASE", defaultTelegramAPIBase),
		OrderAPIAddress: getString(lookup, "ORDER_API_ADDRESS", ""),
		OrderAPIToken:   getString(lookup, "ORDER_API_TOKEN", ""),
		PollTimeout:     getDuration(lookup, "POLL_TIMEOUT", defaultPollTimeout),
		SendTimeout:     getDuration(lookup, "SEND_TIMEOUT", defaultSendTimeout),
		CreateTimeout:   getDuration(lookup, "CREATE_ORDER_TIMEOUT", defaultCreateTimeout),
		UpdateTimeout:   getDuration(lookup, "UPDATE_STATUS_TIMEOUT", defaultUpdateTimeout),
		FollowupDelay:   getDuration(lookup, "FOLLOWUP_DELAY", defaultFollowupDelay),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	if v, ok := lookup("ADMIN_CHAT_ID"); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin chat id: %w", err)
		}
		cfg.AdminChatID = id
	}

	fs := flag.NewFlagSet("approvalbot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	followupStr := cfg.FollowupDelay.String()

	fs.StringVar(&cfg.OrderAPIAddress, "r", cfg.OrderAPIAddress, "Order API base URL")
	fs.StringVar(&cfg.OrderAPIToken, "order-api-token", cfg.OrderAPIToken, "Order API bearer token")
	fs.Int64Var(&cfg.AdminChatID, "admin-chat", cfg.AdminChatID, "Admin chat identifier")
	fs.StringVar(&followupStr, "followup-delay", followupStr, "Delay before the post-approval follow-up message")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.FollowupDelay, err = time.ParseDuration(followupStr); err != nil {
		return nil, fmt.Errorf("invalid followup delay: %w", err)
	}

	for _, d := range []*time.Duration{&cfg.PollTimeout, &cfg.SendTimeout, &cfg.CreateTimeout, &cfg.UpdateTimeout, &cfg.ShutdownTimeout} {
		if *d <= 0 {
			return nil, fmt.Errorf("timeouts must be positive")
		}
	}

	if cfg.UserBotToken == "" {
		return nil, fmt.Errorf("user bot token must be provided")
	}
	if cfg.AdminBotToken == "" {
		return nil, fmt.Errorf("admin bot token must be provided")
	}
	if cfg.AdminChatID == 0 {
		return nil, fmt.Errorf("admin chat id must be provided")
	}
	if cfg.OrderAPIAddress == "" {
		return nil, fmt.Errorf("order API address must be provided")
	}
	if cfg.OrderAPIToken == "" {
		return nil, fmt.Errorf("order API token must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
