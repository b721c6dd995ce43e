package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Villa717/sf241--react--restapi/internal/collection"
	"github.com/Villa717/sf241--react--restapi/internal/config"
	"github.com/Villa717/sf241--react--restapi/internal/logging"
	"github.com/Villa717/sf241--react--restapi/internal/prefs"
	"github.com/Villa717/sf241--react--restapi/internal/remote"
	"github.com/Villa717/sf241--react--restapi/internal/ui"
	"github.com/Villa717/sf241--react--restapi/internal/workflow"
)

// Options configure the postdeck application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/postdeck/prefs.toml
	APIURL       string // overrides api_url when set
	RefreshEvery int    // seconds; overrides refresh_interval when positive
}

// Run boots the postdeck TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	logger, closer, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := remote.NewClient(cfg.APIURL, remote.Options{
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := collection.NewStore(cfg.PageSize, logger)
	flow := workflow.New(client, store, logger)

	logger.Info().
		Str("api_url", client.BaseURL()).
		Int("page_size", cfg.PageSize).
		Dur("refresh_interval", cfg.RefreshInterval).
		Msg("postdeck starting")

	// Auto-reload replaces the collection, so it stays off unless configured.
	if cfg.RefreshInterval > 0 {
		StartPoller(ctx, flow, cfg.RefreshInterval, logger)
	}

	uiOpts := ui.Options{
		Context:       ctx,
		Workflow:      flow,
		APIURL:        client.BaseURL(),
		LogPath:       cfg.LogFile,
		ThemeName:     userPrefs.Theme,
		PrefsPath:     opts.PrefsPath,
		ConfirmDelete: userPrefs.ConfirmDelete,
		Logger:        logger,
	}
	err = ui.Run(uiOpts)
	logger.Info().Err(err).Msg("postdeck stopped")
	return err
}

func applyOverrides(cfg *config.Config, opts Options) {
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	if opts.RefreshEvery > 0 {
		cfg.RefreshInterval = time.Duration(opts.RefreshEvery) * time.Second
	}
}
