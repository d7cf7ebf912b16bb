package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dvila/tally/internal/auth"
	"github.com/dvila/tally/internal/config"
	"github.com/dvila/tally/internal/feed"
	"github.com/dvila/tally/internal/ledger"
	"github.com/dvila/tally/internal/prefs"
	"github.com/dvila/tally/internal/state"
	"github.com/dvila/tally/internal/ui"
)

// Options configure the tally application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tally/prefs.toml
	PollEvery  int    // seconds; zero uses default
	User       string // overrides the stored session when set
	Demo       bool   // seeded in-memory store, no database or session
}

// Run boots the tally TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	userPrefs := prefs.Load(opts.PrefsPath)

	var (
		owner    uuid.UUID
		store    ledger.Store
		listener *feed.Listener // nil disables the change feed
	)
	if opts.Demo {
		owner = uuid.New()
		store, err = seedDemoStore(ctx, owner)
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	} else {
		owner, err = resolveOwner(cfg, opts.User)
		if err != nil {
			return err
		}

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		store = ledger.NewPGStore(pool)
		listener = feed.NewListener(cfg.FeedURL, log)
	}

	interval := time.Duration(0)
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	collection := state.New(state.Options{
		Store:        store,
		Owner:        owner,
		Feed:         listener,
		PollInterval: interval,
		Log:          log,
	})
	collection.Start(ctx)
	defer collection.Stop()

	log.Info().Str("user", owner.String()).Bool("demo", opts.Demo).Msg("tally started")

	return ui.Run(ctx, ui.Options{
		Collection: collection,
		Store:      store,
		Owner:      owner,
		PrefsPath:  opts.PrefsPath,
		Theme:      userPrefs.Theme,
		Log:        log,
	})
}

// resolveOwner picks the signed-in user: an explicit -user flag wins over the
// stored session file.
func resolveOwner(cfg config.Config, override string) (uuid.UUID, error) {
	if override != "" {
		owner, err := uuid.Parse(override)
		if err != nil {
			return uuid.Nil, fmt.Errorf("parse user id %q: %w", override, err)
		}
		return owner, nil
	}

	owner, err := auth.CurrentUser(cfg.SessionPath)
	if err != nil {
		return uuid.Nil, fmt.Errorf("no session found, run `tally login <user-id>` first: %w", err)
	}
	return owner, nil
}

// openLogger creates the log directory and returns a file-backed logger.
// The TUI owns the terminal, so logs never go to stderr while running.
func openLogger(cfg config.Config) (zerolog.Logger, func(), error) {
	path := cfg.LogFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	log := zerolog.New(file).With().Timestamp().Logger()
	return log, func() { _ = file.Close() }, nil
}
