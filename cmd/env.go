package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abhisek/lessoncraft/internal/app"
	"github.com/abhisek/lessoncraft/internal/assist"
	"github.com/abhisek/lessoncraft/internal/config"
	"github.com/abhisek/lessoncraft/internal/llm"
	"github.com/abhisek/lessoncraft/internal/logger"
	"github.com/abhisek/lessoncraft/internal/planner"
	"github.com/abhisek/lessoncraft/internal/repository"
	"github.com/abhisek/lessoncraft/internal/settings"
	"github.com/abhisek/lessoncraft/internal/store"
	"github.com/abhisek/lessoncraft/internal/ui/theme"
)

// env is everything a command needs, built once per invocation.
type env struct {
	cfg   *config.Config
	log   *logger.Logger
	store *store.Store

	repo  *repository.Repository
	prefs *settings.Store

	// provider and images are nil when no API key is configured. The
	// services then answer every call with the missing-key message.
	provider llm.Provider
	images   llm.ImageGenerator
}

// loadConfig reads configuration and applies the --db flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.Path = p
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db or the config file
// (highest priority), then LESSONCRAFT_DB env var, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.Store.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens only the database, for commands that never call a model.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// setup loads configuration and opens the store, the logger and the LLM
// provider. A missing API key is not an error here.
func setup(cmd *cobra.Command) (*env, error) {
	ctx := commandContext(cmd)
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Options{Mode: cfg.Log.Mode, Level: cfg.Log.Level, Path: cfg.Log.Path})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	e := &env{
		cfg:   cfg,
		log:   log,
		store: st,
		repo:  repository.Open(ctx, st.KVRepo(), log),
		prefs: settings.Open(ctx, st.KVRepo(), log),
	}

	if err := cfg.LLM.Validate(); err != nil {
		log.Warn("LLM provider not configured", "error", err)
		return e, nil
	}
	e.provider, e.images, err = llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
	if err != nil {
		log.Warn("LLM provider unavailable", "provider", cfg.LLM.Provider, "error", err)
		e.provider, e.images = nil, nil
	}
	return e, nil
}

func (e *env) Close() {
	e.log.Sync()
	e.store.Close()
}

func (e *env) plannerConfig() planner.Config {
	c := planner.DefaultConfig()
	c.GenerateTimeout = e.cfg.Timeouts.Generate
	c.ImageTimeout = e.cfg.Timeouts.Image
	return c
}

func (e *env) planner() *planner.Service {
	return planner.NewService(e.provider, e.images, e.plannerConfig(), e.log)
}

func (e *env) assist() *assist.Service {
	c := assist.DefaultConfig()
	c.Timeout = e.cfg.Timeouts.Suggest
	return assist.NewService(e.provider, c, e.log)
}

func (e *env) controller(gen app.Generator, confirm app.Confirmer) *app.Controller {
	return app.New(app.Options{
		Generator:   gen,
		Repository:  e.repo,
		Preferences: e.prefs,
		Confirmer:   confirm,
		Logger:      e.log,
	})
}

func (e *env) styles() theme.Styles {
	return theme.For(e.prefs.Get().Theme)
}

// isTerminal reports whether stdout is an interactive terminal.
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// commandContext returns the command's context, or Background when run
// outside Execute (as in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
