package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/mijahauan/EG-HG/internal/config"
	"github.com/mijahauan/EG-HG/internal/ctxlog"
	"github.com/mijahauan/EG-HG/internal/game"
	"github.com/mijahauan/EG-HG/internal/metrics"
	"github.com/mijahauan/EG-HG/internal/transform"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	loader     config.Loader
	metrics    *metrics.Recorder
	game       *game.Game
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, metrics registry
// and game.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	rec := metrics.New()
	g := game.New(
		game.WithLibrary(transform.Default()),
		game.WithLogger(logger),
		game.WithRecorder(rec),
	)

	return &App{
		ctx:     ctxlog.WithLogger(context.Background(), logger),
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loader:  loader,
		metrics: rec,
		game:    g,
	}
}

// Game returns the application's game. This is primarily for testing.
func (a *App) Game() *game.Game {
	return a.game
}

// Metrics returns the application's metrics recorder.
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}
