package app

import (
	"fmt"

	"github.com/mijahauan/EG-HG/internal/config"
	"github.com/mijahauan/EG-HG/internal/ctxlog"
)

// LoadFolio reads the configured folio path and fills the game's folio with
// its graphs. The loaded model is returned for its innings.
func (a *App) LoadFolio() (*config.Model, error) {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Loading folio...", "folio_path", a.config.FolioPath)

	model, err := a.loader.Load(a.ctx, a.config.FolioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load folio: %w", err)
	}
	if len(model.Graphs) == 0 && len(model.Innings) == 0 {
		logger.Warn("No graphs or innings found in folio path.", "path", a.config.FolioPath)
	}

	if err := a.game.LoadFolio(a.ctx, model); err != nil {
		return nil, fmt.Errorf("failed to build folio: %w", err)
	}
	logger.Info("Folio loaded successfully.", "graphs", len(model.Graphs), "innings", len(model.Innings))
	return model, nil
}
