package app

import (
	"context"
	"fmt"

	"github.com/mijahauan/EG-HG/internal/clif"
	"github.com/mijahauan/EG-HG/internal/config"
	"github.com/mijahauan/EG-HG/internal/ctxlog"
	"github.com/mijahauan/EG-HG/internal/egraph"
	"github.com/mijahauan/EG-HG/internal/session"
)

// Run executes the main application logic: translate a single sentence when
// asked to, otherwise play the folio's innings and print each outcome.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer()
		defer a.closeHealthCheckServer()
	}

	if a.config.Translate != "" {
		return a.translate(a.config.Translate)
	}

	model, err := a.LoadFolio()
	if err != nil {
		return err
	}

	innings := model.Innings
	if a.config.Inning != "" {
		in := model.Inning(a.config.Inning)
		if in == nil {
			return fmt.Errorf("inning '%s' not found in folio", a.config.Inning)
		}
		innings = []*config.Inning{in}
	}
	if len(innings) == 0 {
		a.logger.Warn("No innings found in folio, nothing to play.")
		return nil
	}

	for _, in := range innings {
		s, err := a.game.PlayInning(ctx, in)
		if err != nil {
			return err
		}
		if err := a.report(in.Name, s); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) translate(text string) error {
	g, err := a.game.Translate(text)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	rendered, err := clif.Render(g)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "nodes=%d edges=%d cuts=%d\n%s\n", g.NodeCount(), g.EdgeCount(), countCuts(g), rendered)
	return nil
}

func (a *App) report(name string, s *session.Session) error {
	rendered, err := clif.Render(s.CurrentGraph())
	if err != nil {
		return fmt.Errorf("inning '%s': %w", name, err)
	}
	fmt.Fprintf(a.outW, "inning %q: status=%s player=%s moves=%d\n  %s\n",
		name, s.Status(), s.Player(), s.HistoryIndex(), rendered)
	return nil
}

func countCuts(g *egraph.Graph) int {
	n := 0
	for _, id := range g.EdgeIDs() {
		if g.IsCut(id) {
			n++
		}
	}
	return n
}
