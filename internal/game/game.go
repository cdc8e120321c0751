package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/mijahauan/EG-HG/internal/clif"
	"github.com/mijahauan/EG-HG/internal/config"
	"github.com/mijahauan/EG-HG/internal/ctxlog"
	"github.com/mijahauan/EG-HG/internal/egraph"
	eghcl "github.com/mijahauan/EG-HG/internal/hcl"
	"github.com/mijahauan/EG-HG/internal/session"
	"github.com/mijahauan/EG-HG/internal/transform"
)

var (
	ErrFolioConflict = errors.New("graph already exists in the folio")
	ErrNotInFolio    = errors.New("graph not found in folio")
)

// Recorder receives session events plus the outcome of every translation
// the game performs.
type Recorder interface {
	session.Recorder
	RecordTranslation(err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordMove(string, string) {}
func (nopRecorder) RecordOutcome(string)      {}
func (nopRecorder) RecordTranslation(error)   {}

// Game holds the folio and the settings shared by every inning it starts.
type Game struct {
	mu    sync.RWMutex
	folio map[string]*egraph.Graph

	library  *transform.Library
	logger   *slog.Logger
	recorder Recorder
}

// Option configures a Game.
type Option func(*Game)

// WithLibrary sets the rules every inning resolves moves against.
func WithLibrary(l *transform.Library) Option {
	return func(g *Game) {
		g.library = l
	}
}

// WithLogger sets the logger handed to the game and its sessions.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithRecorder sets the receiver of translation, move and outcome events.
func WithRecorder(r Recorder) Option {
	return func(g *Game) {
		g.recorder = r
	}
}

// New creates a game with an empty folio.
func New(opts ...Option) *Game {
	g := &Game{
		folio:    make(map[string]*egraph.Graph),
		library:  transform.Default(),
		logger:   slog.Default(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddToFolio stores a copy of graph under name.
func (g *Game) AddToFolio(name string, graph *egraph.Graph) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.folio[name]; ok {
		return fmt.Errorf("'%s': %w", name, ErrFolioConflict)
	}
	if graph == nil {
		graph = egraph.New()
	}
	g.folio[name] = graph.Copy()
	g.logger.Debug("Graph added to folio.", "name", name, "nodes", graph.NodeCount(), "edges", graph.EdgeCount())
	return nil
}

// Folio returns a copy of the named graph.
func (g *Game) Folio(name string) (*egraph.Graph, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	graph, ok := g.folio[name]
	if !ok {
		return nil, false
	}
	return graph.Copy(), true
}

// Names lists the folio in sorted order.
func (g *Game) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(g.folio))
	for name := range g.folio {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StartInning opens a session over thesis. The named folio graph, if any,
// becomes the session's domain model; the thesis alone is placed on the
// session's graph.
func (g *Game) StartInning(thesis *egraph.Graph, domainName string) (*session.Session, error) {
	domain := egraph.New()
	if domainName != "" {
		d, ok := g.Folio(domainName)
		if !ok {
			return nil, fmt.Errorf("domain model '%s': %w", domainName, ErrNotInFolio)
		}
		domain = d
	}

	s, err := session.New(thesis,
		session.WithDomain(domain),
		session.WithLibrary(g.library),
		session.WithLogger(g.logger),
		session.WithRecorder(g.recorder),
	)
	if err != nil {
		return nil, err
	}
	g.logger.Info("Inning started.", "domain", domainName)
	return s, nil
}

// Translate converts CLIF text into a graph and records the outcome.
func (g *Game) Translate(text string) (*egraph.Graph, error) {
	graph, err := clif.NewTranslator(clif.WithLogger(g.logger)).Translate(text)
	g.recorder.RecordTranslation(err)
	return graph, err
}

// LoadFolio translates every graph of the model into the folio.
func (g *Game) LoadFolio(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	for _, name := range model.GraphNames() {
		def := model.Graphs[name]
		graph, err := g.Translate(def.CLIF)
		if err != nil {
			return fmt.Errorf("graph '%s' in %s: %w", name, def.Source, err)
		}
		if err := g.AddToFolio(name, graph); err != nil {
			return err
		}
	}
	logger.Info("Folio loaded.", "graphs", len(model.Graphs))
	return nil
}

// PlayInning starts the scripted inning and plays its moves in order.
// Arguments of each move are evaluated against the session as it stands
// right before the move. Moves left over once the inning is decided are
// skipped.
func (g *Game) PlayInning(ctx context.Context, in *config.Inning) (*session.Session, error) {
	ctx, logger := ctxlog.With(ctx, "inning", in.Name)

	thesis, err := g.Translate(in.Thesis)
	if err != nil {
		return nil, fmt.Errorf("inning '%s' thesis: %w", in.Name, err)
	}
	s, err := g.StartInning(thesis, in.Domain)
	if err != nil {
		return nil, fmt.Errorf("inning '%s': %w", in.Name, err)
	}

	for i, move := range in.Moves {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		if s.Status().Concluded() {
			logger.Warn("Inning decided before the script ended.", "skipped_moves", len(in.Moves)-i, "status", s.Status())
			break
		}
		if err := play(s, move); err != nil {
			return s, fmt.Errorf("inning '%s' move %d (%s): %w", in.Name, i+1, move.Rule, err)
		}
		logger.Debug("Move played.", "rule", move.Rule, "player", s.Player(), "status", s.Status())
	}
	return s, nil
}

func play(s *session.Session, move *config.Move) error {
	if move.Rule == session.RemoveNegationMove {
		if len(move.Arguments) > 0 {
			return fmt.Errorf("%s takes no arguments", session.RemoveNegationMove)
		}
		return s.RemoveNegation()
	}

	contested, ok := s.ContestedContext()
	state := eghcl.MoveState{
		Graph:      s.CurrentGraph(),
		Contested:  contested,
		HasContest: ok,
		Player:     s.Player().String(),
	}
	params, err := eghcl.EvaluateArguments(move.Arguments, state.EvalContext())
	if err != nil {
		return err
	}
	_, err = s.TakeTurn(move.Rule, params)
	return err
}
