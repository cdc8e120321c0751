package session

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mijahauan/EG-HG/internal/egraph"
	"github.com/mijahauan/EG-HG/internal/transform"
)

// RemoveNegationMove is the name under which the remove-negation move is
// recorded and addressed by inning scripts.
const RemoveNegationMove = "remove_negation"

// Session is one proof session over a thesis.
type Session struct {
	mu sync.RWMutex

	library  *transform.Library
	domain   *egraph.Graph
	logger   *slog.Logger
	recorder Recorder

	history   []*egraph.Graph
	index     int
	player    Player
	status    Status
	contested egraph.ID // Sheet when the contest has reached the sheet
}

// Option configures a Session.
type Option func(*Session)

// WithDomain attaches a domain model for rules to consult. The graph is
// copied.
func WithDomain(domain *egraph.Graph) Option {
	return func(s *Session) {
		if domain != nil {
			s.domain = domain.Copy()
		}
	}
}

// WithLibrary sets the rules moves are resolved against.
func WithLibrary(l *transform.Library) Option {
	return func(s *Session) {
		s.library = l
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithRecorder sets the receiver of move and outcome events.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// New starts a session. The thesis is copied inside a fresh cut on an empty
// sheet; that cut is the first contested context and the Proposer moves
// first. A nil thesis is the empty graph.
func New(thesis *egraph.Graph, opts ...Option) (*Session, error) {
	s := &Session{
		library:  transform.Default(),
		domain:   egraph.New(),
		logger:   slog.Default(),
		recorder: nopRecorder{},
		player:   Proposer,
		status:   InProgress,
	}
	for _, opt := range opts {
		opt(s)
	}
	if thesis == nil {
		thesis = egraph.New()
	}

	g := egraph.New()
	root, err := g.AddCut(egraph.Sheet, nil)
	if err != nil {
		return nil, err
	}
	if err := thesis.CopyInto(g, root); err != nil {
		return nil, fmt.Errorf("failed to copy thesis into session: %w", err)
	}

	s.history = []*egraph.Graph{g}
	s.contested = root
	s.logger.Debug("Session started.", "root_cut", root, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return s, nil
}

// ApplyTransformation runs the named rule on the current snapshot and
// records the result. Any snapshots past the cursor are discarded first.
// On error nothing changes.
func (s *Session) ApplyTransformation(rule string, params transform.Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(rule, params)
}

// TakeTurn applies a move for the current player and then re-evaluates the
// outcome. Once the inning is concluded it does nothing and returns
// ErrGameOver. The returned status is current either way.
func (s *Session) TakeTurn(rule string, params transform.Params) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Concluded() {
		s.logger.Warn("Turn ignored, game already concluded.", "rule", rule, "status", s.status)
		return s.status, ErrGameOver
	}
	if err := s.apply(rule, params); err != nil {
		return s.status, err
	}
	return s.evaluate(), nil
}

// CheckForWinLoss decides the inning when the contested area is empty: the
// player to move cannot continue and loses.
func (s *Session) CheckForWinLoss() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evaluate()
}

// LegalMoves lists the moves available to the current player. Enumerating
// them is left to callers that know the rules' preconditions, so the list
// is always empty.
func (s *Session) LegalMoves() []Move {
	return []Move{}
}

// Undo steps the cursor back one snapshot. It returns false, and logs a
// warning, at the start of history.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == 0 {
		s.logger.Warn("Cannot undo, already at the beginning of history.")
		return false
	}
	s.index--
	s.logger.Debug("Undo.", "history_index", s.index)
	return true
}

// Redo steps the cursor forward one snapshot. It returns false, and logs a
// warning, at the end of history.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == len(s.history)-1 {
		s.logger.Warn("Cannot redo, already at the end of history.")
		return false
	}
	s.index++
	s.logger.Debug("Redo.", "history_index", s.index)
	return true
}

// CurrentGraph returns the snapshot under the cursor. It must not be
// modified.
func (s *Session) CurrentGraph() *egraph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current()
}

// History returns every recorded snapshot, oldest first.
func (s *Session) History() []*egraph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.history)
}

// HistoryIndex returns the cursor position in History.
func (s *Session) HistoryIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Player returns the player to move.
func (s *Session) Player() Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player
}

// Status returns the outcome so far.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// ContestedContext returns the cut being played in. The boolean is false
// once the contest has reached the sheet of assertion.
func (s *Session) ContestedContext() (egraph.ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contested, !s.contested.IsSheet()
}

// Domain returns the domain model the session was started with.
func (s *Session) Domain() *egraph.Graph {
	return s.domain
}

// Library returns the rules available to moves.
func (s *Session) Library() *transform.Library {
	return s.library
}

func (s *Session) current() *egraph.Graph {
	return s.history[s.index]
}

func (s *Session) apply(rule string, params transform.Params) error {
	next, err := s.library.Apply(rule, s.current(), params)
	if err != nil {
		s.logger.Warn("Transformation rejected.", "rule", rule, "player", s.player, "error", err)
		s.recorder.RecordMove(rule, "rejected")
		return err
	}
	s.push(next)
	s.recorder.RecordMove(rule, "applied")
	s.logger.Info("Transformation applied.", "rule", rule, "player", s.player, "history_index", s.index)

	if !s.contested.IsSheet() && !next.IsCut(s.contested) {
		s.logger.Debug("Contested cut no longer exists, contest retreats to the sheet.", "cut", s.contested)
		s.contested = egraph.Sheet
	}
	return nil
}

// push truncates history past the cursor and appends g.
func (s *Session) push(g *egraph.Graph) {
	s.history = append(s.history[:s.index+1], g)
	s.index++
}

func (s *Session) evaluate() Status {
	if s.status.Concluded() {
		return s.status
	}
	ctx := s.contested
	if !s.current().IsCut(ctx) {
		ctx = egraph.Sheet
	}
	items, err := s.current().ItemsInContext(ctx)
	if err != nil || len(items) > 0 {
		return s.status
	}
	s.status = winFor(s.player.Opponent())
	s.logger.Info("Inning concluded.", "status", s.status, "stuck_player", s.player)
	s.recorder.RecordOutcome(s.status.String())
	return s.status
}
