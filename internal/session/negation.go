package session

import (
	"fmt"

	"github.com/mijahauan/EG-HG/internal/egraph"
)

// RemoveNegation removes the contested cut and promotes its contents one
// level up, into the cut's parent. Crossing the negation swaps the roles:
// the other player moves next. The new contested context is the first
// promoted cut, or the sheet when none was promoted. The outcome is
// re-evaluated afterwards.
//
// It fails with ErrNoNegation when the contest has already reached the
// sheet of assertion.
func (s *Session) RemoveNegation() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Concluded() {
		return ErrGameOver
	}
	cut := s.contested
	cur := s.current()
	if cut.IsSheet() || !cur.IsCut(cut) {
		s.logger.Warn("Cannot remove negation, the contest is on the sheet of assertion.")
		s.recorder.RecordMove(RemoveNegationMove, "rejected")
		return ErrNoNegation
	}

	next := cur.Copy()
	parent, _ := next.Parent(cut)
	promoted, err := next.ItemsInContext(cut)
	if err != nil {
		return err
	}
	for _, id := range promoted {
		if err := next.Move(id, parent); err != nil {
			return fmt.Errorf("failed to promote %s: %w", id, err)
		}
	}
	if err := next.DeleteEdge(cut); err != nil {
		return fmt.Errorf("failed to remove cut %s: %w", cut, err)
	}

	s.push(next)
	s.player = s.player.Opponent()
	s.contested = egraph.Sheet
	for _, id := range promoted {
		if next.IsCut(id) {
			s.contested = id
			break
		}
	}
	s.recorder.RecordMove(RemoveNegationMove, "applied")
	s.logger.Info("Negation removed.",
		"cut", cut,
		"promoted", len(promoted),
		"player", s.player,
		"contested", s.contested,
	)

	s.evaluate()
	return nil
}
