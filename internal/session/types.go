package session

import (
	"errors"
	"fmt"

	"github.com/mijahauan/EG-HG/internal/transform"
)

// Player is one of the two roles of the game.
type Player int

const (
	Proposer Player = iota
	Skeptic
)

func (p Player) String() string {
	switch p {
	case Proposer:
		return "proposer"
	case Skeptic:
		return "skeptic"
	}
	return fmt.Sprintf("Player(%d)", int(p))
}

// MarshalText renders the player by name.
func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Opponent returns the other role.
func (p Player) Opponent() Player {
	if p == Proposer {
		return Skeptic
	}
	return Proposer
}

// Status is the outcome of an inning so far.
type Status int

const (
	InProgress Status = iota
	ProposerWin
	SkepticWin
	// DrawExtend is reserved for extending a drawn inning. No move
	// produces it yet.
	DrawExtend
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case ProposerWin:
		return "proposer_win"
	case SkepticWin:
		return "skeptic_win"
	case DrawExtend:
		return "draw_extend"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText renders the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Concluded reports whether no further moves are accepted.
func (s Status) Concluded() bool {
	return s != InProgress
}

// winFor returns the status in which p has won.
func winFor(p Player) Status {
	if p == Proposer {
		return ProposerWin
	}
	return SkepticWin
}

// Move names a rule and the parameters to invoke it with.
type Move struct {
	Rule   string
	Params transform.Params
}

var (
	ErrGameOver   = errors.New("game already concluded")
	ErrNoNegation = errors.New("no negation left to remove")
)

// Recorder receives move and outcome events, typically to count them.
type Recorder interface {
	RecordMove(rule, outcome string)
	RecordOutcome(status string)
}

type nopRecorder struct{}

func (nopRecorder) RecordMove(string, string) {}
func (nopRecorder) RecordOutcome(string)      {}
