// internal/game/types.go
//
// Core type definitions for the WordSeek game engine.
// Defines:
//   - Mark: per-letter result of a guess (hit/present/miss).
//   - Row: one scored guess on a session's board.
//   - Session: state for a single in-progress game, bound to one chat.
//   - Result: outcome of an accepted guess.

package game

import "errors"

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the secret but in a different position.
//   - "miss":    letter does not exist in the secret (after accounting
//     for multiplicity).
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// Rejection signals for a submitted guess. None of these mutate the
// session; a rejected guess never costs an attempt.
var (
	ErrInvalidLength  = errors.New("wrong word length")
	ErrInvalidWord    = errors.New("not in word list")
	ErrDuplicateGuess = errors.New("already guessed")
	ErrNoActiveGame   = errors.New("no active game")
	ErrSessionActive  = errors.New("game already active")
)

// State of a session after a guess is applied.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Row records a single accepted guess and its feedback.
// Immutable once appended to the board.
type Row struct {
	Word  string `json:"word"`
	Marks []Mark `json:"marks"`
}

// Session holds the state of one active game.
// Invariants: Attempts == len(Board) == len(guessed); Secret is lowercase
// and never mutated after creation.
type Session struct {
	Secret      string
	Board       []Row
	Attempts    int
	MaxAttempts int

	guessed map[string]struct{}
}

// Result describes the outcome of an accepted guess.
type Result struct {
	Marks    []Mark
	State    State
	Attempts int
	// Secret is revealed once the session finished (won or lost).
	Secret string
}
