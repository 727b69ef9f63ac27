// internal/game/session.go
//
// State machine for a single game session.
// Responsibilities:
//   - Track the board, attempt count and previously guessed words.
//   - Apply accepted guesses and resolve playing/won/lost transitions.
//
// Validation ordering is deliberate: every rejection happens before the
// single mutating step, so a rejected guess never perturbs attempts or
// the board. Vocabulary membership is checked by the caller, which owns
// the word list.

package game

// NewSession constructs a session around a secret.
// The secret is assumed lowercase; maxAttempts bounds the board.
func NewSession(secret string, maxAttempts int) *Session {
	return &Session{
		Secret:      secret,
		Board:       []Row{},
		MaxAttempts: maxAttempts,
		guessed:     make(map[string]struct{}),
	}
}

// Submit applies a normalized, vocabulary-checked guess to the session.
//
// Rejections (no state change):
//   - ErrInvalidLength if the guess length differs from the secret's.
//   - ErrDuplicateGuess if the word was already played this session.
//
// Otherwise the guess is recorded (guessed set, attempt counter, scored
// row on the board) and the session transitions:
//   - all Hit            -> StateWon
//   - attempts exhausted -> StateLost
//   - else               -> StatePlaying
func (s *Session) Submit(guess string) (Result, error) {
	if len(guess) != len(s.Secret) {
		return Result{}, ErrInvalidLength
	}
	if _, dup := s.guessed[guess]; dup {
		return Result{}, ErrDuplicateGuess
	}

	marks := Score(s.Secret, guess)
	s.guessed[guess] = struct{}{}
	s.Attempts++
	s.Board = append(s.Board, Row{Word: guess, Marks: marks})

	res := Result{Marks: marks, State: StatePlaying, Attempts: s.Attempts}
	switch {
	case allHit(marks):
		res.State = StateWon
		res.Secret = s.Secret
	case s.Attempts >= s.MaxAttempts:
		res.State = StateLost
		res.Secret = s.Secret
	}
	return res, nil
}

// Guessed reports whether the word was already played this session.
func (s *Session) Guessed(word string) bool {
	_, ok := s.guessed[word]
	return ok
}
