// internal/play/manager.go
//
// Orchestration layer between the command surface and the game core.
// Responsibilities:
//   - Start/end sessions through the registry (one per chat).
//   - Normalize and validate guesses, delegate scoring to the session.
//   - Serialize all mutation per chat: two guesses for one chat never run
//     concurrently, and an endGame racing an in-flight winning guess is
//     resolved by whoever takes the chat lock first.
//   - Forward wins to the leaderboard without holding the chat lock
//     across the write (see recorder.go).

package play

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wordseek/wordseek/internal/game"
	"github.com/wordseek/wordseek/internal/leaderboard"
	"github.com/wordseek/wordseek/internal/store"
)

// Vocabulary is the word set consulted for validation and secrets.
type Vocabulary interface {
	Contains(word string) bool
	Sample() string
	Length() int
}

// Manager owns the session registry and drives the state machine.
type Manager struct {
	store       *store.Registry
	vocab       Vocabulary
	recorder    *Recorder
	maxAttempts int
	log         zerolog.Logger

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewManager wires the orchestrator. recorder may be nil when no
// leaderboard is attached (tests).
func NewManager(reg *store.Registry, vocab Vocabulary, rec *Recorder, maxAttempts int, log zerolog.Logger) *Manager {
	return &Manager{
		store:       reg,
		vocab:       vocab,
		recorder:    rec,
		maxAttempts: maxAttempts,
		log:         log,
		locks:       make(map[string]*sync.Mutex),
	}
}

// StartInfo describes a freshly created session.
type StartInfo struct {
	WordLength  int `json:"wordLength"`
	MaxAttempts int `json:"maxAttempts"`
}

// Start creates a session for the chat with a freshly sampled secret.
// Returns game.ErrSessionActive if one already exists.
func (m *Manager) Start(chatID string) (StartInfo, error) {
	lock := m.lockFor(chatID)
	lock.Lock()
	defer lock.Unlock()

	if m.store.Get(chatID) != nil {
		return StartInfo{}, game.ErrSessionActive
	}
	secret := m.vocab.Sample()
	if _, err := m.store.Create(chatID, secret, m.maxAttempts); err != nil {
		return StartInfo{}, err
	}
	m.log.Info().Str("chat_id", chatID).Msg("game started")
	return StartInfo{WordLength: m.vocab.Length(), MaxAttempts: m.maxAttempts}, nil
}

// Guess runs one word through the session state machine.
//
// Validation order is cheapest-first and fully non-mutating:
// normalize, length, vocabulary, duplicate. Only an accepted guess
// consumes an attempt. Won and lost sessions are removed before the
// result is returned; a win is handed to the recorder asynchronously.
func (m *Manager) Guess(chatID, userID, displayName, raw string) (game.Result, error) {
	word := strings.ToLower(strings.TrimSpace(raw))

	lock := m.lockFor(chatID)
	lock.Lock()
	defer lock.Unlock()

	sess := m.store.Get(chatID)
	if sess == nil {
		return game.Result{}, game.ErrNoActiveGame
	}
	if len(word) != m.vocab.Length() {
		return game.Result{}, game.ErrInvalidLength
	}
	if !m.vocab.Contains(word) {
		return game.Result{}, game.ErrInvalidWord
	}

	res, err := sess.Submit(word)
	if err != nil {
		return game.Result{}, err
	}

	switch res.State {
	case game.StateWon:
		m.store.Remove(chatID)
		m.log.Info().
			Str("chat_id", chatID).
			Str("participant", userID).
			Int("attempts", res.Attempts).
			Msg("game won")
		if m.recorder != nil {
			m.recorder.Enqueue(leaderboard.GameWin{
				UserID:       userID,
				DisplayName:  displayName,
				ChatID:       chatID,
				AttemptsUsed: res.Attempts,
				MaxAttempts:  m.maxAttempts,
			})
		}
	case game.StateLost:
		m.store.Remove(chatID)
		m.log.Info().Str("chat_id", chatID).Int("attempts", res.Attempts).Msg("game lost")
	}
	return res, nil
}

// End force-terminates the chat's session and reveals its secret.
// No scoring event is emitted. Returns game.ErrNoActiveGame when there is
// nothing to end.
func (m *Manager) End(chatID string) (string, error) {
	lock := m.lockFor(chatID)
	lock.Lock()
	defer lock.Unlock()

	sess := m.store.Get(chatID)
	if sess == nil {
		return "", game.ErrNoActiveGame
	}
	m.store.Remove(chatID)
	m.log.Info().Str("chat_id", chatID).Msg("game ended")
	return sess.Secret, nil
}

// Board returns the chat's current board, or nil without a session.
func (m *Manager) Board(chatID string) []game.Row {
	lock := m.lockFor(chatID)
	lock.Lock()
	defer lock.Unlock()

	sess := m.store.Get(chatID)
	if sess == nil {
		return nil
	}
	out := make([]game.Row, len(sess.Board))
	copy(out, sess.Board)
	return out
}

// lockFor returns the chat's mutex, creating it on first use.
// Locks are never removed; the set of active chats is small.
func (m *Manager) lockFor(chatID string) *sync.Mutex {
	m.lockMu.Lock()
	defer m.lockMu.Unlock()
	l, ok := m.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[chatID] = l
	}
	return l
}
