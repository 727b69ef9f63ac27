// internal/httpserver/server.go
//
// HTTP gateway for the WordSeek engine.
// Responsibilities:
//   - Router + middleware (JSON, request IDs, timeouts, panic recovery,
//     request logging, per-chat guess rate limiting).
//   - Game endpoints: start, guess, end — addressed per chat, the way an
//     upstream chat transport would drive the engine.
//   - Leaderboard endpoints: global, per chat, today/week/month.
//   - Diagnostics: "/", "/health", "/debug/words".
//
// Notes:
//   - This layer is the engine's event sink consumer: engine signals are
//     rendered as machine-readable JSON codes; the engine itself never
//     formats user-visible text.
//   - Chat and participant identities arrive in the request and are
//     treated as opaque strings.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/wordseek/wordseek/internal/game"
	"github.com/wordseek/wordseek/internal/leaderboard"
	"github.com/wordseek/wordseek/internal/play"
	"github.com/wordseek/wordseek/internal/words"
)

// Server bundles the router with the engine and leaderboard facades.
type Server struct {
	r            *chi.Mux
	mgr          *play.Manager
	lb           *leaderboard.Service
	vocab        *words.Provider
	meta         *words.Meta
	log          zerolog.Logger
	defaultLimit int
	maxLimit     int

	limMu      sync.Mutex
	limiters   map[string]*rate.Limiter
	guessRate  rate.Limit
	guessBurst int

	readTimeout  time.Duration
	writeTimeout time.Duration
	idleTimeout  time.Duration
}

// Options carries the tunables the server needs from configuration.
type Options struct {
	DefaultLimit int
	MaxLimit     int
	GuessRate    float64
	GuessBurst   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// New constructs a Server, installs middleware, and registers routes.
func New(mgr *play.Manager, lb *leaderboard.Service, vocab *words.Provider, meta *words.Meta, opts Options, log zerolog.Logger) *Server {
	s := &Server{
		r:            chi.NewRouter(),
		mgr:          mgr,
		lb:           lb,
		vocab:        vocab,
		meta:         meta,
		log:          log,
		defaultLimit: opts.DefaultLimit,
		maxLimit:     opts.MaxLimit,
		limiters:     make(map[string]*rate.Limiter),
		guessRate:    rate.Limit(opts.GuessRate),
		guessBurst:   opts.GuessBurst,
		readTimeout:  opts.ReadTimeout,
		writeTimeout: opts.WriteTimeout,
		idleTimeout:  opts.IdleTimeout,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.requestLogger)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordseek","endpoints":["/health","POST /chats/{chatID}/game","POST /chats/{chatID}/guesses","DELETE /chats/{chatID}/game","/leaderboard/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{
			"words":  s.vocab.Stats(),
			"length": s.vocab.Length(),
		})
	})

	// --- game ---
	s.r.Route("/chats/{chatID}", func(r chi.Router) {
		r.Post("/game", s.handleStart)
		r.Delete("/game", s.handleEnd)
		r.Get("/board", s.handleBoard)
		r.With(s.guessLimiter).Post("/guesses", s.handleGuess)
	})

	// --- leaderboard ---
	s.r.Route("/leaderboard", func(r chi.Router) {
		r.Get("/global", s.handleGlobalTop)
		r.Get("/chats/{chatID}", s.handleGroupTop)
		r.Get("/today", s.windowHandler(s.lb.TodayTop))
		r.Get("/week", s.windowHandler(s.lb.WeekTop))
		r.Get("/month", s.windowHandler(s.lb.MonthTop))
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.r,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  s.idleTimeout,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger emits one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// guessLimiter throttles guess submissions per chat.
func (s *Server) guessLimiter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatID := chi.URLParam(r, "chatID")
		if !s.limiterFor(chatID).Allow() {
			http.Error(w, `{"error":"rate_limited"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limiterFor(chatID string) *rate.Limiter {
	s.limMu.Lock()
	defer s.limMu.Unlock()
	l, ok := s.limiters[chatID]
	if !ok {
		l = rate.NewLimiter(s.guessRate, s.guessBurst)
		s.limiters[chatID] = l
	}
	return l
}

// ------------------------------ game ---------------------------------------

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	info, err := s.mgr.Start(chatID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(info)
}

type guessReq struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Word        string `json:"word"`
}

type guessRes struct {
	Marks    []game.Mark `json:"marks"`
	State    game.State  `json:"state"`
	Attempts int         `json:"attempts"`
	Secret   string      `json:"secret,omitempty"`
	Meta     *words.Info `json:"meta,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, `{"error":"missing_user"}`, http.StatusBadRequest)
		return
	}

	res, err := s.mgr.Guess(chatID, req.UserID, req.DisplayName, req.Word)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	out := guessRes{Marks: res.Marks, State: res.State, Attempts: res.Attempts, Secret: res.Secret}
	if res.Secret != "" {
		out.Meta = s.lookupMeta(res.Secret)
	}
	_ = json.NewEncoder(w).Encode(out)
}

type endRes struct {
	Secret string      `json:"secret"`
	Meta   *words.Info `json:"meta,omitempty"`
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	secret, err := s.mgr.End(chatID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(endRes{Secret: secret, Meta: s.lookupMeta(secret)})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	board := s.mgr.Board(chatID)
	if board == nil {
		s.writeEngineError(w, game.ErrNoActiveGame)
		return
	}
	_ = json.NewEncoder(w).Encode(board)
}

// lookupMeta returns word metadata when the provider knows the word.
func (s *Server) lookupMeta(word string) *words.Info {
	if s.meta == nil {
		return nil
	}
	if info, ok := s.meta.Lookup(word); ok {
		return &info
	}
	return nil
}

// --------------------------- leaderboard -----------------------------------

func (s *Server) handleGlobalTop(w http.ResponseWriter, r *http.Request) {
	entries, err := s.lb.GlobalTop(r.Context(), s.limitParam(r))
	s.writeEntries(w, entries, err)
}

func (s *Server) handleGroupTop(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	entries, err := s.lb.GroupTop(r.Context(), chatID, s.limitParam(r))
	s.writeEntries(w, entries, err)
}

// windowHandler adapts the now-anchored window views to HTTP.
func (s *Server) windowHandler(top func(ctx context.Context, now time.Time, limit int) ([]leaderboard.Entry, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := top(r.Context(), time.Now(), s.limitParam(r))
		s.writeEntries(w, entries, err)
	}
}

func (s *Server) writeEntries(w http.ResponseWriter, entries []leaderboard.Entry, err error) {
	if err != nil {
		s.log.Error().Err(err).Msg("leaderboard query failed")
		http.Error(w, `{"error":"leaderboard_unavailable"}`, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	_ = json.NewEncoder(w).Encode(entries)
}

// limitParam parses ?limit= with configured default and cap.
func (s *Server) limitParam(r *http.Request) int {
	limit := s.defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return limit
}

// ---------------------------- error mapping --------------------------------

// writeEngineError renders engine rejection signals as JSON codes.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNoActiveGame):
		http.Error(w, `{"error":"no_active_game"}`, http.StatusNotFound)
	case errors.Is(err, game.ErrSessionActive):
		http.Error(w, `{"error":"game_already_active"}`, http.StatusConflict)
	case errors.Is(err, game.ErrInvalidLength):
		http.Error(w, `{"error":"invalid_length"}`, http.StatusUnprocessableEntity)
	case errors.Is(err, game.ErrInvalidWord):
		http.Error(w, `{"error":"invalid_word"}`, http.StatusUnprocessableEntity)
	case errors.Is(err, game.ErrDuplicateGuess):
		http.Error(w, `{"error":"duplicate_guess"}`, http.StatusConflict)
	default:
		s.log.Error().Err(err).Msg("engine error")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}
}
