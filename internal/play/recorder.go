// internal/play/recorder.go
//
// Asynchronous win recorder. Session mutation must not wait on the
// leaderboard write, so wins are queued and drained by a background
// worker. Failed writes are retried with backoff; exhaustion surfaces as
// a warning, never as a rolled-back win.

package play

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wordseek/wordseek/internal/leaderboard"
)

// WinSink is the downstream consumer of win events.
type WinSink interface {
	Award(ctx context.Context, win leaderboard.GameWin) error
}

// Recorder drains win events into a WinSink.
type Recorder struct {
	sink    WinSink
	log     zerolog.Logger
	queue   chan leaderboard.GameWin
	retries int
	backoff time.Duration
	done    chan struct{}
	spill   sync.WaitGroup
}

// NewRecorder starts the drain goroutine. Stop must be called on
// shutdown to flush the queue.
func NewRecorder(sink WinSink, log zerolog.Logger) *Recorder {
	r := &Recorder{
		sink:    sink,
		log:     log,
		queue:   make(chan leaderboard.GameWin, 64),
		retries: 3,
		backoff: 250 * time.Millisecond,
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Enqueue hands off a win. It never blocks: callers hold the chat lock,
// and a slow sink must not stall gameplay. A full queue spills into its
// own goroutine, tracked so Stop still flushes it.
func (r *Recorder) Enqueue(win leaderboard.GameWin) {
	select {
	case r.queue <- win:
	default:
		r.log.Warn().
			Str("participant", win.UserID).
			Str("chat_id", win.ChatID).
			Msg("win queue full, recording out of band")
		r.spill.Add(1)
		go func() {
			defer r.spill.Done()
			r.record(win)
		}()
	}
}

// Stop closes the queue and waits for the worker and any spilled
// recordings to finish.
func (r *Recorder) Stop() {
	close(r.queue)
	<-r.done
	r.spill.Wait()
}

func (r *Recorder) run() {
	defer close(r.done)
	for win := range r.queue {
		r.record(win)
	}
}

// record writes one win, retrying with doubling backoff. The win already
// happened from the player's perspective, so exhaustion logs a warning
// instead of propagating an error.
func (r *Recorder) record(win leaderboard.GameWin) {
	delay := r.backoff
	for attempt := 0; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := r.sink.Award(ctx, win)
		cancel()
		if err == nil {
			return
		}
		if attempt >= r.retries {
			r.log.Warn().Err(err).
				Str("participant", win.UserID).
				Str("chat_id", win.ChatID).
				Msg("recording win failed, giving up")
			return
		}
		time.Sleep(delay)
		delay *= 2
	}
}
