package worker

import (
	"context"
	"sync"
	"time"

	"github.com/amigo-fit/amigo-server/internal/logger"
	"github.com/amigo-fit/amigo-server/internal/metrics"
)

// StepsResetter clears every user's daily step counter and reports how
// many rows changed.
type StepsResetter interface {
	ResetDailySteps(ctx context.Context) (int64, error)
}

// DailyResetWorker zeroes daily step counters at 00:00 UTC so the step
// leaderboard always ranks the current day. Clients that sync a lower
// daily figure are treated as a new day independently, so a missed
// reset degrades gracefully.
type DailyResetWorker struct {
	resetter StepsResetter
	timer    *time.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewDailyResetWorker creates a new DailyResetWorker
func NewDailyResetWorker(resetter StepsResetter) *DailyResetWorker {
	return &DailyResetWorker{
		resetter: resetter,
		shutdown: make(chan struct{}),
	}
}

// Start schedules the first reset
func (w *DailyResetWorker) Start() {
	w.scheduleNext()
}

// scheduleNext calculates the time until the next midnight UTC and
// schedules the reset.
func (w *DailyResetWorker) scheduleNext() {
	duration := timeUntilNextReset()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling to prevent tight-loop rescheduling caused
	// by early timer triggers
	if duration > 1*time.Hour {
		// Stage 1: standby. Wake up 45 minutes before the reset.
		waitDuration := duration - 45*time.Minute
		w.timer = time.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		nextCheck := time.Now().UTC().Add(waitDuration)
		log.Info(LogMsgDailyResetStandby, "next_check_at", nextCheck)
		return
	}

	// Stage 2: final approach. Schedule the actual reset.
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// If the timer fired early (jitter > 10s), reschedule for the
		// remaining time. A remainder above 23h means we are on time
		// or slightly late.
		rem := timeUntilNextReset()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.executeReset()
		w.scheduleNext() // recalculates ~24h and drops back to standby
	})
	w.mu.Unlock()

	nextReset := time.Now().UTC().Add(duration)
	log.Info(LogMsgDailyResetApproach, "next_reset_at", nextReset)
}

// executeReset performs the reset in a tracked goroutine
func (w *DailyResetWorker) executeReset() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Info(LogMsgDailyResetStarting)

		affected, err := w.resetter.ResetDailySteps(ctx)
		if err != nil {
			log.Error(LogMsgDailyResetFailed, "error", err)
			return
		}

		metrics.DailyResets.Inc()
		log.Info(LogMsgDailyResetCompleted, "users_reset", affected)
	}()
}

// Shutdown cancels the pending timer and waits for an in-flight reset
// to complete.
func (w *DailyResetWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Daily reset worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Daily reset worker shutdown timeout")
		return ctx.Err()
	}
}

// timeUntilNextReset calculates the duration until the next 00:00 UTC
func timeUntilNextReset() time.Duration {
	now := time.Now().UTC()
	nextReset := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !nextReset.After(now) {
		nextReset = nextReset.AddDate(0, 0, 1)
	}
	return nextReset.Sub(now)
}
