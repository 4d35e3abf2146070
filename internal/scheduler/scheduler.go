// Package scheduler provides the cancellable, delay-based task queue the
// session controller runs on. All scripted playback, settle delays and the
// cursor blink go through a Scheduler so a restart can drop everything
// that is still pending.
package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Handle identifies a scheduled task so it can be cancelled.
type Handle string

// Scheduler schedules one-shot and repeating tasks.
type Scheduler interface {
	// After runs fn once after delay.
	After(delay time.Duration, fn func()) Handle
	// Every runs fn repeatedly at the given interval until cancelled.
	Every(interval time.Duration, fn func()) Handle
	// Cancel stops a pending or repeating task. Unknown handles are ignored.
	Cancel(h Handle)
	// Stop cancels everything this scheduler has pending.
	Stop()
}

type timerEntry struct {
	timer *time.Timer
	done  chan struct{} // non-nil for repeating tasks
}

// TimerScheduler implements Scheduler on top of the standard time package.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[Handle]*timerEntry
	nextID int64
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[Handle]*timerEntry)}
}

func (s *TimerScheduler) newHandle() Handle {
	s.nextID++
	return Handle(fmt.Sprintf("task_%d", s.nextID))
}

func (s *TimerScheduler) After(delay time.Duration, fn func()) Handle {
	s.mu.Lock()
	h := s.newHandle()
	s.mu.Unlock()

	timer := time.AfterFunc(delay, func() {
		fn()
		s.mu.Lock()
		delete(s.timers, h)
		s.mu.Unlock()
	})

	s.mu.Lock()
	s.timers[h] = &timerEntry{timer: timer}
	s.mu.Unlock()

	slog.Debug("scheduler: task scheduled", "handle", h, "delay", delay)
	return h
}

func (s *TimerScheduler) Every(interval time.Duration, fn func()) Handle {
	s.mu.Lock()
	h := s.newHandle()
	done := make(chan struct{})
	s.timers[h] = &timerEntry{done: done}
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	slog.Debug("scheduler: repeating task scheduled", "handle", h, "interval", interval)
	return h
}

func (s *TimerScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.timers[h]
	if !ok {
		return
	}
	if entry.timer != nil {
		entry.timer.Stop()
	}
	if entry.done != nil {
		close(entry.done)
	}
	delete(s.timers, h)
	slog.Debug("scheduler: task cancelled", "handle", h)
}

func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for h, entry := range s.timers {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		if entry.done != nil {
			close(entry.done)
		}
		delete(s.timers, h)
	}
	slog.Debug("scheduler: all tasks stopped")
}
