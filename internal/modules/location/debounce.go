package location

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned to a call that a newer call on the same Debouncer
// replaced, either while it waited or while its work was in flight.
var ErrSuperseded = errors.New("superseded by a newer request")

// Debouncer delays work and lets only the most recent caller through. Every
// call resets the pending timer; a call whose timer fires runs fn, and its
// result is kept only if no newer call arrived meanwhile (sequence guard).
type Debouncer struct {
	delay time.Duration

	mu        sync.Mutex
	seq       uint64
	supersede chan struct{}
	active    int
	lastUsed  time.Time
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay, lastUsed: time.Now()}
}

// Do waits for the quiet period and runs fn. It returns ErrSuperseded if a
// newer Do started before fn's result was ready, and ctx.Err() if ctx ended
// first. The context passed to fn is cancelled when the call is superseded.
func (d *Debouncer) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	seq, superseded := d.begin()
	defer d.end()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-superseded:
		return ErrSuperseded
	case <-timer.C:
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-superseded:
			cancel()
		case <-callCtx.Done():
		}
	}()

	err := fn(callCtx)
	if !d.isLatest(seq) {
		return ErrSuperseded
	}
	if err == nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (d *Debouncer) begin() (uint64, <-chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.supersede != nil {
		close(d.supersede)
	}
	d.seq++
	d.supersede = make(chan struct{})
	d.active++
	d.lastUsed = time.Now()
	return d.seq, d.supersede
}

func (d *Debouncer) end() {
	d.mu.Lock()
	d.active--
	d.lastUsed = time.Now()
	d.mu.Unlock()
}

func (d *Debouncer) isLatest(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seq == seq
}

func (d *Debouncer) idleSince(now time.Time) (time.Duration, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active > 0 {
		return 0, false
	}
	return now.Sub(d.lastUsed), true
}

// Sessions keeps one Debouncer per autocomplete session and forgets sessions
// that have been idle longer than idle.
type Sessions struct {
	delay time.Duration
	idle  time.Duration

	mu sync.Mutex
	m  map[string]*Debouncer
}

// NewSessions creates a session registry.
func NewSessions(delay, idle time.Duration) *Sessions {
	return &Sessions{delay: delay, idle: idle, m: make(map[string]*Debouncer)}
}

// Get returns the Debouncer for key, creating it if needed.
func (s *Sessions) Get(key string) *Debouncer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked(time.Now())

	d, ok := s.m[key]
	if !ok {
		d = NewDebouncer(s.delay)
		s.m[key] = d
	}
	return d
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

func (s *Sessions) evictLocked(now time.Time) {
	if s.idle <= 0 {
		return
	}
	for key, d := range s.m {
		if idle, ok := d.idleSince(now); ok && idle > s.idle {
			delete(s.m, key)
		}
	}
}
