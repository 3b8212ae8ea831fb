// Package timekeeper holds the numbering and elapsed-time state behind
// timestamp notices.
//
// A TimeKeeper is constructed once by the embedding program and shared by
// every tracer that should number its timestamps together:
//
//	tk := timekeeper.New(nil)
//	tk.Stamp(func(tick timekeeper.Tick) bool {
//		// format and emit using tick.Seq, tick.Now, tick.Prev
//		return true
//	})
//
// Tick and Commit are the unserialized halves of Stamp for callers that do
// their own ordering.
package timekeeper

import (
	"sync"
	"time"
)

// Tick is the state observed by one timestamp notice.
type Tick struct {
	Seq  uint64    // sequence number, starting at 1
	Now  time.Time // time of this tick
	Prev time.Time // time of the last committed tick
}

// Elapsed returns Now - Prev.
func (t Tick) Elapsed() time.Duration { return t.Now.Sub(t.Prev) }

// TimeKeeper is a goroutine-safe sequence counter paired with the time of the
// last successful emission.
type TimeKeeper struct {
	mu   sync.Mutex
	now  func() time.Time
	seq  uint64
	prev time.Time
}

// New creates a TimeKeeper whose previous timestamp is the construction
// time. A nil clock means time.Now.
func New(now func() time.Time) *TimeKeeper {
	if now == nil {
		now = time.Now
	}
	return &TimeKeeper{now: now, prev: now()}
}

// Tick increments the sequence number and captures the current time.
// The previous timestamp is read but not replaced; call Commit once the
// notice has been emitted.
func (k *TimeKeeper) Tick() Tick {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.seq++
	return Tick{Seq: k.seq, Now: k.now(), Prev: k.prev}
}

// Stamp issues the next tick and runs emit with it while holding the lock,
// so concurrent stamps are emitted in sequence order and each one measures
// from the one emitted before it. The tick is committed when emit returns
// true; a false return or a panic leaves the previous timestamp in place
// (the sequence number stays consumed). emit must not call back into k.
func (k *TimeKeeper) Stamp(emit func(Tick) bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.seq++
	tick := Tick{Seq: k.seq, Now: k.now(), Prev: k.prev}
	if emit(tick) && !tick.Now.Before(k.prev) {
		k.prev = tick.Now
	}
}

// Commit records now as the previous timestamp. Commits older than the
// current previous timestamp are ignored so concurrent ticks that finish out
// of order never move it backwards.
func (k *TimeKeeper) Commit(now time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if now.Before(k.prev) {
		return
	}
	k.prev = now
}

// Seq returns the last issued sequence number.
func (k *TimeKeeper) Seq() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.seq
}

// Prev returns the time of the last committed tick.
func (k *TimeKeeper) Prev() time.Time {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.prev
}
