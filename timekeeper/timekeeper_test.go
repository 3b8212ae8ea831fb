package timekeeper

import (
	"sync"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestTickCommit(t *testing.T) {
	start := time.Unix(1451615389, 505411000)
	clock := &fakeClock{now: start}
	tk := New(clock.Now)

	if tk.Seq() != 0 || !tk.Prev().Equal(start) {
		t.Fatalf("initial state seq=%d prev=%v", tk.Seq(), tk.Prev())
	}

	clock.Advance(500 * time.Millisecond)
	first := tk.Tick()
	if first.Seq != 1 || !first.Prev.Equal(start) || first.Elapsed() != 500*time.Millisecond {
		t.Fatalf("first tick = %+v", first)
	}
	tk.Commit(first.Now)

	clock.Advance(250 * time.Millisecond)
	second := tk.Tick()
	if second.Seq != 2 || !second.Prev.Equal(first.Now) || second.Elapsed() != 250*time.Millisecond {
		t.Fatalf("second tick = %+v", second)
	}
}

func TestUncommittedTickKeepsPrev(t *testing.T) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	tk := New(clock.Now)

	clock.Advance(time.Second)
	failed := tk.Tick()
	// no commit: emission failed

	clock.Advance(time.Second)
	next := tk.Tick()
	if next.Seq != failed.Seq+1 {
		t.Fatalf("seq = %d, want %d", next.Seq, failed.Seq+1)
	}
	if next.Elapsed() != 2*time.Second {
		t.Fatalf("elapsed = %v, want 2s", next.Elapsed())
	}
}

func TestCommitNeverMovesBackwards(t *testing.T) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	tk := New(clock.Now)
	tk.Commit(time.Unix(200, 0))
	tk.Commit(time.Unix(150, 0))
	if got := tk.Prev(); !got.Equal(time.Unix(200, 0)) {
		t.Fatalf("prev = %v, want 200s", got)
	}
}

func TestNilClock(t *testing.T) {
	before := time.Now()
	tk := New(nil)
	tick := tk.Tick()
	if tick.Now.Before(before) || tick.Prev.Before(before) {
		t.Fatalf("tick %+v predates construction %v", tick, before)
	}
}

func TestConcurrentTicksAreUnique(t *testing.T) {
	const workers, perWorker = 8, 250
	tk := New(nil)

	seen := make([][]uint64, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				tick := tk.Tick()
				seen[w] = append(seen[w], tick.Seq)
				tk.Commit(tick.Now)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}

	all := make(map[uint64]bool, workers*perWorker)
	for w, seqs := range seen {
		for i, s := range seqs {
			if i > 0 && s <= seqs[i-1] {
				t.Fatalf("worker %d saw non-increasing seq %d after %d", w, s, seqs[i-1])
			}
			if all[s] {
				t.Fatalf("duplicate seq %d", s)
			}
			all[s] = true
		}
	}
	if len(all) != workers*perWorker || tk.Seq() != workers*perWorker {
		t.Fatalf("issued %d unique seqs, counter at %d", len(all), tk.Seq())
	}
}

func TestStampCommitsOnSuccess(t *testing.T) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	tk := New(clock.Now)

	clock.Advance(time.Second)
	tk.Stamp(func(tick Tick) bool { return false })
	if tk.Seq() != 1 || !tk.Prev().Equal(time.Unix(100, 0)) {
		t.Fatalf("failed stamp: seq=%d prev=%v", tk.Seq(), tk.Prev())
	}

	func() {
		defer func() { _ = recover() }()
		tk.Stamp(func(Tick) bool { panic("emit failed") })
	}()
	if tk.Seq() != 2 || !tk.Prev().Equal(time.Unix(100, 0)) {
		t.Fatalf("panicking stamp: seq=%d prev=%v", tk.Seq(), tk.Prev())
	}

	clock.Advance(time.Second)
	var got Tick
	tk.Stamp(func(tick Tick) bool { got = tick; return true })
	if got.Seq != 3 || got.Elapsed() != 2*time.Second || !tk.Prev().Equal(time.Unix(102, 0)) {
		t.Fatalf("stamp = %+v prev=%v", got, tk.Prev())
	}
}

func TestConcurrentStampsAreSerialized(t *testing.T) {
	const workers, perWorker = 8, 100
	tk := New(nil)

	var emitted []Tick
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				tk.Stamp(func(tick Tick) bool {
					emitted = append(emitted, tick)
					return true
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}

	if len(emitted) != workers*perWorker {
		t.Fatalf("emitted %d ticks", len(emitted))
	}
	for i, tick := range emitted {
		if tick.Seq != uint64(i+1) {
			t.Fatalf("tick %d has seq %d", i, tick.Seq)
		}
		if i > 0 && !tick.Prev.Equal(emitted[i-1].Now) {
			t.Fatalf("tick %d measures from %v, previous emitted at %v", i, tick.Prev, emitted[i-1].Now)
		}
	}
}
