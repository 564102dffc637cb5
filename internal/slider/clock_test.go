package slider

import (
	"sort"
	"time"
)

// fakeClock fires callbacks synchronously from Advance, in deadline order
// and then scheduling order.
type fakeClock struct {
	now     time.Time
	seq     int
	pending []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	seq     int
	fn      func()
	stopped bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) func() bool {
	c.seq++
	ft := &fakeTimer{at: c.now.Add(d), seq: c.seq, fn: fn}
	c.pending = append(c.pending, ft)
	return func() bool {
		if ft.stopped {
			return false
		}
		ft.stopped = true
		return true
	}
}

// Advance moves time forward by d, running every callback that comes due.
func (c *fakeClock) Advance(d time.Duration) {
	end := c.now.Add(d)
	for {
		next := c.nextDue(end)
		if next == nil {
			break
		}
		c.now = next.at
		next.stopped = true
		next.fn()
	}
	c.now = end
}

// Pending returns the number of live scheduled callbacks.
func (c *fakeClock) Pending() int {
	n := 0
	for _, ft := range c.pending {
		if !ft.stopped {
			n++
		}
	}
	return n
}

func (c *fakeClock) nextDue(end time.Time) *fakeTimer {
	live := c.pending[:0]
	for _, ft := range c.pending {
		if !ft.stopped {
			live = append(live, ft)
		}
	}
	c.pending = live
	sort.SliceStable(c.pending, func(i, j int) bool {
		if !c.pending[i].at.Equal(c.pending[j].at) {
			return c.pending[i].at.Before(c.pending[j].at)
		}
		return c.pending[i].seq < c.pending[j].seq
	})
	if len(c.pending) == 0 || c.pending[0].at.After(end) {
		return nil
	}
	return c.pending[0]
}
