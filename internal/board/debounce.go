package board

import (
	"sync"
	"time"
)

// scheduler coalesces bursts of writes per item id. Each change cancels and
// restarts a fixed-delay timer for that id; when the timer fires, the most
// recent snapshot is handed to flush and the entry is cleared. Different ids
// run independent timers. There is no queue beyond one pending timer per id:
// a change arriving after the timer fired is a fresh cycle, so rapid edits
// that straddle the delay window send more than one write.
type scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	flush   func(Item)
	pending map[string]*pendingWrite
}

type pendingWrite struct {
	timer *time.Timer
	item  Item
}

func newScheduler(delay time.Duration, flush func(Item)) *scheduler {
	return &scheduler{
		delay:   delay,
		flush:   flush,
		pending: make(map[string]*pendingWrite),
	}
}

// schedule records the latest snapshot for the item and restarts its timer.
func (s *scheduler) schedule(it Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[it.ID]; ok {
		p.timer.Stop()
	}

	p := &pendingWrite{item: it}
	p.timer = time.AfterFunc(s.delay, func() { s.fire(it.ID, p) })
	s.pending[it.ID] = p
}

// fire delivers the snapshot captured when the timer was armed, unless a
// newer schedule superseded this entry in the window between the timer
// firing and the lock being taken.
func (s *scheduler) fire(id string, p *pendingWrite) {
	s.mu.Lock()
	cur, ok := s.pending[id]
	if !ok || cur != p {
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	it := cur.item
	s.mu.Unlock()

	s.flush(it)
}

// cancel drops any pending write for the id without flushing it.
func (s *scheduler) cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[id]; ok {
		p.timer.Stop()
		delete(s.pending, id)
	}
}

// stop cancels every pending write. In-flight flushes are not interrupted.
func (s *scheduler) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, id)
	}
}
