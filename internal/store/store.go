package store

import (
	"sort"
	"sync"
	"time"

	"horse.fit/pulse/internal/post"
)

// Snapshot is one immutable publication of the canonical post collection.
// Consumers read a snapshot without locking; a new ingestion cycle or
// simulator tick replaces the whole snapshot rather than patching it.
type Snapshot struct {
	Posts     []*post.Post
	FetchedAt time.Time

	byID map[string]*post.Post
}

func NewSnapshot(posts []*post.Post, fetchedAt time.Time) *Snapshot {
	byID := make(map[string]*post.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	return &Snapshot{
		Posts:     posts,
		FetchedAt: fetchedAt,
		byID:      byID,
	}
}

// PostByID looks up a post for the detail view.
func (s *Snapshot) PostByID(id string) (*post.Post, bool) {
	if s == nil {
		return nil, false
	}
	p, ok := s.byID[id]
	return p, ok
}

// Latest returns the n most recently posted entries.
func (s *Snapshot) Latest(n int) []*post.Post {
	if s == nil || n <= 0 {
		return nil
	}
	recent := make([]*post.Post, len(s.Posts))
	copy(recent, s.Posts)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PostedAt.After(recent[j].PostedAt)
	})
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}

// Store owns the current snapshot and fans replacement notifications out to
// subscribers (the websocket hub, primarily).
type Store struct {
	mu      sync.RWMutex
	current *Snapshot

	subMu   sync.Mutex
	nextSub int
	subs    map[int]chan *Snapshot
}

func New() *Store {
	return &Store{subs: make(map[int]chan *Snapshot)}
}

// Current returns the latest published snapshot, or nil before the first
// successful ingestion cycle.
func (st *Store) Current() *Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Replace publishes a new snapshot wholesale and notifies subscribers.
// Slow subscribers miss intermediate snapshots instead of blocking the
// publisher.
func (st *Store) Replace(s *Snapshot) {
	st.mu.Lock()
	st.current = s
	st.mu.Unlock()

	st.subMu.Lock()
	defer st.subMu.Unlock()
	for _, ch := range st.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Subscribe registers for snapshot replacements. The returned cancel func
// must be called to release the subscription.
func (st *Store) Subscribe() (<-chan *Snapshot, func()) {
	st.subMu.Lock()
	defer st.subMu.Unlock()

	id := st.nextSub
	st.nextSub++
	ch := make(chan *Snapshot, 1)
	st.subs[id] = ch

	cancel := func() {
		st.subMu.Lock()
		defer st.subMu.Unlock()
		if _, ok := st.subs[id]; ok {
			delete(st.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}
