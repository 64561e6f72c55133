package store

import (
	"testing"
	"time"

	"horse.fit/pulse/internal/post"
)

func snapshotWith(ids ...string) *Snapshot {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	posts := make([]*post.Post, 0, len(ids))
	for i, id := range ids {
		posts = append(posts, &post.Post{ID: id, PostedAt: base.Add(time.Duration(i) * time.Hour)})
	}
	return NewSnapshot(posts, base)
}

func TestStoreCurrentStartsNil(t *testing.T) {
	t.Parallel()

	if got := New().Current(); got != nil {
		t.Fatalf("expected nil before the first publication, got %+v", got)
	}
}

func TestStoreReplacePublishesWholesale(t *testing.T) {
	t.Parallel()

	st := New()
	first := snapshotWith("a")
	second := snapshotWith("b", "c")

	st.Replace(first)
	if st.Current() != first {
		t.Fatal("expected first snapshot to be current")
	}
	st.Replace(second)
	if st.Current() != second {
		t.Fatal("expected second snapshot to supersede the first")
	}
}

func TestStoreSubscribeReceivesReplacements(t *testing.T) {
	t.Parallel()

	st := New()
	ch, cancel := st.Subscribe()
	defer cancel()

	snap := snapshotWith("a")
	st.Replace(snap)

	select {
	case got := <-ch:
		if got != snap {
			t.Fatalf("expected the published snapshot, got %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot notification")
	}
}

func TestStoreSlowSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()

	st := New()
	_, cancel := st.Subscribe()
	defer cancel()

	// Buffer is one; further publications must not block.
	st.Replace(snapshotWith("a"))
	done := make(chan struct{})
	go func() {
		st.Replace(snapshotWith("b"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
}

func TestStoreCancelledSubscriptionCloses(t *testing.T) {
	t.Parallel()

	st := New()
	ch, cancel := st.Subscribe()
	cancel()
	cancel() // idempotent

	if _, open := <-ch; open {
		t.Fatal("expected channel closed after cancel")
	}

	st.Replace(snapshotWith("a"))
}

func TestSnapshotPostByID(t *testing.T) {
	t.Parallel()

	snap := snapshotWith("a", "b")
	if p, ok := snap.PostByID("b"); !ok || p.ID != "b" {
		t.Fatalf("lookup failed: %v %v", p, ok)
	}
	if _, ok := snap.PostByID("missing"); ok {
		t.Fatal("expected miss for unknown id")
	}
}

func TestSnapshotLatestSortsByPostedAt(t *testing.T) {
	t.Parallel()

	snap := snapshotWith("old", "mid", "new")
	latest := snap.Latest(2)
	if len(latest) != 2 || latest[0].ID != "new" || latest[1].ID != "mid" {
		t.Fatalf("unexpected latest posts: %v", latest)
	}

	if got := snap.Latest(10); len(got) != 3 {
		t.Fatalf("expected all posts when n exceeds size, got %d", len(got))
	}
}
