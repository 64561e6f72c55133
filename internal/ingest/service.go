package ingest

import (
	"context"

	"github.com/rs/zerolog"

	"horse.fit/pulse/internal/feed"
	"horse.fit/pulse/internal/globaltime"
	"horse.fit/pulse/internal/post"
	"horse.fit/pulse/internal/store"
)

// Fetcher is the slice of feed.Client the service needs. Tests substitute
// canned batches here.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]feed.Batch, error)
}

// Service runs the fetch, normalize, deduplicate cycle and publishes the
// result as a store snapshot.
type Service struct {
	fetcher Fetcher
	store   *store.Store
	logger  zerolog.Logger
}

func NewService(fetcher Fetcher, st *store.Store, logger zerolog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		store:   st,
		logger:  logger.With().Str("component", "ingest").Logger(),
	}
}

// RunCycle executes one full ingestion pass. Any platform fetch failure
// aborts the cycle and leaves the previous snapshot in place.
func (s *Service) RunCycle(ctx context.Context) (*store.Snapshot, error) {
	batches, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	dedup := post.NewDeduplicator()
	raw := 0
	for _, b := range batches {
		raw += len(b.Posts)
		for _, rp := range b.Posts {
			dedup.Add(post.Normalize(rp, b.Platform))
		}
	}

	snap := store.NewSnapshot(dedup.Posts(), globaltime.Now())
	s.store.Replace(snap)

	s.logger.Info().
		Int("raw_posts", raw).
		Int("unique_posts", len(snap.Posts)).
		Msg("ingestion cycle complete")
	return snap, nil
}
