// Package simulate fabricates live activity between ingestion cycles. It
// is a local, non-authoritative process; the next real fetch replaces
// whatever it produced.
package simulate

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"horse.fit/pulse/internal/analysis"
	"horse.fit/pulse/internal/globaltime"
	"horse.fit/pulse/internal/platform"
	"horse.fit/pulse/internal/post"
	"horse.fit/pulse/internal/store"
)

var sampleContents = []string{
	"Just launched our new product! Check it out at our website. #innovation #newproduct",
	"Exciting news! We've reached 10,000 followers today. Thank you for your support! #milestone",
	"Our team is attending the annual tech conference this week. Stop by our booth! #conference #networking",
	"New blog post: '10 Tips for Social Media Success' - read now on our website! #socialmedia #tips",
	"Flash sale! 25% off all products for the next 24 hours. Use code: FLASH25 #sale #discount",
}

// Simulator mutates a copy of the current snapshot on each tick: roughly
// 30% of posts get small metric bumps and there is a 25% chance a fresh
// synthetic post is prepended.
type Simulator struct {
	store  *store.Store
	rng    *rand.Rand
	logger zerolog.Logger
}

func New(st *store.Store, rng *rand.Rand, logger zerolog.Logger) *Simulator {
	return &Simulator{
		store:  st,
		rng:    rng,
		logger: logger.With().Str("component", "simulate").Logger(),
	}
}

// Tick reads the current snapshot, applies simulated changes to a copy and
// publishes the result. Ticks before the first ingestion cycle are no-ops.
func (s *Simulator) Tick() {
	prev := s.store.Current()
	if prev == nil || len(prev.Posts) == 0 {
		return
	}

	next := make([]*post.Post, 0, len(prev.Posts)+1)
	bumped := 0
	for _, p := range prev.Posts {
		if s.rng.Float64() > 0.7 {
			cp := *p
			cp.Reactions.Like += s.rng.Intn(3)
			cp.Reactions.Total += s.rng.Intn(3)
			if s.rng.Float64() > 0.8 {
				cp.Comments++
			}
			if s.rng.Float64() > 0.9 {
				cp.Shares++
			}
			cp.Views += s.rng.Intn(5)
			next = append(next, &cp)
			bumped++
		} else {
			next = append(next, p)
		}
	}

	added := false
	if s.rng.Float64() > 0.75 {
		next = append([]*post.Post{s.newPost()}, next...)
		added = true
	}

	s.store.Replace(store.NewSnapshot(next, prev.FetchedAt))
	s.logger.Debug().Int("bumped", bumped).Bool("new_post", added).Msg("simulated update applied")
}

func (s *Simulator) newPost() *post.Post {
	code := platform.Codes[s.rng.Intn(len(platform.Codes))]
	info := platform.Lookup(code)
	content := sampleContents[s.rng.Intn(len(sampleContents))]
	sentiment := analysis.AnalyzeSentiment(content)
	now := globaltime.Now()

	p := &post.Post{
		ID:             fmt.Sprintf("post-%d", now.UnixMilli()),
		PlatformCode:   code,
		PlatformInfo:   info,
		Platforms:      []string{info.Name},
		PlatformsInfo:  []platform.Info{info},
		Content:        content,
		Reactions: post.Reactions{
			Love:  s.rng.Intn(5),
			Sad:   s.rng.Intn(3),
			Like:  s.rng.Intn(20),
			Haha:  s.rng.Intn(4),
			Wow:   s.rng.Intn(3),
			Angry: s.rng.Intn(2),
			Care:  s.rng.Intn(3),
			Total: s.rng.Intn(30),
		},
		Shares:         s.rng.Intn(5),
		Comments:       s.rng.Intn(8),
		Views:          s.rng.Intn(100),
		VitalityScore:  s.rng.Float64()*5 + 5,
		Sources:        []string{info.Name},
		Entities:       nil,
		PostedAt:       now,
		PostType:       post.TypeText,
		Sentiment:      sentiment.Label,
		SentimentScore: sentiment.Score,
		EngagementRate: s.rng.Float64()*5 + 1,
	}
	return p
}
