package post

import (
	"encoding/json"
	"sort"
	"time"

	"horse.fit/pulse/internal/analysis"
	"horse.fit/pulse/internal/platform"
)

// Type classifies a post by its dominant media.
type Type string

const (
	TypeText  Type = "text"
	TypeImage Type = "image"
	TypeVideo Type = "video"
)

// Reactions holds the named reaction counters plus the platform-reported
// total. The total is not required to equal the sum of the named counters:
// it may be supplied independently upstream and is max-merged, never summed.
type Reactions struct {
	Love  int `json:"love"`
	Sad   int `json:"sad"`
	Like  int `json:"like"`
	Haha  int `json:"haha"`
	Wow   int `json:"wow"`
	Angry int `json:"angry"`
	Care  int `json:"care"`
	Total int `json:"total"`
}

// Post is the canonical entity the whole pipeline produces and every
// aggregate consumes. One Post may represent the same content observed on
// several platforms; Platforms and Sources grow under deduplication and
// never shrink.
type Post struct {
	ID             string                  `json:"id"`
	PlatformCode   platform.Code           `json:"platform"`
	PlatformInfo   platform.Info           `json:"platform_info"`
	Platforms      []string                `json:"platforms"`
	PlatformsInfo  []platform.Info         `json:"platforms_info"`
	Content        string                  `json:"content"`
	PostURL        string                  `json:"post_url,omitempty"`
	WebURL         string                  `json:"web_url,omitempty"`
	Reactions      Reactions               `json:"reactions"`
	Comments       int                     `json:"comments"`
	Shares         int                     `json:"shares"`
	Views          int                     `json:"views"`
	VitalityScore  float64                 `json:"vitality_score"`
	EngagementRate float64                 `json:"engagement_rate"`
	Sentiment      analysis.SentimentLabel `json:"sentiment"`
	SentimentScore int                     `json:"sentiment_score"`
	PostType       Type                    `json:"post_type"`
	PostedAt       time.Time               `json:"posted_at"`
	Sources        []string                `json:"sources"`
	SourceID       string                  `json:"source_id,omitempty"`
	Entities       []json.RawMessage       `json:"entities,omitempty"`
	FeaturedImage  string                  `json:"featured_image,omitempty"`
	Screenshot     string                  `json:"screenshot,omitempty"`

	// sourceFromFeed records whether Sources[0] came from the raw payload
	// rather than the platform-name fallback; only feed-supplied sources
	// propagate during merges.
	sourceFromFeed bool
}

// TotalEngagement is the interaction sum used by every engagement aggregate.
func (p *Post) TotalEngagement() int {
	return p.Reactions.Total + p.Comments + p.Shares
}

// DedupKey identifies the same content across platforms: the first 100
// characters of the content, or the post URL when the content is empty.
func (p *Post) DedupKey() string {
	if p.Content != "" {
		runes := []rune(p.Content)
		if len(runes) > 100 {
			return string(runes[:100])
		}
		return p.Content
	}
	return p.PostURL
}

// SortByVitality orders posts descending by vitality score. Ties keep
// insertion order; there is no secondary key.
func SortByVitality(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].VitalityScore > posts[j].VitalityScore
	})
}
