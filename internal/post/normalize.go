package post

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"horse.fit/pulse/internal/analysis"
	"horse.fit/pulse/internal/globaltime"
	"horse.fit/pulse/internal/platform"
)

// postedAtLayouts covers RFC3339 feeds plus the zone-less ISO form some
// platform backends emit.
var postedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Normalize maps one raw platform payload into a canonical Post. Every
// missing field resolves to a documented default; no raw post is ever
// rejected here.
func Normalize(raw RawPost, fetched platform.Code) *Post {
	code := platform.Normalize(raw.Platform)
	if code == "" {
		code = fetched
	}
	info := platform.Lookup(code)

	reactions := Reactions{
		Love:  clampCount(reactionCount(raw.Reactions, "Love", "love")),
		Sad:   clampCount(reactionCount(raw.Reactions, "Sad", "sad")),
		Like:  clampCount(reactionCount(raw.Reactions, "Like", "like")),
		Haha:  clampCount(reactionCount(raw.Reactions, "Haha", "haha")),
		Wow:   clampCount(reactionCount(raw.Reactions, "Wow", "wow")),
		Angry: clampCount(reactionCount(raw.Reactions, "Angry", "angry")),
		Care:  clampCount(reactionCount(raw.Reactions, "Care", "care")),
		Total: clampCount(totalReactions(raw)),
	}

	comments := clampCount(raw.TotalComments)
	shares := clampCount(raw.TotalShares)
	views := clampCount(raw.TotalViews)

	sentiment := analysis.AnalyzeSentiment(raw.Text)

	p := &Post{
		ID:             raw.ID,
		PlatformCode:   code,
		PlatformInfo:   info,
		Platforms:      []string{info.Name},
		PlatformsInfo:  []platform.Info{info},
		Content:        raw.Text,
		PostURL:        raw.URL,
		WebURL:         raw.WebURL,
		Reactions:      reactions,
		Comments:       comments,
		Shares:         shares,
		Views:          views,
		VitalityScore:  raw.VitalityScore,
		Sentiment:      sentiment.Label,
		SentimentScore: sentiment.Score,
		PostType:       detectType(raw),
		PostedAt:       parsePostedAt(raw.PostedAt),
		SourceID:       raw.SourceID,
		Entities:       raw.Entities,
	}

	if p.ID == "" {
		p.ID = "post-" + uuid.NewString()
	}
	if p.WebURL == "" {
		p.WebURL = raw.URL
	}
	if len(raw.FeaturedImage) > 0 {
		p.FeaturedImage = raw.FeaturedImage[0]
	}
	p.Screenshot = raw.URLScreenshot

	if raw.Source != "" {
		p.Sources = []string{raw.Source}
		p.sourceFromFeed = true
	} else {
		p.Sources = []string{info.Name}
	}

	p.EngagementRate = analysis.EngagementRate(reactions.Total, comments, shares, views)

	return p
}

// totalReactions resolves the platform-reported total: the capitalized or
// lowercase key inside the reactions object wins when present, with the
// flat total_reactions field as the last fallback.
func totalReactions(raw RawPost) int {
	if value, ok := lookupReaction(raw.Reactions, "Total", "total"); ok {
		return value
	}
	return raw.TotalReacts
}

func reactionCount(counts map[string]int, keys ...string) int {
	value, _ := lookupReaction(counts, keys...)
	return value
}

func lookupReaction(counts map[string]int, keys ...string) (int, bool) {
	for _, key := range keys {
		if value, ok := counts[key]; ok {
			return value, true
		}
	}
	return 0, false
}

// detectType assigns exactly one post type, checking image assets before
// video-link patterns in the content.
func detectType(raw RawPost) Type {
	if len(raw.FeaturedImage) > 0 {
		return TypeImage
	}
	if strings.Contains(raw.Text, "youtu.be") || strings.Contains(raw.Text, "youtube.com") {
		return TypeVideo
	}
	return TypeText
}

func parsePostedAt(raw string) time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		for _, layout := range postedAtLayouts {
			if ts, err := time.Parse(layout, trimmed); err == nil {
				return ts
			}
		}
	}
	return globaltime.Now()
}

func clampCount(value int) int {
	if value < 0 {
		return 0
	}
	return value
}
