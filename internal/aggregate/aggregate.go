// Package aggregate derives dashboard analytics from the canonical post
// collection. Every function is a pure transform of its input and is
// recomputed in full whenever the collection changes.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"horse.fit/pulse/internal/analysis"
	"horse.fit/pulse/internal/post"
)

// Granularity selects the calendar bucket for time series.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// ParseGranularity maps a request parameter onto a granularity,
// defaulting to daily.
func ParseGranularity(s string) Granularity {
	switch Granularity(s) {
	case Weekly:
		return Weekly
	case Monthly:
		return Monthly
	default:
		return Daily
	}
}

// SentimentTotals counts posts per sentiment label.
type SentimentTotals struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

func Sentiments(posts []*post.Post) SentimentTotals {
	var t SentimentTotals
	for _, p := range posts {
		switch p.Sentiment {
		case analysis.SentimentPositive:
			t.Positive++
		case analysis.SentimentNegative:
			t.Negative++
		default:
			t.Neutral++
		}
	}
	return t
}

// KeywordStat is one aggregated keyword with its summed importance.
type KeywordStat struct {
	Text     string               `json:"text"`
	Type     analysis.KeywordType `json:"type"`
	Value    float64              `json:"value"`
	Category string               `json:"category"`
}

// KeywordReport holds the ranked keyword list, the per-category grouping,
// and the keyword to post-id index used for filtering.
type KeywordReport struct {
	Top        []KeywordStat            `json:"top"`
	ByCategory map[string][]KeywordStat `json:"by_category"`
	PostIndex  map[string][]string      `json:"post_index"`
}

const topKeywordLimit = 150

// Keywords aggregates extracted keywords across all posts. Duplicate terms
// (case-insensitive) sum their importance into a single value. The ranked
// list is truncated to the top 150; the category grouping and post index
// cover every term.
func Keywords(posts []*post.Post) KeywordReport {
	type entry struct {
		stat  KeywordStat
		posts []string
		seen  map[string]struct{}
	}
	byKey := make(map[string]*entry)
	var order []string

	for _, p := range posts {
		for _, kw := range analysis.ExtractKeywords(p.Content) {
			key := strings.ToLower(kw.Text)
			e, ok := byKey[key]
			if !ok {
				e = &entry{
					stat: KeywordStat{
						Text:     kw.Text,
						Type:     kw.Type,
						Category: analysis.CategorizeKeyword(kw.Text),
					},
					seen: make(map[string]struct{}),
				}
				byKey[key] = e
				order = append(order, key)
			}
			e.stat.Value += kw.Importance
			if _, dup := e.seen[p.ID]; !dup {
				e.seen[p.ID] = struct{}{}
				e.posts = append(e.posts, p.ID)
			}
		}
	}

	report := KeywordReport{
		ByCategory: make(map[string][]KeywordStat),
		PostIndex:  make(map[string][]string, len(byKey)),
	}
	for _, key := range order {
		e := byKey[key]
		report.Top = append(report.Top, e.stat)
		report.ByCategory[e.stat.Category] = append(report.ByCategory[e.stat.Category], e.stat)
		report.PostIndex[key] = e.posts
	}
	sort.SliceStable(report.Top, func(i, j int) bool {
		return report.Top[i].Value > report.Top[j].Value
	})
	if len(report.Top) > topKeywordLimit {
		report.Top = report.Top[:topKeywordLimit]
	}
	return report
}

// topicKeywords is a small fixed subject-matter mapping, separate from the
// keyword categories. Declaration order decides which topic claims a post
// that matches several.
var topicKeywords = []struct {
	topic    string
	keywords []string
}{
	{"Technology", []string{"tech", "technology", "digital", "app", "software", "gadget", "innovation"}},
	{"Business", []string{"business", "entrepreneur", "startup", "commerce", "market", "finance"}},
	{"Entertainment", []string{"entertainment", "movie", "music", "celebrity", "festival", "concert"}},
	{"Health", []string{"health", "wellness", "fitness", "medical", "diet", "exercise"}},
	{"Politics", []string{"politics", "government", "election", "policy", "president", "vote"}},
	{"Sports", []string{"sports", "game", "athlete", "tournament", "championship", "team"}},
	{"Fashion", []string{"fashion", "style", "trend", "clothing", "design", "beauty"}},
	{"Food", []string{"food", "recipe", "cook", "restaurant", "cuisine", "dish"}},
	{"Travel", []string{"travel", "trip", "vacation", "tourism", "destination", "adventure"}},
	{"Education", []string{"education", "learning", "student", "school", "course", "teach"}},
}

const topicOther = "Other"

// TopicStat summarizes one topic bucket.
type TopicStat struct {
	Topic             string `json:"topic"`
	Count             int    `json:"count"`
	Engagement        int    `json:"engagement"`
	AverageEngagement int    `json:"average_engagement"`
}

// Topics classifies each post into at most one topic by substring match
// over lower-cased content; unmatched posts fall into "Other". Empty
// buckets are omitted.
func Topics(posts []*post.Post) []TopicStat {
	counts := make([]TopicStat, len(topicKeywords)+1)
	for i, t := range topicKeywords {
		counts[i].Topic = t.topic
	}
	counts[len(topicKeywords)].Topic = topicOther

	for _, p := range posts {
		content := strings.ToLower(p.Content)
		idx := len(topicKeywords)
		for i, t := range topicKeywords {
			if containsAny(content, t.keywords) {
				idx = i
				break
			}
		}
		counts[idx].Count++
		counts[idx].Engagement += p.TotalEngagement()
	}

	var out []TopicStat
	for _, c := range counts {
		if c.Count == 0 {
			continue
		}
		c.AverageEngagement = int(math.Round(float64(c.Engagement) / float64(c.Count)))
		out = append(out, c)
	}
	return out
}

// TimeBucket is one chronological bucket of summed engagement counters.
type TimeBucket struct {
	Key       string `json:"key"`
	Reactions int    `json:"reactions"`
	Comments  int    `json:"comments"`
	Shares    int    `json:"shares"`
}

// EngagementSeries sums reactions, comments and shares per calendar
// bucket, sorted by bucket key.
func EngagementSeries(posts []*post.Post, g Granularity) []TimeBucket {
	byKey := make(map[string]*TimeBucket)
	for _, p := range posts {
		key := bucketKey(p.PostedAt, g)
		b, ok := byKey[key]
		if !ok {
			b = &TimeBucket{Key: key}
			byKey[key] = b
		}
		b.Reactions += p.Reactions.Total
		b.Comments += p.Comments
		b.Shares += p.Shares
	}
	return sortBuckets(byKey)
}

// SentimentBucket counts sentiment labels inside one calendar bucket.
type SentimentBucket struct {
	Key      string `json:"key"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
}

// SentimentSeries counts posts per sentiment label per calendar bucket.
func SentimentSeries(posts []*post.Post, g Granularity) []SentimentBucket {
	byKey := make(map[string]*SentimentBucket)
	for _, p := range posts {
		key := bucketKey(p.PostedAt, g)
		b, ok := byKey[key]
		if !ok {
			b = &SentimentBucket{Key: key}
			byKey[key] = b
		}
		switch p.Sentiment {
		case analysis.SentimentPositive:
			b.Positive++
		case analysis.SentimentNegative:
			b.Negative++
		default:
			b.Neutral++
		}
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]SentimentBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byKey[k])
	}
	return out
}

// DaySlot is one day-of-week bucket, Sunday first.
type DaySlot struct {
	Day               string  `json:"day"`
	Count             int     `json:"count"`
	AverageEngagement float64 `json:"average_engagement"`
}

// HourSlot is one hour-of-day bucket.
type HourSlot struct {
	Hour              int     `json:"hour"`
	Count             int     `json:"count"`
	AverageEngagement float64 `json:"average_engagement"`
}

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ByDayOfWeek averages total engagement per weekday.
func ByDayOfWeek(posts []*post.Post) [7]DaySlot {
	var totals [7]int
	var slots [7]DaySlot
	for i := range slots {
		slots[i].Day = dayNames[i]
	}
	for _, p := range posts {
		d := int(p.PostedAt.Weekday())
		slots[d].Count++
		totals[d] += p.TotalEngagement()
	}
	for i := range slots {
		if slots[i].Count > 0 {
			slots[i].AverageEngagement = float64(totals[i]) / float64(slots[i].Count)
		}
	}
	return slots
}

// ByHourOfDay averages total engagement per posting hour.
func ByHourOfDay(posts []*post.Post) [24]HourSlot {
	var totals [24]int
	var slots [24]HourSlot
	for i := range slots {
		slots[i].Hour = i
	}
	for _, p := range posts {
		h := p.PostedAt.Hour()
		slots[h].Count++
		totals[h] += p.TotalEngagement()
	}
	for i := range slots {
		if slots[i].Count > 0 {
			slots[i].AverageEngagement = float64(totals[i]) / float64(slots[i].Count)
		}
	}
	return slots
}

// InteractionCell is one day-by-hour cell of the posting activity map.
type InteractionCell struct {
	Count      int `json:"count"`
	Engagement int `json:"engagement"`
}

// InteractionRow is one weekday row of 24 hourly cells.
type InteractionRow struct {
	Day   string              `json:"day"`
	Hours [24]InteractionCell `json:"hours"`
}

// InteractionMap builds the 7x24 day-by-hour activity grid.
func InteractionMap(posts []*post.Post) [7]InteractionRow {
	var grid [7]InteractionRow
	for i := range grid {
		grid[i].Day = dayNames[i]
	}
	for _, p := range posts {
		d := int(p.PostedAt.Weekday())
		h := p.PostedAt.Hour()
		grid[d].Hours[h].Count++
		grid[d].Hours[h].Engagement += p.TotalEngagement()
	}
	return grid
}

// bucketKey formats a timestamp into its calendar bucket. The weekly
// bucket uses a simplified week number, ceil((daysIntoYear + weekday of
// Jan 1 + 1) / 7), which is deliberately not ISO-8601.
func bucketKey(t time.Time, g Granularity) string {
	switch g {
	case Weekly:
		jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
		daysIntoYear := float64(t.Sub(jan1)) / float64(24*time.Hour)
		week := int(math.Ceil((daysIntoYear + float64(jan1.Weekday()) + 1) / 7))
		return fmt.Sprintf("%d-W%02d", t.Year(), week)
	case Monthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

func sortBuckets(byKey map[string]*TimeBucket) []TimeBucket {
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]TimeBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byKey[k])
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
