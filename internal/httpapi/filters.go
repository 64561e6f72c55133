package httpapi

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"horse.fit/pulse/internal/post"
)

// postFilter captures the read-side query parameters of the post listing.
// Zero values mean "no restriction".
type postFilter struct {
	Platform          string
	PostType          string
	Sentiment         string
	DateRange         string
	MinEngagementRate float64
	Keyword           string
	Sort              string
}

func filterFromQuery(c echo.Context) (postFilter, error) {
	f := postFilter{
		Platform:  queryOrAll(c, "platform"),
		PostType:  queryOrAll(c, "post_type"),
		Sentiment: queryOrAll(c, "sentiment"),
		DateRange: queryOrAll(c, "date_range"),
		Keyword:   strings.TrimSpace(c.QueryParam("keyword")),
		Sort:      strings.TrimSpace(c.QueryParam("sort")),
	}
	if raw := strings.TrimSpace(c.QueryParam("min_engagement_rate")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return postFilter{}, echo.NewHTTPError(400, "min_engagement_rate must be a non-negative number")
		}
		f.MinEngagementRate = v
	}
	return f, nil
}

func queryOrAll(c echo.Context, name string) string {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "all" {
		return ""
	}
	return v
}

func (f postFilter) apply(posts []*post.Post, now time.Time) []*post.Post {
	var cutoff time.Time
	switch f.DateRange {
	case "7days":
		cutoff = now.AddDate(0, 0, -7)
	case "30days":
		cutoff = now.AddDate(0, 0, -30)
	case "90days":
		cutoff = now.AddDate(0, 0, -90)
	}
	keyword := strings.ToLower(f.Keyword)

	out := make([]*post.Post, 0, len(posts))
	for _, p := range posts {
		if f.Platform != "" && string(p.PlatformCode) != f.Platform {
			continue
		}
		if f.PostType != "" && string(p.PostType) != f.PostType {
			continue
		}
		if f.Sentiment != "" && string(p.Sentiment) != f.Sentiment {
			continue
		}
		if p.EngagementRate < f.MinEngagementRate {
			continue
		}
		if !cutoff.IsZero() && p.PostedAt.Before(cutoff) {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(p.Content), keyword) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortPosts orders a filtered copy by the requested key, descending.
// Unknown keys fall back to vitality. The input order (vitality-desc from
// the snapshot) is the tie-break.
func sortPosts(posts []*post.Post, key string) {
	switch key {
	case "engagement":
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].TotalEngagement() > posts[j].TotalEngagement()
		})
	case "engagementRate":
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].EngagementRate > posts[j].EngagementRate
		})
	case "views":
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Views > posts[j].Views
		})
	case "recent":
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].PostedAt.After(posts[j].PostedAt)
		})
	default:
		post.SortByVitality(posts)
	}
}
