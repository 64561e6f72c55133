// Package export serializes the canonical post collection, regrouped by
// platform name, as CSV or pretty-printed JSON.
package export

import (
	"encoding/json"
	"strconv"
	"strings"

	"horse.fit/pulse/internal/post"
)

// Record is one exported post row.
type Record struct {
	PostID        string  `json:"post_id"`
	Content       string  `json:"content"`
	Sentiment     string  `json:"sentiment"`
	Likes         int     `json:"likes"`
	CommentsCount int     `json:"comments_count"`
	Shares        int     `json:"shares"`
	Reach         int     `json:"reach"`
	ViralityScore float64 `json:"virality_score"`
}

// Group holds every exported post of one platform.
type Group struct {
	Posts []Record `json:"posts"`
}

// Dataset maps a platform display name to its posts. Platform order of
// first appearance in the collection is kept alongside for CSV rows.
type Dataset struct {
	Groups map[string]Group
	Order  []string
}

// Build regroups posts by their primary platform name.
func Build(posts []*post.Post) Dataset {
	ds := Dataset{Groups: make(map[string]Group)}
	for _, p := range posts {
		name := p.PlatformInfo.Name
		g, ok := ds.Groups[name]
		if !ok {
			ds.Order = append(ds.Order, name)
		}
		g.Posts = append(g.Posts, Record{
			PostID:        p.ID,
			Content:       p.Content,
			Sentiment:     string(p.Sentiment),
			Likes:         p.Reactions.Total,
			CommentsCount: p.Comments,
			Shares:        p.Shares,
			Reach:         p.Views,
			ViralityScore: p.VitalityScore,
		})
		ds.Groups[name] = g
	}
	return ds
}

var csvHeader = []string{"Platform", "Post ID", "Content", "Sentiment", "Likes", "Comments", "Shares", "Reach", "Virality Score"}

// CSV renders the dataset with only the Content column quoted; embedded
// quotes in content are doubled.
func (ds Dataset) CSV() string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	for _, name := range ds.Order {
		for _, r := range ds.Groups[name].Posts {
			b.WriteByte('\n')
			b.WriteString(strings.Join([]string{
				name,
				r.PostID,
				`"` + strings.ReplaceAll(r.Content, `"`, `""`) + `"`,
				r.Sentiment,
				strconv.Itoa(r.Likes),
				strconv.Itoa(r.CommentsCount),
				strconv.Itoa(r.Shares),
				strconv.Itoa(r.Reach),
				strconv.FormatFloat(r.ViralityScore, 'f', -1, 64),
			}, ","))
		}
	}
	return b.String()
}

// JSON renders the dataset pretty-printed.
func (ds Dataset) JSON() ([]byte, error) {
	return json.MarshalIndent(ds.Groups, "", "  ")
}
