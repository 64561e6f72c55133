package aggregate

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"horse.fit/pulse/internal/analysis"
	"horse.fit/pulse/internal/post"
)

func testPost(id, content string, total, comments, shares int, postedAt time.Time) *post.Post {
	sentiment := analysis.AnalyzeSentiment(content)
	return &post.Post{
		ID:             id,
		Content:        content,
		Reactions:      post.Reactions{Total: total},
		Comments:       comments,
		Shares:         shares,
		Sentiment:      sentiment.Label,
		SentimentScore: sentiment.Score,
		PostedAt:       postedAt,
	}
}

func TestSentimentTotals(t *testing.T) {
	t.Parallel()

	now := time.Now()
	posts := []*post.Post{
		testPost("a", "great launch", 0, 0, 0, now),
		testPost("b", "terrible outage", 0, 0, 0, now),
		testPost("c", "weekly report", 0, 0, 0, now),
		testPost("d", "love this", 0, 0, 0, now),
	}
	got := Sentiments(posts)
	if got.Positive != 2 || got.Negative != 1 || got.Neutral != 1 {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestKeywordsSumImportanceAcrossPosts(t *testing.T) {
	t.Parallel()

	now := time.Now()
	posts := []*post.Post{
		testPost("a", "check this #launch", 0, 0, 0, now),
		testPost("b", "another #launch post", 0, 0, 0, now),
	}
	report := Keywords(posts)

	var launch *KeywordStat
	for i := range report.Top {
		if report.Top[i].Text == "launch" && report.Top[i].Type == analysis.KeywordHashtag {
			launch = &report.Top[i]
		}
	}
	if launch == nil {
		t.Fatalf("expected aggregated hashtag launch, got %v", report.Top)
	}
	if launch.Value != 6 {
		t.Fatalf("expected summed importance 3+3=6, got %v", launch.Value)
	}

	ids := report.PostIndex["launch"]
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected post index for launch: %v", ids)
	}
}

func TestKeywordsTopListCappedAt150(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 180; i++ {
		fmt.Fprintf(&b, "#tag%03d ", i)
	}
	posts := []*post.Post{testPost("a", b.String(), 0, 0, 0, time.Now())}

	report := Keywords(posts)
	if len(report.Top) != 150 {
		t.Fatalf("expected exactly 150 ranked keywords, got %d", len(report.Top))
	}
	if len(report.PostIndex) < 180 {
		t.Fatalf("post index must cover every term, got %d", len(report.PostIndex))
	}
}

func TestKeywordsRankedByValue(t *testing.T) {
	t.Parallel()

	now := time.Now()
	posts := []*post.Post{
		testPost("a", "#common word", 0, 0, 0, now),
		testPost("b", "#common again", 0, 0, 0, now),
		testPost("c", "#rare find", 0, 0, 0, now),
	}
	report := Keywords(posts)
	if report.Top[0].Text != "common" {
		t.Fatalf("expected highest-value keyword first, got %q", report.Top[0].Text)
	}
	for i := 1; i < len(report.Top); i++ {
		if report.Top[i].Value > report.Top[i-1].Value {
			t.Fatalf("ranked list not descending at %d: %v", i, report.Top)
		}
	}
}

func TestKeywordsCategoryGrouping(t *testing.T) {
	t.Parallel()

	posts := []*post.Post{testPost("a", "the #election results", 0, 0, 0, time.Now())}
	report := Keywords(posts)
	found := false
	for _, kw := range report.ByCategory["Politics"] {
		if kw.Text == "election" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected election under Politics, got %v", report.ByCategory)
	}
}

func TestTopicsClassifyFirstMatchOnly(t *testing.T) {
	t.Parallel()

	now := time.Now()
	posts := []*post.Post{
		testPost("a", "our new app is live", 10, 2, 1, now),
		testPost("b", "go vote in the election", 5, 1, 0, now),
		testPost("c", "zzz qqq", 3, 0, 0, now),
	}
	topics := Topics(posts)

	byName := map[string]TopicStat{}
	for _, topic := range topics {
		byName[topic.Topic] = topic
	}
	tech, ok := byName["Technology"]
	if !ok || tech.Count != 1 || tech.Engagement != 13 {
		t.Fatalf("unexpected Technology bucket: %+v", byName)
	}
	politics, ok := byName["Politics"]
	if !ok || politics.Count != 1 || politics.Engagement != 6 {
		t.Fatalf("unexpected Politics bucket: %+v", byName)
	}
	other, ok := byName["Other"]
	if !ok || other.Count != 1 || other.Engagement != 3 {
		t.Fatalf("unexpected Other bucket: %+v", byName)
	}
	if _, exists := byName["Sports"]; exists {
		t.Fatalf("empty buckets must be omitted: %+v", byName)
	}
}

func TestTopicsAverageEngagementRounds(t *testing.T) {
	t.Parallel()

	now := time.Now()
	posts := []*post.Post{
		testPost("a", "new app release", 1, 0, 0, now),
		testPost("b", "another app note", 2, 0, 0, now),
	}
	topics := Topics(posts)
	if len(topics) != 1 || topics[0].Topic != "Technology" {
		t.Fatalf("unexpected topics: %+v", topics)
	}
	// (1+2)/2 = 1.5 rounds to 2.
	if topics[0].AverageEngagement != 2 {
		t.Fatalf("expected rounded average 2, got %d", topics[0].AverageEngagement)
	}
}

func TestEngagementSeriesDaily(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	posts := []*post.Post{
		testPost("a", "x", 10, 1, 2, day2),
		testPost("b", "y", 5, 3, 1, day1),
		testPost("c", "z", 7, 2, 2, day1),
	}

	buckets := EngagementSeries(posts, Daily)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "2026-08-01" || buckets[1].Key != "2026-08-02" {
		t.Fatalf("buckets not chronological: %v", buckets)
	}
	if buckets[0].Reactions != 12 || buckets[0].Comments != 5 || buckets[0].Shares != 3 {
		t.Fatalf("unexpected sums for first bucket: %+v", buckets[0])
	}
}

func TestEngagementSeriesWeeklyKey(t *testing.T) {
	t.Parallel()

	// Jan 1 2026 is a Thursday (weekday 4). Jan 5 is 4 days into the year:
	// ceil((4+4+1)/7) = 2.
	posts := []*post.Post{
		testPost("a", "x", 1, 0, 0, time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)),
		testPost("b", "y", 1, 0, 0, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	buckets := EngagementSeries(posts, Weekly)
	if len(buckets) != 2 || buckets[0].Key != "2026-W01" || buckets[1].Key != "2026-W02" {
		t.Fatalf("unexpected weekly keys: %v", buckets)
	}
}

func TestEngagementSeriesMonthly(t *testing.T) {
	t.Parallel()

	posts := []*post.Post{
		testPost("a", "x", 1, 0, 0, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)),
		testPost("b", "y", 1, 0, 0, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)),
	}
	buckets := EngagementSeries(posts, Monthly)
	if len(buckets) != 2 || buckets[0].Key != "2026-01" || buckets[1].Key != "2026-02" {
		t.Fatalf("unexpected monthly keys: %v", buckets)
	}
}

func TestSentimentSeries(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	posts := []*post.Post{
		testPost("a", "great day", 0, 0, 0, day),
		testPost("b", "awful day", 0, 0, 0, day),
		testPost("c", "plain day", 0, 0, 0, day),
	}
	buckets := SentimentSeries(posts, Daily)
	if len(buckets) != 1 {
		t.Fatalf("expected one bucket, got %d", len(buckets))
	}
	b := buckets[0]
	if b.Key != "2026-08-01" || b.Positive != 1 || b.Negative != 1 || b.Neutral != 1 {
		t.Fatalf("unexpected bucket: %+v", b)
	}
}

func TestByDayOfWeek(t *testing.T) {
	t.Parallel()

	// 2026-08-28 is a Friday.
	friday := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	posts := []*post.Post{
		testPost("a", "x", 10, 0, 0, friday),
		testPost("b", "y", 20, 0, 0, friday),
	}
	days := ByDayOfWeek(posts)
	if days[5].Day != "Friday" || days[5].Count != 2 || days[5].AverageEngagement != 15 {
		t.Fatalf("unexpected Friday slot: %+v", days[5])
	}
	if days[0].Count != 0 || days[0].AverageEngagement != 0 {
		t.Fatalf("expected empty Sunday slot, got %+v", days[0])
	}
}

func TestByHourOfDay(t *testing.T) {
	t.Parallel()

	posts := []*post.Post{
		testPost("a", "x", 8, 0, 0, time.Date(2026, 8, 28, 14, 5, 0, 0, time.UTC)),
		testPost("b", "y", 4, 0, 0, time.Date(2026, 8, 27, 14, 55, 0, 0, time.UTC)),
	}
	hours := ByHourOfDay(posts)
	if hours[14].Count != 2 || hours[14].AverageEngagement != 6 {
		t.Fatalf("unexpected hour slot: %+v", hours[14])
	}
}

func TestInteractionMap(t *testing.T) {
	t.Parallel()

	friday := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	posts := []*post.Post{
		testPost("a", "x", 5, 1, 1, friday),
		testPost("b", "y", 2, 0, 0, friday),
	}
	grid := InteractionMap(posts)
	cell := grid[5].Hours[14]
	if cell.Count != 2 || cell.Engagement != 9 {
		t.Fatalf("unexpected cell: %+v", cell)
	}
	if grid[5].Day != "Friday" {
		t.Fatalf("unexpected day label: %q", grid[5].Day)
	}
}

func TestParseGranularity(t *testing.T) {
	t.Parallel()

	if got := ParseGranularity("weekly"); got != Weekly {
		t.Fatalf("expected weekly, got %q", got)
	}
	if got := ParseGranularity("nonsense"); got != Daily {
		t.Fatalf("expected daily fallback, got %q", got)
	}
}
