package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/pulse/internal/aggregate"
	"horse.fit/pulse/internal/cli"
)

func runStats(args []string) int {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	format := fs.String("format", outputFormatTable, "Output format: table or json")
	granularity := fs.String("granularity", "daily", "Time bucket: daily, weekly or monthly")
	topKeywords := fs.Int("top-keywords", 15, "Number of keywords to print")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "stats does not accept positional arguments")
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatTable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	p, err := buildPipeline(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	snap, err := p.runCycleOnce(*timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch posts: %v\n", err)
		return 1
	}

	g := aggregate.ParseGranularity(*granularity)
	sentiments := aggregate.Sentiments(snap.Posts)
	keywords := aggregate.Keywords(snap.Posts)
	topics := aggregate.Topics(snap.Posts)
	series := aggregate.EngagementSeries(snap.Posts, g)

	if outputFormat == outputFormatJSON {
		if err := printJSON(map[string]any{
			"post_count": len(snap.Posts),
			"fetched_at": snap.FetchedAt,
			"sentiments": sentiments,
			"keywords":   keywords.Top,
			"topics":     topics,
			"engagement": series,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Printf("%d unique posts (fetched at %s)\n\n", len(snap.Posts), snap.FetchedAt.UTC().Format(time.RFC3339))

	fmt.Println("Sentiment:")
	if err := writeTable([]string{"positive", "neutral", "negative"}, [][]string{{
		fmt.Sprintf("%d", sentiments.Positive),
		fmt.Sprintf("%d", sentiments.Neutral),
		fmt.Sprintf("%d", sentiments.Negative),
	}}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render sentiment table: %v\n", err)
		return 1
	}

	top := keywords.Top
	if *topKeywords > 0 && len(top) > *topKeywords {
		top = top[:*topKeywords]
	}
	keywordRows := make([][]string, 0, len(top))
	for _, kw := range top {
		keywordRows = append(keywordRows, []string{
			kw.Text,
			string(kw.Type),
			kw.Category,
			fmt.Sprintf("%.1f", kw.Value),
		})
	}
	fmt.Println("\nTop keywords:")
	if err := writeTable([]string{"keyword", "type", "category", "value"}, keywordRows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render keyword table: %v\n", err)
		return 1
	}

	topicRows := make([][]string, 0, len(topics))
	for _, t := range topics {
		topicRows = append(topicRows, []string{
			t.Topic,
			fmt.Sprintf("%d", t.Count),
			fmt.Sprintf("%d", t.Engagement),
			fmt.Sprintf("%d", t.AverageEngagement),
		})
	}
	fmt.Println("\nTopics:")
	if err := writeTable([]string{"topic", "posts", "engagement", "avg"}, topicRows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render topic table: %v\n", err)
		return 1
	}

	seriesRows := make([][]string, 0, len(series))
	for _, b := range series {
		seriesRows = append(seriesRows, []string{
			b.Key,
			fmt.Sprintf("%d", b.Reactions),
			fmt.Sprintf("%d", b.Comments),
			fmt.Sprintf("%d", b.Shares),
		})
	}
	fmt.Printf("\nEngagement (%s):\n", g)
	if err := writeTable([]string{"bucket", "reactions", "comments", "shares"}, seriesRows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render engagement table: %v\n", err)
		return 1
	}
	return 0
}
