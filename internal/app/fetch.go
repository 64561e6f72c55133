package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/pulse/internal/cli"
)

func runFetch(args []string) int {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	format := fs.String("format", outputFormatTable, "Output format: table or json")
	limit := fs.Int("limit", 20, "Number of posts to print (0 for all)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "fetch does not accept positional arguments")
		return 2
	}
	if *limit < 0 {
		fmt.Fprintln(os.Stderr, "--limit must be >= 0")
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

	posts := snap.Posts
	if *limit > 0 && len(posts) > *limit {
		posts = posts[:*limit]
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(posts); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			p.ID,
			strings.Join(p.Platforms, "+"),
			truncateForTable(p.Content, 48),
			string(p.Sentiment),
			fmt.Sprintf("%d", p.TotalEngagement()),
			fmt.Sprintf("%.2f", p.VitalityScore),
		})
	}
	if err := writeTable([]string{"id", "platforms", "content", "sentiment", "engagement", "vitality"}, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render table: %v\n", err)
		return 1
	}
	fmt.Printf("\n%d unique posts (fetched at %s)\n", len(snap.Posts), snap.FetchedAt.UTC().Format(time.RFC3339))
	return 0
}
