package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"horse.fit/pulse/internal/cli"
	"horse.fit/pulse/internal/export"
)

func runExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	format := fs.String("format", "csv", "Export format: csv or json")
	outPath := fs.String("out", "", "Output file (default stdout)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "export does not accept positional arguments")
		return 2
	}

	exportFormat := strings.TrimSpace(strings.ToLower(*format))
	if exportFormat != "csv" && exportFormat != "json" {
		fmt.Fprintln(os.Stderr, "--format must be csv or json")
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

	dataset := export.Build(snap.Posts)
	var body []byte
	if exportFormat == "csv" {
		body = []byte(dataset.CSV())
	} else {
		body, err = dataset.JSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode export: %v\n", err)
			return 1
		}
	}

	if strings.TrimSpace(*outPath) == "" {
		fmt.Println(string(body))
		return 0
	}
	if err := os.WriteFile(*outPath, body, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *outPath, err)
		return 1
	}
	fmt.Printf("Wrote %d posts to %s\n", len(snap.Posts), *outPath)
	return 0
}
