package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/wrapview/wrapview/internal/config"
	"github.com/wrapview/wrapview/internal/pipeline"
)

// runWrap builds the wrapped from a file and prints the JSON,
// for piping into other tools without running the server.
func runWrap(args []string) {
	fs := flag.NewFlagSet("wrap", flag.ExitOnError)
	file := fs.String("file", "", "Export file to read (required)")
	year := fs.Int("year", 0, "Pin the summer window year (0 = auto)")
	aliases := fs.String("aliases", "", "Comma-separated alias terms to boost")
	pretty := fs.Bool("pretty", false, "Indent the JSON output")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parsing flags: %v", err)
	}

	// A bare positional argument also works: wrapview wrap export.json
	if *file == "" && fs.NArg() > 0 {
		*file = fs.Arg(0)
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "wrap: -file is required")
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadMinimal()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *year != 0 {
		cfg.Year = *year
	}
	if *aliases != "" {
		cfg.Aliases = nil
		for _, a := range strings.Split(*aliases, ",") {
			if a = strings.TrimSpace(a); a != "" {
				cfg.Aliases = append(cfg.Aliases, a)
			}
		}
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("reading %s: %v", *file, err)
	}

	result, err := pipeline.Run(raw, pipeline.Options{
		Year:    cfg.Year,
		Aliases: cfg.Aliases,
		Now:     time.Now(),
	})
	if err != nil {
		log.Fatalf("building wrapped: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		log.Fatalf("encoding output: %v", err)
	}
}
