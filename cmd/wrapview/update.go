package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wrapview/wrapview/internal/config"
	"github.com/wrapview/wrapview/internal/update"
)

// runUpdate checks GitHub for a newer release and prints where
// to get it.
func runUpdate(args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	force := fs.Bool("force", false, "Force check (ignore cache)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parsing flags: %v", err)
	}

	dataDir, err := config.ResolveDataDir()
	if err != nil {
		log.Fatalf("resolving data dir: %v", err)
	}

	info, err := update.Check(version, *force, dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "update check failed: %v\n", err)
		os.Exit(1)
	}

	if info == nil {
		if update.IsDevBuildVersion(version) {
			fmt.Printf("wrapview %s is a dev build; skipping update check\n",
				version)
			return
		}
		fmt.Printf("wrapview %s is up to date\n", version)
		return
	}

	fmt.Printf("wrapview %s is available (you have %s)\n",
		info.LatestVersion, info.CurrentVersion)
	fmt.Printf("Download: %s\n", info.ReleaseURL)
}
