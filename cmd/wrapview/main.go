package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"
	_ "time/tzdata"

	"github.com/google/shlex"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/wrapview/wrapview/internal/config"
	"github.com/wrapview/wrapview/internal/pipeline"
	"github.com/wrapview/wrapview/internal/server"
	"github.com/wrapview/wrapview/internal/watch"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = ""
)

const (
	watcherDebounce     = 500 * time.Millisecond
	browserPollInterval = 100 * time.Millisecond
	browserPollAttempts = 60
)

func main() {
	// Local overrides like WRAPVIEW_YEAR live in .env during
	// development; absence is not an error.
	_ = godotenv.Load()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "wrap":
			runWrap(os.Args[2:])
			return
		case "update":
			runUpdate(os.Args[2:])
			return
		case "serve":
			runServe(os.Args[2:])
			return
		case "version", "--version", "-v":
			fmt.Printf("wrapview %s (commit %s, built %s)\n",
				version, commit, buildDate)
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
	}

	runServe(os.Args[1:])
}

func printUsage() {
	fmt.Printf(`wrapview %s - Summer Wrapped for your chat exports

Turns a ChatGPT-style conversations.json export into summer
activity metrics and a slide-deck story, served over a local API.

Usage:
  wrapview [flags]          Start the server (default command)
  wrapview serve [flags]    Start the server (explicit)
  wrapview wrap [flags]     Build wrapped JSON from a file, print it
  wrapview update [flags]   Check for a newer release
  wrapview version          Show version information
  wrapview help             Show this help

Server flags:
  -host string        Host to bind to (default "127.0.0.1")
  -port int           Port to listen on (default 8080)
  -no-browser         Don't open browser on startup
  -file string        Export file to load and watch for changes
  -year int           Pin the summer window year (0 = auto)
  -aliases string     Comma-separated alias terms to boost

Wrap flags:
  -file string        Export file to read (required)
  -year int           Pin the summer window year (0 = auto)
  -aliases string     Comma-separated alias terms to boost
  -pretty             Indent the JSON output

Update flags:
  -force              Force check (ignore cache)

Environment variables:
  WRAPVIEW_DATA_DIR       Data directory (config, caches)
  WRAPVIEW_YEAR           Default summer window year
  WRAPVIEW_ALIASES        Default alias terms
  WRAPVIEW_BROWSER_CMD    Custom browser command

Data is stored in ~/.wrapview/ by default.
`, version)
}

func runServe(args []string) {
	cfg := mustLoadConfig(args)

	port := server.FindAvailablePort(cfg.Host, cfg.Port)
	if port != cfg.Port {
		fmt.Printf("Port %d in use, using %d\n", cfg.Port, port)
	}
	cfg.Port = port

	srv := server.New(cfg,
		server.WithVersion(server.VersionInfo{
			Version:   version,
			Commit:    commit,
			BuildDate: buildDate,
		}),
	)

	if cfg.InputFile != "" {
		loadExport(srv, cfg, cfg.InputFile)
		stopWatcher := startFileWatcher(srv, cfg)
		defer stopWatcher()
	}

	url := fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port)
	fmt.Printf("wrapview %s listening at %s\n", version, url)

	if !cfg.NoBrowser {
		go openBrowser(url, cfg.BrowserCmd)
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func mustLoadConfig(args []string) config.Config {
	fs := flag.NewFlagSet("wrapview", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			"Usage: wrapview [serve] [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	config.RegisterServeFlags(fs)
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parsing flags: %v", err)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("creating data dir: %v", err)
	}
	return cfg
}

// loadExport builds the wrapped from a file on disk and
// publishes it as the server's latest build.
func loadExport(srv *server.Server, cfg config.Config, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("warning: reading %s: %v", path, err)
		return
	}

	result, err := pipeline.Run(raw, pipeline.Options{
		Year:    cfg.Year,
		Aliases: cfg.Aliases,
		Now:     time.Now(),
	})
	if err != nil {
		log.Printf("warning: building wrapped from %s: %v", path, err)
		return
	}

	srv.SetLatest(server.Build{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    path,
		Result:    result,
	})
	fmt.Printf("Loaded %s: %d threads, %d summer prompts\n",
		path, result.Threads, result.Metrics.TotalPrompts)
}

func startFileWatcher(srv *server.Server, cfg config.Config) func() {
	onChange := func(path string) {
		loadExport(srv, cfg, path)
	}
	watcher, err := watch.NewWatcher(
		cfg.InputFile, watcherDebounce, onChange,
	)
	if err != nil {
		log.Printf("warning: file watcher unavailable: %v", err)
		return func() {}
	}
	watcher.Start()
	return watcher.Stop
}

func openBrowser(url, browserCmd string) {
	for i := 0; i < browserPollAttempts; i++ {
		time.Sleep(browserPollInterval)
		resp, err := http.Get(url + "/api/v1/version")
		if err == nil {
			resp.Body.Close()
			break
		}
	}

	var cmd *exec.Cmd
	if browserCmd != "" {
		parts, err := shlex.Split(browserCmd)
		if err != nil || len(parts) == 0 {
			log.Printf("warning: bad browser command %q", browserCmd)
			return
		}
		cmd = exec.Command(parts[0], append(parts[1:], url)...)
	} else {
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "linux":
			cmd = exec.Command("xdg-open", url)
		case "windows":
			cmd = exec.Command("rundll32",
				"url.dll,FileProtocolHandler", url)
		default:
			return
		}
	}
	_ = cmd.Run()
}
