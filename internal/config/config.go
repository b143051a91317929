// Package config loads wrapview configuration by layering:
// defaults < environment < config file < explicitly-set flags.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	NoBrowser    bool          `json:"no_browser"`
	DataDir      string        `json:"data_dir"`
	InputFile    string        `json:"input_file"`
	Year         int           `json:"year"`
	Aliases      []string      `json:"aliases,omitempty"`
	DisplayTZ    string        `json:"display_timezone"`
	BrowserCmd   string        `json:"browser_cmd,omitempty"`
	WriteTimeout time.Duration `json:"-"`
}

// Default returns a Config with default values.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf(
			"determining home directory: %w", err,
		)
	}
	return Config{
		Host:         "127.0.0.1",
		Port:         8080,
		DataDir:      filepath.Join(home, ".wrapview"),
		DisplayTZ:    "UTC",
		WriteTimeout: 30 * time.Second,
	}, nil
}

// Load builds a Config by layering defaults, env, config file,
// and flags. The FlagSet must already be parsed by the caller;
// only flags that were explicitly set override lower layers.
func Load(fs *flag.FlagSet) (Config, error) {
	cfg, err := LoadMinimal()
	if err != nil {
		return cfg, err
	}
	applyFlags(&cfg, fs)
	return cfg, nil
}

// LoadMinimal builds a Config from defaults, env, and the
// config file, without CLI flags. For subcommands that manage
// their own flag sets.
func LoadMinimal() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	cfg.loadEnv()
	if err := cfg.loadFile(); err != nil {
		return cfg, fmt.Errorf("loading config file: %w", err)
	}
	return cfg, nil
}

func (c *Config) configPath() string {
	return filepath.Join(c.DataDir, "config.json")
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.configPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var file struct {
		Host       string   `json:"host"`
		Port       int      `json:"port"`
		Year       int      `json:"year"`
		Aliases    []string `json:"aliases"`
		DisplayTZ  string   `json:"display_timezone"`
		BrowserCmd string   `json:"browser_cmd"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if file.Host != "" {
		c.Host = file.Host
	}
	if file.Port != 0 {
		c.Port = file.Port
	}
	if file.Year != 0 {
		c.Year = file.Year
	}
	// Env aliases win over the config file; loadEnv runs first.
	if len(file.Aliases) > 0 && c.Aliases == nil {
		c.Aliases = file.Aliases
	}
	if file.DisplayTZ != "" {
		c.DisplayTZ = file.DisplayTZ
	}
	if file.BrowserCmd != "" {
		c.BrowserCmd = file.BrowserCmd
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv("WRAPVIEW_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("WRAPVIEW_ALIASES"); v != "" {
		c.Aliases = splitAliases(v)
	}
	if v := os.Getenv("WRAPVIEW_BROWSER_CMD"); v != "" {
		c.BrowserCmd = v
	}
	if v := os.Getenv("WRAPVIEW_YEAR"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			c.Year = year
		}
	}
}

// RegisterServeFlags registers serve-command flags on fs. The
// caller must call fs.Parse before passing fs to Load.
func RegisterServeFlags(fs *flag.FlagSet) {
	fs.String("host", "127.0.0.1", "Host to bind to")
	fs.Int("port", 8080, "Port to listen on")
	fs.Bool("no-browser", false, "Don't open browser on startup")
	fs.String("file", "", "Export file to load and watch")
	fs.Int("year", 0, "Pin the summer window year (0 = auto)")
	fs.String("aliases", "", "Comma-separated alias terms to boost")
}

// applyFlags copies explicitly-set flags from fs into cfg.
func applyFlags(cfg *Config, fs *flag.FlagSet) {
	if fs == nil {
		return
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = f.Value.String()
		case "port":
			// flag already validated the int; ignore parse error
			cfg.Port, _ = strconv.Atoi(f.Value.String())
		case "no-browser":
			cfg.NoBrowser = f.Value.String() == "true"
		case "file":
			cfg.InputFile = f.Value.String()
		case "year":
			cfg.Year, _ = strconv.Atoi(f.Value.String())
		case "aliases":
			cfg.Aliases = splitAliases(f.Value.String())
		}
	})
}

// ResolveDataDir returns the effective data directory from
// defaults and environment only, without reading any files.
func ResolveDataDir() (string, error) {
	cfg, err := Default()
	if err != nil {
		return "", err
	}
	if v := os.Getenv("WRAPVIEW_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	return cfg.DataDir, nil
}

// DisplayLocation resolves the configured display timezone,
// falling back to UTC on bad values. Window math never uses
// this; it is display-only.
func (c *Config) DisplayLocation() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

func splitAliases(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
