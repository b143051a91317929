// Package update checks GitHub for a newer wrapview release.
// It only reports; installing is left to the user's package
// manager or a manual download.
package update

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	githubAPIURL  = "https://api.github.com/repos/wrapview/wrapview/releases/latest"
	cacheFileName = "update_check.json"
	cacheDuration = 24 * time.Hour
)

// Release is the subset of the GitHub release payload we read.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Info describes an available update.
type Info struct {
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
}

type cachedCheck struct {
	CheckedAt time.Time `json:"checked_at"`
	Version   string    `json:"version"`
	URL       string    `json:"url"`
}

// Check reports whether a newer release exists. A nil Info with
// nil error means the current build is up to date. Results are
// cached in cacheDir for 24 hours unless force is set.
func Check(currentVersion string, force bool, cacheDir string) (*Info, error) {
	if IsDevBuildVersion(currentVersion) {
		return nil, nil
	}

	if !force {
		if cached, ok := loadCache(cacheDir); ok {
			return resolve(currentVersion, cached.Version, cached.URL), nil
		}
	}

	release, err := fetchLatestRelease()
	if err != nil {
		return nil, fmt.Errorf("check for updates: %w", err)
	}
	saveCache(cacheDir, release)

	return resolve(currentVersion, release.TagName, release.HTMLURL), nil
}

// resolve compares versions and builds the Info, or nil when
// current is already the latest.
func resolve(currentVersion, latestTag, url string) *Info {
	if !isNewer(latestTag, currentVersion) {
		return nil
	}
	return &Info{
		CurrentVersion: currentVersion,
		LatestVersion:  latestTag,
		ReleaseURL:     url,
	}
}

func fetchLatestRelease() (*Release, error) {
	req, err := http.NewRequest("GET", githubAPIURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "wrapview-update")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %s", resp.Status)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}
	return &release, nil
}

func loadCache(cacheDir string) (*cachedCheck, bool) {
	data, err := os.ReadFile(filepath.Join(cacheDir, cacheFileName))
	if err != nil {
		return nil, false
	}
	var cached cachedCheck
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	if time.Since(cached.CheckedAt) >= cacheDuration {
		return nil, false
	}
	return &cached, true
}

func saveCache(cacheDir string, release *Release) {
	data, err := json.Marshal(cachedCheck{
		CheckedAt: time.Now(),
		Version:   release.TagName,
		URL:       release.HTMLURL,
	})
	if err != nil {
		return
	}
	cachePath := filepath.Join(cacheDir, cacheFileName)
	_ = os.MkdirAll(filepath.Dir(cachePath), 0o755)
	_ = os.WriteFile(cachePath, data, 0o600)
}

var gitDescribePattern = regexp.MustCompile(`-\d+-g[0-9a-f]+(-dirty)?$`)

// IsDevBuildVersion reports whether v looks like a local or
// git-describe build rather than a tagged release.
func IsDevBuildVersion(v string) bool {
	v = strings.TrimPrefix(v, "v")
	if v == "" || v == "dev" || !strings.Contains(v, ".") {
		return true
	}
	if v[0] < '0' || v[0] > '9' {
		return true
	}
	return gitDescribePattern.MatchString(v)
}

// isNewer reports whether latest is a strictly newer semver
// than current. Unparseable versions compare as not newer.
func isNewer(latest, current string) bool {
	sl := canonical(latest)
	sc := canonical(current)
	if !semver.IsValid(sl) || !semver.IsValid(sc) {
		return false
	}
	return semver.Compare(sl, sc) > 0
}

func canonical(v string) string {
	return "v" + strings.TrimPrefix(v, "v")
}
