package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/mod/semver"
)

// Set through -ldflags "-X .../pkg/version.Version=1.2.3" by release builds.
var (
	Version   = devVersion
	Commit    = ""
	BuildTime = ""
)

const (
	devVersion  = "0.0.0-dev"
	releasesURL = "https://api.github.com/repos/epharg/eph-dashboard-go/releases/latest"
	installPath = "github.com/epharg/eph-dashboard-go/cmd/eph-dashboard@latest"
)

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(bi)
	}
}

// fromBuildInfo fills whatever ldflags left unset: the module version of a
// `go install pkg@vX` build and the VCS revision and time of a local build.
func fromBuildInfo(bi *debug.BuildInfo) {
	if Version == devVersion && semver.IsValid(bi.Main.Version) {
		Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "" && len(s.Value) >= 7 {
				Commit = s.Value[:7]
			}
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, s.Value); BuildTime == "" && err == nil {
				BuildTime = t.UTC().Format("2006-01-02T15:04:05Z")
			}
		}
	}
}

// FormatVersion renders the version with its commit and build time, e.g.
// "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)".
func FormatVersion() string {
	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", Version)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", Version, Commit)
	case Commit == "":
		return fmt.Sprintf("%s (built at: %s)", Version, BuildTime)
	}
	return fmt.Sprintf("%s (commit: %s, built at: %s)", Version, Commit, BuildTime)
}

// newer reports whether latest is a later release than current. Either side
// may carry a leading "v"; invalid versions never compare as newer.
func newer(latest, current string) bool {
	l, c := "v"+strings.TrimPrefix(latest, "v"), "v"+strings.TrimPrefix(current, "v")
	if !semver.IsValid(l) || !semver.IsValid(c) {
		return false
	}
	return semver.Compare(l, c) > 0
}

// latestRelease returns the tag of the latest GitHub release at url.
func latestRelease(client *http.Client, url string) (string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup: %s", resp.Status)
	}
	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("release lookup: %w", err)
	}
	return release.TagName, nil
}

// CheckLatestVersion prints an update notice when a newer release exists.
// Development builds and lookup failures are silent.
func CheckLatestVersion(currentVersion string) {
	if strings.HasSuffix(currentVersion, "-dev") {
		return
	}
	latest, err := latestRelease(&http.Client{Timeout: 3 * time.Second}, releasesURL)
	if err != nil || !newer(latest, currentVersion) {
		return
	}
	pterm.Warning.Printfln("A new version of EPH Dashboard is available: %s", strings.TrimPrefix(latest, "v"))
	pterm.Info.Printfln("Please update using: go install %s", installPath)
}
