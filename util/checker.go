package util

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v63/github"
	"golang.org/x/mod/semver"

	"github.com/dixieflatline76/ClearView/config"
)

const (
	githubOwner = "dixieflatline76"
	githubRepo  = "ClearView"
)

// CheckForUpdatesResult holds the outcome of the update check.
type CheckForUpdatesResult struct {
	UpdateAvailable bool
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	ReleaseNotes    string
}

// CheckForUpdates polls GitHub for the latest stable release and compares it
// with config.AppVersion. A nil client uses http.DefaultClient.
func CheckForUpdates(ctx context.Context, httpClient *http.Client) (*CheckForUpdatesResult, error) {
	client := github.NewClient(httpClient)

	release, _, err := client.Repositories.GetLatestRelease(ctx, githubOwner, githubRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest GitHub release: %w", err)
	}

	currentVersion := canonicalVersion(config.AppVersion)
	latestVersion := canonicalVersion(release.GetTagName())
	if !semver.IsValid(latestVersion) {
		return nil, fmt.Errorf("latest release has an invalid tag %q", release.GetTagName())
	}

	return &CheckForUpdatesResult{
		UpdateAvailable: semver.Compare(latestVersion, currentVersion) > 0,
		CurrentVersion:  currentVersion,
		LatestVersion:   latestVersion,
		ReleaseURL:      release.GetHTMLURL(),
		ReleaseNotes:    release.GetBody(),
	}, nil
}

// canonicalVersion prefixes v for semver comparison.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
