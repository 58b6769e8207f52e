package binary

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v59/github"
)

const (
	// DefaultOwner is the GitHub organization publishing netcoredbg releases.
	DefaultOwner = "qwadrox"
	// DefaultRepo is the GitHub repository publishing netcoredbg releases.
	DefaultRepo = "netcoredbg"
)

// RepositoriesService is the slice of the GitHub client used for release
// lookup. Narrow so tests can substitute a fake.
type RepositoriesService interface {
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

// GitHubReleaseFetcher resolves the latest stable release of a repository
// through the GitHub REST API. The "latest release" endpoint already
// excludes drafts and pre-releases.
type GitHubReleaseFetcher struct {
	owner string
	repo  string
	repos RepositoriesService
}

// NewGitHubReleaseFetcher creates a fetcher for owner/repo. A GITHUB_TOKEN
// environment variable, when set, authenticates requests for higher rate
// limits; anonymous access works for the handful of calls this makes.
func NewGitHubReleaseFetcher(owner, repo string) *GitHubReleaseFetcher {
	client := github.NewClient(nil)
	if token := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubReleaseFetcher{
		owner: owner,
		repo:  repo,
		repos: client.Repositories,
	}
}

// LatestRelease fetches the latest stable release and maps it to the
// resolver's Release type. A release without assets is an error: there is
// nothing to download from it.
func (f *GitHubReleaseFetcher) LatestRelease(ctx context.Context) (*Release, error) {
	rel, _, err := f.repos.GetLatestRelease(ctx, f.owner, f.repo)
	if err != nil {
		return nil, err
	}

	// The API contract excludes these, but a proxy or test double may not.
	if rel.GetDraft() || rel.GetPrerelease() {
		return nil, fmt.Errorf("latest release %q of %s/%s is a draft or pre-release", rel.GetTagName(), f.owner, f.repo)
	}

	if rel.GetTagName() == "" {
		return nil, fmt.Errorf("latest release of %s/%s has no tag name", f.owner, f.repo)
	}

	if len(rel.Assets) == 0 {
		return nil, fmt.Errorf("latest release %q of %s/%s has no assets", rel.GetTagName(), f.owner, f.repo)
	}

	release := &Release{
		Tag:    rel.GetTagName(),
		Assets: make([]Asset, 0, len(rel.Assets)),
	}
	for _, a := range rel.Assets {
		release.Assets = append(release.Assets, Asset{
			Name:        a.GetName(),
			DownloadURL: a.GetBrowserDownloadURL(),
		})
	}

	return release, nil
}
