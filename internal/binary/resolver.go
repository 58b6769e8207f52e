package binary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	cp "github.com/otiai10/copy"

	"github.com/Nulifyer/zed-netcoredbg/internal/logger"
	"github.com/Nulifyer/zed-netcoredbg/internal/platform"
)

// versionDirPrefix names the durable per-version directories created under
// the working directory, e.g. netcoredbg_v3.1.0.
const versionDirPrefix = "netcoredbg_v"

// Config holds construction parameters for a Resolver.
type Config struct {
	// Owner and Repo identify the GitHub repository publishing netcoredbg
	// releases. Empty values use the upstream defaults.
	Owner string
	Repo  string

	// Platform is the detected host platform. Required.
	Platform *platform.Info

	// WorkDir is the directory version directories are created under and
	// relative paths are joined against. Empty means the process working
	// directory, resolved per call.
	WorkDir string

	// Releases and Files override the release-metadata and download
	// collaborators. Nil values use the GitHub and HTTP defaults.
	Releases ReleaseFetcher
	Files    FileFetcher

	// Logger receives diagnostic lines. Nil disables logging.
	Logger *logger.Logger
}

// Resolver locates the netcoredbg binary for the host platform, downloading
// and extracting it on first use. Resolution order:
//
//  1. User-provided path (validated, made absolute, returned as-is)
//  2. In-process cached path, if the file still exists
//  3. A version directory on disk left by a previous run
//  4. Fresh download and extraction from the release registry
//
// The on-disk version directory is shared state between processes with no
// locking: two processes racing on the same version copy identical content,
// so last writer wins harmlessly.
type Resolver struct {
	owner    string
	repo     string
	platform *platform.Info
	workDir  string
	releases ReleaseFetcher
	files    FileFetcher
	log      *logger.Logger

	// mu guards cachedPath. The slot is replaced on every successful
	// resolution, so a value never outlives the file it points to by more
	// than one failed lookup.
	mu         sync.Mutex
	cachedPath string
}

// New creates a Resolver.
func New(cfg Config) (*Resolver, error) {
	if cfg.Platform == nil {
		return nil, fmt.Errorf("platform info is required")
	}

	owner := cfg.Owner
	if owner == "" {
		owner = DefaultOwner
	}
	repo := cfg.Repo
	if repo == "" {
		repo = DefaultRepo
	}

	releases := cfg.Releases
	if releases == nil {
		releases = NewGitHubReleaseFetcher(owner, repo)
	}
	files := cfg.Files
	if files == nil {
		files = NewFileFetcher()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Resolver{
		owner:    owner,
		repo:     repo,
		platform: cfg.Platform,
		workDir:  cfg.WorkDir,
		releases: releases,
		files:    files,
		log:      log,
	}, nil
}

// GetBinaryPath returns the absolute path to a netcoredbg executable,
// downloading and extracting it if necessary. An empty userProvidedPath
// means no user override.
func (r *Resolver) GetBinaryPath(ctx context.Context, userProvidedPath string) (string, error) {
	r.log.Debugf("Starting binary path resolution on %s", r.platform)

	// Priority 1: user-provided path. Bypasses cache and network entirely;
	// an unusable override is a hard failure, not a fallthrough.
	if userProvidedPath != "" {
		return r.resolveUserPath(userProvidedPath)
	}

	// Priority 2: in-process cache.
	if cached, ok := r.cached(); ok {
		if pathExists(cached) {
			r.log.Debugf("Using cached binary path: %s", cached)
			return cached, nil
		}
		r.log.Debugf("Cached binary no longer exists, re-resolving")
	}

	// Priority 3 needs release metadata to name the version directory; the
	// same response is reused for the download in priority 4.
	r.log.Debugf("Fetching latest release info to check for existing binary")
	release, err := r.releases.LatestRelease(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReleaseFetch, err)
	}
	r.log.Debugf("Found latest version: %s", release.Tag)

	workDir, err := r.resolveWorkDir()
	if err != nil {
		return "", err
	}

	versionDir := filepath.Join(workDir, versionDirPrefix+release.Tag)
	existing := filepath.Join(versionDir, ExecutableName(r.platform.OS))
	if pathExists(existing) {
		r.log.Debugf("Found existing binary on disk: %s", existing)
		r.setCached(existing)
		return existing, nil
	}

	// Priority 4: fresh download and extraction.
	r.log.Debugf("No existing binary found, downloading from %s/%s", r.owner, r.repo)
	binaryPath, err := r.downloadAndExtract(ctx, release, versionDir)
	if err != nil {
		return "", err
	}
	r.log.Debugf("Successfully downloaded and extracted to: %s", binaryPath)

	r.setCached(binaryPath)
	return binaryPath, nil
}

// ValidateBinary checks that a resolved binary path still names an existing
// regular file. The host calls this immediately before spawning.
func (r *Resolver) ValidateBinary(binaryPath string) error {
	info, err := os.Stat(binaryPath)
	if err != nil {
		return fmt.Errorf("%w at: %s", ErrNotFound, binaryPath)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotAFile, binaryPath)
	}
	return nil
}

// resolveUserPath validates a user-provided binary path and converts it to
// an absolute path. Relative paths are joined against the working directory
// before validation so the check and the returned path agree.
func (r *Resolver) resolveUserPath(userPath string) (string, error) {
	r.log.Debugf("Using user-provided path: %s", userPath)

	absolute := userPath
	if !filepath.IsAbs(userPath) {
		workDir, err := r.resolveWorkDir()
		if err != nil {
			return "", err
		}
		absolute = filepath.Join(workDir, userPath)
	}

	info, err := os.Stat(absolute)
	if err != nil {
		return "", fmt.Errorf("user-provided %w at: %s", ErrNotFound, userPath)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("user-provided %w: %s", ErrNotAFile, userPath)
	}

	return absolute, nil
}

// downloadAndExtract fetches the platform asset for release, extracts it
// into a per-operation temp directory, and copies the content into
// versionDir. A failed run may leave a partial version directory behind; a
// later call re-populates it.
func (r *Resolver) downloadAndExtract(ctx context.Context, release *Release, versionDir string) (string, error) {
	assetName, err := AssetName(r.platform.OS, r.platform.Arch)
	if err != nil {
		return "", err
	}

	asset, err := findAsset(release, assetName)
	if err != nil {
		return "", err
	}

	kind, err := KindForAsset(assetName)
	if err != nil {
		return "", err
	}

	version := AdapterVersion{
		TagName:     release.Tag,
		DownloadURL: asset.DownloadURL,
	}

	// Uniquely named per operation so concurrent resolutions of different
	// versions never collide.
	tempDir, err := os.MkdirTemp("", versionDirPrefix+version.TagName+"_")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTempDir, err)
	}
	defer os.RemoveAll(tempDir)
	r.log.Debugf("Created secure temp directory: %s", tempDir)

	if err := r.files.DownloadAndExtract(ctx, version.DownloadURL, tempDir, kind); err != nil {
		return "", err
	}

	if err := os.MkdirAll(versionDir, 0755); err != nil {
		return "", fmt.Errorf("%w: create version directory: %w", ErrExtraction, err)
	}

	// Content-only copy: the extracted files land directly inside
	// versionDir, not nested under the temp directory's name.
	if err := cp.Copy(tempDir, versionDir); err != nil {
		return "", fmt.Errorf("%w: copy extracted content: %w", ErrExtraction, err)
	}

	binaryPath := filepath.Join(versionDir, ExecutableName(r.platform.OS))
	if !pathExists(binaryPath) {
		return "", fmt.Errorf("%w at: %s", ErrBinaryNotFound, binaryPath)
	}

	if err := SetExecutable(binaryPath); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPermission, err)
	}

	return binaryPath, nil
}

// resolveWorkDir returns the absolute base directory for version
// directories and relative-path joining.
func (r *Resolver) resolveWorkDir() (string, error) {
	if r.workDir != "" {
		abs, err := filepath.Abs(r.workDir)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrPathResolution, err)
		}
		return abs, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPathResolution, err)
	}
	return wd, nil
}

// findAsset locates the asset with an exact name match. The error for a
// miss lists every available asset so a mismatched release layout can be
// diagnosed from the log alone.
func findAsset(release *Release, assetName string) (*Asset, error) {
	for i := range release.Assets {
		if release.Assets[i].Name == assetName {
			return &release.Assets[i], nil
		}
	}

	available := make([]string, 0, len(release.Assets))
	for _, a := range release.Assets {
		available = append(available, a.Name)
	}
	return nil, fmt.Errorf("%w: looking for %q, available assets: [%s]",
		ErrAssetNotFound, assetName, strings.Join(available, ", "))
}

func (r *Resolver) cached() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cachedPath, r.cachedPath != ""
}

func (r *Resolver) setCached(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cachedPath = path
}

// pathExists reports whether path exists at all. Deliberately looser than
// ValidateBinary: it mirrors the existence checks resolution tiers use.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
