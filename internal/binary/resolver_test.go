package binary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Nulifyer/zed-netcoredbg/internal/platform"
	"github.com/Nulifyer/zed-netcoredbg/internal/testutil"
)

// fakeReleaseFetcher implements ReleaseFetcher and counts network calls.
type fakeReleaseFetcher struct {
	release *Release
	err     error
	calls   int
}

func (f *fakeReleaseFetcher) LatestRelease(ctx context.Context) (*Release, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.release, nil
}

// fakeFileFetcher implements FileFetcher by writing exeName into destDir,
// simulating a successful download and extraction.
type fakeFileFetcher struct {
	exeName string
	err     error
	calls   int
	lastURL string
}

func (f *fakeFileFetcher) DownloadAndExtract(ctx context.Context, url, destDir string, kind ArchiveKind) error {
	f.calls++
	f.lastURL = url
	if f.err != nil {
		return f.err
	}
	// Written without the executable bit: setting it is the resolver's job.
	return os.WriteFile(filepath.Join(destDir, f.exeName), []byte("debugger"), 0644)
}

func linuxAMD64() *platform.Info {
	return &platform.Info{OS: "linux", Arch: "amd64"}
}

func linuxRelease(tag string) *Release {
	return &Release{
		Tag: tag,
		Assets: []Asset{
			{Name: "netcoredbg-linux-amd64.tar.gz", DownloadURL: "https://example.com/netcoredbg-linux-amd64.tar.gz"},
			{Name: "netcoredbg-win64.zip", DownloadURL: "https://example.com/netcoredbg-win64.zip"},
		},
	}
}

func newTestResolver(t *testing.T, workDir string, releases ReleaseFetcher, files FileFetcher) *Resolver {
	t.Helper()

	resolver, err := New(Config{
		Platform: linuxAMD64(),
		WorkDir:  workDir,
		Releases: releases,
		Files:    files,
	})
	if err != nil {
		t.Fatalf("create resolver: %v", err)
	}
	return resolver
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid_config",
			config: Config{Platform: linuxAMD64()},
		},
		{
			name:    "missing_platform",
			config:  Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, err := New(tt.config)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resolver.owner != DefaultOwner || resolver.repo != DefaultRepo {
				t.Errorf("default coordinates not applied: %s/%s", resolver.owner, resolver.repo)
			}
			if resolver.releases == nil || resolver.files == nil || resolver.log == nil {
				t.Error("default collaborators not applied")
			}
		})
	}
}

func TestGetBinaryPathUserProvided(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)
	binaryPath := testutil.WriteExecutable(t, workDir, "my-netcoredbg")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "absolute_path",
			path:     binaryPath,
			expected: binaryPath,
		},
		{
			name:     "relative_path",
			path:     "my-netcoredbg",
			expected: binaryPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			releases := &fakeReleaseFetcher{}
			files := &fakeFileFetcher{}
			resolver := newTestResolver(t, workDir, releases, files)

			got, err := resolver.GetBinaryPath(context.Background(), tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("path mismatch: got %s, want %s", got, tt.expected)
			}
			if !filepath.IsAbs(got) {
				t.Errorf("returned path is not absolute: %s", got)
			}
			// The user override must bypass the network entirely.
			if releases.calls != 0 || files.calls != 0 {
				t.Errorf("network collaborators called: releases=%d files=%d", releases.calls, files.calls)
			}
		})
	}
}

func TestGetBinaryPathUserProvidedInvalid(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)
	if err := os.Mkdir(filepath.Join(workDir, "a-directory"), 0755); err != nil {
		t.Fatalf("create directory: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name:    "missing_file",
			path:    filepath.Join(workDir, "does-not-exist"),
			wantErr: ErrNotFound,
		},
		{
			name:    "directory_not_file",
			path:    filepath.Join(workDir, "a-directory"),
			wantErr: ErrNotAFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := newTestResolver(t, workDir, &fakeReleaseFetcher{}, &fakeFileFetcher{})

			_, err := resolver.GetBinaryPath(context.Background(), tt.path)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !strings.Contains(err.Error(), tt.path) {
				t.Errorf("error %q does not name the offending path", err)
			}
		})
	}
}

func TestGetBinaryPathCacheHit(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)
	testutil.WriteExecutable(t, filepath.Join(workDir, "netcoredbg_v3.1.0"), "netcoredbg")

	releases := &fakeReleaseFetcher{release: linuxRelease("v3.1.0")}
	files := &fakeFileFetcher{exeName: "netcoredbg"}
	resolver := newTestResolver(t, workDir, releases, files)

	first, err := resolver.GetBinaryPath(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if releases.calls != 1 {
		t.Fatalf("expected one release fetch, got %d", releases.calls)
	}

	// Second call must hit the in-process cache: same path, no network.
	second, err := resolver.GetBinaryPath(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Errorf("cached path mismatch: got %s, want %s", second, first)
	}
	if releases.calls != 1 {
		t.Errorf("cache hit still fetched release metadata: %d calls", releases.calls)
	}
}

func TestGetBinaryPathCacheInvalidation(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)
	testutil.WriteExecutable(t, filepath.Join(workDir, "netcoredbg_v3.1.0"), "netcoredbg")

	releases := &fakeReleaseFetcher{release: linuxRelease("v3.1.0")}
	files := &fakeFileFetcher{exeName: "netcoredbg"}
	resolver := newTestResolver(t, workDir, releases, files)

	first, err := resolver.GetBinaryPath(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Delete the binary out from under the cache; the version directory
	// must be re-populated by a fresh download, not served stale.
	if err := os.Remove(first); err != nil {
		t.Fatalf("remove binary: %v", err)
	}

	second, err := resolver.GetBinaryPath(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if releases.calls != 2 {
		t.Errorf("expected re-resolution to fetch metadata again, got %d calls", releases.calls)
	}
	if files.calls != 1 {
		t.Errorf("expected one download, got %d", files.calls)
	}
	if _, err := os.Stat(second); err != nil {
		t.Errorf("re-resolved binary missing: %v", err)
	}
}

func TestGetBinaryPathExistingVersionDir(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)
	existing := testutil.WriteExecutable(t, filepath.Join(workDir, "netcoredbg_v3.1.0"), "netcoredbg")

	releases := &fakeReleaseFetcher{release: linuxRelease("v3.1.0")}
	files := &fakeFileFetcher{exeName: "netcoredbg"}
	resolver := newTestResolver(t, workDir, releases, files)

	got, err := resolver.GetBinaryPath(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != existing {
		t.Errorf("path mismatch: got %s, want %s", got, existing)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("returned path is not absolute: %s", got)
	}
	if files.calls != 0 {
		t.Errorf("download invoked despite existing binary: %d calls", files.calls)
	}
}

func TestGetBinaryPathFreshDownload(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)

	releases := &fakeReleaseFetcher{release: linuxRelease("v3.1.0")}
	files := &fakeFileFetcher{exeName: "netcoredbg"}
	resolver := newTestResolver(t, workDir, releases, files)

	got, err := resolver.GetBinaryPath(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(workDir, "netcoredbg_v3.1.0", "netcoredbg")
	if got != expected {
		t.Errorf("path mismatch: got %s, want %s", got, expected)
	}
	if files.lastURL != "https://example.com/netcoredbg-linux-amd64.tar.gz" {
		t.Errorf("wrong asset downloaded: %s", files.lastURL)
	}

	info, err := os.Stat(got)
	if err != nil {
		t.Fatalf("binary missing: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0111 == 0 {
		t.Error("executable bit not set")
	}

	// The path must now be cached.
	if cached, ok := resolver.cached(); !ok || cached != got {
		t.Errorf("cache not populated: %q", cached)
	}
}

func TestGetBinaryPathAssetNotFound(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)

	releases := &fakeReleaseFetcher{release: &Release{
		Tag: "v3.1.0",
		Assets: []Asset{
			{Name: "netcoredbg-win64.zip", DownloadURL: "https://example.com/netcoredbg-win64.zip"},
		},
	}}

	resolver, err := New(Config{
		Platform: &platform.Info{OS: "darwin", Arch: "arm64"},
		WorkDir:  workDir,
		Releases: releases,
		Files:    &fakeFileFetcher{},
	})
	if err != nil {
		t.Fatalf("create resolver: %v", err)
	}

	_, err = resolver.GetBinaryPath(context.Background(), "")
	if err == nil {
		t.Fatal("expected error but got none")
	}
	if !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
	// Diagnosability: the error names what was wanted and what exists.
	if !strings.Contains(err.Error(), "netcoredbg-osx-arm64.tar.gz") {
		t.Errorf("error %q does not name the requested asset", err)
	}
	if !strings.Contains(err.Error(), "netcoredbg-win64.zip") {
		t.Errorf("error %q does not list available assets", err)
	}
}

func TestGetBinaryPathReleaseFetchError(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)

	releases := &fakeReleaseFetcher{err: fmt.Errorf("api unavailable")}
	resolver := newTestResolver(t, workDir, releases, &fakeFileFetcher{})

	_, err := resolver.GetBinaryPath(context.Background(), "")
	if err == nil {
		t.Fatal("expected error but got none")
	}
	if !errors.Is(err, ErrReleaseFetch) {
		t.Errorf("expected ErrReleaseFetch, got %v", err)
	}
}

func TestGetBinaryPathUnsupportedArchitecture(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)

	resolver, err := New(Config{
		Platform: &platform.Info{OS: "linux", Arch: "386"},
		WorkDir:  workDir,
		Releases: &fakeReleaseFetcher{release: linuxRelease("v3.1.0")},
		Files:    &fakeFileFetcher{},
	})
	if err != nil {
		t.Fatalf("create resolver: %v", err)
	}

	_, err = resolver.GetBinaryPath(context.Background(), "")
	if err == nil {
		t.Fatal("expected error but got none")
	}
	if !errors.Is(err, ErrUnsupportedArchitecture) {
		t.Errorf("expected ErrUnsupportedArchitecture, got %v", err)
	}
}

func TestGetBinaryPathDownloadError(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)

	files := &fakeFileFetcher{err: fmt.Errorf("%w: connection reset", ErrDownload)}
	resolver := newTestResolver(t, workDir, &fakeReleaseFetcher{release: linuxRelease("v3.1.0")}, files)

	_, err := resolver.GetBinaryPath(context.Background(), "")
	if err == nil {
		t.Fatal("expected error but got none")
	}
	if !errors.Is(err, ErrDownload) {
		t.Errorf("expected ErrDownload, got %v", err)
	}
}

func TestGetBinaryPathMissingAfterExtraction(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)

	// Fetcher succeeds but the archive carried the wrong file name.
	files := &fakeFileFetcher{exeName: "netcoredbg-wrong"}
	resolver := newTestResolver(t, workDir, &fakeReleaseFetcher{release: linuxRelease("v3.1.0")}, files)

	_, err := resolver.GetBinaryPath(context.Background(), "")
	if err == nil {
		t.Fatal("expected error but got none")
	}
	if !errors.Is(err, ErrBinaryNotFound) {
		t.Errorf("expected ErrBinaryNotFound, got %v", err)
	}
}

// TestGetBinaryPathEndToEnd runs tier 4 with the real HTTP fetcher and a
// real archive, proving the extracted executable lands directly at
// <version_dir>/netcoredbg with no extra nesting.
func TestGetBinaryPathEndToEnd(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)

	payload := buildTarGz(t, []tarEntry{{name: "netcoredbg", body: "real debugger", mode: 0755}})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write(payload); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	releases := &fakeReleaseFetcher{release: &Release{
		Tag: "v3.1.0",
		Assets: []Asset{
			{Name: "netcoredbg-linux-amd64.tar.gz", DownloadURL: server.URL},
		},
	}}
	resolver := newTestResolver(t, workDir, releases, NewFileFetcher())

	got, err := resolver.GetBinaryPath(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(workDir, "netcoredbg_v3.1.0", "netcoredbg")
	if got != expected {
		t.Errorf("path mismatch: got %s, want %s", got, expected)
	}
	content, err := os.ReadFile(got)
	if err != nil {
		t.Fatalf("binary missing: %v", err)
	}
	if string(content) != "real debugger" {
		t.Errorf("content mismatch: got %q", content)
	}
}

func TestValidateBinary(t *testing.T) {
	workDir := testutil.SetupTestEnv(t)
	binaryPath := testutil.WriteExecutable(t, workDir, "netcoredbg")
	if err := os.Mkdir(filepath.Join(workDir, "a-directory"), 0755); err != nil {
		t.Fatalf("create directory: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name: "valid_binary",
			path: binaryPath,
		},
		{
			name:    "missing",
			path:    filepath.Join(workDir, "missing"),
			wantErr: ErrNotFound,
		},
		{
			name:    "directory",
			path:    filepath.Join(workDir, "a-directory"),
			wantErr: ErrNotAFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := newTestResolver(t, workDir, &fakeReleaseFetcher{}, &fakeFileFetcher{})

			err := resolver.ValidateBinary(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
