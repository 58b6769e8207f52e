package binary

import "context"

// Release describes a published netcoredbg release: its tag and the
// downloadable assets attached to it. Recomputed on every cold resolution,
// never persisted.
type Release struct {
	// Tag is the release tag name (version identifier).
	Tag string
	// Assets lists the downloadable files attached to the release.
	Assets []Asset
}

// Asset is a single downloadable file attached to a release.
type Asset struct {
	Name        string
	DownloadURL string
}

// AdapterVersion pairs a release tag with the download URL of the asset
// selected for the host platform.
type AdapterVersion struct {
	// TagName is the release tag name (version).
	TagName string
	// DownloadURL is the URL of the selected release asset.
	DownloadURL string
}

// ArchiveKind is the container format of a release asset.
type ArchiveKind int

const (
	// ArchiveZip is a .zip asset (Windows builds).
	ArchiveZip ArchiveKind = iota
	// ArchiveGzipTar is a .tar.gz asset (Linux and macOS builds).
	ArchiveGzipTar
)

// String returns the string representation of the archive kind.
func (k ArchiveKind) String() string {
	switch k {
	case ArchiveZip:
		return "zip"
	case ArchiveGzipTar:
		return "tar.gz"
	default:
		return "unknown"
	}
}

// ReleaseFetcher queries the release registry for the latest stable release.
// Implementations must exclude drafts and pre-releases and require that the
// release carry at least one asset.
type ReleaseFetcher interface {
	LatestRelease(ctx context.Context) (*Release, error)
}

// FileFetcher downloads a URL and extracts its contents directly into
// destDir. Implementations wrap failures in ErrDownload or ErrExtraction so
// the resolver's error taxonomy stays stable across fetchers.
type FileFetcher interface {
	DownloadAndExtract(ctx context.Context, url, destDir string, kind ArchiveKind) error
}
