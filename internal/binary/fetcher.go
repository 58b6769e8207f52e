package binary

import (
	"context"
	"fmt"
	"os"
)

// httpFileFetcher is the default FileFetcher: a plain HTTP download into a
// staging file followed by archive extraction into the destination
// directory.
type httpFileFetcher struct {
	downloader *Downloader
	extractor  *Extractor
}

// NewFileFetcher creates the default HTTP-backed FileFetcher.
func NewFileFetcher() FileFetcher {
	return &httpFileFetcher{
		downloader: NewDownloader(),
		extractor:  NewExtractor(),
	}
}

// DownloadAndExtract downloads url into a staging file, then extracts it
// into destDir. The staging file is removed regardless of outcome.
func (f *httpFileFetcher) DownloadAndExtract(ctx context.Context, url, destDir string, kind ArchiveKind) error {
	staging, err := os.CreateTemp("", "netcoredbg_asset_*")
	if err != nil {
		return fmt.Errorf("%w: create staging file: %w", ErrDownload, err)
	}
	stagingPath := staging.Name()
	staging.Close()
	defer os.Remove(stagingPath)

	if err := f.downloader.DownloadToFile(ctx, url, stagingPath); err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}

	if err := f.extractor.Extract(stagingPath, destDir, kind); err != nil {
		return fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	return nil
}
