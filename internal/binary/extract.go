package binary

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Extractor handles archive extraction for downloaded release assets.
type Extractor struct{}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks archivePath into destDir according to the declared
// archive kind. The file's magic bytes are checked against the declared
// kind first, so a truncated download or an HTML error page saved as the
// asset fails with a message naming the actual content type.
func (e *Extractor) Extract(archivePath, destDir string, kind ArchiveKind) error {
	if err := checkArchiveType(archivePath, kind); err != nil {
		return err
	}

	switch kind {
	case ArchiveZip:
		return e.extractZip(archivePath, destDir)
	case ArchiveGzipTar:
		return e.extractTarGz(archivePath, destDir)
	default:
		return fmt.Errorf("%w: archive kind %d", ErrUnsupportedFileType, kind)
	}
}

// checkArchiveType verifies the file's detected MIME type matches the
// declared archive kind.
func checkArchiveType(archivePath string, kind ArchiveKind) error {
	mime, err := mimetype.DetectFile(archivePath)
	if err != nil {
		return fmt.Errorf("detect archive type: %w", err)
	}

	switch kind {
	case ArchiveZip:
		if !mime.Is("application/zip") {
			return fmt.Errorf("asset content is %s, expected a zip archive", mime)
		}
	case ArchiveGzipTar:
		if !mime.Is("application/gzip") && !mime.Is("application/x-gzip") {
			return fmt.Errorf("asset content is %s, expected a gzip tar archive", mime)
		}
	}
	return nil
}

// extractTarGz extracts a .tar.gz archive to a destination directory.
func (e *Extractor) extractTarGz(archivePath, destDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		target, err := safeJoin(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}

			outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("create file %s: %w", target, err)
			}

			if _, err := io.Copy(outFile, tarReader); err != nil {
				outFile.Close()
				return fmt.Errorf("write file %s: %w", target, err)
			}

			outFile.Close()

		case tar.TypeSymlink:
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}

		default:
			// Skip char devices, block devices, etc.
			continue
		}
	}

	return nil
}

// extractZip extracts a .zip archive to a destination directory.
func (e *Extractor) extractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open zip archive: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	for _, f := range reader.File {
		if err := e.extractZipEntry(f, destDir); err != nil {
			return err
		}
	}

	return nil
}

func (e *Extractor) extractZipEntry(f *zip.File, destDir string) error {
	target, err := safeJoin(destDir, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, rc); err != nil {
		return fmt.Errorf("write file %s: %w", target, err)
	}

	return nil
}

// safeJoin joins name under destDir and rejects path traversal.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}
	return target, nil
}

// SetExecutable sets executable permissions (0755) on a file.
func SetExecutable(path string) error {
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}
