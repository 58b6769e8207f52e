package binary

import "errors"

// Resolution errors. Every failure is terminal for the call that produced
// it; nothing is retried internally. Callers match with errors.Is and decide
// whether to surface, retry the whole resolution, or abort.
var (
	// ErrReleaseFetch indicates the release registry could not be queried.
	ErrReleaseFetch = errors.New("failed to fetch latest release")

	// ErrAssetNotFound indicates the release has no asset matching the
	// computed platform asset name.
	ErrAssetNotFound = errors.New("no compatible asset found for platform")

	// ErrUnsupportedArchitecture indicates the host CPU has no netcoredbg build.
	ErrUnsupportedArchitecture = errors.New("unsupported architecture")

	// ErrUnsupportedPlatform indicates the host OS has no netcoredbg build.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrUnsupportedFileType indicates an asset whose extension maps to no
	// known archive kind.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrTempDir indicates the per-operation temp directory could not be created.
	ErrTempDir = errors.New("failed to create secure temp directory")

	// ErrDownload indicates the asset download failed.
	ErrDownload = errors.New("failed to download netcoredbg")

	// ErrExtraction indicates archive extraction or the copy into the
	// version directory failed.
	ErrExtraction = errors.New("failed to extract netcoredbg")

	// ErrBinaryNotFound indicates the expected executable was absent after
	// a successful extraction.
	ErrBinaryNotFound = errors.New("netcoredbg executable not found after extraction")

	// ErrPermission indicates the executable permission bit could not be set.
	ErrPermission = errors.New("failed to make file executable")

	// ErrPathResolution indicates the working directory could not be
	// resolved while building an absolute path.
	ErrPathResolution = errors.New("failed to resolve current directory")

	// ErrNotFound indicates a user-provided binary path that does not exist.
	ErrNotFound = errors.New("netcoredbg binary not found")

	// ErrNotAFile indicates a user-provided path that exists but is not a
	// regular file.
	ErrNotAFile = errors.New("path is not a file")
)
