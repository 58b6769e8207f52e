package binary

import (
	"fmt"
	"strings"
)

const (
	assetBase      = "netcoredbg"
	exeName        = "netcoredbg"
	exeNameWindows = "netcoredbg.exe"
)

// AssetName computes the release asset filename for an OS/arch pair.
//
// Published assets:
//   - netcoredbg-linux-amd64.tar.gz
//   - netcoredbg-linux-arm64.tar.gz
//   - netcoredbg-osx-amd64.tar.gz
//   - netcoredbg-osx-arm64.tar.gz
//   - netcoredbg-win64.zip
//
// Windows ARM64 has no native build; the x64 asset is used as a fallback
// (it runs under Windows emulation). 32-bit x86 is rejected on every OS.
func AssetName(osName, arch string) (string, error) {
	if arch == "386" {
		return "", fmt.Errorf("%w: x86 (32-bit). netcoredbg only supports 64-bit architectures (amd64/arm64)", ErrUnsupportedArchitecture)
	}

	var platformArch, ext string
	switch osName {
	case "linux":
		ext = ".tar.gz"
		switch arch {
		case "amd64":
			platformArch = "linux-amd64"
		case "arm64":
			platformArch = "linux-arm64"
		default:
			return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedArchitecture, osName, arch)
		}
	case "darwin":
		ext = ".tar.gz"
		switch arch {
		case "amd64":
			platformArch = "osx-amd64"
		case "arm64":
			platformArch = "osx-arm64"
		default:
			return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedArchitecture, osName, arch)
		}
	case "windows":
		ext = ".zip"
		switch arch {
		case "amd64", "arm64":
			platformArch = "win64"
		default:
			return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedArchitecture, osName, arch)
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, osName)
	}

	return assetBase + "-" + platformArch + ext, nil
}

// ExecutableName returns the netcoredbg executable filename for an OS.
func ExecutableName(osName string) string {
	if osName == "windows" {
		return exeNameWindows
	}
	return exeName
}

// KindForAsset derives the archive kind from an asset filename.
func KindForAsset(name string) (ArchiveKind, error) {
	switch {
	case strings.HasSuffix(name, ".zip"):
		return ArchiveZip, nil
	case strings.HasSuffix(name, ".tar.gz"):
		return ArchiveGzipTar, nil
	default:
		return 0, fmt.Errorf("%w for asset: %s", ErrUnsupportedFileType, name)
	}
}
