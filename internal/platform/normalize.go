package platform

import (
	"fmt"
	"strings"
)

// normalizeArch converts architecture spellings to a canonical name.
// 32-bit x86 is kept representable here; the asset layer is responsible
// for rejecting it so the error can name the debugger's requirements.
func normalizeArch(arch string) (string, error) {
	switch arch {
	case "amd64", "x86_64":
		return "amd64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	case "386", "i386", "i686", "x86":
		return "386", nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s", arch)
	}
}

// normalizeDistro converts distro identifiers to lowercase for consistent
// log output across gopsutil versions.
func normalizeDistro(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
