// Package platform detects the host operating system and architecture used
// to select the correct netcoredbg release asset, plus Linux distribution
// details that only feed diagnostic logging.
//
// OS and architecture come from the Go runtime; distribution details come
// from gopsutil with graceful fallback when detection fails.
package platform

import (
	"context"
	"fmt"
)

// Info contains detected host platform information.
type Info struct {
	OS      string // "linux", "darwin", "windows"
	Arch    string // normalized: "amd64", "arm64", "386"
	ArchRaw string // original value before normalization (e.g. "x86_64")
	Distro  string // distro ID (Linux only, e.g. "ubuntu")
	Version string // distro version (Linux only, e.g. "22.04")
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// String renders the platform for diagnostic log lines.
func (i *Info) String() string {
	if i.Distro != "" {
		return fmt.Sprintf("%s/%s (%s %s)", i.OS, i.Arch, i.Distro, i.Version)
	}
	return fmt.Sprintf("%s/%s", i.OS, i.Arch)
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
