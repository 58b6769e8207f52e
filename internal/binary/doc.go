// Package binary resolves, downloads, caches, and validates the netcoredbg
// debugger executable for the host platform.
//
// # Resolution Strategy
//
// A single entry point, Resolver.GetBinaryPath, walks four tiers and
// returns the first usable absolute path:
//
//  1. User override - an explicitly configured path, validated and returned
//     without touching cache or network
//  2. Process cache - the last successfully resolved path, if the file
//     still exists
//  3. Existing version directory - a netcoredbg_v<tag> directory left on
//     disk by a previous run of the same release
//  4. Fresh download - the platform asset of the latest GitHub release,
//     extracted through a scoped temp directory into the version directory
//
// Version directories act as a durable download cache keyed by release tag;
// they are created under the working directory and never cleaned up here.
//
// # Failure Model
//
// Every failure is terminal for the call that produced it and carries a
// sentinel from errors.go; nothing is retried internally, and partial state
// (a half-populated version directory) is left for the next call to repair.
//
// # Usage
//
//	info, err := platform.NewDetector().Detect(ctx)
//	if err != nil {
//	    return err
//	}
//	resolver, err := binary.New(binary.Config{Platform: info})
//	if err != nil {
//	    return err
//	}
//	path, err := resolver.GetBinaryPath(ctx, "")
package binary
