package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	// Handle subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("netcoredbg-fetch %s\n", Version)
			fmt.Println("Resolver for the netcoredbg .NET debugger backend")
			return
		case "resolve":
			if err := runResolve(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "asset":
			if err := runAsset(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	// Default: show help
	fmt.Println("netcoredbg-fetch - resolve the netcoredbg debugger binary")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  netcoredbg-fetch --version            Show version information")
	fmt.Println("  netcoredbg-fetch resolve [options]    Resolve (downloading if needed) and print the binary path")
	fmt.Println("  netcoredbg-fetch asset                Print the release asset name for this platform")
	fmt.Println()
	fmt.Println("Resolve options:")
	fmt.Println("  -path <file>   Use an existing netcoredbg binary instead of downloading")
	fmt.Println("  -quiet         Disable the diagnostic log file")
}
