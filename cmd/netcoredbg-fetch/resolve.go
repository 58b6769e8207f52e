package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/Nulifyer/zed-netcoredbg/internal/binary"
	"github.com/Nulifyer/zed-netcoredbg/internal/logger"
	"github.com/Nulifyer/zed-netcoredbg/internal/platform"
)

// runResolve handles the resolve subcommand: full four-tier resolution,
// printing the absolute binary path on success.
func runResolve(args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	userPath := fs.String("path", "", "use an existing netcoredbg binary instead of downloading")
	quiet := fs.Bool("quiet", false, "disable the diagnostic log file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()

	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return err
	}

	log := logger.New("")
	if *quiet {
		log = logger.Nop()
	}

	resolver, err := binary.New(binary.Config{
		Platform: info,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	path, err := resolver.GetBinaryPath(ctx, *userPath)
	if err != nil {
		return err
	}

	if err := resolver.ValidateBinary(path); err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

// runAsset prints the computed release asset name for the current platform.
func runAsset(args []string) error {
	fs := flag.NewFlagSet("asset", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	info, err := platform.NewDetector().Detect(context.Background())
	if err != nil {
		return err
	}

	name, err := binary.AssetName(info.OS, info.Arch)
	if err != nil {
		return err
	}

	fmt.Println(name)
	return nil
}
