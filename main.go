package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/cmd"
)

// version is set at release time with -ldflags "-X main.version=..."
var version = "dev"

// versionString prefers the linker-set version, then the module version
// recorded by go install, then "dev".
func versionString(info *debug.BuildInfo, ok bool) string {
	if version != "dev" && version != "" {
		return version
	}
	if ok && info != nil && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func run(ctx context.Context) error {
	info, ok := debug.ReadBuildInfo()
	return fang.Execute(
		ctx,
		cmd.NewRootCmd(),
		fang.WithVersion(versionString(info, ok)),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	)
}

func main() {
	if err := run(context.Background()); err != nil {
		os.Exit(1)
	}
}
