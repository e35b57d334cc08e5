// Package main provides the entry point for the unusedstyles CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sumatoshi-tech/unusedstyles/cmd/unusedstyles/commands"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/version"
)

// exitUnused is the exit code when --fail-on-unused finds unused variables.
const exitUnused = 2

func main() {
	version.InitBinaryVersion()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.NewRootCommand().ExecuteContext(ctx)

	stop()

	if errors.Is(err, commands.ErrUnusedFound) {
		os.Exit(exitUnused)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
