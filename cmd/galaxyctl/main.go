// Package main runs the galaxyctl operator CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/cozy.galaxy/internal/cmd/galaxyctl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := galaxyctl.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "galaxyctl:", err)
		stop()
		os.Exit(1)
	}
}
