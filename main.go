package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"ui_automation/presentation/terminal"
)

func main() {
	opts, err := terminal.ParseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	termInterface, err := terminal.NewTerminalInterface(opts, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = termInterface.Run(ctx)
	stop()
	if closeErr := termInterface.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to close browser: %v\n", closeErr)
	}
	if err != nil {
		if !errors.Is(err, terminal.ErrStepsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
