package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	rootcmd "github.com/go-ports/see/cmd/see/root"
	"github.com/go-ports/see/internal/dispatch"
	"github.com/go-ports/see/internal/registry"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := rootcmd.New().ExecuteContext(ctx)
	if err == nil {
		return dispatch.ExitOK
	}

	// A child process failure already wrote its own diagnostics; only
	// print messages this process produced.
	var xe *dispatch.ExitError
	if errors.As(err, &xe) {
		if xe.Err != nil {
			fmt.Fprintln(os.Stderr, "Error:", xe.Err)
		}
		return xe.Code
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	if errors.Is(err, registry.ErrNotFound) {
		return dispatch.ExitNotFound
	}
	return dispatch.ExitFailure
}
