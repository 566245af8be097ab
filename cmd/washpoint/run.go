package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run drives the application lifecycle: start, wait for a signal or an
// internal shutdown request, then stop.
func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "start washpoint: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "stop washpoint: %v\n", err)
		os.Exit(1)
	}
}
