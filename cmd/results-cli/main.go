package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"evision-results/cmd/results-cli/commands"
	"evision-results/internal/components/telemetry"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tel, err := telemetry.SetupFromEnv(ctx, "results-cli")
	if err != nil {
		slog.Warn("failed to setup telemetry", "err", err)
	}
	code := commands.ExecuteContext(ctx)
	err = tel.Shutdown(context.Background())
	if err != nil {
		slog.Warn("failed to shutdown telemetry", "err", err)
	}
	os.Exit(code)
}
