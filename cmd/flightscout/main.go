package main

import (
	"context"
	"log/slog"
	"os"

	"flightscout/cmd/flightscout/commands"
	"flightscout/internal/telemetry"
	"flightscout/lib/util/serviceutil"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "err", err)
	}
	telemetry.InitSlog(os.Getenv("FLIGHTSCOUT_VERBOSE") != "")

	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()

	otel, err := telemetry.SetupFromEnv(ctx, "flightscout")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	if otel.Enabled() {
		telemetry.InstrumentPerfStats(ctx)
	}

	err = commands.ExecuteContext(ctx)

	shutdownErr := otel.Shutdown(context.Background())
	if shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}

	cancel()
	os.Exit(serviceutil.ExitCode(err))
}
