package main

import (
	"cardstats/cmd/cardstats/commands"
	"cardstats/lib/serviceutil"
	"cardstats/lib/telemetry"
	"context"
	"log/slog"
	"os"
)

func main() {
	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "cardstats")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	if tel.Configured() {
		telemetry.InstrumentPerfStats(ctx)
	}

	code := commands.ExecuteContext(ctx)

	err = tel.Shutdown(context.Background())
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}
	os.Exit(code)
}
