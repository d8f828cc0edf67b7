package main

import (
	"context"
	"concurseiro-backend/cmd/scraper-cli/commands"
	"concurseiro-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "scraper-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
