package questoes

import (
	"concurseiro-backend/lib/telemetry"
)

var tracer = telemetry.Tracer("concurseiro.lib.scrapers.questoes")
