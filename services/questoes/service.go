package questoes

import (
	"context"
	"log/slog"
	scraper "concurseiro-backend/lib/scrapers/questoes"
	"concurseiro-backend/lib/telemetry"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("concurseiro.services.questoes")

type Service struct {
	extractor *scraper.Extractor
	store     Store
}

func NewService(extractor *scraper.Extractor, store Store) Service {
	return Service{
		extractor: extractor,
		store:     store,
	}
}

// Run executes one multi-subject scrape-and-persist cycle. Partial
// subject failures are logged and joined into the returned error while
// the surviving records are still persisted.
func (s Service) Run(ctx context.Context, limit int) ([]scraper.Question, error) {
	ctx, span := tracer.Start(ctx, "service:Run")
	defer span.End()

	runId, err := random.String(12)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("run_id", runId))

	slog.InfoContext(ctx, "starting questoes scrape", "run_id", runId, "limit", limit)

	questions, scrapeErr := s.extractor.ScrapeAllSubjects(ctx, limit)
	if scrapeErr != nil {
		span.RecordError(scrapeErr)
		slog.WarnContext(ctx, "some subjects failed to scrape",
			"run_id", runId, "err", scrapeErr)
	}

	inserted, err := s.store.InsertQuestions(ctx, questions)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist questions")
		return questions, err
	}

	slog.InfoContext(ctx, "questoes scrape finished",
		"run_id", runId,
		"extracted", len(questions),
		"inserted", inserted,
	)
	return questions, scrapeErr
}
