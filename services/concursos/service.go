package concursos

import (
	"context"
	"log/slog"
	scraper "concurseiro-backend/lib/scrapers/concursos"
	"concurseiro-backend/lib/telemetry"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("concurseiro.services.concursos")

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

// Run executes one scrape-and-persist cycle. A run that extracts zero
// valid records is an empty success; the caller decides whether that is
// an operational failure.
func (s Service) Run(ctx context.Context, limit int) ([]scraper.Listing, error) {
	ctx, span := tracer.Start(ctx, "service:Run")
	defer span.End()

	runId, err := random.String(12)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("run_id", runId))

	slog.InfoContext(ctx, "starting concursos scrape", "run_id", runId, "limit", limit)

	listings, err := s.extractor.Scrape(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scrape failed")
		return nil, err
	}

	err = s.store.UpsertListings(ctx, listings)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist listings")
		return listings, err
	}

	slog.InfoContext(ctx, "concursos scrape finished",
		"run_id", runId, "listings", len(listings))
	return listings, nil
}
