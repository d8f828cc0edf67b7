package main

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"concurseiro-backend/lib/configuration"
	"concurseiro-backend/lib/configutil"
	"concurseiro-backend/lib/fetch"
	concursoscraper "concurseiro-backend/lib/scrapers/concursos"
	questoescraper "concurseiro-backend/lib/scrapers/questoes"
	"concurseiro-backend/lib/serviceutil"
	"concurseiro-backend/lib/telemetry"
	concursossvc "concurseiro-backend/services/concursos"
	concursosdb "concurseiro-backend/services/concursos/db"
	questoessvc "concurseiro-backend/services/questoes"
	questoesdb "concurseiro-backend/services/questoes/db"

	"github.com/robfig/cron/v3"
	_ "modernc.org/sqlite"
)

type Config struct {
	ConcursosBaseUrl string               `json:"concursos_base_url"`
	QuestoesBaseUrl  string               `json:"questoes_base_url"`
	CronSpec         string               `json:"cron_spec"`
	ListingLimit     int                  `json:"listing_limit"`
	QuestionLimit    int                  `json:"question_limit"`
	DedupPrefixLen   int                  `json:"dedup_prefix_len"`
	ConcursosDb      configuration.Libsql `json:"concursos_db"`
	QuestoesDb       configuration.Libsql `json:"questoes_db"`
}

func applySchema(ctx context.Context, db *sql.DB, schema string) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil && strings.Contains(err.Error(), "already exists") {
		return nil
	}
	return err
}

func main() {
	ctx := serviceutil.SignalContext()

	tele, err := telemetry.SetupFromEnv(ctx, "scraperd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tele.Shutdown(context.Background())
	telemetry.InitSlog(false)
	telemetry.InstrumentPerfStats(ctx)

	config, err := configutil.ReadConfig[Config]("scraperd.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.CronSpec == "" {
		config.CronSpec = "@every 12h"
	}
	if config.ListingLimit <= 0 {
		config.ListingLimit = 50
	}
	if config.QuestionLimit <= 0 {
		config.QuestionLimit = 120
	}

	slog.Info("opening databases...")
	concursosOut, err := config.ConcursosDb.OpenDB()
	if err != nil {
		serviceutil.Fatal("failed to open concursos db", err)
	}
	defer concursosOut.Close()
	if err := applySchema(ctx, concursosOut, concursosdb.Schema); err != nil {
		serviceutil.Fatal("failed to apply concursos schema", err)
	}

	questoesOut, err := config.QuestoesDb.OpenDB()
	if err != nil {
		serviceutil.Fatal("failed to open questoes db", err)
	}
	defer questoesOut.Close()
	if err := applySchema(ctx, questoesOut, questoesdb.Schema); err != nil {
		serviceutil.Fatal("failed to apply questoes schema", err)
	}

	client := fetch.NewClient(fetch.ClientOptions{})

	listingExtractor, err := concursoscraper.NewExtractor(concursoscraper.ExtractorOptions{
		BaseUrl: config.ConcursosBaseUrl,
		Http:    client,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize listing extractor", err)
	}
	questionExtractor, err := questoescraper.NewExtractor(questoescraper.ExtractorOptions{
		BaseUrl:        config.QuestoesBaseUrl,
		Http:           client,
		DedupPrefixLen: config.DedupPrefixLen,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize question extractor", err)
	}

	concursos := concursossvc.NewService(listingExtractor, concursossvc.NewStore(concursosOut))
	questoes := questoessvc.NewService(questionExtractor, questoessvc.NewStore(questoesOut, config.DedupPrefixLen))

	runAll := func() {
		if _, err := concursos.Run(ctx, config.ListingLimit); err != nil {
			slog.ErrorContext(ctx, "concursos scrape failed", "err", err)
		}
		if _, err := questoes.Run(ctx, config.QuestionLimit); err != nil {
			slog.WarnContext(ctx, "questoes scrape finished with errors", "err", err)
		}
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(config.CronSpec, runAll)
	if err != nil {
		serviceutil.Fatal("failed to schedule scrape job", err)
	}
	scheduler.Start()
	slog.Info("scheduler started", "spec", config.CronSpec)

	// populate the feed without waiting for the first tick
	go runAll()

	<-ctx.Done()
	slog.Info("shutting down...")
	<-scheduler.Stop().Done()
}
