package commands

import (
	"log/slog"
	"os"
	"time"

	"concurseiro-backend/lib/configutil"
	"concurseiro-backend/lib/fetch"
	"concurseiro-backend/lib/restyutil"
	scraper "concurseiro-backend/lib/scrapers/questoes"
	"concurseiro-backend/lib/serviceutil"
	"concurseiro-backend/lib/sqliteutil"
	"concurseiro-backend/services/questoes"
	"concurseiro-backend/services/questoes/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

type QuestoesConfig struct {
	BaseUrl        string `json:"base_url"`
	DedupPrefixLen int    `json:"dedup_prefix_len"`
}

var questoesDb *string
var questoesLimit *int

func init() {
	questoesDb = questoesCmd.Flags().String("db", "questoes.db", "The database to write scraped questions to.")
	questoesLimit = questoesCmd.Flags().Int("limit", 60, "The maximum amount of questions to extract across all subjects.")
	rootCmd.AddCommand(questoesCmd)
}

var questoesCmd = &cobra.Command{
	Use:   "questoes [--db <path/to/output.db>] [--limit <n>]",
	Short: "Scrapes practice questions for every known subject and writes them to a database.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[QuestoesConfig]("config.json5")
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		client := fetch.NewClient(fetch.ClientOptions{
			InstrumentOutput: restyutil.NewFilesystemOutput(".dev/resty/questoes"),
		})
		extractor, err := scraper.NewExtractor(scraper.ExtractorOptions{
			BaseUrl:        cfg.BaseUrl,
			Http:           client,
			DedupPrefixLen: cfg.DedupPrefixLen,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize extractor", err)
		}

		out, err := sqliteutil.OpenDB(db.Schema, *questoesDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer out.Close()

		svc := questoes.NewService(extractor, questoes.NewStore(out, cfg.DedupPrefixLen))

		t1 := time.Now()
		questions, err := svc.Run(cmd.Context(), *questoesLimit)
		t2 := time.Now()
		if err != nil {
			slog.Warn("scrape finished with errors", "err", err)
		}
		slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds())

		renderQuestions(questions)
	},
}

func renderQuestions(questions []scraper.Question) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Subject", "Topic", "Answer", "Difficulty", "Tags"})

	for _, q := range questions {
		t.AppendRow(table.Row{q.Subject, q.Topic, q.CorrectAnswer, q.Difficulty, q.Tags})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
