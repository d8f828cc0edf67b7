package commands

import (
	"log/slog"
	"os"
	"time"

	"concurseiro-backend/lib/configutil"
	"concurseiro-backend/lib/fetch"
	"concurseiro-backend/lib/restyutil"
	scraper "concurseiro-backend/lib/scrapers/concursos"
	"concurseiro-backend/lib/serviceutil"
	"concurseiro-backend/lib/sqliteutil"
	"concurseiro-backend/services/concursos"
	"concurseiro-backend/services/concursos/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

type ConcursosConfig struct {
	BaseUrl string `json:"base_url"`
}

var concursosDb *string
var concursosLimit *int

func init() {
	concursosDb = concursosCmd.Flags().String("db", "concursos.db", "The database to write scraped listings to.")
	concursosLimit = concursosCmd.Flags().Int("limit", 20, "The maximum amount of listings to extract.")
	rootCmd.AddCommand(concursosCmd)
}

var concursosCmd = &cobra.Command{
	Use:   "concursos [--db <path/to/output.db>] [--limit <n>]",
	Short: "Scrapes concurso listings and writes them to a database.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[ConcursosConfig]("config.json5")
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		client := fetch.NewClient(fetch.ClientOptions{
			InstrumentOutput: restyutil.NewFilesystemOutput(".dev/resty/concursos"),
		})
		extractor, err := scraper.NewExtractor(scraper.ExtractorOptions{
			BaseUrl: cfg.BaseUrl,
			Http:    client,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize extractor", err)
		}

		out, err := sqliteutil.OpenDB(db.Schema, *concursosDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer out.Close()

		svc := concursos.NewService(extractor, concursos.NewStore(out))

		t1 := time.Now()
		listings, err := svc.Run(cmd.Context(), *concursosLimit)
		t2 := time.Now()
		if err != nil {
			serviceutil.Fatal("scrape failed", err)
		}
		slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds())

		renderListings(listings)
	},
}

func renderListings(listings []scraper.Listing) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Title", "Agency", "State", "Vacancies", "Exam Date"})

	for _, l := range listings {
		t.AppendRow(table.Row{l.Title, l.Agency, l.StateCode, l.VacancyText, l.ExamDate})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
