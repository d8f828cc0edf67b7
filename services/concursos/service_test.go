package concursos

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"concurseiro-backend/lib/fetch"
	scraper "concurseiro-backend/lib/scrapers/concursos"
	"concurseiro-backend/lib/testutil"
	"concurseiro-backend/services/concursos/db"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const listingPage = `
<html><body>
<article class="concurso-card">
	<h2><a href="/concursos/trt-sp-2025">Concurso TRT-SP 2025</a></h2>
	<div class="orgao">Tribunal Regional do Trabalho</div>
	<div class="vagas">120 vagas</div>
	<div class="local">São Paulo/SP</div>
	<div class="data-prova">15/03/2025</div>
</article>
</body></html>`

func TestService(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/concursos",
		DbSchema: db.Schema,
	})
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/concursos/", r.URL.Path)
		fmt.Fprint(w, listingPage)
	}))
	defer server.Close()

	extractor, err := scraper.NewExtractor(scraper.ExtractorOptions{
		BaseUrl: server.URL,
		Http:    fetch.NewClient(fetch.ClientOptions{}),
	})
	require.NoError(t, err)

	store := NewStore(setup.DB)
	service := NewService(extractor, store)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	listings, err := service.Run(ctx, 10)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	stored, err := store.ListListings(ctx)
	require.NoError(t, err)
	expected := []scraper.Listing{
		{
			Title:       "Concurso TRT-SP 2025",
			Agency:      "Tribunal Regional do Trabalho",
			VacancyText: "120 vagas",
			DetailUrl:   server.URL + "/concursos/trt-sp-2025",
			ExamDate:    "2025-03-15",
			Subjects:    scraper.DefaultSubjects,
			StateCode:   "SP",
		},
	}
	if diff := cmp.Diff(expected, stored); diff != "" {
		t.Fatal(diff)
	}

	// a second run over the same page updates rather than duplicates
	_, err = service.Run(ctx, 10)
	require.NoError(t, err)
	stored, err = store.ListListings(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestStoreUpsertOverwrites(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/concursos",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	original := scraper.Listing{
		Title:     "Concurso INSS",
		DetailUrl: "https://example.com/inss",
		Subjects:  []string{"Português"},
	}
	require.NoError(t, store.UpsertListings(ctx, []scraper.Listing{original}))

	updated := original
	updated.Title = "Concurso INSS 2025"
	updated.ExamDate = "2025-06-01"
	require.NoError(t, store.UpsertListings(ctx, []scraper.Listing{updated}))

	stored, err := store.ListListings(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]scraper.Listing{updated}, stored); diff != "" {
		t.Fatal(diff)
	}
}
