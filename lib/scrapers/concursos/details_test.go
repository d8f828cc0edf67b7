package concursos

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"concurseiro-backend/lib/fetch"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const detailPage = `
<html><body>
<div class="descricao">Concurso para provimento de 120 vagas de Analista.</div>
<ul class="requisitos">
	<li>Nível superior completo.</li>
	<li>Idade mínima de 18 anos.</li>
</ul>
<div class="salario">R$ 13.994,78</div>
<ul class="conteudo-programatico">
	<li>Português</li>
	<li>Direito Constitucional</li>
</ul>
</body></html>`

func newDetailExtractor(t *testing.T, baseUrl string) *Extractor {
	extractor, err := NewExtractor(ExtractorOptions{
		BaseUrl: baseUrl,
		Http:    fetch.NewClient(fetch.ClientOptions{Timeout: time.Second * 5}),
	})
	require.NoError(t, err)
	return extractor
}

func TestExtractDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/concursos/trt-sp", r.URL.Path)
		fmt.Fprint(w, detailPage)
	}))
	defer server.Close()

	extractor := newDetailExtractor(t, server.URL)

	info := extractor.ExtractDetails(context.Background(), server.URL+"/concursos/trt-sp")
	expected := DetailInfo{
		Description:  "Concurso para provimento de 120 vagas de Analista.",
		Requirements: []string{"Nível superior completo.", "Idade mínima de 18 anos."},
		SalaryText:   "R$ 13.994,78",
		Subjects:     []string{"Português", "Direito Constitucional"},
	}
	if diff := cmp.Diff(expected, info); diff != "" {
		t.Fatal(diff)
	}
}

// enrichment is best-effort: a failing detail page yields empty data,
// never an error to the caller
func TestExtractDetailsFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	extractor := newDetailExtractor(t, server.URL)

	info := extractor.ExtractDetails(context.Background(), server.URL+"/concursos/extinto")
	require.Equal(t, DetailInfo{}, info)
}
