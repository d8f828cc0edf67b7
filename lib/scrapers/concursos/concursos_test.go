package concursos

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const listingPage = `
<html><body>
<div class="ca"><span>patrocinado</span></div>
<article class="concurso-card">
	<h2><a href="/concursos/trt-sp">Analista Judiciário</a></h2>
	<div class="orgao">TRT-SP</div>
	<div class="vagas">120 vagas</div>
	<div class="inscricoes">Inscrições até 10/02/2025</div>
	<div class="local">São Paulo/SP</div>
	<div class="data-prova">15/03/2025</div>
</article>
<article class="concurso-card">
	<h3><a href="https://outro.example.com/pm-mg">Concurso PM-MG</a></h3>
	<div class="local">Belo Horizonte/MG</div>
	<ul class="areas">
		<li>Direito Constitucional</li>
		<li>Informática</li>
	</ul>
</article>
</body></html>`

func newTestExtractor(t *testing.T) *Extractor {
	extractor, err := NewExtractor(ExtractorOptions{
		BaseUrl: "https://concursos.example.com",
	})
	require.NoError(t, err)
	return extractor
}

func TestExtractListings(t *testing.T) {
	extractor := newTestExtractor(t)
	ctx := context.Background()

	listings := extractor.ExtractListings(ctx, []byte(listingPage), 10)
	expected := []Listing{
		{
			Title:            "Analista Judiciário",
			Agency:           "TRT-SP",
			VacancyText:      "120 vagas",
			RegistrationText: "Inscrições até 10/02/2025",
			DetailUrl:        "https://concursos.example.com/concursos/trt-sp",
			ExamDate:         "2025-03-15",
			Subjects:         DefaultSubjects,
			StateCode:        "SP",
		},
		{
			Title:     "Concurso PM-MG",
			DetailUrl: "https://outro.example.com/pm-mg",
			Subjects:  []string{"Direito Constitucional", "Informática"},
			StateCode: "MG",
		},
	}
	if diff := cmp.Diff(expected, listings); diff != "" {
		t.Fatal(diff)
	}
}

// cards without a heading anchor never abort the batch
func TestExtractListingsSkipsDecorativeCards(t *testing.T) {
	extractor := newTestExtractor(t)

	listings := extractor.ExtractListings(context.Background(), []byte(listingPage), 10)
	require.Len(t, listings, 2)
	for _, l := range listings {
		require.NotEmpty(t, l.Title)
	}
}

// an anchor with text but no href would resolve to the bare base url,
// making every dead card collide on the detail_url identity key
func TestExtractListingsSkipsCardWithoutLink(t *testing.T) {
	extractor := newTestExtractor(t)

	page := `
<div class="ca"><h2><a>Concurso Sem Link</a></h2></div>
<div class="ca"><h2><a href="/concursos/sem-titulo"></a></h2></div>`
	listings := extractor.ExtractListings(context.Background(), []byte(page), 10)
	require.Empty(t, listings)
}

func TestExtractListingsLimit(t *testing.T) {
	extractor := newTestExtractor(t)

	listings := extractor.ExtractListings(context.Background(), []byte(listingPage), 1)
	require.Len(t, listings, 1)
	require.Equal(t, "Analista Judiciário", listings[0].Title)
}

func TestExtractListingsIdempotent(t *testing.T) {
	extractor := newTestExtractor(t)
	ctx := context.Background()

	first := extractor.ExtractListings(ctx, []byte(listingPage), 10)
	second := extractor.ExtractListings(ctx, []byte(listingPage), 10)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatal(diff)
	}
}

func TestListingValidate(t *testing.T) {
	testCases := []struct {
		name    string
		listing Listing
		ok      bool
	}{
		{
			name: "valid",
			listing: Listing{
				Title:     "Concurso INSS",
				DetailUrl: "https://example.com/inss",
			},
			ok: true,
		},
		{
			name:    "missing title",
			listing: Listing{DetailUrl: "https://example.com/inss"},
			ok:      false,
		},
		{
			name:    "relative url",
			listing: Listing{Title: "Concurso INSS", DetailUrl: "/inss"},
			ok:      false,
		},
		{
			name: "bad state code",
			listing: Listing{
				Title:     "Concurso INSS",
				DetailUrl: "https://example.com/inss",
				StateCode: "SPA",
			},
			ok: false,
		},
		{
			name: "bad exam date",
			listing: Listing{
				Title:     "Concurso INSS",
				DetailUrl: "https://example.com/inss",
				ExamDate:  "15/03/2025",
			},
			ok: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.listing.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
