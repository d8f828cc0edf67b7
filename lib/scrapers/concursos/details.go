package concursos

import (
	"context"
	"log/slog"
	"concurseiro-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	descriptionSelector  = ".descricao, .texto-concurso p"
	requirementsSelector = ".requisitos li"
	salarySelector       = ".salario, .remuneracao"
	detailAreasSelector  = ".conteudo-programatico li, .areas-detalhe li"
)

// DetailInfo is the optional enrichment pulled from a listing's detail
// page. Every field may be empty.
type DetailInfo struct {
	Description  string
	Requirements []string
	SalaryText   string
	Subjects     []string
}

// ExtractDetails fetches one detail page and extracts richer data.
// Extraction failure yields an empty DetailInfo, never an error: detail
// enrichment is best-effort and must not fail a scrape run.
func (e *Extractor) ExtractDetails(ctx context.Context, pageUrl string) DetailInfo {
	ctx, span := tracer.Start(ctx, "extractor:ExtractDetails")
	defer span.End()

	html, err := e.Http.Get(ctx, pageUrl, 3600)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch detail page", "url", pageUrl, "err", err)
		return DetailInfo{}
	}

	doc, err := htmlutil.Parse(html)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse detail page", "url", pageUrl, "err", err)
		return DetailInfo{}
	}

	info := DetailInfo{
		Description: htmlutil.Text(doc.Find(descriptionSelector).First()),
		SalaryText:  htmlutil.Text(doc.Find(salarySelector).First()),
	}
	doc.Find(requirementsSelector).Each(func(_ int, s *goquery.Selection) {
		if req := htmlutil.Text(s); req != "" {
			info.Requirements = append(info.Requirements, req)
		}
	})
	doc.Find(detailAreasSelector).Each(func(_ int, s *goquery.Selection) {
		if subject := htmlutil.Text(s); subject != "" {
			info.Subjects = append(info.Subjects, subject)
		}
	})

	return info
}
