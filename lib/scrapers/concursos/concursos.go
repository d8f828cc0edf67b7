package concursos

import (
	"context"
	"log/slog"
	"net/url"
	"concurseiro-backend/lib/fetch"
	"concurseiro-backend/lib/htmlutil"
	"concurseiro-backend/lib/validate"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// selectors for the listing page's repeated card elements. decorative
// cards matching cardSelector but missing a heading anchor are skipped.
const (
	cardSelector         = "div.ca, article.concurso-card"
	titleAnchorSelector  = "h2 a, h3 a, a.cs"
	agencySelector       = ".orgao, .cd"
	vacancySelector      = ".vagas, .cc"
	registrationSelector = ".inscricoes, .ce"
	locationSelector     = ".local, .cb"
	examDateSelector     = ".data-prova, .cf"
	subjectListSelector  = ".areas li, .materias li"
)

// subjects assumed for listings that publish no explicit subject list;
// such openings test general knowledge
var DefaultSubjects = []string{"Conhecimentos Gerais", "Português", "Matemática"}

type Listing struct {
	Title            string
	Agency           string
	VacancyText      string
	RegistrationText string
	DetailUrl        string
	// YYYY-MM-DD, empty when the source shows no parseable date
	ExamDate  string
	Subjects  []string
	StateCode string
}

func (l Listing) Validate() error {
	if err := validate.NonEmpty("title", l.Title); err != nil {
		return err
	}
	if err := validate.AbsoluteURL("detailUrl", l.DetailUrl); err != nil {
		return err
	}
	if l.StateCode != "" {
		if err := validate.LenInRange("stateCode", len(l.StateCode), 2, 2); err != nil {
			return err
		}
	}
	if l.ExamDate != "" && !isoDateRegex.MatchString(l.ExamDate) {
		return validate.Errf("examDate", "not an ISO-8601 date: %q", l.ExamDate)
	}
	return nil
}

type Extractor struct {
	BaseUrl *url.URL
	Http    *fetch.Client
}

type ExtractorOptions struct {
	BaseUrl string
	Http    *fetch.Client
}

func NewExtractor(opts ExtractorOptions) (*Extractor, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		BaseUrl: baseUrl,
		Http:    opts.Http,
	}, nil
}

// ExtractListings walks the listing page's card elements, bounded to
// `limit`, and returns the validated records. Cards missing a title or
// a link are skipped silently; records that fail validation are
// dropped and logged, never aborting the batch.
func (e *Extractor) ExtractListings(ctx context.Context, html []byte, limit int) []Listing {
	ctx, span := tracer.Start(ctx, "extractor:ExtractListings")
	defer span.End()

	doc, err := htmlutil.Parse(html)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil
	}

	var listings []Listing
	doc.Find(cardSelector).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(listings) >= limit {
			return false
		}

		listing, ok := e.extractCard(ctx, card)
		if !ok {
			return true
		}

		if err := listing.Validate(); err != nil {
			slog.WarnContext(ctx, "dropping invalid listing",
				"title", listing.Title, "err", err)
			return true
		}

		listings = append(listings, listing)
		return true
	})

	span.SetAttributes(attribute.Int("listings", len(listings)))
	return listings
}

func (e *Extractor) extractCard(ctx context.Context, card *goquery.Selection) (Listing, bool) {
	heading := card.Find(titleAnchorSelector).First()
	title := htmlutil.Text(heading)
	href, _ := htmlutil.Attr(heading, "href")
	if title == "" || href == "" {
		// decorative or dead card, not an error. an empty href would
		// otherwise resolve to the bare base url and collapse every
		// such card into one row under the detail_url identity key
		return Listing{}, false
	}

	listing := Listing{
		Title:            title,
		Agency:           htmlutil.Text(card.Find(agencySelector).First()),
		VacancyText:      htmlutil.Text(card.Find(vacancySelector).First()),
		RegistrationText: htmlutil.Text(card.Find(registrationSelector).First()),
		DetailUrl:        e.resolveUrl(href),
		ExamDate:         normalizeExamDate(htmlutil.Text(card.Find(examDateSelector).First())),
	}

	if location := htmlutil.Text(card.Find(locationSelector).First()); location != "" {
		listing.StateCode = stateCodeFromLocation(location)
	}

	card.Find(subjectListSelector).Each(func(_ int, s *goquery.Selection) {
		if subject := htmlutil.Text(s); subject != "" {
			listing.Subjects = append(listing.Subjects, subject)
		}
	})
	if len(listing.Subjects) == 0 {
		slog.DebugContext(ctx, "assuming general-knowledge subjects",
			"title", listing.Title)
		listing.Subjects = append([]string{}, DefaultSubjects...)
	}

	return listing, true
}

func (e *Extractor) resolveUrl(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return e.BaseUrl.ResolveReference(ref).String()
}

// Scrape fetches the listing page and extracts up to `limit` records.
func (e *Extractor) Scrape(ctx context.Context, limit int) ([]Listing, error) {
	ctx, span := tracer.Start(ctx, "extractor:Scrape")
	defer span.End()

	listingUrl := e.resolveUrl("/concursos/")
	html, err := e.Http.Get(ctx, listingUrl, 3600)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch listing page")
		return nil, err
	}

	return e.ExtractListings(ctx, html, limit), nil
}
