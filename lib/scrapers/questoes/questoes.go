package questoes

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"concurseiro-backend/lib/fetch"
	"concurseiro-backend/lib/htmlutil"
	"concurseiro-backend/lib/validate"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	questionSelector    = "div.questao, article.question-item"
	bodySelector        = ".enunciado, .q-enunciado"
	alternativeSelector = ".alternativas li, li.alternativa"
	gabaritoSelector    = ".gabarito, .resposta-correta"
	explanationSelector = ".comentario, .explicacao"
	topicSelector       = ".assunto, .topico"
	agencySelector      = ".banca, .orgao"
	yearSelector        = ".ano"

	// attribute fallback when no gabarito element is present
	answerAttribute = "data-gabarito"
)

type AnswerConfidence string

const (
	// the answer letter was read from the page
	AnswerExplicit AnswerConfidence = "explicit"
	// no answer could be determined and "A" was assumed
	AnswerInferred AnswerConfidence = "inferred"
)

type Question struct {
	BodyText         string
	Alternatives     []string
	CorrectAnswer    string
	AnswerConfidence AnswerConfidence
	Explanation      string
	Subject          string
	Topic            string
	Agency           string
	// 0 when the source shows none
	Year       int
	Difficulty Difficulty
	Tags       []string
	Source     string
}

var answerLetters = []string{"A", "B", "C", "D", "E"}

func (q Question) Validate() error {
	if err := validate.NonEmpty("bodyText", q.BodyText); err != nil {
		return err
	}
	if err := validate.LenInRange("alternatives", len(q.Alternatives), 2, 5); err != nil {
		return err
	}
	if err := validate.OneOf("correctAnswer", q.CorrectAnswer, answerLetters); err != nil {
		return err
	}
	if int(q.CorrectAnswer[0]-'A') >= len(q.Alternatives) {
		return validate.Errf("correctAnswer", "%q does not index a real alternative", q.CorrectAnswer)
	}
	if q.Year != 0 {
		if err := validate.IntInRange("year", q.Year, 1990, 2030); err != nil {
			return err
		}
	}
	if q.Difficulty != "" {
		if err := validate.OneOf("difficulty", string(q.Difficulty),
			[]string{string(DifficultyEasy), string(DifficultyMedium), string(DifficultyHard)}); err != nil {
			return err
		}
	}
	if len(q.Tags) > maxTags {
		return validate.Errf("tags", "more than %d tags", maxTags)
	}
	if err := validate.NonEmpty("source", q.Source); err != nil {
		return err
	}
	return nil
}

type Extractor struct {
	BaseUrl *url.URL
	Http    *fetch.Client
	// prefix length for near-duplicate detection, defaults to 100
	DedupPrefixLen int
}

type ExtractorOptions struct {
	BaseUrl        string
	Http           *fetch.Client
	DedupPrefixLen int
}

func NewExtractor(opts ExtractorOptions) (*Extractor, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	prefixLen := opts.DedupPrefixLen
	if prefixLen == 0 {
		prefixLen = 100
	}
	return &Extractor{
		BaseUrl:        baseUrl,
		Http:           opts.Http,
		DedupPrefixLen: prefixLen,
	}, nil
}

var alternativeLabelRegex = regexp.MustCompile(`^[A-Ea-e][\)\.\-]\s*`)
var yearRegex = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// ExtractQuestions walks the subject listing page's question elements,
// bounded to `limit`. Questions with fewer than 2 surviving
// alternatives are discarded; records that fail validation are dropped
// and logged without aborting the batch.
func (e *Extractor) ExtractQuestions(ctx context.Context, html []byte, subjectSlug string, limit int) []Question {
	ctx, span := tracer.Start(ctx, "extractor:ExtractQuestions")
	defer span.End()
	span.SetAttributes(attribute.String("subject", subjectSlug))

	doc, err := htmlutil.Parse(html)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil
	}

	var questions []Question
	doc.Find(questionSelector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if len(questions) >= limit {
			return false
		}

		question, ok := e.extractQuestion(ctx, el, subjectSlug)
		if !ok {
			return true
		}

		if err := question.Validate(); err != nil {
			slog.WarnContext(ctx, "dropping invalid question",
				"subject", subjectSlug, "err", err)
			return true
		}

		questions = append(questions, question)
		return true
	})

	span.SetAttributes(attribute.Int("questions", len(questions)))
	return questions
}

func (e *Extractor) extractQuestion(ctx context.Context, el *goquery.Selection, subjectSlug string) (Question, bool) {
	body := htmlutil.Text(el.Find(bodySelector).First())
	if body == "" {
		return Question{}, false
	}

	var alternatives []string
	el.Find(alternativeSelector).Each(func(_ int, alt *goquery.Selection) {
		text := alternativeLabelRegex.ReplaceAllString(htmlutil.Text(alt), "")
		if text != "" {
			alternatives = append(alternatives, text)
		}
	})
	if len(alternatives) < 2 {
		// a question needs at least two choices to be meaningful
		return Question{}, false
	}

	answer, confidence := e.extractAnswer(ctx, el, len(alternatives))

	topic := htmlutil.Text(el.Find(topicSelector).First())
	if topic == "" {
		topic = fallbackTopic(subjectSlug)
	}

	year := 0
	if yearText := yearRegex.FindString(htmlutil.Text(el.Find(yearSelector).First())); yearText != "" {
		year, _ = strconv.Atoi(yearText)
	}

	return Question{
		BodyText:         body,
		Alternatives:     alternatives,
		CorrectAnswer:    answer,
		AnswerConfidence: confidence,
		Explanation:      htmlutil.Text(el.Find(explanationSelector).First()),
		Subject:          subjectDisplayName(subjectSlug),
		Topic:            topic,
		Agency:           htmlutil.Text(el.Find(agencySelector).First()),
		Year:             year,
		Difficulty:       inferDifficulty(body, alternatives),
		Tags:             generateTags(subjectSlug, topic, body),
		Source:           e.BaseUrl.Hostname(),
	}, true
}

// extractAnswer reads the answer letter from the gabarito element,
// failing that from the data attribute. When neither yields a letter
// "A" is assumed, a known source of answer skew that the confidence
// field makes auditable.
func (e *Extractor) extractAnswer(ctx context.Context, el *goquery.Selection, alternativeCount int) (string, AnswerConfidence) {
	candidates := []string{
		htmlutil.Text(el.Find(gabaritoSelector).First()),
		el.AttrOr(answerAttribute, ""),
	}

	for _, candidate := range candidates {
		letter := normalizeAnswerLetter(candidate)
		if letter != "" && int(letter[0]-'A') < alternativeCount {
			return letter, AnswerExplicit
		}
	}

	slog.InfoContext(ctx, "assuming answer A for question with no determinable gabarito")
	return "A", AnswerInferred
}

func normalizeAnswerLetter(text string) string {
	text = strings.ToUpper(strings.TrimSpace(text))
	// gabarito text often reads "Gabarito: C"
	if idx := strings.IndexByte(text, ':'); idx >= 0 {
		text = strings.TrimSpace(text[idx+1:])
	}
	if text == "" {
		return ""
	}
	first := text[:1]
	if first < "A" || first > "E" {
		return ""
	}
	// reject words that merely start with a letter, e.g. "Anulada"
	if len(text) > 1 && text[1] >= 'A' && text[1] <= 'Z' {
		return ""
	}
	return first
}
