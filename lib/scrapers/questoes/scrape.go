package questoes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
)

const scrapeWorkers = 4

// ScrapeAllSubjects fetches every catalogue subject's listing page,
// each receiving its share of totalLimit, and returns the deduplicated
// union. Subjects fetch concurrently bounded by a small worker pool; a
// failed subject is skipped, its error joined into the returned error
// alongside the partial results. Zero questions with a nil error is an
// empty success.
func (e *Extractor) ScrapeAllSubjects(ctx context.Context, totalLimit int) ([]Question, error) {
	ctx, span := tracer.Start(ctx, "extractor:ScrapeAllSubjects")
	defer span.End()

	perSubject := totalLimit / len(SubjectSlugs)
	if perSubject < 1 {
		perSubject = 1
	}

	var collected []Question
	var errList []error
	var mu sync.Mutex
	sem := make(chan struct{}, scrapeWorkers)
	wg := sync.WaitGroup{}

	for _, slug := range SubjectSlugs {
		wg.Add(1)
		go func(slug string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			questions, err := e.scrapeSubject(ctx, slug, perSubject)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// one failed subject must not cancel the rest
				slog.ErrorContext(ctx, "failed to scrape subject",
					"subject", slug, "err", err)
				errList = append(errList, fmt.Errorf("subject %s: %w", slug, err))
				return
			}
			collected = append(collected, questions...)
		}(slug)
	}

	wg.Wait()

	deduped := dedupeQuestions(collected, e.DedupPrefixLen)
	span.SetAttributes(
		attribute.Int("collected", len(collected)),
		attribute.Int("deduped", len(deduped)),
	)

	return deduped, errors.Join(errList...)
}

func (e *Extractor) scrapeSubject(ctx context.Context, slug string, limit int) ([]Question, error) {
	pageUrl := e.BaseUrl.JoinPath("questoes", slug).String()
	html, err := e.Http.Get(ctx, pageUrl, 1800)
	if err != nil {
		return nil, err
	}
	return e.ExtractQuestions(ctx, html, slug, limit), nil
}

// DedupKey is the case-insensitive trimmed prefix of the body text used
// for near-duplicate detection. Two distinct questions sharing their
// first prefixLen characters collide on purpose: sources republish the
// same question with trailing edits.
func DedupKey(body string, prefixLen int) string {
	folded := strings.ToLower(strings.TrimSpace(body))
	runes := []rune(folded)
	if len(runes) > prefixLen {
		runes = runes[:prefixLen]
	}
	return string(runes)
}

// first occurrence wins; later collisions in the same run are dropped
func dedupeQuestions(questions []Question, prefixLen int) []Question {
	seen := make(map[string]struct{}, len(questions))
	var out []Question
	for _, q := range questions {
		key := DedupKey(q.BodyText, prefixLen)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}
	return out
}
