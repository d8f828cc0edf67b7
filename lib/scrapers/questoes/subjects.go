package questoes

import (
	"concurseiro-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

// fixed catalogue of subject slugs driving the per-subject scrape, in
// iteration order
var SubjectSlugs = []string{
	"portugues",
	"matematica",
	"direito-constitucional",
	"direito-administrativo",
	"informatica",
	"conhecimentos-gerais",
}

// display names keyed by slug; a slug absent from the table falls back
// to itself
var subjectNames = map[string]string{
	"portugues":              "Português",
	"matematica":             "Matemática",
	"direito-constitucional": "Direito Constitucional",
	"direito-administrativo": "Direito Administrativo",
	"informatica":            "Informática",
	"conhecimentos-gerais":   "Conhecimentos Gerais",
}

// topic assumed when the question markup carries none
var fallbackTopics = map[string]string{
	"portugues":              "Interpretação de Texto",
	"matematica":             "Raciocínio Lógico",
	"direito-constitucional": "Princípios Fundamentais",
	"direito-administrativo": "Atos Administrativos",
	"informatica":            "Conceitos Básicos",
	"conhecimentos-gerais":   "Atualidades",
}

func subjectDisplayName(slug string) string {
	if name, ok := subjectNames[slug]; ok {
		return name
	}
	return slug
}

func fallbackTopic(slug string) string {
	if topic, ok := fallbackTopics[slug]; ok {
		return topic
	}
	return ""
}

const subjectMatchThreshold = 0.85

// MatchSubject resolves a scraped subject name to a catalogue slug.
// Exact normalized matches win; otherwise the most Jaro-Winkler-similar
// catalogue entry above the threshold is taken.
func MatchSubject(name string) (string, bool) {
	normalized := textutil.NormalizeName(textutil.StripAccents(name))
	if normalized == "" {
		return "", false
	}

	for _, slug := range SubjectSlugs {
		if normalized == textutil.NormalizeName(textutil.StripAccents(subjectNames[slug])) ||
			normalized == textutil.NormalizeName(textutil.StripAccents(slug)) {
			return slug, true
		}
	}

	var bestSlug string
	var bestSimilarity float64
	for _, slug := range SubjectSlugs {
		candidate := textutil.NormalizeName(textutil.StripAccents(subjectNames[slug]))
		similarity := matchr.JaroWinkler(normalized, candidate, false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			bestSlug = slug
		}
	}

	if bestSimilarity < subjectMatchThreshold {
		return "", false
	}
	return bestSlug, true
}
