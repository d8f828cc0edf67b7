package questoes

import (
	"strings"
	"concurseiro-backend/lib/textutil"
)

const maxTags = 5

// body keywords that imply a tag regardless of the question's subject
var keywordTags = map[string]string{
	"constituição":  "constitucional",
	"administração": "administrativo",
	"licitação":     "licitações",
	"servidor":      "servidores",
	"crase":         "gramática",
	"verbo":         "gramática",
	"porcentagem":   "percentuais",
	"planilha":      "informática",
	"internet":      "informática",
	"lei":           "legislação",
}

// keywordTagOrder fixes iteration order so tag output is deterministic
var keywordTagOrder = []string{
	"constituição",
	"administração",
	"licitação",
	"servidor",
	"crase",
	"verbo",
	"porcentagem",
	"planilha",
	"internet",
	"lei",
}

// generateTags builds the tag set: subject slug always, topic when it
// is not the generic fallback, then keyword matches. Deduplicated,
// capped at maxTags, first-seen order preserved.
func generateTags(subjectSlug, topic, body string) []string {
	var tags []string
	seen := map[string]struct{}{}
	add := func(tag string) {
		if tag == "" || len(tags) >= maxTags {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	add(subjectSlug)
	if topic != "" && topic != fallbackTopic(subjectSlug) {
		add(strings.ToLower(topic))
	}

	folded := textutil.StripAccents(strings.ToLower(body))
	for _, keyword := range keywordTagOrder {
		if strings.Contains(folded, textutil.StripAccents(keyword)) {
			add(keywordTags[keyword])
		}
	}

	return tags
}
