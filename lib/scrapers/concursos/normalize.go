package concursos

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	stateTokenRegex = regexp.MustCompile(`\b[A-Z]{2}\b`)
	sourceDateRegex = regexp.MustCompile(`\b(\d{2})/(\d{2})/(\d{4})\b`)
	isoDateRegex    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// the last all-uppercase 2-letter token wins: state abbreviations trail
// city names ("São Paulo/SP")
func stateCodeFromLocation(location string) string {
	matches := stateTokenRegex.FindAllString(location, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}

// normalizeExamDate turns DD/MM/YYYY into YYYY-MM-DD. Any other format
// yields an absent date rather than a parse error.
func normalizeExamDate(text string) string {
	groups := sourceDateRegex.FindStringSubmatch(strings.TrimSpace(text))
	if groups == nil {
		return ""
	}

	day, _ := strconv.Atoi(groups[1])
	month, _ := strconv.Atoi(groups[2])
	year, _ := strconv.Atoi(groups[3])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return ""
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
