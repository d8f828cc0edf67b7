package questoes

import (
	"regexp"
	"strings"
	"concurseiro-backend/lib/textutil"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// formal-register words that correlate with harder legal/academic
// questions on the source sites
var formalRegisterWords = []string{
	"outrossim",
	"consoante",
	"preconiza",
	"jurisprudencia",
	"prerrogativa",
	"supracitado",
	"hermeneutica",
	"dispositivo legal",
	"no que tange",
	"ressalvadas",
}

var numericPatternRegex = regexp.MustCompile(`\d+[.,]\d+|\d+\s*%|\d+/\d+`)

// difficultyScore is the raw heuristic signal; kept separate from the
// enum mapping so each branch stays unit-testable.
func difficultyScore(body string, alternatives []string) int {
	score := 0

	bodyLen := len([]rune(body))
	if bodyLen > 500 {
		score += 2
	} else if bodyLen > 200 {
		score += 1
	}

	if len(alternatives) > 0 {
		total := 0
		for _, alt := range alternatives {
			total += len([]rune(alt))
		}
		mean := total / len(alternatives)
		if mean > 50 {
			score += 2
		} else if mean > 25 {
			score += 1
		}
	}

	folded := textutil.StripAccents(strings.ToLower(body))
	for _, word := range formalRegisterWords {
		if strings.Contains(folded, word) {
			score += 2
			break
		}
	}

	if numericPatternRegex.MatchString(body) {
		score += 1
	}

	return score
}

// inferDifficulty maps the heuristic score to the enum. Best-effort
// signal, not a guarantee: source markup rarely labels difficulty.
func inferDifficulty(body string, alternatives []string) Difficulty {
	score := difficultyScore(body, alternatives)
	switch {
	case score >= 4:
		return DifficultyHard
	case score >= 2:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}
