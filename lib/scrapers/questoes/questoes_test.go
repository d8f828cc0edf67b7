package questoes

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const questionPage = `
<html><body>
<div class="questao" data-gabarito="B">
	<p class="enunciado">Assinale a alternativa correta sobre o uso do verbo.</p>
	<ul class="alternativas">
		<li>A) Certo.</li>
		<li>B) Errado.</li>
	</ul>
</div>
<div class="questao">
	<p class="enunciado">Questão truncada pelo site.</p>
	<ul class="alternativas">
		<li>A) Única alternativa.</li>
	</ul>
</div>
<div class="questao">
	<ul class="alternativas">
		<li>A) Sem enunciado.</li>
		<li>B) Também sem enunciado.</li>
	</ul>
</div>
</body></html>`

const adminQuestionPage = `
<html><body>
<article class="question-item">
	<div class="q-enunciado">Qual princípio rege a administração pública?</div>
	<ol>
		<li class="alternativa">A) Legalidade.</li>
		<li class="alternativa">B) Oralidade.</li>
		<li class="alternativa">C) Informalidade.</li>
	</ol>
	<span class="gabarito">Gabarito: A</span>
	<div class="comentario">Art. 37 da Constituição.</div>
	<span class="assunto">Princípios</span>
	<span class="banca">CESPE</span>
	<span class="ano">Ano: 2022</span>
</article>
</body></html>`

func newTestExtractor(t *testing.T) *Extractor {
	extractor, err := NewExtractor(ExtractorOptions{
		BaseUrl: "https://questoes.example.com",
	})
	require.NoError(t, err)
	return extractor
}

func TestExtractQuestions(t *testing.T) {
	extractor := newTestExtractor(t)

	questions := extractor.ExtractQuestions(context.Background(), []byte(questionPage), "portugues", 10)
	expected := []Question{
		{
			BodyText:         "Assinale a alternativa correta sobre o uso do verbo.",
			Alternatives:     []string{"Certo.", "Errado."},
			CorrectAnswer:    "B",
			AnswerConfidence: AnswerExplicit,
			Subject:          "Português",
			Topic:            "Interpretação de Texto",
			Difficulty:       DifficultyEasy,
			Tags:             []string{"portugues", "gramática"},
			Source:           "questoes.example.com",
		},
	}
	if diff := cmp.Diff(expected, questions); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractQuestionsFullMarkup(t *testing.T) {
	extractor := newTestExtractor(t)

	questions := extractor.ExtractQuestions(context.Background(), []byte(adminQuestionPage), "direito-administrativo", 10)
	expected := []Question{
		{
			BodyText:         "Qual princípio rege a administração pública?",
			Alternatives:     []string{"Legalidade.", "Oralidade.", "Informalidade."},
			CorrectAnswer:    "A",
			AnswerConfidence: AnswerExplicit,
			Explanation:      "Art. 37 da Constituição.",
			Subject:          "Direito Administrativo",
			Topic:            "Princípios",
			Agency:           "CESPE",
			Year:             2022,
			Difficulty:       DifficultyEasy,
			Tags:             []string{"direito-administrativo", "princípios", "administrativo"},
			Source:           "questoes.example.com",
		},
	}
	if diff := cmp.Diff(expected, questions); diff != "" {
		t.Fatal(diff)
	}
}

// fewer than two surviving alternatives is not a question
func TestExtractQuestionsDiscardsTruncated(t *testing.T) {
	extractor := newTestExtractor(t)

	questions := extractor.ExtractQuestions(context.Background(), []byte(questionPage), "portugues", 10)
	require.Len(t, questions, 1)
}

// more than five alternatives means the selector matched something that
// is not an A-E question, so the record is dropped, never trimmed
func TestExtractQuestionsDropsOverlongAlternatives(t *testing.T) {
	extractor := newTestExtractor(t)

	page := `
<div class="questao" data-gabarito="A">
	<p class="enunciado">Questão com lista de alternativas corrompida.</p>
	<ul class="alternativas">
		<li>A) Um.</li>
		<li>B) Dois.</li>
		<li>C) Três.</li>
		<li>D) Quatro.</li>
		<li>E) Cinco.</li>
		<li>F) Seis.</li>
	</ul>
</div>`
	questions := extractor.ExtractQuestions(context.Background(), []byte(page), "portugues", 10)
	require.Empty(t, questions)
}

func TestExtractAnswerFallsBackInferred(t *testing.T) {
	extractor := newTestExtractor(t)

	page := `
<div class="questao">
	<p class="enunciado">Questão sem gabarito publicado.</p>
	<ul class="alternativas">
		<li>A) Primeira.</li>
		<li>B) Segunda.</li>
	</ul>
</div>`
	questions := extractor.ExtractQuestions(context.Background(), []byte(page), "portugues", 10)
	require.Len(t, questions, 1)
	require.Equal(t, "A", questions[0].CorrectAnswer)
	require.Equal(t, AnswerInferred, questions[0].AnswerConfidence)
}

// a gabarito letter beyond the real alternatives is as good as absent
func TestExtractAnswerIgnoresOutOfRangeLetter(t *testing.T) {
	extractor := newTestExtractor(t)

	page := `
<div class="questao" data-gabarito="E">
	<p class="enunciado">Questão com gabarito fora do intervalo.</p>
	<ul class="alternativas">
		<li>A) Primeira.</li>
		<li>B) Segunda.</li>
	</ul>
</div>`
	questions := extractor.ExtractQuestions(context.Background(), []byte(page), "portugues", 10)
	require.Len(t, questions, 1)
	require.Equal(t, "A", questions[0].CorrectAnswer)
	require.Equal(t, AnswerInferred, questions[0].AnswerConfidence)
}

func TestNormalizeAnswerLetter(t *testing.T) {
	testCases := []struct {
		text     string
		expected string
	}{
		{"C", "C"},
		{"c", "C"},
		{"Gabarito: D", "D"},
		{"  b  ", "B"},
		{"Anulada", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, normalizeAnswerLetter(tc.text), tc.text)
	}
}

func TestQuestionValidate(t *testing.T) {
	valid := Question{
		BodyText:      "Enunciado qualquer.",
		Alternatives:  []string{"Um.", "Dois.", "Três."},
		CorrectAnswer: "C",
		Source:        "questoes.example.com",
	}
	require.NoError(t, valid.Validate())

	testCases := []struct {
		name   string
		mutate func(q *Question)
	}{
		{"empty body", func(q *Question) { q.BodyText = "" }},
		{"too few alternatives", func(q *Question) { q.Alternatives = []string{"Um."} }},
		{"too many alternatives", func(q *Question) {
			q.Alternatives = []string{"Um.", "Dois.", "Três.", "Quatro.", "Cinco.", "Seis."}
		}},
		{"answer out of range", func(q *Question) { q.CorrectAnswer = "E" }},
		{"answer not a letter", func(q *Question) { q.CorrectAnswer = "1" }},
		{"year out of range", func(q *Question) { q.Year = 1900 }},
		{"unknown difficulty", func(q *Question) { q.Difficulty = "impossible" }},
		{"empty source", func(q *Question) { q.Source = "" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := valid
			tc.mutate(&q)
			require.Error(t, q.Validate())
		})
	}
}
