package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nexbe-contract/internal/models"
)

func entry(keywords []string, answer string) models.KnowledgeEntry {
	return models.KnowledgeEntry{Keywords: keywords, Answer: answer}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Gwarancja", "gwarancja"},
		{"Ile kosztuje magazyn energii?", "ile kosztuje magazyn energii"},
		{"żółta łódź, ćma!", "zolta lodz cma"},
		{"  spacje\t\ni nowe linie ", "spacje i nowe linie"},
		{"", ""},
		{"?!...", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestMatch_KnowledgeAboveThreshold(t *testing.T) {
	kb := []models.KnowledgeEntry{
		entry([]string{"gwarancja", "lat", "bateria", "falownik"}, "Gwarancja wynosi 10 lat."),
	}
	cfg := MatcherConfig{FallbackMessage: "Nie wiem."}

	res := Match("Gwarancja na bateria i falownik - ile lat?", kb, cfg)
	assert.Equal(t, SourceKnowledge, res.Source)
	assert.Equal(t, "Gwarancja wynosi 10 lat.", res.Answer)
	assert.Equal(t, 4, res.Score)
}

func TestMatch_BelowThresholdFallsBack(t *testing.T) {
	kb := []models.KnowledgeEntry{
		entry([]string{"gwarancja", "lat", "bateria", "falownik"}, "Gwarancja wynosi 10 lat."),
	}
	cfg := MatcherConfig{FallbackMessage: "Nie wiem.", FallbackEmotion: "confused"}

	res := Match("Jaka jest gwarancja?", kb, cfg)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, "Nie wiem.", res.Answer)
	assert.Equal(t, "confused", res.Emotion)
	assert.Equal(t, 1, res.Score)
}

func TestMatch_CustomThreshold(t *testing.T) {
	kb := []models.KnowledgeEntry{
		entry([]string{"cena", "koszt"}, "Ceny zaczynają się od 34 000 zł."),
	}
	cfg := MatcherConfig{ConfidenceThreshold: 2, FallbackMessage: "Nie wiem."}

	res := Match("Jaka cena, jaki koszt?", kb, cfg)
	assert.Equal(t, SourceKnowledge, res.Source)
	assert.Equal(t, 2, res.Score)
}

func TestMatch_TieBreakGoesToEarliestEntry(t *testing.T) {
	kb := []models.KnowledgeEntry{
		entry([]string{"magazyn", "energii"}, "first"),
		entry([]string{"magazyn", "energii"}, "second"),
	}
	cfg := MatcherConfig{ConfidenceThreshold: 2, FallbackMessage: "Nie wiem."}

	res := Match("magazyn energii", kb, cfg)
	assert.Equal(t, "first", res.Answer)
}

func TestMatch_SubstringAndDiacriticFolding(t *testing.T) {
	// "ładowarka" folds to "ladowarka"; keyword matching is on normalized
	// text, and substrings count.
	kb := []models.KnowledgeEntry{
		entry([]string{"ładowarka", "ev"}, "Tak, obsługujemy ładowarki EV."),
	}
	cfg := MatcherConfig{ConfidenceThreshold: 2, FallbackMessage: "Nie wiem."}

	res := Match("Czy macie LADOWARKA do auta EV?", kb, cfg)
	assert.Equal(t, SourceKnowledge, res.Source)
}

func TestMatch_EmptyQueryNeverErrors(t *testing.T) {
	kb := []models.KnowledgeEntry{
		entry([]string{"gwarancja"}, "Gwarancja wynosi 10 lat."),
	}
	cfg := MatcherConfig{FallbackMessage: "Nie wiem."}

	for _, q := range []string{"", "   ", "\t\n", "?!."} {
		res := Match(q, kb, cfg)
		assert.Equal(t, SourceFallback, res.Source, "query %q", q)
		assert.Equal(t, 0, res.Score, "query %q", q)
	}
}

func TestMatch_EmptyKnowledgeBase(t *testing.T) {
	cfg := MatcherConfig{FallbackMessage: "Nie wiem."}
	res := Match("dowolne pytanie", nil, cfg)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, 0, res.Score)
}

func TestMatch_PassesThroughDisplayMetadata(t *testing.T) {
	kb := []models.KnowledgeEntry{
		{
			Keywords:            []string{"konfigurator"},
			Answer:              "Wypróbuj konfigurator.",
			Emotion:             "excited",
			Costume:             "doradca",
			ScrollTarget:        "#konfigurator",
			SuggestConfigurator: true,
		},
	}
	cfg := MatcherConfig{ConfidenceThreshold: 1, FallbackMessage: "Nie wiem."}

	res := Match("gdzie jest konfigurator", kb, cfg)
	assert.Equal(t, SourceKnowledge, res.Source)
	assert.Equal(t, "excited", res.Emotion)
	assert.Equal(t, "doradca", res.Costume)
	assert.Equal(t, "#konfigurator", res.ScrollTarget)
	assert.True(t, res.SuggestConfigurator)
}
