// Package chat implements the scripted assistant's message matching:
// scored keyword lookup over a static knowledge base with a confidence
// threshold and a static fallback. The AI fallback path lives in the
// service layer; the matcher itself is a pure function of its inputs and
// never errors.
package chat

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"nexbe-contract/internal/models"
)

// Source identifies where a reply came from.
type Source string

const (
	SourceKnowledge Source = "knowledge"
	SourceAI        Source = "ai"
	SourceFallback  Source = "fallback"
)

// DefaultConfidenceThreshold is the minimum keyword-overlap score for a
// knowledge entry to win outright.
const DefaultConfidenceThreshold = 4

// MatcherConfig tunes one Match call.
type MatcherConfig struct {
	// ConfidenceThreshold overrides DefaultConfidenceThreshold when > 0.
	ConfidenceThreshold int
	// FallbackMessage is returned when no entry scores above the threshold.
	FallbackMessage string
	// FallbackEmotion is the display emotion attached to fallback replies.
	FallbackEmotion string
}

// MatchResult is the reply chosen for one user query.
type MatchResult struct {
	Answer              string `json:"answer"`
	FollowUp            string `json:"follow_up,omitempty"`
	Score               int    `json:"score"`
	Source              Source `json:"source"`
	Emotion             string `json:"emotion,omitempty"`
	Costume             string `json:"costume,omitempty"`
	ScrollTarget        string `json:"scroll_target,omitempty"`
	SuggestConfigurator bool   `json:"suggest_configurator,omitempty"`
	ShowLeadPrompt      bool   `json:"show_lead_prompt,omitempty"`
}

// Match scores every knowledge entry against the query and returns the
// best entry's canned answer if its score reaches the confidence
// threshold, otherwise the configured fallback. Ties go to the
// earliest-registered entry. An empty or unmatched query yields the
// fallback with the best score seen (0 for empty input).
func Match(query string, kb []models.KnowledgeEntry, cfg MatcherConfig) MatchResult {
	threshold := cfg.ConfidenceThreshold
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}

	normQuery := Normalize(query)

	best := -1
	bestScore := 0
	if normQuery != "" {
		for i := range kb {
			score := scoreEntry(normQuery, kb[i].Keywords)
			if score > bestScore {
				best = i
				bestScore = score
			}
		}
	}

	if best >= 0 && bestScore >= threshold {
		e := &kb[best]
		return MatchResult{
			Answer:              e.Answer,
			FollowUp:            e.FollowUp,
			Score:               bestScore,
			Source:              SourceKnowledge,
			Emotion:             e.Emotion,
			Costume:             e.Costume,
			ScrollTarget:        e.ScrollTarget,
			SuggestConfigurator: e.SuggestConfigurator,
			ShowLeadPrompt:      e.ShowLeadPrompt,
		}
	}

	return MatchResult{
		Answer:  cfg.FallbackMessage,
		Score:   bestScore,
		Source:  SourceFallback,
		Emotion: cfg.FallbackEmotion,
	}
}

// scoreEntry counts how many of the entry's keywords occur in the
// normalized query, as a substring or whole token.
func scoreEntry(normQuery string, keywords []string) int {
	tokens := strings.Fields(normQuery)
	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
	}

	score := 0
	for _, kw := range keywords {
		nk := Normalize(kw)
		if nk == "" {
			continue
		}
		if tokenSet[nk] || strings.Contains(normQuery, nk) {
			score++
		}
	}
	return score
}

// stripMarks removes combining diacritical marks after NFD decomposition.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// "ł" carries a stroke, not a combining mark, so NFD does not fold it.
var foldStroke = strings.NewReplacer("ł", "l", "Ł", "l")

// Normalize lowercases the text, folds Polish diacritics to ASCII,
// replaces punctuation with spaces and collapses whitespace.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = foldStroke.Replace(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
