// Package analysis implements the heuristic comparison engine: pure,
// deterministic text analytics over small sets of article records. It
// is the guaranteed-available fallback behind the remote analysis path
// and never performs I/O.
package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spectralens/commonground/pkg/model"
)

// Per-field caps mirror model.ComparisonResult.
const (
	maxSharedFacts  = model.MaxSharedFacts
	maxCommonThemes = model.MaxCommonThemes
	maxDifferences  = model.MaxDifferences
	maxDataPoints   = model.MaxDataPoints
)

// Reporting thresholds.
const (
	// minArticles is the smallest comparison set worth analyzing.
	minArticles = 2
	// minCorroboration is how many distinct articles must carry a
	// signal before it counts as shared.
	minCorroboration = 2
	// framingMaxLen bounds a framing sentence before truncation.
	framingMaxLen = 150
	// substantialSentenceLen marks a summary sentence as a
	// substantial claim by length alone.
	substantialSentenceLen = 80
)

var sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)

// articleText is the combined summary and key-facts text of an article.
func articleText(a model.Article) string {
	return strings.Join(articleEntries(a), " ")
}

// articleEntries returns the summary bullets followed by the key facts,
// preserving presentation order.
func articleEntries(a model.Article) []string {
	entries := make([]string, 0, len(a.Summary)+len(a.KeyFacts))
	entries = append(entries, a.Summary...)
	entries = append(entries, a.KeyFacts...)
	return entries
}

func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceSplitPattern.Split(text, -1) {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back up to a rune boundary so the cut never splits a multi-byte
	// character.
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
