package analysis

import (
	"fmt"
	"strings"

	"github.com/spectralens/commonground/pkg/model"
)

// maxBaselineFacts caps the sharedBaseline of an analytical comparison.
const maxBaselineFacts = 6

// SharedFacts finds key facts and data points corroborated by at least
// two articles and renders them as display strings. Three signals feed
// it, in order: exact (normalized) key-fact matches, numeric tokens
// recurring across articles, and near-duplicate summary sentences.
func SharedFacts(articles []model.Article) []string {
	facts := []string{}
	if len(articles) < minArticles {
		return facts
	}

	agree := "Both agree"
	cite := "Both cite"
	note := "Both sources note"
	if len(articles) > 2 {
		agree = "Multiple sources agree"
		cite = "Multiple sources cite"
		note = "Multiple sources note"
	}

	seen := make(map[string]bool)
	add := func(s string) {
		if len(facts) >= maxSharedFacts || seen[s] {
			return
		}
		seen[s] = true
		facts = append(facts, s)
	}

	// Exact key-fact matches: count normalized facts, then recover the
	// first original-cased occurrence for display.
	flattened := flattenKeyFacts(articles)
	counts := make(map[string]int)
	for _, f := range flattened {
		counts[normalizeFact(f)]++
	}
	emitted := make(map[string]bool)
	for _, f := range flattened {
		norm := normalizeFact(f)
		if counts[norm] >= minCorroboration && !emitted[norm] {
			emitted[norm] = true
			add(fmt.Sprintf("%s: %q", agree, f))
		}
	}

	// Numeric mentions shared across articles, surfaced as a single
	// combined sentence.
	if shared := SharedNumbers(articles); len(shared) > 0 {
		add(fmt.Sprintf("%s the same figures: %s", cite, strings.Join(shared, ", ")))
	}

	// Near-duplicate summary sentences; first qualifying pair wins and
	// the earlier article's wording is kept.
	if s := firstSimilarSentence(articles); s != "" {
		add(fmt.Sprintf("%s: %q", note, s))
	}

	return facts
}

// SharedNumbers returns the numeric tokens appearing in the raw text of
// at least two distinct articles, in first-seen order.
func SharedNumbers(articles []model.Article) []string {
	if len(articles) < minArticles {
		return []string{}
	}

	hits := make(map[string]int)
	var order []string
	for _, a := range articles {
		for _, token := range ExtractDataPoints(articleText(a)) {
			if hits[token] == 0 {
				order = append(order, token)
			}
			hits[token]++
		}
	}

	shared := []string{}
	for _, token := range order {
		if hits[token] >= minCorroboration {
			shared = append(shared, token)
		}
		if len(shared) >= maxDataPoints {
			break
		}
	}
	return shared
}

// SharedBaseline builds the richer shared factual baseline: tokens and
// keyword mentions cited by two or more sources, each recovered with a
// surrounding context sentence.
func SharedBaseline(articles []model.Article) []model.BaselineFact {
	baseline := []model.BaselineFact{}
	if len(articles) < minArticles {
		return baseline
	}

	type citation struct {
		sources []string
		cited   map[string]bool
	}
	citations := make(map[string]*citation)
	var order []string

	record := func(token, source string) {
		norm := strings.ToLower(strings.TrimSpace(token))
		if norm == "" {
			return
		}
		c := citations[norm]
		if c == nil {
			c = &citation{cited: make(map[string]bool)}
			citations[norm] = c
			order = append(order, norm)
		}
		if !c.cited[source] {
			c.cited[source] = true
			c.sources = append(c.sources, source)
		}
	}

	for _, a := range articles {
		text := articleText(a)
		for _, token := range ExtractDataPoints(text) {
			record(token, a.Source)
		}
		// Only keyword mentions carry the length floor; data points are
		// recorded as-is, short percentages included.
		lower := strings.ToLower(text)
		for _, kw := range constraintKeywords {
			if len(kw) > 3 && strings.Contains(lower, kw) {
				record(kw, a.Source)
			}
		}
	}

	for _, norm := range order {
		c := citations[norm]
		if len(c.sources) < minCorroboration {
			continue
		}
		baseline = append(baseline, model.BaselineFact{
			Fact:    baselineContext(articles, norm),
			CitedBy: c.sources,
		})
		if len(baseline) >= maxBaselineFacts {
			break
		}
	}
	return baseline
}

// constraintKeywords are the cost, schedule and externality terms that
// qualify as factual constraints when several sources mention them.
var constraintKeywords = []string{
	"cost", "price", "budget", "spending", "investment",
	"timeline", "schedule", "years", "months", "decades",
	"emissions", "carbon", "pollution", "climate",
}

// baselineContext recovers the first sentence containing the fact; the
// bare fact is used when no short context exists.
func baselineContext(articles []model.Article, fact string) string {
	for _, a := range articles {
		for _, sentence := range splitSentences(articleText(a)) {
			if strings.Contains(strings.ToLower(sentence), fact) && len(sentence) <= 200 {
				return sentence
			}
		}
	}
	return fact
}

func flattenKeyFacts(articles []model.Article) []string {
	var all []string
	for _, a := range articles {
		all = append(all, a.KeyFacts...)
	}
	return all
}

func normalizeFact(f string) string {
	return strings.ToLower(strings.TrimSpace(f))
}

// firstSimilarSentence scans summary sentence pairs across distinct
// articles in input order and returns the first sentence of the first
// pair above the similarity threshold.
func firstSimilarSentence(articles []model.Article) string {
	for i, a := range articles {
		for _, sa := range a.Summary {
			for _, b := range articles[i+1:] {
				for _, sb := range b.Summary {
					if Similarity(sa, sb) >= similarityThreshold {
						return sa
					}
				}
			}
		}
	}
	return ""
}
