package analysis

import (
	"strings"

	"github.com/spectralens/commonground/pkg/model"
)

const maxDivergences = 5

// claimArea is one fixed topical bucket used to group articles for
// divergence analysis.
type claimArea struct {
	Claim    string
	Keywords []string
}

// claimAreas are iterated in order; the emitted divergences preserve it.
var claimAreas = []claimArea{
	{"Economic impact", []string{"cost", "price", "economics", "spending"}},
	{"Safety considerations", []string{"safety", "risk", "danger", "accident", "disaster"}},
	{"Environmental impact", []string{"environment", "climate", "emissions", "carbon"}},
	{"Performance outcomes", []string{"productivity", "efficiency", "output", "performance"}},
	{"Technological potential", []string{"innovation", "technology", "advancement"}},
	{"Social impact", []string{"social", "community", "people", "workers", "families"}},
}

// valueIndicators map a framing keyword to an inferred underlying value.
// Ordered: the first indicator found in the matched sentences wins.
var valueIndicators = []struct {
	Indicator string
	Value     string
}{
	{"safety", "safety"},
	{"risk", "safety"},
	{"cost", "growth"},
	{"efficiency", "growth"},
	{"equity", "equity"},
	{"access", "equity"},
	{"freedom", "freedom"},
	{"autonomy", "freedom"},
	{"security", "security"},
	{"defense", "security"},
	{"environment", "environment"},
	{"climate", "environment"},
}

// MapDivergences collects, for each claim area hit by at least two
// articles, how each article frames that area and what value appears to
// motivate the framing. An entry is emitted when the qualifying
// articles span two or more leanings or at least one non-empty framing
// exists.
func MapDivergences(articles []model.Article) []model.Divergence {
	divergences := []model.Divergence{}
	if len(articles) < minArticles {
		return divergences
	}

	for _, area := range claimAreas {
		var framings []model.Framing
		leanings := make(map[model.Leaning]bool)
		anyFraming := false

		for _, a := range articles {
			relevant := relevantEntries(a, area.Keywords)
			if len(relevant) == 0 {
				continue
			}
			f := model.Framing{
				Leaning:         a.Leaning,
				Source:          a.Source,
				Framing:         truncate(relevant[0], framingMaxLen),
				UnderlyingValue: inferValue(relevant),
			}
			framings = append(framings, f)
			leanings[a.Leaning] = true
			if f.Framing != "" {
				anyFraming = true
			}
		}

		if len(framings) < minCorroboration {
			continue
		}
		if len(leanings) >= 2 || anyFraming {
			divergences = append(divergences, model.Divergence{Claim: area.Claim, Framings: framings})
		}
		if len(divergences) >= maxDivergences {
			break
		}
	}
	return divergences
}

// relevantEntries returns the article's summary and key-fact entries
// containing any of the keywords, in presentation order.
func relevantEntries(a model.Article, keywords []string) []string {
	var relevant []string
	for _, entry := range articleEntries(a) {
		lower := strings.ToLower(entry)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				relevant = append(relevant, entry)
				break
			}
		}
	}
	return relevant
}

// inferValue scans the matched sentences for value indicators; first
// hit wins, at most one value per framing.
func inferValue(sentences []string) string {
	combined := strings.ToLower(strings.Join(sentences, " "))
	for _, vi := range valueIndicators {
		if strings.Contains(combined, vi.Indicator) {
			return vi.Value
		}
	}
	return ""
}
