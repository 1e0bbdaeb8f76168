package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spectralens/commonground/pkg/model"
)

// themeGroup maps a thematic label to the keyword group that triggers it.
type themeGroup struct {
	Label   string
	pattern *regexp.Regexp
}

func newThemeGroup(label string, keywords ...string) themeGroup {
	return themeGroup{
		Label:   label,
		pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(keywords, "|") + `)\b`),
	}
}

// themeVocabulary is the fixed 7-label vocabulary. Presence is binary
// per label; there is no scoring or ranking.
var themeVocabulary = []themeGroup{
	newThemeGroup("economic impact", "cost", "price", "budget", "spending", "economic", "economy", "market"),
	newThemeGroup("safety concerns", "safety", "risk", "danger", "accident", "hazard"),
	newThemeGroup("environmental impact", "environment", "environmental", "climate", "emissions", "carbon", "pollution"),
	newThemeGroup("health considerations", "health", "medical", "disease", "wellness"),
	newThemeGroup("social implications", "social", "community", "family", "families", "people"),
	newThemeGroup("innovation potential", "innovation", "technology", "breakthrough", "advancement"),
	newThemeGroup("employment impact", "jobs", "employment", "workers", "workforce", "labor"),
}

// DetectThemes returns the subset of the theme vocabulary whose keyword
// group has at least one word-boundary hit in the text.
func DetectThemes(text string) []string {
	var labels []string
	for _, g := range themeVocabulary {
		if g.pattern.MatchString(text) {
			labels = append(labels, g.Label)
		}
	}
	return labels
}

// CommonThemes aggregates theme detection across articles and keeps the
// labels hit by at least two distinct articles, in vocabulary order.
// It also applies two coarse heuristics: articles filed under the same
// sub-topic bucket share at least that dimension, and a set that spans
// left and right leaning still examines one issue from both sides.
func CommonThemes(articles []model.Article) []string {
	themes := []string{}
	if len(articles) < minArticles {
		return themes
	}

	counts := make(map[string]int)
	for _, a := range articles {
		for _, label := range DetectThemes(articleText(a)) {
			counts[label]++
		}
	}
	for _, g := range themeVocabulary {
		if counts[g.Label] >= minCorroboration {
			themes = append(themes, fmt.Sprintf("Both perspectives address %s", g.Label))
		}
	}

	if hasOpposingLeanings(articles) {
		themes = append(themes, "Despite political differences, both recognize the multifaceted nature of this issue")
	}
	if bucket := sharedSubTopic(articles); bucket != "" {
		themes = append(themes, fmt.Sprintf("Both examine the %q dimension of this topic", bucket))
	}

	if len(themes) > maxCommonThemes {
		themes = themes[:maxCommonThemes]
	}
	return themes
}

func hasOpposingLeanings(articles []model.Article) bool {
	var left, right bool
	for _, a := range articles {
		switch a.Leaning {
		case model.LeaningLeft, model.LeaningLeanLeft:
			left = true
		case model.LeaningRight, model.LeaningLeanRight:
			right = true
		}
	}
	return left && right
}

func sharedSubTopic(articles []model.Article) string {
	name := articles[0].SubTopicName
	if name == "" {
		return ""
	}
	for _, a := range articles[1:] {
		if a.SubTopicName != name {
			return ""
		}
	}
	return name
}
