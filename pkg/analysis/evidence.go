package analysis

import (
	"regexp"
	"strings"

	"github.com/spectralens/commonground/pkg/model"
)

const (
	maxEmphasized = 3
	maxOmitted    = 4
)

// topicUniverse is the fixed term list checked for emphasis and
// omission across a comparison set.
var topicUniverse = []string{
	"cost", "economics", "safety", "risk", "environment", "climate",
	"productivity", "efficiency", "innovation", "technology",
	"social", "health", "mental", "community", "workers",
	"jobs", "employment", "freedom", "autonomy", "security",
	"equity", "access", "waste", "storage", "timeline", "schedule",
}

var (
	digitPattern    = regexp.MustCompile(`\d`)
	researchPattern = regexp.MustCompile(`(?i)study|research|analysis|data|report|findings`)
)

// AnalyzeEvidence produces one pattern per input article, in order:
// which summary sentences it emphasizes (numeric, research-citing, or
// substantial) and which topics its siblings raise that it does not.
func AnalyzeEvidence(articles []model.Article) []model.EvidencePattern {
	patterns := []model.EvidencePattern{}
	if len(articles) < minArticles {
		return patterns
	}

	texts := make([]string, len(articles))
	for i, a := range articles {
		texts[i] = strings.ToLower(articleText(a))
	}

	// The comparison set's topic universe: terms present in any article.
	var present []string
	for _, topic := range topicUniverse {
		for _, text := range texts {
			if strings.Contains(text, topic) {
				present = append(present, topic)
				break
			}
		}
	}

	for i, a := range articles {
		emphasized := []string{}
		for _, sentence := range a.Summary {
			if len(emphasized) >= maxEmphasized {
				break
			}
			if isEmphasized(sentence) {
				emphasized = append(emphasized, sentence)
			}
		}

		omitted := []string{}
		for _, topic := range present {
			if len(omitted) >= maxOmitted {
				break
			}
			if strings.Contains(texts[i], topic) {
				continue
			}
			for j := range articles {
				if j != i && strings.Contains(texts[j], topic) {
					omitted = append(omitted, topic)
					break
				}
			}
		}

		patterns = append(patterns, model.EvidencePattern{
			ArticleID:          a.ID,
			Source:             a.Source,
			Leaning:            a.Leaning,
			EmphasizedEvidence: emphasized,
			OmittedTopics:      omitted,
		})
	}
	return patterns
}

// isEmphasized marks sentences carrying a number, research language, or
// enough length to count as a substantial claim.
func isEmphasized(sentence string) bool {
	return digitPattern.MatchString(sentence) ||
		researchPattern.MatchString(sentence) ||
		len(sentence) > substantialSentenceLen
}
