package analysis

import (
	"regexp"
	"strings"

	"github.com/spectralens/commonground/pkg/model"
)

const (
	maxUnderlyingValues = 4
	maxKeyEmphases      = 4
	maxOmissions        = 3
)

// framingPatterns pick the sentence that carries the article's overall
// narrative stance.
var framingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)essential|crucial|critical|vital|necessary|required`),
	regexp.MustCompile(`(?i)threat|risk|danger|concern|problem|issue`),
	regexp.MustCompile(`(?i)opportunity|benefit|advantage|promise|potential`),
	regexp.MustCompile(`(?i)proves?|demonstrates?|shows?|indicates?|suggests?`),
}

// tonePatterns map language-pattern labels to their trigger regexes.
var tonePatterns = []struct {
	Label   string
	pattern *regexp.Regexp
}{
	{"alarmist", regexp.MustCompile(`(?i)devastating|tragic|alarming|crisis|dangerous`)},
	{"optimistic", regexp.MustCompile(`(?i)promising|breakthrough|revolutionary|game-changer|transformation`)},
	{"nuanced", regexp.MustCompile(`(?i)however|although|despite|but|nevertheless`)},
	{"evidence-based", regexp.MustCompile(`(?i)studies?|research|data|analysis|findings?`)},
}

// perspectiveValueIndicators extend the divergence table with the extra
// synonyms the single-article analysis recognizes.
var perspectiveValueIndicators = []struct {
	Indicator string
	Value     string
}{
	{"safety", "safety"},
	{"risk", "safety"},
	{"security", "security"},
	{"freedom", "freedom"},
	{"autonomy", "freedom"},
	{"equity", "equity"},
	{"access", "equity"},
	{"fairness", "equity"},
	{"growth", "growth"},
	{"efficiency", "growth"},
	{"productivity", "growth"},
	{"environment", "environment"},
	{"climate", "environment"},
	{"sustainability", "environment"},
}

// emphasisTopics is the coarse topic list used for keyEmphases and
// potentialOmissions.
var emphasisTopics = []string{"cost", "safety", "productivity", "environment", "innovation", "social", "health"}

// AnalyzePerspective explains a single article: its framing sentence,
// inferred underlying values, emphasized topics, tone labels, and —
// when sibling articles are supplied — the topics it alone omits.
func AnalyzePerspective(article model.Article, siblings []model.Article) *model.PerspectiveAnalysis {
	allText := strings.ToLower(articleText(article))

	framing := ""
	for _, sentence := range article.Summary {
		for _, p := range framingPatterns {
			if p.MatchString(sentence) {
				framing = sentence
				break
			}
		}
		if framing != "" {
			break
		}
	}
	if framing == "" && len(article.Summary) > 0 {
		framing = article.Summary[0]
	}

	values := []string{}
	seenValue := make(map[string]bool)
	for _, vi := range perspectiveValueIndicators {
		if len(values) >= maxUnderlyingValues {
			break
		}
		if strings.Contains(allText, vi.Indicator) && !seenValue[vi.Value] {
			seenValue[vi.Value] = true
			values = append(values, vi.Value)
		}
	}

	emphases := []string{}
	for _, topic := range emphasisTopics {
		if len(emphases) >= maxKeyEmphases {
			break
		}
		for _, sentence := range article.Summary {
			if strings.Contains(strings.ToLower(sentence), topic) {
				emphases = append(emphases, topic)
				break
			}
		}
	}

	omissions := []string{}
	if len(siblings) > 0 {
		for _, topic := range emphasisTopics {
			if len(omissions) >= maxOmissions {
				break
			}
			if strings.Contains(allText, topic) {
				continue
			}
			for _, sib := range siblings {
				if sib.ID == article.ID {
					continue
				}
				if strings.Contains(strings.ToLower(articleText(sib)), topic) {
					omissions = append(omissions, topic)
					break
				}
			}
		}
	}

	tones := []string{}
	for _, tp := range tonePatterns {
		if tp.pattern.MatchString(allText) {
			tones = append(tones, tp.Label)
		}
	}

	return &model.PerspectiveAnalysis{
		Framing:            framing,
		UnderlyingValues:   values,
		KeyEmphases:        emphases,
		PotentialOmissions: omissions,
		LanguagePatterns:   tones,
	}
}
