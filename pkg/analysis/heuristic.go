package analysis

import (
	"fmt"
	"strings"

	"github.com/spectralens/commonground/pkg/model"
)

// Analyze composes the full structured comparison from the heuristic
// signals. It is pure: identical article sets produce identical output,
// and sets of fewer than two articles yield empty (non-nil) structures
// rather than an error.
func Analyze(articles []model.Article) *model.AnalyticalComparison {
	return &model.AnalyticalComparison{
		SharedBaseline:   SharedBaseline(articles),
		Divergences:      MapDivergences(articles),
		EvidenceAnalysis: AnalyzeEvidence(articles),
	}
}

// Compare projects the heuristic signals onto the flat comparison shape
// shared with the remote analysis path.
func Compare(articles []model.Article) *model.ComparisonResult {
	result := model.EmptyComparisonResult()
	if len(articles) < minArticles {
		return result
	}

	result.SharedFacts = SharedFacts(articles)
	result.CommonThemes = CommonThemes(articles)
	result.Differences = describeDivergences(MapDivergences(articles))
	result.DataPoints = SharedNumbers(articles)
	return result
}

// describeDivergences renders structured divergences as short display
// strings for the flat result.
func describeDivergences(divergences []model.Divergence) []string {
	differences := []string{}
	for _, d := range divergences {
		if len(differences) >= maxDifferences {
			break
		}
		differences = append(differences, describeDivergence(d))
	}
	return differences
}

func describeDivergence(d model.Divergence) string {
	// Prefer naming the competing values when two framings disagree.
	for i, a := range d.Framings {
		for _, b := range d.Framings[i+1:] {
			if a.UnderlyingValue != "" && b.UnderlyingValue != "" && a.UnderlyingValue != b.UnderlyingValue {
				return fmt.Sprintf("%s: %s stresses %s while %s stresses %s",
					d.Claim, a.Source, a.UnderlyingValue, b.Source, b.UnderlyingValue)
			}
		}
	}
	if labels := distinctLeanings(d.Framings); len(labels) >= 2 {
		return fmt.Sprintf("%s: %s sources frame this differently",
			d.Claim, strings.Join(labels, " and "))
	}
	return fmt.Sprintf("%s: sources diverge in emphasis and framing", d.Claim)
}

func distinctLeanings(framings []model.Framing) []string {
	seen := make(map[model.Leaning]bool)
	var labels []string
	for _, f := range framings {
		if !seen[f.Leaning] {
			seen[f.Leaning] = true
			labels = append(labels, leaningLabel(f.Leaning))
		}
	}
	return labels
}

// leaningLabel renders a leaning for display: "lean-left" -> "lean left".
func leaningLabel(l model.Leaning) string {
	return strings.ReplaceAll(string(l), "-", " ")
}
