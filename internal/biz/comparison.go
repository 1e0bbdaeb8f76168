package biz

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/spectralens/commonground/pkg/analysis"
	"github.com/spectralens/commonground/pkg/generator"
	"github.com/spectralens/commonground/pkg/model"
)

// ComparisonGenerator is the remote analysis boundary consumed by the
// comparison use case. *generator.Client satisfies it.
type ComparisonGenerator interface {
	Configured() bool
	AnalyzeComparison(ctx context.Context, articles []model.Article) (map[string]any, *generator.Failure)
}

// Outcome is a comparison result tagged with how it was produced. Reason
// is empty when the remote path produced the result, otherwise it names
// the fallback cause.
type Outcome struct {
	Result     *model.ComparisonResult
	Reason     generator.Reason
	RetryAfter int
}

type ComparisonUseCase struct {
	gen ComparisonGenerator
	log *log.Helper
}

func NewComparisonUseCase(gen ComparisonGenerator, logger log.Logger) *ComparisonUseCase {
	return &ComparisonUseCase{gen: gen, log: log.NewHelper(logger)}
}

// Compare runs the remote analysis when the client is configured and the
// response survives normalization, and the heuristic engine otherwise.
// It never fails once the article set passes validation.
func (uc *ComparisonUseCase) Compare(ctx context.Context, articles []model.Article) (*Outcome, error) {
	if len(articles) < 2 {
		return nil, errors.BadRequest("INVALID_ARTICLES", "Please provide at least 2 articles to compare.")
	}
	obj, failure := uc.gen.AnalyzeComparison(ctx, articles)
	if failure != nil {
		uc.log.Warnf("remote comparison failed (%s), using heuristic analysis: %v", failure.Reason, failure.Err)
		return uc.fallback(articles, failure.Reason, failure.RetryAfter), nil
	}
	result, ok := normalizeComparison(obj)
	if !ok {
		uc.log.Warnf("remote comparison returned an unusable structure, using heuristic analysis")
		return uc.fallback(articles, generator.ReasonInvalidStructure, 0), nil
	}
	return &Outcome{Result: result}, nil
}

// Analytical runs the richer local analysis. There is no remote path for
// this shape.
func (uc *ComparisonUseCase) Analytical(ctx context.Context, articles []model.Article) (*model.AnalyticalComparison, error) {
	if len(articles) < 2 {
		return nil, errors.BadRequest("INVALID_ARTICLES", "Please provide at least 2 articles to compare.")
	}
	return analysis.Analyze(articles), nil
}

// Perspective analyzes one article's framing against its siblings.
func (uc *ComparisonUseCase) Perspective(ctx context.Context, article model.Article, siblings []model.Article) (*model.PerspectiveAnalysis, error) {
	if strings.TrimSpace(article.Title) == "" && len(article.Summary) == 0 && len(article.KeyFacts) == 0 {
		return nil, errors.BadRequest("INVALID_ARTICLE", "Please provide an article to analyze.")
	}
	return analysis.AnalyzePerspective(article, siblings), nil
}

func (uc *ComparisonUseCase) fallback(articles []model.Article, reason generator.Reason, retryAfter int) *Outcome {
	return &Outcome{
		Result:     analysis.Compare(articles),
		Reason:     reason,
		RetryAfter: retryAfter,
	}
}

// normalizeComparison checks that a parsed response carries all four
// result fields as arrays, then keeps only the string elements of each
// and applies the per-field caps. Any missing or mistyped field rejects
// the whole response; a partial remote result is never mixed with
// heuristic output.
func normalizeComparison(obj map[string]any) (*model.ComparisonResult, bool) {
	sharedFacts, ok := stringList(obj, "sharedFacts", model.MaxSharedFacts)
	if !ok {
		return nil, false
	}
	commonThemes, ok := stringList(obj, "commonThemes", model.MaxCommonThemes)
	if !ok {
		return nil, false
	}
	differences, ok := stringList(obj, "differences", model.MaxDifferences)
	if !ok {
		return nil, false
	}
	dataPoints, ok := stringList(obj, "dataPoints", model.MaxDataPoints)
	if !ok {
		return nil, false
	}
	return &model.ComparisonResult{
		SharedFacts:  sharedFacts,
		CommonThemes: commonThemes,
		Differences:  differences,
		DataPoints:   dataPoints,
	}, true
}

func stringList(obj map[string]any, key string, max int) ([]string, bool) {
	raw, present := obj[key]
	if !present {
		return nil, false
	}
	items, isSlice := raw.([]any)
	if !isSlice {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, isString := item.(string)
		if !isString {
			continue
		}
		if len(out) >= max {
			break
		}
		out = append(out, s)
	}
	return out, true
}
