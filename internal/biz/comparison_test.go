package biz

import (
	"context"
	"errors"
	"testing"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/spectralens/commonground/pkg/generator"
	"github.com/spectralens/commonground/pkg/model"
)

// mockGenerator scripts the remote analysis boundary.
type mockGenerator struct {
	obj     map[string]any
	failure *generator.Failure
}

func (m *mockGenerator) Configured() bool { return true }

func (m *mockGenerator) AnalyzeComparison(ctx context.Context, articles []model.Article) (map[string]any, *generator.Failure) {
	return m.obj, m.failure
}

func twoArticles() []model.Article {
	return []model.Article{
		{ID: "a1", Source: "A", Leaning: model.LeaningLeft, KeyFacts: []string{"10% increase"}},
		{ID: "a2", Source: "B", Leaning: model.LeaningRight, KeyFacts: []string{"10% increase"}},
	}
}

func validRemoteObject() map[string]any {
	return map[string]any{
		"sharedFacts":  []any{"both cite the 10% increase"},
		"commonThemes": []any{"economic impact"},
		"differences":  []any{"emphasis differs"},
		"dataPoints":   []any{"10%"},
	}
}

func TestCompareRemoteSuccess(t *testing.T) {
	gen := &mockGenerator{obj: validRemoteObject()}
	uc := NewComparisonUseCase(gen, log.DefaultLogger)

	outcome, err := uc.Compare(context.Background(), twoArticles())
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if outcome.Reason != "" {
		t.Errorf("Reason = %q, want empty on remote success", outcome.Reason)
	}
	if len(outcome.Result.SharedFacts) != 1 || outcome.Result.SharedFacts[0] != "both cite the 10% increase" {
		t.Errorf("SharedFacts = %v", outcome.Result.SharedFacts)
	}
}

func TestCompareRejectsSmallSets(t *testing.T) {
	uc := NewComparisonUseCase(&mockGenerator{}, log.DefaultLogger)
	for _, articles := range [][]model.Article{nil, {}, twoArticles()[:1]} {
		_, err := uc.Compare(context.Background(), articles)
		if err == nil {
			t.Fatalf("Compare(%d articles) error = nil, want bad request", len(articles))
		}
		if kerrors.Code(err) != 400 {
			t.Errorf("Compare(%d articles) code = %d, want 400", len(articles), kerrors.Code(err))
		}
	}
}

func TestCompareFallsBackOnFailure(t *testing.T) {
	gen := &mockGenerator{failure: &generator.Failure{
		Reason:     generator.ReasonRateLimited,
		Err:        errors.New("429"),
		RetryAfter: 60,
	}}
	uc := NewComparisonUseCase(gen, log.DefaultLogger)

	outcome, err := uc.Compare(context.Background(), twoArticles())
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if outcome.Reason != generator.ReasonRateLimited {
		t.Errorf("Reason = %q, want rate-limit", outcome.Reason)
	}
	if outcome.RetryAfter != 60 {
		t.Errorf("RetryAfter = %d, want 60", outcome.RetryAfter)
	}
	// Heuristic output still surfaces the shared key fact.
	if len(outcome.Result.SharedFacts) == 0 {
		t.Errorf("fallback result has no shared facts: %+v", outcome.Result)
	}
}

func TestCompareRejectsPartialStructure(t *testing.T) {
	obj := validRemoteObject()
	delete(obj, "dataPoints")
	uc := NewComparisonUseCase(&mockGenerator{obj: obj}, log.DefaultLogger)

	outcome, err := uc.Compare(context.Background(), twoArticles())
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if outcome.Reason != generator.ReasonInvalidStructure {
		t.Errorf("Reason = %q, want invalid-structure", outcome.Reason)
	}
	// The partial remote result must be discarded wholesale.
	for _, f := range outcome.Result.SharedFacts {
		if f == "both cite the 10% increase" {
			t.Error("remote field survived a rejected response")
		}
	}
}

func TestCompareRejectsMistypedField(t *testing.T) {
	obj := validRemoteObject()
	obj["commonThemes"] = "not an array"
	uc := NewComparisonUseCase(&mockGenerator{obj: obj}, log.DefaultLogger)

	outcome, err := uc.Compare(context.Background(), twoArticles())
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if outcome.Reason != generator.ReasonInvalidStructure {
		t.Errorf("Reason = %q, want invalid-structure", outcome.Reason)
	}
}

func TestNormalizeComparisonCapsAndFilters(t *testing.T) {
	obj := map[string]any{
		"sharedFacts":  []any{"1", "2", "3", "4", "5", "6", "7"},
		"commonThemes": []any{"a", 42, "b", map[string]any{"x": 1}, "c"},
		"differences":  []any{},
		"dataPoints":   []any{"10%"},
	}
	result, ok := normalizeComparison(obj)
	if !ok {
		t.Fatal("normalizeComparison() rejected a valid object")
	}
	if len(result.SharedFacts) != 5 {
		t.Errorf("SharedFacts = %v, want capped at 5", result.SharedFacts)
	}
	if len(result.CommonThemes) != 3 {
		t.Errorf("CommonThemes = %v, want non-strings dropped", result.CommonThemes)
	}
	if len(result.Differences) != 0 || result.Differences == nil {
		t.Errorf("Differences = %v, want empty non-nil", result.Differences)
	}
}

func TestAnalyticalValidation(t *testing.T) {
	uc := NewComparisonUseCase(&mockGenerator{}, log.DefaultLogger)
	if _, err := uc.Analytical(context.Background(), nil); err == nil {
		t.Error("Analytical(nil) error = nil, want bad request")
	}
	got, err := uc.Analytical(context.Background(), twoArticles())
	if err != nil {
		t.Fatalf("Analytical() error = %v", err)
	}
	if got.SharedBaseline == nil || got.Divergences == nil || got.EvidenceAnalysis == nil {
		t.Errorf("Analytical() returned nil sections: %+v", got)
	}
}
