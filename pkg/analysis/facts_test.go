package analysis

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spectralens/commonground/pkg/model"
)

func TestSharedFactsExactKeyFactMatch(t *testing.T) {
	articles := []model.Article{
		{
			Source:   "The Nation",
			Summary:  []string{"Regulators approved the proposal"},
			KeyFacts: []string{"10% increase"},
		},
		{
			Source:   "National Review",
			Summary:  []string{"Critics worry the rollout is rushed"},
			KeyFacts: []string{"10% increase"},
		},
	}
	got := SharedFacts(articles)
	if len(got) == 0 {
		t.Fatalf("SharedFacts() = empty, want shared key fact surfaced")
	}
	if got[0] != `Both agree: "10% increase"` {
		t.Errorf("SharedFacts()[0] = %q, want the shared key fact", got[0])
	}
	// The shared numeric token also surfaces as a combined sentence.
	found := false
	for _, f := range got {
		if strings.Contains(f, "Both cite the same figures") && strings.Contains(f, "10%") {
			found = true
		}
	}
	if !found {
		t.Errorf("SharedFacts() = %v, want a combined figures sentence", got)
	}
}

func TestSharedFactsNormalizedMatch(t *testing.T) {
	articles := []model.Article{
		{Source: "A", KeyFacts: []string{"  Record Turnout  "}},
		{Source: "B", KeyFacts: []string{"record turnout"}},
	}
	got := SharedFacts(articles)
	if len(got) != 1 {
		t.Fatalf("SharedFacts() = %v, want exactly one entry", got)
	}
	// First original casing wins for display.
	if got[0] != `Both agree: "  Record Turnout  "` {
		t.Errorf("SharedFacts()[0] = %q", got[0])
	}
}

func TestSharedFactsMultipleSources(t *testing.T) {
	articles := []model.Article{
		{Source: "A", KeyFacts: []string{"new law passed"}},
		{Source: "B", KeyFacts: []string{"new law passed"}},
		{Source: "C", KeyFacts: []string{"unrelated"}},
	}
	got := SharedFacts(articles)
	if len(got) == 0 || !strings.HasPrefix(got[0], "Multiple sources agree") {
		t.Errorf("SharedFacts() = %v, want Multiple sources phrasing", got)
	}
}

func TestSharedFactsSimilarSentences(t *testing.T) {
	articles := []model.Article{
		{Source: "A", Summary: []string{"The new policy expands healthcare coverage for millions of families"}},
		{Source: "B", Summary: []string{"Millions of families gain healthcare coverage under the new policy"}},
	}
	got := SharedFacts(articles)
	want := `Both sources note: "The new policy expands healthcare coverage for millions of families"`
	found := false
	for _, f := range got {
		if f == want {
			found = true
		}
	}
	if !found {
		t.Errorf("SharedFacts() = %v, want %q", got, want)
	}
}

func TestSharedFactsTooFewArticles(t *testing.T) {
	got := SharedFacts([]model.Article{{KeyFacts: []string{"alone"}}})
	if got == nil || len(got) != 0 {
		t.Errorf("SharedFacts() = %v, want empty non-nil slice", got)
	}
}

func TestSharedNumbers(t *testing.T) {
	articles := []model.Article{
		{Summary: []string{"Spending rose 12% to $3B last quarter"}},
		{Summary: []string{"The 12% jump surprised analysts"}},
	}
	got := SharedNumbers(articles)
	want := []string{"12%"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SharedNumbers() = %v, want %v", got, want)
	}
}

func TestSharedBaselineShortDataPoint(t *testing.T) {
	articles := []model.Article{
		{Source: "Reuters", Summary: []string{"Approval rose 10% after the vote"}},
		{Source: "AP", Summary: []string{"Polls confirmed the 10% jump"}},
	}
	got := SharedBaseline(articles)
	if len(got) != 1 {
		t.Fatalf("SharedBaseline() = %v, want the shared 10%% token", got)
	}
	if !strings.Contains(got[0].Fact, "10%") {
		t.Errorf("baseline fact = %q, want a sentence citing 10%%", got[0].Fact)
	}
	if len(got[0].CitedBy) != 2 {
		t.Errorf("CitedBy = %v, want both sources", got[0].CitedBy)
	}
}

func TestSharedBaseline(t *testing.T) {
	articles := []model.Article{
		{Source: "Reuters", Summary: []string{"The project cost reached $4.5B in March"}},
		{Source: "The Guardian", Summary: []string{"Watchdogs confirmed the $4.5B cost overrun"}},
	}
	got := SharedBaseline(articles)
	if len(got) == 0 {
		t.Fatalf("SharedBaseline() = empty, want corroborated facts")
	}
	for _, fact := range got {
		if len(fact.CitedBy) < 2 {
			t.Errorf("baseline fact %q cited by %v, want at least 2 sources", fact.Fact, fact.CitedBy)
		}
	}
}
