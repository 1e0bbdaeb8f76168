package model

// Leaning is the political-orientation label attached to an article source.
type Leaning string

const (
	LeaningLeft      Leaning = "left"
	LeaningLeanLeft  Leaning = "lean-left"
	LeaningCenter    Leaning = "center"
	LeaningLeanRight Leaning = "lean-right"
	LeaningRight     Leaning = "right"
	LeaningNeutral   Leaning = "neutral"
)

// Valid reports whether l is one of the six known leaning values.
func (l Leaning) Valid() bool {
	switch l {
	case LeaningLeft, LeaningLeanLeft, LeaningCenter, LeaningLeanRight, LeaningRight, LeaningNeutral:
		return true
	}
	return false
}

// Article is one analyzed unit entering a comparison.
// Summary is ordered: "first sentence" heuristics depend on it.
type Article struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Source       string   `json:"source"`
	Leaning      Leaning  `json:"leaning"`
	Summary      []string `json:"summary"`
	KeyFacts     []string `json:"keyFacts,omitempty"`
	URL          string   `json:"url,omitempty"`
	SubTopicName string   `json:"subTopicName,omitempty"`
}

// Per-field caps for ComparisonResult, shared by every analysis path.
const (
	MaxSharedFacts  = 5
	MaxCommonThemes = 4
	MaxDifferences  = 3
	MaxDataPoints   = 10
)

// ComparisonResult is the flat comparison shape returned by both the
// remote and the heuristic analysis paths. All four fields are always
// non-nil string slices.
type ComparisonResult struct {
	SharedFacts  []string `json:"sharedFacts"`
	CommonThemes []string `json:"commonThemes"`
	Differences  []string `json:"differences"`
	DataPoints   []string `json:"dataPoints"`
}

// EmptyComparisonResult returns a result with four empty, non-nil slices.
func EmptyComparisonResult() *ComparisonResult {
	return &ComparisonResult{
		SharedFacts:  []string{},
		CommonThemes: []string{},
		Differences:  []string{},
		DataPoints:   []string{},
	}
}

// BaselineFact is one shared fact with the sources corroborating it.
type BaselineFact struct {
	Fact    string   `json:"fact"`
	CitedBy []string `json:"citedBy"`
}

// Framing captures how one article frames a claim area.
type Framing struct {
	Leaning         Leaning `json:"leaning"`
	Source          string  `json:"source"`
	Framing         string  `json:"framing"`
	UnderlyingValue string  `json:"underlyingValue,omitempty"`
}

// Divergence groups the competing framings of one claim area.
type Divergence struct {
	Claim    string    `json:"claim"`
	Framings []Framing `json:"framings"`
}

// EvidencePattern records what one article emphasizes and omits
// relative to the rest of the comparison set.
type EvidencePattern struct {
	ArticleID          string   `json:"articleId"`
	Source             string   `json:"source"`
	Leaning            Leaning  `json:"leaning"`
	EmphasizedEvidence []string `json:"emphasizedEvidence"`
	OmittedTopics      []string `json:"omittedTopics"`
}

// AnalyticalComparison is the richer, structure-preserving comparison
// produced by the heuristic engine.
type AnalyticalComparison struct {
	SharedBaseline   []BaselineFact    `json:"sharedBaseline"`
	Divergences      []Divergence      `json:"divergences"`
	EvidenceAnalysis []EvidencePattern `json:"evidenceAnalysis"`
}

// PerspectiveAnalysis explains a single article's framing and emphases.
// PotentialOmissions is only meaningful when sibling articles were supplied.
type PerspectiveAnalysis struct {
	Framing            string   `json:"framing"`
	UnderlyingValues   []string `json:"underlyingValues"`
	KeyEmphases        []string `json:"keyEmphases"`
	PotentialOmissions []string `json:"potentialOmissions"`
	LanguagePatterns   []string `json:"languagePatterns"`
}

// SubTopic is one thematic bucket of a topic.
type SubTopic struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Articles    []Article `json:"articles"`
}

// Topic is a generated knowledge map: a debate broken into sub-topics
// with articles spanning the political spectrum.
type Topic struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	SubTopics   []SubTopic `json:"subTopics"`
}
