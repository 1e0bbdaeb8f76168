package analysis

import (
	"regexp"
	"strings"
)

// similarityThreshold selects "similar enough" sentence pairs when
// matching near-duplicate summary sentences across articles.
const similarityThreshold = 0.3

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// Similarity computes the Jaccard index over the lowercase word sets of
// two text fragments. An empty union yields 0.
func Similarity(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA)
	for w := range setB {
		if !setA[w] {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		set[w] = true
	}
	return set
}
