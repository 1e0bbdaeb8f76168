package analysis

import "regexp"

// Patterns are applied in priority order. A token can match more than
// one pattern; dedup happens at the string level, not the span level.
var (
	currencyPattern   = regexp.MustCompile(`\$\d{1,3}(?:,\d{3})*(?:\.\d+)?[KMBTkmbt]?`)
	percentPattern    = regexp.MustCompile(`\d+(?:\.\d+)?%`)
	groupedIntPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})+`)
	decimalPattern    = regexp.MustCompile(`\d+\.\d+%?`)
)

// ExtractDataPoints pulls numeric, currency and percentage tokens out of
// free text: currency amounts with unit suffixes ($25B, $2.6T),
// percentages (10%, 13.5%), comma-grouped integers of four or more
// digits (150,000), and bare decimals. Tokens keep first-seen order and
// exact duplicates are dropped.
func ExtractDataPoints(text string) []string {
	seen := make(map[string]bool)
	points := []string{}

	add := func(token string) {
		if len(points) >= maxDataPoints || seen[token] {
			return
		}
		seen[token] = true
		points = append(points, token)
	}

	for _, m := range currencyPattern.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range percentPattern.FindAllString(text, -1) {
		add(m)
	}
	// Grouped integers immediately followed by % belong to the percent
	// pattern; Go regexp has no lookahead, so check the next byte.
	for _, loc := range groupedIntPattern.FindAllStringIndex(text, -1) {
		if loc[1] < len(text) && text[loc[1]] == '%' {
			continue
		}
		add(text[loc[0]:loc[1]])
	}
	for _, m := range decimalPattern.FindAllString(text, -1) {
		add(m)
	}

	return points
}
