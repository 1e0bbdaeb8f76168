package generator

import (
	"fmt"
	"strings"

	"github.com/spectralens/commonground/pkg/model"
)

// BuildComparisonPrompt renders the comparison instruction: every
// article with its title, source, leaning label, sub-topic, key facts
// and numbered summary bullets, followed by the output-shape contract.
func BuildComparisonPrompt(articles []model.Article) string {
	var sb strings.Builder

	sb.WriteString("You are an expert analyst specializing in finding common ground and nuanced differences between articles with different political perspectives. Your goal is to help readers discover shared facts and overlapping data points even when perspectives differ.\n\n")
	sb.WriteString("ARTICLES TO COMPARE:\n")
	for i, a := range articles {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		fmt.Fprintf(&sb, "\nARTICLE %d:\n", i+1)
		fmt.Fprintf(&sb, "Title: %q\n", a.Title)
		fmt.Fprintf(&sb, "Source: %s (%s leaning)\n", a.Source, leaningLabel(a.Leaning))
		subTopic := a.SubTopicName
		if subTopic == "" {
			subTopic = "N/A"
		}
		fmt.Fprintf(&sb, "Sub-topic: %s\n", subTopic)
		fmt.Fprintf(&sb, "Key Facts: %s\n", strings.Join(a.KeyFacts, "; "))
		sb.WriteString("Summary:\n")
		for j, point := range a.Summary {
			fmt.Fprintf(&sb, "  %d. %s\n", j+1, point)
		}
	}

	sb.WriteString(`
TASK: Perform a deep comparison analysis and identify:

1. SHARED FACTS & DATA POINTS: specific facts, statistics, numbers, percentages or dates that appear in MULTIPLE articles. Even if wording differs slightly, if the core fact is the same, include it. Maximum 5.
2. COMMON THEMES: conceptual areas both perspectives address, even with different conclusions. Maximum 4.
3. KEY DIFFERENCES: where the perspectives genuinely diverge in emphasis, framing, or conclusions. Avoid simple left/right labeling. Maximum 3.
4. DATA POINTS: all specific numerical data appearing in 2+ articles, as short tokens. Maximum 10.

OUTPUT FORMAT: Return ONLY valid JSON matching this exact structure:

{
  "sharedFacts": ["Both sources cite the $25B annual budget"],
  "commonThemes": ["Both perspectives address economic implications"],
  "differences": ["Specific difference in emphasis or interpretation"],
  "dataPoints": ["$25B", "10%", "150,000"]
}

IMPORTANT:
- Return ONLY the JSON object, no markdown, no code blocks, no explanations
- Ensure all arrays contain only strings (no nested objects)
- Maximum 5 sharedFacts, 4 commonThemes, 3 differences, 10 dataPoints
- Only cite facts that are actually present in the articles
- If no shared facts/data exist, return empty arrays

Perform the analysis now:`)

	return sb.String()
}

// BuildTopicPrompt renders the knowledge-map instruction for a query.
func BuildTopicPrompt(query string) string {
	var sb strings.Builder

	sb.WriteString("You are an educational tool that creates balanced, multi-perspective knowledge maps for complex topics. Your goal is to help readers understand the whole board of a debate by presenting diverse viewpoints.\n\n")
	fmt.Fprintf(&sb, "TOPIC: %q\n\n", query)
	sb.WriteString(`TASK: Generate a knowledge map with:

1. MAIN TOPIC: a clear, concise topic name and a 1-2 sentence description of the debate.
2. SUB-TOPICS: 2-3 distinct, non-overlapping angles of the main topic, each with a short description.
3. ARTICLES: 2-5 representative articles per sub-topic from diverse political leanings. Each article needs:
   - title: a realistic headline, 10-15 words
   - source: a realistic news outlet matching the leaning
   - leaning: ONE of "left", "lean-left", "center", "lean-right", "right", "neutral"
   - summary: 4-5 comprehensive bullet points with specific details, data points and evidence (2-3 sentences each, not fragments)
   - keyFacts: 3-5 concise factual data points (numbers, percentages, specific claims)
   - url: include ONLY for real articles, omit otherwise

REQUIREMENTS:
- Each sub-topic must include at minimum one left-leaning and one right-leaning article
- Generate IDs in kebab-case (lowercase, hyphens instead of spaces)

OUTPUT FORMAT: Return ONLY valid JSON matching this exact structure, no markdown, no code blocks:

{
  "id": "kebab-case-id-from-topic-name",
  "name": "Exact Topic Name",
  "description": "Brief description of the topic and its controversy",
  "subTopics": [
    {
      "id": "kebab-case-subtopic-id",
      "name": "Sub-Topic Name",
      "description": "What aspect this sub-topic covers",
      "articles": [
        {
          "id": "kebab-case-article-id",
          "title": "Article Title",
          "source": "News Source Name",
          "leaning": "left",
          "summary": ["First comprehensive bullet point...", "Second bullet point..."],
          "keyFacts": ["Specific fact or statistic"]
        }
      ]
    }
  ]
}

`)
	fmt.Fprintf(&sb, "Generate the knowledge map now for: %q", query)
	return sb.String()
}

// leaningLabel renders a leaning for prompt display: "lean-left" -> "LEAN LEFT".
func leaningLabel(l model.Leaning) string {
	return strings.ToUpper(strings.ReplaceAll(string(l), "-", " "))
}
