package biz

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/spectralens/commonground/pkg/generator"
	"github.com/spectralens/commonground/pkg/model"
)

// TopicGenerator is the remote boundary for topic generation.
// *generator.Client satisfies it.
type TopicGenerator interface {
	Configured() bool
	GenerateTopic(ctx context.Context, query string) (*model.Topic, *generator.Failure)
}

type TopicRepo interface {
	SaveTopic(ctx context.Context, topic *model.Topic) error
	ListTopics(ctx context.Context) ([]*model.Topic, error)
	GetTopic(ctx context.Context, id string) (*model.Topic, error)
}

// ArticleFetcher extracts readable page text for a URL.
type ArticleFetcher interface {
	Excerpt(ctx context.Context, url string) (string, error)
}

type TopicUseCase struct {
	gen     TopicGenerator
	repo    TopicRepo
	fetcher ArticleFetcher
	log     *log.Helper
}

func NewTopicUseCase(gen TopicGenerator, repo TopicRepo, fetcher ArticleFetcher, logger log.Logger) *TopicUseCase {
	return &TopicUseCase{gen: gen, repo: repo, fetcher: fetcher, log: log.NewHelper(logger)}
}

// Generate builds a topic for a free-text query. Any remote failure
// degrades to a fixed mock topic so the endpoint always answers; the
// reason is reported alongside the topic. Generated topics are stored
// best-effort.
func (uc *TopicUseCase) Generate(ctx context.Context, query string) (*model.Topic, generator.Reason, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, "", errors.BadRequest("INVALID_QUERY", "Invalid request. Please provide a valid query string.")
	}

	topic, failure := uc.gen.GenerateTopic(ctx, query)
	var reason generator.Reason
	if failure != nil {
		uc.log.Warnf("topic generation failed (%s), returning mock topic: %v", failure.Reason, failure.Err)
		topic, reason = mockTopic(query), failure.Reason
	} else {
		uc.enrich(ctx, topic)
	}

	if err := uc.repo.SaveTopic(ctx, topic); err != nil {
		uc.log.Warnf("failed to store topic %q: %v", topic.ID, err)
	}
	return topic, reason, nil
}

func (uc *TopicUseCase) List(ctx context.Context) ([]*model.Topic, error) {
	return uc.repo.ListTopics(ctx)
}

func (uc *TopicUseCase) Get(ctx context.Context, id string) (*model.Topic, error) {
	return uc.repo.GetTopic(ctx, id)
}

// enrich backfills thin generated articles with an excerpt of the page
// behind their URL. Fetch errors only log; a generated topic is never
// rejected for an unreachable link.
func (uc *TopicUseCase) enrich(ctx context.Context, topic *model.Topic) {
	if uc.fetcher == nil {
		return
	}
	for si := range topic.SubTopics {
		for ai := range topic.SubTopics[si].Articles {
			article := &topic.SubTopics[si].Articles[ai]
			if article.URL == "" || len(article.Summary) >= 2 {
				continue
			}
			excerpt, err := uc.fetcher.Excerpt(ctx, article.URL)
			if err != nil {
				uc.log.Debugf("could not fetch %s: %v", article.URL, err)
				continue
			}
			if excerpt != "" {
				article.Summary = append(article.Summary, excerpt)
			}
		}
	}
}

var nonKebabPattern = regexp.MustCompile(`[^a-z0-9-]`)

func kebabCase(s string) string {
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), "-")
	return nonKebabPattern.ReplaceAllString(s, "")
}

// mockTopic is the fixed degraded-mode topic: two sub-topics of two
// articles each, spanning the leaning spectrum, keyed off the query.
func mockTopic(query string) *model.Topic {
	kebab := kebabCase(query)
	id := kebab
	if id == "" {
		id = "sample-topic"
	}
	name := query
	if name == "" {
		name = "Sample Topic"
	}
	return &model.Topic{
		ID:          id,
		Name:        name,
		Description: fmt.Sprintf("AI-generated perspective analysis for: %s", query),
		SubTopics: []model.SubTopic{
			{
				ID:          kebab + "-subtopic-1",
				Name:        "Economic Impact",
				Description: "Economic implications and market effects",
				Articles: []model.Article{
					{
						ID:      kebab + "-article-1",
						Title:   "Economic Analysis: Market Perspectives",
						Source:  "The Economist",
						Leaning: model.LeaningCenter,
						Summary: []string{
							"This article examines the economic implications from a neutral, data-driven perspective.",
							"Key market indicators suggest significant impact on global trade patterns.",
							"Experts predict both short-term volatility and long-term structural changes.",
							"Investment strategies are adapting to new economic realities.",
						},
						KeyFacts: []string{"Market analysis", "Trade impact", "Investment trends"},
					},
					{
						ID:      kebab + "-article-2",
						Title:   "Progressive Economic View",
						Source:  "The Guardian",
						Leaning: model.LeaningLeanLeft,
						Summary: []string{
							"A progressive perspective on economic implications and social equity concerns.",
							"Emphasis on protecting vulnerable communities during economic transitions.",
							"Advocates for policy measures that prioritize social welfare.",
							"Calls for systemic reform to address underlying inequalities.",
						},
						KeyFacts: []string{"Social equity", "Policy reform", "Community protection"},
					},
				},
			},
			{
				ID:          kebab + "-subtopic-2",
				Name:        "Policy Implications",
				Description: "Regulatory and policy considerations",
				Articles: []model.Article{
					{
						ID:      kebab + "-article-3",
						Title:   "Conservative Policy Framework",
						Source:  "National Review",
						Leaning: model.LeaningRight,
						Summary: []string{
							"Conservative analysis of policy implications and regulatory approaches.",
							"Emphasizes limited government intervention and market-based solutions.",
							"Argues for preserving individual freedoms and economic competitiveness.",
							"Suggests incremental policy changes over sweeping reform.",
						},
						KeyFacts: []string{"Limited government", "Market solutions", "Individual freedom"},
					},
					{
						ID:      kebab + "-article-4",
						Title:   "Policy Analysis from Center",
						Source:  "Reuters",
						Leaning: model.LeaningNeutral,
						Summary: []string{
							"Factual reporting on policy developments and regulatory changes.",
							"Provides balanced coverage of different policy proposals.",
							"Includes analysis from multiple expert perspectives.",
							"Focuses on verifiable information and data-driven insights.",
						},
						KeyFacts: []string{"Factual reporting", "Expert analysis", "Data-driven"},
					},
				},
			},
		},
	}
}
