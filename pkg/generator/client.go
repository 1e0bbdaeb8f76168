// Package generator is the boundary to the remote text-generation
// service. It builds prompts from article sets, invokes the chat model
// under a hard wall-clock timeout, and repairs the possibly-truncated
// structured text that comes back. Every failure is typed so callers
// can fall back to the heuristic engine.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bytedance/gg/gson"
	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/spectralens/commonground/pkg/logger"
	"github.com/spectralens/commonground/pkg/model"
)

// DefaultTimeout bounds one generation call. 55 seconds stays under
// common platform request-duration ceilings with margin to spare.
const DefaultTimeout = 55 * time.Second

// placeholderAPIKey is the unset sentinel shipped in config templates;
// it counts as no credential at all.
const placeholderAPIKey = "your_api_key_here"

// Config holds the remote generator settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
	// QPS and RPM gate outbound calls; zero values disable the gate.
	QPS int
	RPM int
}

// Client talks to the remote generator. One logical call per
// comparison request, no automatic retry.
type Client struct {
	cfg       Config
	chatModel einomodel.ChatModel
	limiter   *rate.Limiter
}

// New builds a client. An absent or placeholder credential yields a
// client whose calls fail fast with ReasonUnconfigured instead of a
// construction error, so the service can run in heuristic-only mode.
func New(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{cfg: cfg}

	if cfg.RPM > 0 && cfg.QPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RPM)/60.0), cfg.QPS)
	}

	if !c.Configured() {
		logger.Log.Warn("generator API key not configured, remote analysis disabled")
		return c, nil
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("chat model init: %w", err)
	}
	c.chatModel = chatModel
	return c, nil
}

// Configured reports whether a usable credential is present. It is
// checked before any network I/O.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != "" && c.cfg.APIKey != placeholderAPIKey
}

func (c *Client) timeout() time.Duration {
	if c.cfg.Timeout > 0 {
		return c.cfg.Timeout
	}
	return DefaultTimeout
}

// generate performs the single raced call: the model generation against
// the timeout, with the losing branch torn down via context
// cancellation.
func (c *Client) generate(ctx context.Context, prompt string) (string, *Failure) {
	if !c.Configured() || c.chatModel == nil {
		return "", newFailure(ReasonUnconfigured, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", classifyRemoteError(err)
		}
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: "You are a JSON generator. Output only the JSON string."},
		{Role: schema.User, Content: prompt},
	}

	start := time.Now()
	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", classifyRemoteError(err)
	}
	logger.Log.Debugf("generation completed in %s: %s", time.Since(start), gson.ToString(resp))

	return resp.Content, nil
}

// AnalyzeComparison asks the remote generator to compare the articles
// and returns the parsed (but not yet validated) JSON object.
func (c *Client) AnalyzeComparison(ctx context.Context, articles []model.Article) (map[string]any, *Failure) {
	raw, fail := c.generate(ctx, BuildComparisonPrompt(articles))
	if fail != nil {
		return nil, fail
	}
	obj, err := ParseObject(raw)
	if err != nil {
		logger.Log.Warnf("comparison response unparseable: %v", err)
		return nil, newFailure(ReasonParseError, err)
	}
	return obj, nil
}

// GenerateTopic asks the remote generator for a knowledge map.
func (c *Client) GenerateTopic(ctx context.Context, query string) (*model.Topic, *Failure) {
	raw, fail := c.generate(ctx, BuildTopicPrompt(query))
	if fail != nil {
		return nil, fail
	}

	cleaned := CleanResponse(raw)
	var topic model.Topic
	if err := json.Unmarshal([]byte(cleaned), &topic); err != nil {
		if err2 := json.Unmarshal([]byte(repairTruncated(cleaned)), &topic); err2 != nil {
			logger.Log.Warnf("topic response unparseable: %v", err)
			return nil, newFailure(ReasonParseError, err)
		}
	}

	if topic.ID == "" || topic.Name == "" || len(topic.SubTopics) == 0 {
		return nil, newFailure(ReasonInvalidStructure, fmt.Errorf("topic missing required fields"))
	}
	return &topic, nil
}
