package service

import (
	nethttp "net/http"
	"strconv"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/spectralens/commonground/internal/biz"
	"github.com/spectralens/commonground/pkg/generator"
	"github.com/spectralens/commonground/pkg/model"
)

// ComparisonService exposes the comparison and topic endpoints over
// kratos HTTP. Handlers return kratos errors for invalid input and
// always answer 200 with a usable body otherwise; degraded results are
// flagged through response headers, never through the status code.
type ComparisonService struct {
	ucComparison *biz.ComparisonUseCase
	ucTopic      *biz.TopicUseCase
	log          *log.Helper
}

func NewComparisonService(ucComparison *biz.ComparisonUseCase, ucTopic *biz.TopicUseCase, logger log.Logger) *ComparisonService {
	return &ComparisonService{
		ucComparison: ucComparison,
		ucTopic:      ucTopic,
		log:          log.NewHelper(logger),
	}
}

type compareRequest struct {
	Articles []model.Article `json:"articles"`
}

type perspectiveRequest struct {
	Article  model.Article   `json:"article"`
	Siblings []model.Article `json:"siblings"`
}

type topicRequest struct {
	Query string `json:"query"`
}

func (s *ComparisonService) Compare(ctx khttp.Context) error {
	var req compareRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("INVALID_BODY", "request body must be a JSON object")
	}
	outcome, err := s.ucComparison.Compare(ctx, req.Articles)
	if err != nil {
		return err
	}
	applyFallbackHeaders(ctx, outcome.Reason, outcome.RetryAfter)
	return ctx.Result(nethttp.StatusOK, outcome.Result)
}

func (s *ComparisonService) Analytical(ctx khttp.Context) error {
	var req compareRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("INVALID_BODY", "request body must be a JSON object")
	}
	result, err := s.ucComparison.Analytical(ctx, req.Articles)
	if err != nil {
		return err
	}
	return ctx.Result(nethttp.StatusOK, result)
}

func (s *ComparisonService) Perspective(ctx khttp.Context) error {
	var req perspectiveRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("INVALID_BODY", "request body must be a JSON object")
	}
	result, err := s.ucComparison.Perspective(ctx, req.Article, req.Siblings)
	if err != nil {
		return err
	}
	return ctx.Result(nethttp.StatusOK, result)
}

func (s *ComparisonService) GenerateTopic(ctx khttp.Context) error {
	var req topicRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("INVALID_BODY", "request body must be a JSON object")
	}
	topic, reason, err := s.ucTopic.Generate(ctx, req.Query)
	if err != nil {
		return err
	}
	applyFallbackHeaders(ctx, reason, 0)
	return ctx.Result(nethttp.StatusOK, topic)
}

func (s *ComparisonService) ListTopics(ctx khttp.Context) error {
	topics, err := s.ucTopic.List(ctx)
	if err != nil {
		return err
	}
	if topics == nil {
		topics = []*model.Topic{}
	}
	return ctx.Result(nethttp.StatusOK, topics)
}

func (s *ComparisonService) GetTopic(ctx khttp.Context) error {
	topic, err := s.ucTopic.Get(ctx, ctx.Vars().Get("id"))
	if err != nil {
		return err
	}
	return ctx.Result(nethttp.StatusOK, topic)
}

// applyFallbackHeaders marks a degraded response. Rate-limit fallbacks
// additionally advertise when a retry is worthwhile.
func applyFallbackHeaders(ctx khttp.Context, reason generator.Reason, retryAfter int) {
	if reason == "" {
		return
	}
	header := ctx.Response().Header()
	header.Set("X-Fallback-Reason", string(reason))
	switch reason {
	case generator.ReasonRateLimited:
		header.Set("X-Rate-Limited", "true")
		if retryAfter > 0 {
			header.Set("Retry-After", strconv.Itoa(retryAfter))
		}
	case generator.ReasonTimeout:
		header.Set("X-Timeout", "true")
	}
}
