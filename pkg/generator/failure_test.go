package generator

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyRemoteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Reason
	}{
		{"http 429", errors.New("request failed with status 429"), ReasonRateLimited},
		{"quota text", errors.New("Quota exceeded for this project"), ReasonRateLimited},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), ReasonRateLimited},
		{"deadline exceeded", context.DeadlineExceeded, ReasonTimeout},
		{"wrapped deadline", fmt.Errorf("call failed: %w", context.DeadlineExceeded), ReasonTimeout},
		{"timeout text", errors.New("client timeout awaiting headers"), ReasonTimeout},
		{"anything else", errors.New("connection refused"), ReasonAPIError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyRemoteError(tt.err)
			if got.Reason != tt.want {
				t.Errorf("classifyRemoteError(%v).Reason = %s, want %s", tt.err, got.Reason, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("classified failure does not wrap the original error")
			}
		})
	}
}

func TestRateLimitedRetryAfter(t *testing.T) {
	f := classifyRemoteError(errors.New("429 too many requests"))
	if f.RetryAfter != 60 {
		t.Errorf("RetryAfter = %d, want 60", f.RetryAfter)
	}
	if classifyRemoteError(errors.New("boom")).RetryAfter != 0 {
		t.Error("RetryAfter set on non-rate-limit failure")
	}
}

func TestFailureError(t *testing.T) {
	f := newFailure(ReasonParseError, errors.New("bad json"))
	if f.Error() != "parse-error: bad json" {
		t.Errorf("Error() = %q", f.Error())
	}
	if newFailure(ReasonUnconfigured, nil).Error() != "api-key-missing" {
		t.Errorf("Error() without cause = %q", newFailure(ReasonUnconfigured, nil).Error())
	}
}
