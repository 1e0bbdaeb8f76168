package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Reason identifies why the remote analysis path could not be used.
// The values double as the machine-readable fallback annotation exposed
// to callers.
type Reason string

const (
	ReasonUnconfigured     Reason = "api-key-missing"
	ReasonTimeout          Reason = "timeout"
	ReasonRateLimited      Reason = "rate-limit"
	ReasonParseError       Reason = "parse-error"
	ReasonInvalidStructure Reason = "invalid-structure"
	ReasonAPIError         Reason = "api-error"
)

// Failure is a typed remote-path failure the caller can branch on. It
// never escapes as a panic; every error on the remote path is converted
// into one.
type Failure struct {
	Reason Reason
	Err    error
	// RetryAfter is a hint in seconds, set for rate limiting.
	RetryAfter int
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Reason, f.Err)
	}
	return string(f.Reason)
}

func (f *Failure) Unwrap() error { return f.Err }

// rateLimitRetryAfter is the retry hint handed to rate-limited callers.
const rateLimitRetryAfter = 60

func newFailure(reason Reason, err error) *Failure {
	f := &Failure{Reason: reason, Err: err}
	if reason == ReasonRateLimited {
		f.RetryAfter = rateLimitRetryAfter
	}
	return f
}

// classifyRemoteError sorts a generation error into the failure
// taxonomy. Providers surface quota exhaustion inside error text, so
// the match is string-based, same as the status-code checks upstream.
func classifyRemoteError(err error) *Failure {
	if errors.Is(err, context.DeadlineExceeded) {
		return newFailure(ReasonTimeout, err)
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "too many requests"),
		strings.Contains(msg, "resource_exhausted"):
		return newFailure(ReasonRateLimited, err)
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return newFailure(ReasonTimeout, err)
	}
	return newFailure(ReasonAPIError, err)
}
