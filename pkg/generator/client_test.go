package generator

import (
	"context"
	"testing"
)

func TestUnconfiguredClientFailsFast(t *testing.T) {
	for _, key := range []string{"", "your_api_key_here"} {
		client, err := New(context.Background(), Config{APIKey: key})
		if err != nil {
			t.Fatalf("New() error = %v, want degraded client", err)
		}
		if client.Configured() {
			t.Errorf("Configured() = true for key %q", key)
		}
		_, fail := client.AnalyzeComparison(context.Background(), nil)
		if fail == nil || fail.Reason != ReasonUnconfigured {
			t.Errorf("AnalyzeComparison() failure = %v, want api-key-missing", fail)
		}
		_, fail = client.GenerateTopic(context.Background(), "anything")
		if fail == nil || fail.Reason != ReasonUnconfigured {
			t.Errorf("GenerateTopic() failure = %v, want api-key-missing", fail)
		}
	}
}

func TestTimeoutDefault(t *testing.T) {
	c := &Client{}
	if c.timeout() != DefaultTimeout {
		t.Errorf("timeout() = %v, want %v", c.timeout(), DefaultTimeout)
	}
	c.cfg.Timeout = DefaultTimeout / 5
	if c.timeout() != DefaultTimeout/5 {
		t.Errorf("timeout() = %v, want configured override", c.timeout())
	}
}
