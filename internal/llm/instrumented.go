package llm

import (
	"context"
	"time"

	"github.com/SameerKamani/SL-IT-AI/pkg/metrics"
)

// Instrumented wraps a Client and records latency and token metrics
// for every completion call.
type Instrumented struct {
	inner Client
}

// Instrument wraps the client with metrics recording.
func Instrument(inner Client) *Instrumented {
	return &Instrumented{inner: inner}
}

// Complete delegates to the wrapped client and records the outcome.
func (c *Instrumented) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()
	resp, err := c.inner.Complete(ctx, req)
	duration := time.Since(start).Seconds()

	if err != nil {
		metrics.RecordLLMRequest(c.inner.Name(), req.Model, "error", duration, 0, 0)
		return nil, err
	}
	metrics.RecordLLMRequest(c.inner.Name(), resp.Model, "success", duration, resp.TokensIn, resp.TokensOut)
	return resp, nil
}

// Name returns the wrapped provider's name.
func (c *Instrumented) Name() string {
	return c.inner.Name()
}

// Models returns the wrapped provider's models.
func (c *Instrumented) Models() []string {
	return c.inner.Models()
}
