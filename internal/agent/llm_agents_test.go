package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/SameerKamani/SL-IT-AI/internal/llm"
	"github.com/SameerKamani/SL-IT-AI/internal/model"
)

type cannedClient struct {
	content string
	err     error
}

func (c *cannedClient) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &llm.CompletionResponse{Content: c.content, Model: "canned"}, nil
}

func (c *cannedClient) Name() string     { return "canned" }
func (c *cannedClient) Models() []string { return []string{"canned"} }

func TestExtractorParsesWrappedJSON(t *testing.T) {
	client := &cannedClient{content: "Here are the facts:\n```json\n{\"employee_name\": \"Alice\", \"floor_information\": 2}\n```"}
	e := NewLLMExtractor(client, "")

	uctx, err := e.Extract(context.Background(), "hi", nil)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if uctx["employee_name"] != "Alice" {
		t.Fatalf("employee_name = %q", uctx["employee_name"])
	}
	if uctx["floor_information"] != "2" {
		t.Fatalf("numeric value not stringified: %q", uctx["floor_information"])
	}
}

func TestExtractorGarbageReplyYieldsEmptyContext(t *testing.T) {
	e := NewLLMExtractor(&cannedClient{content: "I cannot help with that."}, "")

	uctx, err := e.Extract(context.Background(), "hi", nil)
	if err != nil {
		t.Fatalf("unparsable reply must not error: %v", err)
	}
	if len(uctx) != 0 {
		t.Fatalf("expected empty context, got %v", uctx)
	}
}

func TestExtractorTransportErrorPropagates(t *testing.T) {
	e := NewLLMExtractor(&cannedClient{err: errors.New("timeout")}, "")
	if _, err := e.Extract(context.Background(), "hi", nil); err == nil {
		t.Fatal("expected transport error to propagate")
	}
}

func TestClassifierNormalizesReply(t *testing.T) {
	c := NewLLMClassifier(&cannedClient{content: " Network_Issue.\n"}, "")

	label, err := c.Classify(context.Background(), "wifi down", nil)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if label != IssueTypeNetwork {
		t.Fatalf("label = %q", label)
	}
}

func TestClassifierUnknownReplyFallsBackToOther(t *testing.T) {
	c := NewLLMClassifier(&cannedClient{content: "coffee_machine_issue"}, "")

	label, err := c.Classify(context.Background(), "no coffee", nil)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if label != IssueTypeOther {
		t.Fatalf("label = %q", label)
	}
}

func TestFillerFuzzyFallbackFromContext(t *testing.T) {
	// Model fills one field and leaves the rest blank; the fallback
	// pulls matching values out of the user context.
	client := &cannedClient{content: `{"device": "mouse", "employee_name": "", "problem_description": ""}`}
	f := NewLLMFiller(client, "")

	uctx := model.UserContext{
		"employee_name":       "Alice",
		"problem_description": "left button dead",
	}
	filled, err := f.Fill(context.Background(), []string{"device", "employee_name", "problem_description"}, "fix my mouse", nil, uctx)
	if err != nil {
		t.Fatalf("fill failed: %v", err)
	}

	if filled["device"] != "mouse" {
		t.Fatalf("model-filled field lost: %q", filled["device"])
	}
	if filled["employee_name"] != "Alice" {
		t.Fatalf("fuzzy fallback missed employee_name: %q", filled["employee_name"])
	}
	if filled["problem_description"] != "left button dead" {
		t.Fatalf("fuzzy fallback missed problem_description: %q", filled["problem_description"])
	}
}

func TestFillerGarbageReplyStillFillsFromContext(t *testing.T) {
	f := NewLLMFiller(&cannedClient{content: "no json here"}, "")

	uctx := model.UserContext{"employee_name": "Alice"}
	filled, err := f.Fill(context.Background(), []string{"employee_name"}, "hi", nil, uctx)
	if err != nil {
		t.Fatalf("fill failed: %v", err)
	}
	if filled["employee_name"] != "Alice" {
		t.Fatalf("expected context fallback, got %q", filled["employee_name"])
	}
}
