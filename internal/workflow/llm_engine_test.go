package workflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SameerKamani/SL-IT-AI/internal/agent"
	"github.com/SameerKamani/SL-IT-AI/internal/llm"
	"github.com/SameerKamani/SL-IT-AI/internal/model"
)

// scriptedClient returns canned completions in call order.
type scriptedClient struct {
	replies []string
	calls   int
}

func (c *scriptedClient) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if c.calls >= len(c.replies) {
		return &llm.CompletionResponse{Content: ""}, nil
	}
	content := c.replies[c.calls]
	c.calls++
	return &llm.CompletionResponse{Content: content, Model: "scripted"}, nil
}

func (c *scriptedClient) Name() string     { return "scripted" }
func (c *scriptedClient) Models() []string { return []string{"scripted"} }

type fixedClassifier struct{ label string }

func (f *fixedClassifier) Classify(ctx context.Context, message string, history []model.Turn) (string, error) {
	return f.label, nil
}

type fixedFiller struct{ filled map[string]string }

func (f *fixedFiller) Fill(ctx context.Context, fields []string, message string, history []model.Turn, uctx model.UserContext) (map[string]string, error) {
	return f.filled, nil
}

func newTemplates(t *testing.T) *agent.TemplateRegistry {
	t.Helper()
	dir := t.TempDir()
	schema := `["employee_name","problem_description"]`
	if err := os.WriteFile(filepath.Join(dir, "network_issue.json"), []byte(schema), 0o644); err != nil {
		t.Fatal(err)
	}
	return agent.NewTemplateRegistry(dir)
}

func TestEngineChatPath(t *testing.T) {
	client := &scriptedClient{replies: []string{
		"chat",                      // intent decision
		"Have you rebooted the AP?", // assistant reply
	}}
	engine := NewLLMEngine(client, "", &fixedClassifier{label: agent.IssueTypeNetwork}, newTemplates(t), &fixedFiller{})

	state := &State{
		Message: "wifi is slow",
		History: []model.Turn{{Role: model.RoleUser, Content: "wifi is slow"}},
		Context: model.UserContext{},
	}
	result, err := engine.Run(context.Background(), state)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Response != "Have you rebooted the AP?" {
		t.Fatalf("unexpected response: %q", result.Response)
	}
	if len(result.Ticket) != 0 {
		t.Fatal("chat path must not produce a ticket")
	}
	if result.TicketArtifact != "" {
		t.Fatal("chat path must not produce an artifact")
	}
}

func TestEngineTicketPath(t *testing.T) {
	client := &scriptedClient{replies: []string{"ticket"}}
	engine := NewLLMEngine(
		client, "",
		&fixedClassifier{label: agent.IssueTypeNetwork},
		newTemplates(t),
		&fixedFiller{filled: map[string]string{"problem_description": "wifi drops every hour"}},
	)

	state := &State{
		Message: "please open a ticket",
		History: []model.Turn{{Role: model.RoleUser, Content: "please open a ticket"}},
		Context: model.UserContext{
			"employee_name":       "Alice",
			"problem_description": "wifi drops every hour",
		},
	}
	result, err := engine.Run(context.Background(), state)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Ticket) != 2 {
		t.Fatalf("expected 2 ordered ticket fields, got %d", len(result.Ticket))
	}
	if result.Ticket[0].Name != "employee_name" || result.Ticket[0].Value != "" {
		t.Fatalf("schema order and placeholder not honored: %+v", result.Ticket[0])
	}
	if !strings.Contains(result.TicketArtifact, "Alice") {
		t.Fatalf("artifact missing employee name: %q", result.TicketArtifact)
	}
	if !strings.Contains(result.Response, "network issue") {
		t.Fatalf("confirmation reply should name the issue type: %q", result.Response)
	}
}

func TestEngineEmptyHistoryStillSendsMessage(t *testing.T) {
	client := &scriptedClient{replies: []string{"chat", "hello"}}
	engine := NewLLMEngine(client, "", &fixedClassifier{label: agent.IssueTypeOther}, newTemplates(t), &fixedFiller{})

	state := &State{Message: "hi", Context: model.UserContext{}}
	if _, err := engine.Run(context.Background(), state); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if state.Response != "hello" {
		t.Fatalf("unexpected response: %q", state.Response)
	}
}
