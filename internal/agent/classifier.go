package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/SameerKamani/SL-IT-AI/internal/llm"
	"github.com/SameerKamani/SL-IT-AI/internal/model"
)

// Issue-type labels the classifier may produce. Anything the model
// returns outside this set normalizes to IssueTypeOther.
const (
	IssueTypeHardware = "hardware_issue"
	IssueTypeSoftware = "software_issue"
	IssueTypeNetwork  = "network_issue"
	IssueTypeAccess   = "access_request"
	IssueTypeOther    = "other"
)

// KnownIssueTypes lists every label with a dedicated ticket template.
var KnownIssueTypes = []string{
	IssueTypeHardware,
	IssueTypeSoftware,
	IssueTypeNetwork,
	IssueTypeAccess,
	IssueTypeOther,
}

const classifierSystemPrompt = `You classify IT support requests. Given a conversation, answer with exactly one of these labels and nothing else:
hardware_issue, software_issue, network_issue, access_request, other`

// LLMClassifier labels issues with a model call.
type LLMClassifier struct {
	client llm.Client
	model  string
}

// NewLLMClassifier creates an issue classifier backed by the given client.
func NewLLMClassifier(client llm.Client, modelName string) *LLMClassifier {
	return &LLMClassifier{client: client, model: modelName}
}

// Classify returns the issue-type label for the message in its
// conversational context.
func (c *LLMClassifier) Classify(ctx context.Context, message string, history []model.Turn) (string, error) {
	prompt := fmt.Sprintf("Conversation so far:\n%s\nLatest message: %s\n\nLabel:", transcript(history), message)

	resp, err := c.client.Complete(ctx, &llm.CompletionRequest{
		Model:       c.model,
		System:      classifierSystemPrompt,
		Messages:    []llm.ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   16,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("issue classification: %w", err)
	}

	return NormalizeIssueType(resp.Content), nil
}

// NormalizeIssueType maps a raw model reply onto the known label set.
func NormalizeIssueType(raw string) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range KnownIssueTypes {
		if label == known || strings.Contains(label, known) {
			return known
		}
	}
	return IssueTypeOther
}
