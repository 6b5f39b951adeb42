// Package agent implements the conversation-analysis collaborators:
// context extraction, issue classification, ticket filling and
// artifact generation. Each collaborator is an interface so the
// routing layer can be tested with stubs in place of model-backed
// implementations.
package agent

import (
	"context"
	"strings"

	"github.com/SameerKamani/SL-IT-AI/internal/model"
)

// ContextExtractor infers user attributes from the latest message and
// the full conversation history.
type ContextExtractor interface {
	Extract(ctx context.Context, message string, history []model.Turn) (model.UserContext, error)
}

// IssueClassifier maps a message plus history to an issue-type label.
type IssueClassifier interface {
	Classify(ctx context.Context, message string, history []model.Turn) (string, error)
}

// TicketFiller fills an ordered field schema from the message,
// history and user context.
type TicketFiller interface {
	Fill(ctx context.Context, fields []string, message string, history []model.Turn, uctx model.UserContext) (map[string]string, error)
}

// transcript renders the history as plain text for prompts that take
// the conversation as a single block.
func transcript(history []model.Turn) string {
	var b strings.Builder
	for _, turn := range history {
		b.WriteString(string(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteByte('\n')
	}
	return b.String()
}

// extractJSONObject returns the outermost {...} block of s, or ""
// when none is present. Models occasionally wrap JSON in prose or
// code fences; this recovers the payload.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
