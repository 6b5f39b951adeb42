package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SameerKamani/SL-IT-AI/internal/llm"
	"github.com/SameerKamani/SL-IT-AI/internal/model"
)

const fillerSystemPrompt = `You fill IT support ticket fields from a conversation.
Given the field names, the conversation, and known facts about the employee, return a single JSON object with exactly those field names as keys and string values.
Leave a field's value as an empty string when the conversation does not provide it. Respond with JSON only.`

// LLMFiller fills ticket schemas with a model call, falling back to
// fuzzy-matching schema field names against user-context keys for
// fields the model left blank.
type LLMFiller struct {
	client llm.Client
	model  string
}

// NewLLMFiller creates a ticket filler backed by the given client.
func NewLLMFiller(client llm.Client, modelName string) *LLMFiller {
	return &LLMFiller{client: client, model: modelName}
}

// Fill produces a field-name to value mapping for the schema.
func (f *LLMFiller) Fill(ctx context.Context, fields []string, message string, history []model.Turn, uctx model.UserContext) (map[string]string, error) {
	prompt := fmt.Sprintf(
		"Fields: %s\n\nKnown facts: %s\n\nConversation so far:\n%s\nLatest message: %s",
		strings.Join(fields, ", "), formatContext(uctx), transcript(history), message,
	)

	resp, err := f.client.Complete(ctx, &llm.CompletionRequest{
		Model:       f.model,
		System:      fillerSystemPrompt,
		Messages:    []llm.ChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("ticket fill: %w", err)
	}

	filled := map[string]string{}
	if raw := extractJSONObject(resp.Content); raw != "" {
		var parsed map[string]string
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			filled = parsed
		}
	}

	fillFromContext(filled, fields, uctx)
	return filled, nil
}

// fillFromContext populates blank fields by fuzzy-matching the field
// name against the context keys.
func fillFromContext(filled map[string]string, fields []string, uctx model.UserContext) {
	if len(uctx) == 0 {
		return
	}
	keys := make([]string, 0, len(uctx))
	for k := range uctx {
		keys = append(keys, k)
	}
	for _, field := range fields {
		if filled[field] != "" {
			continue
		}
		if key := bestContextKey(field, keys); key != "" {
			filled[field] = uctx[key]
		}
	}
}

func formatContext(uctx model.UserContext) string {
	if len(uctx) == 0 {
		return "none"
	}
	data, err := json.Marshal(map[string]string(uctx))
	if err != nil {
		return "none"
	}
	return string(data)
}
