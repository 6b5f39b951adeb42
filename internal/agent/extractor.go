package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SameerKamani/SL-IT-AI/internal/llm"
	"github.com/SameerKamani/SL-IT-AI/internal/model"
)

const extractorSystemPrompt = `You extract structured facts about an employee from an IT support conversation.
Return a single JSON object whose keys are attribute names (employee_name, employee_id, SL_competency, floor_information, problem_description, device, location, urgency) and whose values are strings.
Only include attributes actually stated or clearly implied in the conversation. Return {} if nothing can be inferred. Respond with JSON only.`

// LLMExtractor infers user attributes with a model call.
type LLMExtractor struct {
	client llm.Client
	model  string
}

// NewLLMExtractor creates a context extractor backed by the given client.
func NewLLMExtractor(client llm.Client, modelName string) *LLMExtractor {
	return &LLMExtractor{client: client, model: modelName}
}

// Extract runs the extraction prompt over the message and history.
// An unparsable model reply yields an empty context rather than an
// error; only transport failures propagate.
func (e *LLMExtractor) Extract(ctx context.Context, message string, history []model.Turn) (model.UserContext, error) {
	prompt := fmt.Sprintf("Conversation so far:\n%s\nLatest message: %s", transcript(history), message)

	resp, err := e.client.Complete(ctx, &llm.CompletionRequest{
		Model:       e.model,
		System:      extractorSystemPrompt,
		Messages:    []llm.ChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("context extraction: %w", err)
	}

	uctx := model.UserContext{}
	raw := extractJSONObject(resp.Content)
	if raw == "" {
		return uctx, nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return uctx, nil
	}
	for k, v := range fields {
		switch val := v.(type) {
		case string:
			if val != "" {
				uctx[k] = val
			}
		case float64, bool:
			uctx[k] = fmt.Sprint(val)
		}
	}
	return uctx, nil
}
