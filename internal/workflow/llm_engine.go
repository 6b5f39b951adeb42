package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/SameerKamani/SL-IT-AI/internal/agent"
	"github.com/SameerKamani/SL-IT-AI/internal/llm"
)

const assistantSystemPrompt = `You are an IT support assistant for employees.
Help the user describe their problem, ask for missing details (device, location, urgency), and keep replies short and practical.
Do not invent company policy. If the user asks for something outside IT support, say so politely.`

const intentSystemPrompt = `Decide whether the user wants a support ticket created right now, based on the conversation.
Answer with exactly one word: "ticket" if they are asking for a ticket to be filed or have confirmed filing one, otherwise "chat".`

// LLMEngine is the model-backed workflow implementation. It first
// decides the user's intent, then either answers conversationally or
// runs the classification and template-fill pipeline to produce a
// ticket alongside the reply.
type LLMEngine struct {
	client     llm.Client
	model      string
	classifier agent.IssueClassifier
	templates  *agent.TemplateRegistry
	filler     agent.TicketFiller
}

// NewLLMEngine creates the model-backed workflow engine.
func NewLLMEngine(client llm.Client, modelName string, classifier agent.IssueClassifier, templates *agent.TemplateRegistry, filler agent.TicketFiller) *LLMEngine {
	return &LLMEngine{
		client:     client,
		model:      modelName,
		classifier: classifier,
		templates:  templates,
		filler:     filler,
	}
}

// Run executes the workflow over the state.
func (e *LLMEngine) Run(ctx context.Context, state *State) (*State, error) {
	wantsTicket, err := e.wantsTicket(ctx, state)
	if err != nil {
		return nil, err
	}

	if wantsTicket {
		if err := e.createTicket(ctx, state); err != nil {
			return nil, err
		}
		return state, nil
	}

	return state, e.reply(ctx, state)
}

// wantsTicket asks the model whether the user is requesting a ticket.
func (e *LLMEngine) wantsTicket(ctx context.Context, state *State) (bool, error) {
	messages := historyMessages(state)
	resp, err := e.client.Complete(ctx, &llm.CompletionRequest{
		Model:       e.model,
		System:      intentSystemPrompt,
		Messages:    messages,
		MaxTokens:   8,
		Temperature: 0,
	})
	if err != nil {
		return false, fmt.Errorf("intent decision: %w", err)
	}
	return strings.Contains(strings.ToLower(resp.Content), "ticket"), nil
}

// reply generates a conversational answer.
func (e *LLMEngine) reply(ctx context.Context, state *State) error {
	resp, err := e.client.Complete(ctx, &llm.CompletionRequest{
		Model:    e.model,
		System:   assistantSystemPrompt,
		Messages: historyMessages(state),
	})
	if err != nil {
		return fmt.Errorf("chat completion: %w", err)
	}
	state.Response = resp.Content
	return nil
}

// createTicket runs the classify, load, fill pipeline and attaches
// the ticket plus a confirmation reply to the state.
func (e *LLMEngine) createTicket(ctx context.Context, state *State) error {
	issueType, err := e.classifier.Classify(ctx, state.Message, state.History)
	if err != nil {
		return err
	}

	fields := e.templates.LoadFields(e.templates.TemplatePath(issueType))
	filled, err := e.filler.Fill(ctx, fields, state.Message, state.History, state.Context)
	if err != nil {
		return err
	}

	state.Ticket = agent.BuildOrderedTicket(filled, fields)
	state.TicketArtifact = agent.GenerateArtifact(
		state.Context["employee_name"],
		state.Context["problem_description"],
	)
	state.Response = fmt.Sprintf(
		"I've created a %s ticket from our conversation. You can review the details below.",
		strings.ReplaceAll(issueType, "_", " "),
	)
	return nil
}

func historyMessages(state *State) []llm.ChatMessage {
	// The latest user message is already the last turn of History;
	// the chat path appends it before invoking the engine.
	messages := make([]llm.ChatMessage, len(state.History))
	for i, turn := range state.History {
		messages[i] = llm.ChatMessage{Role: string(turn.Role), Content: turn.Content}
	}
	if len(messages) == 0 {
		messages = append(messages, llm.ChatMessage{Role: "user", Content: state.Message})
	}
	return messages
}
