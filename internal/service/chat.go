// Package service provides the operation logic behind the HTTP handlers.
package service

import (
	"context"

	"github.com/SameerKamani/SL-IT-AI/internal/agent"
	"github.com/SameerKamani/SL-IT-AI/internal/model"
	"github.com/SameerKamani/SL-IT-AI/internal/session"
	"github.com/SameerKamani/SL-IT-AI/internal/workflow"
	"github.com/SameerKamani/SL-IT-AI/pkg/logger"
	"github.com/SameerKamani/SL-IT-AI/pkg/metrics"
)

// FallbackResponse is returned when the workflow produces no reply.
const FallbackResponse = "I'm sorry, I couldn't process your request."

// DefaultIdentity is overlaid onto the extracted context when the
// caller supplies no user_info. Used in environments without an
// upstream identity provider.
var DefaultIdentity = model.UserContext{
	"employee_name":     "Employee_4",
	"SL_competency":     "VSI H - AI",
	"floor_information": "2",
	"employee_id":       "E004",
}

// ChatService runs the chat operation: session bookkeeping, context
// derivation and delegation to the workflow engine.
type ChatService struct {
	store     *session.Store
	extractor agent.ContextExtractor
	engine    workflow.Engine
	logger    *logger.Logger
}

// NewChatService creates a new chat service.
func NewChatService(store *session.Store, extractor agent.ContextExtractor, engine workflow.Engine, log *logger.Logger) *ChatService {
	return &ChatService{
		store:     store,
		extractor: extractor,
		engine:    engine,
		logger:    log,
	}
}

// Chat processes one user message. The user turn is appended to the
// session, context is derived and merged (caller-supplied user info
// wins on collision, the default identity fills in when none is
// given), the workflow engine is invoked, and the assistant reply is
// appended back. The updated history overwrites the stored session.
//
// There is no rollback: a failure after the store read may leave the
// session unchanged, since the overwrite only happens on success.
func (s *ChatService) Chat(ctx context.Context, sessionID, message string, userInfo model.UserContext) (*model.ChatResponse, error) {
	history := s.store.History(sessionID)
	history = append(history, model.Turn{Role: model.RoleUser, Content: message})

	uctx, err := s.extractor.Extract(ctx, message, history)
	if err != nil {
		return nil, err
	}
	if uctx == nil {
		uctx = model.UserContext{}
	}

	if len(userInfo) > 0 {
		uctx.Merge(userInfo)
	} else {
		uctx.Merge(DefaultIdentity)
	}

	state := &workflow.State{
		Message:   message,
		History:   history,
		SessionID: sessionID,
		Context:   uctx,
	}

	result, err := s.engine.Run(ctx, state)
	if err != nil {
		return nil, err
	}

	response := result.Response
	if response == "" {
		response = FallbackResponse
	}
	ticket := result.Ticket
	if ticket == nil {
		ticket = model.Ticket{}
	}

	history = append(history, model.Turn{Role: model.RoleAssistant, Content: response})
	s.store.Replace(sessionID, history)

	metrics.ChatTurnsTotal.Inc()
	metrics.SessionsActive.Set(float64(s.store.Len()))

	return &model.ChatResponse{
		Response:       response,
		Ticket:         ticket,
		TicketArtifact: result.TicketArtifact,
	}, nil
}
