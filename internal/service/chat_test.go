package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SameerKamani/SL-IT-AI/internal/model"
	"github.com/SameerKamani/SL-IT-AI/internal/session"
	"github.com/SameerKamani/SL-IT-AI/internal/workflow"
	"github.com/SameerKamani/SL-IT-AI/pkg/logger"
)

type stubExtractor struct {
	uctx model.UserContext
	err  error
}

func (s *stubExtractor) Extract(ctx context.Context, message string, history []model.Turn) (model.UserContext, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.uctx.Clone(), nil
}

// stubEngine records the state it was invoked with and returns a
// scripted result.
type stubEngine struct {
	lastState *workflow.State
	response  string
	ticket    model.Ticket
	artifact  string
	err       error
}

func (s *stubEngine) Run(ctx context.Context, state *workflow.State) (*workflow.State, error) {
	s.lastState = state
	if s.err != nil {
		return nil, s.err
	}
	state.Response = s.response
	state.Ticket = s.ticket
	state.TicketArtifact = s.artifact
	return state, nil
}

func newChatService(store *session.Store, extractor *stubExtractor, engine *stubEngine) *ChatService {
	return NewChatService(store, extractor, engine, logger.NewNop())
}

func TestChatCallerUserInfoWins(t *testing.T) {
	store := session.NewStore()
	extractor := &stubExtractor{uctx: model.UserContext{"employee_name": "Derived", "floor_information": "7"}}
	engine := &stubEngine{response: "ok"}
	svc := newChatService(store, extractor, engine)

	_, err := svc.Chat(context.Background(), "s1", "hello", model.UserContext{"employee_name": "Alice"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}

	got := engine.lastState.Context
	if got["employee_name"] != "Alice" {
		t.Fatalf("caller overlay must win: employee_name = %q", got["employee_name"])
	}
	if got["floor_information"] != "7" {
		t.Fatal("extractor value outside the overlay was dropped")
	}
}

func TestChatDefaultIdentityWhenNoUserInfo(t *testing.T) {
	store := session.NewStore()
	extractor := &stubExtractor{uctx: model.UserContext{}}
	engine := &stubEngine{response: "ok"}
	svc := newChatService(store, extractor, engine)

	if _, err := svc.Chat(context.Background(), "s1", "hello", nil); err != nil {
		t.Fatalf("chat failed: %v", err)
	}

	got := engine.lastState.Context
	for key, want := range DefaultIdentity {
		if got[key] != want {
			t.Fatalf("default identity field %s = %q, want %q", key, got[key], want)
		}
	}
}

func TestChatAppendsTwoTurnsPerCall(t *testing.T) {
	store := session.NewStore()
	extractor := &stubExtractor{uctx: model.UserContext{}}
	engine := &stubEngine{}
	svc := newChatService(store, extractor, engine)

	const n = 3
	for i := 0; i < n; i++ {
		engine.response = fmt.Sprintf("reply-%d", i)
		if _, err := svc.Chat(context.Background(), "s1", fmt.Sprintf("msg-%d", i), nil); err != nil {
			t.Fatalf("chat %d failed: %v", i, err)
		}
	}

	history := store.History("s1")
	if len(history) != 2*n {
		t.Fatalf("expected %d stored turns, got %d", 2*n, len(history))
	}
	for i := 0; i < n; i++ {
		user, assistant := history[2*i], history[2*i+1]
		if user.Role != model.RoleUser || user.Content != fmt.Sprintf("msg-%d", i) {
			t.Fatalf("turn %d: unexpected user turn %+v", 2*i, user)
		}
		if assistant.Role != model.RoleAssistant || assistant.Content != fmt.Sprintf("reply-%d", i) {
			t.Fatalf("turn %d: unexpected assistant turn %+v", 2*i+1, assistant)
		}
	}
}

func TestChatFallbackResponseWhenEngineSilent(t *testing.T) {
	store := session.NewStore()
	svc := newChatService(store, &stubExtractor{uctx: model.UserContext{}}, &stubEngine{response: ""})

	resp, err := svc.Chat(context.Background(), "s1", "hello", nil)
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if resp.Response != FallbackResponse {
		t.Fatalf("expected fallback response, got %q", resp.Response)
	}
	if resp.Ticket == nil {
		t.Fatal("absent ticket must surface as empty, not nil")
	}

	history := store.History("s1")
	if history[len(history)-1].Content != FallbackResponse {
		t.Fatal("fallback response was not persisted to the session")
	}
}

func TestChatEngineFailureLeavesSessionUntouched(t *testing.T) {
	store := session.NewStore()
	svc := newChatService(store, &stubExtractor{uctx: model.UserContext{}}, &stubEngine{err: errors.New("workflow exploded")})

	if _, err := svc.Chat(context.Background(), "s1", "hello", nil); err == nil {
		t.Fatal("expected an error from the failed workflow")
	}
	if store.Count("s1") != 0 {
		t.Fatalf("failed chat persisted %d turns", store.Count("s1"))
	}
}

func TestChatExtractorFailurePropagates(t *testing.T) {
	store := session.NewStore()
	svc := newChatService(store, &stubExtractor{err: errors.New("model down")}, &stubEngine{response: "ok"})

	if _, err := svc.Chat(context.Background(), "s1", "hello", nil); err == nil {
		t.Fatal("expected extraction error to propagate")
	}
}
