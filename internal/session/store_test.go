package session

import (
	"testing"

	"github.com/SameerKamani/SL-IT-AI/internal/model"
)

func TestHistoryUnknownSession(t *testing.T) {
	s := NewStore()

	history := s.History("never-seen")
	if len(history) != 0 {
		t.Fatalf("expected empty history for unknown session, got %d turns", len(history))
	}
	if s.Count("never-seen") != 0 {
		t.Fatalf("expected zero count for unknown session, got %d", s.Count("never-seen"))
	}
}

func TestReplaceAndHistoryOrder(t *testing.T) {
	s := NewStore()

	turns := []model.Turn{
		{Role: model.RoleUser, Content: "my laptop won't boot"},
		{Role: model.RoleAssistant, Content: "have you tried holding the power button?"},
		{Role: model.RoleUser, Content: "yes, nothing happens"},
	}
	s.Replace("sess-1", turns)

	got := s.History("sess-1")
	if len(got) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(got))
	}
	for i := range turns {
		if got[i] != turns[i] {
			t.Fatalf("turn %d out of order: got %+v want %+v", i, got[i], turns[i])
		}
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Replace("sess-1", []model.Turn{{Role: model.RoleUser, Content: "hello"}})

	got := s.History("sess-1")
	got[0].Content = "mutated"

	if s.History("sess-1")[0].Content != "hello" {
		t.Fatal("internal state mutated via returned slice")
	}
}

func TestReplaceCopiesInput(t *testing.T) {
	s := NewStore()
	turns := []model.Turn{{Role: model.RoleUser, Content: "hello"}}
	s.Replace("sess-1", turns)

	turns[0].Content = "mutated"
	if s.History("sess-1")[0].Content != "hello" {
		t.Fatal("internal state aliased the caller's slice")
	}
}

func TestClearRemovesSession(t *testing.T) {
	s := NewStore()
	s.Replace("sess-1", []model.Turn{{Role: model.RoleUser, Content: "hi"}})
	s.Replace("sess-2", []model.Turn{{Role: model.RoleUser, Content: "yo"}})

	s.Clear("sess-1")
	if s.Count("sess-1") != 0 {
		t.Fatal("clear did not remove session")
	}
	if s.Count("sess-2") != 1 {
		t.Fatal("clear affected an unrelated session")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", s.Len())
	}
}

func TestClearUnknownSessionIsNoOp(t *testing.T) {
	s := NewStore()
	// Must not panic or create an entry.
	s.Clear("never-seen")
	if s.Len() != 0 {
		t.Fatalf("clear of unknown session created state: %d sessions", s.Len())
	}
}
