package agent

import (
	"testing"

	"github.com/SameerKamani/SL-IT-AI/internal/model"
)

func TestFuzzyScoreBasic(t *testing.T) {
	if fuzzyScore("employee_name", "employee_name") <= 0 {
		t.Fatal("expected positive score for exact match")
	}
	if fuzzyScore("employee_name", "name") <= 0 {
		t.Fatal("expected positive score for substring match")
	}
	if fuzzyScore("floor_information", "qqq") != 0 {
		t.Fatal("expected zero score for no match")
	}
	if fuzzyScore("anything", "") != 0 {
		t.Fatal("expected zero score for empty pattern")
	}
}

func TestFuzzyScoreCaseInsensitive(t *testing.T) {
	// Schema field names mix cases ("SL_competency"); the matcher
	// must not care.
	if fuzzyScore("sl_competency", "SL_competency") <= 0 {
		t.Fatal("expected case-insensitive match")
	}
}

func TestBestContextKey(t *testing.T) {
	keys := []string{"employee_name", "floor_information", "problem_description"}

	if got := bestContextKey("employee_name", keys); got != "employee_name" {
		t.Fatalf("exact key not chosen: %q", got)
	}
	if got := bestContextKey("zzz_unrelated_qqq", keys); got != "" {
		t.Fatalf("expected no match, got %q", got)
	}
}

func TestFillFromContextOnlyFillsBlanks(t *testing.T) {
	uctx := model.UserContext{
		"employee_name": "Alice",
		"urgency":       "high",
	}
	filled := map[string]string{
		"employee_name": "Bob", // already set by the model; keep it
		"urgency":       "",
	}

	fillFromContext(filled, []string{"employee_name", "urgency"}, uctx)

	if filled["employee_name"] != "Bob" {
		t.Fatalf("fallback overwrote a model-filled field: %q", filled["employee_name"])
	}
	if filled["urgency"] != "high" {
		t.Fatalf("fallback did not fill blank field: %q", filled["urgency"])
	}
}

func TestFillFromContextEmptyContext(t *testing.T) {
	filled := map[string]string{"a": ""}
	fillFromContext(filled, []string{"a"}, nil)
	if filled["a"] != "" {
		t.Fatal("empty context should fill nothing")
	}
}
