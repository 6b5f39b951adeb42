// Package model defines data structures for the support assistant.
package model

// Role represents the speaker of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation. Turns are immutable once
// appended to a session.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserContext holds inferred or caller-supplied user attributes
// (employee name, competency, floor, ...). Last write wins per key.
type UserContext map[string]string

// Merge overlays other onto the context; other's values win on
// key collision.
func (c UserContext) Merge(other UserContext) {
	for k, v := range other {
		c[k] = v
	}
}

// Clone returns a shallow copy of the context.
func (c UserContext) Clone() UserContext {
	out := make(UserContext, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
