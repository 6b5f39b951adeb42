// Package workflow runs the conversation workflow: given a chat
// state it decides what to answer and whether to create a ticket.
package workflow

import (
	"context"

	"github.com/SameerKamani/SL-IT-AI/internal/model"
)

// State is the record passed through the engine. The routing layer
// fills the input half; Run populates Response and, when the engine
// decides to create one, Ticket and TicketArtifact.
type State struct {
	// Input
	Message   string
	History   []model.Turn
	SessionID string
	Context   model.UserContext

	// Output
	Response       string
	Ticket         model.Ticket
	TicketArtifact string
}

// Engine is the single entry point of the workflow: one state record
// in, one state record out.
type Engine interface {
	Run(ctx context.Context, state *State) (*State, error)
}
