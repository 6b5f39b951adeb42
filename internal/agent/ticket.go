package agent

import (
	"fmt"
	"strings"

	"github.com/SameerKamani/SL-IT-AI/internal/model"
)

// BuildOrderedTicket arranges the fill result into the schema's
// declared field order. Schema fields absent from the fill appear
// with an empty value, never dropped; fill entries outside the schema
// are discarded.
func BuildOrderedTicket(filled map[string]string, fields []string) model.Ticket {
	ticket := make(model.Ticket, len(fields))
	for i, name := range fields {
		ticket[i] = model.TicketField{Name: name, Value: filled[name]}
	}
	return ticket
}

// GenerateArtifact renders the human-presentable ticket summary from
// the employee name and problem description. Missing values render
// as empty, not errors.
func GenerateArtifact(employeeName, problemDescription string) string {
	var b strings.Builder
	b.WriteString("IT SUPPORT TICKET\n")
	b.WriteString("=================\n")
	fmt.Fprintf(&b, "Employee: %s\n", employeeName)
	fmt.Fprintf(&b, "Problem:  %s\n", problemDescription)
	return b.String()
}
