package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TicketField is one named field of a ticket.
type TicketField struct {
	Name  string
	Value string
}

// Ticket is an ordered list of filled template fields. Field order
// follows the template's declared order, which is meaningful to the
// downstream ticketing system, so Ticket marshals to a JSON object
// with keys in that order rather than relying on map iteration.
type Ticket []TicketField

// MarshalJSON renders the ticket as a JSON object preserving field order.
func (t Ticket) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the ticket, keeping the
// fields in the order the keys appear on the wire.
func (t *Ticket) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("ticket: expected JSON object, got %v", tok)
	}
	fields := Ticket{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ticket: expected field name, got %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		fields = append(fields, TicketField{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = fields
	return nil
}

// Get returns the value of the named field and whether it exists.
func (t Ticket) Get(name string) (string, bool) {
	for _, f := range t {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// TicketCreatedEvent is published when a ticket is generated.
type TicketCreatedEvent struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	IssueType string    `json:"issue_type"`
	Ticket    Ticket    `json:"ticket"`
	CreatedAt time.Time `json:"created_at"`
}
