package model

// ChatRequest is the request body for POST /api/chat.
type ChatRequest struct {
	SessionID string      `json:"session_id"`
	Message   string      `json:"message"`
	UserInfo  UserContext `json:"user_info,omitempty"`
}

// ChatResponse is the reply to a chat request. Ticket and
// TicketArtifact are empty unless the workflow decided to create one.
type ChatResponse struct {
	Response       string `json:"response"`
	Ticket         Ticket `json:"ticket"`
	TicketArtifact string `json:"ticket_artifact"`
}

// TicketRequest is the request body for POST /api/ticket.
type TicketRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// TicketResponse is the result of the dedicated ticket-creation path.
type TicketResponse struct {
	Ticket         Ticket `json:"ticket"`
	TicketArtifact string `json:"ticket_artifact"`
	IssueType      string `json:"issue_type"`
}

// SessionResponse describes a stored session.
type SessionResponse struct {
	SessionID           string `json:"session_id"`
	ConversationHistory []Turn `json:"conversation_history"`
	MessageCount        int    `json:"message_count"`
}

// UploadResult is the outcome of an attachment upload. Malformed
// ticket payloads are reported here with Success=false rather than as
// an HTTP-level error.
type UploadResult struct {
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}
