package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/SameerKamani/SL-IT-AI/internal/agent"
	"github.com/SameerKamani/SL-IT-AI/internal/events"
	"github.com/SameerKamani/SL-IT-AI/internal/model"
	"github.com/SameerKamani/SL-IT-AI/internal/session"
	"github.com/SameerKamani/SL-IT-AI/pkg/logger"
	"github.com/SameerKamani/SL-IT-AI/pkg/metrics"
)

// TicketService runs the dedicated ticket-creation path and the
// attachment upload operation.
type TicketService struct {
	store      *session.Store
	extractor  agent.ContextExtractor
	classifier agent.IssueClassifier
	templates  *agent.TemplateRegistry
	filler     agent.TicketFiller
	publisher  *events.Publisher
	uploadDir  string
	logger     *logger.Logger
}

// NewTicketService creates a new ticket service.
func NewTicketService(
	store *session.Store,
	extractor agent.ContextExtractor,
	classifier agent.IssueClassifier,
	templates *agent.TemplateRegistry,
	filler agent.TicketFiller,
	publisher *events.Publisher,
	uploadDir string,
	log *logger.Logger,
) *TicketService {
	return &TicketService{
		store:      store,
		extractor:  extractor,
		classifier: classifier,
		templates:  templates,
		filler:     filler,
		publisher:  publisher,
		uploadDir:  uploadDir,
		logger:     log,
	}
}

// Create builds a ticket from the message and the session's history.
// Unlike the chat path, the history is read-only here: ticket
// creation never mutates the session.
func (s *TicketService) Create(ctx context.Context, sessionID, message string) (*model.TicketResponse, error) {
	history := s.store.History(sessionID)

	uctx, err := s.extractor.Extract(ctx, message, history)
	if err != nil {
		return nil, err
	}
	if uctx == nil {
		uctx = model.UserContext{}
	}

	issueType, err := s.classifier.Classify(ctx, message, history)
	if err != nil {
		return nil, err
	}

	fields := s.templates.LoadFields(s.templates.TemplatePath(issueType))

	filled, err := s.filler.Fill(ctx, fields, message, history, uctx)
	if err != nil {
		return nil, err
	}

	ticket := agent.BuildOrderedTicket(filled, fields)
	artifact := agent.GenerateArtifact(uctx["employee_name"], uctx["problem_description"])

	s.publisher.TicketCreated(ctx, &model.TicketCreatedEvent{
		ID:        uuid.Must(uuid.NewV7()).String(),
		SessionID: sessionID,
		IssueType: issueType,
		Ticket:    ticket,
		CreatedAt: time.Now(),
	})
	metrics.TicketsCreatedTotal.WithLabelValues(issueType).Inc()

	return &model.TicketResponse{
		Ticket:         ticket,
		TicketArtifact: artifact,
		IssueType:      issueType,
	}, nil
}

// Attachment is one named file blob from a multipart upload.
type Attachment struct {
	Filename string
	Data     io.Reader
}

// SaveAttachments parses the ticket payload and persists the
// attachments to the upload directory. A malformed ticket payload is
// a structured failure (Success=false), not an error; nothing is
// written in that case. Files are stored under their original names,
// overwriting any existing file of the same name.
func (s *TicketService) SaveAttachments(ticketJSON string, attachments []Attachment) (*model.UploadResult, error) {
	var ticketData map[string]any
	if err := json.Unmarshal([]byte(ticketJSON), &ticketData); err != nil {
		return &model.UploadResult{
			Success: false,
			Error:   fmt.Sprintf("invalid ticket JSON: %v", err),
		}, nil
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	saved := []string{}
	for _, att := range attachments {
		// Strip any client-supplied path components.
		name := filepath.Base(att.Filename)
		if name == "." || name == string(filepath.Separator) {
			continue
		}
		if err := writeFile(filepath.Join(s.uploadDir, name), att.Data); err != nil {
			return nil, fmt.Errorf("save attachment %s: %w", name, err)
		}
		saved = append(saved, name)
		metrics.AttachmentsSavedTotal.Inc()
	}

	return &model.UploadResult{Success: true, Files: saved}, nil
}

func writeFile(path string, data io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
