package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/SameerKamani/SL-IT-AI/internal/middleware"
	"github.com/SameerKamani/SL-IT-AI/internal/model"
	"github.com/SameerKamani/SL-IT-AI/internal/service"
	"github.com/SameerKamani/SL-IT-AI/pkg/logger"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const maxUploadMemory = 32 << 20

// TicketHandler handles ticket creation and attachment uploads.
type TicketHandler struct {
	service *service.TicketService
	logger  *logger.Logger
}

// NewTicketHandler creates a new ticket handler.
func NewTicketHandler(svc *service.TicketService, log *logger.Logger) *TicketHandler {
	return &TicketHandler{
		service: svc,
		logger:  log,
	}
}

// Create handles POST /api/ticket
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateSessionID(req.SessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateMessageContent(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Create(r.Context(), req.SessionID, req.Message)
	if err != nil {
		h.logger.Error("ticket creation failed",
			zap.String("session_id", req.SessionID),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateWithAttachments handles POST /api/ticket_with_attachments
// (multipart form: "ticket" JSON text plus zero or more "attachments"
// files). A malformed ticket payload is reported as a structured
// success=false result, not an HTTP error.
func (h *TicketHandler) CreateWithAttachments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	ticketJSON := r.FormValue("ticket")

	var attachments []service.Attachment
	for _, header := range r.MultipartForm.File["attachments"] {
		f, err := header.Open()
		if err != nil {
			h.logger.Error("failed to open uploaded file",
				zap.String("filename", header.Filename),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer f.Close()
		attachments = append(attachments, service.Attachment{
			Filename: header.Filename,
			Data:     f,
		})
	}

	result, err := h.service.SaveAttachments(ticketJSON, attachments)
	if err != nil {
		h.logger.Error("attachment upload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
