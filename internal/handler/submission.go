package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/ranazonai/enquiry-relay/internal/handler/dto"
	"github.com/ranazonai/enquiry-relay/internal/middleware"
	"github.com/ranazonai/enquiry-relay/internal/service"
)

// multipartMemory bounds in-memory multipart parsing; the body size limit
// middleware bounds the total.
const multipartMemory = 1 << 20

// Submitter processes a contact form submission.
type Submitter interface {
	Submit(ctx context.Context, input service.SubmissionInput) (*service.Outcome, error)
}

// SubmissionHandler serves the contact form endpoint.
type SubmissionHandler struct {
	svc    Submitter
	logger *slog.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(svc Submitter, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, logger: logger}
}

// SendEmail handles POST /send-email.
func (h *SubmissionHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	input, err := decodeSubmission(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, dto.MessageResponse{Message: dto.MessageTooLarge})
			return
		}
		// Unreadable bodies are validated as empty.
		h.logger.Debug("submission body ignored",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
	}

	out, err := h.svc.Submit(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.Info("submission processed",
		slog.String("submission_id", out.Submission.ID),
		slog.Bool("returning", out.Returning),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)
	writeJSON(w, http.StatusOK, dto.MessageResponse{Success: true, Message: dto.MessageSent})
}

func (h *SubmissionHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, dto.ValidationErrorResponse{Errors: verr.Fields})
		return
	}

	h.logger.Error("submission failed",
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)
	writeJSON(w, http.StatusInternalServerError, dto.MessageResponse{Message: dto.MessageMailFailed})
}

// decodeSubmission reads JSON, urlencoded or multipart bodies. On error the
// returned input holds whatever was decoded, which may be nothing.
func decodeSubmission(r *http.Request) (service.SubmissionInput, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return service.SubmissionInput{}, err
		}
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			return service.SubmissionInput{}, err
		}
		return dto.SubmissionFromJSON(m), nil

	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return service.SubmissionInput{}, err
		}
		return dto.SubmissionFromValues(r.PostForm.Get), nil

	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return service.SubmissionInput{}, err
		}
		return dto.SubmissionFromValues(r.PostForm.Get), nil

	default:
		return service.SubmissionInput{}, nil
	}
}
