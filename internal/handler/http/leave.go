package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/leave"
	"github.com/orbithr/hr-backend-go/internal/handler/http/response"
)

// Leave attachments are capped at this size.
const maxAttachmentUploadBytes = 10 << 20

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	UploadAttachment(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Submit implements LeaveHandler.
func (l *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var createReq leave.CreateLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := l.leaveService.Submit(r.Context(), createReq)
	if err != nil {
		slog.Error("Submit leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// List implements LeaveHandler.
func (l *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")

	requests, err := l.leaveService.List(r.Context(), scope)
	if err != nil {
		slog.Error("List leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// UpdateStatus implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var statusReq leave.UpdateStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&statusReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	statusReq.ID = chi.URLParam(r, "id")

	if err := statusReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := l.leaveService.UpdateStatus(r.Context(), statusReq)
	if err != nil {
		slog.Error("Update leave status service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request processed successfully", updated)
}

// UploadAttachment implements LeaveHandler.
func (l *LeaveHandlerImpl) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxAttachmentUploadBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("attachment")
	if err != nil {
		response.BadRequest(w, "Missing attachment file", nil)
		return
	}
	defer file.Close()

	url, err := l.leaveService.UploadAttachment(r.Context(), id, file, header.Filename)
	if err != nil {
		slog.Error("Upload attachment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attachment uploaded successfully", map[string]string{"attachment_url": url})
}
