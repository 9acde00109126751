package handlers

import (
	"io"
	"net/http"
	"strconv"

	"garage-backend/internal/middleware"
	"garage-backend/internal/services"
	"garage-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type AttachmentHandler struct {
	Service *services.AttachmentService
}

func NewAttachmentHandler(s *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{Service: s}
}

// Upload stores a file against a document. Multipart form with a
// single "file" part; document type and ID come from the route.
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	docType := vars["type"]
	docID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var uploadedBy *int
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		uploadedBy = &userID
	}

	attachment, err := h.Service.Upload(
		r.Context(),
		docType,
		docID,
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
		uploadedBy,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.JSON(w, http.StatusCreated, attachment)
}

// List returns the attachments recorded against a document
func (h *AttachmentHandler) List(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	docType := vars["type"]
	docID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	attachments, err := h.Service.List(r.Context(), docType, docID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, attachments)
}

// Download streams an attachment back to the caller
func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid attachment ID", http.StatusBadRequest)
		return
	}

	attachment, body, err := h.Service.Download(r.Context(), id)
	if err != nil {
		http.Error(w, "Attachment not found", http.StatusNotFound)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", attachment.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+attachment.FileName)
	io.Copy(w, body)
}

// Delete removes an attachment record and its stored object
func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid attachment ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
