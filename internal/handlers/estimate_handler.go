package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"garage-backend/internal/middleware"
	"garage-backend/internal/models"
	"garage-backend/internal/services"
	"garage-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type EstimateHandler struct {
	Service  *services.EstimateService
	Renderer *services.RenderService
	Sender   *services.SendService
}

func NewEstimateHandler(s *services.EstimateService, renderer *services.RenderService, sender *services.SendService) *EstimateHandler {
	return &EstimateHandler{Service: s, Renderer: renderer, Sender: sender}
}

// CreateEstimate creates a new estimate
func (h *EstimateHandler) CreateEstimate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	estimate, err := h.Service.CreateEstimate(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.JSON(w, http.StatusCreated, estimate)
}

// GetEstimate retrieves an estimate by ID
func (h *EstimateHandler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid estimate ID", http.StatusBadRequest)
		return
	}

	estimate, err := h.Service.GetEstimate(r.Context(), id)
	if err != nil {
		http.Error(w, "Estimate not found", http.StatusNotFound)
		return
	}

	utils.JSON(w, http.StatusOK, estimate)
}

// ListEstimates returns all estimates, optionally filtered by ?status=
func (h *EstimateHandler) ListEstimates(w http.ResponseWriter, r *http.Request) {
	estimates, err := h.Service.ListEstimates(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, estimates)
}

// UpdateEstimate updates a pending estimate
func (h *EstimateHandler) UpdateEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid estimate ID", http.StatusBadRequest)
		return
	}

	var req models.UpdateEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	estimate, err := h.Service.UpdateEstimate(r.Context(), id, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.JSON(w, http.StatusOK, estimate)
}

// AcceptEstimate accepts an estimate and returns the created invoice
func (h *EstimateHandler) AcceptEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid estimate ID", http.StatusBadRequest)
		return
	}

	invoice, err := h.Service.AcceptEstimate(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	utils.JSON(w, http.StatusCreated, invoice)
}

// RejectEstimate rejects a pending estimate
func (h *EstimateHandler) RejectEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid estimate ID", http.StatusBadRequest)
		return
	}

	estimate, err := h.Service.RejectEstimate(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	utils.JSON(w, http.StatusOK, estimate)
}

// DeleteEstimate removes an estimate
func (h *EstimateHandler) DeleteEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid estimate ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteEstimate(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// templateIDParam reads an optional ?template= query parameter
func templateIDParam(r *http.Request) *int {
	raw := r.URL.Query().Get("template")
	if raw == "" {
		return nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &id
}

// PreviewEstimate returns the structured preview tree
func (h *EstimateHandler) PreviewEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid estimate ID", http.StatusBadRequest)
		return
	}

	estimate, err := h.Service.GetEstimate(r.Context(), id)
	if err != nil {
		http.Error(w, "Estimate not found", http.StatusNotFound)
		return
	}

	data, err := h.Renderer.EstimateData(r.Context(), estimate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	preview, err := h.Renderer.Preview(r.Context(), data, templateIDParam(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, preview)
}

// EstimatePDF streams the rendered PDF
func (h *EstimateHandler) EstimatePDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid estimate ID", http.StatusBadRequest)
		return
	}

	estimate, err := h.Service.GetEstimate(r.Context(), id)
	if err != nil {
		http.Error(w, "Estimate not found", http.StatusNotFound)
		return
	}

	data, err := h.Renderer.EstimateData(r.Context(), estimate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pdf, err := h.Renderer.RenderPDF(r.Context(), data, templateIDParam(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename="+estimate.EstimateNumber+".pdf")
	w.Write(pdf)
}

// SendEstimate emails the rendered estimate to the customer
func (h *EstimateHandler) SendEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid estimate ID", http.StatusBadRequest)
		return
	}

	var req models.SendDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var sentBy *int
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		sentBy = &userID
	}

	if err := h.Sender.SendEstimate(r.Context(), id, &req, sentBy); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
