package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kintai-app/kintai-backend-go/internal/domain/correction"
	"github.com/kintai-app/kintai-backend-go/internal/handler/http/response"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/validator"
)

type CorrectionHandler interface {
	File(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
}

type correctionHandlerImpl struct {
	correctionService correction.CorrectionService
}

func NewCorrectionHandler(correctionService correction.CorrectionService) CorrectionHandler {
	return &correctionHandlerImpl{
		correctionService: correctionService,
	}
}

// File implements CorrectionHandler.
func (h *correctionHandlerImpl) File(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	date, ok := validator.IsValidDate(chi.URLParam(r, "date"))
	if !ok {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
		return
	}

	var req correction.CreateCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode correction request body", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	result, err := h.correctionService.File(r.Context(), employeeID, date, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction request filed", result)
}

// ListMine implements CorrectionHandler. Employees see only their own
// requests; status is an optional filter.
func (h *correctionHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := correction.RequestFilter{EmployeeID: &employeeID}
	if status, ok := parseStatus(r.URL.Query().Get("status")); ok {
		filter.Status = status
	} else {
		response.BadRequest(w, "Invalid status, expected pending or approved")
		return
	}

	result, err := h.correctionService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements CorrectionHandler. Non-admins can only read their own
// requests; anything else is reported as absent.
func (h *correctionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		response.BadRequest(w, "Invalid request id")
		return
	}

	result, err := h.correctionService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if result.EmployeeID != employeeID && !isAdminFromRequest(r) {
		response.HandleError(w, correction.ErrRequestNotFound)
		return
	}

	response.Success(w, result)
}

// List implements CorrectionHandler. Admin view across employees.
func (h *correctionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter correction.RequestFilter
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status, ok := parseStatus(r.URL.Query().Get("status")); ok {
		filter.Status = status
	} else {
		response.BadRequest(w, "Invalid status, expected pending or approved")
		return
	}

	result, err := h.correctionService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements CorrectionHandler.
func (h *correctionHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		response.BadRequest(w, "Invalid request id")
		return
	}

	result, err := h.correctionService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseStatus(s string) (*correction.RequestStatus, bool) {
	switch correction.RequestStatus(s) {
	case "":
		return nil, true
	case correction.RequestStatusPending, correction.RequestStatusApproved:
		status := correction.RequestStatus(s)
		return &status, true
	default:
		return nil, false
	}
}
