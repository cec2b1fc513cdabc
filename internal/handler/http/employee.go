package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/facemark/attendance-backend-go/internal/domain/employee"
	"github.com/facemark/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	GetProfile(w http.ResponseWriter, r *http.Request)
	GetProfileName(w http.ResponseWriter, r *http.Request)
	GetProfilePhoto(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.Service
}

func NewEmployeeHandler(employeeService employee.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// GetProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.employeeService.GetProfile(r.Context())
	if err != nil {
		slog.Error("GetProfile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// GetProfileName implements EmployeeHandler. Thin view for clients that
// only render the greeting.
func (h *EmployeeHandlerImpl) GetProfileName(w http.ResponseWriter, r *http.Request) {
	profile, err := h.employeeService.GetProfile(r.Context())
	if err != nil {
		slog.Error("GetProfileName service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"name": profile.Name})
}

// GetProfilePhoto implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetProfilePhoto(w http.ResponseWriter, r *http.Request) {
	profile, err := h.employeeService.GetProfile(r.Context())
	if err != nil {
		slog.Error("GetProfilePhoto service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]*string{"profile_photo": profile.ProfilePhotoURL})
}

// UpdateProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var updateReq employee.UpdateProfileRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.employeeService.UpdateProfile(r.Context(), updateReq); err != nil {
		slog.Error("UpdateProfile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", nil)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.ListFilter{
		Department:    queryParam(r, "department"),
		Designation:   queryParam(r, "designation"),
		NameSubstring: queryParam(r, "name"),
	}

	employees, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List employees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	emp, err := h.employeeService.Get(r.Context(), employeeID)
	if err != nil {
		slog.Error("Get employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq employee.UpdateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.EmployeeID = chi.URLParam(r, "employeeID")

	emp, err := h.employeeService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", emp)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	if err := h.employeeService.Delete(r.Context(), employeeID); err != nil {
		slog.Error("Delete employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}
