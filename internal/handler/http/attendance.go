package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/facemark/attendance-backend-go/internal/domain/attendance"
	"github.com/facemark/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
	GetMyRecords(w http.ResponseWriter, r *http.Request)
	ListForDate(w http.ResponseWriter, r *http.Request)
	ListByRange(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	GetForEmployee(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Check implements AttendanceHandler. First tap of the day checks in,
// second tap checks out.
func (h *AttendanceHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	var checkReq attendance.CheckRequest

	if err := json.NewDecoder(r.Body).Decode(&checkReq); err != nil {
		slog.Error("Check decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	checkResp, err := h.attendanceService.CheckInOrOut(r.Context(), checkReq)
	if err != nil {
		slog.Error("Check service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Attendance recorded",
		"employee_id", checkResp.EmployeeID,
		"action", checkResp.Action,
		"status", checkResp.Status)
	response.SuccessWithMessage(w, "Attendance recorded", checkResp)
}

// GetMyRecords implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMyRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.GetMyRecords(r.Context())
	if err != nil {
		slog.Error("GetMyRecords service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListForDate implements AttendanceHandler. Date defaults to today.
func (h *AttendanceHandlerImpl) ListForDate(w http.ResponseWriter, r *http.Request) {
	filter := attendance.DateFilter{
		Date:          queryParam(r, "date"),
		EmployeeID:    queryParam(r, "employee_id"),
		Department:    queryParam(r, "department"),
		Designation:   queryParam(r, "designation"),
		NameSubstring: queryParam(r, "name"),
	}

	records, err := h.attendanceService.GetRecordsForDate(r.Context(), filter)
	if err != nil {
		slog.Error("ListForDate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListByRange implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListByRange(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	records, err := h.attendanceService.GetRecordsByDateRange(r.Context(), attendance.RangeFilter{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		slog.Error("ListByRange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Summary implements AttendanceHandler. All records grouped by date,
// feeding the dashboard chart.
func (h *AttendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.attendanceService.GetAllRecordsGroupedByDate(r.Context())
	if err != nil {
		slog.Error("Summary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, grouped)
}

// GetForEmployee implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	records, err := h.attendanceService.GetRecordsForEmployee(r.Context(), employeeID)
	if err != nil {
		slog.Error("GetForEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// queryParam returns nil for an absent or empty query parameter.
func queryParam(r *http.Request, name string) *string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil
	}
	return &value
}
