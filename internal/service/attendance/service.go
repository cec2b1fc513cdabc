package attendance

import (
	"context"
	"fmt"

	"github.com/facemark/attendance-backend-go/internal/domain/attendance"
	"github.com/facemark/attendance-backend-go/internal/domain/employee"
	"github.com/facemark/attendance-backend-go/internal/pkg/clock"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	store     attendance.Repository
	directory employee.Repository
	clk       clock.Clock
}

func NewAttendanceService(
	store attendance.Repository,
	directory employee.Repository,
	clk clock.Clock,
) attendance.Service {
	return &AttendanceServiceImpl{
		store:     store,
		directory: directory,
		clk:       clk,
	}
}

// CheckInOrOut implements attendance.Service.
//
// The caller never declares an intent; the store's conditional write
// decides between check-in and check-out from the presence of a prior
// record for (employee, today). A transient store failure surfaces as-is,
// retrying is the caller's decision.
func (s *AttendanceServiceImpl) CheckInOrOut(ctx context.Context, req attendance.CheckRequest) (attendance.CheckResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckResponse{}, err
	}

	employeeID, err := s.directory.ResolveID(ctx, req.Identifier)
	if err != nil {
		return attendance.CheckResponse{}, err
	}

	now := s.clk.Now()
	date := clock.DateString(now)
	timeOfDay := clock.TimeString(now)
	status := attendance.Classify(timeOfDay)

	action, err := s.store.RecordCheckIn(ctx, employeeID, date, timeOfDay, status)
	if err != nil {
		return attendance.CheckResponse{}, err
	}

	if action == attendance.ActionCheckedOut {
		// The record keeps the status it was created with; report that one,
		// not the classification of this tap.
		rec, err := s.store.GetByEmployeeAndDate(ctx, employeeID, date)
		if err == nil && rec != nil {
			status = rec.Status
		}
	}

	return attendance.CheckResponse{
		Action:     action,
		EmployeeID: employeeID,
		Date:       date,
		Time:       timeOfDay,
		Status:     status,
	}, nil
}

// GetMyRecords implements attendance.Service.
func (s *AttendanceServiceImpl) GetMyRecords(ctx context.Context) ([]attendance.RecordResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("email claim is missing or invalid")
	}

	emp, err := s.directory.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	records, err := s.store.GetByEmployee(ctx, emp.EmployeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		resp := mapRecordToResponse(rec)
		resp.EmployeeName = &emp.Name
		responses = append(responses, resp)
	}

	return responses, nil
}

// GetRecordsForEmployee implements attendance.Service.
func (s *AttendanceServiceImpl) GetRecordsForEmployee(ctx context.Context, employeeID string) ([]attendance.RecordResponse, error) {
	emp, err := s.directory.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, err := s.store.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		resp := mapRecordToResponse(rec)
		resp.EmployeeName = &emp.Name
		responses = append(responses, resp)
	}

	return responses, nil
}

// GetRecordsForDate implements attendance.Service. An empty date filter
// means today in the configured timezone.
func (s *AttendanceServiceImpl) GetRecordsForDate(ctx context.Context, filter attendance.DateFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	date := clock.DateString(s.clk.Now())
	if filter.Date != nil && *filter.Date != "" {
		date = *filter.Date
	}

	records, err := s.store.ListForDate(ctx, date, filter)
	if err != nil {
		return nil, err
	}

	return mapRecordsToResponses(records), nil
}

// GetRecordsByDateRange implements attendance.Service.
func (s *AttendanceServiceImpl) GetRecordsByDateRange(ctx context.Context, filter attendance.RangeFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.store.ListByDateRange(ctx, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}

	return mapRecordsToResponses(records), nil
}

// GetAllRecordsGroupedByDate implements attendance.Service.
func (s *AttendanceServiceImpl) GetAllRecordsGroupedByDate(ctx context.Context) (map[string][]attendance.RecordResponse, error) {
	records, err := s.store.ListAllJoined(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]attendance.RecordResponse)
	for _, rec := range records {
		grouped[rec.Date] = append(grouped[rec.Date], mapRecordToResponse(rec))
	}

	return grouped, nil
}

func mapRecordToResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		Date:         rec.Date,
		CheckInTime:  rec.CheckInTime,
		CheckOutTime: rec.CheckOutTime,
		Status:       rec.Status,
		EmployeeName: rec.EmployeeName,
		Department:   rec.Department,
		Designation:  rec.Designation,
	}
}

func mapRecordsToResponses(records []attendance.Record) []attendance.RecordResponse {
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}
	return responses
}
