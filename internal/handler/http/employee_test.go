package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/facemark/attendance-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmployeeService struct {
	employee.Service

	profile    employee.EmployeeResponse
	profileErr error
}

func (s *stubEmployeeService) GetProfile(ctx context.Context) (employee.EmployeeResponse, error) {
	if s.profileErr != nil {
		return employee.EmployeeResponse{}, s.profileErr
	}
	return s.profile, nil
}

func TestEmployeeHandler_GetProfileName(t *testing.T) {
	t.Parallel()

	handler := NewEmployeeHandler(&stubEmployeeService{
		profile: employee.EmployeeResponse{EmployeeID: "E1", Name: "Asha Rao"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/profile/name", nil)
	rec := httptest.NewRecorder()

	handler.GetProfileName(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, map[string]string{"name": "Asha Rao"}, body.Data)
}

func TestEmployeeHandler_GetProfilePhoto(t *testing.T) {
	t.Parallel()

	photo := "/uploads/profile_photos/e1.png"
	handler := NewEmployeeHandler(&stubEmployeeService{
		profile: employee.EmployeeResponse{EmployeeID: "E1", Name: "Asha Rao", ProfilePhotoURL: &photo},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/profile/photo", nil)
	rec := httptest.NewRecorder()

	handler.GetProfilePhoto(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data map[string]*string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Data["profile_photo"])
	assert.Equal(t, photo, *body.Data["profile_photo"])
}

func TestEmployeeHandler_GetProfilePhoto_NoPhoto(t *testing.T) {
	t.Parallel()

	handler := NewEmployeeHandler(&stubEmployeeService{
		profile: employee.EmployeeResponse{EmployeeID: "E1", Name: "Asha Rao"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/profile/photo", nil)
	rec := httptest.NewRecorder()

	handler.GetProfilePhoto(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data map[string]*string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Nil(t, body.Data["profile_photo"])
}

func TestEmployeeHandler_GetProfileName_UnknownCaller(t *testing.T) {
	t.Parallel()

	handler := NewEmployeeHandler(&stubEmployeeService{profileErr: employee.ErrEmployeeNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/profile/name", nil)
	rec := httptest.NewRecorder()

	handler.GetProfileName(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
