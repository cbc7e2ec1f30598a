package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Domenick1991/fitstudio/internal/domain"
	"github.com/Domenick1991/fitstudio/internal/service/classes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClassUseCase struct {
	mock.Mock
}

func (m *MockClassUseCase) ListClasses(ctx context.Context, zone string) ([]classes.ClassView, error) {
	args := m.Called(ctx, zone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]classes.ClassView), args.Error(1)
}

func TestClassHandler_list(t *testing.T) {
	mockService := &MockClassUseCase{}
	handler := NewClassHandler(mockService, "Asia/Kolkata")
	c, w := newTestContext(http.MethodGet, "/classes", nil)

	views := []classes.ClassView{
		{ID: 1, Name: "Yoga", DateTime: "2025-06-01 12:30:00", Instructor: "Rahul", AvailableSlots: 10},
	}
	mockService.On("ListClasses", mock.Anything, "Asia/Kolkata").Return(views, nil).Once()

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Yoga","datetime":"2025-06-01 12:30:00","instructor":"Rahul","available_slots":10}]`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestClassHandler_list_Empty(t *testing.T) {
	mockService := &MockClassUseCase{}
	handler := NewClassHandler(mockService, "UTC")
	c, w := newTestContext(http.MethodGet, "/classes", nil)

	mockService.On("ListClasses", mock.Anything, "UTC").Return([]classes.ClassView{}, nil).Once()

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestClassHandler_list_InvalidTimezone(t *testing.T) {
	mockService := &MockClassUseCase{}
	handler := NewClassHandler(mockService, "UTC")
	c, w := newTestContext(http.MethodGet, "/classes?timezone=Mars/Base", nil)

	mockService.On("ListClasses", mock.Anything, "Mars/Base").Return(nil, domain.ErrInvalidTimezone).Once()

	handler.list(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "invalid timezone")
}
