package update_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarwashBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	updateStatus "github.com/m04kA/SMC-CarwashBooking/internal/usecase/update_status"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*updateStatus.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, body string, userID int64) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/bookings/{appointmentId}/status", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/apt-1/status", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Success(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, nopLogger{})

	started := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *updateStatus.Request) bool {
		return r.AppointmentID == "apt-1" && r.NewStatus == "On Going" && r.ChangedBy == domain.ChangedByOwner(5)
	})).Return(&updateStatus.Response{
		AppointmentID: "apt-1",
		OldStatus:     domain.StatusConfirmed,
		NewStatus:     domain.StatusInProgress,
		StartedAt:     &started,
		ChangedAt:     started,
	}, nil)

	rec := serve(h, `{"new_status":"On Going","reason":"washer arrived"}`, 5)

	require.Equal(t, http.StatusOK, rec.Code)
	var body UpdateStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, msgStatusUpdated, body.Message)
	assert.Equal(t, "In Progress", body.NewStatus)
	require.NotNil(t, body.StartedAt)
	assert.Nil(t, body.CompletedAt)
	uc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		userID int64
		ucErr  error
		status int
	}{
		{"missing user", `{"new_status":"Done"}`, 0, nil, http.StatusUnauthorized},
		{"broken body", `{`, 5, nil, http.StatusBadRequest},
		{"missing status", `{"reason":"x"}`, 5, nil, http.StatusBadRequest},
		{"unknown status", `{"new_status":"teleported"}`, 5, updateStatus.ErrInvalidStatus, http.StatusBadRequest},
		{"not found", `{"new_status":"Done"}`, 5, updateStatus.ErrBookingNotFound, http.StatusNotFound},
		{"invalid transition", `{"new_status":"Pending"}`, 5, updateStatus.ErrInvalidTransition, http.StatusBadRequest},
		{"concurrent update", `{"new_status":"Done"}`, 5, updateStatus.ErrConcurrentUpdate, http.StatusConflict},
		{"internal", `{"new_status":"Done"}`, 5, updateStatus.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}
			h := NewHandler(uc, nopLogger{})

			rec := serve(h, tt.body, tt.userID)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestHandler_InternalErrorDetails(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, nopLogger{})

	dbErr := fmt.Errorf("%w: failed to update booking: %v", updateStatus.ErrInternal, "pq: connection refused")
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, dbErr)

	rec := serve(h, `{"new_status":"Done"}`, 5)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
	assert.Equal(t, dbErr.Error(), body.Details)
	assert.Contains(t, body.Details, "pq: connection refused")
}
