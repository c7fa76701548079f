package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CarwashBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	updateStatus "github.com/m04kA/SMC-CarwashBooking/internal/usecase/update_status"
)

type mockUpdater struct{ mock.Mock }

func (m *mockUpdater) Execute(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*updateStatus.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/bookings/{appointmentId}/cancel", h.Handle).Methods(http.MethodPatch)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPatch, "/api/bookings/apt-1/cancel", nil)
	} else {
		req = httptest.NewRequest(http.MethodPatch, "/api/bookings/apt-1/cancel", strings.NewReader(body))
	}
	req = req.WithContext(middleware.WithUserID(req.Context(), 4))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CancelsAsCustomer(t *testing.T) {
	uc := new(mockUpdater)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *updateStatus.Request) bool {
		return r.AppointmentID == "apt-1" &&
			r.NewStatus == domain.StatusCancelled.String() &&
			r.ChangedBy == domain.ChangedByCustomer(4) &&
			r.OwnerID != nil && *r.OwnerID == 4 &&
			r.Reason == "plans changed"
	})).Return(&updateStatus.Response{AppointmentID: "apt-1", NewStatus: domain.StatusCancelled}, nil)

	rec := serve(NewHandler(uc, nopLogger{}), `{"cancellation_reason":"plans changed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"Cancelled"`)
	uc.AssertExpectations(t)
}

func TestHandler_EmptyBodyAllowed(t *testing.T) {
	uc := new(mockUpdater)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *updateStatus.Request) bool {
		return r.Reason == ""
	})).Return(&updateStatus.Response{AppointmentID: "apt-1"}, nil)

	rec := serve(NewHandler(uc, nopLogger{}), "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", updateStatus.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", updateStatus.ErrForbidden, http.StatusForbidden},
		{"already completed", updateStatus.ErrInvalidTransition, http.StatusBadRequest},
		{"concurrent", updateStatus.ErrConcurrentUpdate, http.StatusConflict},
		{"internal", updateStatus.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUpdater)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(uc, nopLogger{}), `{}`)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
