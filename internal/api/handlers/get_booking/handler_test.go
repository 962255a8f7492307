package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings/models"
)

type fakeService struct {
	userID int64
	err    error
}

func (f *fakeService) GetByID(_ context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{
		ID:         id,
		UserID:     userID,
		StartTime:  "10:00",
		EndTime:    "12:00",
		Status:     "pending",
		TotalPrice: "90.00",
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, bookingID string, withUser bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_ReturnsOwnBooking(t *testing.T) {
	svc := &fakeService{}
	rec := serve(NewHandler(svc, nopLogger{}), "5", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.userID)

	var body BookingDetailsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(5), body.ID)
	assert.Equal(t, "90.00", body.TotalPrice)
	assert.Equal(t, "2.00", body.DurationHours)
	assert.True(t, body.AwaitingPayment)
	assert.True(t, body.Cancellable)
}

func TestFromServiceResponse_CancelledBooking(t *testing.T) {
	details := FromServiceResponse(&models.BookingResponse{StartTime: "09:00", EndTime: "09:30", Status: "cancelled"})

	assert.Equal(t, "0.50", details.DurationHours)
	assert.False(t, details.AwaitingPayment)
	assert.False(t, details.Cancellable)
}

func TestHandle_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		bookingID string
		withUser  bool
		err       error
		status    int
	}{
		{name: "bad id", bookingID: "abc", withUser: true, status: http.StatusBadRequest},
		{name: "zero id", bookingID: "0", withUser: true, status: http.StatusBadRequest},
		{name: "no user", bookingID: "5", status: http.StatusUnauthorized},
		{name: "not found", bookingID: "5", withUser: true, err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "other owner", bookingID: "5", withUser: true, err: bookings.ErrUnauthorized, status: http.StatusForbidden},
		{name: "internal", bookingID: "5", withUser: true, err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.err}, nopLogger{}), tt.bookingID, tt.withUser)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
