package confirm_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings/models"
)

type fakeService struct {
	req *models.ConfirmBookingRequest
	err error
}

func (f *fakeService) Confirm(_ context.Context, bookingID int64, req *models.ConfirmBookingRequest) (*models.BookingResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: bookingID, Status: "confirmed", PaymentReference: req.PaymentReference}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, bookingID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/internal/bookings/"+bookingID+"/confirm", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Confirms(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})

	rec := serve(h, "3", `{"paymentReference":"pi_123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.req.PaymentReference)
	assert.Equal(t, "pi_123", *svc.req.PaymentReference)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)

	rec = serve(h, "3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.req.PaymentReference)
}

func TestHandle_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		bookingID string
		body      string
		err       error
		status    int
	}{
		{name: "bad id", bookingID: "x", status: http.StatusBadRequest},
		{name: "unknown field", bookingID: "3", body: `{"amount":10}`, status: http.StatusBadRequest},
		{name: "empty reference", bookingID: "3", body: `{"paymentReference":""}`, status: http.StatusBadRequest},
		{name: "not found", bookingID: "3", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "cancelled", bookingID: "3", err: bookings.ErrInvalidState, status: http.StatusConflict},
		{name: "internal", bookingID: "3", err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.err}, nopLogger{}), tt.bookingID, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
