package get_user_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/service/bookings/models"
)

type fakeService struct {
	req *models.GetUserBookingsRequest
}

func (f *fakeService) GetUserBookings(_ context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	f.req = req
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 2}, {ID: 1}}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me/bookings"+query, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_DefaultsAndFilter(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})

	rec := serve(h, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.req.UserID)
	assert.Equal(t, uint64(50), svc.req.Limit)
	assert.Nil(t, svc.req.Status)

	rec = serve(h, "?status=confirmed&limit=10&offset=20")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.req.Status)
	assert.Equal(t, "confirmed", *svc.req.Status)
	assert.Equal(t, uint64(10), svc.req.Limit)
	assert.Equal(t, uint64(20), svc.req.Offset)
}

func TestHandle_InvalidQuery(t *testing.T) {
	h := NewHandler(&fakeService{}, nopLogger{})

	for _, query := range []string{"?status=unknown", "?limit=500", "?limit=-1", "?offset=x"} {
		t.Run(query, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, serve(h, query).Code)
		})
	}
}

func TestHandle_MissingUser(t *testing.T) {
	h := NewHandler(&fakeService{}, nopLogger{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me/bookings", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
