package spaceservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_GetByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/spaces/5":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":5,"owner_id":2,"name":"Loft","capacity":12,"price_per_hour":"15.50","status":"available"}`))
		case "/internal/spaces/6":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})

	space, err := client.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 12, space.Capacity)
	assert.Equal(t, "15.50", space.PricePerHour.StringFixed(2))
	assert.Equal(t, domain.SpaceStatusAvailable, space.Status)

	_, err = client.GetByID(context.Background(), 6)
	assert.ErrorIs(t, err, ErrSpaceNotFound)

	_, err = client.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
