package middleware

import (
	"net/http"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gorilla/mux"
)

// Tracing оборачивает запросы в сегменты AWS X-Ray
func Tracing(serviceName string) mux.MiddlewareFunc {
	namer := xray.NewFixedSegmentNamer(serviceName)
	return func(next http.Handler) http.Handler {
		return xray.Handler(namer, next)
	}
}
