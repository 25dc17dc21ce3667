package middleware

import (
	"context"
	"net/http"

	"github.com/anayaorganic/shop-backend/internal/constants"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestIdMiddleware 沿用client帶來的X-Request-Id，沒有就產生一個
// 同時回寫到response header，方便跨服務追查
func RequestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(requestIDHeader)
		if requestId == "" {
			requestId = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, requestId)
		ctx := context.WithValue(r.Context(), constants.RequestIDKey, requestId)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
