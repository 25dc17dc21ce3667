package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anayaorganic/shop-backend/pkg/api"
	"github.com/anayaorganic/shop-backend/internal/constants"
	"github.com/anayaorganic/shop-backend/internal/model"
	"github.com/anayaorganic/shop-backend/internal/token"
	"github.com/anayaorganic/shop-backend/internal/util"
)

// AuthPayloadMiddleware 有帶token就解析放入context，沒帶不擋
// 是否強制登入由AuthMiddleware決定
func AuthPayloadMiddleware(tokenMaker token.Maker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			fields := strings.Fields(authHeader)
			if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
				next.ServeHTTP(w, r)
				return
			}

			payload, err := tokenMaker.VerifyToken(fields[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), constants.AuthPayloadKey, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthMiddleware 必須登入
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := util.GetTokenPayloadFromContext(r.Context())
		if payload == nil {
			api.ErrorJSON(w, http.StatusUnauthorized, "authorization required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminMiddleware 必須是管理員
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := util.GetTokenPayloadFromContext(r.Context())
		if payload == nil {
			api.ErrorJSON(w, http.StatusUnauthorized, "authorization required")
			return
		}
		if payload.Role != model.RoleAdmin {
			api.ErrorJSON(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
