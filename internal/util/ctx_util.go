package util

import (
	"context"

	"github.com/anayaorganic/shop-backend/internal/constants"
	"github.com/anayaorganic/shop-backend/internal/token"
)

// GetTokenPayloadFromContext 取出auth middleware放入的token payload
// 未登入回傳nil
func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	if v := ctx.Value(constants.AuthPayloadKey); v != nil {
		if payload, ok := v.(*token.Payload); ok {
			return payload
		}
	}
	return nil
}

func GetRequestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(constants.RequestIDKey); v != nil {
		if requestID, ok := v.(string); ok {
			return requestID
		}
	}
	return "unknown"
}
