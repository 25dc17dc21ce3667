package constants

import "time"

type ContextKey string

const (
	RequestIDKey   ContextKey = "request_id"
	AuthPayloadKey ContextKey = "auth_payload"
)

const (
	// AccessTokenDuration token有效時間
	AccessTokenDuration = 24 * time.Hour

	// StoreTimeout 請求context的deadline，db/redis round trip都受這個上限約束
	StoreTimeout = 5 * time.Second
)
