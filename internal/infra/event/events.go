package event

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	OrderCreatedEventName EventType = "order_created"
	UserActivityEventName EventType = "user_activity"
)

// HeaderEventType kafka message header key carrying the event type
const HeaderEventType = "event_type"

type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   EventType `json:"event_type"`
}

type OrderCreatedEvent struct {
	BaseEvent
	OrderID   string          `json:"order_id"`
	UserID    int             `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	OrderDate time.Time       `json:"order_date"`
}

type UserActivityEvent struct {
	BaseEvent
	UserID int       `json:"user_id"`
	Type   string    `json:"type"`
	Date   time.Time `json:"date"`
}
