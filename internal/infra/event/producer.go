package event

import (
	"context"
	"encoding/json"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// Producer interface defines the methods that an event producer must implement
type Producer interface {
	// ProduceOrderCreated publishes an order created event
	ProduceOrderCreated(ctx context.Context, orderID string, userID int, amount decimal.Decimal, orderDate time.Time) error
	// ProduceUserActivity publishes a user activity event
	ProduceUserActivity(ctx context.Context, userID int, activityType string) error
	// Close closes the producer
	Close() error
}

// kafkaProducer implements the Producer interface
type kafkaProducer struct {
	writer *kafka.Writer
	logger *zerolog.Logger
	closed atomic.Bool
}

// NewProducer creates a new Kafka event producer
func NewProducer(brokers []string, topic string, logger *zerolog.Logger) Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		MaxAttempts:  3,

		// 重連機制設置
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},

		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error().Msgf("kafka producer error: "+msg, args...)
		}),

		Compression: kafka.Snappy,
	}

	return &kafkaProducer{writer: writer, logger: logger}
}

func (p *kafkaProducer) ProduceOrderCreated(ctx context.Context, orderID string, userID int, amount decimal.Decimal, orderDate time.Time) error {
	evt := OrderCreatedEvent{
		BaseEvent: BaseEvent{
			EventID:     uuid.New().String(),
			AggregateID: orderID,
			EventType:   OrderCreatedEventName,
		},
		OrderID:   orderID,
		UserID:    userID,
		Amount:    amount,
		OrderDate: orderDate,
	}
	return p.produce(ctx, orderID, OrderCreatedEventName, evt)
}

func (p *kafkaProducer) ProduceUserActivity(ctx context.Context, userID int, activityType string) error {
	evt := UserActivityEvent{
		BaseEvent: BaseEvent{
			EventID:     uuid.New().String(),
			AggregateID: uuid.New().String(),
			EventType:   UserActivityEventName,
		},
		UserID: userID,
		Type:   activityType,
		Date:   time.Now().UTC(),
	}
	return p.produce(ctx, evt.AggregateID, UserActivityEventName, evt)
}

func (p *kafkaProducer) produce(ctx context.Context, key string, eventType EventType, payload interface{}) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(eventType)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *kafkaProducer) Close() error {
	if p.closed.CompareAndSwap(false, true) {
		return p.writer.Close()
	}
	return nil
}
