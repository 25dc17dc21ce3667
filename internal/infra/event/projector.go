package event

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/anayaorganic/shop-backend/internal/infra/repository/db"
	"github.com/anayaorganic/shop-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Projector consumes domain events and maintains the reporting tables
// (daily revenues, user activities). Runs as an in-process goroutine.
type Projector struct {
	reader     *kafka.Reader
	reportRepo db.IReportRepository
	logger     *zerolog.Logger
	closed     atomic.Bool
}

func NewProjector(brokers []string, topic, groupID string, reportRepo db.IReportRepository, logger *zerolog.Logger) *Projector {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        time.Second,
		CommitInterval: 100 * time.Millisecond,

		Dialer: &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
			KeepAlive: 30 * time.Second,
		},

		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error().Msgf("kafka reader error: "+msg, args...)
		}),
	})

	return &Projector{reader: reader, reportRepo: reportRepo, logger: logger}
}

// Run blocks until ctx is cancelled or the projector is closed.
// Projection errors are logged and the message is skipped, the loop
// never dies on a bad payload.
func (p *Projector) Run(ctx context.Context) error {
	for {
		msg, err := p.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || p.closed.Load() {
				return nil
			}
			p.logger.Error().Err(err).Msg("projector read failed")
			continue
		}

		if err := p.project(ctx, msg); err != nil {
			p.logger.Error().
				Err(err).
				Str("key", string(msg.Key)).
				Msg("projection failed, message skipped")
		}
	}
}

func (p *Projector) project(ctx context.Context, msg kafka.Message) error {
	eventType := headerValue(msg, HeaderEventType)

	switch EventType(eventType) {
	case OrderCreatedEventName:
		var evt OrderCreatedEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			return err
		}
		return p.reportRepo.UpsertDailyRevenue(ctx, evt.OrderDate, evt.Amount)

	case UserActivityEventName:
		var evt UserActivityEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			return err
		}
		return p.reportRepo.CreateUserActivity(ctx, &model.UserActivity{
			ActivityID: uuid.New().String(),
			UserID:     evt.UserID,
			Type:       evt.Type,
			Date:       evt.Date,
		})

	default:
		return ErrUnknownEvent
	}
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (p *Projector) Close() error {
	if p.closed.CompareAndSwap(false, true) {
		return p.reader.Close()
	}
	return nil
}
