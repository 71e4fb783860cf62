package service

import (
	"context"
	"sync"

	"shopping-assistant-be/internal/pkg/logger"
	"shopping-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const analyticsModule = "Analytics"

type IAnalyticsService interface {
	Consume(ctx context.Context) error
	Counts() (byType map[string]int64, byIntent map[string]int64)
}

// analyticsService tallies assistant events coming off the in-process bus.
type analyticsService struct {
	subscriber message.Subscriber
	topicName  string
	logger     logger.ILogger

	mu       sync.Mutex
	byType   map[string]int64
	byIntent map[string]int64
}

func NewAnalyticsService(subscriber message.Subscriber, topicName string, log logger.ILogger) IAnalyticsService {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &analyticsService{
		subscriber: subscriber,
		topicName:  topicName,
		logger:     log,
		byType:     make(map[string]int64),
		byIntent:   make(map[string]int64),
	}
}

// Consume subscribes and returns; messages are processed until ctx is done.
func (as *analyticsService) Consume(ctx context.Context) error {
	messages, err := as.subscriber.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(msg)
		}
	}()

	return nil
}

func (as *analyticsService) processMessage(msg *message.Message) {
	event, err := events.Decode(msg.Payload)
	if err != nil {
		as.logger.Warn(analyticsModule, "Dropping undecodable event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// invalid payloads would never decode, so do not redeliver
		msg.Ack()
		return
	}

	as.mu.Lock()
	as.byType[event.Type]++
	if event.Type == events.TypeTurnRecorded {
		if intent, ok := event.Data["intent"].(string); ok {
			as.byIntent[intent]++
		}
	}
	as.mu.Unlock()

	as.logger.Debug(analyticsModule, "Event counted", map[string]interface{}{
		"type":        event.Type,
		"occurred_at": event.OccurredAt,
	})
	msg.Ack()
}

func (as *analyticsService) Counts() (map[string]int64, map[string]int64) {
	as.mu.Lock()
	defer as.mu.Unlock()

	byType := make(map[string]int64, len(as.byType))
	for k, v := range as.byType {
		byType[k] = v
	}
	byIntent := make(map[string]int64, len(as.byIntent))
	for k, v := range as.byIntent {
		byIntent[k] = v
	}
	return byType, byIntent
}
