package service

import (
	"context"
	"strings"

	"vocabforge-be/internal/pkg/logger"
	"vocabforge-be/pkg/events"
	pktNats "vocabforge-be/pkg/nats"
)

// IEventLogService tails the event bus and writes an audit trail of pipeline
// stages, quota denials and cost alerts. Other consumers (dashboards, mobile
// push) attach to the same stream with their own durable names.
type IEventLogService interface {
	Start() error
}

type eventLogService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewEventLogService(subscriber *pktNats.Subscriber, sysLogger logger.ILogger) IEventLogService {
	return &eventLogService{
		subscriber: subscriber,
		logger:     sysLogger,
	}
}

func (s *eventLogService) Start() error {
	return s.subscriber.Subscribe(">", "vocabforge-audit", s.handle)
}

func (s *eventLogService) handle(_ context.Context, event events.Event) error {
	module := "AUDIT"
	switch {
	case strings.HasPrefix(event.EventType(), "cost."):
		module = "COST"
	case strings.HasPrefix(event.EventType(), "quota."):
		module = "QUOTA"
	case strings.HasPrefix(event.EventType(), "generation."):
		module = "GENERATION"
	}

	details := event.Payload()
	if details == nil {
		details = map[string]interface{}{}
	}
	details["event_type"] = event.EventType()

	s.logger.Info(module, "Event observed", details)
	return nil
}
