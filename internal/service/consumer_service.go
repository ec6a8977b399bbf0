package service

import (
	"context"
	"encoding/json"
	"errors"

	"vocabforge-be/internal/dto"
	"vocabforge-be/internal/pkg/logger"
	"vocabforge-be/pkg/quota"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	workers           int
	generationService IGenerationService
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	workers int,
	generationService IGenerationService,
	sysLogger logger.ILogger,
) IConsumerService {
	if workers <= 0 {
		workers = 3
	}
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		workers:           workers,
		generationService: generationService,
		logger:            sysLogger,
	}
}

// Consume starts the worker pool. Workers share the subscription channel so
// jobs spread across them; each job runs the full pipeline independently.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	for i := 0; i < cs.workers; i++ {
		go func(worker int) {
			for msg := range messages {
				cs.processMessage(ctx, worker, msg)
			}
		}(i)
	}

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, worker int, msg *message.Message) {
	var job dto.GenerationJobMessage
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal job", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("CONSUMER", "Processing generation job", map[string]interface{}{
		"worker": worker,
		"job_id": job.JobId.String(),
		"topic":  job.TopicName,
	})

	stats, err := cs.generationService.RunJob(ctx, &job)
	if err != nil {
		// Canonical conflicts after exhausted retries and transient
		// failures are retriable. An engaged emergency stop is not a
		// property of this job, so the job waits in the queue too.
		if errors.Is(err, quota.ErrEmergencyStop) || errors.Is(err, ErrCanonicalConflict) {
			cs.logger.Warn("CONSUMER", "Job requeued", map[string]interface{}{
				"job_id": job.JobId.String(),
				"error":  err.Error(),
			})
			msg.Nack()
			return
		}
		cs.logger.Error("CONSUMER", "Job failed", map[string]interface{}{
			"job_id": job.JobId.String(),
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("CONSUMER", "Job completed", map[string]interface{}{
		"job_id":          job.JobId.String(),
		"topic":           stats.TopicName,
		"persisted_terms": stats.PersistedTerms,
		"persisted_facts": stats.PersistedFacts,
	})
	msg.Ack()
}
