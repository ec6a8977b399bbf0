package service

import (
	"context"
	"fmt"
	"time"

	"vocabforge-be/internal/dto"
	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/pkg/logger"
	"vocabforge-be/internal/repository/specification"
	"vocabforge-be/internal/repository/unitofwork"
	"vocabforge-be/pkg/vocab"

	"github.com/google/uuid"
)

type ITopicService interface {
	Adopt(ctx context.Context, req *dto.AdoptTopicRequest) (*dto.AdoptTopicResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.UserTopicItem, error)
	Update(ctx context.Context, req *dto.UpdateUserTopicRequest) error
}

type topicService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewTopicService(uowFactory unitofwork.RepositoryFactory, sysLogger logger.ILogger) ITopicService {
	return &topicService{
		uowFactory: uowFactory,
		logger:     sysLogger,
	}
}

// Adopt links the user to a topic, creating the topic first if nobody has
// submitted it yet. The canonical set is attached later by the generation
// pipeline.
func (s *topicService) Adopt(ctx context.Context, req *dto.AdoptTopicRequest) (*dto.AdoptTopicResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	topicRepo := uow.TopicRepository()

	key := vocab.TopicKey(req.TopicName)
	topic, err := topicRepo.FindOne(ctx, specification.ByNormalizedName{Name: key})
	if err != nil {
		return nil, fmt.Errorf("topic lookup failed: %w", err)
	}
	if topic == nil {
		topic = &entity.Topic{
			Id:             uuid.New(),
			Name:           vocab.Normalize(req.TopicName),
			NormalizedName: key,
			UsageCount:     1,
			CreatedAt:      time.Now(),
		}
		if err := topicRepo.Create(ctx, topic); err != nil {
			// Concurrent adoption of a brand-new topic: re-read the
			// winner's row.
			topic, err = topicRepo.FindOne(ctx, specification.ByNormalizedName{Name: key})
			if err != nil || topic == nil {
				return nil, fmt.Errorf("topic creation failed: %w", err)
			}
		}
	} else {
		if err := topicRepo.IncrementUsage(ctx, topic.Id); err != nil {
			s.logger.Warn("TOPIC", "Failed to bump topic usage", map[string]interface{}{
				"topic_id": topic.Id.String(),
				"error":    err.Error(),
			})
		}
	}

	utRepo := uow.UserTopicRepository()
	existing, err := utRepo.FindOne(ctx,
		specification.ByUser{UserID: req.UserId},
		specification.ByTopic{TopicID: topic.Id},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.AdoptTopicResponse{
			UserTopicId: existing.Id,
			TopicId:     topic.Id,
			TopicName:   topic.Name,
		}, nil
	}

	weight := req.Weight
	if weight <= 0 {
		weight = 1
	}
	userTopic := &entity.UserTopic{
		Id:        uuid.New(),
		UserId:    req.UserId,
		TopicId:   topic.Id,
		Weight:    weight,
		Enabled:   true,
		CreatedAt: time.Now(),
	}
	if err := utRepo.Create(ctx, userTopic); err != nil {
		return nil, fmt.Errorf("user topic creation failed: %w", err)
	}

	s.logger.Info("TOPIC", "Topic adopted", map[string]interface{}{
		"user_id": req.UserId.String(),
		"topic":   topic.Name,
	})
	return &dto.AdoptTopicResponse{
		UserTopicId: userTopic.Id,
		TopicId:     topic.Id,
		TopicName:   topic.Name,
	}, nil
}

func (s *topicService) List(ctx context.Context, userId uuid.UUID) ([]*dto.UserTopicItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	userTopics, err := uow.UserTopicRepository().FindAll(ctx, specification.ByUser{UserID: userId})
	if err != nil {
		return nil, err
	}

	items := make([]*dto.UserTopicItem, 0, len(userTopics))
	for _, ut := range userTopics {
		topic, err := uow.TopicRepository().FindOne(ctx, specification.ByID{ID: ut.TopicId})
		if err != nil {
			return nil, err
		}
		name := ""
		if topic != nil {
			name = topic.Name
		}
		items = append(items, &dto.UserTopicItem{
			Id:        ut.Id,
			TopicId:   ut.TopicId,
			TopicName: name,
			Weight:    ut.Weight,
			Enabled:   ut.Enabled,
			CreatedAt: ut.CreatedAt,
		})
	}
	return items, nil
}

func (s *topicService) Update(ctx context.Context, req *dto.UpdateUserTopicRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserTopicRepository()

	userTopic, err := repo.FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if userTopic == nil {
		return ErrNotFound
	}
	if userTopic.UserId != req.UserId {
		return ErrForbidden
	}

	if req.Weight != nil {
		userTopic.Weight = *req.Weight
	}
	if req.Enabled != nil {
		userTopic.Enabled = *req.Enabled
	}
	return repo.Update(ctx, userTopic)
}
