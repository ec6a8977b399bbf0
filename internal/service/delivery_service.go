package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"vocabforge-be/internal/dto"
	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/pkg/logger"
	"vocabforge-be/internal/repository/specification"
	"vocabforge-be/internal/repository/unitofwork"
	"vocabforge-be/pkg/vocab"

	"github.com/google/uuid"
)

// bucketIntervals is the review spacing policy: higher bucket, longer wait.
var bucketIntervals = map[int]time.Duration{
	1: 24 * time.Hour,
	2: 3 * 24 * time.Hour,
	3: 7 * 24 * time.Hour,
	4: 14 * 24 * time.Hour,
	5: 30 * 24 * time.Hour,
}

func reviewInterval(bucket int) time.Duration {
	if d, ok := bucketIntervals[bucket]; ok {
		return d
	}
	return bucketIntervals[entity.MinBucket]
}

const deliveryFactCount = 3

type IDeliveryService interface {
	NextWord(ctx context.Context, userId uuid.UUID) (*dto.NextWordResponse, error)
	RecordAction(ctx context.Context, req *dto.RecordActionRequest) (*dto.RecordActionResponse, error)
}

type deliveryService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
	now              func() time.Time
	rng              *rand.Rand
}

func NewDeliveryService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
) IDeliveryService {
	return &deliveryService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           sysLogger,
		now:              time.Now,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NextWord picks what the user should see now: the most overdue learning
// entry first, else an unseen approved term from one of their enabled
// topics, else nothing (after kicking off generation for a followed topic).
func (s *deliveryService) NextWord(ctx context.Context, userId uuid.UUID) (*dto.NextWordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()

	// 1. Most overdue entry still being learned.
	due, err := uow.WordbankRepository().FindAll(ctx,
		specification.ByUser{UserID: userId},
		specification.StatusIs{Status: string(entity.WordStatusLearning)},
		specification.DueBefore{Time: now},
		specification.OrderBy{Field: "next_review"},
		specification.Pagination{Limit: 1},
	)
	if err != nil {
		return nil, fmt.Errorf("overdue lookup failed: %w", err)
	}
	if len(due) > 0 {
		entry := due[0]
		term, err := uow.TermRepository().FindOne(ctx, specification.ByID{ID: entry.TermId})
		if err != nil {
			return nil, err
		}
		if term == nil {
			return nil, fmt.Errorf("wordbank entry %s references missing term", entry.Id)
		}
		return s.deliver(ctx, uow, userId, term, entry)
	}

	// 2. Unseen approved term from an enabled topic.
	resp, err := s.deliverUnseen(ctx, uow, userId)
	if err != nil || resp != nil {
		return resp, err
	}

	// 3. Nothing left: refill a followed topic, hand back empty.
	s.triggerRefill(ctx, uow, userId)
	return &dto.NextWordResponse{Empty: true}, nil
}

func (s *deliveryService) deliverUnseen(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*dto.NextWordResponse, error) {
	userTopics, err := uow.UserTopicRepository().FindAll(ctx,
		specification.ByUser{UserID: userId},
		specification.EnabledOnly{},
	)
	if err != nil {
		return nil, fmt.Errorf("user topic lookup failed: %w", err)
	}
	if len(userTopics) == 0 {
		return nil, nil
	}

	seen, err := uow.WordbankRepository().FindAll(ctx, specification.ByUser{UserID: userId})
	if err != nil {
		return nil, fmt.Errorf("wordbank lookup failed: %w", err)
	}
	seenIds := make([]uuid.UUID, 0, len(seen))
	for _, e := range seen {
		seenIds = append(seenIds, e.TermId)
	}

	// Weighted random order over the user's topics, then first topic with
	// an unseen term wins.
	for _, ut := range s.weightedOrder(userTopics) {
		topic, err := uow.TopicRepository().FindOne(ctx, specification.ByID{ID: ut.TopicId})
		if err != nil {
			return nil, err
		}
		if topic == nil || topic.CanonicalSetId == nil {
			continue
		}
		terms, err := uow.TermRepository().FindAll(ctx,
			specification.ByCanonicalSet{CanonicalSetID: *topic.CanonicalSetId},
			specification.ModerationApproved{},
			specification.ExcludeTermIds{TermIDs: seenIds},
			specification.OrderBy{Field: "created_at", Desc: true},
			specification.Pagination{Limit: 1},
		)
		if err != nil {
			return nil, fmt.Errorf("unseen term lookup failed: %w", err)
		}
		if len(terms) == 0 {
			continue
		}

		entry, err := s.ensureWordbankEntry(ctx, uow, userId, terms[0].Id)
		if err != nil {
			return nil, err
		}
		return s.deliver(ctx, uow, userId, terms[0], entry)
	}
	return nil, nil
}

// weightedOrder shuffles topics so higher-weight topics tend to come first.
func (s *deliveryService) weightedOrder(userTopics []*entity.UserTopic) []*entity.UserTopic {
	remaining := make([]*entity.UserTopic, len(userTopics))
	copy(remaining, userTopics)
	ordered := make([]*entity.UserTopic, 0, len(remaining))

	for len(remaining) > 0 {
		total := 0
		for _, ut := range remaining {
			w := ut.Weight
			if w < 1 {
				w = 1
			}
			total += w
		}
		pick := s.rng.Intn(total)
		for i, ut := range remaining {
			w := ut.Weight
			if w < 1 {
				w = 1
			}
			if pick < w {
				ordered = append(ordered, ut)
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
			pick -= w
		}
	}
	return ordered
}

// ensureWordbankEntry creates the (user, term) scheduling record, surviving
// a concurrent delivery for the same user: the unique index arbitrates and
// the loser re-reads.
func (s *deliveryService) ensureWordbankEntry(ctx context.Context, uow unitofwork.UnitOfWork, userId, termId uuid.UUID) (*entity.WordbankEntry, error) {
	repo := uow.WordbankRepository()
	existing, err := repo.FindOne(ctx, specification.ByUserAndTerm{UserID: userId, TermID: termId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := s.now()
	next := now.Add(reviewInterval(entity.MinBucket))
	entry := &entity.WordbankEntry{
		Id:         uuid.New(),
		UserId:     userId,
		TermId:     termId,
		Status:     entity.WordStatusLearning,
		Bucket:     entity.MinBucket,
		NextReview: &next,
		CreatedAt:  now,
	}
	if err := repo.Create(ctx, entry); err != nil {
		// Unique (user_id, term_id) race: fetch the winner's row.
		existing, findErr := repo.FindOne(ctx, specification.ByUserAndTerm{UserID: userId, TermID: termId})
		if findErr == nil && existing != nil {
			return existing, nil
		}
		return nil, fmt.Errorf("wordbank entry creation failed: %w", err)
	}
	return entry, nil
}

func (s *deliveryService) deliver(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, term *entity.Term, entry *entity.WordbankEntry) (*dto.NextWordResponse, error) {
	delivery := &entity.Delivery{
		Id:          uuid.New(),
		UserId:      userId,
		TermId:      term.Id,
		DeliveredAt: s.now(),
		Action:      entity.ActionNone,
	}
	if err := uow.DeliveryRepository().Create(ctx, delivery); err != nil {
		return nil, fmt.Errorf("delivery record creation failed: %w", err)
	}

	facts, err := uow.FactRepository().FindAll(ctx,
		specification.ByTopic{TopicID: term.TopicId},
		specification.Pagination{Limit: deliveryFactCount},
	)
	if err != nil {
		s.logger.Warn("DELIVERY", "Fact lookup failed", map[string]interface{}{
			"topic_id": term.TopicId.String(),
			"error":    err.Error(),
		})
	}
	factTexts := make([]string, 0, len(facts))
	for _, f := range facts {
		factTexts = append(factTexts, f.Text)
	}

	example := ""
	if len(term.Examples) > 0 {
		example = term.Examples[0]
	}

	return &dto.NextWordResponse{
		Term:       term.Text,
		Definition: term.Definition,
		Example:    example,
		Facts:      factTexts,
		Delivery: &dto.DeliveryInfo{
			Id:          delivery.Id,
			DeliveredAt: delivery.DeliveredAt,
		},
		Wordbank: &dto.WordbankInfo{
			Id:     entry.Id,
			Bucket: entry.Bucket,
			Status: string(entry.Status),
		},
	}, nil
}

// triggerRefill enqueues a generation job for one of the user's followed
// topics. Best effort: delivery still returns empty either way.
func (s *deliveryService) triggerRefill(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) {
	userTopics, err := uow.UserTopicRepository().FindAll(ctx,
		specification.ByUser{UserID: userId},
		specification.EnabledOnly{},
	)
	if err != nil || len(userTopics) == 0 {
		return
	}

	// Same weighted preference as delivery itself.
	var topic *entity.Topic
	for _, ut := range s.weightedOrder(userTopics) {
		topic, err = uow.TopicRepository().FindOne(ctx, specification.ByID{ID: ut.TopicId})
		if err == nil && topic != nil {
			break
		}
	}
	if topic == nil {
		return
	}

	job := dto.GenerationJobMessage{
		JobId:      uuid.New(),
		UserId:     userId,
		TopicName:  topic.Name,
		Count:      10,
		Complexity: string(vocab.ComplexityIntermediate),
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("DELIVERY", "Failed to enqueue refill job", map[string]interface{}{
			"topic": topic.Name,
			"error": err.Error(),
		})
		return
	}
	s.logger.Info("DELIVERY", "Refill job enqueued", map[string]interface{}{
		"topic":   topic.Name,
		"user_id": userId.String(),
	})
}

func (s *deliveryService) RecordAction(ctx context.Context, req *dto.RecordActionRequest) (*dto.RecordActionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	delivery, err := uow.DeliveryRepository().FindOne(ctx, specification.ByID{ID: req.DeliveryId})
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, ErrNotFound
	}
	if delivery.UserId != req.UserId {
		return nil, ErrForbidden
	}

	action := entity.DeliveryAction(req.Action)
	now := s.now()
	delivery.Action = action
	delivery.OpenedAt = &now
	if err := uow.DeliveryRepository().Update(ctx, delivery); err != nil {
		return nil, fmt.Errorf("failed to record action: %w", err)
	}

	resp := &dto.RecordActionResponse{
		DeliveryId: delivery.Id,
		Action:     req.Action,
	}

	// NONE is a pure history record with no scheduling effect.
	if action == entity.ActionNone {
		return resp, nil
	}

	entry, err := s.findEntry(ctx, uow, req, delivery)
	if err != nil {
		return nil, err
	}

	s.applyTransition(entry, action, now)
	if err := uow.WordbankRepository().Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update wordbank entry: %w", err)
	}

	s.logger.Info("DELIVERY", "Review action recorded", map[string]interface{}{
		"delivery_id": delivery.Id.String(),
		"action":      req.Action,
		"bucket":      entry.Bucket,
		"status":      string(entry.Status),
	})

	resp.Wordbank = &dto.WordbankInfo{
		Id:     entry.Id,
		Bucket: entry.Bucket,
		Status: string(entry.Status),
	}
	return resp, nil
}

func (s *deliveryService) findEntry(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.RecordActionRequest, delivery *entity.Delivery) (*entity.WordbankEntry, error) {
	repo := uow.WordbankRepository()
	if req.WordbankId != nil {
		entry, err := repo.FindOne(ctx, specification.ByID{ID: *req.WordbankId})
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, ErrNotFound
		}
		if entry.UserId != req.UserId {
			return nil, ErrForbidden
		}
		return entry, nil
	}
	entry, err := repo.FindOne(ctx, specification.ByUserAndTerm{UserID: req.UserId, TermID: delivery.TermId})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	return entry, nil
}

// applyTransition moves the entry per the Leitner policy. Buckets stay in
// [MinBucket, MaxBucket]; MASTERED clears the schedule and is terminal, so
// later actions leave the entry untouched and only the delivery history
// carries them.
func (s *deliveryService) applyTransition(entry *entity.WordbankEntry, action entity.DeliveryAction, now time.Time) {
	if entry.Status == entity.WordStatusMastered {
		return
	}

	entry.ReviewCount++
	entry.LastReviewed = &now

	switch action {
	case entity.ActionFavorite:
		if entry.Bucket < entity.MaxBucket {
			entry.Bucket++
		}
		entry.Status = entity.WordStatusLearning
		next := now.Add(reviewInterval(entry.Bucket))
		entry.NextReview = &next
	case entity.ActionLearnAgain:
		entry.Bucket = entity.MinBucket
		entry.Status = entity.WordStatusLearning
		next := now.Add(reviewInterval(entry.Bucket))
		entry.NextReview = &next
	case entity.ActionMastered:
		entry.Status = entity.WordStatusMastered
		entry.NextReview = nil
	}
}
