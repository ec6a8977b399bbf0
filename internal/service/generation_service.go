package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vocabforge-be/internal/dto"
	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/pkg/logger"
	"vocabforge-be/internal/repository/specification"
	"vocabforge-be/internal/repository/unitofwork"
	"vocabforge-be/pkg/events"
	"vocabforge-be/pkg/knowledge"
	pktNats "vocabforge-be/pkg/nats"
	"vocabforge-be/pkg/quota"
	"vocabforge-be/pkg/vocab"

	"github.com/google/uuid"
)

// Pipeline stages, in order. FAILED can follow any of them.
const (
	StageStarted           = "started"
	StageCanonicalResolved = "canonical_resolved"
	StageAcquired          = "acquired"
	StageValidated         = "validated"
	StageDeduped           = "deduped"
	StageEnriched          = "enriched"
	StagePersisted         = "persisted"
	StageFailed            = "failed"
)

const (
	defaultTermCount = 10
	maxTermCount     = 25
	maxResolveTries  = 3
)

// KnowledgeAcquirer is the slice of the knowledge adapter the pipeline
// needs. Tests substitute counting fakes.
type KnowledgeAcquirer interface {
	AcquireCandidates(ctx context.Context, topic string, count int, complexity vocab.Complexity) (*knowledge.TermSet, error)
	EnrichBatch(ctx context.Context, topic string, candidates []vocab.Candidate) []vocab.Candidate
}

type IGenerationService interface {
	// Generate checks quota synchronously, then enqueues the pipeline run.
	Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
	// RunJob executes the full pipeline for one dequeued job.
	RunJob(ctx context.Context, job *dto.GenerationJobMessage) (*dto.PipelineStats, error)
	ModerateTerm(ctx context.Context, req *dto.ModerateTermRequest) (*dto.ModerateTermResponse, error)
}

type generationService struct {
	uowFactory       unitofwork.RepositoryFactory
	acquirer         KnowledgeAcquirer
	governor         *quota.Governor
	ledger           *quota.CostLedger
	gate             *vocab.QualityGate
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	acquirer KnowledgeAcquirer,
	governor *quota.Governor,
	ledger *quota.CostLedger,
	gate *vocab.QualityGate,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IGenerationService {
	return &generationService{
		uowFactory:       uowFactory,
		acquirer:         acquirer,
		governor:         governor,
		ledger:           ledger,
		gate:             gate,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           sysLogger,
	}
}

func (s *generationService) publishStage(ctx context.Context, topicName, stage string, details map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	ev := events.NewGenerationStageEvent(topicName, stage, details)
	if err := s.eventPublisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("GENERATION", "Failed to publish stage event", map[string]interface{}{
			"stage": stage,
			"error": err.Error(),
		})
	}
}

func (s *generationService) Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tier := entity.QuotaTier(req.Tier)
	allowed, err := s.governor.CheckAndConsume(ctx, uow, req.UserId, tier)
	if err != nil {
		return nil, fmt.Errorf("quota check failed: %w", err)
	}
	if !allowed {
		if s.eventPublisher != nil {
			_ = s.eventPublisher.Publish(ctx, events.NewQuotaDeniedEvent(req.UserId.String(), req.Tier))
		}
		return nil, ErrQuotaExceeded
	}

	count := req.Count
	if count <= 0 {
		count = defaultTermCount
	}
	if count > maxTermCount {
		count = maxTermCount
	}
	complexity := req.Complexity
	if complexity == "" {
		complexity = string(vocab.ComplexityIntermediate)
	}

	job := dto.GenerationJobMessage{
		JobId:      uuid.New(),
		UserId:     req.UserId,
		TopicName:  req.TopicName,
		Tier:       req.Tier,
		Count:      count,
		Complexity: complexity,
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job: %w", err)
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, fmt.Errorf("failed to enqueue generation job: %w", err)
	}

	s.logger.Info("GENERATION", "Generation job enqueued", map[string]interface{}{
		"job_id": job.JobId.String(),
		"topic":  job.TopicName,
		"count":  job.Count,
	})

	return &dto.GenerateResponse{
		JobId:     job.JobId,
		TopicName: req.TopicName,
		Status:    "queued",
	}, nil
}

func (s *generationService) RunJob(ctx context.Context, job *dto.GenerationJobMessage) (*dto.PipelineStats, error) {
	stats := &dto.PipelineStats{
		TopicName: job.TopicName,
		Requested: job.Count,
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	s.publishStage(ctx, job.TopicName, StageStarted, map[string]interface{}{
		"job_id": job.JobId.String(),
	})

	if err := s.ledger.Allow(); err != nil {
		s.publishStage(ctx, job.TopicName, StageFailed, map[string]interface{}{"reason": err.Error()})
		return stats, err
	}

	// Stage: canonical resolution
	topic, setId, err := s.resolveCanonical(ctx, uow, job.TopicName)
	if err != nil {
		s.publishStage(ctx, job.TopicName, StageFailed, map[string]interface{}{"reason": err.Error()})
		return stats, err
	}
	if err := s.ensureUserTopic(ctx, uow, job.UserId, topic.Id); err != nil {
		s.logger.Warn("GENERATION", "Failed to link user to topic", map[string]interface{}{
			"user_id": job.UserId.String(),
			"topic":   topic.Name,
			"error":   err.Error(),
		})
	}
	s.publishStage(ctx, job.TopicName, StageCanonicalResolved, map[string]interface{}{
		"topic_id":         topic.Id.String(),
		"canonical_set_id": setId.String(),
	})

	// Stage: acquisition
	termSet, err := s.acquirer.AcquireCandidates(ctx, topic.Name, job.Count, vocab.Complexity(job.Complexity))
	if err != nil {
		s.publishStage(ctx, job.TopicName, StageFailed, map[string]interface{}{"reason": err.Error()})
		return stats, fmt.Errorf("candidate acquisition failed: %w", err)
	}
	if termSet.Usage != nil {
		cost := s.ledger.Record(ctx, termSet.Usage.Model, termSet.Usage.PromptTokens, termSet.Usage.CompletionTokens)
		s.logger.Debug("GENERATION", "LLM call recorded", map[string]interface{}{
			"model":  termSet.Usage.Model,
			"tokens": termSet.Usage.TotalTokens(),
			"cost":   cost,
		})
	}
	stats.Acquired = len(termSet.Candidates)
	s.publishStage(ctx, job.TopicName, StageAcquired, map[string]interface{}{"count": stats.Acquired})

	// Stage: validation
	valid := s.validate(topic.Name, termSet.Candidates, stats)
	s.publishStage(ctx, job.TopicName, StageValidated, map[string]interface{}{
		"kept":     len(valid),
		"rejected": stats.Rejected,
	})

	// Stage: dedup, in-batch then against the persisted set
	deduped := vocab.Dedupe(valid)
	stats.Duplicates += len(valid) - len(deduped)
	fresh, err := s.dropPersisted(ctx, uow, setId, deduped, stats)
	if err != nil {
		s.publishStage(ctx, job.TopicName, StageFailed, map[string]interface{}{"reason": err.Error()})
		return stats, err
	}
	s.publishStage(ctx, job.TopicName, StageDeduped, map[string]interface{}{
		"kept":       len(fresh),
		"duplicates": stats.Duplicates,
	})

	// Stage: enrichment
	enriched := s.acquirer.EnrichBatch(ctx, topic.Name, fresh)
	for i := range enriched {
		enriched[i].Confidence = vocab.AssignConfidence(enriched[i])
	}
	s.publishStage(ctx, job.TopicName, StageEnriched, map[string]interface{}{"count": len(enriched)})

	// Stage: persistence. Terms and facts are independent failure domains.
	s.persistTerms(ctx, uow, topic, setId, enriched, stats)
	s.persistFacts(ctx, uow, topic, termSet.Facts, stats)

	s.publishStage(ctx, job.TopicName, StagePersisted, map[string]interface{}{
		"terms": stats.PersistedTerms,
		"facts": stats.PersistedFacts,
	})
	s.logger.Info("GENERATION", "Pipeline completed", map[string]interface{}{
		"topic":           stats.TopicName,
		"requested":       stats.Requested,
		"acquired":        stats.Acquired,
		"rejected":        stats.Rejected,
		"duplicates":      stats.Duplicates,
		"duplicate_facts": stats.DuplicateFacts,
		"persisted_terms": stats.PersistedTerms,
		"persisted_facts": stats.PersistedFacts,
	})
	return stats, nil
}

// resolveCanonical finds or creates the topic and its canonical set. The
// lookup-then-create sequence is not transactional; on a create failure we
// assume a concurrent job won the race and re-resolve.
func (s *generationService) resolveCanonical(ctx context.Context, uow unitofwork.UnitOfWork, topicName string) (*entity.Topic, uuid.UUID, error) {
	key := vocab.TopicKey(topicName)
	topicRepo := uow.TopicRepository()
	setRepo := uow.CanonicalSetRepository()

	for attempt := 0; attempt < maxResolveTries; attempt++ {
		topic, err := topicRepo.FindOne(ctx, specification.ByNormalizedName{Name: key})
		if err != nil {
			return nil, uuid.Nil, fmt.Errorf("topic lookup failed: %w", err)
		}

		if topic == nil {
			set := entity.CanonicalSet{Id: uuid.New(), CreatedAt: time.Now()}
			if err := setRepo.Create(ctx, &set); err != nil {
				return nil, uuid.Nil, fmt.Errorf("canonical set creation failed: %w", err)
			}
			setId := set.Id
			topic = &entity.Topic{
				Id:             uuid.New(),
				Name:           vocab.Normalize(topicName),
				NormalizedName: key,
				CanonicalSetId: &setId,
				UsageCount:     1,
				CreatedAt:      time.Now(),
			}
			if err := topicRepo.Create(ctx, topic); err != nil {
				// Lost the uniqueness race: another job created the
				// topic between our lookup and insert.
				s.logger.Warn("GENERATION", "Topic creation conflict, re-resolving", map[string]interface{}{
					"topic": topicName,
					"error": err.Error(),
				})
				continue
			}
			return topic, setId, nil
		}

		if err := topicRepo.IncrementUsage(ctx, topic.Id); err != nil {
			s.logger.Warn("GENERATION", "Failed to bump topic usage", map[string]interface{}{
				"topic_id": topic.Id.String(),
				"error":    err.Error(),
			})
		}

		if topic.CanonicalSetId != nil {
			return topic, *topic.CanonicalSetId, nil
		}

		// Legacy topic with no set yet: create one, attach it and
		// reclaim any orphaned terms.
		set := entity.CanonicalSet{Id: uuid.New(), CreatedAt: time.Now()}
		if err := setRepo.Create(ctx, &set); err != nil {
			return nil, uuid.Nil, fmt.Errorf("canonical set creation failed: %w", err)
		}
		setId := set.Id
		topic.CanonicalSetId = &setId
		if err := topicRepo.Update(ctx, topic); err != nil {
			s.logger.Warn("GENERATION", "Topic set attachment conflict, re-resolving", map[string]interface{}{
				"topic": topicName,
				"error": err.Error(),
			})
			continue
		}
		if err := uow.TermRepository().MigrateToSet(ctx, topic.Id, setId); err != nil {
			return nil, uuid.Nil, fmt.Errorf("term migration failed: %w", err)
		}
		return topic, setId, nil
	}

	return nil, uuid.Nil, ErrCanonicalConflict
}

func (s *generationService) ensureUserTopic(ctx context.Context, uow unitofwork.UnitOfWork, userId, topicId uuid.UUID) error {
	repo := uow.UserTopicRepository()
	existing, err := repo.FindOne(ctx,
		specification.ByUser{UserID: userId},
		specification.ByTopic{TopicID: topicId},
	)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return repo.Create(ctx, &entity.UserTopic{
		Id:        uuid.New(),
		UserId:    userId,
		TopicId:   topicId,
		Weight:    1,
		Enabled:   true,
		CreatedAt: time.Now(),
	})
}

func (s *generationService) validate(topicName string, candidates []vocab.Candidate, stats *dto.PipelineStats) []vocab.Candidate {
	valid := make([]vocab.Candidate, 0, len(candidates))
	for _, c := range candidates {
		c.Term = vocab.Normalize(c.Term)
		c.Definition = strings.TrimSpace(vocab.CleanMarkup(c.Definition))
		if reason := s.gate.Check(c, topicName); reason != vocab.RejectNone {
			stats.Rejected++
			s.logger.Debug("GENERATION", "Candidate rejected", map[string]interface{}{
				"term":   c.Term,
				"reason": string(reason),
			})
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

// dropPersisted removes candidates whose normalized key already exists in
// the canonical set.
func (s *generationService) dropPersisted(ctx context.Context, uow unitofwork.UnitOfWork, setId uuid.UUID, candidates []vocab.Candidate, stats *dto.PipelineStats) ([]vocab.Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}
	keys := make([]string, 0, len(candidates))
	for _, c := range candidates {
		keys = append(keys, vocab.NormalizeKey(c.Term))
	}
	existing, err := uow.TermRepository().FindAll(ctx,
		specification.ByCanonicalSet{CanonicalSetID: setId},
		specification.NormalizedKeyIn{Keys: keys},
	)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[t.NormalizedKey] = true
	}

	fresh := make([]vocab.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if seen[vocab.NormalizeKey(c.Term)] {
			stats.Duplicates++
			continue
		}
		fresh = append(fresh, c)
	}
	return fresh, nil
}

// moderationFor auto-approves trusted content and holds the rest for review.
func moderationFor(c vocab.Candidate) entity.ModerationStatus {
	if c.Verified || c.Confidence >= 0.75 {
		return entity.ModerationApproved
	}
	return entity.ModerationPending
}

func (s *generationService) persistTerms(ctx context.Context, uow unitofwork.UnitOfWork, topic *entity.Topic, setId uuid.UUID, candidates []vocab.Candidate, stats *dto.PipelineStats) {
	if len(candidates) == 0 {
		return
	}
	terms := make([]*entity.Term, 0, len(candidates))
	for _, c := range candidates {
		examples := c.Examples
		if len(examples) > 3 {
			examples = examples[:3]
		}
		terms = append(terms, &entity.Term{
			Id:               uuid.New(),
			CanonicalSetId:   setId,
			TopicId:          topic.Id,
			Text:             c.Term,
			NormalizedKey:    vocab.NormalizeKey(c.Term),
			Definition:       c.Definition,
			Examples:         examples,
			Source:           c.Source,
			SourceURL:        c.SourceURL,
			Verified:         c.Verified,
			AIGenerated:      c.AIGenerated,
			ConfidenceScore:  c.Confidence,
			ComplexityLevel:  string(vocab.EstimateComplexity(c.Definition)),
			Category:         vocab.Categorize(c.Term, c.Definition, topic.Name),
			ModerationStatus: moderationFor(c),
			CreatedAt:        time.Now(),
		})
	}
	if err := uow.TermRepository().CreateBulk(ctx, terms); err != nil {
		s.logger.Error("GENERATION", "Term batch persistence failed", map[string]interface{}{
			"topic": topic.Name,
			"count": len(terms),
			"error": err.Error(),
		})
		return
	}
	stats.PersistedTerms = len(terms)
}

// persistFacts stores the topic's fact batch under the same dedup discipline
// as terms: a normalized key, unique per topic, filtered against both the
// current batch and what earlier runs already persisted.
func (s *generationService) persistFacts(ctx context.Context, uow unitofwork.UnitOfWork, topic *entity.Topic, rawFacts []string, stats *dto.PipelineStats) {
	candidates := make([]*entity.Fact, 0, len(rawFacts))
	keys := make([]string, 0, len(rawFacts))
	inBatch := make(map[string]bool, len(rawFacts))
	for _, f := range rawFacts {
		text := strings.TrimSpace(vocab.CleanMarkup(f))
		if len(text) < 10 {
			continue
		}
		key := vocab.NormalizeKey(text)
		if inBatch[key] {
			stats.DuplicateFacts++
			continue
		}
		inBatch[key] = true
		keys = append(keys, key)
		candidates = append(candidates, &entity.Fact{
			Id:            uuid.New(),
			TopicId:       topic.Id,
			Text:          text,
			NormalizedKey: key,
			Source:        "ai",
			Category:      "general",
			CreatedAt:     time.Now(),
		})
	}
	if len(candidates) == 0 {
		return
	}

	existing, err := uow.FactRepository().FindAll(ctx,
		specification.ByTopic{TopicID: topic.Id},
		specification.NormalizedKeyIn{Keys: keys},
	)
	if err != nil {
		s.logger.Error("GENERATION", "Fact duplicate check failed", map[string]interface{}{
			"topic": topic.Name,
			"error": err.Error(),
		})
		return
	}
	persisted := make(map[string]bool, len(existing))
	for _, f := range existing {
		persisted[f.NormalizedKey] = true
	}

	facts := make([]*entity.Fact, 0, len(candidates))
	for _, f := range candidates {
		if persisted[f.NormalizedKey] {
			stats.DuplicateFacts++
			continue
		}
		facts = append(facts, f)
	}
	if len(facts) == 0 {
		return
	}
	if err := uow.FactRepository().CreateBulk(ctx, facts); err != nil {
		s.logger.Error("GENERATION", "Fact batch persistence failed", map[string]interface{}{
			"topic": topic.Name,
			"count": len(facts),
			"error": err.Error(),
		})
		return
	}
	stats.PersistedFacts = len(facts)
}

func (s *generationService) ModerateTerm(ctx context.Context, req *dto.ModerateTermRequest) (*dto.ModerateTermResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.TermRepository()

	term, err := repo.FindOne(ctx, specification.ByID{ID: req.TermId})
	if err != nil {
		return nil, err
	}
	if term == nil {
		return nil, ErrNotFound
	}

	term.ModerationStatus = entity.ModerationStatus(req.Status)
	if err := repo.Update(ctx, term); err != nil {
		return nil, fmt.Errorf("failed to update moderation status: %w", err)
	}

	s.logger.Info("GENERATION", "Term moderated", map[string]interface{}{
		"term_id": term.Id.String(),
		"status":  req.Status,
	})
	return &dto.ModerateTermResponse{
		TermId: term.Id,
		Status: req.Status,
	}, nil
}
