package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"vocabforge-be/internal/dto"
	"vocabforge-be/internal/entity"
	"vocabforge-be/internal/pkg/logger"
	"vocabforge-be/internal/repository/specification"
	"vocabforge-be/internal/repository/unitofwork"
	"vocabforge-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deliveryFixture struct {
	svc     *deliveryService
	pub     *fakePublisher
	factory unitofwork.RepositoryFactory
	now     time.Time
}

func newDeliveryFixture(t *testing.T) *deliveryFixture {
	t.Helper()
	db := testutil.OpenTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	pub := &fakePublisher{}

	svc := NewDeliveryService(factory, pub, logger.NewNopLogger()).(*deliveryService)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	svc.rng = rand.New(rand.NewSource(7))

	return &deliveryFixture{svc: svc, pub: pub, factory: factory, now: now}
}

// seedTerm persists a topic, its canonical set and one approved term, and
// links the user to the topic.
func (fix *deliveryFixture) seedTerm(t *testing.T, userId uuid.UUID, topicName, termText string) *entity.Term {
	t.Helper()
	ctx := context.Background()
	uow := fix.factory.NewUnitOfWork(ctx)

	set := entity.CanonicalSet{Id: uuid.New(), CreatedAt: fix.now}
	require.NoError(t, uow.CanonicalSetRepository().Create(ctx, &set))
	setId := set.Id

	topic := entity.Topic{
		Id:             uuid.New(),
		Name:           topicName,
		NormalizedName: topicName,
		CanonicalSetId: &setId,
		UsageCount:     1,
		CreatedAt:      fix.now,
	}
	require.NoError(t, uow.TopicRepository().Create(ctx, &topic))

	require.NoError(t, uow.UserTopicRepository().Create(ctx, &entity.UserTopic{
		Id:        uuid.New(),
		UserId:    userId,
		TopicId:   topic.Id,
		Weight:    1,
		Enabled:   true,
		CreatedAt: fix.now,
	}))

	term := entity.Term{
		Id:               uuid.New(),
		CanonicalSetId:   setId,
		TopicId:          topic.Id,
		Text:             termText,
		NormalizedKey:    termText,
		Definition:       "A body of water surrounded by land on all sides.",
		Examples:         []string{"The lake froze solid in January."},
		Source:           "dictionary",
		Verified:         true,
		ConfidenceScore:  0.95,
		ComplexityLevel:  "beginner",
		Category:         "concept",
		ModerationStatus: entity.ModerationApproved,
		CreatedAt:        fix.now,
	}
	require.NoError(t, uow.TermRepository().Create(ctx, &term))

	require.NoError(t, uow.FactRepository().CreateBulk(ctx, []*entity.Fact{{
		Id:            uuid.New(),
		TopicId:       topic.Id,
		Text:          "Lakes hold most of the planet's liquid surface freshwater.",
		NormalizedKey: "lakes hold most of the planet's liquid surface freshwater",
		Source:        "ai",
		Category:      "general",
		CreatedAt:     fix.now,
	}}))

	return &term
}

func (fix *deliveryFixture) seedWordbank(t *testing.T, userId, termId uuid.UUID, bucket int, next *time.Time) *entity.WordbankEntry {
	t.Helper()
	ctx := context.Background()
	uow := fix.factory.NewUnitOfWork(ctx)
	entry := entity.WordbankEntry{
		Id:         uuid.New(),
		UserId:     userId,
		TermId:     termId,
		Status:     entity.WordStatusLearning,
		Bucket:     bucket,
		NextReview: next,
		CreatedAt:  fix.now,
	}
	require.NoError(t, uow.WordbankRepository().Create(ctx, &entry))
	return &entry
}

func (fix *deliveryFixture) seedDelivery(t *testing.T, userId, termId uuid.UUID) *entity.Delivery {
	t.Helper()
	ctx := context.Background()
	uow := fix.factory.NewUnitOfWork(ctx)
	delivery := entity.Delivery{
		Id:          uuid.New(),
		UserId:      userId,
		TermId:      termId,
		DeliveredAt: fix.now,
		Action:      entity.ActionNone,
	}
	require.NoError(t, uow.DeliveryRepository().Create(ctx, &delivery))
	return &delivery
}

func TestNextWord_UnseenTermCreatesWordbankEntry(t *testing.T) {
	fix := newDeliveryFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	term := fix.seedTerm(t, userId, "lakes", "Lagoon")

	resp, err := fix.svc.NextWord(ctx, userId)
	require.NoError(t, err)
	require.False(t, resp.Empty)
	assert.Equal(t, term.Text, resp.Term)
	assert.Equal(t, term.Definition, resp.Definition)
	assert.Equal(t, term.Examples[0], resp.Example)
	assert.NotEmpty(t, resp.Facts)
	require.NotNil(t, resp.Wordbank)
	assert.Equal(t, entity.MinBucket, resp.Wordbank.Bucket)
	assert.Equal(t, string(entity.WordStatusLearning), resp.Wordbank.Status)
	require.NotNil(t, resp.Delivery)

	uow := fix.factory.NewUnitOfWork(ctx)
	entries, err := uow.WordbankRepository().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].NextReview)
	assert.WithinDuration(t, fix.now.Add(24*time.Hour), *entries[0].NextReview, time.Second)
}

func TestNextWord_OverdueBeatsUnseen(t *testing.T) {
	fix := newDeliveryFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	seen := fix.seedTerm(t, userId, "lakes", "Lagoon")
	fix.seedTerm(t, userId, "rivers", "Estuary")

	overdue := fix.now.Add(-2 * time.Hour)
	fix.seedWordbank(t, userId, seen.Id, 2, &overdue)

	resp, err := fix.svc.NextWord(ctx, userId)
	require.NoError(t, err)
	require.False(t, resp.Empty)
	assert.Equal(t, "Lagoon", resp.Term)
	assert.Equal(t, 2, resp.Wordbank.Bucket)
}

func TestNextWord_NothingLeftTriggersRefill(t *testing.T) {
	fix := newDeliveryFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	term := fix.seedTerm(t, userId, "lakes", "Lagoon")

	// The only term is already scheduled and not due yet.
	future := fix.now.Add(48 * time.Hour)
	fix.seedWordbank(t, userId, term.Id, 2, &future)

	resp, err := fix.svc.NextWord(ctx, userId)
	require.NoError(t, err)
	assert.True(t, resp.Empty)
	assert.Len(t, fix.pub.payloads, 1, "a refill job should be enqueued")
}

func TestNextWord_RefillSkipsDanglingTopic(t *testing.T) {
	fix := newDeliveryFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	term := fix.seedTerm(t, userId, "lakes", "Lagoon")

	// A follow whose topic row is gone must not swallow the refill.
	uow := fix.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.UserTopicRepository().Create(ctx, &entity.UserTopic{
		Id:        uuid.New(),
		UserId:    userId,
		TopicId:   uuid.New(),
		Weight:    10,
		Enabled:   true,
		CreatedAt: fix.now,
	}))

	future := fix.now.Add(48 * time.Hour)
	fix.seedWordbank(t, userId, term.Id, 2, &future)

	resp, err := fix.svc.NextWord(ctx, userId)
	require.NoError(t, err)
	assert.True(t, resp.Empty)

	require.Len(t, fix.pub.payloads, 1)
	var job dto.GenerationJobMessage
	require.NoError(t, json.Unmarshal(fix.pub.payloads[0], &job))
	assert.Equal(t, "lakes", job.TopicName)
}

func TestNextWord_SameUserTwiceReusesEntry(t *testing.T) {
	fix := newDeliveryFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	term := fix.seedTerm(t, userId, "lakes", "Lagoon")

	overdue := fix.now.Add(-time.Hour)
	fix.seedWordbank(t, userId, term.Id, 1, &overdue)

	_, err := fix.svc.NextWord(ctx, userId)
	require.NoError(t, err)
	_, err = fix.svc.NextWord(ctx, userId)
	require.NoError(t, err)

	uow := fix.factory.NewUnitOfWork(ctx)
	count, err := uow.WordbankRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "one wordbank entry per (user, term)")

	deliveries, err := uow.DeliveryRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deliveries, "every surfacing is recorded")
}

func TestRecordAction_FavoritePromotesBucket(t *testing.T) {
	// Bucket 3 + FAVORITE moves to bucket 4 with the next review 14 days
	// out.
	fix := newDeliveryFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	term := fix.seedTerm(t, userId, "lakes", "Lagoon")
	entry := fix.seedWordbank(t, userId, term.Id, 3, nil)
	delivery := fix.seedDelivery(t, userId, term.Id)

	resp, err := fix.svc.RecordAction(ctx, &dto.RecordActionRequest{
		DeliveryId: delivery.Id,
		Action:     string(entity.ActionFavorite),
		WordbankId: &entry.Id,
		UserId:     userId,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Wordbank.Bucket)

	uow := fix.factory.NewUnitOfWork(ctx)
	updated, err := uow.WordbankRepository().FindOne(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Bucket)
	require.NotNil(t, updated.NextReview)
	assert.WithinDuration(t, fix.now.Add(14*24*time.Hour), *updated.NextReview, time.Second)
	assert.Equal(t, 1, updated.ReviewCount)
}

func TestRecordAction_FavoriteCapsAtMaxBucket(t *testing.T) {
	fix := newDeliveryFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	term := fix.seedTerm(t, userId, "lakes", "Lagoon")
	entry := fix.seedWordbank(t, userId, term.Id, entity.MaxBucket, nil)
	delivery := fix.seedDelivery(t, userId, term.Id)

	resp, err := fix.svc.RecordAction(ctx, &dto.RecordActionRequest{
		DeliveryId: delivery.Id,
		Action:     string(entity.ActionFavorite),
		WordbankId: &entry.Id,
		UserId:     userId,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MaxBucket, resp.Wordbank.Bucket)
}

func TestRecordAction_LearnAgainResetsToMinBucket(t *testing.T) {
	fix := newDeliveryFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	term := fix.seedTerm(t, userId, "lakes", "Lagoon")
	entry := fix.seedWordbank(t, userId, term.Id, 4, nil)
	delivery := fix.seedDelivery(t, userId, term.Id)

	resp, err := fix.svc.RecordAction(ctx, &dto.RecordActionRequest{
		DeliveryId: delivery.Id,
		Action:     string(entity.ActionLearnAgain),
		WordbankId: &entry.Id,
		UserId:     userId,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MinBucket, resp.Wordbank.Bucket)

	uow := fix.factory.NewUnitOfWork(ctx)
	updated, err := uow.WordbankRepository().FindOne(ctx)
	require.NoError(t, err)
	require.NotNil(t, updated.NextReview)
	assert.WithinDuration(t, fix.now.Add(24*time.Hour), *updated.NextReview, time.Second)
}

func TestRecordAction_MasteredClearsSchedule(t *testing.T) {
	// MASTERED means status MASTERED and no next review, whatever the
	// prior bucket was.
	for _, bucket := range []int{1, 3, 5} {
		fix := newDeliveryFixture(t)
		ctx := context.Background()
		userId := uuid.New()
		term := fix.seedTerm(t, userId, "lakes", "Lagoon")
		next := fix.now.Add(time.Hour)
		entry := fix.seedWordbank(t, userId, term.Id, bucket, &next)
		delivery := fix.seedDelivery(t, userId, term.Id)

		resp, err := fix.svc.RecordAction(ctx, &dto.RecordActionRequest{
			DeliveryId: delivery.Id,
			Action:     string(entity.ActionMastered),
			WordbankId: &entry.Id,
			UserId:     userId,
		})
		require.NoError(t, err)
		assert.Equal(t, string(entity.WordStatusMastered), resp.Wordbank.Status)

		uow := fix.factory.NewUnitOfWork(ctx)
		updated, err := uow.WordbankRepository().FindOne(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.WordStatusMastered, updated.Status)
		assert.Nil(t, updated.NextReview)
	}
}

func TestRecordAction_MasteredIsTerminal(t *testing.T) {
	// Once mastered, later review actions only land in the delivery
	// history; the entry's status, bucket and schedule stay frozen.
	fix := newDeliveryFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	term := fix.seedTerm(t, userId, "lakes", "Lagoon")
	next := fix.now.Add(time.Hour)
	entry := fix.seedWordbank(t, userId, term.Id, 3, &next)

	first := fix.seedDelivery(t, userId, term.Id)
	_, err := fix.svc.RecordAction(ctx, &dto.RecordActionRequest{
		DeliveryId: first.Id,
		Action:     string(entity.ActionMastered),
		WordbankId: &entry.Id,
		UserId:     userId,
	})
	require.NoError(t, err)

	for _, action := range []entity.DeliveryAction{entity.ActionFavorite, entity.ActionLearnAgain} {
		later := fix.seedDelivery(t, userId, term.Id)
		resp, err := fix.svc.RecordAction(ctx, &dto.RecordActionRequest{
			DeliveryId: later.Id,
			Action:     string(action),
			WordbankId: &entry.Id,
			UserId:     userId,
		})
		require.NoError(t, err)
		assert.Equal(t, string(entity.WordStatusMastered), resp.Wordbank.Status)

		uow := fix.factory.NewUnitOfWork(ctx)
		updated, err := uow.WordbankRepository().FindOne(ctx)
		require.NoError(t, err)
		assert.Equal(t, entity.WordStatusMastered, updated.Status)
		assert.Equal(t, 3, updated.Bucket)
		assert.Nil(t, updated.NextReview)

		d, err := uow.DeliveryRepository().FindOne(ctx, specification.ByID{ID: later.Id})
		require.NoError(t, err)
		assert.Equal(t, action, d.Action)
	}
}

func TestRecordAction_NoneRecordsHistoryOnly(t *testing.T) {
	fix := newDeliveryFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	term := fix.seedTerm(t, userId, "lakes", "Lagoon")
	fix.seedWordbank(t, userId, term.Id, 2, nil)
	delivery := fix.seedDelivery(t, userId, term.Id)

	resp, err := fix.svc.RecordAction(ctx, &dto.RecordActionRequest{
		DeliveryId: delivery.Id,
		Action:     string(entity.ActionNone),
		UserId:     userId,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Wordbank)

	uow := fix.factory.NewUnitOfWork(ctx)
	updated, err := uow.WordbankRepository().FindOne(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Bucket)
	assert.Equal(t, 0, updated.ReviewCount)

	d, err := uow.DeliveryRepository().FindOne(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ActionNone, d.Action)
	assert.NotNil(t, d.OpenedAt)
}

func TestRecordAction_BucketStaysInBounds(t *testing.T) {
	fix := newDeliveryFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	term := fix.seedTerm(t, userId, "lakes", "Lagoon")
	entry := fix.seedWordbank(t, userId, term.Id, 1, nil)

	actions := []string{
		string(entity.ActionFavorite),
		string(entity.ActionFavorite),
		string(entity.ActionLearnAgain),
		string(entity.ActionFavorite),
		string(entity.ActionFavorite),
		string(entity.ActionFavorite),
		string(entity.ActionFavorite),
		string(entity.ActionFavorite),
	}
	for _, action := range actions {
		delivery := fix.seedDelivery(t, userId, term.Id)
		resp, err := fix.svc.RecordAction(ctx, &dto.RecordActionRequest{
			DeliveryId: delivery.Id,
			Action:     action,
			WordbankId: &entry.Id,
			UserId:     userId,
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, resp.Wordbank.Bucket, entity.MinBucket)
		assert.LessOrEqual(t, resp.Wordbank.Bucket, entity.MaxBucket)
	}
}

func TestRecordAction_WrongUserRejected(t *testing.T) {
	fix := newDeliveryFixture(t)
	ctx := context.Background()
	userId := uuid.New()
	term := fix.seedTerm(t, userId, "lakes", "Lagoon")
	fix.seedWordbank(t, userId, term.Id, 2, nil)
	delivery := fix.seedDelivery(t, userId, term.Id)

	_, err := fix.svc.RecordAction(ctx, &dto.RecordActionRequest{
		DeliveryId: delivery.Id,
		Action:     string(entity.ActionFavorite),
		UserId:     uuid.New(),
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRecordAction_UnknownDelivery(t *testing.T) {
	fix := newDeliveryFixture(t)

	_, err := fix.svc.RecordAction(context.Background(), &dto.RecordActionRequest{
		DeliveryId: uuid.New(),
		Action:     string(entity.ActionFavorite),
		UserId:     uuid.New(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
