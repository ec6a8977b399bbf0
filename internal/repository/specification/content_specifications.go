package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByNormalizedName filters topics by their case-insensitive lookup key.
type ByNormalizedName struct {
	Name string
}

func (s ByNormalizedName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("normalized_name = ?", s.Name)
}

// ByCanonicalSet scopes terms to one canonical set.
type ByCanonicalSet struct {
	CanonicalSetID uuid.UUID
}

func (s ByCanonicalSet) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("canonical_set_id = ?", s.CanonicalSetID)
}

// ByTopic scopes rows to one topic.
type ByTopic struct {
	TopicID uuid.UUID
}

func (s ByTopic) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("topic_id = ?", s.TopicID)
}

// ByUser scopes rows to one user.
type ByUser struct {
	UserID uuid.UUID
}

func (s ByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByUserAndTerm pins the (user, term) pair of a wordbank entry.
type ByUserAndTerm struct {
	UserID uuid.UUID
	TermID uuid.UUID
}

func (s ByUserAndTerm) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ? AND term_id = ?", s.UserID, s.TermID)
}

// ModerationApproved keeps only terms eligible for delivery.
type ModerationApproved struct{}

func (s ModerationApproved) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("moderation_status = ?", "approved")
}

// DueBefore keeps wordbank entries whose next review is at or before the
// given instant.
type DueBefore struct {
	Time time.Time
}

func (s DueBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("next_review IS NOT NULL AND next_review <= ?", s.Time)
}

// StatusIs filters wordbank entries by learning status.
type StatusIs struct {
	Status string
}

func (s StatusIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ExcludeTermIds removes terms the user has already seen.
type ExcludeTermIds struct {
	TermIDs []uuid.UUID
}

func (s ExcludeTermIds) Apply(db *gorm.DB) *gorm.DB {
	if len(s.TermIDs) == 0 {
		return db
	}
	return db.Where("id NOT IN ?", s.TermIDs)
}

// EnabledOnly keeps enabled user topics.
type EnabledOnly struct{}

func (s EnabledOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("enabled = ?", true)
}

// TierIs filters quota records by tier.
type TierIs struct {
	Tier string
}

func (s TierIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tier = ?", s.Tier)
}

// NormalizedKeyIn filters terms by their normalized text keys.
type NormalizedKeyIn struct {
	Keys []string
}

func (s NormalizedKeyIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("normalized_key IN ?", s.Keys)
}
