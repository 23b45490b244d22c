package adapters

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"codex_backend/internal/feature/insights/domain/entity"
)

// InsightModel is the GORM model for the insights table.
type InsightModel struct {
	ID          string                      `gorm:"primaryKey;size:36"`
	Title       string                      `gorm:"size:512;not null;index"`
	Category    string                      `gorm:"size:64;not null;index"`
	Tags        datatypes.JSONSlice[string] `gorm:"not null"`
	MainText    string                      `gorm:"type:text;not null"`
	SourceURL   *string                     `gorm:"size:1024;index"`
	PremiumOnly bool                        `gorm:"not null;index"`
	CreatedBy   string                      `gorm:"size:36"`
	CreatedAt   time.Time                   `gorm:"index"`
}

// TableName returns the table name for GORM.
func (InsightModel) TableName() string {
	return "insights"
}

// ToEntity converts the GORM model to a domain entity.
func (m *InsightModel) ToEntity() entity.Insight {
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	return entity.Insight{
		ID:          m.ID,
		Title:       m.Title,
		Category:    m.Category,
		Tags:        tags,
		MainText:    m.MainText,
		SourceURL:   m.SourceURL,
		PremiumOnly: m.PremiumOnly,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// InsightModelFromEntity converts a domain entity to a GORM model.
func InsightModelFromEntity(e *entity.Insight) *InsightModel {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return &InsightModel{
		ID:          e.ID,
		Title:       e.Title,
		Category:    e.Category,
		Tags:        datatypes.JSONSlice[string](tags),
		MainText:    e.MainText,
		SourceURL:   e.SourceURL,
		PremiumOnly: e.PremiumOnly,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

// DailyHitModel is the GORM model for the daily_hits table.
// The (user_id, date) unique index is what makes inserts first-writer-wins.
type DailyHitModel struct {
	ID         uint                        `gorm:"primaryKey"`
	UserID     string                      `gorm:"size:36;not null;uniqueIndex:idx_daily_hits_user_date,priority:1"`
	Date       string                      `gorm:"size:10;not null;uniqueIndex:idx_daily_hits_user_date,priority:2"`
	InsightIDs datatypes.JSONSlice[string] `gorm:"not null"`
	Status     string                      `gorm:"size:16;not null"`
	CreatedAt  time.Time                   `gorm:"index"`
}

// TableName returns the table name for GORM.
func (DailyHitModel) TableName() string {
	return "daily_hits"
}

// ToEntity converts the GORM model to a domain entity. Unknown status values are rejected.
func (m *DailyHitModel) ToEntity() (*entity.DailyHit, error) {
	status, err := entity.ParseDailyHitStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("daily hit %s/%s: %w", m.UserID, m.Date, err)
	}
	return &entity.DailyHit{
		UserID:     m.UserID,
		Date:       m.Date,
		InsightIDs: append([]string{}, m.InsightIDs...),
		Status:     status,
		CreatedAt:  m.CreatedAt,
	}, nil
}

func dailyHitModelFromEntity(e *entity.DailyHit) *DailyHitModel {
	return &DailyHitModel{
		UserID:     e.UserID,
		Date:       e.Date,
		InsightIDs: datatypes.JSONSlice[string](append([]string{}, e.InsightIDs...)),
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
	}
}

// InteractionModel is the GORM model for per-user like/save state.
type InteractionModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_interactions_user_insight,priority:1"`
	InsightID string    `gorm:"size:36;not null;uniqueIndex:idx_interactions_user_insight,priority:2"`
	Liked     bool      `gorm:"not null"`
	Saved     bool      `gorm:"not null"`
	ViewedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (InteractionModel) TableName() string {
	return "user_insight_interactions"
}
