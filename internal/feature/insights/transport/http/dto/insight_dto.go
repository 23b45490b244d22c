// Package dto defines data transfer objects for the insights feature's HTTP transport layer.
package dto

import (
	"time"

	"codex_backend/internal/feature/insights/domain/entity"
)

// InsightResponse is the JSON view of an insight.
type InsightResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	MainText    string    `json:"main_text"`
	SourceURL   *string   `json:"source_url"`
	PremiumOnly bool      `json:"premium_only"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// InsightListResponse wraps a list of insights.
type InsightListResponse struct {
	Insights []InsightResponse `json:"insights"`
}

// DailyHitResponse is returned by GET /insights/daily-hit.
type DailyHitResponse struct {
	Insights []InsightResponse `json:"insights"`
	Date     string            `json:"date"`
}

// LibraryResponse is returned by GET /insights/library.
type LibraryResponse struct {
	Insights []InsightResponse `json:"insights"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// LibraryQuery binds the library query string.
type LibraryQuery struct {
	Category string `form:"category" binding:"max=64"`
	Search   string `form:"search" binding:"max=200"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// LikeResponse is returned by POST /insights/:id/like.
type LikeResponse struct {
	Liked bool `json:"liked"`
}

// SaveResponse is returned by POST /insights/:id/save.
type SaveResponse struct {
	Saved bool `json:"saved"`
}

// CreateInsightReq is the body of POST /admin/insights.
type CreateInsightReq struct {
	Title       string   `json:"title" binding:"required,max=512"`
	Category    string   `json:"category" binding:"required,max=64"`
	Tags        []string `json:"tags" binding:"required,dive,max=64"`
	MainText    string   `json:"main_text" binding:"required"`
	SourceURL   *string  `json:"source_url" binding:"omitempty,url"`
	PremiumOnly bool     `json:"premium_only"`
}

// CreateInsightResponse is returned after creating an insight.
type CreateInsightResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// UpdateInsightReq is the body of PUT /admin/insights/:id. Omitted fields are left unchanged.
type UpdateInsightReq struct {
	Title       *string   `json:"title" binding:"omitempty,max=512"`
	Category    *string   `json:"category" binding:"omitempty,max=64"`
	Tags        *[]string `json:"tags"`
	MainText    *string   `json:"main_text"`
	SourceURL   *string   `json:"source_url" binding:"omitempty,url"`
	PremiumOnly *bool     `json:"premium_only"`
}

// OverrideDailyHitReq is the body of POST /admin/daily-hits/override.
type OverrideDailyHitReq struct {
	UserID     string   `json:"user_id" binding:"required"`
	InsightIDs []string `json:"insight_ids" binding:"required"`
	Date       string   `json:"date" binding:"required"`
}

// AnalyticsResponse is returned by GET /admin/analytics.
type AnalyticsResponse struct {
	TotalUsers         int64 `json:"total_users"`
	TotalInsights      int64 `json:"total_insights"`
	DailyHitsSentToday int64 `json:"daily_hits_sent_today"`
	DailyActiveUsers   int64 `json:"daily_active_users"`
	PaidSubscribers    int64 `json:"paid_subscribers"`
}

// NewInsightResponse converts an entity.
func NewInsightResponse(in entity.Insight) InsightResponse {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	return InsightResponse{
		ID:          in.ID,
		Title:       in.Title,
		Category:    in.Category,
		Tags:        tags,
		MainText:    in.MainText,
		SourceURL:   in.SourceURL,
		PremiumOnly: in.PremiumOnly,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   in.CreatedAt,
	}
}

// NewInsightResponses converts a slice of entities.
func NewInsightResponses(ins []entity.Insight) []InsightResponse {
	out := make([]InsightResponse, 0, len(ins))
	for _, in := range ins {
		out = append(out, NewInsightResponse(in))
	}
	return out
}

// Patch converts the request into a domain patch.
func (r UpdateInsightReq) Patch() entity.InsightPatch {
	return entity.InsightPatch{
		Title:       r.Title,
		Category:    r.Category,
		Tags:        r.Tags,
		MainText:    r.MainText,
		SourceURL:   r.SourceURL,
		PremiumOnly: r.PremiumOnly,
	}
}

// NewAnalyticsResponse converts an entity.
func NewAnalyticsResponse(a *entity.Analytics) AnalyticsResponse {
	return AnalyticsResponse{
		TotalUsers:         a.TotalUsers,
		TotalInsights:      a.TotalInsights,
		DailyHitsSentToday: a.DailyHitsSentToday,
		DailyActiveUsers:   a.DailyActiveUsers,
		PaidSubscribers:    a.PaidSubscribers,
	}
}
