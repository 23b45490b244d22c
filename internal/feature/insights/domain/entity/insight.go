// Package entity はinsightsフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Insight は配信対象のコンテンツ1件を表します。
type Insight struct {
	ID          string
	Title       string
	Category    string
	Tags        []string
	MainText    string
	SourceURL   *string
	PremiumOnly bool
	CreatedBy   string
	CreatedAt   time.Time
}

// InsightPatch は部分更新の内容です。nilのフィールドは変更しません。
type InsightPatch struct {
	Title       *string
	Category    *string
	Tags        *[]string
	MainText    *string
	SourceURL   *string
	PremiumOnly *bool
}

// IsEmpty は更新対象のフィールドが1つもない場合にtrueを返します。
func (p InsightPatch) IsEmpty() bool {
	return p.Title == nil && p.Category == nil && p.Tags == nil &&
		p.MainText == nil && p.SourceURL == nil && p.PremiumOnly == nil
}

// Analytics は管理画面向けの集計値です。
type Analytics struct {
	TotalUsers         int64
	TotalInsights      int64
	DailyHitsSentToday int64
	DailyActiveUsers   int64
	PaidSubscribers    int64
}
