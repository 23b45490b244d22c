package entity

import (
	"fmt"
	"time"
)

// DateLayout はDailyHitのキーに使う日付形式（UTCの暦日）です。
const DateLayout = "2006-01-02"

// MaxDailyHitSize は1日分のバンドルに含めるインサイトの最大数です。
const MaxDailyHitSize = 3

// DailyHitStatus はDailyHitの状態です。
type DailyHitStatus string

const (
	StatusDelivered  DailyHitStatus = "delivered"
	StatusOverridden DailyHitStatus = "overridden"
)

// ParseDailyHitStatus は保存値を検証して変換します。
func ParseDailyHitStatus(s string) (DailyHitStatus, error) {
	switch DailyHitStatus(s) {
	case StatusDelivered, StatusOverridden:
		return DailyHitStatus(s), nil
	}
	return "", fmt.Errorf("unknown daily hit status %q", s)
}

// DailyHit は (ユーザー, 日付) ごとに1件だけ存在するバンドルです。
// overriddenになったエントリは生成処理で上書きされません。
type DailyHit struct {
	UserID     string
	Date       string
	InsightIDs []string
	Status     DailyHitStatus
	CreatedAt  time.Time
}

// Empty は選択が空かどうかを返します。
func (d *DailyHit) Empty() bool {
	return d == nil || len(d.InsightIDs) == 0
}

// VisibilityFilter はユーザーに見せてよいインサイトの条件です。
type VisibilityFilter struct {
	Categories   []string
	AllowPremium bool
}

// Interaction はユーザーとインサイトのlike/save状態です。
type Interaction struct {
	UserID    string
	InsightID string
	Liked     bool
	Saved     bool
	ViewedAt  time.Time
}
