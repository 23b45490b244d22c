package cache

import (
	"fmt"
	"time"

	"codex_backend/internal/feature/insights/domain/entity"
)

// TimeUntilEndOfDay はdate（YYYY-MM-DD、UTC）の翌日0時までの残り時間を返します。
// 過去の日付では0以下の値になります。
func TimeUntilEndOfDay(date string, now time.Time) (time.Duration, error) {
	day, err := time.ParseInLocation(entity.DateLayout, date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", date, err)
	}
	return day.Add(24 * time.Hour).Sub(now), nil
}
