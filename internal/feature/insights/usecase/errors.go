package usecase

import "errors"

var (
	// ErrInsightNotFound は指定IDのインサイトが存在しない場合に返されます。
	ErrInsightNotFound = errors.New("insight not found")
	// ErrNoFieldsToUpdate は更新内容が空の場合に返されます。
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	// ErrInvalidDate は日付がYYYY-MM-DD形式でない場合に返されます。
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrEmptySelection はオーバーライドのインサイトIDが空の場合に返されます。
	ErrEmptySelection = errors.New("insight_ids must not be empty")
	// ErrDailyHitNotFound はリポジトリにエントリがない場合に返されます。
	ErrDailyHitNotFound = errors.New("daily hit not found")
)
