// Package usecase はinsightsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	authentity "codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/insights/domain/entity"
)

// DailyHitの取得結果。メトリクスのラベルとして使います。
const (
	OutcomeHit       = "hit"
	OutcomeGenerated = "generated"
	OutcomeEmpty     = "empty"
)

// DailyHitRepository はDailyHitの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type DailyHitRepository interface {
	// Find は (userID, date) のエントリを返します。存在しない場合はErrDailyHitNotFoundを返します。
	Find(ctx context.Context, userID, date string) (*entity.DailyHit, error)

	// InsertIfAbsent はエントリが存在しない場合のみ挿入し、保存されている勝者を返します。
	// 読み取りと書き込みを分けず、一意制約による原子的な操作で実装する必要があります。
	InsertIfAbsent(ctx context.Context, hit *entity.DailyHit) (*entity.DailyHit, error)

	// Override はエントリをoverriddenとして挿入または置き換えます。
	Override(ctx context.Context, hit *entity.DailyHit) error
}

// InsightReader はDailyHit生成に必要なインサイトの読み取りを抽象化します。
type InsightReader interface {
	// Sample は条件に一致するインサイトを重複なしで最大n件ランダムに返します。
	Sample(ctx context.Context, filter entity.VisibilityFilter, n int) ([]entity.Insight, error)
	// FindByIDs は指定IDのインサイトをidsの順序で返します。存在しないIDは無視します。
	FindByIDs(ctx context.Context, ids []string) ([]entity.Insight, error)
}

// HitRecorder はDailyHit取得結果を記録します。
type HitRecorder interface {
	ObserveDailyHit(outcome string)
}

// DailyHitBundle はAPIに返す1日分のバンドルです。
type DailyHitBundle struct {
	Date     string
	Status   entity.DailyHitStatus
	Insights []entity.Insight
}

// sharedLookupTimeout はまとめられた取得・生成処理全体の上限です。
const sharedLookupTimeout = 10 * time.Second

type dailyHitUsecase struct {
	hits     DailyHitRepository
	insights InsightReader
	recorder HitRecorder
	group    singleflight.Group
	now      func() time.Time
}

// NewDailyHitUsecase はdailyHitUsecaseを生成します。recorderはnilでも構いません。
func NewDailyHitUsecase(hits DailyHitRepository, insights InsightReader, recorder HitRecorder) *dailyHitUsecase {
	return &dailyHitUsecase{
		hits:     hits,
		insights: insights,
		recorder: recorder,
		now:      time.Now,
	}
}

// Today は現在のUTC暦日を返します。
func (u *dailyHitUsecase) Today() string {
	return u.now().UTC().Format(entity.DateLayout)
}

// GetToday は今日のバンドルを取得または生成します。
func (u *dailyHitUsecase) GetToday(ctx context.Context, user *authentity.User) (*DailyHitBundle, error) {
	return u.GetOrCreate(ctx, user, u.Today())
}

// GetOrCreate は (user, date) のバンドルを返します。
// 既存エントリに選択があればそのまま返し、なければ表示条件に従って最大3件を抽選して保存します。
// 一致するインサイトがない場合は何も保存せず空のバンドルを返します。
// 同一プロセス内の同じキーへの同時アクセスはsingleflightで1回にまとめます。
// 共有処理は呼び出し元のキャンセルから切り離し、各呼び出し元は自分のctxでだけ待機を打ち切ります。
func (u *dailyHitUsecase) GetOrCreate(ctx context.Context, user *authentity.User, date string) (*DailyHitBundle, error) {
	ch := u.group.DoChan(user.ID+"|"+date, func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()
		return u.getOrCreate(sharedCtx, user, date)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*DailyHitBundle), nil
	}
}

func (u *dailyHitUsecase) getOrCreate(ctx context.Context, user *authentity.User, date string) (*DailyHitBundle, error) {
	existing, err := u.hits.Find(ctx, user.ID, date)
	switch {
	case err == nil && !existing.Empty():
		u.observe(OutcomeHit)
		return u.load(ctx, existing)
	case err != nil && !errors.Is(err, ErrDailyHitNotFound):
		return nil, fmt.Errorf("find daily hit: %w", err)
	}

	picked, err := u.insights.Sample(ctx, VisibilityFilter(user), entity.MaxDailyHitSize)
	if err != nil {
		return nil, fmt.Errorf("sample insights: %w", err)
	}
	if len(picked) == 0 {
		u.observe(OutcomeEmpty)
		return &DailyHitBundle{Date: date, Status: entity.StatusDelivered, Insights: []entity.Insight{}}, nil
	}

	ids := make([]string, 0, len(picked))
	for _, in := range picked {
		ids = append(ids, in.ID)
	}
	stored, err := u.hits.InsertIfAbsent(ctx, &entity.DailyHit{
		UserID:     user.ID,
		Date:       date,
		InsightIDs: ids,
		Status:     entity.StatusDelivered,
		CreatedAt:  u.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("store daily hit: %w", err)
	}

	// 別のリクエストが先に保存していた場合はその内容を返す
	if stored.Status != entity.StatusDelivered || !slices.Equal(stored.InsightIDs, ids) {
		u.observe(OutcomeHit)
		return u.load(ctx, stored)
	}
	u.observe(OutcomeGenerated)
	return &DailyHitBundle{Date: date, Status: stored.Status, Insights: picked}, nil
}

// Override は管理者がユーザーのバンドルを強制的に設定します。
// 以後、その日付のエントリは生成処理で置き換えられません。
func (u *dailyHitUsecase) Override(ctx context.Context, userID string, insightIDs []string, date string) error {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	ids := dedupe(insightIDs)
	if len(ids) == 0 {
		return ErrEmptySelection
	}
	err := u.hits.Override(ctx, &entity.DailyHit{
		UserID:     userID,
		Date:       date,
		InsightIDs: ids,
		Status:     entity.StatusOverridden,
		CreatedAt:  u.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("override daily hit: %w", err)
	}
	return nil
}

func (u *dailyHitUsecase) load(ctx context.Context, hit *entity.DailyHit) (*DailyHitBundle, error) {
	insights, err := u.insights.FindByIDs(ctx, hit.InsightIDs)
	if err != nil {
		return nil, fmt.Errorf("load daily hit insights: %w", err)
	}
	return &DailyHitBundle{Date: hit.Date, Status: hit.Status, Insights: insights}, nil
}

func (u *dailyHitUsecase) observe(outcome string) {
	if u.recorder != nil {
		u.recorder.ObserveDailyHit(outcome)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
