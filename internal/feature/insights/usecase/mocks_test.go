package usecase

import (
	"context"
	"sync"
	"time"

	"codex_backend/internal/feature/insights/domain/entity"
)

// memDailyHits is an in-memory DailyHitRepository with first-writer-wins inserts.
type memDailyHits struct {
	mu      sync.Mutex
	rows    map[string]entity.DailyHit
	inserts int
	FindErr error
}

func newMemDailyHits() *memDailyHits {
	return &memDailyHits{rows: map[string]entity.DailyHit{}}
}

func (m *memDailyHits) Find(ctx context.Context, userID, date string) (*entity.DailyHit, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.rows[userID+"|"+date]
	if !ok {
		return nil, ErrDailyHitNotFound
	}
	return &h, nil
}

func (m *memDailyHits) InsertIfAbsent(ctx context.Context, hit *entity.DailyHit) (*entity.DailyHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := hit.UserID + "|" + hit.Date
	if h, ok := m.rows[key]; ok {
		return &h, nil
	}
	m.inserts++
	m.rows[key] = *hit
	stored := *hit
	return &stored, nil
}

func (m *memDailyHits) Override(ctx context.Context, hit *entity.DailyHit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[hit.UserID+"|"+hit.Date] = *hit
	return nil
}

// mockInsightRepository is a function-field mock of InsightRepository.
type mockInsightRepository struct {
	SampleFunc    func(ctx context.Context, filter entity.VisibilityFilter, n int) ([]entity.Insight, error)
	FindByIDsFunc func(ctx context.Context, ids []string) ([]entity.Insight, error)
	FindByIDFunc  func(ctx context.Context, id string) (*entity.Insight, error)
	ListFunc      func(ctx context.Context, q LibraryQuery) ([]entity.Insight, int64, error)
	ListAllFunc   func(ctx context.Context) ([]entity.Insight, error)
	CreateFunc    func(ctx context.Context, in *entity.Insight) error
	UpdateFunc    func(ctx context.Context, id string, patch entity.InsightPatch) error
	DeleteFunc    func(ctx context.Context, id string) error
}

func (m *mockInsightRepository) Sample(ctx context.Context, filter entity.VisibilityFilter, n int) ([]entity.Insight, error) {
	if m.SampleFunc != nil {
		return m.SampleFunc(ctx, filter, n)
	}
	return nil, nil
}

func (m *mockInsightRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Insight, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	out := make([]entity.Insight, 0, len(ids))
	for _, id := range ids {
		out = append(out, entity.Insight{ID: id})
	}
	return out, nil
}

func (m *mockInsightRepository) FindByID(ctx context.Context, id string) (*entity.Insight, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &entity.Insight{ID: id}, nil
}

func (m *mockInsightRepository) List(ctx context.Context, q LibraryQuery) ([]entity.Insight, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return nil, 0, nil
}

func (m *mockInsightRepository) ListAll(ctx context.Context) ([]entity.Insight, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockInsightRepository) Create(ctx context.Context, in *entity.Insight) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return nil
}

func (m *mockInsightRepository) Update(ctx context.Context, id string, patch entity.InsightPatch) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil
}

func (m *mockInsightRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockInteractionRepository struct {
	ToggleFunc          func(ctx context.Context, userID, insightID string, field InteractionField, now time.Time) (bool, error)
	SavedInsightIDsFunc func(ctx context.Context, userID string) ([]string, error)
}

func (m *mockInteractionRepository) Toggle(ctx context.Context, userID, insightID string, field InteractionField, now time.Time) (bool, error) {
	if m.ToggleFunc != nil {
		return m.ToggleFunc(ctx, userID, insightID, field, now)
	}
	return true, nil
}

func (m *mockInteractionRepository) SavedInsightIDs(ctx context.Context, userID string) ([]string, error) {
	if m.SavedInsightIDsFunc != nil {
		return m.SavedInsightIDsFunc(ctx, userID)
	}
	return nil, nil
}

type mockAnalyticsRepository struct {
	RollupFunc func(ctx context.Context, today string, activeSince time.Time) (*entity.Analytics, error)
}

func (m *mockAnalyticsRepository) Rollup(ctx context.Context, today string, activeSince time.Time) (*entity.Analytics, error) {
	if m.RollupFunc != nil {
		return m.RollupFunc(ctx, today, activeSince)
	}
	return &entity.Analytics{}, nil
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) ObserveDailyHit(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[outcome]++
}

func (r *countingRecorder) get(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[outcome]
}
