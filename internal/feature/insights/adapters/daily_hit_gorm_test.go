package adapters

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codex_backend/internal/feature/insights/domain/entity"
	"codex_backend/internal/feature/insights/usecase"
)

func TestDailyHitGorm_InsertIfAbsentFirstWriterWins(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewDailyHitRepository(db)
	ctx := context.Background()

	_, err := repo.Find(ctx, "u1", "2024-01-01")
	assert.ErrorIs(t, err, usecase.ErrDailyHitNotFound)

	first, err := repo.InsertIfAbsent(ctx, &entity.DailyHit{UserID: "u1", Date: "2024-01-01", InsightIDs: []string{"a", "b"}, Status: entity.StatusDelivered, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first.InsightIDs)

	second, err := repo.InsertIfAbsent(ctx, &entity.DailyHit{UserID: "u1", Date: "2024-01-01", InsightIDs: []string{"z"}, Status: entity.StatusDelivered, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, second.InsightIDs)

	var count int64
	require.NoError(t, db.Model(&DailyHitModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDailyHitGorm_ConcurrentInsertsAgree(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewDailyHitRepository(db)

	const n = 8
	got := make([][]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hit, err := repo.InsertIfAbsent(context.Background(), &entity.DailyHit{
				UserID:     "u1",
				Date:       "2024-01-01",
				InsightIDs: []string{string(rune('a' + i))},
				Status:     entity.StatusDelivered,
				CreatedAt:  time.Now().UTC(),
			})
			if assert.NoError(t, err) {
				got[i] = hit.InsightIDs
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Equal(t, got[0], got[i])
	}
}

func TestDailyHitGorm_OverrideIsNeverReplacedByGeneration(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewDailyHitRepository(db)
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)

	_, err := repo.InsertIfAbsent(ctx, &entity.DailyHit{UserID: "u1", Date: "2024-01-01", InsightIDs: []string{"a"}, Status: entity.StatusDelivered, CreatedAt: created})
	require.NoError(t, err)

	require.NoError(t, repo.Override(ctx, &entity.DailyHit{UserID: "u1", Date: "2024-01-01", InsightIDs: []string{"o1", "o2"}, Status: entity.StatusOverridden, CreatedAt: created.Add(time.Hour)}))

	stored, err := repo.InsertIfAbsent(ctx, &entity.DailyHit{UserID: "u1", Date: "2024-01-01", InsightIDs: []string{"late"}, Status: entity.StatusDelivered, CreatedAt: created.Add(2 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, []string{"o1", "o2"}, stored.InsightIDs)
	assert.Equal(t, entity.StatusOverridden, stored.Status)
	assert.True(t, stored.CreatedAt.Equal(created))

	// Override for a key that never existed creates it.
	require.NoError(t, repo.Override(ctx, &entity.DailyHit{UserID: "u2", Date: "2024-01-02", InsightIDs: []string{"x"}, Status: entity.StatusOverridden, CreatedAt: created}))
	fresh, err := repo.Find(ctx, "u2", "2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, fresh.InsightIDs)
}

func TestDailyHitGorm_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	require.NoError(t, db.Create(&DailyHitModel{UserID: "u1", Date: "2024-01-01", InsightIDs: []string{"a"}, Status: "bogus"}).Error)

	_, err := NewDailyHitRepository(db).Find(context.Background(), "u1", "2024-01-01")

	assert.Error(t, err)
}
