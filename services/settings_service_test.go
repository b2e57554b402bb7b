package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepository struct {
	week int
}

func (r *fakeSettingsRepository) GetCurrentWeek(_ context.Context) (int, error) {
	return r.week, nil
}

func (r *fakeSettingsRepository) SetCurrentWeek(_ context.Context, week int) error {
	r.week = week
	return nil
}

func TestChangeWeekPreparesPool(t *testing.T) {
	settingsRepo := &fakeSettingsRepository{}
	poolRepo := newFakePoolRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewSettingsService(settingsRepo, newPoolFixture(poolRepo, nil), logger)
	ctx := context.Background()

	require.NoError(t, service.ChangeWeek(ctx, 5))

	week, err := service.CurrentWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, week)
	// Пул новой недели готов до того, как неделя стала текущей.
	_, ok := poolRepo.pools[5]
	assert.True(t, ok)

	assert.ErrorIs(t, service.ChangeWeek(ctx, -2), ErrInvalidWeek)
}
