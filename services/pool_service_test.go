package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"testing"

	"github.com/icedout/league-system/models"
	"github.com/icedout/league-system/repositories"
	"github.com/icedout/league-system/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoolRepository struct {
	pools map[int]*models.WeekPool
}

func newFakePoolRepository() *fakePoolRepository {
	return &fakePoolRepository{pools: make(map[int]*models.WeekPool)}
}

func (r *fakePoolRepository) GetByWeek(_ context.Context, week int) (*models.WeekPool, error) {
	pool, ok := r.pools[week]
	if !ok {
		return nil, repositories.ErrWeekPoolNotFound
	}
	return pool, nil
}

func (r *fakePoolRepository) Append(_ context.Context, pool *models.WeekPool) error {
	// История append-only: существующая запись не перезаписывается.
	if _, ok := r.pools[pool.Week]; ok {
		return nil
	}
	r.pools[pool.Week] = pool
	return nil
}

type fakeUploader struct {
	keys     []string
	payloads [][]byte
	err      error
}

func (u *fakeUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	payload, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.keys = append(u.keys, key)
	u.payloads = append(u.payloads, payload)
	return &storage.UploadResult{Key: key}, nil
}

func (u *fakeUploader) GetPublicURL(key string) string { return "https://cdn.example.com/" + key }

func newPoolFixture(repo *fakePoolRepository, uploader storage.FileUploader) PoolService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPoolService(
		repo,
		uploader,
		models.WorldMapList,
		models.CountryMapList,
		models.DefaultTierCounts,
		rand.New(rand.NewSource(5)),
		logger,
	)
}

func TestEnsureWeekPoolGeneratesOnce(t *testing.T) {
	repo := newFakePoolRepository()
	service := newPoolFixture(repo, nil)
	ctx := context.Background()

	pool, err := service.EnsureWeekPool(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, pool.Week)
	assert.Equal(t, models.WorldMapList, pool.WorldMaps)
	assert.Len(t, pool.CountryMaps, models.DefaultTierCounts.Total())

	// Повторный вызов отдаёт сохранённый пул, а не новую выборку.
	again, err := service.EnsureWeekPool(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, pool, again)
}

func TestEnsureWeekPoolExcludesAdjacentWeeks(t *testing.T) {
	repo := newFakePoolRepository()
	service := newPoolFixture(repo, nil)
	ctx := context.Background()

	for _, week := range []int{1, 2, 3} {
		_, err := service.EnsureWeekPool(ctx, week)
		require.NoError(t, err)
	}

	names := func(week int) map[string]struct{} {
		return repo.pools[week].CountryNameSet()
	}
	for name := range names(2) {
		_, inPrev := names(1)[name]
		_, inNext := names(3)[name]
		assert.False(t, inPrev, "map %s shared with previous week", name)
		assert.False(t, inNext, "map %s shared with next week", name)
	}
}

func TestEnsureWeekPoolRejectsNegativeWeek(t *testing.T) {
	service := newPoolFixture(newFakePoolRepository(), nil)

	_, err := service.EnsureWeekPool(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidWeek)
}

func TestEnsureWeekPoolPublishesSnapshot(t *testing.T) {
	repo := newFakePoolRepository()
	uploader := &fakeUploader{}
	service := newPoolFixture(repo, uploader)
	ctx := context.Background()

	pool, err := service.EnsureWeekPool(ctx, 7)
	require.NoError(t, err)

	require.Len(t, uploader.keys, 1)
	assert.Equal(t, "pools/week_7.json", uploader.keys[0])

	var uploaded models.WeekPool
	require.NoError(t, json.Unmarshal(uploader.payloads[0], &uploaded))
	assert.Equal(t, pool.Week, uploaded.Week)
	assert.Len(t, uploaded.CountryMaps, len(pool.CountryMaps))
}

func TestEnsureWeekPoolUploadFailureIsNotFatal(t *testing.T) {
	repo := newFakePoolRepository()
	uploader := &fakeUploader{err: assert.AnError}
	service := newPoolFixture(repo, uploader)

	pool, err := service.EnsureWeekPool(context.Background(), 4)
	require.NoError(t, err)
	assert.NotNil(t, pool)
	// Пул при этом сохранён.
	_, ok := repo.pools[4]
	assert.True(t, ok)
}

func TestEnsureWeekPoolSerializesConcurrentCalls(t *testing.T) {
	repo := newFakePoolRepository()
	service := newPoolFixture(repo, nil)

	// Планировщик и смена недели могут звать генерацию одновременно.
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for week := 0; week < 10; week++ {
				_, err := service.EnsureWeekPool(context.Background(), week)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, repo.pools, 10)
}

func TestPoolGenerationConcurrentWithAnnouncements(t *testing.T) {
	// Пул и анонсы живут в разных сервисах с независимыми генераторами
	// случайности, как их собирает cmd/main.go; их одновременная работа не
	// должна разделять никакое состояние.
	f := newNegotiationFixture(t)
	poolService := newPoolFixture(newFakePoolRepository(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for week := 0; week < 30; week++ {
			_, err := poolService.EnsureWeekPool(ctx, week)
			assert.NoError(t, err)
		}
	}()

	for i := int64(0); i < 20; i++ {
		match := models.Match{ID1: 1000 + i, ID2: 2000 + i, Tier: models.TierB, Week: 1}
		require.NoError(t, f.service.AddMatch(ctx, match))
		_, err := f.service.SubmitPick(ctx, match.ID1, match, cleanPick("w1", "w2", "canada"))
		require.NoError(t, err)
		outcome, err := f.service.SubmitPick(ctx, match.ID2, match, cleanPick("w3", "w4", "japan"))
		require.NoError(t, err)
		require.Equal(t, OutcomeAnnounced, outcome)
	}
	wg.Wait()

	assert.Len(t, f.hub.announcements, 20)
}

func TestGetWeekPoolNotFound(t *testing.T) {
	service := newPoolFixture(newFakePoolRepository(), nil)

	_, err := service.GetWeekPool(context.Background(), 9)
	assert.ErrorIs(t, err, ErrPoolNotFound)
}
