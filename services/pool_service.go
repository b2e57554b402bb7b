package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/icedout/league-system/league"
	"github.com/icedout/league-system/models"
	"github.com/icedout/league-system/repositories"
	"github.com/icedout/league-system/storage"
)

// PoolService управляет недельными пулами карт: грузит сохранённый пул, либо
// генерирует новый под ограничением соседних недель и сохраняет его ровно
// один раз.
type PoolService interface {
	EnsureWeekPool(ctx context.Context, week int) (*models.WeekPool, error)
	GetWeekPool(ctx context.Context, week int) (*models.WeekPool, error)
}

type poolService struct {
	// Генерацию зовут и планировщик, и смена недели по HTTP: мьютекс
	// сериализует проверку-и-выборку и защищает rng, который не
	// потокобезопасен.
	mu             sync.Mutex
	poolRepo       repositories.PoolRepository
	uploader       storage.FileUploader // nil — публикация снапшотов выключена
	worldCatalog   []models.Map
	countryCatalog []models.CountryMap
	counts         models.TierCounts
	maxAttempts    int
	rng            *rand.Rand
	logger         *slog.Logger
}

func NewPoolService(
	poolRepo repositories.PoolRepository,
	uploader storage.FileUploader,
	worldCatalog []models.Map,
	countryCatalog []models.CountryMap,
	counts models.TierCounts,
	rng *rand.Rand,
	logger *slog.Logger,
) PoolService {
	return &poolService{
		poolRepo:       poolRepo,
		uploader:       uploader,
		worldCatalog:   worldCatalog,
		countryCatalog: countryCatalog,
		counts:         counts,
		maxAttempts:    league.DefaultPoolAttempts,
		rng:            rng,
		logger:         logger,
	}
}

func (s *poolService) GetWeekPool(ctx context.Context, week int) (*models.WeekPool, error) {
	pool, err := s.poolRepo.GetByWeek(ctx, week)
	if errors.Is(err, repositories.ErrWeekPoolNotFound) {
		return nil, ErrPoolNotFound
	}
	return pool, err
}

func (s *poolService) EnsureWeekPool(ctx context.Context, week int) (*models.WeekPool, error) {
	if week < 0 {
		return nil, ErrInvalidWeek
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pool, err := s.poolRepo.GetByWeek(ctx, week)
	if err == nil {
		return pool, nil
	}
	if !errors.Is(err, repositories.ErrWeekPoolNotFound) {
		return nil, fmt.Errorf("failed to load pool for week %d: %w", week, err)
	}

	excluded, err := s.adjacentNames(ctx, week)
	if err != nil {
		return nil, err
	}
	countryMaps, err := league.GenerateCountryPool(s.rng, s.countryCatalog, s.counts, excluded, s.maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate country pool for week %d: %w", week, err)
	}

	// Мировой пул — весь каталог, без недельного ограничения.
	pool = &models.WeekPool{
		Week:        week,
		WorldMaps:   s.worldCatalog,
		CountryMaps: countryMaps,
	}
	if err := s.poolRepo.Append(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to store pool for week %d: %w", week, err)
	}
	s.logger.Info("week pool generated",
		slog.Int("week", week),
		slog.Int("country_maps", len(countryMaps)))

	s.publishSnapshot(ctx, pool)
	return pool, nil
}

// adjacentNames собирает имена карт пулов недель week-1 и week+1.
func (s *poolService) adjacentNames(ctx context.Context, week int) (map[string]struct{}, error) {
	excluded := make(map[string]struct{})
	for _, neighbor := range []int{week - 1, week + 1} {
		if neighbor < 0 {
			continue
		}
		pool, err := s.poolRepo.GetByWeek(ctx, neighbor)
		if errors.Is(err, repositories.ErrWeekPoolNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load adjacent pool for week %d: %w", neighbor, err)
		}
		for name := range pool.CountryNameSet() {
			excluded[name] = struct{}{}
		}
	}
	return excluded, nil
}

// publishSnapshot выгружает JSON пула в объектное хранилище. Побочный канал:
// сбой логируется и не влияет на результат генерации.
func (s *poolService) publishSnapshot(ctx context.Context, pool *models.WeekPool) {
	if s.uploader == nil {
		return
	}
	payload, err := json.Marshal(pool)
	if err != nil {
		s.logger.Error("failed to encode pool snapshot", slog.Int("week", pool.Week), slog.Any("error", err))
		return
	}
	key := fmt.Sprintf("pools/week_%d.json", pool.Week)
	if _, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload)); err != nil {
		s.logger.Error("failed to publish pool snapshot", slog.Int("week", pool.Week), slog.Any("error", err))
		return
	}
	s.logger.Info("pool snapshot published", slog.Int("week", pool.Week), slog.String("key", key))
}
