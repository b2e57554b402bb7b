package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/icedout/league-system/repositories"
)

// SettingsService хранит указатель на текущую игровую неделю. Смена недели
// сразу готовит пул для новой недели, чтобы игроки никогда не видели неделю
// без пула.
type SettingsService interface {
	CurrentWeek(ctx context.Context) (int, error)
	ChangeWeek(ctx context.Context, week int) error
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	poolService  PoolService
	logger       *slog.Logger
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, poolService PoolService, logger *slog.Logger) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		poolService:  poolService,
		logger:       logger,
	}
}

func (s *settingsService) CurrentWeek(ctx context.Context) (int, error) {
	return s.settingsRepo.GetCurrentWeek(ctx)
}

func (s *settingsService) ChangeWeek(ctx context.Context, week int) error {
	if week < 0 {
		return ErrInvalidWeek
	}
	if _, err := s.poolService.EnsureWeekPool(ctx, week); err != nil {
		return fmt.Errorf("failed to prepare pool for week %d: %w", week, err)
	}
	if err := s.settingsRepo.SetCurrentWeek(ctx, week); err != nil {
		return fmt.Errorf("failed to change current week: %w", err)
	}
	s.logger.Info("current week changed", slog.Int("week", week))
	return nil
}
