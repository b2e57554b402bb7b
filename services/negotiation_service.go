package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/icedout/league-system/league"
	"github.com/icedout/league-system/models"
	"github.com/icedout/league-system/repositories"
	"golang.org/x/sync/errgroup"
)

// Outcome — итог обработки отправки пиков.
type Outcome string

const (
	// Пик принят, ждём пики соперника.
	OutcomeAwaitingOpponent Outcome = "awaiting_opponent"
	// Обе стороны чисты, матч анонсирован.
	OutcomeAnnounced Outcome = "announced"
	// Вето обнаружено, хотя бы одна сторона должна прислать бэкап.
	OutcomeBackupPending Outcome = "backup_pending"
)

const backupRequestText = "Your picks have been vetoed, please make your backup pick."

// Notifier — best-effort личное уведомление игрока. Ошибка доставки
// логируется и не откатывает уже сохранённое состояние.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, text string) error
}

// Announcer доставляет анонс матча в канал его дивизиона.
type Announcer interface {
	AnnounceToTier(ctx context.Context, tier models.Tier, text string) error
}

// NegotiationService — движок переговоров pick/veto: владеет леджером пиков,
// реестром матчей и таблицей блокировок отправки.
type NegotiationService interface {
	Load(ctx context.Context) error
	SubmitPick(ctx context.Context, userID int64, match models.Match, pick models.ArbitraryPick) (Outcome, error)
	SubmitBackupPick(ctx context.Context, userID int64, match models.Match, pick models.ArbitraryPick) (Outcome, error)
	AddMatch(ctx context.Context, match models.Match) error
	ResetWeek(ctx context.Context, week int) error
	ResetTier(ctx context.Context, week int, tier models.Tier) error
	NextMatch(userID int64, week int) (*models.Match, error)
	WhoPickedSummary(week int, tier *models.Tier) string
	VetoedMaps(userID int64, match models.Match) ([]models.Map, error)
}

type lockKey struct {
	userID int64
	match  models.MatchKey
}

type negotiationService struct {
	// Вся мутация леджера, реестра и блокировок проходит под одним мьютексом:
	// отправка обрабатывается до конца (включая анонс) прежде следующей.
	mu      sync.Mutex
	picks   []*models.Pick
	matches []*models.Match
	locks   map[lockKey]struct{}

	matchRepo repositories.MatchRepository
	pickRepo  repositories.PickRepository
	notifier  Notifier
	announcer Announcer

	worldCatalog []models.Map
	rng          *rand.Rand
	logger       *slog.Logger
}

func NewNegotiationService(
	matchRepo repositories.MatchRepository,
	pickRepo repositories.PickRepository,
	notifier Notifier,
	announcer Announcer,
	worldCatalog []models.Map,
	rng *rand.Rand,
	logger *slog.Logger,
) NegotiationService {
	return &negotiationService{
		locks:        make(map[lockKey]struct{}),
		matchRepo:    matchRepo,
		pickRepo:     pickRepo,
		notifier:     notifier,
		announcer:    announcer,
		worldCatalog: worldCatalog,
		rng:          rng,
		logger:       logger,
	}
}

// Load восстанавливает леджер и реестр из хранилища. Таблица блокировок не
// персистится и стартует пустой: для бэкап-пути её заменяет флаг backup матча.
func (s *negotiationService) Load(ctx context.Context) error {
	matches, err := s.matchRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load match registry: %w", err)
	}
	picks, err := s.pickRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pick ledger: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = matches
	s.picks = picks
	return nil
}

func (s *negotiationService) SubmitPick(ctx context.Context, userID int64, match models.Match, pick models.ArbitraryPick) (Outcome, error) {
	if err := validateArbitraryPick(pick); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	registered := s.findMatch(&match)
	if registered == nil {
		return "", fmt.Errorf("%w: %s tier %s week %d", ErrMatchNotFound, match.String(), match.Tier, match.Week)
	}
	if _, ok := registered.Side(userID); !ok {
		return "", ErrNotAParticipant
	}

	key := lockKey{userID: userID, match: registered.Key()}
	if _, held := s.locks[key]; held {
		return "", ErrDuplicateSubmission
	}
	if s.findPick(userID, registered) != nil {
		s.logger.Warn("already existing pick sent",
			slog.Int64("user_id", userID),
			slog.String("match", registered.String()),
			slog.String("tier", string(registered.Tier)),
			slog.Int("week", registered.Week))
		return "", ErrDuplicateSubmission
	}

	// Блокировка берётся до записи и остаётся висеть после успешной
	// отправки: без вето игрок больше не может слать пики на этот матч.
	s.locks[key] = struct{}{}

	s.picks = append(s.picks, models.NewPick(userID, *registered, pick))
	if err := s.pickRepo.ReplaceAll(ctx, s.picks); err != nil {
		return "", fmt.Errorf("failed to persist pick ledger: %w", err)
	}
	s.logger.Info("pick submitted",
		slog.Int64("user_id", userID),
		slog.String("match", registered.String()),
		slog.String("tier", string(registered.Tier)),
		slog.Int("week", registered.Week))

	if !league.MatchReady(registered, s.picks) {
		return OutcomeAwaitingOpponent, nil
	}
	return s.setupMatch(ctx, registered, true)
}

func (s *negotiationService) SubmitBackupPick(ctx context.Context, userID int64, match models.Match, pick models.ArbitraryPick) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registered := s.findMatch(&match)
	if registered == nil {
		return "", fmt.Errorf("%w: %s tier %s week %d", ErrMatchNotFound, match.String(), match.Tier, match.Week)
	}
	side, ok := registered.Side(userID)
	if !ok {
		return "", ErrNotAParticipant
	}

	// Бэкап ожидается только от стороны, которую проверка вето
	// разблокировала и пометила. Висящая блокировка либо отсутствующий флаг
	// означают, что первый пик не был заветован или бэкап уже прислан.
	key := lockKey{userID: userID, match: registered.Key()}
	if _, held := s.locks[key]; held {
		return "", ErrAlreadyPicked
	}
	if !registered.Backup[side] {
		return "", ErrAlreadyPicked
	}
	s.locks[key] = struct{}{}

	initial := s.findPick(userID, registered)
	if initial == nil {
		delete(s.locks, key)
		s.logger.Error("backup pick without initial pick",
			slog.Int64("user_id", userID),
			slog.String("match", registered.String()))
		return "", ErrPickNotFound
	}
	opponent := s.findOpponentPick(userID, registered)
	if opponent == nil {
		delete(s.locks, key)
		s.logger.Error("backup pick without opponent pick",
			slog.Int64("user_id", userID),
			slog.String("match", registered.String()))
		return "", ErrPickNotFound
	}

	result := league.ReplaceVetoedSlots(initial, opponent, pick)
	if result.Shortfall {
		s.logger.Warn("backup pick did not cover all vetoed slots, partial replacement kept",
			slog.Int64("user_id", userID),
			slog.String("match", registered.String()))
	}
	registered.Backup[side] = false

	if err := s.pickRepo.ReplaceAll(ctx, s.picks); err != nil {
		return "", fmt.Errorf("failed to persist pick ledger: %w", err)
	}
	if err := s.matchRepo.ReplaceAll(ctx, s.matches); err != nil {
		return "", fmt.Errorf("failed to persist match registry: %w", err)
	}
	s.logger.Info("backup pick submitted",
		slog.Int64("user_id", userID),
		slog.String("match", registered.String()),
		slog.Int("replaced_world", result.ReplacedWorld),
		slog.Int("replaced_country", result.ReplacedCountry))

	if !league.MatchReady(registered, s.picks) {
		return OutcomeAwaitingOpponent, nil
	}
	// Повторная проверка идёт без личных уведомлений: заветованная снова
	// сторона уже знает, что должна пересылать.
	return s.setupMatch(ctx, registered, false)
}

// setupMatch прогоняет взаимные вето и либо анонсирует матч, либо помечает
// заветованные стороны на бэкап. Вызывается только для неанонсированных
// матчей с пиками обеих сторон; мьютекс уже удерживается.
func (s *negotiationService) setupMatch(ctx context.Context, match *models.Match, sendBackupMessage bool) (Outcome, error) {
	ids := match.Participants()
	var picks [2]*models.Pick
	for i, id := range ids {
		picks[i] = s.findPick(id, match)
		if picks[i] == nil {
			s.logger.Error("match ready but pick missing",
				slog.Int64("user_id", id),
				slog.String("match", match.String()))
			return "", ErrPickNotFound
		}
	}

	var vetoedUsers []int64
	for i := 0; i < 2; i++ {
		if !league.CheckVetoes(picks[i], picks[1-i]) {
			continue
		}
		delete(s.locks, lockKey{userID: ids[i], match: match.Key()})
		match.Backup[i] = true
		vetoedUsers = append(vetoedUsers, ids[i])
	}

	if len(vetoedUsers) == 0 {
		return s.announce(ctx, match, picks)
	}

	if err := s.matchRepo.ReplaceAll(ctx, s.matches); err != nil {
		return "", fmt.Errorf("failed to persist match registry: %w", err)
	}
	if err := s.pickRepo.ReplaceAll(ctx, s.picks); err != nil {
		return "", fmt.Errorf("failed to persist pick ledger: %w", err)
	}

	if sendBackupMessage {
		// Уведомления независимы и best-effort: обе стороны могут
		// требовать бэкап одновременно.
		g, gctx := errgroup.WithContext(ctx)
		for _, userID := range vetoedUsers {
			userID := userID
			g.Go(func() error {
				return s.notifier.NotifyUser(gctx, userID, backupRequestText)
			})
		}
		if err := g.Wait(); err != nil {
			s.logger.Error("failed to deliver backup notification",
				slog.String("match", match.String()),
				slog.Any("error", err))
		}
	}
	return OutcomeBackupPending, nil
}

// announce собирает сообщение, помечает матч анонсированным и доставляет
// анонс в канал дивизиона. Флаг Announced сохраняется до доставки: сбой
// доставки не откатывает состояние и не приводит к повторному анонсу.
func (s *negotiationService) announce(ctx context.Context, match *models.Match, picks [2]*models.Pick) (Outcome, error) {
	message := league.AssembleAnnouncement(s.rng, match, picks, s.worldCatalog)
	match.Announced = true
	if err := s.matchRepo.ReplaceAll(ctx, s.matches); err != nil {
		return "", fmt.Errorf("failed to persist match registry: %w", err)
	}
	if err := s.pickRepo.ReplaceAll(ctx, s.picks); err != nil {
		return "", fmt.Errorf("failed to persist pick ledger: %w", err)
	}
	if err := s.announcer.AnnounceToTier(ctx, match.Tier, message); err != nil {
		s.logger.Error("failed to deliver match announcement",
			slog.String("match", match.String()),
			slog.String("tier", string(match.Tier)),
			slog.Any("error", err))
	}
	s.logger.Info("match announced",
		slog.String("match", match.String()),
		slog.String("tier", string(match.Tier)),
		slog.Int("week", match.Week))
	return OutcomeAnnounced, nil
}

func (s *negotiationService) AddMatch(ctx context.Context, match models.Match) error {
	if !match.Tier.Valid() {
		return ErrInvalidTier
	}
	if match.Week < 0 {
		return ErrInvalidWeek
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findMatch(&match) != nil {
		// Идемпотентность: равный матч уже зарегистрирован.
		return nil
	}
	added := match
	s.matches = append(s.matches, &added)
	if err := s.matchRepo.ReplaceAll(ctx, s.matches); err != nil {
		return fmt.Errorf("failed to persist match registry: %w", err)
	}
	s.logger.Info("match added",
		slog.String("match", added.String()),
		slog.String("tier", string(added.Tier)),
		slog.Int("week", added.Week))
	return nil
}

func (s *negotiationService) ResetWeek(ctx context.Context, week int) error {
	return s.reset(ctx, week, nil)
}

func (s *negotiationService) ResetTier(ctx context.Context, week int, tier models.Tier) error {
	if !tier.Valid() {
		return ErrInvalidTier
	}
	return s.reset(ctx, week, &tier)
}

// reset удаляет матчи указанной недели (при заданном tier — только этого
// дивизиона). Пики остаются в леджере осиротевшими.
func (s *negotiationService) reset(ctx context.Context, week int, tier *models.Tier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]*models.Match, 0, len(s.matches))
	for _, match := range s.matches {
		if match.Week == week && (tier == nil || match.Tier == *tier) {
			continue
		}
		kept = append(kept, match)
	}
	s.matches = kept
	if err := s.matchRepo.ReplaceAll(ctx, s.matches); err != nil {
		return fmt.Errorf("failed to persist match registry: %w", err)
	}
	return nil
}

// NextMatch возвращает копию ближайшего незавершённого матча игрока на
// неделе: неанонсированного и с несданными (или ожидающими бэкап) пиками.
func (s *negotiationService) NextMatch(userID int64, week int) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, match := range s.matches {
		if match.Announced || match.Week != week {
			continue
		}
		if _, ok := match.Side(userID); !ok {
			continue
		}
		if !s.hasFinishedPicking(userID, match) {
			copied := *match
			return &copied, nil
		}
	}
	return nil, ErrMatchNotFound
}

// hasFinishedPicking — пик сдан и сторона не помечена на бэкап.
func (s *negotiationService) hasFinishedPicking(userID int64, match *models.Match) bool {
	if s.findPick(userID, match) == nil {
		return false
	}
	side, ok := match.Side(userID)
	if !ok {
		return false
	}
	return !match.Backup[side]
}

const (
	emojiNone      = "❌"
	emojiPicked    = "🟢"
	emojiBackupDue = "🔴"
	emojiAnnounced = "✅"
)

// WhoPickedSummary собирает по-дивизионную сводку сданных пиков недели.
func (s *negotiationService) WhoPickedSummary(week int, tier *models.Tier) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Picks for week %d:\n\n", week)
	for _, t := range models.AllTiers {
		if tier != nil && t != *tier {
			continue
		}
		b.WriteString(string(t) + ":\n")
		for _, match := range s.matches {
			if match.Tier != t || match.Week != week {
				continue
			}
			status := [2]string{emojiNone, emojiNone}
			for _, pick := range s.picks {
				if !pick.Match.Equal(match) {
					continue
				}
				if side, ok := match.Side(pick.UserID); ok {
					status[side] = emojiPicked
				}
			}
			if match.Announced {
				status[0], status[1] = emojiAnnounced, emojiAnnounced
			} else {
				for i := 0; i < 2; i++ {
					if match.Backup[i] {
						status[i] = emojiBackupDue
					}
				}
			}
			fmt.Fprintf(&b, "%s %s %s\n", status[0], match.String(), status[1])
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s — picks not sent\n%s — only main picks sent, need to send the backup pick\n%s — picks sent\n%s — both players sent picks, match already announced",
		emojiNone, emojiBackupDue, emojiPicked, emojiAnnounced)
	return b.String()
}

// VetoedMaps возвращает карты, заветованные соперником игрока в матче.
func (s *negotiationService) VetoedMaps(userID int64, match models.Match) ([]models.Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registered := s.findMatch(&match)
	if registered == nil {
		return nil, ErrMatchNotFound
	}
	if _, ok := registered.Side(userID); !ok {
		return nil, ErrNotAParticipant
	}
	opponent := s.findOpponentPick(userID, registered)
	if opponent == nil {
		return nil, ErrPickNotFound
	}
	vetoed := make([]models.Map, 0, len(opponent.WorldMapVetoes)+len(opponent.CountryMapVetoes))
	vetoed = append(vetoed, opponent.WorldMapVetoes...)
	vetoed = append(vetoed, opponent.CountryMapVetoes...)
	return vetoed, nil
}

func (s *negotiationService) findMatch(match *models.Match) *models.Match {
	for _, m := range s.matches {
		if m.Equal(match) {
			return m
		}
	}
	return nil
}

func (s *negotiationService) findPick(userID int64, match *models.Match) *models.Pick {
	for _, pick := range s.picks {
		if pick.Is(userID, match) {
			return pick
		}
	}
	return nil
}

func (s *negotiationService) findOpponentPick(userID int64, match *models.Match) *models.Pick {
	for _, pick := range s.picks {
		if pick.UserID != userID && pick.Match.Equal(match) {
			return pick
		}
	}
	return nil
}

func validateArbitraryPick(pick models.ArbitraryPick) error {
	if len(pick.WorldMapPicks) == 0 || len(pick.WorldMapVetoes) == 0 || len(pick.CountryMapPicks) == 0 {
		return ErrInvalidPick
	}
	return nil
}
