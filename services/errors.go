package services

import "errors"

// Общие ошибки сервисного слоя и маппинга HTTP.
var (
	// Пользовательские отказы (не фатальные)
	ErrDuplicateSubmission = errors.New("picks for this match are already submitted")
	ErrAlreadyPicked       = errors.New("backup pick is not expected from this player")
	ErrNotAParticipant     = errors.New("player is not found among the match participants")
	ErrInvalidPick         = errors.New("pick must contain at least one world map pick, one world map veto and one country map pick")
	ErrInvalidTier         = errors.New("unknown tier")
	ErrInvalidWeek         = errors.New("week must not be negative")

	// Ошибки последовательности вызовов (внутренние: при корректной
	// оркестровке не возникают)
	ErrMatchNotFound = errors.New("match not found in the registry")
	ErrPickNotFound  = errors.New("pick not found in the ledger")
	ErrPoolNotFound  = errors.New("no pool stored for this week")

	// Аутентификация модераторов
	ErrValidationFailed   = errors.New("validation failed")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserEmailConflict  = errors.New("email address is already in use")
)
