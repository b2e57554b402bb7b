package models

import "time"

type UserRole string

const (
	RolePlayer    UserRole = "player"
	RoleModerator UserRole = "moderator"
)

// User — учётка для HTTP-поверхности; движок переговоров оперирует только
// идентификаторами игроков чат-платформы и про пользователей ничего не знает.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
