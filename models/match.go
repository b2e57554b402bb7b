package models

import "fmt"

// Match — запланированный матч лиги: два игрока, дивизион и неделя.
// Backup хранит по флагу на игрока (true — игрок обязан переслать пики),
// Announced выставляется ровно один раз.
type Match struct {
	ID1       int64   `json:"id_1"`
	ID2       int64   `json:"id_2"`
	Tier      Tier    `json:"tier"`
	Week      int     `json:"week"`
	Backup    [2]bool `json:"backup"`
	Announced bool    `json:"announced"`
}

// Equal сравнивает матчи по идентичности (пара игроков, дивизион, неделя);
// состояние backup/announced на равенство не влияет.
func (m *Match) Equal(other *Match) bool {
	if other == nil {
		return false
	}
	return m.ID1 == other.ID1 && m.ID2 == other.ID2 && m.Tier == other.Tier && m.Week == other.Week
}

// Side возвращает индекс стороны игрока в матче (0 или 1).
func (m *Match) Side(userID int64) (int, bool) {
	switch userID {
	case m.ID1:
		return 0, true
	case m.ID2:
		return 1, true
	}
	return 0, false
}

func (m *Match) Participants() [2]int64 {
	return [2]int64{m.ID1, m.ID2}
}

func (m *Match) String() string {
	return fmt.Sprintf("<@%d> vs <@%d>", m.ID1, m.ID2)
}

// MatchKey — значение-идентичность матча, пригодное как ключ map.
type MatchKey struct {
	ID1  int64
	ID2  int64
	Tier Tier
	Week int
}

func (m *Match) Key() MatchKey {
	return MatchKey{ID1: m.ID1, ID2: m.ID2, Tier: m.Tier, Week: m.Week}
}
