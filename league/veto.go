package league

import (
	"github.com/icedout/league-system/models"
)

// CheckVetoes проверяет, попали ли пики mine под вето соперника. Порядок
// проверки: мировые карты, карты стран, выкупленный режим. Первое найденное
// вето записывается в mine.KnownVetoes, дальше проверка не идёт.
func CheckVetoes(mine, opponent *models.Pick) bool {
	for _, m := range mine.WorldMapPicks {
		if containsMap(opponent.WorldMapVetoes, m) {
			mine.KnownVetoes = append(mine.KnownVetoes, models.KnownVeto{
				Kind: models.VetoWorldMap, Name: m.Name, Link: m.Link,
			})
			return true
		}
	}
	for _, m := range mine.CountryMapPicks {
		if containsMap(opponent.CountryMapVetoes, m) {
			mine.KnownVetoes = append(mine.KnownVetoes, models.KnownVeto{
				Kind: models.VetoCountryMap, Name: m.Name, Link: m.Link,
			})
			return true
		}
	}
	for _, mode := range opponent.VetoedModes {
		if mode == mine.RedeemedMode {
			mine.KnownVetoes = append(mine.KnownVetoes, models.KnownVeto{
				Kind: models.VetoGamemode, Name: string(mine.RedeemedMode),
			})
			return true
		}
	}
	return false
}

// ReplaceResult — итог замены слотов бэкап-пиком.
type ReplaceResult struct {
	ReplacedWorld   int
	ReplacedCountry int
	ModeReplaced    bool
	// Shortfall: в бэкапе не хватило карт (или режима) на все слоты под
	// вето; частичная замена при этом сохраняется.
	Shortfall bool
}

// ReplaceVetoedSlots заменяет в initial слоты, попавшие под вето соперника,
// картами из backup. Слоты обходятся по порядку, позиции нетронутых пиков
// сохраняются. Один общий счётчик расходует карты бэкапа сквозь оба прохода
// (мировые, затем страновые).
func ReplaceVetoedSlots(initial, opponent *models.Pick, backup models.ArbitraryPick) ReplaceResult {
	var res ReplaceResult
	i := 0
	for idx, m := range initial.WorldMapPicks {
		if !containsMap(opponent.WorldMapVetoes, m) {
			continue
		}
		if len(backup.WorldMapPicks) <= i {
			res.Shortfall = true
			break
		}
		initial.WorldMapPicks[idx] = backup.WorldMapPicks[i]
		res.ReplacedWorld++
		i++
	}
	for idx, m := range initial.CountryMapPicks {
		if !containsMap(opponent.CountryMapVetoes, m) {
			continue
		}
		if len(backup.CountryMapPicks) <= i {
			res.Shortfall = true
			break
		}
		initial.CountryMapPicks[idx] = backup.CountryMapPicks[i]
		res.ReplacedCountry++
		i++
	}
	for _, mode := range opponent.VetoedModes {
		if mode != initial.RedeemedMode {
			continue
		}
		if backup.RedeemedMode == "" {
			res.Shortfall = true
		}
		initial.RedeemedMode = backup.RedeemedMode
		if initial.RedeemedMode == "" {
			initial.RedeemedMode = models.DefaultGamemode
		}
		res.ModeReplaced = true
		break
	}
	return res
}

// MatchReady — обе стороны матча имеют пик в леджере.
func MatchReady(match *models.Match, picks []*models.Pick) bool {
	var p1, p2 bool
	for _, pick := range picks {
		if !pick.Match.Equal(match) {
			continue
		}
		if pick.UserID == match.ID1 {
			p1 = true
		}
		if pick.UserID == match.ID2 {
			p2 = true
		}
	}
	return p1 && p2
}

func containsMap(list []models.Map, m models.Map) bool {
	for _, candidate := range list {
		if candidate.Equal(m) {
			return true
		}
	}
	return false
}
