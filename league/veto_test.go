package league

import (
	"testing"

	"github.com/icedout/league-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapByName(name string) models.Map {
	return models.Map{Name: name, Link: "https://example.com/" + name}
}

func mapsByName(names ...string) []models.Map {
	maps := make([]models.Map, 0, len(names))
	for _, name := range names {
		maps = append(maps, mapByName(name))
	}
	return maps
}

func testMatch() models.Match {
	return models.Match{ID1: 100, ID2: 200, Tier: models.TierA, Week: 3}
}

func pickFor(userID int64, ap models.ArbitraryPick) *models.Pick {
	return models.NewPick(userID, testMatch(), ap)
}

func TestCheckVetoesWorldMapHit(t *testing.T) {
	mine := pickFor(100, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("alpha", "beta"),
		WorldMapVetoes:  mapsByName("gamma"),
		CountryMapPicks: mapsByName("canada"),
	})
	opponent := pickFor(200, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("delta"),
		WorldMapVetoes:  mapsByName("beta"),
		CountryMapPicks: mapsByName("brazil"),
	})

	require.True(t, CheckVetoes(mine, opponent))
	require.Len(t, mine.KnownVetoes, 1)
	assert.Equal(t, models.VetoWorldMap, mine.KnownVetoes[0].Kind)
	assert.Equal(t, "beta", mine.KnownVetoes[0].Name)
}

func TestCheckVetoesLinkDifferenceDoesNotMatter(t *testing.T) {
	// Равенство карт определяется именем, ссылки могут расходиться.
	mine := pickFor(100, models.ArbitraryPick{
		WorldMapPicks:   []models.Map{{Name: "alpha", Link: "https://one"}},
		WorldMapVetoes:  mapsByName("gamma"),
		CountryMapPicks: mapsByName("canada"),
	})
	opponent := pickFor(200, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("delta"),
		WorldMapVetoes:  []models.Map{{Name: "alpha", Link: "https://two"}},
		CountryMapPicks: mapsByName("brazil"),
	})

	assert.True(t, CheckVetoes(mine, opponent))
}

func TestCheckVetoesRecordsOnlyFirstHit(t *testing.T) {
	// Проверка останавливается на первом вето: страновое вето и вето режима
	// при наличии мирового в запись не попадают.
	mine := pickFor(100, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("alpha"),
		WorldMapVetoes:  mapsByName("gamma"),
		CountryMapPicks: mapsByName("canada"),
		RedeemedMode:    models.GamemodeMoving,
	})
	opponent := pickFor(200, models.ArbitraryPick{
		WorldMapPicks:    mapsByName("delta"),
		WorldMapVetoes:   mapsByName("alpha"),
		CountryMapPicks:  mapsByName("brazil"),
		CountryMapVetoes: mapsByName("canada"),
		VetoedModes:      []models.Gamemode{models.GamemodeMoving},
	})

	require.True(t, CheckVetoes(mine, opponent))
	require.Len(t, mine.KnownVetoes, 1)
	assert.Equal(t, models.VetoWorldMap, mine.KnownVetoes[0].Kind)
}

func TestCheckVetoesCountryThenMode(t *testing.T) {
	mine := pickFor(100, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("alpha"),
		WorldMapVetoes:  mapsByName("gamma"),
		CountryMapPicks: mapsByName("canada"),
		RedeemedMode:    models.GamemodeNMPZ,
	})
	opponent := pickFor(200, models.ArbitraryPick{
		WorldMapPicks:    mapsByName("delta"),
		WorldMapVetoes:   mapsByName("epsilon"),
		CountryMapPicks:  mapsByName("brazil"),
		CountryMapVetoes: mapsByName("canada"),
	})

	require.True(t, CheckVetoes(mine, opponent))
	assert.Equal(t, models.VetoCountryMap, mine.KnownVetoes[0].Kind)

	mine2 := pickFor(100, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("alpha"),
		WorldMapVetoes:  mapsByName("gamma"),
		CountryMapPicks: mapsByName("canada"),
		RedeemedMode:    models.GamemodeNMPZ,
	})
	opponent2 := pickFor(200, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("delta"),
		WorldMapVetoes:  mapsByName("epsilon"),
		CountryMapPicks: mapsByName("brazil"),
		VetoedModes:     []models.Gamemode{models.GamemodeNMPZ},
	})

	require.True(t, CheckVetoes(mine2, opponent2))
	assert.Equal(t, models.VetoGamemode, mine2.KnownVetoes[0].Kind)
	assert.Equal(t, string(models.GamemodeNMPZ), mine2.KnownVetoes[0].Name)
}

func TestCheckVetoesClean(t *testing.T) {
	mine := pickFor(100, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("alpha"),
		WorldMapVetoes:  mapsByName("gamma"),
		CountryMapPicks: mapsByName("canada"),
	})
	opponent := pickFor(200, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("delta"),
		WorldMapVetoes:  mapsByName("epsilon"),
		CountryMapPicks: mapsByName("brazil"),
	})

	assert.False(t, CheckVetoes(mine, opponent))
	assert.Empty(t, mine.KnownVetoes)
}

func TestReplaceVetoedSlotsPreservesPositions(t *testing.T) {
	initial := pickFor(100, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("alpha", "beta", "gamma"),
		WorldMapVetoes:  mapsByName("omega"),
		CountryMapPicks: mapsByName("canada", "brazil"),
	})
	opponent := pickFor(200, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("delta"),
		WorldMapVetoes:  mapsByName("beta"),
		CountryMapPicks: mapsByName("japan"),
	})
	backup := models.ArbitraryPick{
		WorldMapPicks: mapsByName("replacement"),
	}

	res := ReplaceVetoedSlots(initial, opponent, backup)

	assert.Equal(t, 1, res.ReplacedWorld)
	assert.False(t, res.Shortfall)
	// Только заветованный слот меняется, позиции остальных сохраняются.
	assert.Equal(t, "alpha", initial.WorldMapPicks[0].Name)
	assert.Equal(t, "replacement", initial.WorldMapPicks[1].Name)
	assert.Equal(t, "gamma", initial.WorldMapPicks[2].Name)
}

func TestReplaceVetoedSlotsSharedIndex(t *testing.T) {
	// Один счётчик расходует бэкап сквозь мировой и страновой проходы: после
	// двух мировых замен страновой слот получает третью карту бэкапа.
	initial := pickFor(100, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("alpha", "beta"),
		WorldMapVetoes:  mapsByName("omega"),
		CountryMapPicks: mapsByName("canada"),
	})
	opponent := pickFor(200, models.ArbitraryPick{
		WorldMapPicks:    mapsByName("delta"),
		WorldMapVetoes:   mapsByName("alpha", "beta"),
		CountryMapPicks:  mapsByName("japan"),
		CountryMapVetoes: mapsByName("canada"),
	})
	backup := models.ArbitraryPick{
		WorldMapPicks:   mapsByName("w1", "w2"),
		CountryMapPicks: mapsByName("c1", "c2", "c3"),
	}

	res := ReplaceVetoedSlots(initial, opponent, backup)

	assert.Equal(t, 2, res.ReplacedWorld)
	assert.Equal(t, 1, res.ReplacedCountry)
	assert.Equal(t, "w1", initial.WorldMapPicks[0].Name)
	assert.Equal(t, "w2", initial.WorldMapPicks[1].Name)
	assert.Equal(t, "c3", initial.CountryMapPicks[0].Name)
}

func TestReplaceVetoedSlotsShortfallKeepsPartial(t *testing.T) {
	initial := pickFor(100, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("alpha", "beta"),
		WorldMapVetoes:  mapsByName("omega"),
		CountryMapPicks: mapsByName("canada"),
	})
	opponent := pickFor(200, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("delta"),
		WorldMapVetoes:  mapsByName("alpha", "beta"),
		CountryMapPicks: mapsByName("japan"),
	})
	backup := models.ArbitraryPick{
		WorldMapPicks: mapsByName("w1"),
	}

	res := ReplaceVetoedSlots(initial, opponent, backup)

	assert.True(t, res.Shortfall)
	assert.Equal(t, 1, res.ReplacedWorld)
	assert.Equal(t, "w1", initial.WorldMapPicks[0].Name)
	// Второй заветованный слот остаётся как был.
	assert.Equal(t, "beta", initial.WorldMapPicks[1].Name)
}

func TestReplaceVetoedSlotsModeDefault(t *testing.T) {
	initial := pickFor(100, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("alpha"),
		WorldMapVetoes:  mapsByName("omega"),
		CountryMapPicks: mapsByName("canada"),
		RedeemedMode:    models.GamemodeMoving,
	})
	opponent := pickFor(200, models.ArbitraryPick{
		WorldMapPicks:   mapsByName("delta"),
		WorldMapVetoes:  mapsByName("epsilon"),
		CountryMapPicks: mapsByName("japan"),
		VetoedModes:     []models.Gamemode{models.GamemodeMoving},
	})

	// Бэкап без выкупленного режима: слот откатывается на режим по умолчанию.
	res := ReplaceVetoedSlots(initial, opponent, models.ArbitraryPick{})

	assert.True(t, res.ModeReplaced)
	assert.True(t, res.Shortfall)
	assert.Equal(t, models.DefaultGamemode, initial.RedeemedMode)

	initial.RedeemedMode = models.GamemodeMoving
	res = ReplaceVetoedSlots(initial, opponent, models.ArbitraryPick{RedeemedMode: models.GamemodeNMPZ})

	assert.True(t, res.ModeReplaced)
	assert.False(t, res.Shortfall)
	assert.Equal(t, models.GamemodeNMPZ, initial.RedeemedMode)
}

func TestMatchReady(t *testing.T) {
	match := testMatch()
	ap := models.ArbitraryPick{
		WorldMapPicks:   mapsByName("alpha"),
		WorldMapVetoes:  mapsByName("beta"),
		CountryMapPicks: mapsByName("canada"),
	}

	picks := []*models.Pick{models.NewPick(100, match, ap)}
	assert.False(t, MatchReady(&match, picks))

	picks = append(picks, models.NewPick(200, match, ap))
	assert.True(t, MatchReady(&match, picks))

	// Пик на другой матч не считается.
	other := models.Match{ID1: 100, ID2: 200, Tier: models.TierA, Week: 4}
	picks = []*models.Pick{
		models.NewPick(100, match, ap),
		models.NewPick(200, other, ap),
	}
	assert.False(t, MatchReady(&match, picks))
}
