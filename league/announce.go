package league

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/icedout/league-system/models"
)

// AssembleAnnouncement собирает текст анонса матча из пиков обеих сторон.
// Игры 1–2 — первый мировой пик каждой стороны с её выкупленным режимом,
// игры 3–4 — случайная из первых пяти страновых карт каждой стороны,
// игра 5 — случайная мировая карта каталога, исключая четыре уже
// задействованные (первый пик и первое вето обеих сторон).
func AssembleAnnouncement(rng *rand.Rand, match *models.Match, picks [2]*models.Pick, worldCatalog []models.Map) string {
	used := make([]models.Map, 0, 4)
	for _, p := range picks {
		if len(p.WorldMapPicks) > 0 {
			used = append(used, p.WorldMapPicks[0])
		}
		if len(p.WorldMapVetoes) > 0 {
			used = append(used, p.WorldMapVetoes[0])
		}
	}
	randomWorld := randomMapExcluding(rng, worldCatalog, used)
	country1 := randomMap(rng, firstN(picks[0].CountryMapPicks, 5))
	country2 := randomMap(rng, firstN(picks[1].CountryMapPicks, 5))

	var b strings.Builder
	fmt.Fprintf(&b, "Match:\n%s\n", match)
	fmt.Fprintf(&b, "Game 1: %s %s %s\n", picks[0].WorldMapPicks[0].Name, picks[0].RedeemedMode, picks[0].WorldMapPicks[0].Link)
	fmt.Fprintf(&b, "Game 2: %s %s %s\n", picks[1].WorldMapPicks[0].Name, picks[1].RedeemedMode, picks[1].WorldMapPicks[0].Link)
	fmt.Fprintf(&b, "Game 3: %s NM %s\n", country1.Name, country1.Link)
	fmt.Fprintf(&b, "Game 4 (if needed): %s NM %s\n", country2.Name, country2.Link)
	fmt.Fprintf(&b, "Game 5 (if needed): %s NM %s\n", randomWorld.Name, randomWorld.Link)
	return b.String()
}

func firstN(list []models.Map, n int) []models.Map {
	if len(list) < n {
		return list
	}
	return list[:n]
}

func randomMap(rng *rand.Rand, list []models.Map) models.Map {
	if len(list) == 0 {
		return models.Map{}
	}
	return list[rng.Intn(len(list))]
}

func randomMapExcluding(rng *rand.Rand, list []models.Map, excluded []models.Map) models.Map {
	remaining := make([]models.Map, 0, len(list))
	for _, m := range list {
		if !containsMap(excluded, m) {
			remaining = append(remaining, m)
		}
	}
	return randomMap(rng, remaining)
}
