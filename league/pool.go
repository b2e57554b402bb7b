package league

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/icedout/league-system/models"
)

// ErrPoolGenerationExhausted — выборка не смогла удовлетворить ограничение
// соседних недель за отведённое число попыток.
var ErrPoolGenerationExhausted = errors.New("country pool generation ran out of retry attempts")

// DefaultPoolAttempts ограничивает повторные выборки. Исходное поведение —
// неограниченная рекурсия; на перегруженном каталоге она зависает, поэтому
// бюджет явный.
const DefaultPoolAttempts = 1000

// GenerateCountryPool выбирает без возвращения counts карт каждого ранга из
// каталога так, чтобы ни одно имя не попало в excluded (имена пулов недель
// week-1 и week+1). При нарушении вся выборка повторяется заново.
func GenerateCountryPool(rng *rand.Rand, catalog []models.CountryMap, counts models.TierCounts, excluded map[string]struct{}, maxAttempts int) ([]models.CountryMap, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultPoolAttempts
	}
	aTier := models.CountryMapsByTier(catalog, models.MapTierA)
	bTier := models.CountryMapsByTier(catalog, models.MapTierB)
	cTier := models.CountryMapsByTier(catalog, models.MapTierC)
	if len(aTier) < counts.A || len(bTier) < counts.B || len(cTier) < counts.C {
		return nil, fmt.Errorf("catalog too small for tier counts %+v", counts)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		pool := make([]models.CountryMap, 0, counts.Total())
		pool = append(pool, sample(rng, aTier, counts.A)...)
		pool = append(pool, sample(rng, bTier, counts.B)...)
		pool = append(pool, sample(rng, cTier, counts.C)...)
		if !intersectsExcluded(pool, excluded) {
			return pool, nil
		}
	}
	return nil, ErrPoolGenerationExhausted
}

// sample — выборка k карт без возвращения.
func sample(rng *rand.Rand, list []models.CountryMap, k int) []models.CountryMap {
	idx := rng.Perm(len(list))[:k]
	picked := make([]models.CountryMap, 0, k)
	for _, i := range idx {
		picked = append(picked, list[i])
	}
	return picked
}

func intersectsExcluded(pool []models.CountryMap, excluded map[string]struct{}) bool {
	for _, m := range pool {
		if _, ok := excluded[m.Name]; ok {
			return true
		}
	}
	return false
}
