package league

import (
	"math/rand"
	"testing"

	"github.com/icedout/league-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countryMap(name string, tier models.MapTier) models.CountryMap {
	return models.CountryMap{Map: models.Map{Name: name}, Tier: tier}
}

func testCatalog() []models.CountryMap {
	return []models.CountryMap{
		countryMap("a1", models.MapTierA),
		countryMap("a2", models.MapTierA),
		countryMap("a3", models.MapTierA),
		countryMap("b1", models.MapTierB),
		countryMap("b2", models.MapTierB),
		countryMap("b3", models.MapTierB),
		countryMap("c1", models.MapTierC),
		countryMap("c2", models.MapTierC),
	}
}

func TestGenerateCountryPoolTierCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	pool, err := GenerateCountryPool(rng, testCatalog(), models.DefaultTierCounts, nil, 0)
	require.NoError(t, err)
	require.Len(t, pool, models.DefaultTierCounts.Total())

	byTier := map[models.MapTier]int{}
	seen := map[string]bool{}
	for _, m := range pool {
		byTier[m.Tier]++
		assert.False(t, seen[m.Name], "map %s drawn twice", m.Name)
		seen[m.Name] = true
	}
	assert.Equal(t, 2, byTier[models.MapTierA])
	assert.Equal(t, 2, byTier[models.MapTierB])
	assert.Equal(t, 1, byTier[models.MapTierC])
}

func TestGenerateCountryPoolExclusion(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	excluded := map[string]struct{}{
		"a1": {},
		"b2": {},
		"c1": {},
	}

	for i := 0; i < 50; i++ {
		pool, err := GenerateCountryPool(rng, testCatalog(), models.DefaultTierCounts, excluded, 0)
		require.NoError(t, err)
		for _, m := range pool {
			_, hit := excluded[m.Name]
			assert.False(t, hit, "excluded map %s drawn", m.Name)
		}
	}
}

func TestGenerateCountryPoolExhaustion(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	// Оба A-ранга исключены: удовлетворить выборку невозможно.
	catalog := []models.CountryMap{
		countryMap("a1", models.MapTierA),
		countryMap("a2", models.MapTierA),
		countryMap("b1", models.MapTierB),
		countryMap("b2", models.MapTierB),
		countryMap("c1", models.MapTierC),
	}
	excluded := map[string]struct{}{"a1": {}}

	_, err := GenerateCountryPool(rng, catalog, models.TierCounts{A: 2, B: 2, C: 1}, excluded, 25)
	assert.ErrorIs(t, err, ErrPoolGenerationExhausted)
}

func TestGenerateCountryPoolCatalogTooSmall(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	catalog := []models.CountryMap{countryMap("a1", models.MapTierA)}

	_, err := GenerateCountryPool(rng, catalog, models.DefaultTierCounts, nil, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPoolGenerationExhausted)
}

func TestGenerateCountryPoolFullCatalog(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	pool, err := GenerateCountryPool(rng, models.CountryMapList, models.DefaultTierCounts, nil, 0)
	require.NoError(t, err)
	assert.Len(t, pool, 5)
}
