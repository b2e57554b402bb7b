package models

// Tier — соревновательный дивизион лиги. Значение также служит ключом
// для канала анонсов этого дивизиона.
type Tier string

const (
	TierS          Tier = "s_tier"
	TierA          Tier = "a_tier"
	TierB          Tier = "b_tier"
	TierC          Tier = "c_tier"
	TierD          Tier = "d_tier"
	TierE          Tier = "e_tier"
	TierRottweiler Tier = "rottweiler_tier"
)

// AllTiers перечисляет дивизионы в порядке силы, сверху вниз.
var AllTiers = []Tier{TierS, TierA, TierB, TierC, TierD, TierE, TierRottweiler}

func (t Tier) Valid() bool {
	for _, known := range AllTiers {
		if t == known {
			return true
		}
	}
	return false
}
