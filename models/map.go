package models

type Gamemode string

const (
	GamemodeMoving Gamemode = "MOVING"
	GamemodeNM     Gamemode = "NM"
	GamemodeNMPZ   Gamemode = "NMPZ"
)

// DefaultGamemode подставляется, если игрок не выкупил режим.
const DefaultGamemode = GamemodeNM

var AllGamemodes = []Gamemode{GamemodeMoving, GamemodeNM, GamemodeNMPZ}

type MapTier string

const (
	MapTierA MapTier = "A"
	MapTierB MapTier = "B"
	MapTierC MapTier = "C"
)

// Map — неизменяемые справочные данные карты. Равенство определяется
// по имени, ссылка — только для отображения.
type Map struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

func (m Map) Equal(other Map) bool {
	return m.Name == other.Name
}

func (m Map) String() string {
	return m.Name
}

type CountryMap struct {
	Map
	Tier MapTier `json:"tier"`
}

// TierCounts задаёт, сколько карт каждого ранга попадает в недельный пул.
type TierCounts struct {
	A int
	B int
	C int
}

var DefaultTierCounts = TierCounts{A: 2, B: 2, C: 1}

func (c TierCounts) Total() int {
	return c.A + c.B + c.C
}
