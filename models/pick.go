package models

import (
	"fmt"
	"strings"
)

// ArbitraryPick — содержимое одной отправки пиков. Не имеет идентичности,
// сразу поглощается в Pick.
type ArbitraryPick struct {
	WorldMapPicks    []Map      `json:"world_map_picks"`
	WorldMapVetoes   []Map      `json:"world_map_vetoes"`
	CountryMapPicks  []Map      `json:"country_map_picks"`
	CountryMapVetoes []Map      `json:"country_map_vetoes"`
	RedeemedMode     Gamemode   `json:"redeemed_mode,omitempty"`
	VetoedModes      []Gamemode `json:"vetoed_modes,omitempty"`
}

type VetoKind string

const (
	VetoWorldMap   VetoKind = "world_map"
	VetoCountryMap VetoKind = "country_map"
	VetoGamemode   VetoKind = "gamemode"
)

// KnownVeto — подтверждённое вето соперника на карту или режим.
type KnownVeto struct {
	Kind VetoKind `json:"kind"`
	Name string   `json:"name"`
	Link string   `json:"link,omitempty"`
}

// Pick — зафиксированные пики игрока для матча. Идентичность — пара
// (user_id, матч); не больше одного Pick на пару, замена полей возможна
// только через путь бэкап-пика.
type Pick struct {
	UserID           int64       `json:"user_id"`
	Match            Match       `json:"match"`
	WorldMapPicks    []Map       `json:"world_map_picks"`
	WorldMapVetoes   []Map       `json:"world_map_vetoes"`
	CountryMapPicks  []Map       `json:"country_map_picks"`
	CountryMapVetoes []Map       `json:"country_map_vetoes"`
	RedeemedMode     Gamemode    `json:"redeemed_mode"`
	VetoedModes      []Gamemode  `json:"vetoed_modes"`
	KnownVetoes      []KnownVeto `json:"known_vetoes"`
}

func NewPick(userID int64, match Match, ap ArbitraryPick) *Pick {
	p := &Pick{
		UserID: userID,
		Match:  match,
	}
	p.SetArbitraryPick(ap)
	return p
}

// SetArbitraryPick перезаписывает содержимое пика; known_vetoes не трогает.
func (p *Pick) SetArbitraryPick(ap ArbitraryPick) {
	p.RedeemedMode = ap.RedeemedMode
	if p.RedeemedMode == "" {
		p.RedeemedMode = DefaultGamemode
	}
	p.VetoedModes = ap.VetoedModes
	if p.VetoedModes == nil {
		p.VetoedModes = []Gamemode{}
	}
	p.WorldMapPicks = ap.WorldMapPicks
	p.WorldMapVetoes = ap.WorldMapVetoes
	p.CountryMapPicks = ap.CountryMapPicks
	p.CountryMapVetoes = ap.CountryMapVetoes
}

// Is сообщает, принадлежит ли пик паре (userID, матч).
func (p *Pick) Is(userID int64, match *Match) bool {
	return p.UserID == userID && p.Match.Equal(match)
}

func (p *Pick) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pick by %d for match %d vs %d:", p.UserID, p.Match.ID1, p.Match.ID2)
	section := func(title string, maps []Map) {
		b.WriteString("\n" + title + ":")
		for _, m := range maps {
			b.WriteString("\n" + m.Name)
		}
	}
	section("World map picks", p.WorldMapPicks)
	section("Country map picks", p.CountryMapPicks)
	section("World map vetoes", p.WorldMapVetoes)
	section("Country map vetoes", p.CountryMapVetoes)
	fmt.Fprintf(&b, "\nRedeemed gamemode: %s", p.RedeemedMode)
	return b.String()
}
