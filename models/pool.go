package models

// WeekPool — пул карт, выбранный для недели. История пулов append-only:
// запись недели никогда не перезаписывается.
type WeekPool struct {
	Week        int          `json:"week"`
	WorldMaps   []Map        `json:"world_maps"`
	CountryMaps []CountryMap `json:"country_maps"`
}

// CountryNameSet возвращает множество имён карт пула для проверки
// пересечения с соседними неделями.
func (p *WeekPool) CountryNameSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.CountryMaps))
	for _, m := range p.CountryMaps {
		set[m.Name] = struct{}{}
	}
	return set
}
