package models

// Статический каталог карт. Только чтение во время работы.

var WorldMapList = []Map{
	{Name: "A Community World", Link: "https://www.geoguessr.com/maps/62a44b22040f04bd36e8a914"},
	{Name: "A Tweaked World", Link: "https://www.geoguessr.com/maps/64205c50e014cf9bb1a04e01"},
	{Name: "A Varied World", Link: "https://www.geoguessr.com/maps/64ce812adc7614680516ff8c"},
	{Name: "AI Generated World", Link: "https://www.geoguessr.com/maps/5dbaf08ed0d2a478444d2e8e"},
	{Name: "An Arbitrary Rural World", Link: "https://www.geoguessr.com/maps/643dbc7ccc47d3a344307998"},
	{Name: "An Improved World", Link: "https://www.geoguessr.com/maps/5b0a80f8596695b708122809"},
	{Name: "Less-Extreme Regionguessing", Link: "https://www.geoguessr.com/maps/658a3ef12255cca9e7f39c06"},
	{Name: "The World at Equilibrium", Link: "https://www.geoguessr.com/maps/64a33494a05ac4fecb6b9e8a"},
}

var CountryMapList = []CountryMap{
	{Map: Map{Name: "A Balanced Australia", Link: "https://www.geoguessr.com/maps/60afb9b2dcdbe60001438fa6"}, Tier: MapTierA},
	{Map: Map{Name: "A Balanced Brazil", Link: "https://www.geoguessr.com/maps/61df8477a94f5d0001ef9f2c"}, Tier: MapTierA},
	{Map: Map{Name: "A Balanced Canada", Link: "https://www.geoguessr.com/maps/61067f9608061c000157a851"}, Tier: MapTierA},
	{Map: Map{Name: "A Balanced South Africa", Link: "https://www.geoguessr.com/maps/62eb2b6e9e3a000003c039ad"}, Tier: MapTierA},
	{Map: Map{Name: "An Arbitrary Argentina", Link: "https://www.geoguessr.com/maps/63a3cef9571dcbb3660427c4"}, Tier: MapTierA},
	{Map: Map{Name: "AI Gen - Indonesia", Link: "https://www.geoguessr.com/maps/619086606e5572000185a1db"}, Tier: MapTierA},
	{Map: Map{Name: "AI gen - Mexico", Link: "https://www.geoguessr.com/maps/63382d2cc00816fde6cd69b6"}, Tier: MapTierA},
	{Map: Map{Name: "An Arbitrary Russia", Link: "https://www.geoguessr.com/maps/645fee824b5a2a4652553378"}, Tier: MapTierA},
	{Map: Map{Name: "An Arbitrary United States", Link: "https://www.geoguessr.com/maps/61dfb63654e4730001e8faf5"}, Tier: MapTierA},
	{Map: Map{Name: "A Balanced AI Generated Chile", Link: "https://www.geoguessr.com/maps/6430f6ae803b91d398056286"}, Tier: MapTierB},
	{Map: Map{Name: "A Balanced AI Generated India", Link: "https://www.geoguessr.com/maps/62e10035c97fc44e29bd8e0e"}, Tier: MapTierB},
	{Map: Map{Name: "A Balanced Malaysia", Link: "https://www.geoguessr.com/maps/634050c7fc09dbb1e6c107c6"}, Tier: MapTierB},
	{Map: Map{Name: "A Balanced Peru", Link: "https://www.geoguessr.com/maps/63e7e2184c0ca2dca3723ca2"}, Tier: MapTierB},
	{Map: Map{Name: "A Balanced Philippines", Link: "https://www.geoguessr.com/maps/64f4959080229b9a3d429041"}, Tier: MapTierB},
	{Map: Map{Name: "A Balanced Spain", Link: "https://www.geoguessr.com/maps/62f439cfe46df79befe5c5f8"}, Tier: MapTierB},
	{Map: Map{Name: "AI Degenerated Türkiye", Link: "https://www.geoguessr.com/maps/65c401ff733920eb83c44174"}, Tier: MapTierB},
	{Map: Map{Name: "AI Gen - New Zealand", Link: "https://www.geoguessr.com/maps/61f3f49330ad7100010d56c2"}, Tier: MapTierB},
	{Map: Map{Name: "AI Gen - Thailand", Link: "https://www.geoguessr.com/maps/638777aabd4e538d5e52d4f9"}, Tier: MapTierB},
	{Map: Map{Name: "An Arbitrary Japan", Link: "https://www.geoguessr.com/maps/63e5ecc3ca384c72d0bd9bc4"}, Tier: MapTierB},
	{Map: Map{Name: "A Balanced Colombia", Link: "https://www.geoguessr.com/maps/63c0a65c985b2d9d2425c6a1"}, Tier: MapTierC},
	{Map: Map{Name: "A Balanced Germany", Link: "https://www.geoguessr.com/maps/617d2526ed0f750001c24b21"}, Tier: MapTierC},
	{Map: Map{Name: "A Balanced Italy", Link: "https://www.geoguessr.com/maps/63e40449e42ff95dc1d652ae"}, Tier: MapTierC},
	{Map: Map{Name: "A Balanced Kenya", Link: "https://www.geoguessr.com/maps/638188a2ce5dad8d44eb9cae"}, Tier: MapTierC},
	{Map: Map{Name: "A Balanced Sweden", Link: "https://www.geoguessr.com/maps/632994cb83652ed2e2009029"}, Tier: MapTierC},
	{Map: Map{Name: "AI Gen - France", Link: "https://www.geoguessr.com/maps/6383cdd0be0d9b60a5ab2e5d"}, Tier: MapTierC},
	{Map: Map{Name: "AI Gen - Norway", Link: "https://www.geoguessr.com/maps/6256b73b244c43c4448b6e45"}, Tier: MapTierC},
	{Map: Map{Name: "AI Generated United Kingdom", Link: "https://www.geoguessr.com/maps/5ba862d12c0173524cd9327a"}, Tier: MapTierC},
	{Map: Map{Name: "A Diverse Kazakhstan", Link: "https://www.geoguessr.com/maps/65fda213210c988a99251730"}, Tier: MapTierC},
}

// CountryMapsByTier возвращает карты каталога указанного ранга.
func CountryMapsByTier(catalog []CountryMap, tier MapTier) []CountryMap {
	var result []CountryMap
	for _, m := range catalog {
		if m.Tier == tier {
			result = append(result, m)
		}
	}
	return result
}
