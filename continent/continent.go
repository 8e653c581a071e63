package continent

import "fmt"

// Continent is the only record the service knows about.
// Field order is the JSON order: name, area, population.
type Continent struct {
	Name       string `json:"name"`
	Area       int64  `json:"area"`       // square kilometers
	Population int64  `json:"population"` // needs 64 bits
}

func (c Continent) String() string {
	return fmt.Sprintf("{name: %v, area: %v, population: %v}", c.Name, c.Area, c.Population)
}

var seed = []struct {
	key string
	c   Continent
}{
	{"asia", Continent{Name: "asia", Area: 44579000, Population: 4641054775}},
	{"africa", Continent{Name: "africa", Area: 30370000, Population: 1340598147}},
	{"north_america", Continent{Name: "north_america", Area: 24709000, Population: 592072212}},
	{"south_america", Continent{Name: "south_america", Area: 17840000, Population: 430759766}},
	{"antarctica", Continent{Name: "antarctica", Area: 14200000, Population: 0}},
	{"europe", Continent{Name: "europe", Area: 10180000, Population: 747636026}},
	{"oceania", Continent{Name: "oceania", Area: 8600000, Population: 43111704}},
}

// Seed returns a fresh copy of the seven startup records, keyed the way
// the store expects them.
func Seed() map[string]Continent {
	m := make(map[string]Continent, len(seed))
	for _, s := range seed {
		m[s.key] = s.c
	}
	return m
}

// SeedKeys lists the seed keys in a stable order.
func SeedKeys() []string {
	keys := make([]string, 0, len(seed))
	for _, s := range seed {
		keys = append(keys, s.key)
	}
	return keys
}
