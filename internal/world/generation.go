// World generation: islands of grass, forest and mountain stamped onto a
// water rectangle, then fish schools along the coasts. Layered simplex
// noise shapes where mountains and forests cluster.
package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/tiles"
)

var (
	// ErrGenConfig is returned for generation parameters that cannot produce a world.
	ErrGenConfig = errors.New("world: invalid generation config")
	// ErrTooManyIslands is returned when the land threshold is not reached
	// within MaxIslands islands.
	ErrTooManyIslands = errors.New("world: land threshold not reached")
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Columns         int     `yaml:"columns"`          // last column index
	Rows            int     `yaml:"rows"`             // last row index
	StampSize       int     `yaml:"stamp_size"`       // radius of one land stamp
	IslandSize      int     `yaml:"island_size"`      // radius of one island
	IslandThreshold float64 `yaml:"island_threshold"` // land share at which an island is done
	WorldThreshold  float64 `yaml:"world_threshold"`  // land share at which the world is done
	Margin          int     `yaml:"margin"`           // water kept around the islands
	MaxIslands      int     `yaml:"max_islands"`
	FishChance      float64 `yaml:"fish_chance"` // chance a coastal water tile holds fish
	Seed            int64   `yaml:"seed"`        // 0 = random
}

// DefaultGenConfig returns the standard 100x100 archipelago.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Columns:         100,
		Rows:            100,
		StampSize:       3,
		IslandSize:      20,
		IslandThreshold: 0.85,
		WorldThreshold:  0.4,
		Margin:          10,
		MaxIslands:      200,
		FishChance:      0.34,
		Seed:            0,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Columns:         30,
		Rows:            30,
		StampSize:       2,
		IslandSize:      5,
		IslandThreshold: 0.85,
		WorldThreshold:  0.2,
		Margin:          2,
		MaxIslands:      100,
		FishChance:      0.34,
		Seed:            42,
	}
}

func (cfg GenConfig) clamp() int {
	return cfg.IslandSize + cfg.StampSize + cfg.Margin
}

// Validate checks that the parameters describe a world that can be built.
func (cfg GenConfig) Validate() error {
	switch {
	case cfg.StampSize <= 0:
		return fmt.Errorf("%w: stamp size %d", ErrGenConfig, cfg.StampSize)
	case cfg.IslandSize < cfg.StampSize:
		return fmt.Errorf("%w: island size %d below stamp size", ErrGenConfig, cfg.IslandSize)
	case cfg.Columns <= 2*cfg.clamp() || cfg.Rows <= 2*cfg.clamp():
		return fmt.Errorf("%w: %dx%d too small for islands of %d", ErrGenConfig, cfg.Columns, cfg.Rows, cfg.clamp())
	case cfg.IslandThreshold <= 0 || cfg.IslandThreshold > 1:
		return fmt.Errorf("%w: island threshold %v", ErrGenConfig, cfg.IslandThreshold)
	case cfg.WorldThreshold <= 0 || cfg.WorldThreshold > 1:
		return fmt.Errorf("%w: world threshold %v", ErrGenConfig, cfg.WorldThreshold)
	case cfg.FishChance < 0 || cfg.FishChance > 1:
		return fmt.Errorf("%w: fish chance %v", ErrGenConfig, cfg.FishChance)
	case cfg.MaxIslands <= 0:
		return fmt.Errorf("%w: max islands %d", ErrGenConfig, cfg.MaxIslands)
	}
	return nil
}

// generator carries the random sources of one Generate call.
type generator struct {
	cfg       GenConfig
	m         *Map
	rng       *rand.Rand
	elevation opensimplex.Noise
	moisture  opensimplex.Noise
}

// Generate builds a new map. The same non-zero seed always yields the same map.
func Generate(cfg GenConfig) (*Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	g := &generator{
		cfg:       cfg,
		m:         NewMap(),
		rng:       rand.New(rand.NewSource(seed)),
		elevation: opensimplex.NewNormalized(seed),
		moisture:  opensimplex.NewNormalized(seed + 1),
	}

	for i := 0; i <= cfg.Columns; i++ {
		for j := 0; j <= cfg.Rows; j++ {
			g.m.Create(hex.FromOffset(i, j), catalog.Water)
		}
	}

	all := g.m.Coordinates()
	islands := 0
	for landShare(g.m, all) < cfg.WorldThreshold {
		if islands == cfg.MaxIslands {
			g.m.Close()
			return nil, fmt.Errorf("%w after %d islands", ErrTooManyIslands, islands)
		}
		g.island()
		islands++
	}
	fish := g.fishSchools()

	slog.Debug("world generated", "seed", seed, "islands", islands, "fish_schools", fish, "tiles", g.m.Len())
	return g.m, nil
}

func (g *generator) island() {
	clamp := g.cfg.clamp()
	pick := func(last int) int {
		v := math.Round(g.rng.Float64() * float64(last))
		return int(math.Max(float64(clamp), math.Min(float64(last-clamp), v)))
	}
	start := hex.FromOffset(pick(g.cfg.Columns), pick(g.cfg.Rows))
	area := hex.Range(start, g.cfg.IslandSize)
	for landShare(g.m, area) < g.cfg.IslandThreshold {
		center := area[g.rng.Intn(len(area))]
		for _, c := range hex.Range(center, g.cfg.StampSize) {
			g.m.Create(c, g.groundFor(c))
		}
	}
}

// groundFor picks land for c. Mountains grow next to mountains and forests
// next to forests, with the noise fields raising the odds in high or wet
// regions.
func (g *generator) groundFor(c hex.Coord) tiles.Tile {
	var mountains, forests float64
	for _, nb := range c.Neighbors() {
		inst, ok := g.m.Get(nb)
		switch {
		case !ok:
		case tiles.Is(inst, catalog.KeyMountain):
			mountains++
		case tiles.Is(inst, catalog.KeyForest):
			forests++
		}
	}
	const faces = 6.0

	x, y := noisePoint(c)
	high := octaveNoise(g.elevation, x, y, 4, 0.08, 0.5)
	wet := octaveNoise(g.moisture, x, y, 3, 0.06, 0.5)

	mountainOdds := math.Max(0.03*(0.5+high), mountains/faces/1.07)
	if g.rng.Float64() <= mountainOdds {
		return catalog.Mountain
	}
	if mountains > 2 {
		return catalog.Forest
	}
	forestOdds := math.Max(0.2*(0.5+wet), forests/(faces/1.15))
	if g.rng.Float64() <= forestOdds {
		return catalog.Forest
	}
	return catalog.Grass
}

// fishSchools turns some coastal water into fish schools and returns how many.
func (g *generator) fishSchools() int {
	coast := g.m.Filter(func(inst tiles.Instance, c hex.Coord) bool {
		if !tiles.Is(inst, catalog.KeyWater) {
			return false
		}
		for _, nb := range c.Neighbors() {
			if other, ok := g.m.Get(nb); ok && !tiles.Is(other, catalog.KeyWater, catalog.KeyFishSchool) {
				return true
			}
		}
		return false
	})
	n := 0
	for _, c := range coast.Coordinates() {
		if g.rng.Float64() < g.cfg.FishChance {
			g.m.Create(c, catalog.FishSchool)
			n++
		}
	}
	return n
}

// landShare is the fraction of area that is not water.
func landShare(m *Map, area []hex.Coord) float64 {
	if len(area) == 0 {
		return 1
	}
	land := 0
	for _, c := range area {
		if inst, ok := m.Get(c); ok && !tiles.Is(inst, catalog.KeyWater, catalog.KeyFishSchool) {
			land++
		}
	}
	return float64(land) / float64(len(area))
}

// noisePoint maps c to continuous space for noise sampling.
func noisePoint(c hex.Coord) (float64, float64) {
	col, row := c.Offset()
	return float64(col) + 0.5*float64(row&1), float64(row) * math.Sqrt(3.0) / 2.0
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
