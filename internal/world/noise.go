package world

import (
	"github.com/aquilax/go-perlin"
)

// Perlin construction parameters, shared by every channel.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
)

// Fixed seed offsets for the named noise channels. Deriving every channel
// from the world seed by a constant offset keeps generation reproducible
// across generator instances and worker threads.
const (
	seedOffsetContinents  = 0
	seedOffsetTerrain     = 1
	seedOffsetDetail      = 2
	seedOffsetTemperature = 3
	seedOffsetMoisture    = 4
	seedOffsetRiver       = 5
	seedOffsetLake        = 6
	seedOffsetTrees       = 7
	seedOffsetIsland      = 8
	seedOffsetCave1       = 9
	seedOffsetCave2       = 10
	seedOffsetOre         = 11
	seedOffsetErosion     = 12
)

// noiseSet bundles the seeded noise channels terrain generation reads.
// Channels are immutable after construction and safe for concurrent reads,
// but each generator owns its own set so workers never share state.
type noiseSet struct {
	continents  *perlin.Perlin
	terrain     *perlin.Perlin
	detail      *perlin.Perlin
	temperature *perlin.Perlin
	moisture    *perlin.Perlin
	river       *perlin.Perlin
	lake        *perlin.Perlin
	trees       *perlin.Perlin
	island      *perlin.Perlin
	cave1       *perlin.Perlin
	cave2       *perlin.Perlin
	ore         *perlin.Perlin
	erosion     *perlin.Perlin
}

func newNoiseSet(seed int64) *noiseSet {
	channel := func(offset int64) *perlin.Perlin {
		return perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed+offset)
	}
	return &noiseSet{
		continents:  channel(seedOffsetContinents),
		terrain:     channel(seedOffsetTerrain),
		detail:      channel(seedOffsetDetail),
		temperature: channel(seedOffsetTemperature),
		moisture:    channel(seedOffsetMoisture),
		river:       channel(seedOffsetRiver),
		lake:        channel(seedOffsetLake),
		trees:       channel(seedOffsetTrees),
		island:      channel(seedOffsetIsland),
		cave1:       channel(seedOffsetCave1),
		cave2:       channel(seedOffsetCave2),
		ore:         channel(seedOffsetOre),
		erosion:     channel(seedOffsetErosion),
	}
}

// fbm sums octaves of a channel at increasing frequency and decreasing
// amplitude, normalized back to the base noise range.
func fbm(p *perlin.Perlin, x, z float64, octaves int, persistence, lacunarity, scale float64) float64 {
	total := 0.0
	amplitude := 1.0
	frequency := scale
	maxValue := 0.0

	for i := 0; i < octaves; i++ {
		total += p.Noise2D(x*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	return total / maxValue
}
