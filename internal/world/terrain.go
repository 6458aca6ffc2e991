package world

import "math"

// Noise scales for biome classification.
const (
	scaleContinent = 0.002
	scaleTemp      = 0.008
	scaleMoist     = 0.01
	scaleRiver     = 0.06
	scaleLake      = 0.025
	scaleIsland    = 0.05
	scaleMountain  = 0.005
)

// GetBiome classifies a world column. Rivers and lakes take precedence,
// then continentalness gates ocean/island/beach, then temperature and
// moisture split the land biomes.
func (g *Generator) GetBiome(x, z int) Biome {
	fx := float64(x)
	fz := float64(z)

	continent := g.noise.continents.Noise2D(fx*scaleContinent, fz*scaleContinent)
	riverNoise := g.noise.river.Noise2D(fx*scaleRiver, fz*scaleRiver)
	riverValue := 1.0 - math.Abs(riverNoise)*1.5

	lakeNoise := g.noise.lake.Noise2D(fx*scaleLake, fz*scaleLake)

	if riverValue > 0.85 && continent > -0.3 {
		return BiomeRiver
	}
	if lakeNoise < -0.6 && continent > -0.2 {
		return BiomeLake
	}
	if continent < -0.35 {
		islandNoise := g.noise.island.Noise2D(fx*scaleIsland, fz*scaleIsland)
		if islandNoise > 0.65 {
			return BiomeIsland
		}
		return BiomeOcean
	}
	if continent < -0.2 {
		return BiomeBeach
	}

	temp := g.noise.temperature.Noise2D(fx*scaleTemp, fz*scaleTemp)
	moist := g.noise.moisture.Noise2D(fx*scaleMoist, fz*scaleMoist)

	switch {
	case temp < -0.3:
		return BiomeTundra
	case temp > 0.5:
		if moist < -0.2 {
			return BiomeDesert
		}
		return BiomePlains
	case moist > 0.3:
		return BiomeSwamp
	case moist > -0.2:
		return BiomeForest
	default:
		mountainNoise := g.noise.terrain.Noise2D(fx*scaleMountain, fz*scaleMountain)
		if mountainNoise > 0.4 {
			return BiomeMountains
		}
		return BiomePlains
	}
}

// GetTerrainHeight returns the blended surface height for a column. Base
// heights from a 3x3 neighborhood are combined with inverse-distance
// weights to smooth discontinuities at biome borders.
func (g *Generator) GetTerrainHeight(x, z int) int {
	const blendRadius = 1
	totalHeight := 0.0
	weights := 0.0

	for dx := -blendRadius; dx <= blendRadius; dx++ {
		for dz := -blendRadius; dz <= blendRadius; dz++ {
			distSq := float64(dx*dx + dz*dz)
			weight := 1.0 / (1.0 + distSq)
			totalHeight += g.calculateBaseHeight(x+dx, z+dz) * weight
			weights += weight
		}
	}

	h := int(totalHeight / weights)
	if h < 1 {
		h = 1
	}
	if h > WorldHeight-20 {
		h = WorldHeight - 20
	}
	return h
}

// calculateBaseHeight evaluates the biome-specific height formula for a
// single column, before border blending.
func (g *Generator) calculateBaseHeight(x, z int) float64 {
	biome := g.GetBiome(x, z)
	fx := float64(x)
	fz := float64(z)

	continental := fbm(g.noise.continents, fx, fz, 3, 0.5, 2.0, 0.001)
	terrain := fbm(g.noise.terrain, fx, fz, 3, 0.5, 2.0, 0.008)
	detail := fbm(g.noise.detail, fx, fz, 3, 0.4, 2.0, 0.015)
	erosion := fbm(g.noise.erosion, fx, fz, 2, 0.5, 2.0, 0.005)

	switch biome {
	case BiomeOcean:
		depth := (continental+1.0)*0.5*15.0 + 35.0
		return depth + detail*3.0
	case BiomeRiver:
		return float64(SeaLevel-3) + detail*2.0
	case BiomeLake:
		return float64(SeaLevel-4) + detail*2.0
	case BiomeBeach:
		return float64(SeaLevel) + terrain*2.0 + detail
	case BiomeIsland:
		islandNoise := g.noise.island.Noise2D(fx*scaleIsland, fz*scaleIsland)
		islandHeight := (islandNoise + 1.0) * 0.5 * 25.0
		return math.Max(float64(SeaLevel)+islandHeight+detail*3.0, float64(SeaLevel)-5.0)
	case BiomeForest:
		return 68.0 + terrain*8.0 + detail*3.0
	case BiomeDesert:
		duneNoise := g.noise.detail.Noise2D(fx*0.02, fz*0.02)
		dune := (duneNoise + 1.0) * 0.5 * 8.0
		return 65.0 + terrain*5.0 + dune + detail*2.0
	case BiomeTundra:
		return 68.0 + terrain*6.0 + detail*2.0
	case BiomeMountains:
		peaks := fbm(g.noise.terrain, fx+1000.0, fz+1000.0, 3, 0.6, 2.5, 0.01)
		mountainHeight := (terrain + 1.0) * 0.5 * 60.0
		peakFactor := (peaks + 1.0) * 0.5
		return 80.0 + mountainHeight*(0.5+peakFactor*0.5) + detail*5.0
	case BiomeSwamp:
		return float64(SeaLevel) + 1.0 + terrain*2.0 + detail
	default: // Plains, and the fallback for anything unclassified
		flatness := 1.0 - math.Abs(erosion)*0.5
		return 66.0 + terrain*4.0*flatness + detail*2.0
	}
}

// Cave noise parameters. Cheese caves are open cavities where two
// independent 3D fields agree; spaghetti caves are narrow tunnels where
// both fields sit near zero.
const (
	caveScale           = 0.05
	spaghettiScale      = 0.08
	spaghettiOffset     = 500.0
	cheeseThreshold     = 0.7
	spaghettiHalfWidth  = 0.12
	entranceScale       = 0.02
	entranceOffset      = 1000.0
	entranceThreshold   = 0.85
	caveMinYProtected   = 5
	caveSurfaceDistance = 8
)

// isCave decides whether the voxel is carved out. A per-position hash gates
// carving by depth so deep caves are denser than shallow ones.
func (g *Generator) isCave(x, y, z, surfaceHeight int) bool {
	if y <= caveMinYProtected {
		return false
	}

	minSurfaceDistance := caveSurfaceDistance
	if g.isCaveEntrance(x, z, surfaceHeight) {
		minSurfaceDistance = 0
	}
	if y >= surfaceHeight-minSurfaceDistance {
		return false
	}

	fx := float64(x)
	fy := float64(y)
	fz := float64(z)

	cave1 := g.noise.cave1.Noise3D(fx*caveScale, fy*caveScale*0.5, fz*caveScale)
	cave2 := g.noise.cave2.Noise3D(fx*caveScale*0.7, fy*caveScale*0.4, fz*caveScale*0.7)
	isCheese := cave1 > cheeseThreshold && cave2 > cheeseThreshold

	spag1 := g.noise.cave1.Noise3D(fx*spaghettiScale+spaghettiOffset, fy*spaghettiScale, fz*spaghettiScale)
	spag2 := g.noise.cave2.Noise3D(fx*spaghettiScale+spaghettiOffset, fy*spaghettiScale, fz*spaghettiScale)
	isSpaghetti := math.Abs(spag1) < spaghettiHalfWidth && math.Abs(spag2) < spaghettiHalfWidth

	if !isCheese && !isSpaghetti {
		return false
	}

	var depthFactor float64
	switch {
	case y < 30:
		depthFactor = 1.0
	case y < 50:
		depthFactor = 0.8
	default:
		depthFactor = 0.5
	}
	return float64(g.positionHash3D(x, y, z)%100)/100.0 < depthFactor
}

// isCaveEntrance picks the rare surface columns that open into a cave
// below, relaxing the minimum surface distance for carving there.
func (g *Generator) isCaveEntrance(x, z, surfaceHeight int) bool {
	if surfaceHeight <= SeaLevel+2 {
		return false
	}

	fx := float64(x)
	fz := float64(z)
	entranceNoise := g.noise.cave1.Noise2D(fx*entranceScale+entranceOffset, fz*entranceScale+entranceOffset)
	if entranceNoise < entranceThreshold {
		return false
	}
	if g.positionHash(x, z)%10 != 0 {
		return false
	}

	// Only an entrance if a cheese pocket actually exists underneath.
	lo := surfaceHeight - 30
	if lo < 10 {
		lo = 10
	}
	for checkY := lo; checkY <= surfaceHeight-10; checkY++ {
		fy := float64(checkY)
		cave1 := g.noise.cave1.Noise3D(fx*caveScale, fy*caveScale*0.5, fz*caveScale)
		cave2 := g.noise.cave2.Noise3D(fx*caveScale*0.7, fy*caveScale*0.4, fz*caveScale*0.7)
		if cave1 > cheeseThreshold && cave2 > cheeseThreshold {
			return true
		}
	}
	return false
}

// oreAt returns a pocket block to substitute into stone, or air for none.
// Pockets get rarer with altitude.
func (g *Generator) oreAt(x, y, z int) BlockType {
	oreNoise := g.noise.ore.Noise3D(float64(x)*0.1, float64(y)*0.1, float64(z)*0.1)
	if oreNoise < 0.3 {
		return BlockTypeAir
	}

	rarity := float64(g.positionHash3D(x, y, z)%1000) / 1000.0
	switch {
	case y < 16 && rarity < 0.002:
		return BlockTypeClay
	case y < 32 && rarity < 0.005:
		return BlockTypeGravel
	case y < 64 && rarity < 0.015:
		return BlockTypeGravel
	case y < 128 && rarity < 0.02:
		return BlockTypeGravel
	default:
		return BlockTypeAir
	}
}

// get3DDensity adds overhang-capable density for mountain and island
// columns around the surface band.
func (g *Generator) get3DDensity(x, y, z int, biome Biome, surfaceHeight int) float64 {
	fx := float64(x)
	fy := float64(y)
	fz := float64(z)

	verticalGradient := (float64(surfaceHeight) - fy) / 8.0

	var densityNoise float64
	switch biome {
	case BiomeMountains:
		densityNoise = fbm(g.noise.terrain, fx, fz, 3, 0.5, 2.0, 0.02)*0.5 +
			g.noise.detail.Noise3D(fx*0.04, fy*0.04, fz*0.04)*0.5
	case BiomeIsland:
		densityNoise = g.noise.terrain.Noise3D(fx*0.03, fy*0.03, fz*0.03) * 0.4
	}
	return verticalGradient + densityNoise
}

// getBlockForBiome picks the block for a solid voxel from biome and depth.
func (g *Generator) getBlockForBiome(biome Biome, y, surfaceHeight, worldX, worldZ int) BlockType {
	if y == 0 {
		return BlockTypeBedrock
	}
	if y <= 4 {
		bedrockChance := uint32(5-y) * 20
		if g.positionHash3D(worldX, y, worldZ)%100 < bedrockChance {
			return BlockTypeBedrock
		}
	}

	depthFromSurface := surfaceHeight - y
	dirtDepth := 3 + int(g.positionHash(worldX, worldZ)%3)

	stone := func() BlockType {
		if ore := g.oreAt(worldX, y, worldZ); ore != BlockTypeAir {
			return ore
		}
		return BlockTypeStone
	}

	switch biome {
	case BiomeOcean, BiomeRiver, BiomeLake:
		switch {
		case depthFromSurface > 4:
			return stone()
		case depthFromSurface > 1:
			return BlockTypeGravel
		case y < surfaceHeight:
			return BlockTypeSand
		default:
			return BlockTypeAir
		}
	case BiomeBeach, BiomeIsland:
		switch {
		case depthFromSurface > 6:
			return stone()
		case depthFromSurface > 0:
			return BlockTypeSand
		case y == surfaceHeight-1:
			if biome == BiomeIsland && y > SeaLevel {
				return BlockTypeGrass
			}
			return BlockTypeSand
		default:
			return BlockTypeAir
		}
	case BiomeDesert:
		switch {
		case depthFromSurface > 10:
			return stone()
		case depthFromSurface > 0:
			return BlockTypeSand
		case y == surfaceHeight-1:
			return BlockTypeSand
		default:
			return BlockTypeAir
		}
	case BiomeTundra:
		switch {
		case depthFromSurface > dirtDepth+2:
			return stone()
		case depthFromSurface > 1:
			return BlockTypeDirt
		case y == surfaceHeight-1:
			return BlockTypeSnow
		default:
			return BlockTypeAir
		}
	case BiomeMountains:
		if y > 140 {
			switch {
			case y == surfaceHeight-1:
				return BlockTypeSnow
			case depthFromSurface > 0:
				return stone()
			default:
				return BlockTypeAir
			}
		}
		if y > 110 {
			switch {
			case depthFromSurface > 2:
				return stone()
			case y == surfaceHeight-1:
				return BlockTypeGrass
			default:
				return BlockTypeStone
			}
		}
		switch {
		case depthFromSurface > dirtDepth:
			return stone()
		case depthFromSurface > 1:
			return BlockTypeDirt
		case y == surfaceHeight-1:
			return BlockTypeGrass
		default:
			return BlockTypeAir
		}
	case BiomeSwamp:
		switch {
		case depthFromSurface > dirtDepth:
			return stone()
		case depthFromSurface > 1:
			return BlockTypeDirt
		case y == surfaceHeight-1:
			if y <= SeaLevel {
				return BlockTypeClay
			}
			return BlockTypeGrass
		default:
			return BlockTypeAir
		}
	default: // Plains, Forest
		switch {
		case depthFromSurface > dirtDepth:
			return stone()
		case depthFromSurface > 1:
			return BlockTypeDirt
		case y == surfaceHeight-1:
			return BlockTypeGrass
		default:
			return BlockTypeAir
		}
	}
}

// positionHash is a seed-keyed hash over a world column, used for
// per-position deterministic chance rolls.
func (g *Generator) positionHash(x, z int) uint32 {
	h := uint32(g.seed)
	h = (h + uint32(x)) * 73856093
	h = (h + uint32(z)) * 19349663
	return h ^ (h >> 16)
}

// positionHash3D is positionHash extended over y.
func (g *Generator) positionHash3D(x, y, z int) uint32 {
	h := uint32(g.seed)
	h = (h + uint32(x)) * 73856093
	h = (h + uint32(y)) * 19349663
	h = (h + uint32(z)) * 83492791
	return h ^ (h >> 16)
}
