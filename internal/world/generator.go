package world

import "math"

// TerrainGenerator turns a seed and chunk coordinates into chunk content.
// Implementations must be pure: the same seed and coordinates always yield
// identical blocks, so evicted chunks can be regenerated and worker threads
// can each hold their own instance.
type TerrainGenerator interface {
	GenerateChunk(cx, cz int) *Chunk
	GetTerrainHeight(x, z int) int
	GetBiome(x, z int) Biome
	Seed() int64
}

// Generator is the production terrain generator. It is immutable after
// construction; cloning it is just NewGenerator(g.Seed()).
type Generator struct {
	seed  int64
	noise *noiseSet
	caves bool
}

var _ TerrainGenerator = (*Generator)(nil)

// NewGenerator creates a generator for the given world seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:  seed,
		noise: newNoiseSet(seed),
		caves: true,
	}
}

// DisableCaves turns off cave carving. Must be called before the generator
// is handed to workers.
func (g *Generator) DisableCaves() {
	g.caves = false
}

// Seed returns the world seed.
func (g *Generator) Seed() int64 { return g.seed }

// GenerateChunk builds the complete chunk at the given chunk coordinates:
// column fill, water, cave carving, decorations, then a flag rescan. The
// chunk is not installed anywhere; the caller owns it.
func (g *Generator) GenerateChunk(cx, cz int) *Chunk {
	chunk := NewChunk(cx, cz)
	baseX := cx * ChunkSizeX
	baseZ := cz * ChunkSizeZ

	// Biome and height maps are reused by every later pass.
	var biomeMap [ChunkSizeX][ChunkSizeZ]Biome
	var heightMap [ChunkSizeX][ChunkSizeZ]int
	for lx := 0; lx < ChunkSizeX; lx++ {
		for lz := 0; lz < ChunkSizeZ; lz++ {
			biomeMap[lx][lz] = g.GetBiome(baseX+lx, baseZ+lz)
			heightMap[lx][lz] = g.GetTerrainHeight(baseX+lx, baseZ+lz)
		}
	}

	// Terrain fill
	for lx := 0; lx < ChunkSizeX; lx++ {
		for lz := 0; lz < ChunkSizeZ; lz++ {
			worldX := baseX + lx
			worldZ := baseZ + lz
			biome := biomeMap[lx][lz]
			surfaceHeight := heightMap[lx][lz]

			overhangs := biome == BiomeMountains || biome == BiomeIsland
			maxY := surfaceHeight + 5
			if maxY < SeaLevel {
				maxY = SeaLevel
			}
			if overhangs {
				maxY = WorldHeight - 20
			}

			for y := 0; y < maxY; y++ {
				isSolid := y < surfaceHeight
				if overhangs && y >= surfaceHeight-8 {
					if g.get3DDensity(worldX, y, worldZ, biome, surfaceHeight) > 0 {
						isSolid = true
					}
				}

				if isSolid {
					if block := g.getBlockForBiome(biome, y, surfaceHeight, worldX, worldZ); block != BlockTypeAir {
						chunk.SetBlock(lx, y, lz, block)
					}
				} else if y >= surfaceHeight && y < SeaLevel {
					if biome == BiomeTundra && y == SeaLevel-1 {
						chunk.SetBlock(lx, y, lz, BlockTypeIce)
					} else {
						chunk.SetBlock(lx, y, lz, BlockTypeWater)
					}
				}
			}
		}
	}

	// Cave carving. Bedrock and water are never carved; carved voxels
	// below sea level flood instead of opening to air.
	if g.caves {
		for lx := 0; lx < ChunkSizeX; lx++ {
			for lz := 0; lz < ChunkSizeZ; lz++ {
				worldX := baseX + lx
				worldZ := baseZ + lz
				height := heightMap[lx][lz]

				top := height
				if top > WorldHeight-1 {
					top = WorldHeight - 1
				}
				for y := 1; y < top; y++ {
					if !g.isCave(worldX, y, worldZ, height) {
						continue
					}
					current := chunk.GetBlock(lx, y, lz)
					if current == BlockTypeWater || current == BlockTypeBedrock || current == BlockTypeAir {
						continue
					}
					if y < SeaLevel {
						chunk.SetBlock(lx, y, lz, BlockTypeWater)
					} else {
						chunk.SetBlock(lx, y, lz, BlockTypeAir)
					}
				}
			}
		}
	}

	g.generateDecorations(chunk, cx, cz, &biomeMap, &heightMap)

	chunk.CheckFlags()
	return chunk
}

// decorationMargin keeps tree crowns inside chunk bounds so decoration
// never needs to write into a neighboring, possibly absent, chunk.
const decorationMargin = 4

func (g *Generator) generateDecorations(chunk *Chunk, cx, cz int, biomeMap *[ChunkSizeX][ChunkSizeZ]Biome, heightMap *[ChunkSizeX][ChunkSizeZ]int) {
	baseX := cx * ChunkSizeX
	baseZ := cz * ChunkSizeZ

	for lx := decorationMargin; lx < ChunkSizeX-decorationMargin; lx++ {
		for lz := decorationMargin; lz < ChunkSizeZ-decorationMargin; lz++ {
			worldX := baseX + lx
			worldZ := baseZ + lz
			biome := biomeMap[lx][lz]
			height := heightMap[lx][lz]

			if height <= SeaLevel {
				continue
			}

			if biome.HasTrees() {
				treeNoise := g.noise.trees.Noise2D(float64(worldX)*0.3, float64(worldZ)*0.3)
				if treeNoise > biome.TreeDensity() {
					hash := g.positionHash(worldX, worldZ)
					isLarge := hash%100 < 25
					if g.canPlaceTree(chunk, lx, height, lz, isLarge) {
						g.placeTree(chunk, lx, height, lz, biome, isLarge)
					}
				}
			}

			if biome == BiomeDesert {
				cactusNoise := g.noise.trees.Noise2D(float64(worldX)*0.5+100.0, float64(worldZ)*0.5)
				if cactusNoise > 0.8 {
					if chunk.GetBlock(lx, height-1, lz) == BlockTypeSand {
						g.placeCactus(chunk, lx, height, lz, worldX, worldZ)
					}
				} else if cactusNoise > 0.7 {
					chunk.SetBlock(lx, height, lz, BlockTypeDeadBush)
				}
			}
		}
	}
}

func isValidTreeGround(block BlockType) bool {
	return block == BlockTypeGrass || block == BlockTypeDirt
}

// rejects placement next to terrain a tree would look wrong on
func isHostileTreeNeighbor(block BlockType) bool {
	switch block {
	case BlockTypeStone, BlockTypeGravel, BlockTypeSand, BlockTypeWater, BlockTypeIce:
		return true
	default:
		return false
	}
}

// canPlaceTree validates spacing against existing trunks and checks the
// ground under (and around) the trunk footprint.
func (g *Generator) canPlaceTree(chunk *Chunk, lx, y, lz int, isLarge bool) bool {
	minDistance := 3
	if isLarge {
		minDistance = 5
	}
	for dx := -minDistance; dx <= minDistance; dx++ {
		for dz := -minDistance; dz <= minDistance; dz++ {
			checkX := lx + dx
			checkZ := lz + dz
			if checkX < 0 || checkX >= ChunkSizeX || checkZ < 0 || checkZ >= ChunkSizeZ {
				continue
			}
			for dy := -1; dy <= 8; dy++ {
				checkY := y + dy
				if checkY < 0 || checkY >= WorldHeight {
					continue
				}
				if chunk.GetBlock(checkX, checkY, checkZ) == BlockTypeWood {
					return false
				}
			}
		}
	}

	footprint := 0
	if isLarge {
		footprint = 1
	}
	for dx := 0; dx <= footprint; dx++ {
		for dz := 0; dz <= footprint; dz++ {
			checkX := lx + dx
			checkZ := lz + dz
			if checkX < 0 || checkX >= ChunkSizeX || checkZ < 0 || checkZ >= ChunkSizeZ {
				return false
			}
			if !isValidTreeGround(chunk.GetBlock(checkX, y-1, checkZ)) {
				return false
			}
			for ndx := -1; ndx <= 1; ndx++ {
				for ndz := -1; ndz <= 1; ndz++ {
					nx := checkX + ndx
					nz := checkZ + ndz
					if nx >= 0 && nx < ChunkSizeX && nz >= 0 && nz < ChunkSizeZ {
						if isHostileTreeNeighbor(chunk.GetBlock(nx, y-1, nz)) {
							return false
						}
					}
				}
			}
		}
	}
	return true
}

// placeTree stamps a trunk and spherical crown. Large trees get a 2x2
// trunk and a wider crown.
func (g *Generator) placeTree(chunk *Chunk, lx, y, lz int, biome Biome, isLarge bool) {
	baseTrunkHeight := 5
	switch biome {
	case BiomeForest:
		baseTrunkHeight = 6
	case BiomeSwamp:
		baseTrunkHeight = 7
	case BiomeTundra:
		baseTrunkHeight = 4
	}
	trunkHeight := baseTrunkHeight
	if isLarge {
		trunkHeight += 2
	}

	if isLarge {
		for ty := 0; ty < trunkHeight; ty++ {
			for dx := 0; dx <= 1; dx++ {
				for dz := 0; dz <= 1; dz++ {
					tx := lx + dx
					tz := lz + dz
					if tx >= 0 && tx < ChunkSizeX && tz >= 0 && tz < ChunkSizeZ {
						chunk.SetBlock(tx, y+ty, tz, BlockTypeWood)
					}
				}
			}
		}

		crownCenterY := y + trunkHeight
		crownRadius := 4.0
		if biome == BiomeTundra {
			crownRadius = 3.0
		}
		crownCenterX := float64(lx) + 0.5
		crownCenterZ := float64(lz) + 0.5

		for dx := -5; dx <= 5; dx++ {
			for dy := -2; dy <= 5; dy++ {
				for dz := -5; dz <= 5; dz++ {
					nlx := lx + dx
					nly := crownCenterY + dy
					nlz := lz + dz
					if nlx < 0 || nlx >= ChunkSizeX || nlz < 0 || nlz >= ChunkSizeZ {
						continue
					}
					fx := float64(nlx) - crownCenterX
					fz := float64(nlz) - crownCenterZ
					dist := math.Sqrt(fx*fx + math.Pow(float64(dy)-1.0, 2) + fz*fz)
					if dist <= crownRadius && chunk.GetBlock(nlx, nly, nlz) == BlockTypeAir {
						chunk.SetBlock(nlx, nly, nlz, BlockTypeLeaves)
					}
				}
			}
		}
		return
	}

	for ty := 0; ty < trunkHeight; ty++ {
		chunk.SetBlock(lx, y+ty, lz, BlockTypeWood)
	}

	crownCenterY := y + trunkHeight
	crownRadius := 2.5
	if biome == BiomeTundra {
		crownRadius = 2.0
	}
	for dx := -3; dx <= 3; dx++ {
		for dy := -1; dy <= 3; dy++ {
			for dz := -3; dz <= 3; dz++ {
				if dx == 0 && dz == 0 && dy < 0 {
					continue
				}
				nlx := lx + dx
				nly := crownCenterY + dy
				nlz := lz + dz
				if nlx < 0 || nlx >= ChunkSizeX || nlz < 0 || nlz >= ChunkSizeZ {
					continue
				}
				dist := math.Sqrt(float64(dx*dx + (dy-1)*(dy-1) + dz*dz))
				if dist <= crownRadius && chunk.GetBlock(nlx, nly, nlz) == BlockTypeAir {
					chunk.SetBlock(nlx, nly, nlz, BlockTypeLeaves)
				}
			}
		}
	}
}

func (g *Generator) placeCactus(chunk *Chunk, lx, y, lz, worldX, worldZ int) {
	height := 2 + int(g.positionHash(worldX, worldZ)%2)
	for ty := 0; ty < height; ty++ {
		if y+ty < WorldHeight {
			chunk.SetBlock(lx, y+ty, lz, BlockTypeCactus)
		}
	}
}

// FindSpawnPoint searches outward from the origin for a dry column and
// returns a position just above its surface.
func (g *Generator) FindSpawnPoint() (float32, float32, float32) {
	for radius := 0; radius < 50; radius++ {
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				height := g.GetTerrainHeight(dx, dz)
				biome := g.GetBiome(dx, dz)
				if height >= SeaLevel && biome != BiomeOcean && biome != BiomeRiver && biome != BiomeLake {
					return float32(dx) + 0.5, float32(height + 1), float32(dz) + 0.5
				}
			}
		}
	}
	return 0.5, 80.0, 0.5
}

// CaveEntrance is a surface opening into a cave system.
type CaveEntrance struct {
	X, Y, Z int
}

// FindCaveEntrances scans a square around a center column and returns the
// cave mouths inside it.
func (g *Generator) FindCaveEntrances(centerX, centerZ, radius int) []CaveEntrance {
	var found []CaveEntrance
	for x := centerX - radius; x <= centerX+radius; x++ {
		for z := centerZ - radius; z <= centerZ+radius; z++ {
			height := g.GetTerrainHeight(x, z)
			if g.isCaveEntrance(x, z, height) {
				found = append(found, CaveEntrance{X: x, Y: height - 1, Z: z})
			}
		}
	}
	return found
}
