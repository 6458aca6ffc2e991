package world

import (
	"crypto/sha256"
	"math"
	"testing"
)

func TestGeneratorImplementsInterface(t *testing.T) {
	var _ TerrainGenerator = NewGenerator(123)
}

// hashChunkBlocks computes a SHA-256 hash over all blocks in a chunk.
func hashChunkBlocks(c *Chunk) [32]byte {
	h := sha256.New()
	buf := make([]byte, 2)
	for y := 0; y < WorldHeight; y++ {
		for lx := 0; lx < ChunkSizeX; lx++ {
			for lz := 0; lz < ChunkSizeZ; lz++ {
				b := c.GetBlock(lx, y, lz)
				buf[0] = byte(b)
				buf[1] = byte(b >> 8)
				h.Write(buf)
			}
		}
	}
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

// TestGeneratorDeterminism verifies the same seed produces identical
// terrain across independent generator instances.
func TestGeneratorDeterminism(t *testing.T) {
	seed := int64(12345)
	coords := [][2]int{{0, 0}, {1, 0}, {-1, -1}, {7, -3}}

	g1 := NewGenerator(seed)
	g2 := NewGenerator(seed)

	for _, cc := range coords {
		h1 := hashChunkBlocks(g1.GenerateChunk(cc[0], cc[1]))
		h2 := hashChunkBlocks(g2.GenerateChunk(cc[0], cc[1]))
		if h1 != h2 {
			t.Errorf("chunk (%d,%d): same seed produced different terrain", cc[0], cc[1])
		}
	}
}

func TestGeneratorSeedsDiffer(t *testing.T) {
	h1 := hashChunkBlocks(NewGenerator(1).GenerateChunk(0, 0))
	h2 := hashChunkBlocks(NewGenerator(2).GenerateChunk(0, 0))
	if h1 == h2 {
		t.Error("different seeds produced identical terrain at chunk (0,0)")
	}
}

func TestGeneratorBedrockFloor(t *testing.T) {
	c := NewGenerator(2147).GenerateChunk(0, 0)
	for lx := 0; lx < ChunkSizeX; lx++ {
		for lz := 0; lz < ChunkSizeZ; lz++ {
			if b := c.GetBlock(lx, 0, lz); b != BlockTypeBedrock {
				t.Errorf("expected bedrock at (%d,0,%d), got %v", lx, lz, b)
			}
		}
	}
}

func TestGeneratorChunkNotUniform(t *testing.T) {
	c := NewGenerator(2147).GenerateChunk(0, 0)

	air, nonAir := 0, 0
	for y := 0; y < WorldHeight; y++ {
		for lx := 0; lx < ChunkSizeX; lx++ {
			for lz := 0; lz < ChunkSizeZ; lz++ {
				if c.GetBlock(lx, y, lz) == BlockTypeAir {
					air++
				} else {
					nonAir++
				}
			}
		}
	}
	if air == 0 {
		t.Error("generated chunk contains no air")
	}
	if nonAir == 0 {
		t.Error("generated chunk contains no terrain")
	}
}

func TestTerrainHeightInRange(t *testing.T) {
	g := NewGenerator(999)
	for x := -128; x <= 128; x += 16 {
		for z := -128; z <= 128; z += 16 {
			h := g.GetTerrainHeight(x, z)
			if h < 1 || h > WorldHeight-20 {
				t.Errorf("height at (%d,%d) out of range: %d", x, z, h)
			}
		}
	}
}

func TestBiomeStable(t *testing.T) {
	g := NewGenerator(2147)
	first := g.GetBiome(8, 8)
	for i := 0; i < 10; i++ {
		if b := g.GetBiome(8, 8); b != first {
			t.Fatalf("biome at (8,8) changed between calls: %v then %v", first, b)
		}
	}
}

func TestFindSpawnPoint(t *testing.T) {
	g := NewGenerator(2147)
	x, y, z := g.FindSpawnPoint()
	if y < 1 || y >= WorldHeight {
		t.Errorf("spawn height out of range: %f", y)
	}
	// Either a real dry column was found or the fixed fallback was used.
	if x == 0.5 && y == 80.0 && z == 0.5 {
		return
	}
	// Spawn points sit at column centers, so a negative x like -0.5 must
	// floor to column -1, not truncate to 0.
	h := g.GetTerrainHeight(int(math.Floor(float64(x))), int(math.Floor(float64(z))))
	if h < SeaLevel {
		t.Errorf("spawn column at (%f,%f) is below sea level: %d", x, z, h)
	}
}

func TestDisableCaves(t *testing.T) {
	seed := int64(4242)

	withCaves := NewGenerator(seed)
	noCaves := NewGenerator(seed)
	noCaves.DisableCaves()

	// With carving off, no column may contain air pockets below its own
	// surface (above sea level, where carving would leave air).
	c := noCaves.GenerateChunk(0, 0)
	for lx := 0; lx < ChunkSizeX; lx++ {
		for lz := 0; lz < ChunkSizeZ; lz++ {
			h := noCaves.GetTerrainHeight(lx, lz)
			biome := noCaves.GetBiome(lx, lz)
			if biome == BiomeMountains || biome == BiomeIsland {
				continue // overhang terrain has legitimate air pockets
			}
			for y := 1; y < h && y < WorldHeight; y++ {
				if y >= SeaLevel && c.GetBlock(lx, y, lz) == BlockTypeAir {
					t.Fatalf("air pocket below surface at (%d,%d,%d) with caves disabled", lx, y, lz)
				}
			}
		}
	}

	// Both variants agree on heights; only the carve pass differs.
	if withCaves.GetTerrainHeight(5, 5) != noCaves.GetTerrainHeight(5, 5) {
		t.Error("cave toggle changed terrain height")
	}
}
