package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Chunk dimensions
	ChunkSizeX  = 16
	ChunkSizeZ  = 16
	WorldHeight = 256

	// SubChunk dimensions
	SubChunkHeight = 16
	NumSubChunks   = WorldHeight / SubChunkHeight
	SubChunkVolume = ChunkSizeX * SubChunkHeight * ChunkSizeZ

	SeaLevel = 64

	// Chunks farther than this (in chunks, per axis) from the player are evicted.
	ChunkUnloadDistance = 16
)

// ChunkCoord identifies a chunk column by its chunk-space XZ coordinates.
type ChunkCoord struct {
	X, Z int
}

// AABB is a world-space axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// SubChunk is a 16x16x16 block volume, the unit of mesh rebuilding and
// dirty tracking.
type SubChunk struct {
	blocks [SubChunkVolume]BlockType

	isEmpty       bool
	isFullyOpaque bool
	meshDirty     bool

	aabb AABB

	// Index counts of the last built mesh, kept for the renderer's
	// draw/culling decisions.
	NumIndices      uint32
	NumWaterIndices uint32
}

// NewSubChunk creates an all-air subchunk at the given chunk column and
// subchunk index.
func NewSubChunk(chunkX, subY, chunkZ int) *SubChunk {
	wx := float32(chunkX * ChunkSizeX)
	wy := float32(subY * SubChunkHeight)
	wz := float32(chunkZ * ChunkSizeZ)
	return &SubChunk{
		isEmpty:   true,
		meshDirty: true,
		aabb: AABB{
			Min: mgl32.Vec3{wx, wy, wz},
			Max: mgl32.Vec3{wx + ChunkSizeX, wy + SubChunkHeight, wz + ChunkSizeZ},
		},
	}
}

func subChunkIndex(x, y, z int) int {
	return x*SubChunkHeight*ChunkSizeZ + y*ChunkSizeZ + z
}

// GetBlock returns the block at local coordinates, or air out of range.
func (sc *SubChunk) GetBlock(x, y, z int) BlockType {
	if x < 0 || x >= ChunkSizeX || y < 0 || y >= SubChunkHeight || z < 0 || z >= ChunkSizeZ {
		return BlockTypeAir
	}
	return sc.blocks[subChunkIndex(x, y, z)]
}

// SetBlock sets the block at local coordinates, marking the mesh stale.
// Emptiness only degrades here; a full recheck needs CheckEmpty.
func (sc *SubChunk) SetBlock(x, y, z int, block BlockType) {
	if x < 0 || x >= ChunkSizeX || y < 0 || y >= SubChunkHeight || z < 0 || z >= ChunkSizeZ {
		return
	}
	sc.blocks[subChunkIndex(x, y, z)] = block
	sc.meshDirty = true
	sc.isEmpty = block == BlockTypeAir && sc.isEmpty
}

// CheckEmpty recomputes the is-empty flag with a full scan.
func (sc *SubChunk) CheckEmpty() {
	for i := range sc.blocks {
		if sc.blocks[i] != BlockTypeAir {
			sc.isEmpty = false
			return
		}
	}
	sc.isEmpty = true
}

// CheckFullyOpaque recomputes the fully-opaque flag with a full scan.
// A fully opaque subchunk can occlude its neighbors wholesale.
func (sc *SubChunk) CheckFullyOpaque() {
	for i := range sc.blocks {
		if !sc.blocks[i].IsSolidOpaque() {
			sc.isFullyOpaque = false
			return
		}
	}
	sc.isFullyOpaque = true
}

// IsEmpty reports whether the subchunk holds no non-air blocks.
func (sc *SubChunk) IsEmpty() bool { return sc.isEmpty }

// IsFullyOpaque reports whether every block is solid and non-transparent.
func (sc *SubChunk) IsFullyOpaque() bool { return sc.isFullyOpaque }

// IsMeshDirty reports whether cached geometry is stale.
func (sc *SubChunk) IsMeshDirty() bool { return sc.meshDirty }

// MarkMeshDirty flags cached geometry as stale.
func (sc *SubChunk) MarkMeshDirty() { sc.meshDirty = true }

// ClearMeshDirty marks the geometry as up to date. Callers clear only after
// a mesh build has been successfully requested.
func (sc *SubChunk) ClearMeshDirty() { sc.meshDirty = false }

// AABB returns the world-space bounds of the subchunk.
func (sc *SubChunk) AABB() AABB { return sc.aabb }

// Chunk is a full-height column of subchunks identified by chunk XZ coords.
type Chunk struct {
	X, Z      int
	subchunks [NumSubChunks]*SubChunk

	playerModified bool
}

// NewChunk creates an all-air chunk column.
func NewChunk(x, z int) *Chunk {
	c := &Chunk{X: x, Z: z}
	for sy := 0; sy < NumSubChunks; sy++ {
		c.subchunks[sy] = NewSubChunk(x, sy, z)
	}
	return c
}

// SubChunk returns the subchunk at the given vertical index, or nil out of
// range.
func (c *Chunk) SubChunk(sy int) *SubChunk {
	if sy < 0 || sy >= NumSubChunks {
		return nil
	}
	return c.subchunks[sy]
}

// GetBlock returns the block at chunk-local x/z and world y.
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if y < 0 || y >= WorldHeight {
		return BlockTypeAir
	}
	return c.subchunks[y/SubChunkHeight].GetBlock(x, y%SubChunkHeight, z)
}

// SetBlock sets the block at chunk-local x/z and world y.
func (c *Chunk) SetBlock(x, y, z int, block BlockType) {
	if y < 0 || y >= WorldHeight {
		return
	}
	c.subchunks[y/SubChunkHeight].SetBlock(x, y%SubChunkHeight, z, block)
}

// PlayerModified reports whether the chunk carries player edits and must be
// persisted rather than regenerated.
func (c *Chunk) PlayerModified() bool { return c.playerModified }

// MarkPlayerModified records that the chunk holds player edits.
func (c *Chunk) MarkPlayerModified() { c.playerModified = true }

// CheckFlags rescans every subchunk's derived flags. Called once after
// generation completes.
func (c *Chunk) CheckFlags() {
	for _, sc := range c.subchunks {
		sc.CheckEmpty()
		sc.CheckFullyOpaque()
	}
}
