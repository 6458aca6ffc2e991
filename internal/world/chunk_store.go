package world

import (
	"math"
	"sync"
)

// ChunkStore is the authoritative mapping from chunk coordinates to chunk
// data. It is read by many mesh workers concurrently and written by the
// owning thread; locking is at store granularity so a mesh build can take a
// consistent multi-chunk view without per-chunk lock ordering.
type ChunkStore struct {
	chunks   map[ChunkCoord]*Chunk
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add/remove
}

// NewChunkStore creates an empty chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// GetChunk returns the chunk at the given chunk coordinates, or nil if it
// is not loaded.
func (cs *ChunkStore) GetChunk(cx, cz int) *Chunk {
	cs.mu.RLock()
	chunk := cs.chunks[ChunkCoord{X: cx, Z: cz}]
	cs.mu.RUnlock()
	return chunk
}

// HasChunk checks if a chunk is loaded.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// AddChunk installs a fully generated chunk. Chunks enter the store only
// through this path, never half-built.
func (cs *ChunkStore) AddChunk(coord ChunkCoord, chunk *Chunk) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[coord]; !ok {
		cs.chunks[coord] = chunk
		cs.modCount++
	}
}

// RemoveChunk drops a chunk from the store. Returns true if it was present.
func (cs *ChunkStore) RemoveChunk(coord ChunkCoord) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[coord]; !ok {
		return false
	}
	delete(cs.chunks, coord)
	cs.modCount++
	return true
}

// GetBlock returns the block at world coordinates. Unloaded chunks and
// out-of-range y read as air.
func (cs *ChunkStore) GetBlock(x, y, z int) BlockType {
	if y < 0 || y >= WorldHeight {
		return BlockTypeAir
	}
	chunk := cs.GetChunk(floorDiv(x, ChunkSizeX), floorDiv(z, ChunkSizeZ))
	if chunk == nil {
		return BlockTypeAir
	}
	return chunk.GetBlock(mod(x, ChunkSizeX), y, mod(z, ChunkSizeZ))
}

// IsAir checks if the block at world coordinates is air.
func (cs *ChunkStore) IsAir(x, y, z int) bool {
	return cs.GetBlock(x, y, z) == BlockTypeAir
}

// SetBlock sets a block at world coordinates and propagates subchunk
// dirtiness across every touched boundary plane. A write into a missing
// chunk is a silent no-op; the chunk may simply be unloaded.
func (cs *ChunkStore) SetBlock(x, y, z int, block BlockType) {
	cs.setBlock(x, y, z, block, false)
}

// SetBlockPlayer is SetBlock plus player-edit provenance, so persistence
// knows the chunk can no longer be regenerated from the seed alone.
func (cs *ChunkStore) SetBlockPlayer(x, y, z int, block BlockType) {
	cs.setBlock(x, y, z, block, true)
}

func (cs *ChunkStore) setBlock(x, y, z int, block BlockType, player bool) {
	if y < 0 || y >= WorldHeight {
		return
	}
	cx := floorDiv(x, ChunkSizeX)
	cz := floorDiv(z, ChunkSizeZ)

	// Block mutation holds the write lock for its whole duration, so a
	// mesh build inside ReadLocked never observes a half-applied edit.
	cs.mu.Lock()
	defer cs.mu.Unlock()

	chunk := cs.chunks[ChunkCoord{X: cx, Z: cz}]
	if chunk == nil {
		return
	}

	localX := mod(x, ChunkSizeX)
	localZ := mod(z, ChunkSizeZ)
	chunk.SetBlock(localX, y, localZ, block)
	if player {
		chunk.MarkPlayerModified()
	}

	// Neighbor meshes sample this block across the boundary; mark every
	// adjacent subchunk whose geometry can change.
	sy := y / SubChunkHeight
	localY := y % SubChunkHeight

	if localX == 0 {
		cs.markSubChunkDirtyLocked(cx-1, cz, sy)
	} else if localX == ChunkSizeX-1 {
		cs.markSubChunkDirtyLocked(cx+1, cz, sy)
	}
	if localZ == 0 {
		cs.markSubChunkDirtyLocked(cx, cz-1, sy)
	} else if localZ == ChunkSizeZ-1 {
		cs.markSubChunkDirtyLocked(cx, cz+1, sy)
	}
	if localY == 0 {
		cs.markSubChunkDirtyLocked(cx, cz, sy-1)
	} else if localY == SubChunkHeight-1 {
		cs.markSubChunkDirtyLocked(cx, cz, sy+1)
	}
}

// MarkSubChunkDirty flags a subchunk's mesh as stale. Missing chunks and
// out-of-range indices are silent no-ops.
func (cs *ChunkStore) MarkSubChunkDirty(cx, cz, sy int) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.markSubChunkDirtyLocked(cx, cz, sy)
}

// markSubChunkDirtyLocked requires cs.mu to be held.
func (cs *ChunkStore) markSubChunkDirtyLocked(cx, cz, sy int) {
	chunk := cs.chunks[ChunkCoord{X: cx, Z: cz}]
	if chunk == nil {
		return
	}
	if sc := chunk.SubChunk(sy); sc != nil {
		sc.MarkMeshDirty()
	}
}

// ChunkCount returns the number of loaded chunks.
func (cs *ChunkStore) ChunkCount() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// ModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) ModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// AllCoords returns the coordinates of every loaded chunk.
func (cs *ChunkStore) AllCoords() []ChunkCoord {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	coords := make([]ChunkCoord, 0, len(cs.chunks))
	for coord := range cs.chunks {
		coords = append(coords, coord)
	}
	return coords
}

// EvictFarChunks removes chunks beyond the given Chebyshev distance from
// the center chunk. Evicted chunks regenerate deterministically from the
// seed if revisited. Returns the number removed.
func (cs *ChunkStore) EvictFarChunks(centerCX, centerCZ, dist int) int {
	removed := 0
	cs.mu.Lock()
	for coord := range cs.chunks {
		dx := coord.X - centerCX
		dz := coord.Z - centerCZ
		if dx < 0 {
			dx = -dx
		}
		if dz < 0 {
			dz = -dz
		}
		if dx > dist || dz > dist {
			delete(cs.chunks, coord)
			cs.modCount++
			removed++
		}
	}
	cs.mu.Unlock()
	return removed
}

// IsSubChunkOccluded reports whether a subchunk is fully enclosed by opaque
// volume: itself and all 6 adjacent subchunks fully opaque. Conservative
// but cheap; unloaded neighbors count as open.
func (cs *ChunkStore) IsSubChunkOccluded(cx, cz, sy int) bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if sy < 0 || sy >= NumSubChunks {
		return false
	}
	chunk := cs.chunks[ChunkCoord{X: cx, Z: cz}]
	if chunk == nil {
		return false
	}
	if !chunk.subchunks[sy].IsFullyOpaque() {
		return false
	}
	// World-height borders are never occluded.
	if sy == 0 || sy == NumSubChunks-1 {
		return false
	}
	if !chunk.subchunks[sy-1].IsFullyOpaque() || !chunk.subchunks[sy+1].IsFullyOpaque() {
		return false
	}

	neighbors := [4]ChunkCoord{
		{X: cx - 1, Z: cz}, {X: cx + 1, Z: cz},
		{X: cx, Z: cz - 1}, {X: cx, Z: cz + 1},
	}
	for _, nc := range neighbors {
		nchunk := cs.chunks[nc]
		if nchunk == nil || !nchunk.subchunks[sy].IsFullyOpaque() {
			return false
		}
	}
	return true
}

// EnsureGenerated synchronously generates and installs the chunk if it is
// not loaded. Used for the initial spawn area before the async pipeline
// has produced anything; steady-state loading goes through the ChunkLoader.
func (cs *ChunkStore) EnsureGenerated(cx, cz int, gen TerrainGenerator) *Chunk {
	coord := ChunkCoord{X: cx, Z: cz}
	if c := cs.GetChunk(cx, cz); c != nil {
		return c
	}
	chunk := gen.GenerateChunk(cx, cz)
	cs.AddChunk(coord, chunk)
	// A concurrent generator may have won the insert.
	return cs.GetChunk(cx, cz)
}

// UpdateAround drops chunks beyond the unload distance from a world-space
// position. Returns the number removed.
func (cs *ChunkStore) UpdateAround(x, z float32, dist int) int {
	cx := floorDiv(int(math.Floor(float64(x))), ChunkSizeX)
	cz := floorDiv(int(math.Floor(float64(z))), ChunkSizeZ)
	return cs.EvictFarChunks(cx, cz, dist)
}

// ReadLocked runs fn while holding the store's read lock, giving mesh
// builds a consistent multi-chunk view for their full duration. fn reads
// chunks through get; calling the store's own locking methods from inside
// fn would re-enter the mutex and deadlock once a writer queues up.
func (cs *ChunkStore) ReadLocked(fn func(get func(cx, cz int) *Chunk)) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	fn(func(cx, cz int) *Chunk {
		return cs.chunks[ChunkCoord{X: cx, Z: cz}]
	})
}

// floorDiv divides rounding toward negative infinity so negative world
// coordinates map to the correct chunk.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// mod returns the non-negative remainder of a/b.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
