package physics_test

import (
	"testing"

	"voxelcore/internal/physics"
	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func storeWithBlocks(blocks map[[3]int]world.BlockType) *world.ChunkStore {
	store := world.NewChunkStore()
	for cx := -1; cx <= 1; cx++ {
		for cz := -1; cz <= 1; cz++ {
			store.AddChunk(world.ChunkCoord{X: cx, Z: cz}, world.NewChunk(cx, cz))
		}
	}
	for pos, b := range blocks {
		store.SetBlock(pos[0], pos[1], pos[2], b)
	}
	return store
}

func TestRaycastHitsBlock(t *testing.T) {
	store := storeWithBlocks(map[[3]int]world.BlockType{
		{5, 0, 0}: world.BlockTypeStone,
	})

	start := mgl32.Vec3{0.5, 0.5, 0.5}
	dir := mgl32.Vec3{1, 0, 0}

	result := physics.Raycast(start, dir, 0.1, 10.0, store)

	if !result.Hit {
		t.Fatal("expected hit, got miss")
	}
	if result.HitPosition != [3]int{5, 0, 0} {
		t.Errorf("expected hit at {5,0,0}, got %v", result.HitPosition)
	}
	if result.AdjacentPosition != [3]int{4, 0, 0} {
		t.Errorf("expected adjacent at {4,0,0}, got %v", result.AdjacentPosition)
	}
	// Ray starts at x=0.5, the cell [5,6) begins at x=5.0.
	if result.Distance < 4.49 || result.Distance > 4.52 {
		t.Errorf("expected distance ~4.5, got %f", result.Distance)
	}
}

func TestRaycastMaxDistance(t *testing.T) {
	store := storeWithBlocks(map[[3]int]world.BlockType{
		{5, 0, 0}: world.BlockTypeStone,
	})

	result := physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 0.1, 4.0, store)
	if result.Hit {
		t.Errorf("expected miss past max distance, got hit at %v", result.HitPosition)
	}
}

func TestRaycastWrongDirection(t *testing.T) {
	store := storeWithBlocks(map[[3]int]world.BlockType{
		{5, 0, 0}: world.BlockTypeStone,
	})

	result := physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0, 1, 0}, 0.1, 10.0, store)
	if result.Hit {
		t.Error("expected miss, got hit")
	}
}

func TestRaycastPassesThroughWater(t *testing.T) {
	store := storeWithBlocks(map[[3]int]world.BlockType{
		{3, 0, 0}: world.BlockTypeWater,
		{6, 0, 0}: world.BlockTypeStone,
	})

	result := physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 0.1, 10.0, store)
	if !result.Hit {
		t.Fatal("expected hit on stone behind water")
	}
	if result.HitPosition != [3]int{6, 0, 0} {
		t.Errorf("expected hit at {6,0,0}, got %v", result.HitPosition)
	}
}

func BenchmarkRaycast(b *testing.B) {
	store := world.NewChunkStore()
	store.AddChunk(world.ChunkCoord{X: 0, Z: 0}, world.NewChunk(0, 0))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			store.SetBlock(x, y, 5, world.BlockTypeGrass)
		}
	}
	start := mgl32.Vec3{0, 8, 0}
	dir := mgl32.Vec3{0, 0, 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = physics.Raycast(start, dir, 0.1, 10.0, store)
	}
}
