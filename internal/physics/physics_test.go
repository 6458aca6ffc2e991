package physics

import (
	"testing"

	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func flatFloorStore() *world.ChunkStore {
	store := world.NewChunkStore()
	store.AddChunk(world.ChunkCoord{X: 0, Z: 0}, world.NewChunk(0, 0))
	for x := 0; x < world.ChunkSizeX; x++ {
		for z := 0; z < world.ChunkSizeZ; z++ {
			store.SetBlock(x, 10, z, world.BlockTypeStone)
		}
	}
	return store
}

func TestCollidesWithFloor(t *testing.T) {
	store := flatFloorStore()

	// Feet inside the floor layer.
	if !Collides(mgl32.Vec3{8, 10.5, 8}, 1.8, store) {
		t.Error("expected collision with floor")
	}
	// Standing on top of it.
	if Collides(mgl32.Vec3{8, 11.01, 8}, 1.8, store) {
		t.Error("expected no collision just above floor")
	}
}

func TestCollidesWaterIsPassable(t *testing.T) {
	store := world.NewChunkStore()
	store.AddChunk(world.ChunkCoord{X: 0, Z: 0}, world.NewChunk(0, 0))
	store.SetBlock(8, 10, 8, world.BlockTypeWater)

	if Collides(mgl32.Vec3{8.5, 10, 8.5}, 1.8, store) {
		t.Error("water must not collide")
	}
}

func TestCollidesLateralOverlap(t *testing.T) {
	store := world.NewChunkStore()
	store.AddChunk(world.ChunkCoord{X: 0, Z: 0}, world.NewChunk(0, 0))
	store.SetBlock(8, 10, 8, world.BlockTypeStone)

	// Box edge reaches into the cell [8,9).
	if !Collides(mgl32.Vec3{7.8, 10, 8.5}, 1.8, store) {
		t.Error("expected lateral collision")
	}
	// Clear of the cell.
	if Collides(mgl32.Vec3{7.0, 10, 8.5}, 1.8, store) {
		t.Error("expected no collision with a gap")
	}
}

func TestFindGroundLevel(t *testing.T) {
	store := flatFloorStore()

	ground := FindGroundLevel(8, 8, mgl32.Vec3{8, 30, 8}, store)
	if ground != 11 {
		t.Errorf("expected ground at 11 (top of layer 10), got %f", ground)
	}
}

func TestFindGroundLevelNoGround(t *testing.T) {
	store := world.NewChunkStore()
	store.AddChunk(world.ChunkCoord{X: 0, Z: 0}, world.NewChunk(0, 0))

	ground := FindGroundLevel(8, 8, mgl32.Vec3{8, 30, 8}, store)
	if ground != 1.0 {
		t.Errorf("expected fallback ground 1.0, got %f", ground)
	}
}
