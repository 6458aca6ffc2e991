package physics

import (
	"math"

	"voxelcore/internal/profiling"
	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0
)

// RaycastResult stores the outcome of a raycast through the voxel grid.
// AdjacentPosition is the last empty cell before the hit, which is where a
// placed block would go.
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	Distance         float32
	Hit              bool
}

// Raycast marches a ray through the store and returns the first solid cell
// it enters. Water and other non-colliding blocks are passed through.
func Raycast(start, direction mgl32.Vec3, minDist, maxDist float32, store *world.ChunkStore) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	const stepSize = float32(0.02)
	steps := int(maxDist / stepSize)

	var lastEmptyPos [3]int
	result := RaycastResult{Hit: false}

	for i := 0; i <= steps; i++ {
		dist := float32(i) * stepSize
		if dist < minDist {
			continue
		}

		pos := start.Add(direction.Mul(dist))
		blockPos := [3]int{
			int(math.Floor(float64(pos.X()))),
			int(math.Floor(float64(pos.Y()))),
			int(math.Floor(float64(pos.Z()))),
		}

		if store.GetBlock(blockPos[0], blockPos[1], blockPos[2]).IsSolid() {
			result.HitPosition = blockPos
			result.AdjacentPosition = lastEmptyPos
			result.Distance = dist
			result.Hit = true
			return result
		}

		lastEmptyPos = blockPos
	}

	return result
}
