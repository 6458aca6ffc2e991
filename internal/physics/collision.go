package physics

import (
	"math"

	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Player collision half-width. Blocks occupy the unit cell [x,x+1).
const playerHalfWidth = 0.3

// Collides reports whether a player-sized box at pos (feet position)
// overlaps any solid block.
func Collides(pos mgl32.Vec3, playerHeight float32, store *world.ChunkStore) bool {
	minX := int(math.Floor(float64(pos.X() - playerHalfWidth)))
	maxX := int(math.Floor(float64(pos.X() + playerHalfWidth)))
	minY := int(math.Floor(float64(pos.Y())))
	maxY := int(math.Floor(float64(pos.Y() + playerHeight)))
	minZ := int(math.Floor(float64(pos.Z() - playerHalfWidth)))
	maxZ := int(math.Floor(float64(pos.Z() + playerHalfWidth)))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if !store.GetBlock(x, y, z).IsSolid() {
					continue
				}
				if pos.X()-playerHalfWidth < float32(x)+1 && pos.X()+playerHalfWidth > float32(x) &&
					pos.Y() < float32(y)+1 && pos.Y()+playerHeight > float32(y) &&
					pos.Z()-playerHalfWidth < float32(z)+1 && pos.Z()+playerHalfWidth > float32(z) {
					return true
				}
			}
		}
	}
	return false
}

// FindGroundLevel returns the Y of the highest solid block top under the
// player's footprint, searching down from the player's feet.
func FindGroundLevel(x, z float32, playerPos mgl32.Vec3, store *world.ChunkStore) float32 {
	minX := int(math.Floor(float64(x - playerHalfWidth)))
	maxX := int(math.Floor(float64(x + playerHalfWidth)))
	minZ := int(math.Floor(float64(z - playerHalfWidth)))
	maxZ := int(math.Floor(float64(z + playerHalfWidth)))

	startY := int(math.Floor(float64(playerPos.Y())))
	if startY >= world.WorldHeight {
		startY = world.WorldHeight - 1
	}

	found := false
	maxGroundY := float32(0)
	for bx := minX; bx <= maxX; bx++ {
		for bz := minZ; bz <= maxZ; bz++ {
			for by := startY; by >= 0; by-- {
				if store.GetBlock(bx, by, bz).IsSolid() {
					groundY := float32(by) + 1 // top of the cell
					if !found || groundY > maxGroundY {
						maxGroundY = groundY
						found = true
					}
					break
				}
			}
		}
	}
	if !found {
		return 1.0
	}
	return maxGroundY
}
