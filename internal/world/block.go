package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
	BlockTypeSand
	BlockTypeWater
	BlockTypeWood
	BlockTypeLeaves
	BlockTypeBedrock
	BlockTypeSnow
	BlockTypeGravel
	BlockTypeClay
	BlockTypeIce
	BlockTypeCactus
	BlockTypeDeadBush
	BlockTypeWoodStairs
)

// Texture atlas slots.
const (
	TexGrassTop = iota
	TexGrassSide
	TexDirt
	TexStone
	TexSand
	TexWater
	TexWoodSide
	TexWoodTop
	TexLeaves
	TexBedrock
	TexSnow
	TexGravel
	TexClay
	TexIce
	TexCactus
	TexDeadBush
)

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceWest   BlockFace = iota // -X
	FaceEast                    // +X
	FaceBottom                  // -Y
	FaceTop                     // +Y
	FaceSouth                   // -Z
	FaceNorth                   // +Z
)

// IsSolid reports whether the block participates in collision.
func (b BlockType) IsSolid() bool {
	switch b {
	case BlockTypeAir, BlockTypeWater, BlockTypeDeadBush:
		return false
	default:
		return true
	}
}

// IsTransparent reports whether light/geometry can be seen through the block.
func (b BlockType) IsTransparent() bool {
	switch b {
	case BlockTypeAir, BlockTypeWater, BlockTypeLeaves, BlockTypeIce, BlockTypeDeadBush:
		return true
	default:
		return false
	}
}

// IsSolidOpaque reports whether the block fully hides anything behind it.
func (b BlockType) IsSolidOpaque() bool {
	return b != BlockTypeAir && !b.IsTransparent()
}

// Mergeable reports whether faces of this block may be greedy-merged with
// coplanar neighbors. Blocks with partial-height geometry opt out and are
// meshed face-by-face.
func (b BlockType) Mergeable() bool {
	return b != BlockTypeWoodStairs
}

// ShouldRenderFaceAgainst decides face visibility given the neighbor on the
// far side of the face. The rule is intentionally asymmetric for water:
// solid faces render against water so submerged terrain stays visible, but
// water never renders a face against a solid.
func (b BlockType) ShouldRenderFaceAgainst(neighbor BlockType) bool {
	if neighbor == BlockTypeAir {
		return true
	}
	if b == BlockTypeWater {
		return false
	}
	if neighbor == BlockTypeWater {
		return true
	}
	if b == BlockTypeLeaves && neighbor == BlockTypeLeaves {
		return true
	}
	return neighbor.IsTransparent()
}

// Color returns the base tint of the block.
func (b BlockType) Color() mgl32.Vec3 {
	switch b {
	case BlockTypeGrass:
		return mgl32.Vec3{0.45, 0.32, 0.22}
	case BlockTypeDirt:
		return mgl32.Vec3{0.52, 0.37, 0.26}
	case BlockTypeStone:
		return mgl32.Vec3{0.55, 0.55, 0.55}
	case BlockTypeSand:
		return mgl32.Vec3{0.89, 0.83, 0.61}
	case BlockTypeWater:
		return mgl32.Vec3{0.25, 0.46, 0.82}
	case BlockTypeWood, BlockTypeWoodStairs:
		return mgl32.Vec3{0.6, 0.4, 0.2}
	case BlockTypeLeaves:
		return mgl32.Vec3{0.3, 0.6, 0.2}
	case BlockTypeBedrock:
		return mgl32.Vec3{0.2, 0.2, 0.2}
	case BlockTypeSnow:
		return mgl32.Vec3{0.95, 0.95, 0.98}
	case BlockTypeGravel:
		return mgl32.Vec3{0.5, 0.5, 0.52}
	case BlockTypeClay:
		return mgl32.Vec3{0.65, 0.65, 0.72}
	case BlockTypeIce:
		return mgl32.Vec3{0.7, 0.85, 0.95}
	case BlockTypeCactus:
		return mgl32.Vec3{0.2, 0.55, 0.2}
	case BlockTypeDeadBush:
		return mgl32.Vec3{0.55, 0.4, 0.25}
	default:
		return mgl32.Vec3{0, 0, 0}
	}
}

// TopColor returns the tint for the +Y face.
func (b BlockType) TopColor() mgl32.Vec3 {
	if b == BlockTypeGrass {
		return mgl32.Vec3{0.36, 0.7, 0.28}
	}
	return b.Color()
}

// BottomColor returns the tint for the -Y face.
func (b BlockType) BottomColor() mgl32.Vec3 {
	if b == BlockTypeGrass {
		return mgl32.Vec3{0.52, 0.37, 0.26}
	}
	return b.Color()
}

// BreakTime returns the mining time in seconds. Bedrock is unbreakable.
func (b BlockType) BreakTime() float64 {
	switch b {
	case BlockTypeGrass:
		return 0.6
	case BlockTypeDirt:
		return 0.5
	case BlockTypeStone:
		return 1.5
	case BlockTypeSand:
		return 0.5
	case BlockTypeWood, BlockTypeWoodStairs:
		return 2.0
	case BlockTypeLeaves:
		return 0.2
	case BlockTypeBedrock:
		return math.Inf(1)
	case BlockTypeSnow:
		return 0.2
	case BlockTypeGravel:
		return 0.6
	case BlockTypeClay:
		return 0.6
	case BlockTypeIce:
		return 0.5
	case BlockTypeCactus:
		return 0.4
	default:
		return 0
	}
}

// TexTop returns the atlas slot for the +Y face.
func (b BlockType) TexTop() int {
	switch b {
	case BlockTypeGrass:
		return TexGrassTop
	case BlockTypeDirt:
		return TexDirt
	case BlockTypeStone:
		return TexStone
	case BlockTypeSand:
		return TexSand
	case BlockTypeWater:
		return TexWater
	case BlockTypeWood, BlockTypeWoodStairs:
		return TexWoodTop
	case BlockTypeLeaves:
		return TexLeaves
	case BlockTypeBedrock:
		return TexBedrock
	case BlockTypeSnow:
		return TexSnow
	case BlockTypeGravel:
		return TexGravel
	case BlockTypeClay:
		return TexClay
	case BlockTypeIce:
		return TexIce
	case BlockTypeCactus:
		return TexCactus
	case BlockTypeDeadBush:
		return TexDeadBush
	default:
		return TexGrassTop
	}
}

// TexSide returns the atlas slot for the lateral faces.
func (b BlockType) TexSide() int {
	switch b {
	case BlockTypeGrass:
		return TexGrassSide
	case BlockTypeWood, BlockTypeWoodStairs:
		return TexWoodSide
	default:
		return b.TexTop()
	}
}

// TexBottom returns the atlas slot for the -Y face.
func (b BlockType) TexBottom() int {
	switch b {
	case BlockTypeGrass:
		return TexDirt
	case BlockTypeWood, BlockTypeWoodStairs:
		return TexWoodTop
	default:
		return b.TexTop()
	}
}

// Roughness returns the PBR roughness for the block surface.
func (b BlockType) Roughness() float32 {
	switch b {
	case BlockTypeStone, BlockTypeBedrock, BlockTypeGravel, BlockTypeClay:
		return 0.7
	case BlockTypeSand, BlockTypeSnow:
		return 0.8
	case BlockTypeLeaves:
		return 0.5
	case BlockTypeIce, BlockTypeWater:
		return 0.1
	case BlockTypeWood, BlockTypeCactus, BlockTypeWoodStairs:
		return 0.6
	default:
		return 1.0
	}
}

// Metallic returns the PBR metalness for the block surface.
func (b BlockType) Metallic() float32 {
	switch b {
	case BlockTypeIce, BlockTypeWater:
		return 0.05
	default:
		return 0
	}
}
