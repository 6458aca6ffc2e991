package world

import "github.com/go-gl/mathgl/mgl32"

type Biome uint8

const (
	BiomePlains Biome = iota
	BiomeForest
	BiomeDesert
	BiomeTundra
	BiomeMountains
	BiomeSwamp
	BiomeOcean
	BiomeBeach
	BiomeRiver
	BiomeLake
	BiomeIsland
)

func (b Biome) String() string {
	switch b {
	case BiomePlains:
		return "plains"
	case BiomeForest:
		return "forest"
	case BiomeDesert:
		return "desert"
	case BiomeTundra:
		return "tundra"
	case BiomeMountains:
		return "mountains"
	case BiomeSwamp:
		return "swamp"
	case BiomeOcean:
		return "ocean"
	case BiomeBeach:
		return "beach"
	case BiomeRiver:
		return "river"
	case BiomeLake:
		return "lake"
	case BiomeIsland:
		return "island"
	default:
		return "unknown"
	}
}

// GrassColor returns the biome tint applied to grass tops.
func (b Biome) GrassColor() mgl32.Vec3 {
	switch b {
	case BiomePlains:
		return mgl32.Vec3{0.45, 0.75, 0.30}
	case BiomeForest:
		return mgl32.Vec3{0.25, 0.55, 0.20}
	case BiomeDesert, BiomeBeach:
		return mgl32.Vec3{0.89, 0.83, 0.61}
	case BiomeTundra:
		return mgl32.Vec3{0.65, 0.75, 0.70}
	case BiomeMountains:
		return mgl32.Vec3{0.50, 0.60, 0.45}
	case BiomeSwamp:
		return mgl32.Vec3{0.35, 0.50, 0.25}
	case BiomeOcean, BiomeRiver, BiomeLake:
		return mgl32.Vec3{0.25, 0.46, 0.82}
	case BiomeIsland:
		return mgl32.Vec3{0.40, 0.70, 0.30}
	default:
		return mgl32.Vec3{0.45, 0.75, 0.30}
	}
}

// LeavesColor returns the biome tint applied to leaf blocks.
func (b Biome) LeavesColor() mgl32.Vec3 {
	switch b {
	case BiomePlains:
		return mgl32.Vec3{0.35, 0.65, 0.25}
	case BiomeForest:
		return mgl32.Vec3{0.20, 0.50, 0.15}
	case BiomeTundra:
		return mgl32.Vec3{0.30, 0.45, 0.35}
	case BiomeSwamp:
		return mgl32.Vec3{0.30, 0.45, 0.20}
	case BiomeIsland:
		return mgl32.Vec3{0.35, 0.60, 0.25}
	default:
		return mgl32.Vec3{0.30, 0.60, 0.20}
	}
}

// TreeDensity is the noise threshold a column must exceed to host a tree.
// Higher means sparser; 1.0 effectively disables trees.
func (b Biome) TreeDensity() float64 {
	switch b {
	case BiomePlains:
		return 0.75
	case BiomeForest:
		return 0.45
	case BiomeTundra:
		return 0.85
	case BiomeMountains:
		return 0.80
	case BiomeSwamp:
		return 0.60
	case BiomeIsland:
		return 0.65
	default:
		return 1.0
	}
}

// HasTrees reports whether the decoration pass considers trees at all.
func (b Biome) HasTrees() bool {
	switch b {
	case BiomePlains, BiomeForest, BiomeTundra, BiomeMountains, BiomeSwamp, BiomeIsland:
		return true
	default:
		return false
	}
}
