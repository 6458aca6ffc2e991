package world

import (
	"math"
	"testing"
)

func TestWaterFaceAsymmetry(t *testing.T) {
	// Submerged terrain stays visible: stone renders its face against
	// water, but water never renders a face back against stone.
	if !BlockTypeStone.ShouldRenderFaceAgainst(BlockTypeWater) {
		t.Error("stone should render face against water")
	}
	if BlockTypeWater.ShouldRenderFaceAgainst(BlockTypeStone) {
		t.Error("water should not render face against stone")
	}
}

func TestWaterAgainstWater(t *testing.T) {
	if BlockTypeWater.ShouldRenderFaceAgainst(BlockTypeWater) {
		t.Error("water should not render interior faces")
	}
	if !BlockTypeWater.ShouldRenderFaceAgainst(BlockTypeAir) {
		t.Error("water surface against air must render")
	}
}

func TestLeavesRenderBetweenEachOther(t *testing.T) {
	if !BlockTypeLeaves.ShouldRenderFaceAgainst(BlockTypeLeaves) {
		t.Error("adjacent leaves should keep their shared faces")
	}
}

func TestOpaqueNeighborsHideFaces(t *testing.T) {
	if BlockTypeStone.ShouldRenderFaceAgainst(BlockTypeDirt) {
		t.Error("face between two opaque blocks should be culled")
	}
	if !BlockTypeStone.ShouldRenderFaceAgainst(BlockTypeAir) {
		t.Error("face against air must render")
	}
	if !BlockTypeStone.ShouldRenderFaceAgainst(BlockTypeIce) {
		t.Error("face against transparent ice must render")
	}
}

func TestMergeable(t *testing.T) {
	if BlockTypeWoodStairs.Mergeable() {
		t.Error("stairs have partial geometry and must not greedy-merge")
	}
	for _, b := range []BlockType{BlockTypeStone, BlockTypeGrass, BlockTypeSand, BlockTypeLeaves} {
		if !b.Mergeable() {
			t.Errorf("%v should be mergeable", b)
		}
	}
}

func TestBedrockUnbreakable(t *testing.T) {
	if !math.IsInf(BlockTypeBedrock.BreakTime(), 1) {
		t.Error("bedrock break time should be infinite")
	}
	if BlockTypeStone.BreakTime() <= 0 {
		t.Error("stone break time should be positive")
	}
}

func TestSolidityClasses(t *testing.T) {
	if BlockTypeWater.IsSolid() || BlockTypeDeadBush.IsSolid() || BlockTypeAir.IsSolid() {
		t.Error("air, water and dead bush do not collide")
	}
	if !BlockTypeIce.IsSolid() {
		t.Error("ice collides")
	}
	if BlockTypeIce.IsSolidOpaque() {
		t.Error("ice is transparent, not solid-opaque")
	}
	if !BlockTypeStone.IsSolidOpaque() {
		t.Error("stone is solid-opaque")
	}
}
