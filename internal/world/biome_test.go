package world

import "testing"

func TestBiomeTreeDensity(t *testing.T) {
	if d := BiomeForest.TreeDensity(); d >= BiomePlains.TreeDensity() {
		t.Errorf("forest threshold %f should be below plains %f (denser trees)", d, BiomePlains.TreeDensity())
	}
	for _, b := range []Biome{BiomeOcean, BiomeDesert, BiomeRiver, BiomeLake} {
		if b.HasTrees() {
			t.Errorf("%v should not grow trees", b)
		}
	}
	for _, b := range []Biome{BiomePlains, BiomeForest, BiomeSwamp, BiomeTundra} {
		if !b.HasTrees() {
			t.Errorf("%v should grow trees", b)
		}
	}
}

func TestBiomeColorsDistinct(t *testing.T) {
	if BiomePlains.GrassColor() == BiomeSwamp.GrassColor() {
		t.Error("plains and swamp grass tints should differ")
	}
	if BiomeForest.LeavesColor() == BiomeTundra.LeavesColor() {
		t.Error("forest and tundra leaf tints should differ")
	}
}

func TestBiomeString(t *testing.T) {
	if BiomeOcean.String() == "" || BiomeMountains.String() == "" {
		t.Error("biomes must have printable names")
	}
	if BiomeOcean.String() == BiomeDesert.String() {
		t.Error("biome names must be distinct")
	}
}
