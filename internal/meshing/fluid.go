package meshing

import (
	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// waterSurfaceHeight is how high a water block's surface sits when open to
// the sky, leaving the familiar lip below the top of the cell.
const waterSurfaceHeight = 0.875

// buildWaterMesh emits water faces for one subchunk. Water is never
// greedy-merged: each surface cell gets its own quad so per-corner surface
// heights can differ, and faces only render against air.
func buildWaterMesh(mesh *Mesh, view chunkView, baseX, baseY, baseZ int) {
	for lx := 0; lx < world.ChunkSizeX; lx++ {
		for lz := 0; lz < world.ChunkSizeZ; lz++ {
			for ly := 0; ly < world.SubChunkHeight; ly++ {
				wx := baseX + lx
				wy := baseY + ly
				wz := baseZ + lz
				if view.get(wx, wy, wz) != world.BlockTypeWater {
					continue
				}
				emitWaterBlock(mesh, view, wx, wy, wz)
			}
		}
	}
}

func emitWaterBlock(mesh *Mesh, view chunkView, wx, wy, wz int) {
	tint := world.BlockTypeWater.Color()
	tex := float32(world.TexWater)
	rough := world.BlockTypeWater.Roughness()
	metal := world.BlockTypeWater.Metallic()

	renderAgainst := func(dx, dy, dz int) bool {
		return world.BlockTypeWater.ShouldRenderFaceAgainst(view.get(wx+dx, wy+dy, wz+dz))
	}

	fx := float32(wx)
	fy := float32(wy)
	fz := float32(wz)

	// Corner heights let the surface slope down toward shorelines.
	hNW := waterCornerHeight(view, wx, wy, wz)
	hNE := waterCornerHeight(view, wx+1, wy, wz)
	hSW := waterCornerHeight(view, wx, wy, wz+1)
	hSE := waterCornerHeight(view, wx+1, wy, wz+1)

	if renderAgainst(0, 1, 0) {
		mesh.AddQuad(
			mgl32.Vec3{fx, fy + hNW, fz},
			mgl32.Vec3{fx + 1, fy + hNE, fz},
			mgl32.Vec3{fx + 1, fy + hSE, fz + 1},
			mgl32.Vec3{fx, fy + hSW, fz + 1},
			mgl32.Vec3{0, 1, 0}, tint, tex, rough, metal)
	}
	if renderAgainst(0, -1, 0) {
		mesh.AddQuad(
			mgl32.Vec3{fx, fy, fz},
			mgl32.Vec3{fx, fy, fz + 1},
			mgl32.Vec3{fx + 1, fy, fz + 1},
			mgl32.Vec3{fx + 1, fy, fz},
			mgl32.Vec3{0, -1, 0}, tint, tex, rough, metal)
	}
	if renderAgainst(-1, 0, 0) {
		mesh.AddQuad(
			mgl32.Vec3{fx, fy, fz},
			mgl32.Vec3{fx, fy + hNW, fz},
			mgl32.Vec3{fx, fy + hSW, fz + 1},
			mgl32.Vec3{fx, fy, fz + 1},
			mgl32.Vec3{-1, 0, 0}, tint, tex, rough, metal)
	}
	if renderAgainst(1, 0, 0) {
		mesh.AddQuad(
			mgl32.Vec3{fx + 1, fy, fz},
			mgl32.Vec3{fx + 1, fy, fz + 1},
			mgl32.Vec3{fx + 1, fy + hSE, fz + 1},
			mgl32.Vec3{fx + 1, fy + hNE, fz},
			mgl32.Vec3{1, 0, 0}, tint, tex, rough, metal)
	}
	if renderAgainst(0, 0, -1) {
		mesh.AddQuad(
			mgl32.Vec3{fx, fy, fz},
			mgl32.Vec3{fx + 1, fy, fz},
			mgl32.Vec3{fx + 1, fy + hNE, fz},
			mgl32.Vec3{fx, fy + hNW, fz},
			mgl32.Vec3{0, 0, -1}, tint, tex, rough, metal)
	}
	if renderAgainst(0, 0, 1) {
		mesh.AddQuad(
			mgl32.Vec3{fx, fy, fz + 1},
			mgl32.Vec3{fx, fy + hSW, fz + 1},
			mgl32.Vec3{fx + 1, fy + hSE, fz + 1},
			mgl32.Vec3{fx + 1, fy, fz + 1},
			mgl32.Vec3{0, 0, 1}, tint, tex, rough, metal)
	}
}

// waterCornerHeight averages the surface height at a cell corner from the
// four columns that share it. Water stacked above any of them means the
// surface is flush with the cell top.
func waterCornerHeight(view chunkView, cornerX, y, cornerZ int) float32 {
	sum := float32(0)
	count := 0

	for j := 0; j < 4; j++ {
		bx := cornerX - (j & 1)
		bz := cornerZ - (j >> 1 & 1)

		if view.get(bx, y+1, bz) == world.BlockTypeWater {
			return 1.0
		}

		switch b := view.get(bx, y, bz); {
		case b == world.BlockTypeWater:
			sum += waterSurfaceHeight
			count++
		case !b.IsSolid():
			count++
		}
	}

	if count == 0 {
		return waterSurfaceHeight
	}
	return sum / float32(count)
}
