package meshing

import (
	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// chunkView is a snapshot of the center chunk and its four edge-adjacent
// neighbors, taken once per mesh build so the mask passes never touch the
// store map. Face checks only ever look one block along an axis, so
// diagonal neighbors are not needed.
type chunkView struct {
	cx, cz int
	center *world.Chunk
	west   *world.Chunk // cx-1
	east   *world.Chunk // cx+1
	south  *world.Chunk // cz-1
	north  *world.Chunk // cz+1
}

func newChunkView(get func(cx, cz int) *world.Chunk, cx, cz int) chunkView {
	return chunkView{
		cx:     cx,
		cz:     cz,
		center: get(cx, cz),
		west:   get(cx-1, cz),
		east:   get(cx+1, cz),
		south:  get(cx, cz-1),
		north:  get(cx, cz+1),
	}
}

// get returns the block at world coordinates, restricted to the snapshot
// cross. Unloaded neighbors and out-of-range heights read as air.
func (v chunkView) get(wx, wy, wz int) world.BlockType {
	if wy < 0 || wy >= world.WorldHeight {
		return world.BlockTypeAir
	}
	ccx := floorDivInt(wx, world.ChunkSizeX)
	ccz := floorDivInt(wz, world.ChunkSizeZ)

	var c *world.Chunk
	switch {
	case ccx == v.cx && ccz == v.cz:
		c = v.center
	case ccx == v.cx-1 && ccz == v.cz:
		c = v.west
	case ccx == v.cx+1 && ccz == v.cz:
		c = v.east
	case ccx == v.cx && ccz == v.cz-1:
		c = v.south
	case ccx == v.cx && ccz == v.cz+1:
		c = v.north
	}
	if c == nil {
		return world.BlockTypeAir
	}
	return c.GetBlock(modInt(wx, world.ChunkSizeX), wy, modInt(wz, world.ChunkSizeZ))
}

// faceCell is the mask entry for greedy merging. Two faces merge only if
// their cells compare equal, so texture and tint seams are never merged
// across.
type faceCell struct {
	block world.BlockType
	tex   float32
	tint  mgl32.Vec3
}

var emptyCell faceCell

// BuildSubChunkMesh builds the terrain and water meshes for one subchunk.
// Solid mergeable blocks are greedy-meshed per face direction; water and
// stair-shaped blocks are emitted block by block. The generator supplies
// per-column biomes for grass and leaf tinting. The whole build runs under
// the store's read lock so concurrent writers cannot tear the snapshot.
func BuildSubChunkMesh(store *world.ChunkStore, gen world.TerrainGenerator, cx, cz, sy int) (terrain Mesh, water Mesh) {
	store.ReadLocked(func(get func(cx, cz int) *world.Chunk) {
		view := newChunkView(get, cx, cz)
		if view.center == nil {
			return
		}
		sub := view.center.SubChunk(sy)
		if sub == nil || sub.IsEmpty() {
			return
		}

		baseX := cx * world.ChunkSizeX
		baseY := sy * world.SubChunkHeight
		baseZ := cz * world.ChunkSizeZ

		var biomes [world.ChunkSizeX][world.ChunkSizeZ]world.Biome
		for lx := 0; lx < world.ChunkSizeX; lx++ {
			for lz := 0; lz < world.ChunkSizeZ; lz++ {
				biomes[lx][lz] = gen.GetBiome(baseX+lx, baseZ+lz)
			}
		}

		buildWaterMesh(&water, view, baseX, baseY, baseZ)
		buildStairMesh(&terrain, view, &biomes, baseX, baseY, baseZ)

		for _, dir := range faceDirections {
			buildGreedyForDirection(&terrain, view, &biomes, baseX, baseY, baseZ, dir)
		}
	})
	return terrain, water
}

type faceDir struct {
	face       world.BlockFace
	nx, ny, nz int
}

var faceDirections = [6]faceDir{
	{world.FaceEast, +1, 0, 0},
	{world.FaceWest, -1, 0, 0},
	{world.FaceTop, 0, +1, 0},
	{world.FaceBottom, 0, -1, 0},
	{world.FaceNorth, 0, 0, +1},
	{world.FaceSouth, 0, 0, -1},
}

func texFor(block world.BlockType, face world.BlockFace) float32 {
	switch face {
	case world.FaceTop:
		return float32(block.TexTop())
	case world.FaceBottom:
		return float32(block.TexBottom())
	default:
		return float32(block.TexSide())
	}
}

func tintFor(block world.BlockType, face world.BlockFace, biome world.Biome) mgl32.Vec3 {
	if block == world.BlockTypeLeaves {
		return biome.LeavesColor()
	}
	switch face {
	case world.FaceTop:
		if block == world.BlockTypeGrass {
			return biome.GrassColor()
		}
		return block.TopColor()
	case world.FaceBottom:
		return block.BottomColor()
	default:
		return block.Color()
	}
}

// solidCellAt evaluates one face of one block: returns the mask cell if
// the face is visible, or emptyCell. Water and non-mergeable blocks are
// excluded here; each has its own mesher.
func solidCellAt(view chunkView, biomes *[world.ChunkSizeX][world.ChunkSizeZ]world.Biome, wx, wy, wz int, dir faceDir) faceCell {
	block := view.get(wx, wy, wz)
	if block == world.BlockTypeAir || block == world.BlockTypeWater || !block.Mergeable() {
		return emptyCell
	}
	neighbor := view.get(wx+dir.nx, wy+dir.ny, wz+dir.nz)
	if !block.ShouldRenderFaceAgainst(neighbor) {
		return emptyCell
	}
	biome := biomes[modInt(wx, world.ChunkSizeX)][modInt(wz, world.ChunkSizeZ)]
	return faceCell{
		block: block,
		tex:   texFor(block, dir.face),
		tint:  tintFor(block, dir.face, biome),
	}
}

// buildGreedyForDirection runs 2D greedy meshing over the subchunk layers
// perpendicular to one face direction. Cells merge only when their block,
// texture, and tint all match; blocks that opt out of merging never enter
// the mask and are emitted whole by buildStairMesh.
func buildGreedyForDirection(mesh *Mesh, view chunkView, biomes *[world.ChunkSizeX][world.ChunkSizeZ]world.Biome, baseX, baseY, baseZ int, dir faceDir) {
	const sx, sh, sz = world.ChunkSizeX, world.SubChunkHeight, world.ChunkSizeZ

	normal := mgl32.Vec3{float32(dir.nx), float32(dir.ny), float32(dir.nz)}

	if dir.nx != 0 { // plane is Y-Z, layers along X
		for x := 0; x < sx; x++ {
			var mask [sh * sz]faceCell
			for y := 0; y < sh; y++ {
				for z := 0; z < sz; z++ {
					cell := solidCellAt(view, biomes, baseX+x, baseY+y, baseZ+z, dir)
					if cell == emptyCell {
						continue
					}
					mask[y*sz+z] = cell
				}
			}

			fx := float32(baseX + x)
			if dir.nx > 0 {
				fx++
			}
			for i := 0; i < sh*sz; {
				cell := mask[i]
				if cell == emptyCell {
					i++
					continue
				}
				y0 := i / sz
				z0 := i % sz
				width := 1
				for z1 := z0 + 1; z1 < sz && mask[y0*sz+z1] == cell; z1++ {
					width++
				}
				height := 1
			growYZ:
				for y1 := y0 + 1; y1 < sh; y1++ {
					for z1 := z0; z1 < z0+width; z1++ {
						if mask[y1*sz+z1] != cell {
							break growYZ
						}
					}
					height++
				}

				fy0 := float32(baseY + y0)
				fz0 := float32(baseZ + z0)
				fy1 := float32(baseY + y0 + height)
				fz1 := float32(baseZ + z0 + width)
				rough := cell.block.Roughness()
				metal := cell.block.Metallic()
				if dir.nx > 0 { // +X
					mesh.AddGreedyQuad(
						mgl32.Vec3{fx, fy0, fz0},
						mgl32.Vec3{fx, fy0, fz1},
						mgl32.Vec3{fx, fy1, fz1},
						mgl32.Vec3{fx, fy1, fz0},
						normal, cell.tint, cell.tex, float32(width), float32(height), rough, metal)
				} else { // -X
					mesh.AddGreedyQuad(
						mgl32.Vec3{fx, fy0, fz0},
						mgl32.Vec3{fx, fy1, fz0},
						mgl32.Vec3{fx, fy1, fz1},
						mgl32.Vec3{fx, fy0, fz1},
						normal, cell.tint, cell.tex, float32(width), float32(height), rough, metal)
				}

				for yy := y0; yy < y0+height; yy++ {
					for zz := z0; zz < z0+width; zz++ {
						mask[yy*sz+zz] = emptyCell
					}
				}
			}
		}
		return
	}

	if dir.ny != 0 { // plane is X-Z, layers along Y
		for y := 0; y < sh; y++ {
			var mask [sx * sz]faceCell
			for x := 0; x < sx; x++ {
				for z := 0; z < sz; z++ {
					cell := solidCellAt(view, biomes, baseX+x, baseY+y, baseZ+z, dir)
					if cell == emptyCell {
						continue
					}
					mask[x*sz+z] = cell
				}
			}

			fy := float32(baseY + y)
			if dir.ny > 0 {
				fy++
			}
			for i := 0; i < sx*sz; {
				cell := mask[i]
				if cell == emptyCell {
					i++
					continue
				}
				x0 := i / sz
				z0 := i % sz
				width := 1
				for z1 := z0 + 1; z1 < sz && mask[x0*sz+z1] == cell; z1++ {
					width++
				}
				height := 1
			growXZ:
				for x1 := x0 + 1; x1 < sx; x1++ {
					for z1 := z0; z1 < z0+width; z1++ {
						if mask[x1*sz+z1] != cell {
							break growXZ
						}
					}
					height++
				}

				fx0 := float32(baseX + x0)
				fz0 := float32(baseZ + z0)
				fx1 := float32(baseX + x0 + height)
				fz1 := float32(baseZ + z0 + width)
				rough := cell.block.Roughness()
				metal := cell.block.Metallic()
				if dir.ny > 0 { // +Y
					mesh.AddGreedyQuad(
						mgl32.Vec3{fx0, fy, fz0},
						mgl32.Vec3{fx1, fy, fz0},
						mgl32.Vec3{fx1, fy, fz1},
						mgl32.Vec3{fx0, fy, fz1},
						normal, cell.tint, cell.tex, float32(width), float32(height), rough, metal)
				} else { // -Y
					mesh.AddGreedyQuad(
						mgl32.Vec3{fx0, fy, fz0},
						mgl32.Vec3{fx0, fy, fz1},
						mgl32.Vec3{fx1, fy, fz1},
						mgl32.Vec3{fx1, fy, fz0},
						normal, cell.tint, cell.tex, float32(width), float32(height), rough, metal)
				}

				for xx := x0; xx < x0+height; xx++ {
					for zz := z0; zz < z0+width; zz++ {
						mask[xx*sz+zz] = emptyCell
					}
				}
			}
		}
		return
	}

	// plane is X-Y, layers along Z
	for z := 0; z < sz; z++ {
		var mask [sx * sh]faceCell
		for x := 0; x < sx; x++ {
			for y := 0; y < sh; y++ {
				cell := solidCellAt(view, biomes, baseX+x, baseY+y, baseZ+z, dir)
				if cell == emptyCell {
					continue
				}
				mask[x*sh+y] = cell
			}
		}

		fz := float32(baseZ + z)
		if dir.nz > 0 {
			fz++
		}
		for i := 0; i < sx*sh; {
			cell := mask[i]
			if cell == emptyCell {
				i++
				continue
			}
			x0 := i / sh
			y0 := i % sh
			width := 1
			for y1 := y0 + 1; y1 < sh && mask[x0*sh+y1] == cell; y1++ {
				width++
			}
			height := 1
		growXY:
			for x1 := x0 + 1; x1 < sx; x1++ {
				for y1 := y0; y1 < y0+width; y1++ {
					if mask[x1*sh+y1] != cell {
						break growXY
					}
				}
				height++
			}

			fx0 := float32(baseX + x0)
			fy0 := float32(baseY + y0)
			fx1 := float32(baseX + x0 + height)
			fy1 := float32(baseY + y0 + width)
			rough := cell.block.Roughness()
			metal := cell.block.Metallic()
			if dir.nz > 0 { // +Z
				mesh.AddGreedyQuad(
					mgl32.Vec3{fx0, fy0, fz},
					mgl32.Vec3{fx1, fy0, fz},
					mgl32.Vec3{fx1, fy1, fz},
					mgl32.Vec3{fx0, fy1, fz},
					normal, cell.tint, cell.tex, float32(height), float32(width), rough, metal)
			} else { // -Z
				mesh.AddGreedyQuad(
					mgl32.Vec3{fx0, fy0, fz},
					mgl32.Vec3{fx0, fy1, fz},
					mgl32.Vec3{fx1, fy1, fz},
					mgl32.Vec3{fx1, fy0, fz},
					normal, cell.tint, cell.tex, float32(height), float32(width), rough, metal)
			}

			for xx := x0; xx < x0+height; xx++ {
				for yy := y0; yy < y0+width; yy++ {
					mask[xx*sh+yy] = emptyCell
				}
			}
		}
	}
}

// buildStairMesh emits blocks whose geometry is not planar-mergeable. They
// bypass the greedy masks entirely: partial-height faces would break the
// merge assumption, so each block is emitted whole.
func buildStairMesh(mesh *Mesh, view chunkView, biomes *[world.ChunkSizeX][world.ChunkSizeZ]world.Biome, baseX, baseY, baseZ int) {
	for lx := 0; lx < world.ChunkSizeX; lx++ {
		for lz := 0; lz < world.ChunkSizeZ; lz++ {
			for ly := 0; ly < world.SubChunkHeight; ly++ {
				wx := baseX + lx
				wy := baseY + ly
				wz := baseZ + lz
				b := view.get(wx, wy, wz)
				if b == world.BlockTypeAir || b == world.BlockTypeWater || b.Mergeable() {
					continue
				}
				emitStairBlock(mesh, view, b, biomes[lx][lz], wx, wy, wz)
			}
		}
	}
}

// emitStairBlock emits the stair shape for one block: a full-height back
// half and a half-height front half, the step descending toward -Z. The
// riser, the lower tread, and the upper halves of the side faces sit inside
// the cell and are always visible; faces on the cell boundary cull against
// the neighbor like any other block face.
func emitStairBlock(mesh *Mesh, view chunkView, block world.BlockType, biome world.Biome, wx, wy, wz int) {
	fx := float32(wx)
	fy := float32(wy)
	fz := float32(wz)
	rough := block.Roughness()
	metal := block.Metallic()

	renderAgainst := func(dx, dy, dz int) bool {
		return block.ShouldRenderFaceAgainst(view.get(wx+dx, wy+dy, wz+dz))
	}
	topTex := texFor(block, world.FaceTop)
	topTint := tintFor(block, world.FaceTop, biome)
	bottomTex := texFor(block, world.FaceBottom)
	bottomTint := tintFor(block, world.FaceBottom, biome)
	sideTex := texFor(block, world.FaceNorth)
	sideTint := tintFor(block, world.FaceNorth, biome)

	if renderAgainst(0, -1, 0) {
		mesh.AddQuad(
			mgl32.Vec3{fx, fy, fz},
			mgl32.Vec3{fx, fy, fz + 1},
			mgl32.Vec3{fx + 1, fy, fz + 1},
			mgl32.Vec3{fx + 1, fy, fz},
			mgl32.Vec3{0, -1, 0}, bottomTint, bottomTex, rough, metal)
	}

	// Lower tread and back-half top. The tread plane is interior.
	mesh.AddQuad(
		mgl32.Vec3{fx, fy + 0.5, fz},
		mgl32.Vec3{fx + 1, fy + 0.5, fz},
		mgl32.Vec3{fx + 1, fy + 0.5, fz + 0.5},
		mgl32.Vec3{fx, fy + 0.5, fz + 0.5},
		mgl32.Vec3{0, 1, 0}, topTint, topTex, rough, metal)
	if renderAgainst(0, 1, 0) {
		mesh.AddQuad(
			mgl32.Vec3{fx, fy + 1, fz + 0.5},
			mgl32.Vec3{fx + 1, fy + 1, fz + 0.5},
			mgl32.Vec3{fx + 1, fy + 1, fz + 1},
			mgl32.Vec3{fx, fy + 1, fz + 1},
			mgl32.Vec3{0, 1, 0}, topTint, topTex, rough, metal)
	}

	// Riser, facing -Z at the half-depth plane; always interior.
	mesh.AddQuad(
		mgl32.Vec3{fx, fy + 0.5, fz + 0.5},
		mgl32.Vec3{fx + 1, fy + 0.5, fz + 0.5},
		mgl32.Vec3{fx + 1, fy + 1, fz + 0.5},
		mgl32.Vec3{fx, fy + 1, fz + 0.5},
		mgl32.Vec3{0, 0, -1}, sideTint, sideTex, rough, metal)

	// Half-height front face.
	if renderAgainst(0, 0, -1) {
		mesh.AddQuad(
			mgl32.Vec3{fx, fy, fz},
			mgl32.Vec3{fx + 1, fy, fz},
			mgl32.Vec3{fx + 1, fy + 0.5, fz},
			mgl32.Vec3{fx, fy + 0.5, fz},
			mgl32.Vec3{0, 0, -1}, sideTint, sideTex, rough, metal)
	}
	// Full back face.
	if renderAgainst(0, 0, 1) {
		mesh.AddQuad(
			mgl32.Vec3{fx, fy, fz + 1},
			mgl32.Vec3{fx, fy + 1, fz + 1},
			mgl32.Vec3{fx + 1, fy + 1, fz + 1},
			mgl32.Vec3{fx + 1, fy, fz + 1},
			mgl32.Vec3{0, 0, 1}, sideTint, sideTex, rough, metal)
	}

	// L-shaped sides: a half-height strip along the full depth plus the
	// upper back quarter.
	if renderAgainst(-1, 0, 0) {
		mesh.AddQuad(
			mgl32.Vec3{fx, fy, fz},
			mgl32.Vec3{fx, fy + 0.5, fz},
			mgl32.Vec3{fx, fy + 0.5, fz + 1},
			mgl32.Vec3{fx, fy, fz + 1},
			mgl32.Vec3{-1, 0, 0}, sideTint, sideTex, rough, metal)
		mesh.AddQuad(
			mgl32.Vec3{fx, fy + 0.5, fz + 0.5},
			mgl32.Vec3{fx, fy + 1, fz + 0.5},
			mgl32.Vec3{fx, fy + 1, fz + 1},
			mgl32.Vec3{fx, fy + 0.5, fz + 1},
			mgl32.Vec3{-1, 0, 0}, sideTint, sideTex, rough, metal)
	}
	if renderAgainst(1, 0, 0) {
		mesh.AddQuad(
			mgl32.Vec3{fx + 1, fy, fz},
			mgl32.Vec3{fx + 1, fy, fz + 1},
			mgl32.Vec3{fx + 1, fy + 0.5, fz + 1},
			mgl32.Vec3{fx + 1, fy + 0.5, fz},
			mgl32.Vec3{1, 0, 0}, sideTint, sideTex, rough, metal)
		mesh.AddQuad(
			mgl32.Vec3{fx + 1, fy + 0.5, fz + 0.5},
			mgl32.Vec3{fx + 1, fy + 0.5, fz + 1},
			mgl32.Vec3{fx + 1, fy + 1, fz + 1},
			mgl32.Vec3{fx + 1, fy + 1, fz + 0.5},
			mgl32.Vec3{1, 0, 0}, sideTint, sideTex, rough, metal)
	}
}

func floorDivInt(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func modInt(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
