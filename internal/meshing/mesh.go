package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one mesh vertex in the interleaved chunk vertex format.
type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	Color     mgl32.Vec3
	UV        mgl32.Vec2
	TexIndex  float32
	Roughness float32
	Metallic  float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// AddQuad appends a unit-UV quad. Corners must be given counter-clockwise
// when viewed from the normal side.
func (m *Mesh) AddQuad(p0, p1, p2, p3, normal, color mgl32.Vec3, texIndex, roughness, metallic float32) {
	base := uint32(len(m.Vertices))
	uvs := [4]mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	for i, p := range [4]mgl32.Vec3{p0, p1, p2, p3} {
		m.Vertices = append(m.Vertices, Vertex{
			Position:  p,
			Normal:    normal,
			Color:     color,
			UV:        uvs[i],
			TexIndex:  texIndex,
			Roughness: roughness,
			Metallic:  metallic,
		})
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// AddGreedyQuad appends a merged quad whose UVs span width x height tiles,
// so the texture repeats once per block instead of stretching.
func (m *Mesh) AddGreedyQuad(p0, p1, p2, p3, normal, color mgl32.Vec3, texIndex float32, width, height float32, roughness, metallic float32) {
	base := uint32(len(m.Vertices))
	uvs := [4]mgl32.Vec2{{0, height}, {width, height}, {width, 0}, {0, 0}}
	for i, p := range [4]mgl32.Vec3{p0, p1, p2, p3} {
		m.Vertices = append(m.Vertices, Vertex{
			Position:  p,
			Normal:    normal,
			Color:     color,
			UV:        uvs[i],
			TexIndex:  texIndex,
			Roughness: roughness,
			Metallic:  metallic,
		})
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}
