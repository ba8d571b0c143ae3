package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/celestial/pkg/math3d"
)

// ErrMalformedMesh is returned when mesh data cannot be rasterized.
var ErrMalformedMesh = errors.New("malformed mesh")

// MeshSource provides indexed triangle geometry. It is implemented by
// models.Mesh; render does not import models.
type MeshSource interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3)
	GetFace(i int) [3]int
}

// Vertex is a model-space vertex with a unit normal.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Triangle is three vertices in no particular winding order.
type Triangle struct {
	V [3]Vertex
}

// CollectTriangles validates a mesh and expands its faces into triangles.
// Face indices must be in range and every referenced vertex must have finite
// position and normal components.
func CollectTriangles(mesh MeshSource) ([]Triangle, error) {
	nv := mesh.VertexCount()
	nt := mesh.TriangleCount()
	if nv < 3 {
		return nil, fmt.Errorf("%w: %d vertices, need at least 3", ErrMalformedMesh, nv)
	}
	if nt == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrMalformedMesh)
	}

	verts := make([]Vertex, nv)
	for i := range nv {
		pos, normal := mesh.GetVertex(i)
		if !pos.IsFinite() || !normal.IsFinite() {
			return nil, fmt.Errorf("%w: vertex %d is not finite", ErrMalformedMesh, i)
		}
		verts[i] = Vertex{Position: pos, Normal: normal}
	}

	tris := make([]Triangle, nt)
	for i := range nt {
		face := mesh.GetFace(i)
		for _, idx := range face {
			if idx < 0 || idx >= nv {
				return nil, fmt.Errorf("%w: face %d index %d out of range [0,%d)", ErrMalformedMesh, i, idx, nv)
			}
		}
		tris[i] = Triangle{V: [3]Vertex{verts[face[0]], verts[face[1]], verts[face[2]]}}
	}
	return tris, nil
}
