// Package models provides the meshes rendered as celestial bodies: a
// generated UV sphere and loaders for OBJ and GLB/GLTF files.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/celestial/pkg/math3d"
)

// ErrEmptyMesh is returned when a model contains no usable triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// Mesh represents an indexed triangle mesh.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face represents a triangle face.
type Face struct {
	V [3]int // Indices into Mesh.Vertices
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Radius returns the largest distance from c to any vertex.
func (m *Mesh) Radius(c math3d.Vec3) float64 {
	var r float64
	for _, v := range m.Vertices {
		r = max(r, v.Position.Sub(c).Len())
	}
	return r
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetVertex returns the position and normal for vertex i.
// Implements render.MeshSource.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3) {
	v := m.Vertices[i]
	return v.Position, v.Normal
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshSource.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// HasNormals reports whether any vertex carries a non-zero normal.
func (m *Mesh) HasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.Len() > 0.001 {
			return true
		}
	}
	return false
}

// CalculateSmoothNormals computes area-weighted averaged normals. The
// result does not depend on face winding within a consistently wound mesh.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0)) // Not normalized: larger faces weigh more

		for _, idx := range f.V {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// NormalsFromPositions sets every normal to the normalized vertex position
// relative to the bounding box center. This is exact for spheres and a good
// approximation for round bodies.
func (m *Mesh) NormalsFromPositions() {
	m.CalculateBounds()
	c := m.Center()
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Position.Sub(c).Normalize()
	}
}

// Transform applies a transformation matrix to all vertices. Normals use
// the rotation part only, so the matrix must not scale non-uniformly.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it to unit radius.
func (m *Mesh) Fit() {
	m.CalculateBounds()
	center := m.Center()
	radius := m.Radius(center)
	if radius == 0 {
		return
	}
	m.Transform(math3d.ScaleUniform(1 / radius).Mul(math3d.Translate(center.Scale(-1))))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// Validate checks that the mesh has faces and every face index is in range.
func (m *Mesh) Validate() error {
	if len(m.Faces) == 0 {
		return ErrEmptyMesh
	}
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("face %d: index %d out of range [0,%d)", i, idx, len(m.Vertices))
			}
		}
	}
	return nil
}
