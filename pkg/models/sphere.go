package models

import (
	"fmt"
	"math"

	"github.com/taigrr/celestial/pkg/math3d"
)

// MinSphereSegments is the coarsest tessellation NewUVSphere accepts.
const MinSphereSegments = 3

// NewUVSphere generates a unit sphere with lat rings and lon segments.
// Vertex normals equal positions. Each grid cell becomes two triangles
// (i0, i2, i1) and (i1, i2, i3), where i2 and i3 lie on the next ring.
// Counts below MinSphereSegments are raised to it.
func NewUVSphere(lat, lon int) *Mesh {
	lat = max(lat, MinSphereSegments)
	lon = max(lon, MinSphereSegments)

	m := NewMesh(fmt.Sprintf("uv-sphere-%dx%d", lat, lon))
	m.Vertices = make([]MeshVertex, 0, (lat+1)*(lon+1))
	m.Faces = make([]Face, 0, lat*lon*2)

	for y := 0; y <= lat; y++ {
		v := float64(y) / float64(lat)
		theta := v * math.Pi
		for x := 0; x <= lon; x++ {
			u := float64(x) / float64(lon)
			phi := u * 2 * math.Pi
			p := math3d.V3(
				math.Sin(phi)*math.Sin(theta),
				math.Cos(theta),
				math.Cos(phi)*math.Sin(theta),
			)
			m.Vertices = append(m.Vertices, MeshVertex{Position: p, Normal: p})
		}
	}

	for y := range lat {
		for x := range lon {
			i0 := y*(lon+1) + x
			i1 := i0 + 1
			i2 := i0 + lon + 1
			i3 := i2 + 1
			m.Faces = append(m.Faces,
				Face{V: [3]int{i0, i2, i1}},
				Face{V: [3]int{i1, i2, i3}},
			)
		}
	}

	m.CalculateBounds()
	return m
}
