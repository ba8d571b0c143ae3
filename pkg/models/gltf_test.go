package models

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// tetraDocument builds a GLTF document holding one tetrahedron.
func tetraDocument(withNormals bool) *gltf.Document {
	doc := gltf.NewDocument()
	positions := [][3]float32{{0, 1, 0}, {-1, -1, 1}, {1, -1, 1}, {0, -1, -1}}
	attrs := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, positions),
	}
	if withNormals {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{{0, 2, 0}, {-1, -1, 1}, {1, -1, 1}, {0, -1, -1}})
	}
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3, 0, 3, 1, 1, 3, 2})

	doc.Meshes = []*gltf.Mesh{{
		Name: "tetra",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: attrs,
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "root", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
}

func TestGLTFFromDocument(t *testing.T) {
	tests := []struct {
		name        string
		withNormals bool
	}{
		{"with normals", true},
		{"computed normals", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mesh, err := NewGLTFLoader().FromDocument(tetraDocument(tc.withNormals), "tetra.glb")
			if err != nil {
				t.Fatalf("FromDocument: %v", err)
			}
			if mesh.VertexCount() != 4 || mesh.TriangleCount() != 4 {
				t.Fatalf("got %d vertices, %d triangles; want 4, 4", mesh.VertexCount(), mesh.TriangleCount())
			}
			if err := mesh.Validate(); err != nil {
				t.Fatal(err)
			}
			for i, v := range mesh.Vertices {
				if l := v.Normal.Len(); l < 0.999 || l > 1.001 {
					t.Errorf("vertex %d normal length %v, want 1", i, l)
				}
			}
			if got := mesh.GetFace(1); got != [3]int{0, 2, 3} {
				t.Errorf("face 1 = %v, want [0 2 3]", got)
			}
		})
	}
}

func TestGLTFFromDocumentEmpty(t *testing.T) {
	_, err := NewGLTFLoader().FromDocument(gltf.NewDocument(), "empty.glb")
	if !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("err = %v, want ErrEmptyMesh", err)
	}
}

func TestLoadGLBRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.glb")
	if err := gltf.SaveBinary(tetraDocument(true), path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}

	mesh, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}
	if mesh.Name != "tetra.glb" {
		t.Errorf("Name = %q", mesh.Name)
	}
	if mesh.TriangleCount() != 4 {
		t.Errorf("TriangleCount = %d, want 4", mesh.TriangleCount())
	}
	if mesh.BoundsMin.Y != -1 || mesh.BoundsMax.Y != 1 {
		t.Errorf("bounds = %v..%v", mesh.BoundsMin, mesh.BoundsMax)
	}
}
