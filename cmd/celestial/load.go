package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/celestial/internal/config"
	"github.com/taigrr/celestial/pkg/models"
	"github.com/taigrr/celestial/pkg/render"
)

// loadMesh loads the model at path, or generates the configured UV sphere
// when path is empty. Loaded models are centered and scaled to unit radius
// so the default camera frames them like the sphere.
func loadMesh(path string, cfg config.Config) (*models.Mesh, error) {
	var (
		mesh *models.Mesh
		err  error
	)

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case path == "":
		mesh = models.NewUVSphere(cfg.Sphere.Lat, cfg.Sphere.Lon)
	case ext == ".obj":
		mesh, err = models.LoadOBJ(path)
	case ext == ".glb" || ext == ".gltf":
		mesh, err = models.LoadGLB(path)
	default:
		return nil, fmt.Errorf("unsupported format: %q (use .obj, .glb or .gltf)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	if path != "" {
		mesh.Fit()
	}
	if cfg.Sphere.Normals {
		mesh.NormalsFromPositions()
	}

	render.Logger().Info("model loaded",
		"name", mesh.Name,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount())
	return mesh, nil
}
