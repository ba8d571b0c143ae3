package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/celestial/pkg/math3d"
)

// objKey identifies a unique (position, normal) pair referenced by a face.
type objKey struct {
	pos, normal int
}

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ reads OBJ geometry from r. Only v, vn and f statements are used;
// texture coordinates, groups and materials are skipped. Polygons are fan
// triangulated and negative (relative) indices are resolved. When the file
// has no normals, smooth normals are computed from the faces.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	var (
		positions []math3d.Vec3
		normals   []math3d.Vec3
		mesh      = NewMesh(name)
		seen      = make(map[objKey]int)
		hasNormal bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, v)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n.Normalize())

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", lineNo, len(fields)-1)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				key, err := parseFaceRef(ref, len(positions), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx, ok := seen[key]
				if !ok {
					v := MeshVertex{Position: positions[key.pos]}
					if key.normal >= 0 {
						v.Normal = normals[key.normal]
						hasNormal = true
					}
					idx = len(mesh.Vertices)
					mesh.Vertices = append(mesh.Vertices, v)
					seen[key] = idx
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.Faces = append(mesh.Faces, Face{V: [3]int{corners[0], corners[i], corners[i+1]}})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	if len(mesh.Faces) == 0 {
		return nil, ErrEmptyMesh
	}

	if !hasNormal {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("need 3 components, got %d", len(fields))
	}
	var c [3]float64
	for i := range 3 {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, err
		}
		c[i] = f
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// parseFaceRef parses one face corner: v, v/t, v//n or v/t/n. The returned
// indices are zero-based; normal is -1 when absent.
func parseFaceRef(ref string, nPos, nNorm int) (objKey, error) {
	parts := strings.Split(ref, "/")
	pos, err := resolveIndex(parts[0], nPos)
	if err != nil {
		return objKey{}, fmt.Errorf("face vertex %q: %w", ref, err)
	}
	key := objKey{pos: pos, normal: -1}
	if len(parts) == 3 && parts[2] != "" {
		n, err := resolveIndex(parts[2], nNorm)
		if err != nil {
			return objKey{}, fmt.Errorf("face normal %q: %w", ref, err)
		}
		key.normal = n
	}
	return key, nil
}

// resolveIndex converts a 1-based or negative OBJ index to a 0-based one.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, fmt.Errorf("index 0 is invalid")
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index out of range (have %d)", count)
	}
	return i, nil
}
