package kernel

import (
	"os"
	"path/filepath"

	"github.com/deadsy/sdfx/render"

	"github.com/matzehuels/keyforge/pkg/errors"
)

// DefaultMeshCells is the marching-cubes resolution along the longest axis.
const DefaultMeshCells = 200

// WriteSTL meshes s and writes a binary STL file to path.
func WriteSTL(path string, s Solid, cells int) error {
	if s.IsEmpty() {
		return errors.New(errors.ErrCodeGeometry, "cannot mesh an empty solid")
	}
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory")
		}
	}
	render.ToSTL(s.sdf, path, render.NewMarchingCubesOctree(cells))
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeGeometry, err, "mesh %s was not written", path)
	}
	if info.Size() <= 84 {
		return errors.New(errors.ErrCodeGeometry, "mesh %s has no triangles", path)
	}
	return nil
}

// STL meshes s and returns the binary STL bytes.
func STL(s Solid, cells int) ([]byte, error) {
	dir, err := os.MkdirTemp("", "keyforge-stl-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create temp dir")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "mesh.stl")
	if err := WriteSTL(path, s, cells); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read mesh")
	}
	return data, nil
}
