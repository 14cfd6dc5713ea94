package kernel

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Triangles returns the mesh as sdfx triangles, one per index triple.
func (m *Mesh) Triangles() []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for t := 0; t+2 < len(m.Indices); t += 3 {
		var tri sdf.Triangle3
		for j := 0; j < 3; j++ {
			p := m.vertex(m.Indices[t+j])
			tri[j] = v3.Vec{X: p[0], Y: p[1], Z: p[2]}
		}
		out = append(out, &tri)
	}
	return out
}

// SaveSTL writes the mesh to path as binary STL.
func (m *Mesh) SaveSTL(path string) error {
	if err := render.SaveSTL(path, m.Triangles()); err != nil {
		return fmt.Errorf("stl: %w", err)
	}
	return nil
}
