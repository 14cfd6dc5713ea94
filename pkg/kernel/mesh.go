package kernel

import "math"

// Mesh is a triangle mesh suitable for rendering or export.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

func (m *Mesh) vertex(i uint32) [3]float64 {
	return [3]float64{
		float64(m.Vertices[i*3]),
		float64(m.Vertices[i*3+1]),
		float64(m.Vertices[i*3+2]),
	}
}

// Volume returns the enclosed volume of a closed, consistently wound mesh
// as the sum of signed tetrahedra against the origin.
func (m *Mesh) Volume() float64 {
	var sum float64
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a := m.vertex(m.Indices[t])
		b := m.vertex(m.Indices[t+1])
		c := m.vertex(m.Indices[t+2])
		// a · (b × c)
		sum += a[0]*(b[1]*c[2]-b[2]*c[1]) +
			a[1]*(b[2]*c[0]-b[0]*c[2]) +
			a[2]*(b[0]*c[1]-b[1]*c[0])
	}
	return math.Abs(sum) / 6
}
