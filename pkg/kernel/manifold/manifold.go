//go:build manifold

// Package manifold binds the Manifold mesh-boolean library
// (https://github.com/elalish/manifold) through its C API as an alternate
// kernel.Kernel. Booleans are exact on meshes, so spheres are faceted at
// the configured segment count rather than sampled like the sdfx kernel.
//
// Requires manifoldc installed under /usr/local. Build with -tags=manifold.
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/chazu/trayforge/pkg/kernel"
)

var _ kernel.Kernel = (*ManifoldKernel)(nil)
var _ kernel.Solid = (*manifoldSolid)(nil)

// DefaultSegments matches the $fn header the scad package emits.
const DefaultSegments = 64

type manifoldSolid struct {
	ptr *C.ManifoldManifold
}

func (s *manifoldSolid) BoundingBox() (min, max [3]float64) {
	bbox := C.manifold_bounding_box(C.manifold_alloc_box(), s.ptr)
	defer C.manifold_delete_box(bbox)

	min = [3]float64{
		float64(C.manifold_box_min_x(bbox)),
		float64(C.manifold_box_min_y(bbox)),
		float64(C.manifold_box_min_z(bbox)),
	}
	max = [3]float64{
		float64(C.manifold_box_max_x(bbox)),
		float64(C.manifold_box_max_y(bbox)),
		float64(C.manifold_box_max_z(bbox)),
	}
	return min, max
}

// own hands a freshly allocated manifold to the Go garbage collector.
func own(ptr *C.ManifoldManifold) *manifoldSolid {
	s := &manifoldSolid{ptr: ptr}
	runtime.SetFinalizer(s, func(s *manifoldSolid) {
		if s.ptr != nil {
			C.manifold_delete_manifold(s.ptr)
			s.ptr = nil
		}
	})
	return s
}

func ptrOf(s kernel.Solid) *C.ManifoldManifold {
	return s.(*manifoldSolid).ptr
}

// ManifoldKernel implements kernel.Kernel using the Manifold C library.
type ManifoldKernel struct {
	segments int
}

// New returns a ManifoldKernel faceting spheres at DefaultSegments.
func New() (kernel.Kernel, error) {
	return &ManifoldKernel{segments: DefaultSegments}, nil
}

// Box creates a box with its minimum corner at the origin, like cube().
func (k *ManifoldKernel) Box(x, y, z float64) kernel.Solid {
	ptr := C.manifold_cube(C.manifold_alloc_manifold(),
		C.double(x), C.double(y), C.double(z),
		C.int(0),
	)
	return own(ptr)
}

// Sphere creates a faceted sphere centred at the origin.
func (k *ManifoldKernel) Sphere(radius float64) kernel.Solid {
	ptr := C.manifold_sphere(C.manifold_alloc_manifold(),
		C.double(radius), C.int(k.segments))
	return own(ptr)
}

func (k *ManifoldKernel) Union(a, b kernel.Solid) kernel.Solid {
	return own(C.manifold_union(C.manifold_alloc_manifold(), ptrOf(a), ptrOf(b)))
}

func (k *ManifoldKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return own(C.manifold_difference(C.manifold_alloc_manifold(), ptrOf(a), ptrOf(b)))
}

func (k *ManifoldKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return own(C.manifold_intersection(C.manifold_alloc_manifold(), ptrOf(a), ptrOf(b)))
}

func (k *ManifoldKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	ptr := C.manifold_translate(C.manifold_alloc_manifold(), ptrOf(s),
		C.double(x), C.double(y), C.double(z))
	return own(ptr)
}

func (k *ManifoldKernel) Scale(s kernel.Solid, x, y, z float64) kernel.Solid {
	ptr := C.manifold_scale(C.manifold_alloc_manifold(), ptrOf(s),
		C.double(x), C.double(y), C.double(z))
	return own(ptr)
}

// ToMesh copies the solid's MeshGL into a kernel.Mesh. MeshGL interleaves
// numProp floats per vertex, position first and normal next when present.
func (k *ManifoldKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	meshGL := C.manifold_get_meshgl(C.manifold_alloc_meshgl(), ptrOf(s))
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))
	if numVert == 0 || numTri == 0 {
		return &kernel.Mesh{}, nil
	}
	numProp := int(C.manifold_meshgl_num_prop(meshGL))

	props := make([]float32, numVert*numProp)
	C.manifold_meshgl_vert_properties((*C.float)(unsafe.Pointer(&props[0])), meshGL)

	indices := make([]uint32, numTri*3)
	C.manifold_meshgl_tri_verts((*C.uint32_t)(unsafe.Pointer(&indices[0])), meshGL)

	vertices := make([]float32, numVert*3)
	for i := 0; i < numVert; i++ {
		copy(vertices[i*3:i*3+3], props[i*numProp:i*numProp+3])
	}

	var normals []float32
	if numProp >= 6 {
		normals = make([]float32, numVert*3)
		for i := 0; i < numVert; i++ {
			copy(normals[i*3:i*3+3], props[i*numProp+3:i*numProp+6])
		}
	} else {
		normals = vertexNormals(vertices, indices)
	}

	mesh := &kernel.Mesh{Vertices: vertices, Normals: normals, Indices: indices}
	if mesh.VertexCount() != numVert {
		return nil, fmt.Errorf("manifold: vertex count mismatch: got %d, expected %d",
			mesh.VertexCount(), numVert)
	}
	return mesh, nil
}

// vertexNormals averages the area-weighted face normals around each vertex.
func vertexNormals(vertices []float32, indices []uint32) []float32 {
	acc := make([]float64, len(vertices))
	for t := 0; t+2 < len(indices); t += 3 {
		tri := [3]uint32{indices[t], indices[t+1], indices[t+2]}
		var p [3][3]float64
		for j, idx := range tri {
			for c := 0; c < 3; c++ {
				p[j][c] = float64(vertices[idx*3+uint32(c)])
			}
		}
		e1 := [3]float64{p[1][0] - p[0][0], p[1][1] - p[0][1], p[1][2] - p[0][2]}
		e2 := [3]float64{p[2][0] - p[0][0], p[2][1] - p[0][1], p[2][2] - p[0][2]}
		n := [3]float64{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		for _, idx := range tri {
			for c := 0; c < 3; c++ {
				acc[idx*3+uint32(c)] += n[c]
			}
		}
	}

	normals := make([]float32, len(vertices))
	for i := 0; i+2 < len(acc); i += 3 {
		l := math.Sqrt(acc[i]*acc[i] + acc[i+1]*acc[i+1] + acc[i+2]*acc[i+2])
		if l < 1e-12 {
			continue
		}
		for c := 0; c < 3; c++ {
			normals[i+c] = float32(acc[i+c] / l)
		}
	}
	return normals
}
