//go:build manifold

package manifold

import (
	"math"
	"testing"

	"github.com/chazu/trayforge/pkg/kernel"
	"github.com/chazu/trayforge/pkg/volume"
)

func mustNew(t *testing.T) kernel.Kernel {
	t.Helper()
	k, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return k
}

func assertBounds(t *testing.T, s kernel.Solid, wantMin, wantMax [3]float64, tol float64) {
	t.Helper()
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > tol {
			t.Errorf("min[%d] = %f, want %f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > tol {
			t.Errorf("max[%d] = %f, want %f", i, max[i], wantMax[i])
		}
	}
}

func TestBox(t *testing.T) {
	k := mustNew(t)
	assertBounds(t, k.Box(10, 20, 30), [3]float64{0, 0, 0}, [3]float64{10, 20, 30}, 1e-6)
}

func TestSphere(t *testing.T) {
	k := mustNew(t)
	s := k.Sphere(5)
	min, max := s.BoundingBox()
	// The faceted sphere is inscribed in the true one.
	for i := 0; i < 3; i++ {
		if min[i] < -5.0001 || min[i] > -4.9 {
			t.Errorf("min[%d] = %f, want ~-5", i, min[i])
		}
		if max[i] > 5.0001 || max[i] < 4.9 {
			t.Errorf("max[%d] = %f, want ~5", i, max[i])
		}
	}
}

func TestScale(t *testing.T) {
	k := mustNew(t)
	s := k.Scale(k.Box(2, 2, 2), 1, 3, 0.5)
	assertBounds(t, s, [3]float64{0, 0, 0}, [3]float64{2, 6, 1}, 1e-6)
}

func TestTranslate(t *testing.T) {
	k := mustNew(t)
	moved := k.Translate(k.Box(10, 10, 10), 100, 200, 300)
	assertBounds(t, moved, [3]float64{100, 200, 300}, [3]float64{110, 210, 310}, 1e-6)
}

func TestDifference(t *testing.T) {
	k := mustNew(t)
	box := k.Box(10, 10, 10)
	hole := k.Translate(k.Sphere(3), 5, 5, 10)
	result := k.Difference(box, hole)
	assertBounds(t, result, [3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 1e-6)

	mesh, err := k.ToMesh(result)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if got := mesh.Volume(); got >= 1000 || got < 1000-volume.SphereVolume(3)/2-1 {
		t.Errorf("difference volume = %f, want just under 1000 minus a half ball", got)
	}
}

func TestToMesh(t *testing.T) {
	k := mustNew(t)
	mesh, err := k.ToMesh(k.Box(10, 10, 10))
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("ToMesh() returned empty mesh for a box")
	}
	if mesh.TriangleCount() < 12 {
		t.Errorf("triangle count = %d, want >= 12", mesh.TriangleCount())
	}
	if len(mesh.Normals) != len(mesh.Vertices) {
		t.Errorf("normals length = %d, vertices length = %d, want equal",
			len(mesh.Normals), len(mesh.Vertices))
	}
	if got := mesh.Volume(); math.Abs(got-1000) > 1e-3 {
		t.Errorf("box volume = %f, want 1000", got)
	}
}
