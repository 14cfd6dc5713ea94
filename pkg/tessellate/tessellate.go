// Package tessellate evaluates a CSG tree with a geometry kernel and
// produces a triangle mesh. The tree is read-only; every node becomes one
// kernel call, n-ary booleans folding left to right.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/chazu/trayforge/pkg/csg"
	"github.com/chazu/trayforge/pkg/kernel"
)

var (
	// ErrEmptyBoolean is returned for a union or intersection without children.
	ErrEmptyBoolean = errors.New("boolean node has no children")
	// ErrDegenerate is returned for a box or sphere without volume.
	ErrDegenerate = errors.New("primitive has no volume")
	// ErrEmptySolid is returned when the tree encloses no space at all.
	ErrEmptySolid = errors.New("solid is empty")
)

// Tessellate converts n into a solid with k and meshes it. The mesh is
// labelled with name.
func Tessellate(n csg.Node, k kernel.Kernel, name string) (*kernel.Mesh, error) {
	if n == nil {
		return nil, errors.New("tessellate: nil tree")
	}
	if _, ok := csg.BoundingBox(n); !ok {
		return nil, fmt.Errorf("tessellate: %w", ErrEmptySolid)
	}
	solid, err := ToSolid(n, k)
	if err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}
	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed: %w", err)
	}
	mesh.Name = name
	return mesh, nil
}

// ToSolid converts n into a kernel solid without meshing it.
func ToSolid(n csg.Node, k kernel.Kernel) (kernel.Solid, error) {
	switch n := n.(type) {
	case csg.Box:
		if !(n.Size.X > 0 && n.Size.Y > 0 && n.Size.Z > 0) {
			return nil, fmt.Errorf("box [%g %g %g]: %w", n.Size.X, n.Size.Y, n.Size.Z, ErrDegenerate)
		}
		return k.Box(n.Size.X, n.Size.Y, n.Size.Z), nil

	case csg.Sphere:
		if !(n.Radius > 0) {
			return nil, fmt.Errorf("sphere r=%g: %w", n.Radius, ErrDegenerate)
		}
		return k.Sphere(n.Radius), nil

	case csg.Translate:
		child, err := ToSolid(n.Child, k)
		if err != nil {
			return nil, err
		}
		return k.Translate(child, n.Offset.X, n.Offset.Y, n.Offset.Z), nil

	case csg.Scale:
		child, err := ToSolid(n.Child, k)
		if err != nil {
			return nil, err
		}
		return k.Scale(child, n.Factor.X, n.Factor.Y, n.Factor.Z), nil

	case csg.Union:
		return fold(n.Kind(), n.Children, k, k.Union)

	case csg.Intersection:
		return fold(n.Kind(), n.Children, k, k.Intersection)

	case csg.Difference:
		base, err := ToSolid(n.Base, k)
		if err != nil {
			return nil, err
		}
		if len(n.Subtrahends) == 0 {
			return base, nil
		}
		cut, err := fold(csg.KindUnion, n.Subtrahends, k, k.Union)
		if err != nil {
			return nil, err
		}
		return k.Difference(base, cut), nil

	default:
		return nil, fmt.Errorf("unsupported node %T", n)
	}
}

func fold(kind csg.Kind, children []csg.Node, k kernel.Kernel, op func(a, b kernel.Solid) kernel.Solid) (kernel.Solid, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%s: %w", kind, ErrEmptyBoolean)
	}
	acc, err := ToSolid(children[0], k)
	if err != nil {
		return nil, err
	}
	for i, c := range children[1:] {
		s, err := ToSolid(c, k)
		if err != nil {
			return nil, fmt.Errorf("%s child %d: %w", kind, i+1, err)
		}
		acc = op(acc, s)
	}
	return acc, nil
}
