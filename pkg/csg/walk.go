package csg

import (
	"fmt"
	"math"
)

// Children returns the direct children of n in document order.
func Children(n Node) []Node {
	switch v := n.(type) {
	case Box, Sphere:
		return nil
	case Translate:
		return []Node{v.Child}
	case Scale:
		return []Node{v.Child}
	case Union:
		return v.Children
	case Intersection:
		return v.Children
	case Difference:
		out := make([]Node, 0, 1+len(v.Subtrahends))
		out = append(out, v.Base)
		return append(out, v.Subtrahends...)
	default:
		panic(fmt.Sprintf("csg: unknown node type %T", n))
	}
}

// Walk visits n and its descendants in pre-order. fn receives each node
// and its depth below n; returning false skips that node's children.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range Children(n) {
		walk(c, depth+1, fn)
	}
}

// Count returns the number of nodes of each kind in the tree rooted at n.
func Count(n Node) map[Kind]int {
	counts := make(map[Kind]int)
	Walk(n, func(n Node, _ int) bool {
		counts[n.Kind()]++
		return true
	})
	return counts
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec3
}

// Size returns the extent of b along each axis.
func (b Bounds) Size() Vec3 {
	return Vec3{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z}
}

// BoundingBox returns a conservative bounding box of n. The second result
// is false when the solid is provably empty, e.g. an intersection of
// disjoint boxes or an empty union.
func BoundingBox(n Node) (Bounds, bool) {
	switch v := n.(type) {
	case Box:
		return Bounds{Max: v.Size}, true
	case Sphere:
		r := v.Radius
		return Bounds{Min: V3(-r, -r, -r), Max: V3(r, r, r)}, true
	case Translate:
		b, ok := BoundingBox(v.Child)
		if !ok {
			return Bounds{}, false
		}
		return Bounds{Min: b.Min.Add(v.Offset), Max: b.Max.Add(v.Offset)}, true
	case Scale:
		b, ok := BoundingBox(v.Child)
		if !ok {
			return Bounds{}, false
		}
		p, q := b.Min.Mul(v.Factor), b.Max.Mul(v.Factor)
		return Bounds{
			Min: V3(math.Min(p.X, q.X), math.Min(p.Y, q.Y), math.Min(p.Z, q.Z)),
			Max: V3(math.Max(p.X, q.X), math.Max(p.Y, q.Y), math.Max(p.Z, q.Z)),
		}, true
	case Union:
		var out Bounds
		found := false
		for _, c := range v.Children {
			b, ok := BoundingBox(c)
			if !ok {
				continue
			}
			if !found {
				out, found = b, true
				continue
			}
			out.Min = V3(math.Min(out.Min.X, b.Min.X), math.Min(out.Min.Y, b.Min.Y), math.Min(out.Min.Z, b.Min.Z))
			out.Max = V3(math.Max(out.Max.X, b.Max.X), math.Max(out.Max.Y, b.Max.Y), math.Max(out.Max.Z, b.Max.Z))
		}
		return out, found
	case Intersection:
		if len(v.Children) == 0 {
			return Bounds{}, false
		}
		out, ok := BoundingBox(v.Children[0])
		if !ok {
			return Bounds{}, false
		}
		for _, c := range v.Children[1:] {
			b, ok := BoundingBox(c)
			if !ok {
				return Bounds{}, false
			}
			out.Min = V3(math.Max(out.Min.X, b.Min.X), math.Max(out.Min.Y, b.Min.Y), math.Max(out.Min.Z, b.Min.Z))
			out.Max = V3(math.Min(out.Max.X, b.Max.X), math.Min(out.Max.Y, b.Max.Y), math.Min(out.Max.Z, b.Max.Z))
			if out.Min.X > out.Max.X || out.Min.Y > out.Max.Y || out.Min.Z > out.Max.Z {
				return Bounds{}, false
			}
		}
		return out, true
	case Difference:
		return BoundingBox(v.Base)
	default:
		panic(fmt.Sprintf("csg: unknown node type %T", n))
	}
}
