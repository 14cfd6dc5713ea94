package csg

// The constructors below copy their child slices so a caller cannot
// mutate a tree after handing its children over.

// NewBox returns a box of the given size with its min corner at the origin.
func NewBox(x, y, z float64) Box {
	return Box{Size: V3(x, y, z)}
}

// NewSphere returns a sphere of radius r centred at the origin.
func NewSphere(r float64) Sphere {
	return Sphere{Radius: r}
}

// Translated wraps child in a translation by (dx, dy, dz).
func Translated(child Node, dx, dy, dz float64) Translate {
	return Translate{Offset: V3(dx, dy, dz), Child: child}
}

// Scaled wraps child in a per-axis scale by (sx, sy, sz).
func Scaled(child Node, sx, sy, sz float64) Scale {
	return Scale{Factor: V3(sx, sy, sz), Child: child}
}

// NewUnion returns the union of children, in the given order.
func NewUnion(children ...Node) Union {
	return Union{Children: clone(children)}
}

// NewIntersection returns the intersection of children, in the given order.
func NewIntersection(children ...Node) Intersection {
	return Intersection{Children: clone(children)}
}

// NewDifference returns base with each subtrahend removed.
func NewDifference(base Node, subtrahends ...Node) Difference {
	return Difference{Base: base, Subtrahends: clone(subtrahends)}
}

func clone(ns []Node) []Node {
	if len(ns) == 0 {
		return nil
	}
	out := make([]Node, len(ns))
	copy(out, ns)
	return out
}
