package csg

// Kind enumerates the node types of a CSG tree.
type Kind int

const (
	KindBox          Kind = iota // axis-aligned box, min corner at the origin
	KindSphere                   // sphere centred at the origin
	KindTranslate                // translation of one child
	KindScale                    // per-axis scale of one child
	KindUnion                    // union of children
	KindIntersection             // intersection of children
	KindDifference               // base minus subtrahends
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindSphere:
		return "sphere"
	case KindTranslate:
		return "translate"
	case KindScale:
		return "scale"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindDifference:
		return "difference"
	default:
		return "unknown"
	}
}

// Node is one element of a CSG tree. The unexported marker method keeps
// the set of implementations closed to this package.
type Node interface {
	Kind() Kind
	node()
}

// Vec3 is a triple of lengths or factors along X, Y, Z.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for Vec3{X: x, Y: y, Z: z}.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Mul returns the component-wise product of v and o.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// Box is a rectangular solid spanning [0,Size.X]×[0,Size.Y]×[0,Size.Z].
type Box struct {
	Size Vec3
}

func (Box) Kind() Kind { return KindBox }
func (Box) node()      {}

// Sphere is a sphere of the given radius centred at the origin.
type Sphere struct {
	Radius float64
}

func (Sphere) Kind() Kind { return KindSphere }
func (Sphere) node()      {}

// ---------------------------------------------------------------------------
// Transforms
// ---------------------------------------------------------------------------

// Translate moves Child by Offset.
type Translate struct {
	Offset Vec3
	Child  Node
}

func (Translate) Kind() Kind { return KindTranslate }
func (Translate) node()      {}

// Scale stretches Child by Factor along each axis, about the origin.
type Scale struct {
	Factor Vec3
	Child  Node
}

func (Scale) Kind() Kind { return KindScale }
func (Scale) node()      {}

// ---------------------------------------------------------------------------
// Booleans
// ---------------------------------------------------------------------------

// Union is the set union of Children.
type Union struct {
	Children []Node
}

func (Union) Kind() Kind { return KindUnion }
func (Union) node()      {}

// Intersection is the set intersection of Children.
type Intersection struct {
	Children []Node
}

func (Intersection) Kind() Kind { return KindIntersection }
func (Intersection) node()      {}

// Difference is Base with every subtrahend removed.
type Difference struct {
	Base        Node
	Subtrahends []Node
}

func (Difference) Kind() Kind { return KindDifference }
func (Difference) node()      {}
