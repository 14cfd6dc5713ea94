// Package scad renders a CSG tree as an OpenSCAD scene description.
//
// Output is byte-stable: children are emitted in tree order, numbers use a
// fixed number of decimals with trailing zeros trimmed, and formatting does
// not depend on locale. One resolution directive ($fn) heads the file.
package scad

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/trayforge/pkg/csg"
)

const (
	// DefaultResolution is the $fn fragment count written in the header.
	DefaultResolution = 64

	// DefaultPrecision is the number of decimals numbers are rounded to.
	DefaultPrecision = 6
)

type options struct {
	resolution int
	precision  int
}

// Option configures Write.
type Option func(*options)

// WithResolution sets the $fn header value.
func WithResolution(fn int) Option {
	return func(o *options) { o.resolution = fn }
}

// WithPrecision sets the number of decimals numbers are rounded to.
func WithPrecision(digits int) Option {
	return func(o *options) { o.precision = digits }
}

// Write renders n to w.
func Write(w io.Writer, n csg.Node, opts ...Option) error {
	o := options{resolution: DefaultResolution, precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&o)
	}
	if o.resolution <= 0 {
		return fmt.Errorf("scad: resolution must be positive, got %d", o.resolution)
	}
	if o.precision < 0 {
		return fmt.Errorf("scad: precision must not be negative, got %d", o.precision)
	}
	if n == nil {
		return fmt.Errorf("scad: nil scene")
	}

	bw := bufio.NewWriter(w)
	p := &printer{w: bw, prec: o.precision}
	p.line(0, "$fn = "+strconv.Itoa(o.resolution)+";")
	p.line(0, "")
	if err := p.node(n, 0); err != nil {
		return err
	}
	if p.err != nil {
		return fmt.Errorf("scad: write: %w", p.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("scad: write: %w", err)
	}
	return nil
}

// Render returns the scene text for n.
func Render(n csg.Node, opts ...Option) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, n, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type printer struct {
	w    *bufio.Writer
	prec int
	err  error
}

func (p *printer) line(depth int, s string) {
	if p.err != nil {
		return
	}
	if _, err := p.w.WriteString(strings.Repeat("\t", depth)); err != nil {
		p.err = err
		return
	}
	if _, err := p.w.WriteString(s); err != nil {
		p.err = err
		return
	}
	p.err = p.w.WriteByte('\n')
}

func (p *printer) num(v float64) string {
	s := strconv.FormatFloat(v, 'f', p.prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

func (p *printer) vec(v csg.Vec3) string {
	return "[" + p.num(v.X) + ", " + p.num(v.Y) + ", " + p.num(v.Z) + "]"
}

// block writes "head {", the children one level deeper, and "}".
func (p *printer) block(head string, depth int, children ...csg.Node) error {
	p.line(depth, head+" {")
	for _, c := range children {
		if err := p.node(c, depth+1); err != nil {
			return err
		}
	}
	p.line(depth, "}")
	return nil
}

func (p *printer) node(n csg.Node, depth int) error {
	switch v := n.(type) {
	case csg.Box:
		p.line(depth, "cube(size = "+p.vec(v.Size)+");")
		return nil
	case csg.Sphere:
		p.line(depth, "sphere(r = "+p.num(v.Radius)+");")
		return nil
	case csg.Translate:
		return p.block("translate(v = "+p.vec(v.Offset)+")", depth, v.Child)
	case csg.Scale:
		return p.block("scale(v = "+p.vec(v.Factor)+")", depth, v.Child)
	case csg.Union:
		return p.block("union()", depth, v.Children...)
	case csg.Intersection:
		return p.block("intersection()", depth, v.Children...)
	case csg.Difference:
		return p.block("difference()", depth, csg.Children(v)...)
	case nil:
		return fmt.Errorf("scad: nil node")
	default:
		return fmt.Errorf("scad: unsupported node type %T", n)
	}
}
