package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/trayforge/pkg/tray"
	"github.com/chazu/trayforge/pkg/units"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix marks keyword names rewritten by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites tray script source into something zygomys
// accepts:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords never
//     collide with user variables.
//  2. round-margin becomes round_margin; zygomys reads a bare hyphen as
//     subtraction.
//  3. ; comments become // comments.
//
// String literals (double-quoted and backtick) pass through untouched.
func preprocessSource(source string) string {
	b := []byte(source)
	out := make([]byte, 0, len(b)+len(b)/4)

	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"':
			j := i + 1
			for j < len(b) && b[j] != '"' {
				if b[j] == '\\' && j+1 < len(b) {
					j++
				}
				j++
			}
			if j < len(b) {
				j++
			}
			out = append(out, b[i:j]...)
			i = j

		case c == '`':
			j := i + 1
			for j < len(b) && b[j] != '`' {
				j++
			}
			if j < len(b) {
				j++
			}
			out = append(out, b[i:j]...)
			i = j

		case c == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}

		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2

		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
			i++

		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isIdentChar(c) || c == '-'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Keyword arguments and value extraction
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

// parseArgs splits args into keyword and positional arguments. A trailing
// keyword with no value maps to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	pa := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			pa.positional = append(pa.positional, args[i])
			continue
		}
		var v zygo.Sexp = zygo.SexpNull
		if i+1 < len(args) {
			v = args[i+1]
			i++
		}
		if _, dup := pa.kw[name]; !dup {
			pa.order = append(pa.order, name)
		}
		pa.kw[name] = v
	}
	return pa
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString accepts either a keyword (:in) or a plain string ("in").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// sexpListToSlice accepts a list, an array, or nil.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

func toFloats(s zygo.Sexp) ([]float64, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat64(item)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtins
// ---------------------------------------------------------------------------

// sexpTray is the value of a (tray ...) form.
type sexpTray struct {
	params tray.Params
}

func (t *sexpTray) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(tray %vx%v)", t.params.Widths, t.params.Heights)
}
func (t *sexpTray) Type() *zygo.RegisteredType { return nil }

// capture receives the single tray a script defines.
type capture struct {
	params  *tray.Params
	defined bool
}

// scalarFields maps the scalar tray keywords onto Params fields.
var scalarFields = map[string]func(*tray.Params) *float64{
	"wall":         func(p *tray.Params) *float64 { return &p.Wall },
	"floor":        func(p *tray.Params) *float64 { return &p.Floor },
	"depth":        func(p *tray.Params) *float64 { return &p.Depth },
	"round":        func(p *tray.Params) *float64 { return &p.RoundDepth },
	"round-margin": func(p *tray.Params) *float64 { return &p.RoundMargin },
}

// parseTray builds Params from the arguments of a (tray ...) form.
// Unspecified scalars take the defaults, expressed in the form's units.
func parseTray(args []zygo.Sexp) (tray.Params, error) {
	pa := parseArgs(args)
	if len(pa.positional) > 0 {
		return tray.Params{}, fmt.Errorf("tray: unexpected positional argument %s", pa.positional[0].SexpString(nil))
	}

	unit := units.Millimeters
	if v, ok := pa.kw["units"]; ok {
		name, err := toKeywordString(v)
		if err != nil {
			return tray.Params{}, fmt.Errorf("tray: units: %w", err)
		}
		if unit, err = units.ParseLength(name); err != nil {
			return tray.Params{}, fmt.Errorf("tray: units: %w", err)
		}
	}

	p := tray.DefaultParams()
	for _, f := range scalarFields {
		*f(&p) /= unit.Scale()
	}

	for _, name := range pa.order {
		v := pa.kw[name]
		switch name {
		case "units":
		case "widths", "heights":
			fs, err := toFloats(v)
			if err != nil {
				return tray.Params{}, fmt.Errorf("tray: %s: %w", name, err)
			}
			if name == "widths" {
				p.Widths = fs
			} else {
				p.Heights = fs
			}
		default:
			field, ok := scalarFields[name]
			if !ok {
				return tray.Params{}, fmt.Errorf("tray: unknown keyword :%s", name)
			}
			f, err := toFloat64(v)
			if err != nil {
				return tray.Params{}, fmt.Errorf("tray: %s: %w", name, err)
			}
			*field(&p) = f
		}
	}
	return p.InUnits(unit), nil
}

// registerBuiltins installs the tray script builtins into env. Source must
// go through preprocessSource first so keywords are recognizable.
func registerBuiltins(env *zygo.Zlisp, c *capture) {

	// (tray :widths [40 25 70] :heights [30 100 60 60] :wall 1.5
	//       :floor 1.8 :depth 32 :round 12 :round-margin 0 :units :mm)
	env.AddFunction("tray", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if c.defined {
			return zygo.SexpNull, fmt.Errorf("tray: a script may define only one tray")
		}
		p, err := parseTray(args)
		if err != nil {
			return zygo.SexpNull, err
		}
		c.params = &p
		c.defined = true
		return &sexpTray{params: p}, nil
	})

	// (inches 1.5) => 38.1
	env.AddFunction("inches", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("inches requires exactly 1 argument, got %d", len(args))
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("inches: %w", err)
		}
		return &zygo.SexpFloat{Val: units.Inches.ToMM(f)}, nil
	})
}
