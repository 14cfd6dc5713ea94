package tray

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Namespace is the UUID namespace tray IDs are derived in.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/chazu/trayforge/tray"))

// ID returns a stable identifier for the tray described by p. Two Params
// with the same dimensions always share an ID, so it can key cached
// output.
func ID(p Params) uuid.UUID {
	return uuid.NewSHA1(Namespace, []byte(canonical(p)))
}

func canonical(p Params) string {
	join := func(vs []float64) string {
		parts := make([]string, len(vs))
		for i, v := range vs {
			parts[i] = formatFloat(v)
		}
		return strings.Join(parts, ",")
	}
	return strings.Join([]string{
		join(p.Widths),
		join(p.Heights),
		formatFloat(p.Floor),
		formatFloat(p.Wall),
		formatFloat(p.Depth),
		formatFloat(p.RoundDepth),
		formatFloat(p.RoundMargin),
	}, "|")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FileStem returns the default output name for p, built from the integer
// part of every width and height: tray_40x25x70_by_30x100x60x60.
func FileStem(p Params) string {
	ints := func(vs []float64) string {
		parts := make([]string, len(vs))
		for i, v := range vs {
			parts[i] = strconv.Itoa(int(v))
		}
		return strings.Join(parts, "x")
	}
	return "tray_" + ints(p.Widths) + "_by_" + ints(p.Heights)
}
