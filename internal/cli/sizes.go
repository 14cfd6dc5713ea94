package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errSizesUsage = errors.New("bin sizes must be two bracketed lists, e.g. [10,20,30] [35,45,55]")

// parseSizes reads the widths and heights lists from the command line.
// The shell may split a list on spaces, so all arguments are joined first;
// "][" without a separator is accepted.
func parseSizes(args []string) (widths, heights []float64, err error) {
	s := strings.Join(args, "")
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, "][", "],[")

	var lists [][]float64
	for len(s) > 0 {
		if s[0] != '[' {
			return nil, nil, errSizesUsage
		}
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, nil, errSizesUsage
		}
		vs, err := parseList(s[1:end])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", errSizesUsage, err)
		}
		lists = append(lists, vs)
		s = strings.TrimPrefix(s[end+1:], ",")
	}
	if len(lists) != 2 {
		return nil, nil, errSizesUsage
	}
	return lists[0], lists[1], nil
}

func parseList(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %q is not a number", i, p)
		}
		out[i] = v
	}
	return out, nil
}
