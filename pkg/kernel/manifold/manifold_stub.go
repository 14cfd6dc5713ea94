//go:build !manifold

// Package manifold binds the Manifold mesh-boolean library as an alternate
// kernel.Kernel. Without the "manifold" build tag New always fails.
package manifold

import (
	"errors"

	"github.com/chazu/trayforge/pkg/kernel"
)

// ErrUnavailable is returned by New when built without -tags=manifold.
var ErrUnavailable = errors.New("manifold kernel not available: build with -tags=manifold")

// New returns ErrUnavailable.
func New() (kernel.Kernel, error) {
	return nil, ErrUnavailable
}
