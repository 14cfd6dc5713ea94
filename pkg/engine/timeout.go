package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/trayforge/pkg/tray"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

type evalResult struct {
	params *tray.Params
	errors []EvalError
	err    error
}

// waitWithTimeout waits up to timeout for a result on ch. A result whose
// generation is no longer current is discarded; the goroutine behind a
// timed-out evaluation keeps running until zygomys returns.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	timeout time.Duration,
) (*tray.Params, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.params, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", timeout)
	}
}
