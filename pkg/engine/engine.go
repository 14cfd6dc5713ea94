// Package engine evaluates tray scripts: small zygomys Lisp programs that
// describe one tray with a (tray ...) form. Scripts run in a fresh sandbox
// per evaluation, so they can compute dimensions but cannot touch the
// filesystem.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/trayforge/pkg/tray"
)

// EvalError is a non-fatal problem in user code: a parse error, a runtime
// error, or a script that defines no tray.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// MsgNoTray is the EvalError message for a script without a (tray ...) form.
const MsgNoTray = "script does not define a tray"

// Engine evaluates tray scripts. It is safe for concurrent use; a newer
// Evaluate call supersedes any still in flight.
type Engine struct {
	// Timeout bounds a single evaluation. Zero means EvalTimeout.
	Timeout time.Duration

	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs source and returns the tray parameters it defines,
// converted to millimeters. The parameters are not validated.
//
// Return semantics:
//   - On success: returns params + nil errors + nil error
//   - On parse/eval failure or no tray: returns nil + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*tray.Params, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = EvalTimeout
	}

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		p, evalErrs, err := evaluate(source)
		ch <- evalResult{params: p, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation, timeout)
}

func evaluate(source string) (*tray.Params, []EvalError, error) {
	if strings.TrimSpace(source) == "" {
		return nil, []EvalError{{Message: MsgNoTray}}, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()

	var c capture
	registerBuiltins(env, &c)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if !c.defined {
		return nil, []EvalError{{Message: MsgNoTray}}, nil
	}
	return c.params, nil, nil
}

// linePattern matches zygomys messages of the form "Error on line N: ...".
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches "line N: ...".
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalErrors, pulling out
// the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
