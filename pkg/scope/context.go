// Package scope holds the variable store a template is evaluated against: a
// stack of scope frames over a closed union of value kinds. Blocks push a
// frame on entry and pop it on exit; lookups walk the stack from the
// innermost frame outward, so inner definitions shadow outer ones.
package scope

import "github.com/google/uuid"

// Context is the variable store for one evaluation session. The base frame
// is created with the context and can never be popped. A Context is not
// safe for concurrent use; evaluation owns it for the session's lifetime.
type Context struct {
	id     string
	frames []map[string]Variable
}

// NewContext returns a context holding only the base scope.
func NewContext() *Context {
	return &Context{
		id:     uuid.NewString(),
		frames: []map[string]Variable{make(map[string]Variable)},
	}
}

// SessionID identifies this evaluation session in logs and diagnostics.
func (c *Context) SessionID() string {
	return c.id
}

// Push enters a new innermost scope.
func (c *Context) Push() {
	c.frames = append(c.frames, make(map[string]Variable))
}

// Pop leaves the innermost scope, discarding its variables. Popping the
// base scope fails with ErrScopeUnderflow.
func (c *Context) Pop() error {
	if len(c.frames) == 1 {
		return ErrScopeUnderflow
	}
	c.frames = c.frames[:len(c.frames)-1]
	return nil
}

// Add binds key to value in the innermost scope, overwriting any existing
// binding there. Outer bindings of the same key are left alone and become
// shadowed. Invalid variables are rejected with an UnsupportedKindError.
func (c *Context) Add(key string, value Variable) error {
	if value.Kind() == KindInvalid {
		return &UnsupportedKindError{Key: key}
	}
	c.frames[len(c.frames)-1][key] = value
	return nil
}

// Lookup resolves key against the scope stack, innermost frame first.
func (c *Context) Lookup(key string) (Variable, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if value, ok := c.frames[i][key]; ok {
			return value, true
		}
	}
	return Variable{}, false
}

// Depth returns the number of active frames, the base scope included.
func (c *Context) Depth() int {
	return len(c.frames)
}
