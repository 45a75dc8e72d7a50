package tonic

import (
	"errors"
	"fmt"
)

var (
	// ErrNilOutput is returned when nil generator is set as synth output.
	ErrNilOutput = errors.New("nil output generator")
	// ErrNilInput is returned when a graph node has nil input.
	ErrNilInput = errors.New("nil input")
	// ErrCycle is returned when a node is reachable from itself.
	ErrCycle = errors.New("cycle in graph")
	// ErrUnknownParameter is returned when parameter is not registered.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrInvalidBounds is returned when parameter min is greater than max
	// or bounds are not finite.
	ErrInvalidBounds = errors.New("invalid parameter bounds")
	// ErrInvalidValue is returned when NaN is set to parameter.
	ErrInvalidValue = errors.New("invalid parameter value")
	// ErrQueueFull is returned when render goroutine didn't consume
	// previous mutations yet.
	ErrQueueFull = errors.New("mutation queue is full")
)

// GraphError is returned when graph validation fails. Node is the type of
// the offending node.
type GraphError struct {
	Node string
	Err  error
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("%s: %v", e.Node, e.Err)
}

// Is checks if underlying error matches provided sentinel error.
func (e *GraphError) Is(err error) bool {
	return errors.Is(e.Err, err)
}

// Unwrap returns underlying error.
func (e *GraphError) Unwrap() error {
	return e.Err
}

// multiError wraps errors that might occur when multiple parameters are
// invalid.
type multiError []error

func (e multiError) Error() string {
	s := ""
	for i, se := range e {
		if i > 0 {
			s += ","
		}
		s += se.Error()
	}
	return s
}

// Is checks if any of errors match provided sentinel error.
func (e multiError) Is(err error) bool {
	for _, se := range e {
		if errors.Is(se, err) {
			return true
		}
	}
	return false
}

// ret returns untyped nil if error is list is empty.
func (e multiError) ret() error {
	if len(e) > 0 {
		return e
	}
	return nil
}
