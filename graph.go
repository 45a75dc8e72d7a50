package tonic

import (
	"fmt"
	"reflect"
)

const (
	unvisited = iota
	visiting
	visited
)

// walk validates the graph reachable from root and returns its control
// nodes in topological order: every control comes after its inputs.
func walk(root Node) ([]Control, error) {
	if isNil(root) {
		return nil, ErrNilOutput
	}
	var (
		state    = make(map[Node]int)
		controls []Control
		visit    func(n Node) error
	)
	visit = func(n Node) error {
		switch state[n] {
		case visiting:
			return &GraphError{Node: fmt.Sprintf("%T", n), Err: ErrCycle}
		case visited:
			return nil
		}
		state[n] = visiting
		for _, in := range n.Inputs() {
			if isNil(in) {
				return &GraphError{Node: fmt.Sprintf("%T", n), Err: ErrNilInput}
			}
			if err := visit(in); err != nil {
				return err
			}
		}
		state[n] = visited
		if c, ok := n.(Control); ok {
			controls = append(controls, c)
		}
		return nil
	}
	if err := visit(root); err != nil {
		return nil, err
	}
	return controls, nil
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
