package hyperjade

import "fmt"

// RootCountError reports a template whose top level is not exactly one tag
// (plus any number of mixin declarations).
type RootCountError struct {
	Tags  int
	Stray string // kind of a disallowed top-level node, if one was found
}

func (e *RootCountError) Error() string {
	if e.Stray != "" {
		return fmt.Sprintf("template root must be a single tag: unexpected top-level %s node", e.Stray)
	}
	return fmt.Sprintf("template root must be a single tag, found %d", e.Tags)
}

// DuplicateMixinError reports a mixin name declared more than once in one
// compile unit.
type DuplicateMixinError struct {
	Name string
}

func (e *DuplicateMixinError) Error() string {
	return fmt.Sprintf("mixin %q declared more than once", e.Name)
}

// UnknownMixinError reports a call to a mixin with no declaration anywhere
// in the tree.
type UnknownMixinError struct {
	Name string
}

func (e *UnknownMixinError) Error() string {
	return fmt.Sprintf("call to undeclared mixin %q", e.Name)
}

// UnsupportedNodeError reports a node outside the recognized variant set.
// An unknown node is a bug in the producing parser, never something to skip.
type UnsupportedNodeError struct {
	Kind string
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("unsupported node kind %q", e.Kind)
}
