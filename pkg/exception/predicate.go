// Package exception turns plugin-contributed error handlers into one
// priority-ordered chain and picks the handler for an error that escaped
// command execution.
package exception

import (
	"errors"
	"fmt"
	"reflect"
)

type predicateKind int

const (
	kindNone predicateKind = iota
	kindCategory
	kindFunc
)

// Predicate decides whether a handler applies to an error. It is either a
// category (an error type or sentinel, matched through the error chain) or
// an arbitrary function of the error. The zero Predicate is invalid.
type Predicate struct {
	kind  predicateKind
	name  string
	match func(error) bool
}

// OfType is the category of errors that have an error of type T in their
// chain, as reported by errors.As.
func OfType[T error]() Predicate {
	var zero T
	name := fmt.Sprintf("%T", zero)
	if name == "<nil>" {
		name = reflect.TypeOf((*T)(nil)).Elem().String()
	}
	return Predicate{
		kind: kindCategory,
		name: name,
		match: func(err error) bool {
			var target T
			return errors.As(err, &target)
		},
	}
}

// Is is the category of errors that wrap target, as reported by errors.Is.
func Is(target error) Predicate {
	if target == nil {
		return Predicate{}
	}
	return Predicate{
		kind:  kindCategory,
		name:  target.Error(),
		match: func(err error) bool { return errors.Is(err, target) },
	}
}

// Any is the category every error belongs to.
func Any() Predicate {
	return Predicate{
		kind:  kindCategory,
		name:  "any",
		match: func(err error) bool { return err != nil },
	}
}

// Func is a predicate backed by fn.
func Func(fn func(error) bool) Predicate {
	if fn == nil {
		return Predicate{}
	}
	return Predicate{kind: kindFunc, name: "func", match: fn}
}

// Valid reports whether p was built by one of the constructors.
func (p Predicate) Valid() bool { return p.kind != kindNone && p.match != nil }

// Match reports whether err satisfies p.
func (p Predicate) Match(err error) bool {
	if !p.Valid() {
		return false
	}
	return p.match(err)
}

func (p Predicate) String() string {
	switch p.kind {
	case kindCategory:
		return "category(" + p.name + ")"
	case kindFunc:
		return "func"
	default:
		return "invalid"
	}
}
