// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant

// Visitor dispatch.
//
// A visitor has one call form, Visit, and declares its result type R.
// Visit receives the active payload and distinguishes alternatives with
// a type switch:
//
//	value, recursive and reference alternatives   *T (for references, the referent)
//	const and const reference alternatives        T  (a copy)
//
// Recursive alternatives arrive exactly like plain ones; the owned cell
// behind them is never visible.

// Visitor is a structural dispatch target with result type R.
//
// Example:
//
//	type listSum struct{}
//
//	func (s listSum) Visit(alt any) int {
//		switch c := alt.(type) {
//		case *Nil:
//			return 0
//		case *Cell:
//			return c.Head + variant.Apply[int](s, &c.Tail)
//		default:
//			panic("unreachable")
//		}
//	}
type Visitor[R any] interface {
	Visit(alt any) R
}

// visitorFunc wraps a dispatch function as a concrete Visitor.
type visitorFunc[R any] struct {
	f func(alt any) R
}

func (v *visitorFunc[R]) Visit(alt any) R {
	return v.f(alt)
}

// VisitFunc creates a visitor from a dispatch function.
func VisitFunc[R any](f func(alt any) R) *visitorFunc[R] {
	return &visitorFunc[R]{f: f}
}

// Apply invokes vis on v's active payload and returns its result.
// It panics with an *Error matching [ErrEmpty] if v is empty.
func Apply[R any, S Schema](vis Visitor[R], v *Variant[S]) R {
	if v.tag == 0 {
		emptyDispatch[S]()
	}
	return dispatch(vis, v)
}

// TryApply invokes vis on v's active payload and returns its result, or
// returns the zero R and an *Error matching [ErrEmpty] if v is empty.
func TryApply[R any, S Schema](vis Visitor[R], v *Variant[S]) (R, error) {
	if v.tag == 0 {
		var zero R
		return zero, emptyVariant(tableFor[S]().name)
	}
	return dispatch(vis, v), nil
}

// Accept is the method form of [Apply] for visitors without a result.
// It panics with an *Error matching [ErrEmpty] if v is empty.
func (v *Variant[S]) Accept(vis Visitor[struct{}]) {
	Apply(vis, v)
}

func dispatch[R any, S Schema](vis Visitor[R], v *Variant[S]) R {
	t := tableFor[S]()
	i := int(v.tag) - 1
	return vis.Visit(t.ops(i).view(v.data.at(t, i)))
}

// emptyDispatch panics with the empty-variant error.
// Extracted as a noinline function so that Apply remains inlineable.
//
//go:noinline
func emptyDispatch[S Schema]() {
	panic(emptyVariant(tableFor[S]().name))
}
