// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant

import (
	"reflect"
	"unsafe"
)

// inlineWords is the size of the scalar region in 64-bit words.
const inlineWords = 2

// storage is the fixed-size region a variant keeps its active
// alternative in. At most one member form is live at a time and an
// empty variant's storage is all zero.
//
// The garbage collector scans Go memory precisely, so the region cannot
// be an untyped byte union that sometimes holds pointers. It is split
// instead: pointer-free payloads that fit live in words, everything
// else (owned boxes, borrowed references) is addressed by ptr.
type storage struct {
	words [inlineWords]uint64
	ptr   unsafe.Pointer
}

// inlineSize is the capacity of the scalar region in bytes.
const inlineSize = unsafe.Sizeof(storage{}.words)

// fitsInline reports whether values of t can live in the scalar region.
func fitsInline(t reflect.Type) bool {
	return t.Size() <= inlineSize &&
		uintptr(t.Align()) <= unsafe.Alignof(storage{}.words) &&
		pointerFree(t)
}

// pointerFree reports whether t contains no pointers the garbage
// collector would have to trace.
func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// addr returns the address of the member form m inside s.
// Inline payloads are addressed directly; box and reference members are
// addressed through the pointer word that holds them.
func (s *storage) addr(m member) unsafe.Pointer {
	if m == memberInline {
		return unsafe.Pointer(&s.words)
	}
	return unsafe.Pointer(&s.ptr)
}

// at returns the address of alternative i's member form inside s.
func (s *storage) at(t *table, i int) unsafe.Pointer {
	return s.addr(t.alts[i].member)
}

// payload returns the live T held by s under member form m.
// For references this is the referent.
func payload[T any](s *storage, m member) *T {
	if m == memberInline {
		return (*T)(unsafe.Pointer(&s.words))
	}
	return (*T)(s.ptr)
}

// place prepares s to receive a T under member form m and returns the
// address to construct it at. s must be empty.
func place[T any](s *storage, m member) *T {
	if m == memberInline {
		return (*T)(unsafe.Pointer(&s.words))
	}
	cell := new(T)
	s.ptr = unsafe.Pointer(cell)
	return cell
}

// ops returns the operation table entry of alternative i.
func (t *table) ops(i int) *ops { return &t.alts[i].ops }

// isRecursive reports whether alternative i is declared [Recursive].
func (t *table) isRecursive(i int) bool { return t.alts[i].decl.recursive }

// mayAlias reports whether alternative i's payload can reach other
// variants' storage: recursive alternatives and payloads embedding
// variants. Assignment materializes a temporary for such alternatives.
func (t *table) mayAlias(i int) bool {
	e := &t.alts[i]
	return e.decl.recursive || e.ops.nested
}
