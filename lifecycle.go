// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant

import (
	"reflect"
	"unsafe"
)

// Destroyer is implemented by payload types that observe the end of
// their lifetime inside a variant. Destroy is called on the payload's
// address when the alternative is destroyed by [Variant.Reset], by
// emplacing another alternative, or by assignment. It is not called
// for payloads whose construction failed, nor for moved-out payloads,
// nor for referents of reference alternatives.
type Destroyer interface {
	Destroy()
}

// Cloner is implemented by payload types that copy themselves.
// When a payload of type T implements Cloner[T] (on T or *T), copying
// the variant calls Clone instead of the default copy, which is a Go
// assignment followed by a deep copy of every variant embedded in the
// payload's struct fields and arrays. Slices, maps and pointers inside
// the payload are shared by the default copy, as with any Go value.
type Cloner[T any] interface {
	Clone() T
}

// nested is implemented by *Variant[S] for every S; it lets payload
// lifecycles reach variants embedded in a payload without knowing S.
type nested interface {
	// detach replaces shared storage with a private deep copy.
	detach()
	// release destroys the active alternative.
	release()
}

var nestedType = reflect.TypeOf((*nested)(nil)).Elem()

// site locates a variant embedded in a payload.
type site struct {
	typ    reflect.Type
	offset uintptr
}

func (s site) at(base unsafe.Pointer) nested {
	return reflect.NewAt(s.typ, unsafe.Add(base, s.offset)).Interface().(nested)
}

// nestedSites lists every variant reachable from a value of type t
// without following pointers, slices or maps.
func nestedSites(t reflect.Type, off uintptr, acc []site) []site {
	if reflect.PointerTo(t).Implements(nestedType) {
		return append(acc, site{typ: t, offset: off})
	}
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			acc = nestedSites(f.Type, off+f.Offset, acc)
		}
	case reflect.Array:
		elem := nestedSites(t.Elem(), 0, nil)
		if len(elem) == 0 {
			return acc
		}
		size := t.Elem().Size()
		for i := range t.Len() {
			base := off + uintptr(i)*size
			for _, s := range elem {
				acc = append(acc, site{typ: s.typ, offset: base + s.offset})
			}
		}
	}
	return acc
}

// lifecycle holds the per-type facts the operation table needs,
// computed once when a schema compiles.
type lifecycle[T any] struct {
	sites     []site
	destroyer bool
	cloner    bool
}

func newLifecycle[T any]() *lifecycle[T] {
	_, destroyer := any((*T)(nil)).(Destroyer)
	_, cloner := any((*T)(nil)).(Cloner[T])
	return &lifecycle[T]{
		sites:     nestedSites(typeOf[T](), 0, nil),
		destroyer: destroyer,
		cloner:    cloner,
	}
}

// finalize ends the lifetime of *p: the Destroyer hook first, then
// every embedded variant, mirroring destructor-then-members order.
func (l *lifecycle[T]) finalize(p *T) {
	if l.destroyer {
		any(p).(Destroyer).Destroy()
	}
	base := unsafe.Pointer(p)
	for _, s := range l.sites {
		s.at(base).release()
	}
}

// duplicate copy-constructs *dst from *src. dst must not be live.
func (l *lifecycle[T]) duplicate(dst, src *T) {
	if l.cloner {
		*dst = any(src).(Cloner[T]).Clone()
		return
	}
	*dst = *src
	base := unsafe.Pointer(dst)
	for _, s := range l.sites {
		s.at(base).detach()
	}
}
