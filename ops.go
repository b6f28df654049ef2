// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant

import "unsafe"

// ops is the operation table entry of one alternative. Every function
// takes member-form addresses obtained from [storage.addr] for that
// same alternative; the container never mixes alternatives.
//
// Construction is not in the table: typed entry points know T and use
// [place] directly.
type ops struct {
	// destroy ends the live payload at p and leaves p zeroed.
	destroy func(p unsafe.Pointer)

	// copy copy-constructs into the empty slot dst from the live src.
	copy func(dst, src unsafe.Pointer)

	// move transfers the live src into the empty slot dst without
	// duplicating owned resources, leaving src zeroed.
	move func(dst, src unsafe.Pointer)

	// abandon zeroes a slot whose construction did not complete.
	// No hooks run.
	abandon func(p unsafe.Pointer)

	// view returns what a visitor receives for the live payload at p.
	view func(p unsafe.Pointer) any

	// nested reports whether the payload embeds variants.
	nested bool
}

// bindOps builds the operation table entry for T held as member form m.
// Named generic functions produce static function values per
// instantiation; only the lifecycle-bound entries allocate, once per
// schema.
func bindOps[T any](m member, k Kind) ops {
	readOnly := k.qual()&qualConst != 0
	switch m {
	case memberInline:
		lc := newLifecycle[T]()
		o := ops{
			destroy: lc.destroyInline,
			copy:    lc.copyInline,
			move:    moveInline[T],
			abandon: abandonInline[T],
			view:    viewInline[T],
		}
		if readOnly {
			o.view = viewInlineConst[T]
		}
		return o
	case memberBox:
		lc := newLifecycle[T]()
		o := ops{
			destroy: lc.destroyBox,
			copy:    lc.copyBox,
			move:    movePointer,
			abandon: abandonPointer,
			view:    viewPointer[T],
			nested:  len(lc.sites) > 0,
		}
		if readOnly {
			o.view = viewPointerConst[T]
		}
		return o
	default:
		o := ops{
			destroy: abandonPointer,
			copy:    copyPointer,
			move:    movePointer,
			abandon: abandonPointer,
			view:    viewPointer[T],
		}
		if readOnly {
			o.view = viewPointerConst[T]
		}
		return o
	}
}

func (l *lifecycle[T]) destroyInline(p unsafe.Pointer) {
	v := (*T)(p)
	l.finalize(v)
	var zero T
	*v = zero
}

func (l *lifecycle[T]) copyInline(dst, src unsafe.Pointer) {
	l.duplicate((*T)(dst), (*T)(src))
}

func moveInline[T any](dst, src unsafe.Pointer) {
	*(*T)(dst) = *(*T)(src)
	var zero T
	*(*T)(src) = zero
}

func abandonInline[T any](p unsafe.Pointer) {
	var zero T
	*(*T)(p) = zero
}

// destroyBox finalizes the owned cell and drops it.
func (l *lifecycle[T]) destroyBox(p unsafe.Pointer) {
	slot := (*unsafe.Pointer)(p)
	cell := (*T)(*slot)
	*slot = nil
	if cell != nil {
		l.finalize(cell)
	}
}

// copyBox allocates a new cell deep-copied from the source cell.
// The destination slot is written only once the copy is complete.
func (l *lifecycle[T]) copyBox(dst, src unsafe.Pointer) {
	cell := new(T)
	l.duplicate(cell, (*T)(*(*unsafe.Pointer)(src)))
	*(*unsafe.Pointer)(dst) = unsafe.Pointer(cell)
}

// movePointer adopts the source's pointer word: ownership of a box, or
// the address of a referent.
func movePointer(dst, src unsafe.Pointer) {
	d, s := (*unsafe.Pointer)(dst), (*unsafe.Pointer)(src)
	*d = *s
	*s = nil
}

func copyPointer(dst, src unsafe.Pointer) {
	*(*unsafe.Pointer)(dst) = *(*unsafe.Pointer)(src)
}

func abandonPointer(p unsafe.Pointer) {
	*(*unsafe.Pointer)(p) = nil
}

func viewInline[T any](p unsafe.Pointer) any { return (*T)(p) }

func viewInlineConst[T any](p unsafe.Pointer) any { return *(*T)(p) }

func viewPointer[T any](p unsafe.Pointer) any { return (*T)(*(*unsafe.Pointer)(p)) }

func viewPointerConst[T any](p unsafe.Pointer) any { return *(*T)(*(*unsafe.Pointer)(p)) }
