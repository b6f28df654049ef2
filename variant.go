// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant

import "unsafe"

// Variant holds at most one alternative of the schema S.
//
// The zero value is empty. A Variant must not be copied with Go
// assignment while the original is still used: ordinary assignment
// moves it, sharing any owned box with the original. Use [Variant.Clone]
// for an independent copy, [Variant.Move] for a move that leaves the
// source empty, and [Variant.Assign] or [Variant.MoveFrom] to replace
// the contents of an existing variant.
//
// A Variant is not safe for concurrent mutation. Distinct variants
// share no state and may be used from different goroutines freely.
type Variant[S Schema] struct {
	data storage
	tag  uint32 // active index plus one; zero is empty
}

// New returns a variant holding x. The target alternative is the one
// whose unique form is T: a plain, const or recursive T.
// x is adopted, not copied.
func New[S Schema, T any](x T) Variant[S] {
	var v Variant[S]
	t := tableFor[S]()
	emplaceAt(&v, t, t.resolveUnique(queryOf[T](0)), x)
	return v
}

// NewRef returns a variant bound to the referent p through its plain or
// const reference alternative for T.
func NewRef[S Schema, T any](p *T) Variant[S] {
	var v Variant[S]
	t := tableFor[S]()
	bindAt(&v, t, t.resolveUnique(queryOf[T](qualRef)), p)
	return v
}

// Len returns the number of alternatives of S.
func (v *Variant[S]) Len() int { return len(tableFor[S]().alts) }

// Index returns the active alternative's position in the schema, or
// [Variant.Len] when v is empty.
func (v *Variant[S]) Index() int {
	if v.tag == 0 {
		return v.Len()
	}
	return int(v.tag) - 1
}

// IsEmpty reports whether v holds no alternative.
func (v *Variant[S]) IsEmpty() bool { return v.tag == 0 }

// Recursive reports whether the active alternative is declared
// [Recursive]. An empty variant is not recursive.
func (v *Variant[S]) Recursive() bool {
	return v.tag != 0 && tableFor[S]().isRecursive(int(v.tag)-1)
}

// Reset destroys the active alternative, leaving v empty.
// Resetting an empty variant does nothing.
func (v *Variant[S]) Reset() {
	if v.tag == 0 {
		return
	}
	t := tableFor[S]()
	i := int(v.tag) - 1
	v.tag = 0
	t.ops(i).destroy(v.data.at(t, i))
}

// Clone returns an independent deep copy of v.
// Recursive alternatives are copied cell by cell.
func (v *Variant[S]) Clone() Variant[S] {
	var c Variant[S]
	c.copyFrom(v)
	return c
}

// Move returns v's contents and leaves v empty. Owned payloads are
// transferred, never duplicated.
func (v *Variant[S]) Move() Variant[S] {
	var c Variant[S]
	c.moveFrom(v)
	return c
}

// Assign replaces v's contents with a deep copy of src.
// Assigning a variant to itself does nothing.
//
// When v's current alternative or src's alternative may alias (it is
// recursive, or its payload embeds variants), src may live inside v's
// payload. Such assignments copy src into a temporary first, destroy
// v's payload only after the copy is complete, and then move the
// temporary in.
func (v *Variant[S]) Assign(src *Variant[S]) {
	if v == src {
		return
	}
	t := tableFor[S]()
	if v.aliases(t) || src.aliases(t) {
		tmp := src.Clone()
		v.Reset()
		v.moveFrom(&tmp)
		return
	}
	v.Reset()
	v.copyFrom(src)
}

// MoveFrom replaces v's contents with src's, leaving src empty.
// Moving a variant into itself does nothing. Aliasing alternatives are
// handled as in [Variant.Assign].
func (v *Variant[S]) MoveFrom(src *Variant[S]) {
	if v == src {
		return
	}
	t := tableFor[S]()
	if v.aliases(t) || src.aliases(t) {
		tmp := src.Move()
		v.Reset()
		v.moveFrom(&tmp)
		return
	}
	v.Reset()
	v.moveFrom(src)
}

// String names the schema and the active alternative.
func (v *Variant[S]) String() string {
	t := tableFor[S]()
	return t.name + "(" + t.describe(v.tag) + ")"
}

func (v *Variant[S]) aliases(t *table) bool {
	return v.tag != 0 && t.mayAlias(int(v.tag)-1)
}

// copyFrom copy-constructs src's alternative into v, which must be
// empty. v stays empty if the copy panics.
func (v *Variant[S]) copyFrom(src *Variant[S]) {
	if src.tag == 0 {
		return
	}
	t := tableFor[S]()
	i := int(src.tag) - 1
	t.ops(i).copy(v.data.at(t, i), src.data.at(t, i))
	v.tag = src.tag
}

// moveFrom move-constructs src's alternative into v, which must be
// empty, and leaves src empty.
func (v *Variant[S]) moveFrom(src *Variant[S]) {
	if src.tag == 0 {
		return
	}
	t := tableFor[S]()
	i := int(src.tag) - 1
	t.ops(i).move(v.data.at(t, i), src.data.at(t, i))
	v.tag = src.tag
	src.tag = 0
}

// detach implements nested: after a shallow copy of an enclosing
// payload, v shares storage with the original and takes a private copy.
func (v *Variant[S]) detach() {
	if v.tag == 0 {
		return
	}
	shared := *v
	*v = Variant[S]{}
	v.copyFrom(&shared)
}

// release implements nested.
func (v *Variant[S]) release() { v.Reset() }

// emplaceAt destroys v's alternative and stores x as alternative i.
func emplaceAt[T any, S Schema](v *Variant[S], t *table, i int, x T) {
	v.Reset()
	*place[T](&v.data, t.alts[i].member) = x
	v.tag = uint32(i + 1)
}

// bindAt destroys v's alternative and binds reference alternative i
// to p.
func bindAt[T any, S Schema](v *Variant[S], t *table, i int, p *T) {
	if p == nil {
		panic(nilReference(t.name, t.alts[i].decl.String()))
	}
	v.Reset()
	v.data.ptr = unsafe.Pointer(p)
	v.tag = uint32(i + 1)
}
