// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant

// Typed access.
//
// Each alternative is named by its query form, and each query form has
// its own family of functions:
//
//	declared as                 query with
//	Of[T], Recursive(Of[T])     Get, TryGet, Contains, Emplace, EmplaceFunc
//	OfConst[T], Recursive(...)  GetConst, TryGetConst, ContainsConst, EmplaceConst
//	OfRef[T]                    GetRef, TryGetRef, ContainsRef, EmplaceRef
//	OfConstRef[T]               GetConstRef, TryGetConstRef, ContainsConstRef, EmplaceConstRef
//
// Querying a form the schema does not declare is a programming error and
// panics with an *Error of code [CodeIllFormed], whichever function is
// used. Querying a declared alternative that is not active is the
// recoverable "wrong alternative" condition: Get* panic with an *Error
// matching [ErrWrongAlternative], TryGet* report false.

// lookup resolves the query form f and returns the payload if it is the
// active alternative, with the resolved index either way.
func lookup[T any, S Schema](v *Variant[S], q qual) (*T, *table, int) {
	t := tableFor[S]()
	i := t.resolveQuery(queryOf[T](q))
	if int(v.tag)-1 != i {
		return nil, t, i
	}
	return payload[T](&v.data, t.alts[i].member), t, i
}

// must returns p, or panics with the wrong-alternative error.
func must[T any, S Schema](v *Variant[S], p *T, t *table, i int) *T {
	if p == nil {
		panic(wrongAlternative(t.name, t.alts[i].decl.String(), t.describe(v.tag)))
	}
	return p
}

// Get returns the address of v's active T, declared with [Of] or
// [Recursive]. Writes through the address update the variant's payload.
// It panics if T is not the active alternative.
func Get[T any, S Schema](v *Variant[S]) *T {
	p, t, i := lookup[T](v, 0)
	return must(v, p, t, i)
}

// TryGet returns the address of v's active T and true, or nil and false
// when another alternative is active or v is empty.
func TryGet[T any, S Schema](v *Variant[S]) (*T, bool) {
	p, _, _ := lookup[T](v, 0)
	return p, p != nil
}

// GetConst returns a copy of v's active read-only T, declared with
// [OfConst]. It panics if T is not the active alternative.
func GetConst[T any, S Schema](v *Variant[S]) T {
	p, t, i := lookup[T](v, qualConst)
	return *must(v, p, t, i)
}

// TryGetConst returns a copy of v's active read-only T and true, or the
// zero T and false.
func TryGetConst[T any, S Schema](v *Variant[S]) (T, bool) {
	p, _, _ := lookup[T](v, qualConst)
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// GetRef returns the referent of v's active reference alternative,
// declared with [OfRef]. Writes through the result update the referent,
// not the variant. It panics if the reference is not active.
func GetRef[T any, S Schema](v *Variant[S]) *T {
	p, t, i := lookup[T](v, qualRef)
	return must(v, p, t, i)
}

// TryGetRef returns the referent of v's active reference alternative
// and true, or nil and false.
func TryGetRef[T any, S Schema](v *Variant[S]) (*T, bool) {
	p, _, _ := lookup[T](v, qualRef)
	return p, p != nil
}

// GetConstRef returns the current value of the referent of v's active
// read-only reference alternative, declared with [OfConstRef].
// It panics if the reference is not active.
func GetConstRef[T any, S Schema](v *Variant[S]) T {
	p, t, i := lookup[T](v, qualConst|qualRef)
	return *must(v, p, t, i)
}

// TryGetConstRef returns the current value of the referent and true, or
// the zero T and false.
func TryGetConstRef[T any, S Schema](v *Variant[S]) (T, bool) {
	p, _, _ := lookup[T](v, qualConst|qualRef)
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// Contains reports whether v's active alternative is the plain or
// recursive T.
func Contains[T any, S Schema](v *Variant[S]) bool {
	return contains[T](v, 0)
}

// ContainsConst reports whether v's active alternative is the read-only T.
func ContainsConst[T any, S Schema](v *Variant[S]) bool {
	return contains[T](v, qualConst)
}

// ContainsRef reports whether v's active alternative is the reference
// to T.
func ContainsRef[T any, S Schema](v *Variant[S]) bool {
	return contains[T](v, qualRef)
}

// ContainsConstRef reports whether v's active alternative is the
// read-only reference to T.
func ContainsConstRef[T any, S Schema](v *Variant[S]) bool {
	return contains[T](v, qualConst|qualRef)
}

func contains[T any, S Schema](v *Variant[S], q qual) bool {
	i := tableFor[S]().resolveQuery(queryOf[T](q))
	return int(v.tag)-1 == i
}

// Emplace destroys v's active alternative and stores x as the plain or
// recursive T. x is adopted, not copied; it must not share storage with
// v's current payload.
func Emplace[T any, S Schema](v *Variant[S], x T) {
	t := tableFor[S]()
	emplaceAt(v, t, t.resolveQuery(queryOf[T](0)), x)
}

// EmplaceConst destroys v's active alternative and stores x as the
// read-only T.
func EmplaceConst[T any, S Schema](v *Variant[S], x T) {
	t := tableFor[S]()
	emplaceAt(v, t, t.resolveQuery(queryOf[T](qualConst)), x)
}

// EmplaceRef destroys v's active alternative and binds the reference
// alternative to p. The variant does not own p; p must outlive every
// use of the variant. A nil p panics with [ErrNilReference].
func EmplaceRef[T any, S Schema](v *Variant[S], p *T) {
	t := tableFor[S]()
	bindAt(v, t, t.resolveQuery(queryOf[T](qualRef)), p)
}

// EmplaceConstRef destroys v's active alternative and binds the
// read-only reference alternative to p.
func EmplaceConstRef[T any, S Schema](v *Variant[S], p *T) {
	t := tableFor[S]()
	bindAt(v, t, t.resolveQuery(queryOf[T](qualConst|qualRef)), p)
}

// EmplaceFunc destroys v's active alternative and constructs the plain
// or recursive T in place: init receives the address of a zero T inside
// v's storage. If init returns an error or panics, v is left empty, no
// [Destroyer] hook runs for the unfinished payload, and the error is
// returned or the panic propagated.
func EmplaceFunc[T any, S Schema](v *Variant[S], init func(*T) error) error {
	t := tableFor[S]()
	i := t.resolveQuery(queryOf[T](0))
	v.Reset()

	e := &t.alts[i]
	p := place[T](&v.data, e.member)
	done := false
	defer func() {
		if !done {
			e.ops.abandon(v.data.addr(e.member))
		}
	}()
	if err := init(p); err != nil {
		return err
	}
	done = true
	v.tag = uint32(i + 1)
	return nil
}

// Set is converting assignment: it destroys v's active alternative and
// stores x as the alternative whose unique form is T, whether declared
// plain, const or recursive.
func Set[T any, S Schema](v *Variant[S], x T) {
	t := tableFor[S]()
	emplaceAt(v, t, t.resolveUnique(queryOf[T](0)), x)
}

// SetRef is converting assignment for references: it binds whichever
// reference alternative (plain or const) the schema declares for T.
func SetRef[T any, S Schema](v *Variant[S], p *T) {
	t := tableFor[S]()
	bindAt(v, t, t.resolveUnique(queryOf[T](qualRef)), p)
}
