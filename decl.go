// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant

import (
	"reflect"
)

// Kind is the qualification an alternative is declared with.
type Kind uint8

const (
	// KindValue is a plain value alternative: the variant owns a T.
	KindValue Kind = iota

	// KindConst is a read-only value alternative. Typed access yields
	// copies, never addresses.
	KindConst

	// KindRef is a reference alternative: the variant holds the address
	// of a T owned elsewhere.
	KindRef

	// KindConstRef is a read-only reference alternative.
	KindConstRef
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindConst:
		return "const"
	case KindRef:
		return "ref"
	case KindConstRef:
		return "const ref"
	default:
		return "invalid"
	}
}

// qual is the qualifier set of a normalized form.
type qual uint8

const (
	qualConst qual = 1 << iota
	qualRef
)

func (k Kind) qual() qual {
	switch k {
	case KindConst:
		return qualConst
	case KindRef:
		return qualRef
	case KindConstRef:
		return qualConst | qualRef
	default:
		return 0
	}
}

// form is a normalized (type, qualifiers) pair. Query and unique forms
// are both expressed as forms; they differ in which qualifiers survive.
type form struct {
	typ  reflect.Type
	qual qual
}

func (f form) String() string {
	name := "<nil>"
	if f.typ != nil {
		name = f.typ.String()
	}
	switch f.qual {
	case qualConst:
		return "const " + name
	case qualRef:
		return "*" + name
	case qualConst | qualRef:
		return "const *" + name
	default:
		return name
	}
}

// store is the storage form of an alternative.
type store uint8

const (
	storeValue store = iota
	storeRef
	storeRecursive
)

// member is the representation an alternative takes inside [storage].
// It equals the storage form except that recursive alternatives, and
// values that cannot live in the scalar region, become owned boxes.
type member uint8

const (
	memberInline member = iota // payload lives in storage.words
	memberBox                  // owned heap cell addressed by storage.ptr
	memberRef                  // borrowed address in storage.ptr
)

func (m member) String() string {
	switch m {
	case memberInline:
		return "inline"
	case memberBox:
		return "box"
	case memberRef:
		return "ref"
	default:
		return "invalid"
	}
}

// Decl declares one alternative of a [Schema]. Build it with [Of],
// [OfConst], [OfRef] or [OfConstRef], optionally wrapped in [Recursive].
// The zero Decl is invalid.
type Decl struct {
	typ       reflect.Type
	bind      func(member, Kind) ops
	invalid   string
	kind      Kind
	recursive bool
	inline    bool
}

// Of declares a plain value alternative of type T.
func Of[T any]() Decl { return declare[T](KindValue) }

// OfConst declares a read-only value alternative of type T.
func OfConst[T any]() Decl { return declare[T](KindConst) }

// OfRef declares a reference alternative: the variant stores a *T it
// does not own. The referent must outlive every use of the variant.
func OfRef[T any]() Decl { return declare[T](KindRef) }

// OfConstRef declares a read-only reference alternative.
func OfConstRef[T any]() Decl { return declare[T](KindConstRef) }

func declare[T any](k Kind) Decl {
	t := typeOf[T]()
	return Decl{
		typ:    t,
		bind:   bindOps[T],
		kind:   k,
		inline: fitsInline(t),
	}
}

// Recursive marks d as self-referential: its payload is kept behind an
// owned heap cell, copied deeply, and moved by adopting the cell. The
// marker is invisible to callers, who query the alternative exactly as
// they would query d. Reference declarations need no marker and are
// rejected when the schema compiles.
//
//	type listAlts struct{}
//
//	func (listAlts) Alternatives() []variant.Decl {
//		return []variant.Decl{variant.Of[Nil](), variant.Recursive(variant.Of[Cell]())}
//	}
//
//	type List = variant.Variant[listAlts]
//
//	type Cell struct {
//		Head int
//		Tail List
//	}
func Recursive(d Decl) Decl {
	if d.typ != nil && d.kind.qual()&qualRef != 0 {
		d.invalid = "recursive marker on reference alternative " + d.queryForm().String()
	}
	d.recursive = true
	return d
}

// Type returns the declared Go type.
func (d Decl) Type() reflect.Type { return d.typ }

// Kind returns the declared qualification.
func (d Decl) Kind() Kind { return d.kind }

// IsRecursive reports whether d carries the [Recursive] marker.
func (d Decl) IsRecursive() bool { return d.recursive }

func (d Decl) String() string {
	if d.typ == nil {
		return "<invalid>"
	}
	if d.recursive {
		return "recursive " + d.queryForm().String()
	}
	return d.queryForm().String()
}

// queryForm is the form callers name the alternative by.
func (d Decl) queryForm() form { return form{typ: d.typ, qual: d.kind.qual()} }

// storeForm is the form the storage region is specified with.
func (d Decl) storeForm() store {
	switch {
	case d.recursive:
		return storeRecursive
	case d.kind.qual()&qualRef != 0:
		return storeRef
	default:
		return storeValue
	}
}

// uniqueForm is the identity two alternatives of one schema must not
// share: const and the recursive marker are stripped, references stay
// distinct from values.
func (d Decl) uniqueForm() form { return form{typ: d.typ, qual: d.kind.qual() & qualRef} }

// memberForm is the representation inside the storage region.
func (d Decl) memberForm() member {
	switch d.storeForm() {
	case storeRef:
		return memberRef
	case storeRecursive:
		return memberBox
	}
	if d.inline {
		return memberInline
	}
	return memberBox
}

// validate reports why d can never be part of a schema.
func (d Decl) validate() string {
	if d.typ == nil || d.bind == nil {
		return "zero Decl"
	}
	return d.invalid
}

// typeOf returns the reflect.Type of T without boxing a T.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// queryOf builds the query form a typed accessor asks for.
func queryOf[T any](q qual) form { return form{typ: typeOf[T](), qual: q} }
