// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package variant provides a closed sum type: a container that holds
// exactly one of a fixed, ordered list of alternative types, tracks
// which one, and offers typed construction, access, assignment and
// visitor dispatch over it.
//
// # Declaring a Variant
//
// The alternative list is declared by a schema type, a zero-size struct
// implementing [Schema]:
//
//	type shapeAlts struct{}
//
//	func (shapeAlts) Alternatives() []variant.Decl {
//		return []variant.Decl{
//			variant.Of[Circle](),
//			variant.OfConst[Label](),
//			variant.OfRef[Canvas](),
//		}
//	}
//
//	type Shape = variant.Variant[shapeAlts]
//
// Declarations:
//
//   - [Of]: a plain value alternative
//   - [OfConst]: a read-only value alternative
//   - [OfRef]: a non-owning reference alternative
//   - [OfConstRef]: a read-only reference alternative
//   - [Recursive]: marks a value alternative as self-referential
//
// # Normal Forms
//
// Every declaration is normalized four ways, each with its own job:
//
//   - query form: how callers name the alternative (T, const T, *T,
//     const *T); selects the Get/Contains/Emplace family
//   - store form: value, reference, or recursive
//   - unique form: identity inside a schema; const and the recursive
//     marker are stripped, so Of[int] and OfConst[int] collide while
//     Of[int] and OfRef[int] do not
//   - member form: the representation in the storage region (inline
//     scalar, owned box, or borrowed address)
//
// Go generics cannot reject duplicate or unknown type arguments at
// compile time. A schema is compiled once, on first use or by [Check],
// and every ill-formed schema or query panics with an *[Error] of code
// [CodeIllFormed]. Such panics are programming errors, never runtime
// conditions.
//
// # Lifecycle
//
// The zero [Variant] is empty.
//
//   - [New], [NewRef]: converting construction
//   - [Emplace], [EmplaceConst], [EmplaceRef], [EmplaceConstRef]: replace the active alternative
//   - [EmplaceFunc]: construct in place; a failing initializer leaves the variant empty
//   - [Set], [SetRef]: converting assignment
//   - [Variant.Clone]: deep copy
//   - [Variant.Move]: transfer, leaving the source empty
//   - [Variant.Assign], [Variant.MoveFrom]: copy and move assignment, self-assignment safe
//   - [Variant.Reset]: destroy the active alternative
//
// Payload types take part in the lifecycle through [Destroyer] and
// [Cloner]. Without a Cloner, copies deep-copy every variant embedded in
// the payload, so a recursive structure copies as a whole.
//
// # Access
//
// Two tiers, mirroring Resume/TryResume style one-shot APIs:
//
//   - [Get], [GetConst], [GetRef], [GetConstRef]: panic with [ErrWrongAlternative] on mismatch
//   - [TryGet], [TryGetConst], [TryGetRef], [TryGetConstRef]: report (zero, false) on mismatch
//   - [Contains], [ContainsConst], [ContainsRef], [ContainsConstRef]: membership
//
// # Visitors
//
// [Apply] dispatches a [Visitor] on the active payload and returns the
// visitor's result type; [TryApply] returns [ErrEmpty] instead of
// panicking; [Variant.Accept] is the method form for visitors without a
// result. [VisitFunc] adapts a function.
//
// # Recursive Alternatives
//
//	type Nil struct{}
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
//
//	func Cons(head int, tail List) List {
//		return variant.New[listAlts](Cell{Head: head, Tail: tail})
//	}
//
//	l := Cons(5, Cons(6, Cons(7, variant.New[listAlts](Nil{}))))
//	total := 0
//	for c, ok := variant.TryGet[Cell](&l); ok; c, ok = variant.TryGet[Cell](&l) {
//		total += c.Head
//		l.Assign(&c.Tail)
//	}
//	// total == 18
//
// # Concurrency
//
// Variants follow value semantics and perform no locking. Distinct
// variants may be used concurrently; a shared variant needs external
// synchronization around every mutation, including writes through
// addresses returned by Get or passed to visitors.
package variant
