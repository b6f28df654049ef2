// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"code.hybscloud.com/variant"
	"code.hybscloud.com/variant/internal/tracked"
	"go.uber.org/zap/zaptest"
)

// scalar: three inline-or-boxed plain alternatives.

type scalarAlts struct{}

func (scalarAlts) Alternatives() []variant.Decl {
	return []variant.Decl{variant.Of[int](), variant.Of[string](), variant.Of[float64]()}
}

type scalar = variant.Variant[scalarAlts]

// mixed: one alternative of every qualification.

type mixedAlts struct{}

func (mixedAlts) Alternatives() []variant.Decl {
	return []variant.Decl{
		variant.Of[int](),
		variant.OfConst[string](),
		variant.OfRef[int](),
		variant.OfConstRef[string](),
	}
}

type mixed = variant.Variant[mixedAlts]

// withTracked: payloads that report their lifecycle.

type trackedAlts struct{}

func (trackedAlts) Alternatives() []variant.Decl {
	return []variant.Decl{variant.Of[int](), variant.Of[tracked.B](), variant.Of[tracked.Broken]()}
}

type withTracked = variant.Variant[trackedAlts]

// list: a recursive singly linked list.

type null struct{}

type listAlts struct{}

func (listAlts) Alternatives() []variant.Decl {
	return []variant.Decl{variant.Of[null](), variant.Recursive(variant.Of[cell]())}
}

type list = variant.Variant[listAlts]

type cell struct {
	Head int
	Tail list
}

func cons(head int, tail list) list {
	return variant.New[listAlts](cell{Head: head, Tail: tail})
}

func makeList(heads ...int) list {
	l := variant.New[listAlts](null{})
	for i := len(heads) - 1; i >= 0; i-- {
		l = cons(heads[i], l)
	}
	return l
}

// heads walks l without modifying it.
func heads(l *list) []int {
	var out []int
	for c, ok := variant.TryGet[cell](l); ok; c, ok = variant.TryGet[cell](&c.Tail) {
		out = append(out, c.Head)
	}
	return out
}

// chain: a recursive list of tracked payloads with its own Clone and
// Destroy hooks.

type chainAlts struct{}

func (chainAlts) Alternatives() []variant.Decl {
	return []variant.Decl{variant.Of[null](), variant.Recursive(variant.Of[link]())}
}

type chain = variant.Variant[chainAlts]

type link struct {
	Item tracked.B
	Next chain
}

func (l link) Clone() link {
	return link{Item: l.Item.Clone(), Next: l.Next.Clone()}
}

func (l *link) Destroy() { l.Item.Destroy() }

func makeChain(tr *tracked.Tracker, n int) chain {
	c := variant.New[chainAlts](null{})
	for range n {
		c = variant.New[chainAlts](link{Item: tr.New(), Next: c})
	}
	return c
}

// pair: a non-recursive payload embedding variants.

type pair struct {
	L, R scalar
}

type pairAlts struct{}

func (pairAlts) Alternatives() []variant.Decl {
	return []variant.Decl{variant.Of[int](), variant.Of[pair]()}
}

type pairVariant = variant.Variant[pairAlts]

// ticket is an inline payload with a Destroy hook.

var ticketsDestroyed atomic.Int64

type ticket struct {
	N int32
}

func (t *ticket) Destroy() { ticketsDestroyed.Add(1) }

type ticketAlts struct{}

func (ticketAlts) Alternatives() []variant.Decl {
	return []variant.Decl{variant.Of[ticket](), variant.Of[int64]()}
}

type ticketVariant = variant.Variant[ticketAlts]

func newTracker(t *testing.T) *tracked.Tracker {
	t.Helper()
	tr, err := tracked.NewTracker(nil, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	return tr
}

// mustPanic runs f and returns the *variant.Error it panicked with.
// It fails the test if f does not panic or the error does not match
// target.
func mustPanic(t *testing.T, target error, f func()) (verr *variant.Error) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic matching %v", target)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v (%T) is not an error", r, r)
		}
		if !errors.Is(err, target) {
			t.Fatalf("panic %v does not match %v", err, target)
		}
		if !errors.As(err, &verr) {
			t.Fatalf("panic %v is not a *variant.Error", err)
		}
	}()
	f()
	return nil
}
