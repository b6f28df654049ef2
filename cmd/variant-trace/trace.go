// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unsafe"

	"code.hybscloud.com/variant"
	"code.hybscloud.com/variant/internal/tracked"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type valueAlts struct{}

func (valueAlts) Alternatives() []variant.Decl {
	return []variant.Decl{
		variant.Of[int](),
		variant.Of[tracked.B](),
		variant.Of[tracked.Broken](),
	}
}

type value = variant.Variant[valueAlts]

type refAlts struct{}

func (refAlts) Alternatives() []variant.Decl {
	return []variant.Decl{variant.OfRef[int](), variant.Of[tracked.B]()}
}

type refValue = variant.Variant[refAlts]

type constAlts struct{}

func (constAlts) Alternatives() []variant.Decl {
	return []variant.Decl{variant.OfConst[int](), variant.OfConst[tracked.B]()}
}

type constValue = variant.Variant[constAlts]

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

// listSum sums a list without state.
type listSum struct{}

func (s listSum) Visit(alt any) int {
	switch c := alt.(type) {
	case *null:
		return 0
	case *cell:
		return c.Head + variant.Apply[int](s, &c.Tail)
	default:
		panic(fmt.Sprintf("listSum: unexpected %T", alt))
	}
}

// statefulSum counts the cells it visits and accumulates their heads.
type statefulSum struct {
	visits int
	sum    int
}

func (s *statefulSum) Visit(alt any) struct{} {
	s.visits++
	if c, ok := alt.(*cell); ok {
		s.sum += c.Head
		c.Tail.Accept(s)
	}
	return struct{}{}
}

// tracer prints statements before they run and expressions with their
// values.
type tracer struct {
	w io.Writer
}

func (t tracer) step(stmt string) { fmt.Fprintf(t.w, ">>> %s\n", stmt) }

func (t tracer) show(expr string, v any) { fmt.Fprintf(t.w, "--- %s == %v\n", expr, v) }

func (t tracer) recovered(err error) { fmt.Fprintf(t.w, "recovered from %s\n", err) }

// catch runs f and returns the error it panicked with, if any.
func catch(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	f()
	return nil
}

// run prints the trace to w. Payload lifecycle events are counted on
// reg and logged through logger. The returned stats must show every
// tracked payload destroyed.
func run(w io.Writer, logger *zap.Logger, reg prometheus.Registerer, length int) (tracked.Stats, error) {
	if length < 0 {
		return tracked.Stats{}, fmt.Errorf("invalid list length %d", length)
	}
	tr, err := tracked.NewTracker(reg, logger.Named("tracked"))
	if err != nil {
		return tracked.Stats{}, err
	}
	t := tracer{w: w}

	// Plain alternatives, failed access and failed construction.
	var v value
	t.show("unsafe.Sizeof(value{})", unsafe.Sizeof(v))
	t.step("var v value")
	t.step("variant.Emplace(&v, 5)")
	variant.Emplace(&v, 5)
	t.step("variant.Get[tracked.B](&v)")
	if err := catch(func() { variant.Get[tracked.B](&v) }); err != nil {
		if !errors.Is(err, variant.ErrWrongAlternative) {
			return tr.Stats(), err
		}
		t.recovered(err)
	}
	t.show("*variant.Get[int](&v)", *variant.Get[int](&v))
	t.step("variant.Emplace(&v, tr.New())")
	variant.Emplace(&v, tr.New())
	t.step("v2 := variant.New[valueAlts](tr.New())")
	v2 := variant.New[valueAlts](tr.New())
	t.step("variant.EmplaceFunc(&v2, tracked.InitBroken)")
	if err := variant.EmplaceFunc(&v2, tracked.InitBroken); err != nil {
		if !errors.Is(err, tracked.ErrBroken) {
			return tr.Stats(), err
		}
		t.recovered(err)
	}
	t.show("v2.IsEmpty()", v2.IsEmpty())
	t.step("variant.Emplace(&v2, tr.New())")
	variant.Emplace(&v2, tr.New())
	t.step("v.Assign(&v2)")
	v.Assign(&v2)
	t.step("variant.Set(&v2, 7)")
	variant.Set(&v2, 7)
	t.show("*variant.Get[int](&v2)", *variant.Get[int](&v2))
	t.step("v2.MoveFrom(&v)")
	v2.MoveFrom(&v)
	t.show("v2", v2.String())
	t.step("i := 1")
	i := 1
	t.step("v3 := variant.New[valueAlts](i)")
	v3 := variant.New[valueAlts](i)
	t.step("p, ok := variant.TryGet[int](&v3)")
	if p, ok := variant.TryGet[int](&v3); ok {
		t.show("*p", *p)
	} else {
		t.show("p", p)
	}
	t.step("v2.Reset()")
	v2.Reset()

	// Reference alternatives.
	var vr refValue
	t.show("unsafe.Sizeof(refValue{})", unsafe.Sizeof(vr))
	t.step("var vr refValue")
	t.step("j := 6")
	j := 6
	t.step("variant.EmplaceRef(&vr, &j)")
	variant.EmplaceRef(&vr, &j)
	t.show("*variant.GetRef[int](&vr)", *variant.GetRef[int](&vr))
	t.step("*variant.GetRef[int](&vr) = 8")
	*variant.GetRef[int](&vr) = 8
	t.show("*variant.GetRef[int](&vr)", *variant.GetRef[int](&vr))
	t.show("j", j)

	// Read-only alternatives.
	t.step("var vc constValue")
	var vc constValue
	t.step("variant.Set(&vc, 5)")
	variant.Set(&vc, 5)
	t.show("variant.GetConst[int](&vc)", variant.GetConst[int](&vc))
	t.step("variant.EmplaceConst(&vc, tr.New())")
	variant.EmplaceConst(&vc, tr.New())
	t.step("vc.Reset()")
	vc.Reset()

	// Recursive alternatives, summed by polling.
	val := variant.New[listAlts](null{})
	heads := make([]string, length)
	for k := length - 1; k >= 0; k-- {
		val = cons(5+k, val)
		heads[k] = fmt.Sprint(5 + k)
	}
	t.step("val := " + describeList(heads))
	t.step("total := 0")
	total := 0
	for c, ok := variant.TryGet[cell](&val); ok; c, ok = variant.TryGet[cell](&val) {
		t.step("total += c.Head")
		total += c.Head
		t.step("val.Assign(&c.Tail)")
		val.Assign(&c.Tail)
		t.show("total", total)
	}

	// Recursive alternatives, summed by visitors.
	t.step("val = cons(1, cons(4, null{}))")
	short := cons(1, cons(4, variant.New[listAlts](null{})))
	val.MoveFrom(&short)
	t.show("variant.Apply[int](listSum{}, &val)", variant.Apply[int](listSum{}, &val))
	t.step("var visitor statefulSum")
	var visitor statefulSum
	t.step("val.Accept(&visitor)")
	val.Accept(&visitor)
	t.show("visitor.visits", visitor.visits)
	t.show("visitor.sum", visitor.sum)

	return tr.Stats(), nil
}

func describeList(heads []string) string {
	var b strings.Builder
	for _, h := range heads {
		b.WriteString("cons(" + h + ", ")
	}
	b.WriteString("null{}")
	b.WriteString(strings.Repeat(")", len(heads)))
	return b.String()
}
