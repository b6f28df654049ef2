// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant

import (
	"reflect"
	"strings"
	"testing"
	"unsafe"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type probe struct{}

type probeAlts struct{}

func (probeAlts) Alternatives() []Decl { return []Decl{Of[probe](), Of[int]()} }

type embedded struct {
	A    int
	V    Variant[probeAlts]
	Arr  [3]Variant[probeAlts]
	Skip []Variant[probeAlts]
	Ptr  *Variant[probeAlts]
}

func TestFormNormalization(t *testing.T) {
	cases := []struct {
		decl   Decl
		query  string
		unique string
		store  store
		member member
	}{
		{Of[int](), "int", "int", storeValue, memberInline},
		{OfConst[int](), "const int", "int", storeValue, memberInline},
		{OfRef[int](), "*int", "*int", storeRef, memberRef},
		{OfConstRef[int](), "const *int", "*int", storeRef, memberRef},
		{Recursive(Of[int]()), "int", "int", storeRecursive, memberBox},
		{Recursive(OfConst[int]()), "const int", "int", storeRecursive, memberBox},
		{Of[string](), "string", "string", storeValue, memberBox},
		{Of[[2]uint64](), "[2]uint64", "[2]uint64", storeValue, memberInline},
		{Of[[3]uint64](), "[3]uint64", "[3]uint64", storeValue, memberBox},
		{Of[struct{}](), "struct {}", "struct {}", storeValue, memberInline},
		{Of[*int](), "*int", "*int", storeValue, memberBox},
	}
	for _, tc := range cases {
		d := tc.decl
		if got := d.queryForm().String(); got != tc.query {
			t.Errorf("%v: query form %q, want %q", d, got, tc.query)
		}
		if got := d.uniqueForm().String(); got != tc.unique {
			t.Errorf("%v: unique form %q, want %q", d, got, tc.unique)
		}
		if got := d.storeForm(); got != tc.store {
			t.Errorf("%v: store form %d, want %d", d, got, tc.store)
		}
		if got := d.memberForm(); got != tc.member {
			t.Errorf("%v: member form %v, want %v", d, got, tc.member)
		}
	}
}

func TestPointerTypeIsNotReference(t *testing.T) {
	// A value alternative of pointer type and a reference alternative of
	// the pointee share a printed form but not an identity.
	if Of[*int]().uniqueForm() == OfRef[int]().uniqueForm() {
		t.Fatal("Of[*int] and OfRef[int] collide")
	}
}

func TestFitsInline(t *testing.T) {
	cases := map[reflect.Type]bool{
		reflect.TypeFor[int8]():        true,
		reflect.TypeFor[complex128](): true,
		reflect.TypeFor[[16]byte]():    true,
		reflect.TypeFor[[17]byte]():    false,
		reflect.TypeFor[string]():      false,
		reflect.TypeFor[[]int]():       false,
		reflect.TypeFor[map[int]int](): false,
		reflect.TypeFor[func()]():      false,
		reflect.TypeFor[any]():         false,
		reflect.TypeFor[[0]*int]():     true,
		reflect.TypeFor[struct {
			A int32
			B float64
		}](): true,
		reflect.TypeFor[struct {
			A int32
			P *int
		}](): false,
	}
	for typ, want := range cases {
		if got := fitsInline(typ); got != want {
			t.Errorf("fitsInline(%v) = %v, want %v", typ, got, want)
		}
	}
	if inlineSize != 16 {
		t.Fatalf("inlineSize = %d, want 16", inlineSize)
	}
}

func TestNestedSites(t *testing.T) {
	sites := nestedSites(reflect.TypeFor[embedded](), 0, nil)
	if len(sites) != 4 {
		t.Fatalf("sites = %d, want 4", len(sites))
	}
	typ := reflect.TypeFor[embedded]()
	v, _ := typ.FieldByName("V")
	arr, _ := typ.FieldByName("Arr")
	size := reflect.TypeFor[Variant[probeAlts]]().Size()
	want := []uintptr{v.Offset, arr.Offset, arr.Offset + size, arr.Offset + 2*size}
	for i, s := range sites {
		if s.offset != want[i] {
			t.Errorf("site %d offset = %d, want %d", i, s.offset, want[i])
		}
	}

	var e embedded
	Emplace(&e.Arr[1], 7)
	n := sites[2].at(unsafe.Pointer(&e))
	n.release()
	if !e.Arr[1].IsEmpty() {
		t.Fatal("release through a site did not reach the element")
	}

	if got := nestedSites(reflect.TypeFor[Variant[probeAlts]](), 0, nil); len(got) != 1 {
		t.Fatalf("a variant payload has %d sites, want 1", len(got))
	}
}

func TestDuplicateAndIndex(t *testing.T) {
	decls := []Decl{Of[int](), OfRef[int](), OfConst[string](), OfConst[int]()}
	i, j, found := duplicate(decls, Decl.uniqueForm)
	if !found || i != 0 || j != 3 {
		t.Fatalf("duplicate = %d, %d, %v", i, j, found)
	}
	if _, _, found := duplicate(decls, Decl.queryForm); found {
		t.Fatal("query forms are distinct")
	}

	idx := index(decls[:3], Decl.queryForm)
	if idx[queryOf[int](qualRef)] != 1 || idx[queryOf[string](qualConst)] != 2 {
		t.Fatalf("index = %v", idx)
	}
}

func TestCompileLimits(t *testing.T) {
	decls := make([]Decl, MaxAlternatives+1)
	for i := range decls {
		decls[i] = Of[int]()
	}
	_, err := compile("big", decls)
	if err == nil || !strings.Contains(err.Error(), "exceed the limit") {
		t.Fatalf("compile = %v", err)
	}
}

func TestTableDescribe(t *testing.T) {
	tab, err := compile("probe", []Decl{Of[probe](), Recursive(OfConst[int]())})
	if err != nil {
		t.Fatal(err)
	}
	if got := tab.describe(0); got != "empty" {
		t.Errorf("describe(0) = %q", got)
	}
	if got := tab.describe(2); got != "recursive const int" {
		t.Errorf("describe(2) = %q", got)
	}
	if !tab.mayAlias(1) || tab.mayAlias(0) {
		t.Error("mayAlias disagrees with the recursive marker")
	}
}

func TestMayAliasEmbedded(t *testing.T) {
	tab, err := compile("embedded", []Decl{Of[int](), Of[embedded]()})
	if err != nil {
		t.Fatal(err)
	}
	if tab.mayAlias(0) || !tab.mayAlias(1) {
		t.Fatal("payloads embedding variants may alias")
	}
}

func TestCompileLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	if _, err := compile("logged", []Decl{Of[int](), Of[string](), Recursive(Of[probe]())}); err != nil {
		t.Fatal(err)
	}
	entries := logs.FilterMessage("variant: schema compiled").All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["schema"] != "logged" || fields["alternatives"] != int64(3) ||
		fields["inline"] != int64(1) || fields["recursive"] != int64(1) {
		t.Fatalf("fields = %v", fields)
	}

	if Logger() == nopLogger {
		t.Fatal("SetLogger did not install the logger")
	}
	SetLogger(nil)
	if Logger() != nopLogger {
		t.Fatal("SetLogger(nil) did not restore the no-op logger")
	}
}

func TestErrorFormatting(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{emptyVariant("s"), "variant: empty variant in s"},
		{nilReference("s", "*int"), "variant: nil reference in s: want *int"},
		{illFormed("s", "oops"), "variant: ill-formed in s: oops"},
		{wrongAlternative("s", "a", "b"), "variant: wrong alternative in s: want a, have b"},
		{unknownQuery("s", "bool"), "variant: ill-formed in s: want bool - type is not an alternative of this schema"},
		{&Error{}, "variant: unknown"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
	if ErrEmpty.Is(ErrWrongAlternative) || !emptyVariant("x").Is(ErrEmpty) {
		t.Fatal("Is compares codes")
	}
}
