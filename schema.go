// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Schema declares the closed, ordered set of alternatives of a
// [Variant]. Implement it on a zero-size struct type; the type itself is
// the schema's identity and its method is called once, when the schema
// is first used.
//
//	type shapeAlts struct{}
//
//	func (shapeAlts) Alternatives() []variant.Decl {
//		return []variant.Decl{variant.Of[Circle](), variant.Of[Square]()}
//	}
//
//	type Shape = variant.Variant[shapeAlts]
//
// Alternatives must be pairwise distinct after normalization: a type
// may appear once as a value (plain, const or recursive) and once as a
// reference (plain or const).
type Schema interface {
	Alternatives() []Decl
}

// MaxAlternatives bounds the number of alternatives of one schema.
const MaxAlternatives = 1 << 16

// entry is one compiled alternative.
type entry struct {
	decl   Decl
	ops    ops
	member member
}

// table is a compiled schema: the operation table addressed by
// alternative index, plus the query and unique indexes.
type table struct {
	query  map[form]int
	unique map[form]int
	name   string
	alts   []entry
}

// tables caches compiled schemas by schema type.
var tables sync.Map // reflect.Type -> *table

// tableFor returns the compiled table of S, compiling it on first use.
// An ill-formed schema panics with an *Error of code [CodeIllFormed].
func tableFor[S Schema]() *table {
	t, err := lookupTable[S]()
	if err != nil {
		panic(err)
	}
	return t
}

func lookupTable[S Schema]() (*table, error) {
	key := typeOf[S]()
	if cached, ok := tables.Load(key); ok {
		return cached.(*table), nil
	}

	var s S
	t, err := compile(key.String(), s.Alternatives())
	if err != nil {
		return nil, err
	}

	actual, _ := tables.LoadOrStore(key, t)
	return actual.(*table), nil
}

// Check compiles S and reports whether it is well formed. Calling it
// from an init function turns an ill-formed schema into a start-up
// failure instead of a panic at first use.
//
//	func init() {
//		if err := variant.Check[listAlts](); err != nil {
//			panic(err)
//		}
//	}
func Check[S Schema]() error {
	_, err := lookupTable[S]()
	return err
}

// Alternatives returns the compiled declarations of S in order.
func Alternatives[S Schema]() []Decl {
	t := tableFor[S]()
	decls := make([]Decl, len(t.alts))
	for i := range t.alts {
		decls[i] = t.alts[i].decl
	}
	return decls
}

func compile(name string, decls []Decl) (*table, error) {
	if len(decls) == 0 {
		return nil, illFormed(name, "schema declares no alternatives")
	}
	if len(decls) > MaxAlternatives {
		return nil, illFormed(name, fmt.Sprintf("%d alternatives exceed the limit of %d", len(decls), MaxAlternatives))
	}
	for i, d := range decls {
		if why := d.validate(); why != "" {
			return nil, illFormed(name, fmt.Sprintf("alternative %d: %s", i, why))
		}
	}
	if i, j, found := duplicate(decls, Decl.uniqueForm); found {
		return nil, illFormed(name, fmt.Sprintf("alternatives %d (%s) and %d (%s) are duplicates", i, decls[i], j, decls[j]))
	}

	t := &table{
		query:  index(decls, Decl.queryForm),
		unique: index(decls, Decl.uniqueForm),
		name:   name,
		alts:   make([]entry, len(decls)),
	}
	inline, recursive := 0, 0
	for i, d := range decls {
		m := d.memberForm()
		t.alts[i] = entry{decl: d, ops: d.bind(m, d.kind), member: m}
		if m == memberInline {
			inline++
		}
		if d.recursive {
			recursive++
		}
	}

	Logger().Debug("variant: schema compiled",
		zap.String("schema", name),
		zap.Int("alternatives", len(decls)),
		zap.Int("inline", inline),
		zap.Int("recursive", recursive),
	)
	return t, nil
}
