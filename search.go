// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant

// Searches over a declared alternative list. Every search goes through
// a normalization (query or unique form); the compiled table keeps one
// index per normalization so that lookups after compilation are a
// single map access.

// duplicate reports the first two declarations whose norm forms are
// equal.
func duplicate(decls []Decl, norm func(Decl) form) (first, second int, found bool) {
	seen := make(map[form]int, len(decls))
	for i, d := range decls {
		k := norm(d)
		if j, ok := seen[k]; ok {
			return j, i, true
		}
		seen[k] = i
	}
	return -1, -1, false
}

// index maps the norm forms of a validated declaration list to their
// positions. The list must not contain norm duplicates.
func index(decls []Decl, norm func(Decl) form) map[form]int {
	m := make(map[form]int, len(decls))
	for i, d := range decls {
		m[norm(d)] = i
	}
	return m
}

// resolveQuery returns the alternative a caller names by f.
// An undeclared query is a programming error and panics.
func (t *table) resolveQuery(f form) int {
	if i, ok := t.query[f]; ok {
		return i
	}
	panic(unknownQuery(t.name, f.String()))
}

// resolveUnique returns the alternative a converting construction or
// assignment from f targets: the one whose unique form equals f.
func (t *table) resolveUnique(f form) int {
	if i, ok := t.unique[f]; ok {
		return i
	}
	panic(unknownQuery(t.name, f.String()))
}

// describe names the alternative designated by tag for diagnostics.
func (t *table) describe(tag uint32) string {
	if tag == 0 {
		return "empty"
	}
	return t.alts[tag-1].decl.String()
}
