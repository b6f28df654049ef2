// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant_test

import (
	"testing"

	"code.hybscloud.com/variant"
)

// BenchmarkEmplaceGetInline measures an inline store and load.
func BenchmarkEmplaceGetInline(b *testing.B) {
	var s scalar
	for b.Loop() {
		variant.Emplace(&s, 7)
		_ = *variant.Get[int](&s)
	}
}

// BenchmarkEmplaceBoxed measures a store that needs an owned cell.
func BenchmarkEmplaceBoxed(b *testing.B) {
	var s scalar
	for b.Loop() {
		variant.Emplace(&s, "boxed")
	}
}

// BenchmarkTryGetMiss measures a poll for an inactive alternative.
func BenchmarkTryGetMiss(b *testing.B) {
	s := variant.New[scalarAlts](1)
	for b.Loop() {
		_, _ = variant.TryGet[string](&s)
	}
}

// BenchmarkApplyList measures recursive visitor dispatch over 64 cells.
func BenchmarkApplyList(b *testing.B) {
	hs := make([]int, 64)
	for i := range hs {
		hs[i] = i
	}
	l := makeList(hs...)
	for b.Loop() {
		_ = variant.Apply[int](listSum{}, &l)
	}
}

// BenchmarkCloneList measures a deep copy of 64 cells.
func BenchmarkCloneList(b *testing.B) {
	hs := make([]int, 64)
	l := makeList(hs...)
	for b.Loop() {
		c := l.Clone()
		c.Reset()
	}
}

// BenchmarkPollList measures walking 64 cells by TryGet and MoveFrom.
func BenchmarkPollList(b *testing.B) {
	hs := make([]int, 64)
	l := makeList(hs...)
	for b.Loop() {
		c := l.Clone()
		for p, ok := variant.TryGet[cell](&c); ok; p, ok = variant.TryGet[cell](&c) {
			c.MoveFrom(&p.Tail)
		}
	}
}
