// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shelly

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBoundAccessors(t *testing.T) {
	reg := New([]string{"-f", "a.txt", "-z", "1", "-z", "2"})
	set := reg.Shell().
		Option("-f", "file", String).
		Option("-t", "missing", Int).
		Chain("-z", "sizes", Int)
	if err := set.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	b := set.Bound()

	if diff := cmp.Diff([]string{"file", "missing", "sizes"}, b.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if v, ok := As[string](b["file"]); !ok || v != "a.txt" {
		t.Errorf("As[string](file) = %q, %v", v, ok)
	}
	if _, ok := As[int](b["missing"]); ok {
		t.Error("As[int](missing) reported a value")
	}
	if _, ok := As[int](b["nope"]); ok {
		t.Error("As[int] on an unknown name reported a value")
	}
	if b.Value("nope") != nil {
		t.Error("Value(nope) is not nil")
	}
	sizes, ok := AsSlice[int](b["sizes"])
	if !ok {
		t.Fatal("AsSlice[int](sizes) failed")
	}
	if diff := cmp.Diff([]int{1, 2}, sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	if _, ok := AsSlice[string](b["sizes"]); ok {
		t.Error("AsSlice[string] accepted ints")
	}
	if got := b["sizes"].Indices(); !cmp.Equal(got, []int{2, 4}) {
		t.Errorf("Indices() = %v, want [2 4]", got)
	}
}
