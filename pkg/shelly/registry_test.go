// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shelly

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var conceptArgs = []string{
	"-f", "test.txt",
	"-t", "3",
	"-v", "-v",
	"--hash=35t1251",
	"-z", "1", "-z", "3", "-z", "6",
}

var doubleInt = Type(func(s string) (int, error) {
	n, err := strconv.Atoi(s)
	return 2 * n, err
})

func TestFireEndToEnd(t *testing.T) {
	reg := New(conceptArgs)

	var got map[string]any
	reg.Shell().
		Option("-f", "file_name", String, Describe("File name"), Required()).
		Option("-t", "twice", doubleInt, Describe("Twice"), Required()).
		Flag("-v", "verbosity_level", Describe("Verbosity level")).
		Switch("--hash", "hash_value", String, Describe("Hash value")).
		Chain("-z", "chain", Int).
		Bind(func(b Bound) error {
			got = make(map[string]any)
			for _, name := range b.Names() {
				got[name] = b.Value(name)
			}
			if d := b["file_name"].Description(); d != "File name" {
				t.Errorf("Description() = %q, want %q", d, "File name")
			}
			return nil
		})

	if err := reg.FireAll(); err != nil {
		t.Fatalf("FireAll() error = %v", err)
	}
	want := map[string]any{
		"file_name":       "test.txt",
		"twice":           6,
		"verbosity_level": 2,
		"hash_value":      "35t1251",
		"chain":           []any{1, 3, 6},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bound values mismatch (-want +got):\n%s", diff)
	}
}

func TestFireRequiredMissing(t *testing.T) {
	args := slicesWithout(conceptArgs, 0, 2) // drop "-f test.txt"
	reg := New(args)

	called := false
	set := reg.Shell().
		Option("-f", "file_name", String, Required()).
		Flag("-v", "verbosity_level").
		Bind(func(Bound) error {
			called = true
			return nil
		})

	err := reg.FireAll()
	var rae *RequiredArgumentError
	if !errors.As(err, &rae) {
		t.Fatalf("FireAll() error = %v, want *RequiredArgumentError", err)
	}
	if rae.Key != "-f" {
		t.Errorf("Key = %q, want %q", rae.Key, "-f")
	}
	if rae.Kind != BucketOptions {
		t.Errorf("Kind = %q, want %q", rae.Kind, BucketOptions)
	}
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("error %v does not wrap ErrKeyNotFound", err)
	}
	if !strings.Contains(err.Error(), "-f") {
		t.Errorf("error %q does not name the key", err)
	}
	if called {
		t.Error("callback was invoked")
	}
	if set.State() != Armed {
		t.Errorf("State() = %v, want armed", set.State())
	}
}

func slicesWithout(s []string, from, to int) []string {
	out := append([]string(nil), s[:from]...)
	return append(out, s[to:]...)
}

func TestRequiredOptionalBoundary(t *testing.T) {
	tests := []struct {
		name     string
		register func(*Set, bool) *Set
		empty    any
	}{
		{"option", func(s *Set, req bool) *Set { return s.Option("-q", "q", Int, RequiredIf(req)) }, nil},
		{"switch", func(s *Set, req bool) *Set { return s.Switch("--q", "q", Int, RequiredIf(req)) }, nil},
		{"flag", func(s *Set, req bool) *Set { return s.Flag("-q", "q", RequiredIf(req)) }, 0},
		{"chain", func(s *Set, req bool) *Set { return s.Chain("-q", "q", Int, RequiredIf(req)) }, []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/optional", func(t *testing.T) {
			reg := New([]string{"-x", "1"})
			set := tt.register(reg.Shell(), false)
			if err := set.Parse(); err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			spec := set.Specs()[0]
			if spec.Parsed() {
				t.Error("Parsed() = true for absent key")
			}
			if diff := cmp.Diff(tt.empty, spec.Value()); diff != "" {
				t.Errorf("Value() mismatch (-want +got):\n%s", diff)
			}
		})
		t.Run(tt.name+"/required", func(t *testing.T) {
			reg := New([]string{"-x", "1"})
			set := tt.register(reg.Shell(), true)
			var rae *RequiredArgumentError
			if err := set.Parse(); !errors.As(err, &rae) {
				t.Fatalf("Parse() error = %v, want *RequiredArgumentError", err)
			}
		})
	}
}

func TestRequiredTrailingValue(t *testing.T) {
	reg := New([]string{"-z", "1", "-z"})
	set := reg.Shell().Chain("-z", "z", Int, Required())
	err := set.Parse()
	if !errors.Is(err, ErrMissingValue) {
		t.Fatalf("Parse() error = %v, want ErrMissingValue", err)
	}

	reg = New([]string{"-z", "1", "-z"})
	set = reg.Shell().Chain("-z", "z", Int)
	if err := set.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff([]any{}, set.Specs()[0].Value()); diff != "" {
		t.Errorf("optional chain mismatch (-want +got):\n%s", diff)
	}
}

func TestDecimalIntegers(t *testing.T) {
	reg := New([]string{"-n", "08", "-z", "010", "-z", "020", "-x", "0x10"})
	set := reg.Shell().
		Option("-n", "n", Int, Required()).
		Chain("-z", "z", Int).
		Option("-x", "x", Int)
	if err := set.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	b := set.Bound()
	if v := b.Value("n"); v != 8 {
		t.Errorf("n = %v, want 8", v)
	}
	if diff := cmp.Diff([]any{10, 20}, b.Value("z")); diff != "" {
		t.Errorf("z mismatch (-want +got):\n%s", diff)
	}
	if b["x"].Parsed() {
		t.Errorf("x = %v, want hex input rejected", b.Value("x"))
	}
}

func TestParseIdempotent(t *testing.T) {
	reg := New(conceptArgs)
	set := reg.Shell().
		Option("-t", "twice", doubleInt).
		Flag("-v", "v").
		Chain("-z", "z", Int)

	if err := set.Parse(); err != nil {
		t.Fatalf("first Parse() error = %v", err)
	}
	first := set.Bound()
	firstVals := map[string]any{}
	for name := range first {
		firstVals[name] = first.Value(name)
	}
	if err := set.Parse(); err != nil {
		t.Fatalf("second Parse() error = %v", err)
	}
	second := set.Bound()
	for name, v := range firstVals {
		if diff := cmp.Diff(v, second.Value(name)); diff != "" {
			t.Errorf("%s changed between parses (-first +second):\n%s", name, diff)
		}
	}
}

func TestSetOrderAndReplacement(t *testing.T) {
	reg := New([]string{"--a=1", "-b", "2", "-c", "-d", "4"})
	set := reg.Shell().
		Switch("--a", "a", Int).
		Option("-b", "b", Int).
		Flag("-c", "c").
		Chain("-d", "d", Int).
		Option("-b", "b2", Int)

	var got []string
	for _, s := range set.Specs() {
		got = append(got, s.Kind()+":"+s.Name())
	}
	want := []string{"chains:d", "flags:c", "options:b2", "switches:a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Specs() order mismatch (-want +got):\n%s", diff)
	}
	if set.Len() != 4 {
		t.Errorf("Len() = %d, want 4", set.Len())
	}
	if s, ok := set.Lookup(BucketOptions, "-b"); !ok || s.Name() != "b2" {
		t.Errorf("Lookup(options, -b) = %v, %v", s, ok)
	}
}

func TestSetDefaultName(t *testing.T) {
	reg := New([]string{"--out", "x"})
	set := reg.Shell().Option("--out", "", String)
	if got := set.Specs()[0].Name(); got != "out" {
		t.Errorf("Name() = %q, want %q", got, "out")
	}
}

func TestBindFirstWins(t *testing.T) {
	reg := New([]string{"-v"})
	var calls []string
	reg.Shell().
		Flag("-v", "v").
		Bind(func(Bound) error { calls = append(calls, "first"); return nil }).
		Bind(func(Bound) error { calls = append(calls, "second"); return nil })

	if err := reg.FireAll(); err != nil {
		t.Fatalf("FireAll() error = %v", err)
	}
	if diff := cmp.Diff([]string{"first"}, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistrationErrors(t *testing.T) {
	tests := []struct {
		name    string
		set     func(*Set) *Set
		wantErr error
	}{
		{"unknown method", func(s *Set) *Set { return s.Register("pair", "-D", "d", String) }, ErrUnknownMethod},
		{"long flag key", func(s *Set) *Set { return s.Flag("--verbose", "v") }, ErrInvalidKey},
		{"empty key", func(s *Set) *Set { return s.Option("", "x", String) }, ErrInvalidKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New(nil)
			called := false
			tt.set(reg.Shell()).Bind(func(Bound) error { called = true; return nil })
			if err := reg.FireAll(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("FireAll() error = %v, want %v", err, tt.wantErr)
			}
			if called {
				t.Error("callback was invoked")
			}
		})
	}
}

func TestFireAllPrunesAndOrders(t *testing.T) {
	reg := New([]string{"-v", "-n", "5"})
	var order []string

	empty := reg.Shell().Bind(func(Bound) error { order = append(order, "empty"); return nil })
	reg.Shell().Flag("-v", "v").Bind(func(Bound) error { order = append(order, "first"); return nil })
	reg.Shell().Option("-n", "n", Int).Bind(func(Bound) error { order = append(order, "second"); return nil })

	if err := reg.FireAll(); err != nil {
		t.Fatalf("FireAll() error = %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, order); diff != "" {
		t.Errorf("fire order mismatch (-want +got):\n%s", diff)
	}
	if empty.State() != Pruned {
		t.Errorf("empty set State() = %v, want pruned", empty.State())
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
	for _, s := range reg.Sets() {
		if s.State() != Fired {
			t.Errorf("set %s State() = %v, want fired", s.ID(), s.State())
		}
	}

	// A second pass does not fire anything again.
	if err := reg.FireAll(); err != nil {
		t.Fatalf("second FireAll() error = %v", err)
	}
	if len(order) != 2 {
		t.Errorf("callbacks ran %d times, want 2", len(order))
	}
}

func TestFireAllStopsAtFirstError(t *testing.T) {
	reg := New([]string{"-v"})
	var order []string
	first := reg.Shell().Flag("-v", "v").Bind(func(Bound) error { order = append(order, "first"); return nil })
	reg.Shell().Option("-f", "f", String, Required()).Bind(func(Bound) error { order = append(order, "broken"); return nil })
	last := reg.Shell().Flag("-v", "v").Bind(func(Bound) error { order = append(order, "last"); return nil })

	var rae *RequiredArgumentError
	if err := reg.FireAll(); !errors.As(err, &rae) {
		t.Fatalf("FireAll() error = %v, want *RequiredArgumentError", err)
	}
	if diff := cmp.Diff([]string{"first"}, order); diff != "" {
		t.Errorf("fire order mismatch (-want +got):\n%s", diff)
	}
	if first.State() != Fired || last.State() != Armed {
		t.Errorf("states = %v, %v, want fired, armed", first.State(), last.State())
	}
	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
}

func TestFireNotBound(t *testing.T) {
	reg := New([]string{"-v"})
	reg.Shell().Flag("-v", "v")
	if err := reg.FireAll(); !errors.Is(err, ErrNotBound) {
		t.Fatalf("FireAll() error = %v, want ErrNotBound", err)
	}
}

func TestFireCallbackError(t *testing.T) {
	reg := New([]string{"-v"})
	boom := errors.New("boom")
	reg.Shell().Flag("-v", "v").Bind(func(Bound) error { return boom })
	if err := reg.FireAll(); !errors.Is(err, boom) {
		t.Fatalf("FireAll() error = %v, want boom", err)
	}
}

func TestStates(t *testing.T) {
	reg := New([]string{"-v"})
	s := reg.Shell()
	if s.State() != Pending {
		t.Fatalf("new set State() = %v, want pending", s.State())
	}
	s.Flag("-v", "v")
	if s.State() != Pending {
		t.Fatalf("State() without callback = %v, want pending", s.State())
	}
	s.Bind(func(Bound) error { return nil })
	if s.State() != Armed {
		t.Fatalf("State() = %v, want armed", s.State())
	}
	if err := s.Fire(); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	if s.State() != Fired {
		t.Fatalf("State() = %v, want fired", s.State())
	}
	if got := State(42).String(); got != "State(42)" {
		t.Errorf("String() = %q", got)
	}
}

func TestRegistryLogf(t *testing.T) {
	reg := New([]string{"-v"})
	var lines []string
	reg.Logf = func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}
	reg.Shell()
	reg.Shell().Flag("-v", "v").Bind(func(Bound) error { return nil })
	if err := reg.FireAll(); err != nil {
		t.Fatalf("FireAll() error = %v", err)
	}
	var pruned, fired bool
	for _, l := range lines {
		pruned = pruned || strings.Contains(l, "pruned")
		fired = fired || strings.Contains(l, "firing")
	}
	if !pruned || !fired {
		t.Errorf("log lines %q missing prune or fire", lines)
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Cleanup(Reset)

	Init([]string{"-n", "4"})
	var n int
	Shell().Option("-n", "n", Int).Bind(func(b Bound) error {
		n, _ = As[int](b["n"])
		return nil
	})
	if err := FireAll(); err != nil {
		t.Fatalf("FireAll() error = %v", err)
	}
	if n != 4 {
		t.Errorf("n = %d, want 4", n)
	}

	Reset()
	if Default() == nil || Default().Len() != 0 {
		t.Error("Default() after Reset() is not a fresh registry")
	}
}

func TestRegistryReset(t *testing.T) {
	reg := New([]string{"-v"})
	reg.Shell().Flag("-v", "v")
	if err := reg.Plug(Extension{Method: "pair", Strategy: OptionStrategy}); err != nil {
		t.Fatalf("Plug() error = %v", err)
	}
	reg.Reset()
	if reg.Len() != 0 || len(reg.Extensions()) != 0 {
		t.Errorf("Reset() left %d sets and %d extensions", reg.Len(), len(reg.Extensions()))
	}
	if diff := cmp.Diff(Args{"-v"}, reg.Args()); diff != "" {
		t.Errorf("Args() mismatch (-want +got):\n%s", diff)
	}
}
