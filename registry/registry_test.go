/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry_test

import (
	"reflect"
	"testing"

	"dirpx.dev/meta/config"
	"dirpx.dev/meta/node"
	"dirpx.dev/meta/registry"
)

type Named struct{}

func (*Named) TypeName() string { return "domain.Named" }

func TestResolve_IdempotentAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	typ := reflect.TypeOf(T1{})

	if _, ok := reg.Lookup(typ); ok {
		t.Fatalf("Lookup(T1) before Resolve: want miss")
	}

	n1 := reg.Resolve(typ)
	n2 := reg.Resolve(typ)
	if n1 == nil || n1 != n2 {
		t.Fatalf("Resolve(T1) not idempotent: %p vs %p", n1, n2)
	}
	if got, ok := reg.Lookup(typ); !ok || got != n1 {
		t.Fatalf("Lookup(T1) = (%p,%v), want (%p,true)", got, ok, n1)
	}
	if got, ok := reg.LookupID(n1.ID); !ok || got != n1 {
		t.Fatalf("LookupID(%v) = (%p,%v), want (%p,true)", n1.ID, got, ok, n1)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestResolve_Nil(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	if n := reg.Resolve(nil); n != nil {
		t.Fatalf("Resolve(nil) = %v, want nil", n)
	}
	if n := reg.Register(nil); n != nil {
		t.Fatalf("Register(nil) = %v, want nil", n)
	}
	if _, ok := reg.Lookup(nil); ok {
		t.Fatalf("Lookup(nil): want miss")
	}
}

func TestResolve_Intrinsics(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	n := reg.Resolve(reflect.TypeOf(0))
	if n.ID != node.Hash("int") || n.Hash != n.ID {
		t.Fatalf("int id = %v, want %v", n.ID, node.Hash("int"))
	}
	if !n.Traits.Has(node.Arithmetic | node.Integral) {
		t.Fatalf("int traits = %v", n.Traits)
	}
	if n.ToFloat == nil || n.FromFloat == nil {
		t.Fatalf("int: arithmetic thunks missing")
	}
	if n.Size != reflect.TypeOf(0).Size() {
		t.Fatalf("int size = %d", n.Size)
	}
	if v := n.Default(); !v.CanAddr() || v.Int() != 0 {
		t.Fatalf("Default() = %v, want addressable zero", v)
	}

	p := reg.Resolve(reflect.TypeOf((*T1)(nil)))
	if !p.Traits.Has(node.Pointer | node.PointerLike) {
		t.Fatalf("*T1 traits = %v", p.Traits)
	}
	if v := p.Deref(reflect.ValueOf((*T1)(nil))); v.IsValid() {
		t.Fatalf("Deref(nil) = %v, want invalid", v)
	}

	v := reg.Resolve(node.VoidInfo)
	if v.Traits != node.VoidKind {
		t.Fatalf("void traits = %v, want Void", v.Traits)
	}
}

func TestResolve_NamerID(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	n := reg.Resolve(reflect.TypeOf(Named{}))
	if n.ID != node.Hash("domain.Named") {
		t.Fatalf("Named id = %v, want %v", n.ID, node.Hash("domain.Named"))
	}
	if n.Hash == n.ID {
		t.Fatalf("Named hash should still come from the Go type")
	}
}

func TestResetType_Tombstone(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	typ := reflect.TypeOf(T2{})
	old := reg.Resolve(typ)

	if !reg.ResetType(typ) {
		t.Fatalf("ResetType(T2) = false, want true")
	}
	if reg.ResetType(typ) {
		t.Fatalf("second ResetType(T2) = true, want false")
	}
	if n := reg.Resolve(typ); n != nil {
		t.Fatalf("Resolve after reset = %v, want nil", n)
	}
	if d := reg.Detached(typ); d == nil || d == old {
		t.Fatalf("Detached should build a fresh node")
	}
	if reg.Count() != 0 {
		t.Fatalf("Detached must not store: Count() = %d", reg.Count())
	}

	n := reg.Register(typ)
	if n == nil || n == old {
		t.Fatalf("Register after reset should create a fresh node")
	}
	if reg.Resolve(typ) != n {
		t.Fatalf("Resolve after re-register should return the new node")
	}
}

func TestResetID(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	a := reg.Resolve(reflect.TypeOf(T1{}))
	b := reg.Resolve(reflect.TypeOf(T2{}))
	b.ID = a.ID

	if got := reg.ResetID(a.ID); got != 2 {
		t.Fatalf("ResetID = %d, want 2", got)
	}
	if reg.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", reg.Count())
	}
	if got := reg.ResetID(a.ID); got != 0 {
		t.Fatalf("second ResetID = %d, want 0", got)
	}
}

func TestReset_ClearsTombstones(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	typ := reflect.TypeOf(T3{})
	reg.Resolve(typ)
	reg.ResetType(typ)
	reg.Reset()
	if n := reg.Resolve(typ); n == nil {
		t.Fatalf("Resolve after full Reset should create lazily again")
	}
}

func TestImport(t *testing.T) {
	src := registry.New(config.DefaultConfig())
	dst := registry.New(config.DefaultConfig())
	n := src.Resolve(reflect.TypeOf(T4{}))

	if !dst.Import(n) {
		t.Fatalf("Import: want true")
	}
	if dst.Import(n) {
		t.Fatalf("second Import: want false")
	}
	if got, _ := dst.Lookup(n.Info); got != n {
		t.Fatalf("imported node not stored as-is")
	}
	if dst.Import(nil) {
		t.Fatalf("Import(nil): want false")
	}
}

func TestEntries_Order(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	types := []reflect.Type{reflect.TypeOf(T5{}), reflect.TypeOf(T0{}), reflect.TypeOf(T9{})}
	for _, typ := range types {
		reg.Resolve(typ)
	}
	for i, e := range reg.Entries() {
		if e.Info != types[i] {
			t.Fatalf("Entries()[%d] = %v, want %v", i, e.Info, types[i])
		}
	}
}

func TestCyclesAndReachable(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	a := reg.Resolve(reflect.TypeOf(T1{}))
	b := reg.Resolve(reflect.TypeOf(T2{}))
	c := reg.Resolve(reflect.TypeOf(T3{}))

	a.SetBase(&node.Base{Type: b})
	b.SetBase(&node.Base{Type: c})

	if got := reg.Cycles(); len(got) != 0 {
		t.Fatalf("Cycles() = %v, want none", got)
	}
	if !reg.Reachable(a, c) {
		t.Fatalf("Reachable(a, c) = false, want true")
	}
	if reg.Reachable(c, a) {
		t.Fatalf("Reachable(c, a) = true, want false")
	}
	if !reg.Reachable(a, a) {
		t.Fatalf("a node always reaches itself")
	}

	c.SetBase(&node.Base{Type: a})
	cycles := reg.Cycles()
	if len(cycles) != 1 || len(cycles[0]) != 3 {
		t.Fatalf("Cycles() = %v, want one group of 3", cycles)
	}

	d := reg.Resolve(reflect.TypeOf(T4{}))
	d.SetBase(&node.Base{Type: d})
	if got := reg.Cycles(); len(got) != 2 {
		t.Fatalf("Cycles() with self loop = %d groups, want 2", len(got))
	}
}
