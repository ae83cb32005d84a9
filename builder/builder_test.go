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

package builder_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/builder"
	"dirpx.dev/meta/config"
	"dirpx.dev/meta/node"
	"dirpx.dev/meta/registry"
)

// userType is a plain named type with no special behavior.
type userType struct{ N int }

// wrapped embeds userType so base traversal can be exercised.
type wrapped struct{ userType }

// tagStrategy handles casts to string only, as an external extension.
type tagStrategy struct{}

func (tagStrategy) TryCast(_ *node.Type, _ reflect.Value, dst reflect.Type) (reflect.Value, bool) {
	if dst.Kind() != reflect.String {
		return reflect.Value{}, false
	}
	return reflect.ValueOf("tag"), true
}

func (tagStrategy) CanCast(_ *node.Type, dst reflect.Type) bool { return dst.Kind() == reflect.String }

// TestBuildRegistry_Basic asserts that BuildRegistry returns a non-nil,
// working Registry that supports Resolve/Lookup/Entries/Count.
func TestBuildRegistry_Basic(t *testing.T) {
	b := builder.New()

	// prev may be nil; this must still produce a valid registry.
	reg := b.BuildRegistry(config.DefaultConfig(), nil, nil)
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}

	tt := reflect.TypeOf(userType{})
	n := reg.Resolve(tt)
	if n == nil {
		t.Fatal("Resolve returned nil")
	}
	if got, ok := reg.Lookup(tt); !ok || got != n {
		t.Fatalf("Lookup mismatch: ok=%v got=%p want=%p", ok, got, n)
	}
	if c := reg.Count(); c != 1 {
		t.Fatalf("Count = %d, want 1", c)
	}
}

// TestBuildRegistry_MigratesNodes verifies nodes move as-is from a previous
// registry, keeping identity and members.
func TestBuildRegistry_MigratesNodes(t *testing.T) {
	prev := registry.New(config.DefaultConfig())
	n := prev.Resolve(reflect.TypeOf(userType{}))
	n.Props = append(n.Props, node.Prop{Key: "k"})

	reg := builder.New().BuildRegistry(config.DefaultConfig(), prev, nil)
	got, ok := reg.Lookup(reflect.TypeOf(userType{}))
	if !ok || got != n {
		t.Fatalf("migrated node mismatch: ok=%v got=%p want=%p", ok, got, n)
	}
	if len(got.Props) != 1 {
		t.Fatalf("migrated node lost its props")
	}
}

// TestBuildResolver_Order verifies the builtin chain handles identity,
// arithmetic and base casts, and that extensions run after the builtins.
func TestBuildResolver_Order(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	reg := b.BuildRegistry(cfg, nil, nil)

	res := b.BuildResolver(cfg, reg, nil, tagStrategy{})
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}

	i := reg.Resolve(reflect.TypeOf(0))
	out, ok := res.Cast(i, reflect.ValueOf(7), reflect.TypeOf(0.0))
	if !ok || out.Float() != 7 {
		t.Fatalf("arithmetic cast = (%v,%v), want (7,true)", out, ok)
	}

	wt := reflect.TypeOf(wrapped{})
	w := reg.Resolve(wt)
	w.SetBase(&node.Base{
		Type: reg.Resolve(reflect.TypeOf(userType{})),
		Cast: func(v reflect.Value) reflect.Value { return v.Field(0) },
	})
	v := reflect.ValueOf(&wrapped{userType{N: 3}}).Elem()
	out, ok = res.Cast(w, v, reflect.TypeOf(userType{}))
	if !ok || out.Field(0).Int() != 3 {
		t.Fatalf("base cast = (%v,%v)", out, ok)
	}

	// Identity wins over the extension for string -> string.
	s := reg.Resolve(reflect.TypeOf(""))
	out, ok = res.Cast(s, reflect.ValueOf("x"), reflect.TypeOf(""))
	if !ok || out.String() != "x" {
		t.Fatalf("identity cast = (%v,%v), want (x,true)", out, ok)
	}
	// The extension handles what the builtins cannot.
	out, ok = res.Cast(i, reflect.ValueOf(1), reflect.TypeOf(""))
	if !ok || out.String() != "tag" {
		t.Fatalf("extension cast = (%v,%v), want (tag,true)", out, ok)
	}
}

// TestBuildResolver_Concurrency_Smoke hammers the resolver in parallel to ensure
// it is safe to call Cast/CanCast concurrently after being built.
func TestBuildResolver_Concurrency_Smoke(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	reg := b.BuildRegistry(cfg, nil, nil)
	res := b.BuildResolver(cfg, reg, nil, []apis.Strategy{tagStrategy{}})

	types := []reflect.Type{
		reflect.TypeOf(0),
		reflect.TypeOf(0.0),
		reflect.TypeOf(int8(0)),
		reflect.TypeOf(""),
	}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				src := reg.Resolve(types[(i+id)%len(types)])
				dst := types[(i+id+1)%len(types)]
				_ = res.CanCast(src, dst)
				_, _ = res.Cast(src, src.Default(), dst)
			}
		}(w)
	}

	wg.Wait()
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()
