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
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/config"
	"dirpx.dev/meta/registry"
)

// A few named types to avoid anonymous/unnamed pitfalls.
type T0 struct{}
type T1 struct{}
type T2 struct{}
type T3 struct{}
type T4 struct{}
type T5 struct{}
type T6 struct{}
type T7 struct{}
type T8 struct{}
type T9 struct{}

// TestConcurrentResolveAndLookup verifies that Resolve/Lookup/Entries/Count
// are race-free and converge on one node per type under concurrent use.
func TestConcurrentResolveAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	types := []reflect.Type{
		reflect.TypeOf(T0{}), reflect.TypeOf(T1{}), reflect.TypeOf(T2{}),
		reflect.TypeOf(T3{}), reflect.TypeOf(T4{}), reflect.TypeOf(T5{}),
		reflect.TypeOf(T6{}), reflect.TypeOf(T7{}), reflect.TypeOf(T8{}),
		reflect.TypeOf(T9{}),
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	seen := make([]sync.Map, len(types))

	// Writers (lazy creation races)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + id) % len(types)
				n := reg.Resolve(types[j])
				if n == nil {
					t.Errorf("Resolve(%v) returned nil", types[j])
					return
				}
				seen[j].Store(n, struct{}{})
			}
		}(w)
	}

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				if n, ok := reg.Lookup(types[i%len(types)]); ok && n == nil {
					t.Errorf("lookup hit with nil node")
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	wg.Wait()

	// Final consistency checks.
	if reg.Count() != len(types) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(types))
	}
	for j := range types {
		count := 0
		seen[j].Range(func(_, _ any) bool { count++; return true })
		if count != 1 {
			t.Fatalf("%v resolved to %d distinct nodes, want 1", types[j], count)
		}
	}
}

// TestResetSnapshot ensures Reset is safe and Entries returns a stable snapshot.
func TestResetSnapshot(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	reg.Resolve(reflect.TypeOf(T0{}))
	reg.Resolve(reflect.TypeOf(T1{}))

	snap := reg.Entries() // snapshot copy expected
	reg.Reset()

	// After Reset, Count() should be 0, but previous snapshot must still be usable.
	if reg.Count() != 0 {
		t.Fatalf("count after reset: got %d want 0", reg.Count())
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot length changed unexpectedly: %d", len(snap))
	}
	// sanity
	if snap[0].Info == nil || snap[1].Info == nil {
		t.Fatalf("snapshot contents invalid after reset")
	}
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Registry = registry.New(config.DefaultConfig())
