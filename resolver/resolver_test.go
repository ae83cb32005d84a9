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

package resolver_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/config"
	"dirpx.dev/meta/node"
	"dirpx.dev/meta/registry"
	"dirpx.dev/meta/resolver"
	"dirpx.dev/meta/strategy"
)

type stubStrategy struct {
	dst reflect.Type
	out reflect.Value
}

func (s stubStrategy) TryCast(_ *node.Type, _ reflect.Value, dst reflect.Type) (reflect.Value, bool) {
	if dst != s.dst {
		return reflect.Value{}, false
	}
	return s.out, true
}

func (s stubStrategy) CanCast(_ *node.Type, dst reflect.Type) bool { return dst == s.dst }

var (
	intT   = reflect.TypeOf(0)
	floatT = reflect.TypeOf(0.0)
	strT   = reflect.TypeOf("")
)

func newChain() apis.Resolver {
	return resolver.New(
		strategy.NewIdentityStrategy(),
		strategy.NewConvStrategy(),
		strategy.NewArithmeticStrategy(),
		nil, // ignored
	)
}

func TestChain_OrderAndNil(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	src := reg.Resolve(intT)

	first := stubStrategy{dst: strT, out: reflect.ValueOf("first")}
	second := stubStrategy{dst: strT, out: reflect.ValueOf("second")}
	r := resolver.New(nil, first, second)

	out, ok := r.Cast(src, reflect.ValueOf(1), strT)
	if !ok || out.String() != "first" {
		t.Fatalf("Cast = (%v,%v), want (first,true)", out, ok)
	}
	if _, ok := r.Cast(src, reflect.ValueOf(1), floatT); ok {
		t.Fatalf("Cast to unhandled type should fail")
	}
	if _, ok := r.Cast(nil, reflect.ValueOf(1), strT); ok {
		t.Fatalf("Cast from nil node should fail")
	}
	if !r.CanCast(src, strT) || r.CanCast(src, floatT) {
		t.Fatalf("CanCast mismatch")
	}
}

func TestBest_ExactBeatsCast(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	r := newChain()
	cands := [][]reflect.Type{{floatT}, {intT}}

	got, err := resolver.Best(r, cands, []*node.Type{reg.Resolve(intT)})
	if err != nil || got != 1 {
		t.Fatalf("Best(int) = (%d,%v), want (1,nil)", got, err)
	}
	got, err = resolver.Best(r, cands, []*node.Type{reg.Resolve(floatT)})
	if err != nil || got != 0 {
		t.Fatalf("Best(float64) = (%d,%v), want (0,nil)", got, err)
	}
}

func TestBest_Ambiguous(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	r := newChain()
	cands := [][]reflect.Type{{intT}, {floatT}}

	_, err := resolver.Best(r, cands, []*node.Type{reg.Resolve(reflect.TypeOf(int8(0)))})
	if !errors.Is(err, resolver.ErrAmbiguous) {
		t.Fatalf("Best(int8) err = %v, want ErrAmbiguous", err)
	}
}

func TestBest_NoMatch(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	r := newChain()

	cases := map[string]struct {
		cands [][]reflect.Type
		args  []*node.Type
	}{
		"arity":  {[][]reflect.Type{{intT, intT}}, []*node.Type{reg.Resolve(intT)}},
		"type":   {[][]reflect.Type{{intT}}, []*node.Type{reg.Resolve(strT)}},
		"empty":  {nil, []*node.Type{reg.Resolve(intT)}},
		"no arg": {[][]reflect.Type{{intT}}, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := resolver.Best(r, tc.cands, tc.args); !errors.Is(err, resolver.ErrNoMatch) {
				t.Fatalf("err = %v, want ErrNoMatch", err)
			}
		})
	}
}

func TestBest_ZeroArity(t *testing.T) {
	got, err := resolver.Best(newChain(), [][]reflect.Type{{intT}, {}}, nil)
	if err != nil || got != 1 {
		t.Fatalf("Best() = (%d,%v), want (1,nil)", got, err)
	}
}

func TestBest_LowestTotalWins(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	r := newChain()
	cands := [][]reflect.Type{{floatT, floatT}, {intT, floatT}}
	args := []*node.Type{reg.Resolve(intT), reg.Resolve(intT)}

	got, err := resolver.Best(r, cands, args)
	if err != nil || got != 1 {
		t.Fatalf("Best = (%d,%v), want (1,nil)", got, err)
	}
}
