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

package reflect_test

import (
	"reflect"
	"testing"

	"dirpx.dev/meta/node"
	uref "dirpx.dev/meta/utils/reflect"
)

// Local test types.
type A struct{}
type Color int
type Ratio float64
type G[T any] struct{ V T }

func TestTraits(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want node.Traits
	}{
		{"nil", nil, 0},
		{"bool", reflect.TypeOf(true), node.Arithmetic},
		{"int", reflect.TypeOf(0), node.Arithmetic | node.Integral},
		{"uint8", reflect.TypeOf(uint8(0)), node.Arithmetic | node.Integral},
		{"float64", reflect.TypeOf(0.0), node.Arithmetic | node.FloatingPoint},
		{"enum", reflect.TypeOf(Color(0)), node.Enum | node.Integral},
		{"named float", reflect.TypeOf(Ratio(0)), node.Arithmetic | node.FloatingPoint},
		{"struct", reflect.TypeOf(A{}), node.Class},
		{"ptr", reflect.TypeOf(&A{}), node.Pointer | node.PointerLike},
		{"func", reflect.TypeOf(func() {}), node.FuncKind},
		{"array", reflect.TypeOf([2]int{}), node.Array | node.SequenceContainer},
		{"slice", reflect.TypeOf([]int{}), node.SequenceContainer},
		{"map", reflect.TypeOf(map[string]int{}), node.AssociativeContainer},
		{"string", reflect.TypeOf(""), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := uref.Traits(tc.typ); got != tc.want {
				t.Fatalf("Traits(%v) = %v, want %v", tc.typ, got, tc.want)
			}
		})
	}
}

func TestIsKeyOnly(t *testing.T) {
	if !uref.IsKeyOnly(reflect.TypeOf(map[int]struct{}{})) {
		t.Fatal("map[int]struct{} should be key-only")
	}
	if uref.IsKeyOnly(reflect.TypeOf(map[int]int{})) {
		t.Fatal("map[int]int should not be key-only")
	}
	if uref.IsKeyOnly(reflect.TypeOf([]int{})) {
		t.Fatal("slice should not be key-only")
	}
}

func TestFloatRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   any
		typ  reflect.Type
		want any
	}{
		{"int to float", 3, reflect.TypeOf(0.0), 3.0},
		{"float truncates", 3.9, reflect.TypeOf(0), 3},
		{"negative truncates toward zero", -3.9, reflect.TypeOf(int8(0)), int8(-3)},
		{"bool to int", true, reflect.TypeOf(0), 1},
		{"int to bool", 2, reflect.TypeOf(false), true},
		{"zero to bool", 0, reflect.TypeOf(false), false},
		{"enum", 2, reflect.TypeOf(Color(0)), Color(2)},
		{"uint", 7.0, reflect.TypeOf(uint16(0)), uint16(7)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := uref.ToFloat64(reflect.ValueOf(tc.in))
			out := uref.FromFloat64(tc.typ, f)
			if !out.IsValid() {
				t.Fatalf("FromFloat64(%v, %v) returned invalid value", tc.typ, f)
			}
			if !out.CanAddr() {
				t.Fatalf("FromFloat64(%v, %v) returned non-addressable value", tc.typ, f)
			}
			if got := out.Interface(); got != tc.want {
				t.Fatalf("round trip %v -> %v = %v, want %v", tc.in, tc.typ, got, tc.want)
			}
		})
	}
}

func TestFromFloat64_NonNumeric(t *testing.T) {
	if v := uref.FromFloat64(reflect.TypeOf(""), 1); v.IsValid() {
		t.Fatalf("FromFloat64(string) = %v, want invalid", v)
	}
	if uref.ToFloat64(reflect.ValueOf("x")) != 0 {
		t.Fatal("ToFloat64(string) should be 0")
	}
}

func TestName(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"nil", nil, ""},
		{"builtin", reflect.TypeOf(0), "int"},
		{"named", reflect.TypeOf(A{}), "reflect_test.A"},
		{"pointer", reflect.TypeOf(&A{}), "*reflect_test.A"},
		{"slice", reflect.TypeOf([]int{}), "[]int"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := uref.Name(tc.typ); got != tc.want {
				t.Fatalf("Name(%v) = %q, want %q", tc.typ, got, tc.want)
			}
		})
	}
}

func TestTemplateName(t *testing.T) {
	gt := reflect.TypeOf(G[int]{})
	if !uref.IsInstantiation(gt) {
		t.Fatalf("IsInstantiation(%v) = false, want true", gt)
	}
	if got := uref.TemplateName(gt); got != "reflect_test.G" {
		t.Fatalf("TemplateName(%v) = %q, want %q", gt, got, "reflect_test.G")
	}
	if got := uref.TemplateName(reflect.TypeOf(A{})); got != "" {
		t.Fatalf("TemplateName(A) = %q, want empty", got)
	}
}

func TestStripTypeParams(t *testing.T) {
	cases := map[string]string{
		"T[int,string]": "T",
		"Plain":         "Plain",
		"":              "",
	}
	for in, want := range cases {
		if got := uref.StripTypeParams(in); got != want {
			t.Errorf("StripTypeParams(%q) = %q, want %q", in, got, want)
		}
	}
}
