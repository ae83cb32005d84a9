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

package policy_test

import (
	"testing"

	"dirpx.dev/meta/policy"
)

func TestString(t *testing.T) {
	cases := map[policy.Policy]string{
		policy.AsIs:      "AsIs",
		policy.AsRef:     "AsRef",
		policy.AsCRef:    "AsCRef",
		policy.AsVoid:    "AsVoid",
		policy.Policy(9): "Unknown(9)",
	}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Fatalf("String(%d) = %q, want %q", int(p), got, want)
		}
	}
}

func TestIsRef(t *testing.T) {
	if policy.AsIs.IsRef() || policy.AsVoid.IsRef() {
		t.Fatalf("AsIs/AsVoid must not be reference policies")
	}
	if !policy.AsRef.IsRef() || !policy.AsCRef.IsRef() {
		t.Fatalf("AsRef/AsCRef must be reference policies")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want policy.Policy
	}{
		{"AsIs", policy.AsIs},
		{"copy", policy.AsIs},
		{" ref ", policy.AsRef},
		{"ASCREF", policy.AsCRef},
		{"void", policy.AsVoid},
	}
	for _, tt := range tests {
		got, err := policy.Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "  ", "pointer"} {
		if _, err := policy.Parse(bad); err == nil {
			t.Fatalf("Parse(%q) expected error", bad)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustParse did not panic")
		}
	}()
	policy.MustParse("nope")
}

func TestTextRoundTrip(t *testing.T) {
	for _, p := range []policy.Policy{policy.AsIs, policy.AsRef, policy.AsCRef, policy.AsVoid} {
		b, err := p.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", p, err)
		}
		var got policy.Policy
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", b, err)
		}
		if got != p {
			t.Fatalf("round trip = %v, want %v", got, p)
		}
	}
	if _, err := policy.Policy(42).MarshalText(); err == nil {
		t.Fatalf("MarshalText(42) expected error")
	}
}
