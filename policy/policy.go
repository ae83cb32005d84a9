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

package policy

import (
	"fmt"
	"strings"
)

// Policy controls how a value returned across the reflection boundary is
// wrapped: by value, by mutable reference, by read-only reference, or
// discarded.
//
// # Values
//
//   - AsIs  : the result is copied into an owning wrapper.
//   - AsRef : the result aliases the original storage and may be mutated.
//   - AsCRef: the result aliases the original storage and is read-only.
//   - AsVoid: the result is discarded; callers receive a void wrapper.
//
// A reference policy applied to a data member aliases the member inside the
// instance. Applied to a function, it requires the function to return a
// pointer and aliases the pointee.
//
// # Contract
//
//   - Adding values is allowed; existing values MUST NOT change meaning.
//   - Policy values are plain integers and safe to share across goroutines.
type Policy int

const (
	// AsIs copies the result into an owning wrapper. It is the zero value.
	AsIs Policy = iota

	// AsRef returns a mutable alias of the result.
	//
	// When the instance itself is only available read-only, the alias
	// degrades to AsCRef so read-only access is never widened.
	AsRef

	// AsCRef returns a read-only alias of the result.
	AsCRef

	// AsVoid discards the result.
	AsVoid
)

// String returns a stable token for the policy. Unknown values render as
// "Unknown(<n>)" and never panic.
func (p Policy) String() string {
	switch p {
	case AsIs:
		return "AsIs"
	case AsRef:
		return "AsRef"
	case AsCRef:
		return "AsCRef"
	case AsVoid:
		return "AsVoid"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsRef reports whether the policy produces an alias instead of a copy.
func (p Policy) IsRef() bool {
	return p == AsRef || p == AsCRef
}

// Parse converts a textual token into a Policy.
//
// Matching is case-insensitive and ignores surrounding whitespace. Both the
// canonical tokens ("AsRef") and the short forms ("ref", "cref", "is",
// "void") are accepted.
func Parse(s string) (Policy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return AsIs, fmt.Errorf("policy: empty policy")
	}

	switch strings.ToLower(trimmed) {
	case "asis", "is", "copy":
		return AsIs, nil
	case "asref", "ref":
		return AsRef, nil
	case "ascref", "cref":
		return AsCRef, nil
	case "asvoid", "void":
		return AsVoid, nil
	default:
		return AsIs, fmt.Errorf("policy: unknown policy %q", s)
	}
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Policy {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	switch p {
	case AsIs, AsRef, AsCRef, AsVoid:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("policy: cannot marshal unknown policy %d", p)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = value
	return nil
}
