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

package apis

import (
	"log/slog"

	"dirpx.dev/meta/policy"
)

// Config carries read-only knobs that influence storage, registration and
// diagnostics. It is passed by value and should be treated as immutable by
// implementations.
type Config struct {
	// SmallBufferSize is the largest value size, in bytes, stored embedded in
	// an opaque wrapper. Embedded values are re-embedded on move; larger
	// values are heap-owned and keep their address when moved.
	SmallBufferSize int
	// Strict turns contract violations (conflicting ids, malformed
	// registrations, failing Cast) into panics instead of soft failures.
	Strict bool
	// CheckBaseCycles makes base registration reject edges that would close
	// a cycle in the base graph.
	CheckBaseCycles bool
	// DefaultPolicy applies to data members and functions registered without
	// an explicit policy.
	DefaultPolicy policy.Policy
	// Logger receives registration and reset diagnostics. Nil discards them.
	Logger *slog.Logger
}
