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

package resolver

import (
	"errors"
	"reflect"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/node"
)

var (
	// ErrNoMatch is returned when no candidate accepts the arguments.
	ErrNoMatch = errors.New("meta(resolver): no matching overload")
	// ErrAmbiguous is returned when several candidates tie for the best score.
	ErrAmbiguous = errors.New("meta(resolver): ambiguous overload")
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent use.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Cast runs strategies in order until one handles the value.
func (r chain) Cast(src *node.Type, v reflect.Value, dst reflect.Type) (reflect.Value, bool) {
	if src == nil || dst == nil {
		return reflect.Value{}, false
	}
	for _, s := range r.strats {
		if out, ok := s.TryCast(src, v, dst); ok {
			return out, true
		}
	}
	return reflect.Value{}, false
}

// CanCast reports whether any strategy could handle the cast.
func (r chain) CanCast(src *node.Type, dst reflect.Type) bool {
	if src == nil || dst == nil {
		return false
	}
	for _, s := range r.strats {
		if s.CanCast(src, dst) {
			return true
		}
	}
	return false
}

// Best picks the candidate argument list that accepts args at the lowest cost.
//
// Only lists with exactly len(args) entries are viable. Each argument costs
// 0 when its type matches exactly and 1 when the resolver can cast it; any
// other argument makes the candidate non-viable. The unique minimum wins.
// A tie at the minimum yields ErrAmbiguous, no viable list ErrNoMatch.
func Best(res apis.Resolver, candidates [][]reflect.Type, args []*node.Type) (int, error) {
	best, bestCost, tied := -1, 0, false
	for i, params := range candidates {
		cost, ok := score(res, params, args)
		if !ok {
			continue
		}
		switch {
		case best < 0 || cost < bestCost:
			best, bestCost, tied = i, cost, false
		case cost == bestCost:
			tied = true
		}
	}
	if best < 0 {
		return -1, ErrNoMatch
	}
	if tied {
		return -1, ErrAmbiguous
	}
	return best, nil
}

func score(res apis.Resolver, params []reflect.Type, args []*node.Type) (int, bool) {
	if len(params) != len(args) {
		return 0, false
	}
	cost := 0
	for i, p := range params {
		switch {
		case args[i].Is(p):
		case res != nil && res.CanCast(args[i], p):
			cost++
		default:
			return 0, false
		}
	}
	return cost, true
}
