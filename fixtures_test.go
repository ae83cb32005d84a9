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

package meta_test

import (
	"errors"
	"fmt"
)

type Point struct {
	X, Y   int
	hidden int
}

func (p Point) Len() int { return p.X*p.X + p.Y*p.Y }

func (p *Point) Scale(k int) {
	p.X *= k
	p.Y *= k
}

type Num struct {
	V    float64
	Kind string
}

type Named struct{ Name string }

type Sized struct{ W, H int }

type Widget struct {
	Named
	*Sized
	ID int
}

type Celsius float64

type Fahrenheit float64

type Label string

func (l Label) String() string { return "label:" + string(l) }

var _ fmt.Stringer = Label("")

type Counter struct{ N int }

func (c *Counter) Ref() *int { return &c.N }

type Resource struct{ ID int }

type Box struct{ P *int }

// Holder is comparable as a type but not for every value it can hold.
type Holder struct{ V any }

type Chain struct {
	*Chain
	V int
}

type Pair[K comparable, V any] struct {
	Key K
	Val V
}

var errDiv = errors.New("division by zero")
