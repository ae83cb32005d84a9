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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/meta"
	"dirpx.dev/meta/config"
)

func TestResolve_Idempotent(t *testing.T) {
	ctx := meta.NewContext()

	a := meta.Resolve[Point](ctx)
	b := meta.Resolve[Point](ctx)
	require.True(t, a.Valid())
	assert.True(t, a.Equal(b))
	assert.True(t, meta.Register[Point](ctx).Resolve().Equal(a))
	assert.Equal(t, "meta_test.Point", a.Name())
	assert.Equal(t, meta.TypeOf[Point](), a.Info())
}

func TestResolve_Concurrent(t *testing.T) {
	ctx := meta.NewContext()

	const n = 32
	got := make([]meta.Type, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			got[i] = meta.Resolve[Point](ctx)
		}(i)
	}
	wg.Wait()
	for _, typ := range got {
		assert.True(t, typ.Equal(got[0]))
	}
}

func TestResolve_ByTypeAndID(t *testing.T) {
	ctx := meta.NewContext()

	assert.False(t, meta.ResolveType(ctx, meta.TypeOf[Point]()).Valid(), "lookup never creates")
	meta.Register[Point](ctx).Type(meta.Hash("point"))

	typ := meta.Resolve[Point](ctx)
	assert.True(t, meta.ResolveType(ctx, meta.TypeOf[Point]()).Equal(typ))
	assert.True(t, meta.ResolveID(ctx, meta.Hash("point")).Equal(typ))
	assert.False(t, meta.ResolveID(ctx, meta.Hash("nope")).Valid())
	assert.Equal(t, meta.Hash("point"), typ.ID())
	assert.NotEqual(t, typ.ID(), typ.Hash())
}

func TestReset_ThenRegisterAgain(t *testing.T) {
	ctx := meta.NewContext()

	old := meta.Register[Point](ctx).Data(meta.Hash("x"), "X").Resolve()
	require.True(t, meta.Reset[Point](ctx))
	assert.False(t, meta.Resolve[Point](ctx).Valid())

	// Values can still be wrapped while the type is gone.
	assert.True(t, meta.Wrap(ctx, Point{}).Valid())

	fresh := meta.Register[Point](ctx).Resolve()
	require.True(t, fresh.Valid())
	assert.False(t, fresh.Equal(old))
	assert.False(t, fresh.Data(meta.Hash("x")).Valid())
	assert.True(t, old.Data(meta.Hash("x")).Valid(), "stale views keep their node")
	assert.True(t, meta.Resolve[Point](ctx).Equal(fresh))
}

func TestResetID_And_ResetAll(t *testing.T) {
	ctx := meta.NewContext()

	meta.Register[Point](ctx).Type(meta.Hash("shape"))
	meta.Register[Num](ctx).Type(meta.Hash("shape"))
	meta.Resolve[Label](ctx)

	assert.Equal(t, 2, meta.ResetID(ctx, meta.Hash("shape")))
	assert.False(t, meta.ResolveType(ctx, meta.TypeOf[Point]()).Valid())
	assert.True(t, meta.ResolveType(ctx, meta.TypeOf[Label]()).Valid())

	meta.ResetAll(ctx)
	assert.Empty(t, meta.ResolveAll(ctx))
	assert.True(t, meta.Resolve[Point](ctx).Valid(), "a full reset clears tombstones")
}

func TestContext_WithKeepsNodes(t *testing.T) {
	ctx := meta.NewContext()
	meta.Register[Point](ctx).Data(meta.Hash("x"), "X")

	strict := ctx.With(config.NewConfig(config.WithStrict(true)))
	assert.True(t, strict.Config().Strict)
	assert.True(t, meta.Resolve[Point](strict).Data(meta.Hash("x")).Valid())
	assert.NotSame(t, ctx.Registry(), strict.Registry())
}

func TestContext_WithResolvesPointeeInNewContext(t *testing.T) {
	ctx := meta.NewContext()
	meta.Resolve[*Point](ctx)

	next := ctx.With(config.NewConfig(config.WithStrict(false)))
	meta.Register[Point](next).Data(meta.Hash("x"), "X")

	pointee := meta.Resolve[*Point](next).RemovePointer()
	require.True(t, pointee.Valid())
	assert.True(t, pointee.Equal(meta.Resolve[Point](next)))
	assert.True(t, pointee.Data(meta.Hash("x")).Valid())
	assert.False(t, meta.Resolve[Point](ctx).Data(meta.Hash("x")).Valid(), "the original context is untouched")
}

func TestConfigure_KeepsPointerNodesCanonical(t *testing.T) {
	prev := meta.Default()
	t.Cleanup(func() { meta.SetDefault(prev) })
	meta.SetDefault(nil)

	meta.Resolve[*Label](nil)
	meta.Configure(config.WithStrict(false))
	meta.Register[Label](nil).Type(meta.Hash("label"))

	pointee := meta.Resolve[*Label](nil).RemovePointer()
	assert.True(t, pointee.Equal(meta.Resolve[Label](nil)))
	assert.Equal(t, meta.Hash("label"), pointee.ID())
}

func TestDefaultContext(t *testing.T) {
	prev := meta.Default()
	t.Cleanup(func() { meta.SetDefault(prev) })

	meta.SetDefault(nil)
	require.NotSame(t, prev, meta.Default())

	meta.Register[Point](nil).Data(meta.Hash("x"), "X")
	p := meta.Wrap(nil, Point{X: 4})
	assert.Equal(t, 4, meta.Cast[int](p.Get(meta.Hash("x"))))

	meta.Configure(config.WithStrict(true))
	assert.True(t, meta.Default().Config().Strict)
	assert.True(t, meta.Resolve[Point](nil).Data(meta.Hash("x")).Valid())
}
