package identity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	r := NewResolver(DefaultAliases)

	t.Run("AliasStability", func(t *testing.T) {
		a, ok := r.Canonicalize("Maksat")
		require.True(t, ok)
		b, ok := r.Canonicalize("maksat B.")
		require.True(t, ok)
		c, ok := r.Canonicalize("Maxat")
		require.True(t, ok)

		assert.Equal(t, "Maxat", a)
		assert.Equal(t, a, b)
		assert.Equal(t, a, c)
	})

	t.Run("FirstTokenOnly", func(t *testing.T) {
		got, ok := r.Canonicalize("Dias Myssyr")
		require.True(t, ok)
		assert.Equal(t, "Dias", got)
	})

	t.Run("UnknownFallsBackToTitleCase", func(t *testing.T) {
		got, ok := r.Canonicalize("yerlan k.")
		require.True(t, ok)
		assert.Equal(t, "Yerlan", got)
	})

	t.Run("CyrillicNames", func(t *testing.T) {
		got, ok := r.Canonicalize("диас испанов")
		require.True(t, ok)
		assert.Equal(t, "Диас", got)
	})

	t.Run("StripsDisallowedRunes", func(t *testing.T) {
		got, ok := r.Canonicalize("   ~~Dias!!! 42")
		require.True(t, ok)
		assert.Equal(t, "Dias", got)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		_, ok := r.Canonicalize("")
		assert.False(t, ok)
	})

	t.Run("NoTokenRemains", func(t *testing.T) {
		_, ok := r.Canonicalize("123 !!! 456")
		assert.False(t, ok)
	})

	t.Run("Idempotent", func(t *testing.T) {
		first, ok := r.Canonicalize("Dias Myssyr")
		require.True(t, ok)
		second, ok := r.Canonicalize(first)
		require.True(t, ok)
		assert.Equal(t, first, second)
	})

	// one Resolver is shared by every HTTP handler; run it from several
	// goroutines so the race detector covers the title-case fallback path
	t.Run("ConcurrentUse", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 200; j++ {
					got, ok := r.Canonicalize("yerlan someone")
					assert.True(t, ok)
					assert.Equal(t, "Yerlan", got)
				}
			}()
		}
		wg.Wait()
	})

	t.Run("AlternateAliasTable", func(t *testing.T) {
		alt := NewResolver(map[string]string{"bob": "Robert"})
		got, ok := alt.Canonicalize("BOB jones")
		require.True(t, ok)
		assert.Equal(t, "Robert", got)

		// table is injected, not global: default aliases absent
		got, ok = alt.Canonicalize("Maksat")
		require.True(t, ok)
		assert.Equal(t, "Maksat", got)
	})
}
