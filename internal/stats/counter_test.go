package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterMostCommon(t *testing.T) {
	t.Run("CountDescending", func(t *testing.T) {
		c := newCounter()
		c.Add("a")
		c.Add("b")
		c.Add("b")
		c.Add("c")
		c.Add("c")
		c.Add("c")

		got := c.MostCommon(0)
		assert.Equal(t, []KeyCount{{"c", 3}, {"b", 2}, {"a", 1}}, got)
	})

	t.Run("LimitTruncates", func(t *testing.T) {
		c := newCounter()
		c.Add("a")
		c.Add("b")
		c.Add("b")

		got := c.MostCommon(1)
		assert.Equal(t, []KeyCount{{"b", 2}}, got)
	})

	t.Run("TiesKeepFirstSeenOrderAtScale", func(t *testing.T) {
		c := newCounter()
		keys := make([]string, 5000)
		for i := range keys {
			keys[i] = fmt.Sprintf("key%04d", i)
			c.Add(keys[i])
		}
		c.Add("winner")
		c.Add("winner")

		got := c.MostCommon(0)
		require.Len(t, got, len(keys)+1)
		assert.Equal(t, KeyCount{Key: "winner", Count: 2}, got[0])
		for i, key := range keys {
			assert.Equal(t, key, got[i+1].Key)
		}
	})
}
