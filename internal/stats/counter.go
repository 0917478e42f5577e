package stats

import "sort"

// counter counts string keys while remembering first-seen order, so ties in
// MostCommon break deterministically toward the earlier key.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) Add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) Get(key string) int { return c.counts[key] }

func (c *counter) Len() int { return len(c.order) }

// MostCommon returns up to n (key, count) pairs ordered by count descending,
// first-seen order on equal counts. n <= 0 returns everything.
func (c *counter) MostCommon(n int) []KeyCount {
	out := make([]KeyCount, len(c.order))
	for i, k := range c.order {
		out[i] = KeyCount{Key: k, Count: c.counts[k]}
	}
	// stable sort keeps the first-seen order on equal counts
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

type KeyCount struct {
	Key   string
	Count int
}
