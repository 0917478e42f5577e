package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiasStein2/NeHazars/internal/parse"
	"github.com/DiasStein2/NeHazars/internal/records"
)

func day1(hour, min int) time.Time {
	return time.Date(2024, 1, 22, hour, min, 0, 0, time.UTC) // Monday
}

func textRec(ts time.Time, who, text string) parse.Record {
	return parse.Record{
		Timestamp:   ts,
		Sender:      who,
		Canonical:   who,
		Text:        text,
		ContentType: parse.TypeText,
	}
}

func build(t *testing.T, recs ...parse.Record) *records.Table {
	t.Helper()
	table, err := records.Build(recs)
	require.NoError(t, err)
	return table
}

func TestConversationStarters(t *testing.T) {
	t.Run("CloseMessagesNeverStart", func(t *testing.T) {
		table := build(t,
			textRec(day1(9, 0), "Dias", "a"),
			textRec(day1(9, 30), "Dias", "b"),
			textRec(day1(10, 0), "Dias", "c"),
		)
		res := Compute(table, Options{})
		assert.Empty(t, res.ConversationStarters)
	})

	t.Run("GapOverSixHoursStarts", func(t *testing.T) {
		table := build(t,
			textRec(day1(9, 0), "Dias", "a"),
			textRec(day1(9, 30), "Dias", "b"),
			textRec(day1(10, 0), "Dias", "c"),
			textRec(day1(20, 0), "Maxat", "evening"),
		)
		res := Compute(table, Options{})
		require.Len(t, res.ConversationStarters, 1)
		assert.Equal(t, "Maxat", res.ConversationStarters[0].Key)
		assert.Equal(t, 1, res.ConversationStarters[0].Count)
	})

	t.Run("ExactlySixHoursDoesNotStart", func(t *testing.T) {
		table := build(t,
			textRec(day1(9, 0), "Dias", "a"),
			textRec(day1(15, 0), "Dias", "b"),
		)
		res := Compute(table, Options{})
		assert.Empty(t, res.ConversationStarters)
	})
}

func TestPerUserCounts(t *testing.T) {
	table := build(t,
		textRec(day1(9, 0), "Dias", "one two three"),
		textRec(day1(9, 5), "Maxat", "hi"),
		textRec(day1(9, 10), "Dias", "four"),
	)
	res := Compute(table, Options{})

	require.Len(t, res.MessagesPerUser, 2)
	assert.Equal(t, KeyCount{Key: "Dias", Count: 2}, res.MessagesPerUser[0])
	assert.Equal(t, KeyCount{Key: "Maxat", Count: 1}, res.MessagesPerUser[1])

	assert.InDelta(t, 2.0, res.AvgLength["Dias"], 1e-9) // (3+1)/2
	assert.InDelta(t, 1.0, res.AvgLength["Maxat"], 1e-9)
}

func TestTieBreakIsFirstSeen(t *testing.T) {
	table := build(t,
		textRec(day1(9, 0), "Maxat", "a"),
		textRec(day1(9, 1), "Dias", "b"),
	)
	res := Compute(table, Options{})
	require.Len(t, res.MessagesPerUser, 2)
	assert.Equal(t, "Maxat", res.MessagesPerUser[0].Key)
	assert.Equal(t, "Dias", res.MessagesPerUser[1].Key)
}

func TestReplies(t *testing.T) {
	withReply := textRec(day1(9, 0), "Dias", "re")
	withReply.ReplyTo = 5

	table := build(t,
		withReply,
		textRec(day1(9, 1), "Dias", "plain"),
		textRec(day1(9, 2), "Maxat", "plain"),
	)
	res := Compute(table, Options{})
	assert.Equal(t, 1, res.RepliesPerUser["Dias"])
	assert.Equal(t, 0, res.RepliesPerUser["Maxat"])
}

func TestTopWords(t *testing.T) {
	t.Run("StopwordsAndShortTokensDropped", func(t *testing.T) {
		table := build(t,
			textRec(day1(9, 0), "Dias", "the quick quick fox is it ok"),
		)
		res := Compute(table, Options{})

		words := map[string]int{}
		for _, kc := range res.TopWords {
			words[kc.Key] = kc.Count
		}
		assert.Equal(t, 2, words["quick"])
		assert.Equal(t, 1, words["fox"])
		assert.NotContains(t, words, "the") // stopword
		assert.NotContains(t, words, "is")  // too short
		assert.NotContains(t, words, "it")
	})

	t.Run("CaseFolded", func(t *testing.T) {
		table := build(t,
			textRec(day1(9, 0), "Dias", "Hello HELLO hello"),
		)
		res := Compute(table, Options{})
		require.NotEmpty(t, res.TopWords)
		assert.Equal(t, KeyCount{Key: "hello", Count: 3}, res.TopWords[0])
	})

	t.Run("CyrillicTokens", func(t *testing.T) {
		table := build(t,
			textRec(day1(9, 0), "Dias", "привет привет брат"),
		)
		res := Compute(table, Options{})
		require.NotEmpty(t, res.TopWords)
		assert.Equal(t, KeyCount{Key: "привет", Count: 2}, res.TopWords[0])
	})

	t.Run("FrequencyThenFirstSeen", func(t *testing.T) {
		table := build(t,
			textRec(day1(9, 0), "Dias", "zebra apple zebra apple banana"),
		)
		res := Compute(table, Options{})
		require.Len(t, res.TopWords, 3)
		assert.Equal(t, "zebra", res.TopWords[0].Key)
		assert.Equal(t, "apple", res.TopWords[1].Key)
		assert.Equal(t, "banana", res.TopWords[2].Key)
	})

	t.Run("ExtraStopwords", func(t *testing.T) {
		table := build(t,
			textRec(day1(9, 0), "Dias", "banana banana kiwi"),
		)
		res := Compute(table, Options{ExtraStopwords: []string{"banana"}})
		for _, kc := range res.TopWords {
			assert.NotEqual(t, "banana", kc.Key)
		}
	})
}

func TestTopEmojis(t *testing.T) {
	table := build(t,
		textRec(day1(9, 0), "Dias", "nice 😂😂🚀"),
		textRec(day1(9, 1), "Maxat", "😂"),
	)
	res := Compute(table, Options{})
	require.Len(t, res.TopEmojis, 2)
	assert.Equal(t, KeyCount{Key: "😂", Count: 3}, res.TopEmojis[0])
	assert.Equal(t, KeyCount{Key: "🚀", Count: 1}, res.TopEmojis[1])
}

func TestContentTypeSplit(t *testing.T) {
	photo := textRec(day1(9, 0), "Dias", "")
	photo.ContentType = "photo"

	table := build(t,
		photo,
		textRec(day1(9, 1), "Dias", "hi"),
		textRec(day1(9, 2), "Maxat", "yo"),
	)
	res := Compute(table, Options{})
	assert.Equal(t, 2, res.TextCount)
	assert.Equal(t, 1, res.OtherCount)
}

func TestLengthDistribution(t *testing.T) {
	long := func(n int) string {
		s := ""
		for i := 0; i < n; i++ {
			s += "w "
		}
		return s
	}

	table := build(t,
		textRec(day1(9, 0), "Dias", long(5)),    // 0-10
		textRec(day1(9, 1), "Dias", long(10)),   // 0-10 boundary
		textRec(day1(9, 2), "Dias", long(11)),   // 11-50
		textRec(day1(9, 3), "Dias", long(100)),  // 51-100 boundary
		textRec(day1(9, 4), "Dias", long(101)),  // 100-500
		textRec(day1(9, 5), "Dias", long(501)),  // 500+
	)
	res := Compute(table, Options{})

	counts := map[string]int{}
	total := 0
	for _, b := range res.LengthDistribution {
		counts[b.Label] = b.Count
		total += b.Count
	}
	assert.Equal(t, 2, counts["0-10"])
	assert.Equal(t, 1, counts["11-50"])
	assert.Equal(t, 1, counts["51-100"])
	assert.Equal(t, 1, counts["100-500"])
	assert.Equal(t, 1, counts["500+"])

	// buckets are exhaustive and non-overlapping
	assert.Equal(t, res.UserMessages, total)
}

func TestWeekdayCounts(t *testing.T) {
	table := build(t,
		textRec(day1(9, 0), "Dias", "mon"),                   // Monday
		textRec(day1(9, 0).AddDate(0, 0, 2), "Dias", "wed"),  // Wednesday
		textRec(day1(9, 30).AddDate(0, 0, 2), "Dias", "wed"), // Wednesday
	)
	res := Compute(table, Options{})

	require.Len(t, res.WeekdayCounts, 7)
	assert.Equal(t, 1, res.WeekdayCounts["Monday"])
	assert.Equal(t, 2, res.WeekdayCounts["Wednesday"])
	assert.Equal(t, 0, res.WeekdayCounts["Sunday"])
}

func TestInactiveDays(t *testing.T) {
	table := build(t,
		textRec(day1(9, 0), "Dias", "a"),                    // Jan 22
		textRec(day1(9, 0).AddDate(0, 0, 4), "Dias", "b"),   // Jan 26
		textRec(day1(10, 0).AddDate(0, 0, 4), "Dias", "c"),  // Jan 26
	)
	res := Compute(table, Options{})

	assert.Equal(t, []string{"2024-01-23", "2024-01-24", "2024-01-25"}, res.InactiveDays)

	// inactive + distinct active == inclusive span
	assert.Equal(t, 5, len(res.InactiveDays)+len(res.MessagesPerDay))
}

func TestMeta(t *testing.T) {
	service := parse.Record{
		Timestamp:   day1(8, 0),
		Sender:      "Unknown",
		Text:        "pinned",
		ContentType: parse.TypeService,
	}
	table := build(t,
		service,
		textRec(day1(9, 0), "Maxat", "a"),
		textRec(day1(9, 1), "Dias", "b"),
	)
	res := Compute(table, Options{})

	assert.Equal(t, 3, res.TotalMessages)
	assert.Equal(t, 2, res.UserMessages)
	assert.Equal(t, []string{"Dias", "Maxat"}, res.Users) // sorted
}

func TestHourBuckets(t *testing.T) {
	table := build(t,
		textRec(day1(23, 0), "Dias", "late"),
		textRec(day1(0, 5), "Dias", "early"),
		textRec(day1(0, 30), "Dias", "early again"),
	)
	res := Compute(table, Options{})

	require.Len(t, res.MessagesPerHour, 2)
	assert.Equal(t, KeyCount{Key: "00", Count: 2}, res.MessagesPerHour[0])
	assert.Equal(t, KeyCount{Key: "23", Count: 1}, res.MessagesPerHour[1])
}
