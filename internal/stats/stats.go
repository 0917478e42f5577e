package stats

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/DiasStein2/NeHazars/internal/parse"
	"github.com/DiasStein2/NeHazars/internal/records"
)

// WeekdayOrder is the canonical Monday-first ordering for weekday counts.
var WeekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// starterGap is the silence after which the next message starts a new
// conversation burst.
const starterGap = 6 * time.Hour

var (
	wordPattern  = regexp.MustCompile(`[A-Za-zА-Яа-яЁё'-]+`)
	emojiPattern = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}]`)
)

// LengthBucket is one fixed word-count bucket of the length distribution.
type LengthBucket struct {
	Label string
	Count int
}

// Result is the full aggregation output. Every slice is already in its
// serialization order; the JSON payload only renames and rounds.
type Result struct {
	MessagesPerUser      []KeyCount // count desc, first-seen on ties
	MessagesPerDay       []KeyCount // day ascending
	MessagesPerHour      []KeyCount // hour ascending, present hours only
	AvgLength            map[string]float64
	RepliesPerUser       map[string]int
	ConversationStarters []KeyCount // count desc
	TopWords             []KeyCount
	TopEmojis            []KeyCount
	InactiveDays         []string
	TextCount            int
	OtherCount           int
	LengthDistribution   []LengthBucket
	WeekdayCounts        map[string]int
	TotalMessages        int
	UserMessages         int
	Users                []string // sorted
}

// Options tunes the aggregation. The zero value is the standard run.
type Options struct {
	// ExtraStopwords extends the built-in stopword list for word frequency.
	ExtraStopwords []string
}

// Compute runs every aggregation over the table's participant subset (meta
// totals also read the full row set).
func Compute(t *records.Table, opts Options) *Result {
	users := t.Participants

	perUser := newCounter()
	perDay := newCounter()
	perHour := newCounter()
	replies := make(map[string]int)
	wordSums := make(map[string]int)

	for _, row := range users {
		perUser.Add(row.Identity)
		perDay.Add(row.Day)
		perHour.Add(hourKey(row.Hour))
		wordSums[row.Identity] += row.WordCount
		if row.Reply {
			replies[row.Identity]++
		}
	}

	avg := make(map[string]float64, perUser.Len())
	for _, kc := range perUser.MostCommon(0) {
		avg[kc.Key] = float64(wordSums[kc.Key]) / float64(kc.Count)
	}

	res := &Result{
		MessagesPerUser:      perUser.MostCommon(0),
		MessagesPerDay:       sortedByKey(perDay),
		MessagesPerHour:      sortedByKey(perHour),
		AvgLength:            avg,
		RepliesPerUser:       replies,
		ConversationStarters: starters(users),
		TopWords:             topWords(users, 20, opts.ExtraStopwords),
		TopEmojis:            topEmojis(users, 10),
		InactiveDays:         inactiveDays(users),
		LengthDistribution:   lengthDistribution(users),
		WeekdayCounts:        weekdayCounts(users),
		TotalMessages:        len(t.Rows),
		UserMessages:         len(users),
	}

	for _, row := range users {
		if row.ContentType == parse.TypeText {
			res.TextCount++
		} else {
			res.OtherCount++
		}
	}

	seen := make(map[string]struct{})
	for _, row := range users {
		if _, ok := seen[row.Identity]; !ok {
			seen[row.Identity] = struct{}{}
			res.Users = append(res.Users, row.Identity)
		}
	}
	sort.Strings(res.Users)

	return res
}

// starters counts conversation-opening messages per identity: rows sorted by
// timestamp whose gap to the predecessor exceeds starterGap. The first row
// has no predecessor and never counts.
func starters(rows []records.Row) []KeyCount {
	sorted := make([]records.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	c := newCounter()
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Timestamp.Sub(sorted[i-1].Timestamp) > starterGap {
			c.Add(sorted[i].Identity)
		}
	}
	return c.MostCommon(0)
}

func topWords(rows []records.Row, n int, extra []string) []KeyCount {
	stop := make(map[string]struct{}, len(defaultStopwords)+len(extra))
	for _, w := range defaultStopwords {
		stop[w] = struct{}{}
	}
	for _, w := range extra {
		stop[strings.ToLower(w)] = struct{}{}
	}

	c := newCounter()
	for _, row := range rows {
		for _, w := range wordPattern.FindAllString(strings.ToLower(row.Text), -1) {
			if len([]rune(w)) < 3 {
				continue
			}
			if _, ok := stop[w]; ok {
				continue
			}
			c.Add(w)
		}
	}
	return c.MostCommon(n)
}

func topEmojis(rows []records.Row, n int) []KeyCount {
	c := newCounter()
	for _, row := range rows {
		for _, e := range emojiPattern.FindAllString(row.Text, -1) {
			c.Add(e)
		}
	}
	return c.MostCommon(n)
}

func lengthDistribution(rows []records.Row) []LengthBucket {
	buckets := []LengthBucket{
		{Label: "0-10"}, {Label: "11-50"}, {Label: "51-100"},
		{Label: "100-500"}, {Label: "500+"},
	}
	for _, row := range rows {
		switch wc := row.WordCount; {
		case wc <= 10:
			buckets[0].Count++
		case wc <= 50:
			buckets[1].Count++
		case wc <= 100:
			buckets[2].Count++
		case wc <= 500:
			buckets[3].Count++
		default:
			buckets[4].Count++
		}
	}
	return buckets
}

func weekdayCounts(rows []records.Row) map[string]int {
	counts := make(map[string]int, len(WeekdayOrder))
	for _, day := range WeekdayOrder {
		counts[day] = 0
	}
	for _, row := range rows {
		counts[row.Weekday]++
	}
	return counts
}

// inactiveDays lists the calendar days between the earliest and latest active
// day (inclusive span) with no messages, ascending.
func inactiveDays(rows []records.Row) []string {
	if len(rows) == 0 {
		return nil
	}

	active := make(map[string]struct{})
	minDay, maxDay := rows[0].Day, rows[0].Day
	for _, row := range rows {
		active[row.Day] = struct{}{}
		if row.Day < minDay {
			minDay = row.Day
		}
		if row.Day > maxDay {
			maxDay = row.Day
		}
	}

	start, err := time.Parse(time.DateOnly, minDay)
	if err != nil {
		return nil
	}
	end, err := time.Parse(time.DateOnly, maxDay)
	if err != nil {
		return nil
	}

	var inactive []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := d.Format(time.DateOnly)
		if _, ok := active[day]; !ok {
			inactive = append(inactive, day)
		}
	}
	return inactive
}

func hourKey(h int) string {
	// zero-padded so string sort equals numeric sort
	const digits = "0123456789"
	return string([]byte{digits[h/10], digits[h%10]})
}

func sortedByKey(c *counter) []KeyCount {
	out := c.MostCommon(0)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
