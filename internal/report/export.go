package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/DiasStein2/NeHazars/internal/stats"
)

// WriteAll exports the tabular CSV set and the full stats.json payload into
// dir, creating it if needed.
func WriteAll(dir string, r *stats.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := r.Payload()

	csvs := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"messages_per_user.csv", []string{"user", "count"}, userValueRows(p.MessagesPerUser)},
		{"messages_per_day.csv", []string{"day", "count"}, dayValueRows(p.MessagesPerDay)},
		{"messages_per_hour.csv", []string{"hour", "count"}, hourValueRows(p.MessagesPerHour)},
		{"avg_message_length.csv", []string{"user", "avg_words"}, avgRows(p.AvgLength)},
		{"replies_per_user.csv", []string{"user", "reply_count"}, replyRows(p.RepliesPerUser)},
		{"conversation_starters.csv", []string{"user", "count"}, starterRows(p.ConversationStarters)},
		{"top_words.csv", []string{"word", "count"}, wordRows(p.TopWords)},
		{"top_emojis.csv", []string{"emoji", "count"}, emojiRows(p.TopEmojis)},
		{"inactive_days.csv", []string{"inactive_day"}, dayRows(p.InactiveDays)},
	}

	for _, c := range csvs {
		if err := writeCSV(filepath.Join(dir, c.name), c.header, c.rows); err != nil {
			return err
		}
	}

	return WriteJSON(filepath.Join(dir, "stats.json"), p)
}

// WriteJSON writes the indented payload, the same bytes the HTTP layer serves.
func WriteJSON(path string, p *stats.Payload) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func userValueRows(in []stats.UserValue) [][]string {
	out := make([][]string, len(in))
	for i, v := range in {
		out[i] = []string{v.User, strconv.Itoa(v.Value)}
	}
	return out
}

func dayValueRows(in []stats.DayValue) [][]string {
	out := make([][]string, len(in))
	for i, v := range in {
		out[i] = []string{v.Day, strconv.Itoa(v.Value)}
	}
	return out
}

func hourValueRows(in []stats.HourValue) [][]string {
	out := make([][]string, len(in))
	for i, v := range in {
		out[i] = []string{strconv.Itoa(v.Hour), strconv.Itoa(v.Value)}
	}
	return out
}

func avgRows(in []stats.UserAvg) [][]string {
	out := make([][]string, len(in))
	for i, v := range in {
		out[i] = []string{v.User, strconv.FormatFloat(v.AvgWords, 'f', 2, 64)}
	}
	return out
}

func replyRows(in []stats.UserReplies) [][]string {
	out := make([][]string, len(in))
	for i, v := range in {
		out[i] = []string{v.User, strconv.Itoa(v.ReplyCount)}
	}
	return out
}

func starterRows(in []stats.UserStarters) [][]string {
	out := make([][]string, len(in))
	for i, v := range in {
		out[i] = []string{v.User, strconv.Itoa(v.Count)}
	}
	return out
}

func wordRows(in []stats.WordCount) [][]string {
	out := make([][]string, len(in))
	for i, v := range in {
		out[i] = []string{v.Word, strconv.Itoa(v.Count)}
	}
	return out
}

func emojiRows(in []stats.EmojiCount) [][]string {
	out := make([][]string, len(in))
	for i, v := range in {
		out[i] = []string{v.Emoji, strconv.Itoa(v.Count)}
	}
	return out
}

func dayRows(in []string) [][]string {
	out := make([][]string, len(in))
	for i, d := range in {
		out[i] = []string{d}
	}
	return out
}
