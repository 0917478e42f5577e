package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/DiasStein2/NeHazars/internal/stats"
)

const (
	colorReset  = "\033[0m"
	colorHeader = "\033[1;34m" // bold blue
	colorValue  = "\033[1;32m" // bold green
	colorDim    = "\033[2m"
)

// Options controls terminal rendering.
type Options struct {
	Width int  // wrap/truncate width, 0 = unlimited
	Color bool // ANSI colors on/off
}

// Summary renders the headline statistics as an aligned terminal report.
func Summary(r *stats.Result, opts Options) string {
	var b strings.Builder

	head := func(title string) {
		if opts.Color {
			fmt.Fprintf(&b, "%s--- %s ---%s\n", colorHeader, title, colorReset)
		} else {
			fmt.Fprintf(&b, "--- %s ---\n", title)
		}
	}
	row := func(key string, value string) {
		line := fmt.Sprintf("  %s%s %s", key, pad(key, 16), value)
		if opts.Width > 0 && runewidth.StringWidth(line) > opts.Width {
			line = runewidth.Truncate(line, opts.Width, "...")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	head("Top users")
	for _, kc := range head5(r.MessagesPerUser) {
		row(kc.Key, fmt.Sprintf("%d", kc.Count))
	}

	head("Average message length (words)")
	for _, kc := range r.MessagesPerUser {
		row(kc.Key, fmt.Sprintf("%.2f", r.AvgLength[kc.Key]))
	}

	head("Busiest hours")
	busiest := make([]stats.KeyCount, len(r.MessagesPerHour))
	copy(busiest, r.MessagesPerHour)
	for i := 1; i < len(busiest); i++ {
		for j := i; j > 0 && busiest[j].Count > busiest[j-1].Count; j-- {
			busiest[j], busiest[j-1] = busiest[j-1], busiest[j]
		}
	}
	for _, kc := range head5(busiest) {
		row(kc.Key+":00", fmt.Sprintf("%d", kc.Count))
	}

	head("Conversation starters")
	for _, kc := range head5(r.ConversationStarters) {
		row(kc.Key, fmt.Sprintf("%d", kc.Count))
	}

	head("Top words")
	for _, kc := range r.TopWords {
		row(kc.Key, fmt.Sprintf("%d", kc.Count))
	}

	head("Top emojis")
	for _, kc := range r.TopEmojis {
		row(kc.Key, fmt.Sprintf("%d", kc.Count))
	}

	if opts.Color {
		fmt.Fprintf(&b, "%sInactive days: %d%s\n", colorDim, len(r.InactiveDays), colorReset)
	} else {
		fmt.Fprintf(&b, "Inactive days: %d\n", len(r.InactiveDays))
	}

	return b.String()
}

func head5(kcs []stats.KeyCount) []stats.KeyCount {
	if len(kcs) > 5 {
		return kcs[:5]
	}
	return kcs
}

// pad returns the spaces needed to align a value after key, runewidth-aware
// so Cyrillic names and emoji line up.
func pad(key string, col int) string {
	w := runewidth.StringWidth(key)
	if w >= col {
		return ""
	}
	return strings.Repeat(" ", col-w)
}
