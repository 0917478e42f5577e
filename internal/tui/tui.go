package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/DiasStein2/NeHazars/internal/stats"
)

// group is one browsable statistic with a pre-rendered table.
type group struct {
	title string
	body  string
}

type model struct {
	groups   []group
	cursor   int
	view     viewport.Model
	width    int
	height   int
	ready    bool
	quitting bool
}

// Run opens the interactive stats browser and blocks until quit.
func Run(r *stats.Result) error {
	m := model{groups: buildGroups(r), view: viewport.New(0, 0)}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.view = viewport.New(m.viewWidth(), m.panelHeight())
		m.view.SetContent(m.groups[m.cursor].body)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.view.SetContent(m.groups[m.cursor].body)
				m.view.GotoTop()
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.groups)-1 {
				m.cursor++
				m.view.SetContent(m.groups[m.cursor].body)
				m.view.GotoTop()
			}

		case key.Matches(msg, keys.PageUp):
			m.view.LineUp(m.panelHeight() / 2)

		case key.Matches(msg, keys.PageDown):
			m.view.LineDown(m.panelHeight() / 2)
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	panelH := m.panelHeight()

	var list strings.Builder
	for i, g := range m.groups {
		title := runewidth.Truncate(g.title, listW, "...")
		if i == m.cursor {
			list.WriteString(styleListSelected.Render("> " + title))
		} else {
			list.WriteString(styleListNormal.Render("  " + title))
		}
		list.WriteString("\n")
	}

	listPanel := stylePanelBorder.Width(listW).Height(panelH).Render(list.String())

	m.view.Width = m.viewWidth()
	m.view.Height = panelH
	viewPanel := styleActiveBorder.Width(m.viewWidth()).Height(panelH).Render(m.view.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, viewPanel)
	status := styleStatusBar.Render(fmt.Sprintf(
		"%d/%d | up/dn groups | C-u/C-d scroll | esc quit",
		m.cursor+1, len(m.groups)))

	return lipgloss.JoinVertical(lipgloss.Left, panels, status)
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 30
	}
	w := m.width*35/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) viewWidth() int {
	if m.width <= 0 {
		return 50
	}
	w := m.width*65/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	h := m.height - 3
	if h < 5 {
		h = 5
	}
	return h
}

// buildGroups renders every statistic into a two-column table.
func buildGroups(r *stats.Result) []group {
	p := r.Payload()

	table := func(header [2]string, rows [][2]string) string {
		keyW := runewidth.StringWidth(header[0])
		for _, row := range rows {
			if w := runewidth.StringWidth(row[0]); w > keyW {
				keyW = w
			}
		}
		var b strings.Builder
		b.WriteString(styleTableHeader.Render(padRight(header[0], keyW+2) + header[1]))
		b.WriteString("\n")
		for _, row := range rows {
			b.WriteString(padRight(row[0], keyW+2))
			b.WriteString(row[1])
			b.WriteString("\n")
		}
		if len(rows) == 0 {
			b.WriteString("(none)\n")
		}
		return b.String()
	}

	var perUser, perDay, perHour, avg, replies, starters, words, emojis [][2]string
	for _, e := range p.MessagesPerUser {
		perUser = append(perUser, [2]string{e.User, fmt.Sprintf("%d", e.Value)})
	}
	for _, e := range p.MessagesPerDay {
		perDay = append(perDay, [2]string{e.Day, fmt.Sprintf("%d", e.Value)})
	}
	for _, e := range p.MessagesPerHour {
		perHour = append(perHour, [2]string{fmt.Sprintf("%d:00", e.Hour), fmt.Sprintf("%d", e.Value)})
	}
	for _, e := range p.AvgLength {
		avg = append(avg, [2]string{e.User, fmt.Sprintf("%.2f", e.AvgWords)})
	}
	for _, e := range p.RepliesPerUser {
		replies = append(replies, [2]string{e.User, fmt.Sprintf("%d", e.ReplyCount)})
	}
	for _, e := range p.ConversationStarters {
		starters = append(starters, [2]string{e.User, fmt.Sprintf("%d", e.Count)})
	}
	for _, e := range p.TopWords {
		words = append(words, [2]string{e.Word, fmt.Sprintf("%d", e.Count)})
	}
	for _, e := range p.TopEmojis {
		emojis = append(emojis, [2]string{e.Emoji, fmt.Sprintf("%d", e.Count)})
	}

	var types, lengths, weekdays, inactive [][2]string
	for _, e := range p.ContentTypes {
		types = append(types, [2]string{e.Name, fmt.Sprintf("%d", e.Value)})
	}
	for _, e := range p.LengthDistribution {
		lengths = append(lengths, [2]string{e.Range, fmt.Sprintf("%d", e.Count)})
	}
	for _, e := range p.WeekdayCounts {
		weekdays = append(weekdays, [2]string{e.Day, fmt.Sprintf("%d", e.Count)})
	}
	for _, d := range p.InactiveDays {
		inactive = append(inactive, [2]string{d, ""})
	}

	meta := [][2]string{
		{"Total messages", fmt.Sprintf("%d", p.Meta.TotalMessages)},
		{"User messages", fmt.Sprintf("%d", p.Meta.UserMessages)},
		{"Users", strings.Join(p.Meta.Users, ", ")},
	}

	return []group{
		{"Messages per user", table([2]string{"User", "Messages"}, perUser)},
		{"Messages per day", table([2]string{"Day", "Messages"}, perDay)},
		{"Messages per hour", table([2]string{"Hour", "Messages"}, perHour)},
		{"Average length", table([2]string{"User", "Avg words"}, avg)},
		{"Replies per user", table([2]string{"User", "Replies"}, replies)},
		{"Conversation starters", table([2]string{"User", "Starts"}, starters)},
		{"Top words", table([2]string{"Word", "Count"}, words)},
		{"Top emojis", table([2]string{"Emoji", "Count"}, emojis)},
		{"Content types", table([2]string{"Type", "Count"}, types)},
		{"Length distribution", table([2]string{"Words", "Count"}, lengths)},
		{"Weekday activity", table([2]string{"Day", "Count"}, weekdays)},
		{"Inactive days", table([2]string{"Day", ""}, inactive)},
		{"Meta", table([2]string{"Field", "Value"}, meta)},
	}
}

func padRight(s string, w int) string {
	gap := w - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
