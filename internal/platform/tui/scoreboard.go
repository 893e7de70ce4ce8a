package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/engine"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

const (
	minWidthForSidebar = 80  // Below this the level list becomes a tab line
	sidebarWidth       = 22
	maxRuns            = 100 // Rows loaded per level
	wideTableWidth     = 60  // Below this Mode and Bus columns are dropped
)

// historyView selects which runs the scoreboard lists.
type historyView int

const (
	viewBest   historyView = iota // Victories, most stars then fastest
	viewRecent                    // Every run, newest first
)

func (v historyView) title() string {
	if v == viewRecent {
		return "RECENT RUNS"
	}
	return "BEST RUNS"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	View      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.View, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.View, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l", "d"),
			key.WithHelp("→/tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h", "a"),
			key.WithHelp("←/S-tab", "prev level"),
		),
		View: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	levels []catalog.Level
	cursor int            // Index into levels
	store  *storage.Store // May be nil; the board is then empty
	view   historyView
	runs   []storage.RunEntry
	stats  *storage.LevelStats

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard over levels, showing the first.
func NewScoreboardModel(store *storage.Store, levels []catalog.Level, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		levels: levels,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newRunTable(m.tableWidth(), height)
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// tableWidth is the room left for the table after margins and the sidebar.
func (m ScoreboardModel) tableWidth() int {
	w := m.width - 4
	if m.wide() {
		w -= sidebarWidth + 3
	}
	return w
}

func (m ScoreboardModel) level() (catalog.Level, bool) {
	if len(m.levels) == 0 {
		return catalog.Level{}, false
	}
	return m.levels[m.cursor], true
}

// newRunTable builds an empty, styled run table for the available width.
func newRunTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Result", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Dodged", Width: 8},
	}
	if width >= wideTableWidth {
		columns = append(columns,
			table.Column{Title: "Mode", Width: 7},
			table.Column{Title: "Bus", Width: 6},
		)
	}
	columns = append(columns, table.Column{Title: "Date", Width: 12})

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, height-11)), // Title, summary, detail, help and borders
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload queries the runs and summary of the selected level.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats = nil, nil
	lvl, ok := m.level()
	if ok && m.store != nil {
		var runs []storage.RunEntry
		var err error
		if m.view == viewRecent {
			runs, err = m.store.RecentRuns(lvl.ID, maxRuns)
		} else {
			runs, err = m.store.TopRuns(lvl.ID, maxRuns)
		}
		if err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetLevelStats(lvl.ID); err == nil {
			m.stats = stats
		}
	}
	m.fillTable()
}

// fillTable renders m.runs into table rows matching the current columns.
func (m *ScoreboardModel) fillTable() {
	full := len(m.table.Columns()) > 5
	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		result := stars(r.Stars)
		if r.Outcome == engine.OutcomeCrash {
			result = "crash"
		}
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			result,
			fmt.Sprintf("%.2fs", r.TimeElapsed),
			fmt.Sprintf("%d/%d", r.Avoided, r.Spawned),
		}
		if full {
			row = append(row, r.Difficulty, r.Character)
		}
		rows = append(rows, append(row, r.CreatedAt.Format("Jan 02 15:04")))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// SelectLevel moves the cursor to the level with the given id, if present.
func (m *ScoreboardModel) SelectLevel(id int) {
	for i, lvl := range m.levels {
		if lvl.ID == id {
			m.cursor = i
			m.reload()
			return
		}
	}
}

func (m *ScoreboardModel) stepLevel(step int) {
	if n := len(m.levels); n > 0 {
		m.cursor = ((m.cursor+step)%n + n) % n
		m.reload()
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			m.stepLevel(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.stepLevel(-1)
			return m, nil
		case key.Matches(msg, m.keys.View):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newRunTable(m.tableWidth(), m.height)
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	title := m.view.title()
	if lvl, ok := m.level(); ok {
		title = fmt.Sprintf("%s - %d. %s", title, lvl.ID, lvl.Name)
	}

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(mutedStyle.Render(m.summary()), m.width))
	b.WriteString("\n\n")

	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", m.renderTable()))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.renderTable(), m.width))
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.detail()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// summary describes the level's run history in one line.
func (m ScoreboardModel) summary() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "no runs yet"
	}
	line := fmt.Sprintf("%d runs  %d finished  %d crashed  avg dodged %.1f",
		m.stats.Runs, m.stats.Victories, m.stats.Crashes, m.stats.AvgAvoided)
	if m.stats.BestTime > 0 {
		line += fmt.Sprintf("  fastest %.2fs", m.stats.BestTime)
	}
	return line
}

// detail describes the highlighted run.
func (m ScoreboardModel) detail() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return ""
	}
	r := m.runs[i]
	shield := "no shield"
	if r.ShieldUsed {
		shield = "shield used"
	}
	return fmt.Sprintf(" %s after %.0fm, %s, %s", r.Outcome, r.Distance, shield, r.CreatedAt.Format("2006-01-02 15:04:05"))
}

func (m ScoreboardModel) renderSidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	lines := []string{"Levels", strings.Repeat("-", sidebarWidth-4)}
	for i, lvl := range m.levels {
		name := fmt.Sprintf("%d. %s", lvl.ID, lvl.Name)
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		if i == m.cursor {
			lines = append(lines, active.Render("> "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderTabs renders the level ids as a tab line, collapsing to the
// current level name when the ids do not fit.
func (m ScoreboardModel) renderTabs() string {
	lvl, ok := m.level()
	if !ok {
		return ""
	}
	tab := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTab := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.levels))
	for i, l := range m.levels {
		if i == m.cursor {
			tabs[i] = activeTab.Render(fmt.Sprint(l.ID))
		} else {
			tabs[i] = tab.Render(fmt.Sprintf(" %d ", l.ID))
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", lvl.Name)
	}
	return line
}

func (m ScoreboardModel) renderTable() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.runs) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		msg := "No finished runs yet.\nReach the finish line to set a record!"
		if m.view == viewRecent {
			msg = "No runs yet.\nEvery run you play shows up here."
		}
		return box.Render(empty.Render(msg))
	}
	return box.Render(m.table.View())
}

// IsGoingBack returns true if user wants to go back to the game.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen opened on levelID (0 for the
// first level). Returns true if the user wants to go back, false if quitting.
func RunScoreboard(store *storage.Store, levels []catalog.Level, levelID, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, levels, width, height)
	model.SelectLevel(levelID)

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
