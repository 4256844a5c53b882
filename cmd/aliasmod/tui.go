package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	retree "github.com/domonda/go-retree"
	"github.com/domonda/go-retree/alias"
)

var tuiCmd = withStores(&cobra.Command{
	Use:   "tui",
	Short: "Moderate aliases interactively",
	Long: `Moderate aliases in an interactive terminal UI.

Select a cell with the arrow keys and press enter on an action
cell like Delete, Accept or Blacklist to stage a change.
Staged changes are listed in the Changes table until they are
committed or discarded.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := tea.NewProgram(newModel(cmd.Context(), app.mod), tea.WithAltScreen()).Run()
		return err
	},
})

func init() {
	rootCmd.AddCommand(tuiCmd)
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Tab     key.Binding
	Enter   key.Binding
	Sort    key.Binding
	Filter  key.Binding
	Commit  key.Binding
	Discard key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next table")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
		Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter column")),
		Commit:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "commit all")),
		Discard: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "discard all")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) help() string {
	var parts []string
	for _, b := range []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Tab, k.Enter, k.Sort, k.Filter, k.Commit, k.Discard, k.Refresh, k.Quit} {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return strings.Join(parts, " • ")
}

// tableMsg carries a rebuilt table
type tableMsg struct {
	index int
	table *retree.Table[string]
	err   error
}

// filterValues are the filter texts by table title and column
type filterValues map[string]map[int]string

type model struct {
	ctx     context.Context
	mod     *alias.Moderation
	tables  []alias.TableInfo
	filters filterValues
	keys    keyMap
	input   textinput.Model

	active    int
	table     *retree.Table[string]
	row       int // index into the visible rows
	col       int
	inverted  bool
	filtering bool
	status    string
	err       error
	width     int
}

func newModel(ctx context.Context, mod *alias.Moderation) model {
	mod.SetActionControlFactory(retree.NewButton)
	m := model{
		ctx:     ctx,
		mod:     mod,
		tables:  mod.Tables(),
		filters: make(filterValues),
		keys:    defaultKeyMap(),
		input:   textinput.New(),
	}
	m.input.Prompt = "filter: "
	for _, info := range m.tables {
		title := info.TableTitle
		m.filters[title] = make(map[int]string)
		for col, strategy := range info.FilterableData {
			if strategy == nil {
				continue
			}
			strategy.SetFilter(func() (string, bool) {
				value := m.filters[title][col]
				return value, value != ""
			})
		}
	}
	return m
}

func (m model) Init() tea.Cmd {
	return m.load()
}

func (m model) info() alias.TableInfo {
	return m.tables[m.active]
}

func (m model) load() tea.Cmd {
	index, info, ctx := m.active, m.info(), m.ctx
	return func() tea.Msg {
		table, err := info.Supplier(ctx)
		return tableMsg{index: index, table: table, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tableMsg:
		if msg.index != m.active {
			return m, nil
		}
		m.table, m.err = msg.table, msg.err
		if len(m.filters[m.info().TableTitle]) > 0 {
			m.info().ApplyFilters()
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		m.active = (m.active + 1) % len(m.tables)
		m.row, m.col, m.inverted, m.status = 0, 0, false, ""
		m.table = nil
		return m, m.load()

	case key.Matches(msg, m.keys.Up):
		m.row--
	case key.Matches(msg, m.keys.Down):
		m.row++
	case key.Matches(msg, m.keys.Left):
		m.col--
	case key.Matches(msg, m.keys.Right):
		m.col++

	case key.Matches(msg, m.keys.Enter):
		m.activate()

	case key.Matches(msg, m.keys.Sort):
		if cell := m.titleCell(); cell != nil {
			label := cell.Label()
			if m.info().SortBy(label, m.inverted) {
				m.status = fmt.Sprintf("sorted by %s", label)
				m.inverted = !m.inverted
			} else {
				m.status = fmt.Sprintf("%s can't be sorted", label)
			}
		}

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.input.SetValue(m.filters[m.info().TableTitle][m.col])
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Commit):
		n := m.mod.Changes.Len()
		m.err = m.mod.Changes.CommitAll(m.ctx)
		m.status = fmt.Sprintf("committed %d changes", n-m.mod.Changes.Len())
		return m, m.load()

	case key.Matches(msg, m.keys.Discard):
		n := m.mod.Changes.Len()
		m.err = m.mod.Changes.DiscardAll(m.ctx)
		m.status = fmt.Sprintf("discarded %d changes", n-m.mod.Changes.Len())
		return m, m.load()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()
	}
	m.clampCursor()
	return m, nil
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.input.Blur()
		m.filters[m.info().TableTitle][m.col] = strings.TrimSpace(m.input.Value())
		m.info().ApplyFilters()
		m.row = 0
		m.clampCursor()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// activate activates the controls of the selected cell.
func (m *model) activate() {
	rows := m.visible()
	if m.row < 0 || m.row >= len(rows) {
		return
	}
	cell := rows[m.row].Cell(m.col)
	if cell == nil {
		return
	}
	activated := false
	for _, d := range cell.Contents() {
		if d.Kind() == retree.KindControl && d.Control() != nil {
			d.Control().Activate()
			activated = true
		}
	}
	if activated {
		m.status = fmt.Sprintf("%d changes staged", m.mod.Changes.Len())
	}
}

func (m model) titleCell() *retree.TitleCell[string] {
	if m.table == nil || m.table.Title() == nil {
		return nil
	}
	return m.table.Title().Cell(m.col)
}

func (m model) visible() []*retree.Row[string] {
	if m.table == nil {
		return nil
	}
	return visibleRows(m.table)
}

func (m *model) clampCursor() {
	numRows := len(m.visible())
	numCols := 0
	if m.table != nil {
		numCols = m.table.NumCols()
	}
	m.row = max(min(m.row, numRows-1), 0)
	m.col = max(min(m.col, numCols-1), 0)
}

func (m model) View() string {
	var b strings.Builder
	for i, info := range m.tables {
		style := tabStyle
		if i == m.active {
			style = activeTab
		}
		b.WriteString(style.Render(info.TableTitle))
	}
	b.WriteString("\n\n")

	if m.table == nil {
		b.WriteString("loading...\n")
	} else {
		out, err := renderTable(m.table, m.row, m.col)
		if err != nil {
			b.WriteString(errorStyle.Render(err.Error()))
		} else {
			b.WriteString(out)
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	if m.filtering {
		b.WriteString(m.input.View() + "\n")
	} else {
		b.WriteString(helpStyle.Render(m.keys.help()) + "\n")
	}
	return b.String()
}
