package main

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/domonda/go-retree/alias"
)

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// update passes msg to m and runs the returned command
// if it loads a table. Commands of the filter input
// only blink the cursor and are not run.
func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(model)
	if cmd != nil && !m.filtering {
		if loaded, ok := cmd().(tableMsg); ok {
			updated, _ = m.Update(loaded)
			m = updated.(model)
		}
	}
	return m
}

func visibleNames(m model) []string {
	var names []string
	for _, row := range m.visible() {
		names = append(names, row.Cell(0).Data()...)
	}
	return names
}

func testModel(t *testing.T) (model, alias.Stores) {
	t.Helper()
	stores := alias.Stores{
		Blacklist: alias.NewMemoryStore(alias.BlacklistEntry{Name: "nope"}),
		Officials: alias.NewMemoryStore(
			alias.OfficialAlias{Name: "b", Location: alias.Location{Key: "r1", Name: "Lab"}},
			alias.OfficialAlias{Name: "c", Location: alias.Location{Key: "r2", Name: "Hall"}},
			alias.OfficialAlias{Name: "a", Location: alias.Location{Key: "r3", Name: "Roof"}},
		),
		Suggestions: alias.NewMemoryStore(alias.Suggestion{Name: "d", Location: alias.Location{Key: "r4"}, SuggestedBy: "ali"}),
	}
	m := newModel(context.Background(), alias.NewModeration(stores, nil))
	loaded := m.Init()()
	updated, _ := m.Update(loaded)
	return updated.(model), stores
}

func TestModel_Load(t *testing.T) {
	m, _ := testModel(t)
	require.NoError(t, m.err)
	require.Equal(t, []string{"b", "c", "a"}, visibleNames(m))
	view := m.View()
	require.Contains(t, view, "Officials")
	require.Contains(t, view, "r1 Lab")
	require.Contains(t, view, "tab next table")

	m = update(t, m, keyTab)
	require.Equal(t, alias.SuggestionsName, m.info().TableTitle)
	require.Equal(t, []string{"d"}, visibleNames(m))
	m = update(t, m, keyTab)
	m = update(t, m, keyTab)
	require.Equal(t, "Changes", m.info().TableTitle)
	m = update(t, m, keyTab)
	require.Equal(t, alias.OfficialsName, m.info().TableTitle)
}

func TestModel_StageCommitDiscard(t *testing.T) {
	ctx := context.Background()
	m, stores := testModel(t)

	// Delete of "b"
	m = update(t, m, keyRight)
	m = update(t, m, keyRight)
	m = update(t, m, keyEnter)
	require.Equal(t, []string{"c", "a"}, visibleNames(m))
	require.Equal(t, 1, m.mod.Changes.Len())
	require.Contains(t, m.View(), "1 changes staged")

	m = update(t, m, runes("D"))
	require.NoError(t, m.err)
	require.Equal(t, 0, m.mod.Changes.Len())
	require.Equal(t, []string{"b", "c", "a"}, visibleNames(m))

	// Blacklist of "c"
	m = update(t, m, keyDown)
	m = update(t, m, keyRight)
	require.Equal(t, 3, m.col)
	m = update(t, m, keyEnter)
	require.Equal(t, []string{"b", "a"}, visibleNames(m))

	m = update(t, m, runes("C"))
	require.NoError(t, m.err)
	require.Contains(t, m.View(), "committed 1 changes")
	require.Equal(t, []string{"b", "a"}, visibleNames(m))
	officials, err := stores.Officials.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, officials)
	blacklist, err := stores.Blacklist.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []alias.BlacklistEntry{{Name: "nope"}, {Name: "c"}}, blacklist)
}

func TestModel_SortAndFilter(t *testing.T) {
	m, _ := testModel(t)

	m = update(t, m, runes("s"))
	require.Equal(t, []string{"a", "b", "c"}, visibleNames(m))
	m = update(t, m, runes("s"))
	require.Equal(t, []string{"c", "b", "a"}, visibleNames(m))

	m = update(t, m, runes("/"))
	require.True(t, m.filtering)
	m = update(t, m, runes("B"))
	m = update(t, m, keyEnter)
	require.False(t, m.filtering)
	require.Equal(t, []string{"b"}, visibleNames(m))

	// Filters are applied again after a rebuild
	m = update(t, m, runes("r"))
	require.Equal(t, []string{"b"}, visibleNames(m))

	m = update(t, m, runes("/"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = update(t, m, keyEnter)
	require.Equal(t, []string{"b", "c", "a"}, visibleNames(m))

	m = update(t, m, runes("/"))
	m = update(t, m, runes("x"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.filtering)
	require.Equal(t, []string{"b", "c", "a"}, visibleNames(m), "canceled filter is not applied")
}

func TestModel_CursorBounds(t *testing.T) {
	m, _ := testModel(t)
	m = update(t, m, runes("k"))
	m = update(t, m, runes("h"))
	require.Zero(t, m.row)
	require.Zero(t, m.col)
	for range 10 {
		m = update(t, m, runes("j"))
		m = update(t, m, runes("l"))
	}
	require.Equal(t, 2, m.row)
	require.Equal(t, 3, m.col)
}

func TestModel_Quit(t *testing.T) {
	m, _ := testModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}
