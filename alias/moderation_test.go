package alias

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	retree "github.com/domonda/go-retree"
	"github.com/domonda/go-retree/changes"
)

var storeBackends = []struct {
	name   string
	stores func(t *testing.T) Stores
}{
	{
		name:   "memory",
		stores: func(*testing.T) Stores { return MemoryStores() },
	},
	{
		name: "redis",
		stores: func(t *testing.T) Stores {
			s := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: s.Addr()})
			t.Cleanup(func() { client.Close() })
			return RedisStores(client)
		},
	},
}

// click activates the control in the cell at col of row.
func click(t *testing.T, table *retree.Table[string], row, col int) {
	t.Helper()
	contents := table.Row(row).Cell(col).Contents()
	require.Len(t, contents, 1)
	require.Equal(t, retree.KindControl, contents[0].Kind())
	contents[0].Control().Activate()
}

func labelColumn(t *testing.T, table *retree.Table[string], label string) int {
	t.Helper()
	col := table.Title().ColumnIndex(label)
	require.GreaterOrEqual(t, col, 0, "column %q", label)
	return col
}

func newModeration(t *testing.T, stores Stores) *Moderation {
	t.Helper()
	mod := NewModeration(stores, nil)
	mod.SetActionControlFactory(retree.NewButton)
	return mod
}

func TestBlacklist_StagingRoundTrip(t *testing.T) {
	ctx := context.Background()
	seggs := BlacklistEntry{Name: "seggs"}

	for _, backend := range storeBackends {
		t.Run(backend.name+" commit", func(t *testing.T) {
			stores := backend.stores(t)
			require.NoError(t, stores.Blacklist.Add(ctx, seggs))
			mod := newModeration(t, stores)

			table, err := mod.Blacklist.Table(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"Name", "Delete"}, table.Title().Labels())
			click(t, table, 0, labelColumn(t, table, "Delete"))
			require.True(t, table.Row(0).Hidden())

			staged, err := mod.Changes.Manager().Table(ctx)
			require.NoError(t, err)
			require.Equal(t, 1, staged.NumRows())
			require.True(t, mod.Changes.ContainsMetadata(retree.DataObject{{Key: "Name", Title: "seggs"}}))

			click(t, staged, 0, labelColumn(t, staged, "Commit"))
			require.Zero(t, mod.Changes.Len())
			require.Zero(t, staged.NumRows())
			count, err := stores.Blacklist.Count(ctx)
			require.NoError(t, err)
			require.Zero(t, count)

			table, err = mod.Blacklist.Table(ctx)
			require.NoError(t, err)
			require.Zero(t, table.NumRows())
		})

		t.Run(backend.name+" discard", func(t *testing.T) {
			stores := backend.stores(t)
			require.NoError(t, stores.Blacklist.Add(ctx, seggs))
			mod := newModeration(t, stores)

			table, err := mod.Blacklist.Table(ctx)
			require.NoError(t, err)
			click(t, table, 0, labelColumn(t, table, "Delete"))

			// A rebuilt table keeps rows with staged changes hidden
			table, err = mod.Blacklist.Table(ctx)
			require.NoError(t, err)
			require.True(t, table.Row(0).Hidden())

			staged, err := mod.Changes.Manager().Table(ctx)
			require.NoError(t, err)
			click(t, staged, 0, labelColumn(t, staged, "Discard"))
			require.Zero(t, mod.Changes.Len())

			count, err := stores.Blacklist.Count(ctx)
			require.NoError(t, err)
			require.Equal(t, 1, count)
			require.False(t, table.Row(0).Hidden())
			require.Equal(t, []string{"seggs"}, table.Row(0).Data())

			table, err = mod.Blacklist.Table(ctx)
			require.NoError(t, err)
			require.False(t, table.Row(0).Hidden())
		})
	}
}

func TestOfficials_BatchBlacklist(t *testing.T) {
	ctx := context.Background()
	a := OfficialAlias{Name: "A", Location: Location{Key: "r1", Name: "Lab"}}
	b := OfficialAlias{Name: "B", Location: Location{Key: "r2", Name: "Hall"}}
	c := OfficialAlias{Name: "C", Location: Location{Key: "r3", Name: "Office"}}

	for _, backend := range storeBackends {
		t.Run(backend.name, func(t *testing.T) {
			stores := backend.stores(t)
			for _, official := range []OfficialAlias{a, b, c} {
				require.NoError(t, stores.Officials.Add(ctx, official))
			}
			mod := newModeration(t, stores)

			table, err := mod.Officials.Table(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"Name", "Location", "Delete", "Blacklist"}, table.Title().Labels())
			col := labelColumn(t, table, "Blacklist")
			click(t, table, 0, col)
			click(t, table, 2, col)
			require.Equal(t, 2, mod.Changes.Len())

			require.NoError(t, mod.Changes.CommitAll(ctx))
			require.Zero(t, mod.Changes.Len())

			officials, err := stores.Officials.List(ctx)
			require.NoError(t, err)
			require.Equal(t, []OfficialAlias{b}, officials)
			blacklisted, err := stores.Blacklist.List(ctx)
			require.NoError(t, err)
			require.ElementsMatch(t, []BlacklistEntry{{Name: "A"}, {Name: "C"}}, blacklisted)

			require.Equal(t, []OfficialAlias{b}, mod.Officials.Manager().Data())
			blacklist, err := mod.Blacklist.Table(ctx)
			require.NoError(t, err)
			require.Equal(t, 2, blacklist.NumRows(), "entries added by commits are not duplicated")
		})
	}
}

func TestSuggestions(t *testing.T) {
	ctx := context.Background()
	yeet := Suggestion{Name: "yeet", Location: Location{Key: "r1", Name: "Lab"}, SuggestedBy: "erik"}
	yolo := Suggestion{Name: "yolo", Location: Location{Key: "r2", Name: "Hall"}, SuggestedBy: "jana"}
	unalive := Suggestion{Name: "unalive", Location: Location{Key: "r3", Name: "Office"}, SuggestedBy: "erik"}

	for _, backend := range storeBackends {
		t.Run(backend.name, func(t *testing.T) {
			stores := backend.stores(t)
			for _, s := range []Suggestion{yeet, yolo, unalive} {
				require.NoError(t, stores.Suggestions.Add(ctx, s))
			}
			mod := newModeration(t, stores)

			table, err := mod.Suggestions.Table(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"Name", "Location", "Suggested By", "Accept", "Reject", "Blacklist"}, table.Title().Labels())
			require.Equal(t, []string{"yeet", "r1", "Lab", "erik"}, table.Row(0).Data())

			accept := mod.Suggestions.Accept(yeet)
			require.Equal(t, "Accept \"yeet\"", accept.Description)
			mod.Suggestions.Reject(yolo)
			mod.Suggestions.Blacklist(unalive)
			require.NoError(t, mod.Changes.CommitAll(ctx))

			suggestions, err := stores.Suggestions.Count(ctx)
			require.NoError(t, err)
			require.Zero(t, suggestions)
			officials, err := stores.Officials.List(ctx)
			require.NoError(t, err)
			require.Equal(t, []OfficialAlias{yeet.Official()}, officials)
			blacklisted, err := stores.Blacklist.List(ctx)
			require.NoError(t, err)
			require.Equal(t, []BlacklistEntry{{Name: "unalive"}}, blacklisted)

			require.NoError(t, mod.Refresh(ctx))
			require.Equal(t, 1, mod.Officials.Manager().CurrentTable().NumRows())
		})
	}
}

func TestCollection_FailedCommit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(BlacklistEntry{Name: "seggs"})
	mod := NewModeration(Stores{Blacklist: store, Officials: NewMemoryStore[OfficialAlias](), Suggestions: NewMemoryStore[Suggestion]()}, nil)
	_, err := mod.Blacklist.Table(ctx)
	require.NoError(t, err)

	ca := mod.Blacklist.Delete(BlacklistEntry{Name: "seggs"})
	// Removed behind the back of the collection
	_, err = store.Remove(ctx, BlacklistEntry{Name: "seggs"})
	require.NoError(t, err)

	require.Error(t, mod.Changes.Commit(ctx, ca))
	require.Zero(t, mod.Changes.Len(), "a change returning false is not kept")

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	require.NoError(t, store.Add(ctx, BlacklistEntry{Name: "yeet"}))
	ca = mod.Blacklist.Delete(BlacklistEntry{Name: "yeet"})
	require.ErrorIs(t, mod.Changes.Commit(canceled, ca), context.Canceled)
	require.Equal(t, 1, mod.Changes.Len(), "a change returning an error stays staged")
}

func TestModeration_Tables(t *testing.T) {
	mod := NewModeration(MemoryStores(), nil)
	var titles []string
	for _, info := range mod.Tables() {
		titles = append(titles, info.TableTitle)
	}
	require.Equal(t, []string{"Officials", "Suggestions", "Blacklist", "Changes"}, titles)
	require.Len(t, mod.Tables()[0].FilterableData, 2)
}

// flakyStore fails Add while addErr is set.
type flakyStore[E any] struct {
	Store[E]
	addErr error
}

func (s *flakyStore[E]) Add(ctx context.Context, entity E) error {
	if s.addErr != nil {
		return s.addErr
	}
	return s.Store.Add(ctx, entity)
}

func TestOfficials_BlacklistRetry(t *testing.T) {
	ctx := context.Background()
	a := OfficialAlias{Name: "A", Location: Location{Key: "r1", Name: "Lab"}}
	failure := errors.New("blacklist unavailable")

	t.Run("commit after failure", func(t *testing.T) {
		blacklist := &flakyStore[BlacklistEntry]{Store: NewMemoryStore[BlacklistEntry](), addErr: failure}
		stores := Stores{Blacklist: blacklist, Officials: NewMemoryStore(a), Suggestions: NewMemoryStore[Suggestion]()}
		mod := newModeration(t, stores)
		require.NoError(t, mod.Refresh(ctx))

		ca := mod.Officials.Blacklist(a)
		require.ErrorIs(t, mod.Changes.Commit(ctx, ca), failure)
		require.Equal(t, 1, mod.Changes.Len(), "change stays staged")
		officials, err := stores.Officials.List(ctx)
		require.NoError(t, err)
		require.Equal(t, []OfficialAlias{a}, officials, "removal is undone")

		blacklist.addErr = nil
		require.NoError(t, mod.Changes.Commit(ctx, ca))
		require.Zero(t, mod.Changes.Len())
		count, err := stores.Officials.Count(ctx)
		require.NoError(t, err)
		require.Zero(t, count)
		entries, err := blacklist.List(ctx)
		require.NoError(t, err)
		require.Equal(t, []BlacklistEntry{{Name: "A"}}, entries)
	})

	t.Run("discard after failure", func(t *testing.T) {
		blacklist := &flakyStore[BlacklistEntry]{Store: NewMemoryStore[BlacklistEntry](), addErr: failure}
		stores := Stores{Blacklist: blacklist, Officials: NewMemoryStore(a), Suggestions: NewMemoryStore[Suggestion]()}
		mod := newModeration(t, stores)
		table, err := mod.Officials.Table(ctx)
		require.NoError(t, err)

		ca := mod.Officials.Blacklist(a)
		require.True(t, table.Row(0).Hidden())
		require.Error(t, mod.Changes.Commit(ctx, ca))
		require.NoError(t, mod.Changes.Discard(ctx, ca))
		require.False(t, table.Row(0).Hidden())
		officials, err := stores.Officials.List(ctx)
		require.NoError(t, err)
		require.Equal(t, []OfficialAlias{a}, officials)
		require.ErrorIs(t, mod.Changes.Commit(ctx, ca), changes.ErrNotStaged)
	})
}

func TestSuggestions_AcceptRetry(t *testing.T) {
	ctx := context.Background()
	yeet := Suggestion{Name: "yeet", Location: Location{Key: "r1"}, SuggestedBy: "erik"}
	officials := &flakyStore[OfficialAlias]{Store: NewMemoryStore[OfficialAlias](), addErr: errors.New("officials unavailable")}
	stores := Stores{Blacklist: NewMemoryStore[BlacklistEntry](), Officials: officials, Suggestions: NewMemoryStore(yeet)}
	mod := newModeration(t, stores)

	ca := mod.Suggestions.Accept(yeet)
	require.Error(t, mod.Changes.CommitAll(ctx))
	suggestions, err := stores.Suggestions.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []Suggestion{yeet}, suggestions)

	officials.addErr = nil
	require.NoError(t, mod.Changes.Commit(ctx, ca))
	accepted, err := officials.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []OfficialAlias{yeet.Official()}, accepted)
	count, err := stores.Suggestions.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestBlacklist_CommitAfterDiscard(t *testing.T) {
	ctx := context.Background()
	seggs := BlacklistEntry{Name: "seggs"}
	stores := MemoryStores()
	require.NoError(t, stores.Blacklist.Add(ctx, seggs))
	mod := newModeration(t, stores)

	ca := mod.Blacklist.Delete(seggs)
	require.NoError(t, mod.Changes.Discard(ctx, ca))
	require.ErrorIs(t, mod.Changes.Commit(ctx, ca), changes.ErrNotStaged)
	count, err := stores.Blacklist.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count, "discarded deletion is not applied")
}
