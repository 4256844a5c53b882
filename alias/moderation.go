package alias

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	retree "github.com/domonda/go-retree"
	"github.com/domonda/go-retree/changes"
	"github.com/domonda/go-retree/manager"
)

// Stores are the backends of the collections.
type Stores struct {
	Blacklist   Store[BlacklistEntry]
	Officials   Store[OfficialAlias]
	Suggestions Store[Suggestion]
}

// MemoryStores returns empty in-memory stores.
func MemoryStores() Stores {
	return Stores{
		Blacklist:   NewMemoryStore[BlacklistEntry](),
		Officials:   NewMemoryStore[OfficialAlias](),
		Suggestions: NewMemoryStore[Suggestion](),
	}
}

// RedisStores returns stores using one Redis list per collection.
func RedisStores(client *redis.Client) Stores {
	return Stores{
		Blacklist:   NewRedisStore[BlacklistEntry](client, BlacklistName),
		Officials:   NewRedisStore[OfficialAlias](client, OfficialsName),
		Suggestions: NewRedisStore[Suggestion](client, SuggestionsName),
	}
}

// PostgresStores returns stores using the alias_entries table.
func PostgresStores(db *sql.DB) Stores {
	return Stores{
		Blacklist:   NewPostgresStore[BlacklistEntry](db, BlacklistName),
		Officials:   NewPostgresStore[OfficialAlias](db, OfficialsName),
		Suggestions: NewPostgresStore[Suggestion](db, SuggestionsName),
	}
}

// Moderation connects the collections with one staging table.
type Moderation struct {
	Changes     *changes.Changes
	Blacklist   *Blacklist
	Officials   *Officials
	Suggestions *Suggestions
}

// NewModeration returns a Moderation for stores.
// A nil log discards all log messages.
func NewModeration(stores Stores, log logrus.FieldLogger) *Moderation {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	staged := changes.NewChanges(changes.WithLogger(log.WithField("collection", "Changes")))
	staged.OnFailure(func(ca *changes.ChangeAction, err error) {
		log.WithError(err).WithField("change", ca.ID).Error("change failed")
	})
	blacklist := NewBlacklist(stores.Blacklist, staged, log)
	officials := NewOfficials(stores.Officials, blacklist, staged, log)
	return &Moderation{
		Changes:     staged,
		Blacklist:   blacklist,
		Officials:   officials,
		Suggestions: NewSuggestions(stores.Suggestions, officials, blacklist, staged, log),
	}
}

// SetActionControlFactory sets the control factory of all tables.
func (m *Moderation) SetActionControlFactory(factory retree.ControlFactory) {
	m.Changes.Manager().SetActionControlFactory(factory)
	m.Blacklist.Manager().SetActionControlFactory(factory)
	m.Officials.Manager().SetActionControlFactory(factory)
	m.Suggestions.Manager().SetActionControlFactory(factory)
}

// Refresh rebuilds the tables of all collections
// and of the staged changes.
func (m *Moderation) Refresh(ctx context.Context) error {
	var errs []error
	for _, refresh := range []func(context.Context) (*retree.Table[string], error){
		m.Blacklist.Table,
		m.Officials.Table,
		m.Suggestions.Table,
		m.Changes.Manager().Table,
	} {
		if _, err := refresh(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TableInfo is the display information of a table
// with the view operations of its manager.
type TableInfo struct {
	manager.DisplayInformation

	ApplyFilters func()
	SortBy       func(title string, inverted bool) bool
	// Search shows only rows with a value containing text
	Search func(text string)
}

type viewManager interface {
	DisplayInformation() manager.DisplayInformation
	ApplyColumnFilters()
	SortBy(title string, inverted bool) bool
	Search(text string)
}

func tableInfo(m viewManager) TableInfo {
	return TableInfo{
		DisplayInformation: m.DisplayInformation(),
		ApplyFilters:       m.ApplyColumnFilters,
		SortBy:             m.SortBy,
		Search:             m.Search,
	}
}

// Tables returns the display information of all tables
// in display order.
func (m *Moderation) Tables() []TableInfo {
	return []TableInfo{
		tableInfo(m.Officials.Manager()),
		tableInfo(m.Suggestions.Manager()),
		tableInfo(m.Blacklist.Manager()),
		tableInfo(m.Changes.Manager()),
	}
}
