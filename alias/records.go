package alias

import (
	"context"
	"errors"
	"fmt"
	"strings"

	retree "github.com/domonda/go-retree"
)

// ErrNotFound is returned for unknown collections.
var ErrNotFound = errors.New("not found")

// Column titles of imported records.
const (
	ColumnName         = "Name"
	ColumnLocationKey  = "Location Key"
	ColumnLocationName = "Location Name"
	ColumnSuggestedBy  = "Suggested By"
)

func required(record map[string]string, column string) (string, error) {
	value := strings.TrimSpace(record[column])
	if value == "" {
		return "", fmt.Errorf("missing %q", column)
	}
	return value, nil
}

func locationFromRecord(record map[string]string) (loc Location, err error) {
	loc.Key, err = required(record, ColumnLocationKey)
	if err != nil {
		return Location{}, err
	}
	loc.Name = strings.TrimSpace(record[ColumnLocationName])
	return loc, nil
}

// BlacklistEntryFromRecord requires the Name column.
func BlacklistEntryFromRecord(record map[string]string) (BlacklistEntry, error) {
	name, err := required(record, ColumnName)
	return BlacklistEntry{Name: name}, err
}

// OfficialAliasFromRecord requires the Name and Location Key columns.
func OfficialAliasFromRecord(record map[string]string) (OfficialAlias, error) {
	name, err := required(record, ColumnName)
	if err != nil {
		return OfficialAlias{}, err
	}
	loc, err := locationFromRecord(record)
	if err != nil {
		return OfficialAlias{}, err
	}
	return OfficialAlias{Name: name, Location: loc}, nil
}

// SuggestionFromRecord requires the Name and Location Key columns.
func SuggestionFromRecord(record map[string]string) (Suggestion, error) {
	official, err := OfficialAliasFromRecord(record)
	if err != nil {
		return Suggestion{}, err
	}
	return Suggestion{
		Name:        official.Name,
		Location:    official.Location,
		SuggestedBy: strings.TrimSpace(record[ColumnSuggestedBy]),
	}, nil
}

func importRecords[E retree.ToDisplayData](ctx context.Context, c *Collection[E], records []map[string]string, parse func(map[string]string) (E, error)) (int, error) {
	entities := make([]E, len(records))
	for i, record := range records {
		var err error
		entities[i], err = parse(record)
		if err != nil {
			return 0, fmt.Errorf("%s record %d: %w", c.name, i+1, err)
		}
	}
	for i, entity := range entities {
		if err := c.Insert(ctx, entity); err != nil {
			return i, err
		}
	}
	c.log.WithField("rows", len(entities)).Info("imported records")
	return len(entities), nil
}

// Import parses all records and inserts them into the named
// collection without staging changes.
// Nothing is inserted if a record is invalid.
func (m *Moderation) Import(ctx context.Context, collection string, records []map[string]string) (int, error) {
	switch collection {
	case BlacklistName:
		return importRecords(ctx, m.Blacklist.Collection, records, BlacklistEntryFromRecord)
	case OfficialsName:
		return importRecords(ctx, m.Officials.Collection, records, OfficialAliasFromRecord)
	case SuggestionsName:
		return importRecords(ctx, m.Suggestions.Collection, records, SuggestionFromRecord)
	}
	return 0, fmt.Errorf("collection %q: %w", collection, ErrNotFound)
}

// Table returns the display information of the named table.
func (m *Moderation) Table(name string) (TableInfo, error) {
	for _, info := range m.Tables() {
		if strings.EqualFold(info.TableTitle, name) {
			return info, nil
		}
	}
	return TableInfo{}, fmt.Errorf("table %q: %w", name, ErrNotFound)
}
