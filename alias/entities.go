// Package alias implements the moderation of alias records
// that map names to locations.
//
// Aliases are kept in three collections: official aliases,
// suggestions waiting for approval and a blacklist of forbidden names.
// All destructive or approving actions of the collections are
// staged as changes and performed when the change is committed.
package alias

import (
	retree "github.com/domonda/go-retree"
)

var (
	_ retree.ToDisplayData = BlacklistEntry{}
	_ retree.ToDisplayData = OfficialAlias{}
	_ retree.ToDisplayData = Suggestion{}
)

// Location is the target of an alias.
type Location struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// DataObject returns the location as nested table data.
func (l Location) DataObject() retree.DataObject {
	return retree.DataObject{
		{Key: "Key", Title: "Key", Values: []string{l.Key}},
		{Key: "Name", Title: "Name", Values: []string{l.Name}},
	}
}

// BlacklistEntry is a name that must not be used as alias.
type BlacklistEntry struct {
	Name string `json:"name"`
}

func (e BlacklistEntry) ToDisplayData() []retree.Display {
	return []retree.Display{retree.TextDisplay(e.Name)}
}

// OfficialAlias is an approved alias.
type OfficialAlias struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
}

func (a OfficialAlias) ToDisplayData() []retree.Display {
	return []retree.Display{
		retree.TextDisplay(a.Name),
		retree.ObjectDisplay(a.Location.DataObject()),
	}
}

// Suggestion is an alias suggested by a user.
type Suggestion struct {
	Name        string   `json:"name"`
	Location    Location `json:"location"`
	SuggestedBy string   `json:"suggestedBy"`
}

func (s Suggestion) ToDisplayData() []retree.Display {
	return []retree.Display{
		retree.TextDisplay(s.Name),
		retree.ObjectDisplay(s.Location.DataObject()),
		retree.TextDisplay(s.SuggestedBy),
	}
}

// Official returns the suggestion as official alias.
func (s Suggestion) Official() OfficialAlias {
	return OfficialAlias{Name: s.Name, Location: s.Location}
}
