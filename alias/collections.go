package alias

import (
	"github.com/sirupsen/logrus"

	"github.com/domonda/go-retree/changes"
)

// Collection names used as change categories and store keys.
const (
	BlacklistName   = "Blacklist"
	OfficialsName   = "Officials"
	SuggestionsName = "Suggestions"
)

// Blacklist is the collection of forbidden names.
// Its rows have a "Delete" action.
type Blacklist struct {
	*Collection[BlacklistEntry]
}

func NewBlacklist(store Store[BlacklistEntry], staged *changes.Changes, log logrus.FieldLogger) *Blacklist {
	b := new(Blacklist)
	b.Collection = newCollection(BlacklistName, store, staged, log,
		action("Delete", b.Delete),
	)
	return b
}

// Delete stages the removal of entry from the blacklist.
func (b *Blacklist) Delete(entry BlacklistEntry) *changes.ChangeAction {
	return b.stage(entry, describe("Delete", entry.Name), b.removeCommand(entry))
}

// Officials is the collection of approved aliases.
// Its rows have a "Delete" and a "Blacklist" action.
type Officials struct {
	*Collection[OfficialAlias]

	blacklist *Blacklist
}

func NewOfficials(store Store[OfficialAlias], blacklist *Blacklist, staged *changes.Changes, log logrus.FieldLogger) *Officials {
	o := &Officials{blacklist: blacklist}
	o.Collection = newCollection(OfficialsName, store, staged, log,
		action("Delete", o.Delete),
		action("Blacklist", o.Blacklist),
	)
	return o
}

// Delete stages the removal of the official alias.
func (o *Officials) Delete(alias OfficialAlias) *changes.ChangeAction {
	return o.stage(alias, describe("Delete", alias.Name), o.removeCommand(alias))
}

// Blacklist stages the removal of the official alias
// and the addition of its name to the blacklist.
func (o *Officials) Blacklist(alias OfficialAlias) *changes.ChangeAction {
	return o.stage(alias, describe("Blacklist", alias.Name),
		changes.Sequence("blacklist official",
			o.removeCommand(alias),
			o.blacklist.addCommand(BlacklistEntry{Name: alias.Name}),
		),
	)
}

// Suggestions is the collection of suggested aliases.
// Its rows have an "Accept", a "Reject" and a "Blacklist" action.
type Suggestions struct {
	*Collection[Suggestion]

	officials *Officials
	blacklist *Blacklist
}

func NewSuggestions(store Store[Suggestion], officials *Officials, blacklist *Blacklist, staged *changes.Changes, log logrus.FieldLogger) *Suggestions {
	s := &Suggestions{officials: officials, blacklist: blacklist}
	s.Collection = newCollection(SuggestionsName, store, staged, log,
		action("Accept", s.Accept),
		action("Reject", s.Reject),
		action("Blacklist", s.Blacklist),
	)
	return s
}

// Accept stages the removal of the suggestion
// and the addition of it as official alias.
func (s *Suggestions) Accept(suggestion Suggestion) *changes.ChangeAction {
	return s.stage(suggestion, describe("Accept", suggestion.Name),
		changes.Sequence("accept suggestion",
			s.removeCommand(suggestion),
			s.officials.addCommand(suggestion.Official()),
		),
	)
}

// Reject stages the removal of the suggestion.
func (s *Suggestions) Reject(suggestion Suggestion) *changes.ChangeAction {
	return s.stage(suggestion, describe("Reject", suggestion.Name), s.removeCommand(suggestion))
}

// Blacklist stages the removal of the suggestion
// and the addition of its name to the blacklist.
func (s *Suggestions) Blacklist(suggestion Suggestion) *changes.ChangeAction {
	return s.stage(suggestion, describe("Blacklist", suggestion.Name),
		changes.Sequence("blacklist suggestion",
			s.removeCommand(suggestion),
			s.blacklist.addCommand(BlacklistEntry{Name: suggestion.Name}),
		),
	)
}
