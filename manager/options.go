package manager

import (
	"io"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus"

	retree "github.com/domonda/go-retree"
	"github.com/domonda/go-retree/filterstrategy"
)

// RowSorter orders two rows of a managed table.
type RowSorter = retree.Sorter[*retree.Row[string]]

// Option configures a Manager.
type Option[E any] func(*options[E])

type options[E any] struct {
	initialData []E
	sorters     map[string]RowSorter
	actions     []Action[E]
	showEntry   func(metadata retree.DataObject) bool
	strategies  []filterstrategy.Strategy
	equal       func(a, b E) bool
	log         logrus.FieldLogger
	tableTitle  string
}

func defaultOptions[E any]() options[E] {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return options[E]{
		equal: defaultEqual[E],
		log:   discard,
	}
}

// WithInitialData passes entities that are added
// to the table with the first call of Manager.Table.
func WithInitialData[E any](entities ...E) Option[E] {
	return func(o *options[E]) {
		o.initialData = append(o.initialData, entities...)
	}
}

// WithSorters sets the sorters of the title cells by column title.
func WithSorters[E any](sorters map[string]RowSorter) Option[E] {
	return func(o *options[E]) {
		o.sorters = sorters
	}
}

// WithActions appends actions that add one control column each.
func WithActions[E any](actions ...Action[E]) Option[E] {
	return func(o *options[E]) {
		o.actions = append(o.actions, actions...)
	}
}

// WithShowEntry sets the predicate deciding if a freshly built row
// is shown. It is called with the metadata of the row.
func WithShowEntry[E any](showEntry func(metadata retree.DataObject) bool) Option[E] {
	return func(o *options[E]) {
		o.showEntry = showEntry
	}
}

// WithFilterStrategies sets one filter strategy per entity column.
// A nil strategy disables filtering of its column.
func WithFilterStrategies[E any](strategies ...filterstrategy.Strategy) Option[E] {
	return func(o *options[E]) {
		o.strategies = strategies
	}
}

// defaultEqual compares entities with cmp.Equal including
// unexported fields and treating nil and empty slices and maps
// as equal. Types with an Equal method are compared with it.
func defaultEqual[E any](a, b E) bool {
	return cmp.Equal(a, b,
		cmp.Exporter(func(reflect.Type) bool { return true }),
		cmpopts.EquateEmpty(),
	)
}

// WithEqual sets the structural equality of entities.
// The default compares all fields, exported or not, and uses
// the Equal method of types that have one. Entities holding
// functions, channels or other values that can't be compared
// field by field need an equal func.
func WithEqual[E any](equal func(a, b E) bool) Option[E] {
	return func(o *options[E]) {
		o.equal = equal
	}
}

func WithLogger[E any](log logrus.FieldLogger) Option[E] {
	return func(o *options[E]) {
		o.log = log
	}
}

// WithTableTitle sets the name of the table
// used for DisplayInformation and logging.
func WithTableTitle[E any](title string) Option[E] {
	return func(o *options[E]) {
		o.tableTitle = title
	}
}
