// Package manager converts lists of entities into tables
// and keeps the tables in sync with mutations of the entities.
package manager

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	retree "github.com/domonda/go-retree"
	"github.com/domonda/go-retree/filterstrategy"
)

// Fetcher loads the current entities from a backend.
// A nil slice with a nil error means that no data is available
// and the committed entities are kept.
type Fetcher[E any] interface {
	Fetch(ctx context.Context) ([]E, error)
}

// FetcherFunc implements Fetcher for a function.
type FetcherFunc[E any] func(ctx context.Context) ([]E, error)

func (f FetcherFunc[E]) Fetch(ctx context.Context) ([]E, error) {
	return f(ctx)
}

// Counter can be implemented by a Fetcher
// to report the number of entities in the backend.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Action adds a column with one control per row.
type Action[E any] struct {
	// Text is the column title and the label of the controls.
	Text string
	// OnClick returns the callbacks of the control of entity.
	OnClick func(entity E) []func()
}

// Listener is called with the new table after every
// rebuild and every change of row visibility.
type Listener func(table *retree.Table[string])

// DisplayInformation is everything a view layer
// needs to display a managed table.
type DisplayInformation struct {
	// Supplier rebuilds and returns the table
	Supplier func(ctx context.Context) (*retree.Table[string], error)
	// Updater registers a listener
	Updater func(listener Listener)
	// FilterableData has one filter strategy per entity column
	FilterableData []filterstrategy.Strategy
	// Size returns the number of entities
	Size       func(ctx context.Context) int
	TableTitle string
}

// Manager manages a table of entities of type E
// with a title of type T.
//
// Entities are either committed, meaning they are part of the
// last built table, or staged and waiting to be added
// with the next call of Table.
type Manager[E retree.ToDisplayData, T retree.ToDisplayData] struct {
	title      T
	labels     []retree.Display
	fetcher    Fetcher[E]
	opts       options[E]
	actionCols int

	mu        sync.Mutex
	data      []E
	toBeAdded []E
	rows      []*retree.Row[string] // rows[i] displays data[i] if table != nil
	held      map[*retree.Row[string]]bool // hidden by Hide or showEntry, column filters keep them hidden
	search    string
	table     *retree.Table[string]
	factory   retree.ControlFactory
	listeners []Listener
}

// New returns a Manager for entities with columns defined by title.
// A nil fetcher never returns any data.
//
// New panics with an error wrapping retree.ErrColumnMismatch
// if any initial entity has a different number of columns than title.
func New[E retree.ToDisplayData, T retree.ToDisplayData](title T, fetcher Fetcher[E], opts ...Option[E]) *Manager[E, T] {
	m := &Manager[E, T]{
		title:   title,
		labels:  retree.CloneDisplays(title.ToDisplayData()),
		fetcher: fetcher,
		opts:    defaultOptions[E](),
	}
	for _, opt := range opts {
		opt(&m.opts)
	}
	m.actionCols = len(m.opts.actions)
	m.AddData(m.opts.initialData...)
	return m
}

// Title returns the title passed to New.
func (m *Manager[E, T]) Title() T { return m.title }

// NumCols returns the number of entity columns without the action columns.
func (m *Manager[E, T]) NumCols() int { return len(m.labels) }

// Table fetches the entities from the backend, merges the staged
// entities into the committed ones and returns a new table.
// If fetching fails, the committed entities are kept and
// the error is returned together with the rebuilt table.
func (m *Manager[E, T]) Table(ctx context.Context) (*retree.Table[string], error) {
	var fetched []E
	var fetchErr error
	if m.fetcher != nil {
		fetched, fetchErr = m.fetcher.Fetch(ctx)
		if fetchErr != nil {
			m.opts.log.WithError(fetchErr).WithField("table", m.opts.tableTitle).Warn("fetch failed, keeping committed data")
			fetched = nil
			fetchErr = fmt.Errorf("fetch %s: %w", m.tableName(), fetchErr)
		}
	}

	m.mu.Lock()
	if fetched != nil {
		m.data = fetched
	}
	for _, e := range m.toBeAdded {
		if !m.containsLocked(m.data, e) {
			m.data = append(m.data, e)
		}
	}
	m.toBeAdded = nil
	data := slices.Clone(m.data)
	factory := m.factory
	m.mu.Unlock()

	table, rows := m.build(data, factory)

	m.mu.Lock()
	m.table = table
	m.rows = rows
	m.held = make(map[*retree.Row[string]]bool)
	for _, row := range rows {
		if row.Hidden() {
			m.held[row] = true
		}
	}
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	m.opts.log.WithFields(logrus.Fields{"table": m.opts.tableTitle, "rows": len(rows)}).Debug("table rebuilt")
	for _, l := range listeners {
		l(table)
	}
	return table, fetchErr
}

// CurrentTable returns the last built table or nil.
func (m *Manager[E, T]) CurrentTable() *retree.Table[string] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table
}

// AddData stages entities to be added with the next call of Table.
//
// AddData panics with an error wrapping retree.ErrColumnMismatch
// if an entity has a different number of columns than the title.
func (m *Manager[E, T]) AddData(entities ...E) {
	for _, e := range entities {
		m.checkColumns(e.ToDisplayData())
	}
	m.mu.Lock()
	m.toBeAdded = append(m.toBeAdded, entities...)
	m.mu.Unlock()
}

// RemoveData removes for every passed entity the first
// structurally equal staged entity and the first structurally
// equal committed entity together with its row in the current table.
// It returns the number of removed entities.
func (m *Manager[E, T]) RemoveData(entities ...E) int {
	m.mu.Lock()
	removed := 0
	var indices []int
	for _, e := range entities {
		if i := m.indexLocked(m.toBeAdded, e); i >= 0 {
			m.toBeAdded = slices.Delete(m.toBeAdded, i, i+1)
			removed++
		}
		for i, d := range m.data {
			if m.opts.equal(d, e) && !slices.Contains(indices, i) {
				indices = append(indices, i)
				break
			}
		}
	}
	// Descending so that removing does not shift remaining indices
	slices.Sort(indices)
	slices.Reverse(indices)
	for _, i := range indices {
		m.data = slices.Delete(m.data, i, i+1)
		if m.table != nil && i < len(m.rows) {
			m.table.Remove(m.table.IndexOf(m.rows[i]))
			delete(m.held, m.rows[i])
			m.rows = slices.Delete(m.rows, i, i+1)
		}
		removed++
	}
	table := m.table
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	if len(indices) > 0 && table != nil {
		for _, l := range listeners {
			l(table)
		}
	}
	return removed
}

// Hide hides the rows of the committed entities
// that are structurally equal to the passed ones.
func (m *Manager[E, T]) Hide(entities ...E) {
	m.setHidden(true, entities)
}

// Show shows the rows of the committed entities
// that are structurally equal to the passed ones.
func (m *Manager[E, T]) Show(entities ...E) {
	m.setHidden(false, entities)
}

func (m *Manager[E, T]) setHidden(hidden bool, entities []E) {
	m.mu.Lock()
	changed := false
	for _, e := range entities {
		i := m.indexLocked(m.data, e)
		if i < 0 || i >= len(m.rows) {
			continue
		}
		setRowHidden(m.table, m.table.IndexOf(m.rows[i]), hidden)
		if hidden {
			m.held[m.rows[i]] = true
		} else {
			delete(m.held, m.rows[i])
		}
		changed = true
	}
	table := m.table
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	if changed {
		for _, l := range listeners {
			l(table)
		}
	}
}

// IsHidden returns if the row of entity is hidden.
// Entities without a row are not hidden.
func (m *Manager[E, T]) IsHidden(entity E) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexLocked(m.data, entity)
	return i >= 0 && i < len(m.rows) && m.rows[i].Hidden()
}

// Contains returns if an entity structurally equal
// to entity is committed or staged.
func (m *Manager[E, T]) Contains(entity E) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.containsLocked(m.data, entity) || m.containsLocked(m.toBeAdded, entity)
}

// Filter returns all committed and staged entities
// for which predicate returns true.
func (m *Manager[E, T]) Filter(predicate func(E) bool) []E {
	var result []E
	for _, e := range m.Data() {
		if predicate(e) {
			result = append(result, e)
		}
	}
	return result
}

// Data returns the committed entities followed by the staged ones.
func (m *Manager[E, T]) Data() []E {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Concat(m.data, m.toBeAdded)
}

// Len returns the number of committed and staged entities.
func (m *Manager[E, T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data) + len(m.toBeAdded)
}

// SetActionControlFactory sets the factory for the controls
// of the action columns. Until a factory is set
// the action cells are empty.
// The factory is used with the next call of Table.
func (m *Manager[E, T]) SetActionControlFactory(factory retree.ControlFactory) {
	m.mu.Lock()
	m.factory = factory
	m.mu.Unlock()
}

// OnUpdate registers a listener.
func (m *Manager[E, T]) OnUpdate(listener Listener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, listener)
	m.mu.Unlock()
}

// DisplayInformation returns the view layer contract of the manager.
func (m *Manager[E, T]) DisplayInformation() DisplayInformation {
	return DisplayInformation{
		Supplier:       m.Table,
		Updater:        m.OnUpdate,
		FilterableData: m.opts.strategies,
		Size:           m.Size,
		TableTitle:     m.tableName(),
	}
}

// Size returns the number of entities reported by the backend
// if the fetcher implements Counter, else Len.
func (m *Manager[E, T]) Size(ctx context.Context) int {
	if counter, ok := m.fetcher.(Counter); ok {
		n, err := counter.Count(ctx)
		if err == nil {
			return n
		}
		m.opts.log.WithError(err).WithField("table", m.opts.tableTitle).Warn("count failed")
	}
	return m.Len()
}

// ApplyColumnFilters shows and hides the rows of the current table
// using the configured filter strategies.
// Rows hidden by Hide or the show entry predicate stay hidden.
func (m *Manager[E, T]) ApplyColumnFilters() {
	predicates := make(map[int]retree.ColumnPredicate[string], len(m.opts.strategies))
	for col, s := range m.opts.strategies {
		if s != nil {
			predicates[col] = filterstrategy.Predicate(s)
		}
	}
	crawlers := []retree.Crawler[string]{retree.NewColumnFilterCrawler(predicates)}
	m.mu.Lock()
	search := m.search
	m.mu.Unlock()
	if search != "" {
		crawlers = append(crawlers, searchCrawler(search))
	}
	m.crawlCurrent(crawlers...)
}

// Search sets a text that a value of every shown row
// must contain, compared case-insensitively, in addition
// to the column filters and applies the filters.
// An empty text matches all rows.
func (m *Manager[E, T]) Search(text string) {
	m.mu.Lock()
	m.search = text
	m.mu.Unlock()
	m.ApplyColumnFilters()
}

// searchCrawler hides the rows of the crawled table
// that have no value containing text.
// Values of nested tables are searched too.
func searchCrawler(text string) retree.Crawler[string] {
	text = strings.ToLower(text)
	return &rowsCrawler{
		match: retree.NewFilterCrawler(func(value string) bool {
			return strings.Contains(strings.ToLower(value), text)
		}),
	}
}

type rowsCrawler struct {
	retree.BaseCrawler[string]

	match *retree.FilterCrawler[string]
}

func (c *rowsCrawler) CrawlTable(t *retree.Table[string]) *retree.Table[string] {
	for i, row := range t.Rows() {
		if row.Accept(c.match) == nil {
			setRowHidden(t, i, true)
		}
	}
	return t
}

// setRowHidden hides or shows the row at index of table.
func setRowHidden(table *retree.Table[string], index int, hidden bool) {
	if index < 0 {
		return
	}
	table.Accept(retree.NewActionCrawler(func(_ *retree.ActionCrawler[string], node retree.Node[string]) {
		if hidden {
			node.Hide()
		} else {
			node.Show()
		}
	}, index))
}

// SortBy sorts the rows of the current table with the sorter
// of the column titled title and returns false if the column
// has no sorter.
func (m *Manager[E, T]) SortBy(title string, inverted bool) bool {
	table := m.CurrentTable()
	if table == nil || table.Title() == nil {
		return false
	}
	cell := table.Title().Cell(table.Title().ColumnIndex(title))
	if cell == nil || cell.Sorter() == nil {
		return false
	}
	sorter := cell.Sorter()
	if inverted {
		sorter = sorter.Invert()
	}
	m.crawlCurrent(retree.NewSortingCrawler(sorter))
	return true
}

func (m *Manager[E, T]) crawlCurrent(crawlers ...retree.Crawler[string]) {
	m.mu.Lock()
	table := m.table
	if table != nil {
		for _, crawler := range crawlers {
			table.Accept(crawler)
		}
		for row := range m.held {
			row.Hide()
		}
	}
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	if table != nil {
		for _, l := range listeners {
			l(table)
		}
	}
}

func (m *Manager[E, T]) build(data []E, factory retree.ControlFactory) (*retree.Table[string], []*retree.Row[string]) {
	title := retree.NewTitleRow[string]()
	for _, label := range m.labels {
		text := label.String()
		title.Add(retree.NewTitleCell(text).WithSorter(m.opts.sorters[text]))
	}
	for _, action := range m.opts.actions {
		title.Add(retree.NewTitleCell(action.Text))
	}
	table := retree.NewTable(title)

	rows := make([]*retree.Row[string], len(data))
	for i, e := range data {
		rows[i] = m.buildRow(table, e, factory)
	}
	return table.Add(rows...), rows
}

func (m *Manager[E, T]) buildRow(table *retree.Table[string], entity E, factory retree.ControlFactory) *retree.Row[string] {
	values := retree.CloneDisplays(entity.ToDisplayData())
	m.checkColumns(values)

	row := retree.NewRow[string]()
	for _, v := range values {
		if v.IsObject() {
			row.Add(retree.NewCell(retree.TableData(v.Object().Table())))
		} else {
			row.Add(retree.ValueCell(v.Text()))
		}
	}
	for _, action := range m.opts.actions {
		cell := retree.NewCell[string]()
		if factory != nil && action.OnClick != nil {
			cell.Add(retree.ControlData[string](factory(action.OnClick(entity), action.Text)))
		}
		row.Add(cell)
	}
	if m.opts.showEntry != nil && !m.opts.showEntry(table.MatchData(values)) {
		row.Hide()
	}
	return row
}

// MatchData returns the metadata of entity
// as it is passed to the show entry predicate.
func (m *Manager[E, T]) MatchData(entity E) retree.DataObject {
	title := retree.NewTitleRow[string]()
	for _, label := range m.labels {
		title.Add(retree.NewTitleCell(label.String()))
	}
	return retree.NewTable(title).MatchData(retree.CloneDisplays(entity.ToDisplayData()))
}

func (m *Manager[E, T]) checkColumns(values []retree.Display) {
	if len(values) != len(m.labels) {
		panic(fmt.Errorf("%w: entity has %d values but title %s has %d", retree.ErrColumnMismatch, len(values), m.tableName(), len(m.labels)))
	}
}

func (m *Manager[E, T]) indexLocked(list []E, entity E) int {
	return slices.IndexFunc(list, func(e E) bool { return m.opts.equal(e, entity) })
}

func (m *Manager[E, T]) containsLocked(list []E, entity E) bool {
	return m.indexLocked(list, entity) >= 0
}

func (m *Manager[E, T]) tableName() string {
	if m.opts.tableTitle != "" {
		return m.opts.tableTitle
	}
	return fmt.Sprint(m.labels)
}
