package alias

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	retree "github.com/domonda/go-retree"
	"github.com/domonda/go-retree/changes"
	"github.com/domonda/go-retree/filterstrategy"
	"github.com/domonda/go-retree/manager"
)

// Collection is the table of one kind of alias records
// backed by a Store.
type Collection[E retree.ToDisplayData] struct {
	name    string
	store   Store[E]
	manager *manager.Manager[E, retree.Texts]
	changes *changes.Changes
	log     logrus.FieldLogger
}

func newCollection[E retree.ToDisplayData](name string, store Store[E], staged *changes.Changes, log logrus.FieldLogger, actions ...manager.Action[E]) *Collection[E] {
	title := retree.StructTitles[E]()
	strategies := make([]filterstrategy.Strategy, len(title))
	for i := range strategies {
		strategies[i] = filterstrategy.NewLexicographic()
	}
	c := &Collection[E]{
		name:    name,
		store:   store,
		changes: staged,
		log:     log.WithField("collection", name),
	}
	c.manager = manager.New[E](title, storeFetcher[E]{store},
		manager.WithTableTitle[E](name),
		manager.WithLogger[E](c.log),
		manager.WithActions(actions...),
		manager.WithSorters[E](map[string]manager.RowSorter{title[0]: retree.OrderedColumnSorter[string](0)}),
		manager.WithFilterStrategies[E](strategies...),
		// Rows with staged changes stay hidden when the table is rebuilt
		manager.WithShowEntry[E](func(md retree.DataObject) bool { return !staged.ContainsMetadata(md) }),
	)
	return c
}

func (c *Collection[E]) Name() string { return c.name }

func (c *Collection[E]) Store() Store[E] { return c.store }

func (c *Collection[E]) Manager() *manager.Manager[E, retree.Texts] { return c.manager }

// Table fetches the entities from the store and returns a new table.
func (c *Collection[E]) Table(ctx context.Context) (*retree.Table[string], error) {
	return c.manager.Table(ctx)
}

// Insert adds entity to the store without staging a change.
func (c *Collection[E]) Insert(ctx context.Context, entity E) error {
	if err := c.store.Add(ctx, entity); err != nil {
		return err
	}
	c.manager.AddData(entity)
	return nil
}

// stage hides the row of entity and stages a change that
// performs forward and then removes the row.
// Discarding the change shows the row again.
func (c *Collection[E]) stage(entity E, description string, forward changes.Command) *changes.ChangeAction {
	c.manager.Hide(entity)
	ca := changes.New(c.name, description, c.manager.MatchData(entity),
		changes.Sequence(forward.Name,
			forward,
			changes.Func("remove row", func() { c.manager.RemoveData(entity) }),
		),
		changes.Func("show row", func() { c.manager.Show(entity) }),
	)
	c.changes.Stage(ca)
	c.log.WithField("change", ca.ID).Infof("staged %s", description)
	return ca
}

// removeCommand removes entity from the store.
// Its undo adds entity again.
func (c *Collection[E]) removeCommand(entity E) changes.Command {
	return changes.NewCommand("remove from "+c.name, func(ctx context.Context) (bool, error) {
		return c.store.Remove(ctx, entity)
	}).WithUndo(func(ctx context.Context) error {
		return c.store.Add(ctx, entity)
	})
}

// addCommand inserts entity.
// Its undo removes entity from the store and the table data.
func (c *Collection[E]) addCommand(entity E) changes.Command {
	return changes.NewCommand("add to "+c.name, func(ctx context.Context) (bool, error) {
		if err := c.Insert(ctx, entity); err != nil {
			return false, err
		}
		return true, nil
	}).WithUndo(func(ctx context.Context) error {
		if _, err := c.store.Remove(ctx, entity); err != nil {
			return err
		}
		c.manager.RemoveData(entity)
		return nil
	})
}

func action[E any](text string, stage func(E) *changes.ChangeAction) manager.Action[E] {
	return manager.Action[E]{
		Text: text,
		OnClick: func(entity E) []func() {
			return []func(){func() { stage(entity) }}
		},
	}
}

func describe(verb string, name string) string {
	return fmt.Sprintf("%s %q", verb, name)
}
