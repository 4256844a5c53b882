package changes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	retree "github.com/domonda/go-retree"
	"github.com/domonda/go-retree/manager"
)

// Title is the title of the table of staged changes.
var Title = retree.Texts{"Category", "Description", "Created", "Metadata"}

// Manager is the table manager of staged changes.
type Manager = manager.Manager[*ChangeAction, retree.Texts]

// ErrNotStaged is returned for changes that were
// already committed or discarded or are being so.
var ErrNotStaged = errors.New("change is not staged")

// FailureFunc is called for commands that
// returned an error or false.
type FailureFunc func(ca *ChangeAction, err error)

// Changes is a table of staged changes.
// Every row has a "Commit" and a "Discard" control.
//
// A change is removed from the table after its
// command returned, unless the command returned an error.
type Changes struct {
	manager *Manager
	log     logrus.FieldLogger

	mu        sync.Mutex
	onFailure []FailureFunc
	running   map[uuid.UUID]bool
}

// Option configures Changes.
type Option func(*Changes)

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Changes) { c.log = log }
}

// NewChanges returns an empty Changes.
func NewChanges(opts ...Option) *Changes {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	c := &Changes{log: discard, running: make(map[uuid.UUID]bool)}
	for _, opt := range opts {
		opt(c)
	}
	c.manager = manager.New[*ChangeAction](Title, nil,
		manager.WithTableTitle[*ChangeAction]("Changes"),
		manager.WithEqual(func(a, b *ChangeAction) bool { return a.Equal(b) }),
		manager.WithLogger[*ChangeAction](c.log),
		manager.WithActions(
			manager.Action[*ChangeAction]{
				Text: "Commit",
				OnClick: func(ca *ChangeAction) []func() {
					return []func(){func() { _ = c.Commit(context.Background(), ca) }}
				},
			},
			manager.Action[*ChangeAction]{
				Text: "Discard",
				OnClick: func(ca *ChangeAction) []func() {
					return []func(){func() { _ = c.Discard(context.Background(), ca) }}
				},
			},
		),
	)
	return c
}

// Manager returns the table manager of the staged changes.
func (c *Changes) Manager() *Manager { return c.manager }

// OnFailure registers a function that is called
// for every failed commit or discard.
func (c *Changes) OnFailure(f FailureFunc) {
	c.mu.Lock()
	c.onFailure = append(c.onFailure, f)
	c.mu.Unlock()
}

// Stage adds changes to the table of staged changes.
func (c *Changes) Stage(changes ...*ChangeAction) {
	for _, ca := range changes {
		c.log.WithFields(logrus.Fields{"category": ca.Category, "id": ca.ID}).Debug("change staged")
	}
	c.manager.AddData(changes...)
}

// Commit performs the Forward command of ca.
// See finish for how the result is handled.
func (c *Changes) Commit(ctx context.Context, ca *ChangeAction) error {
	return c.finish(ctx, ca, "commit", ca.Perform, ca.Forward.Name)
}

// Discard performs the Backward command of ca.
func (c *Changes) Discard(ctx context.Context, ca *ChangeAction) error {
	return c.finish(ctx, ca, "discard", ca.Revert, ca.Backward.Name)
}

// finish runs a command of ca.
// If ca is not staged or one of its commands is already
// running, ErrNotStaged is returned and nothing is run.
// If the command returns an error, then ca stays staged
// and the error is returned. Otherwise ca is removed
// and a false result is returned as ErrCommandFailed.
func (c *Changes) finish(ctx context.Context, ca *ChangeAction, verb string, run func(context.Context) (bool, error), name string) error {
	if !c.claim(ca) {
		return fmt.Errorf("%s %s: %w", verb, ca, ErrNotStaged)
	}
	defer c.release(ca)

	log := c.log.WithFields(logrus.Fields{"category": ca.Category, "id": ca.ID, "command": name})

	ok, err := run(ctx)
	if err != nil {
		err = fmt.Errorf("%s %s: %w", verb, ca, err)
		log.WithError(err).Warn("change stays staged")
		c.fail(ca, err)
		return err
	}
	c.manager.RemoveData(ca)
	if !ok {
		err = fmt.Errorf("%s %s: %w", verb, ca, ErrCommandFailed)
		log.Warn("command failed, change removed")
		c.fail(ca, err)
		return err
	}
	log.Debugf("%s done", verb)
	return nil
}

// claim marks ca as running if it is staged and not running.
func (c *Changes) claim(ca *ChangeAction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ca == nil || c.running[ca.ID] {
		return false
	}
	if staged, ok := c.ByID(ca.ID); !ok || staged != ca {
		return false
	}
	c.running[ca.ID] = true
	return true
}

func (c *Changes) release(ca *ChangeAction) {
	c.mu.Lock()
	delete(c.running, ca.ID)
	c.mu.Unlock()
}

func (c *Changes) fail(ca *ChangeAction, err error) {
	c.mu.Lock()
	funcs := slices.Clone(c.onFailure)
	c.mu.Unlock()
	for _, f := range funcs {
		f(ca, err)
	}
}

// CommitAll commits all staged changes in staging order
// and returns the joined errors.
func (c *Changes) CommitAll(ctx context.Context) error {
	var errs []error
	for _, ca := range c.Pending() {
		errs = append(errs, c.Commit(ctx, ca))
	}
	return errors.Join(errs...)
}

// DiscardAll discards all staged changes in reverse staging order
// and returns the joined errors.
func (c *Changes) DiscardAll(ctx context.Context) error {
	var errs []error
	pending := c.Pending()
	slices.Reverse(pending)
	for _, ca := range pending {
		errs = append(errs, c.Discard(ctx, ca))
	}
	return errors.Join(errs...)
}

// Pending returns the staged changes.
func (c *Changes) Pending() []*ChangeAction { return c.manager.Data() }

// Len returns the number of staged changes.
func (c *Changes) Len() int { return c.manager.Len() }

// ContainsMetadata returns if a staged change has metadata.
func (c *Changes) ContainsMetadata(metadata retree.DataObject) bool {
	_, ok := c.FindByMetadata(metadata)
	return ok
}

// FindByMetadata returns the first staged change
// with metadata equal to the passed one.
func (c *Changes) FindByMetadata(metadata retree.DataObject) (*ChangeAction, bool) {
	found := c.manager.Filter(func(ca *ChangeAction) bool { return ca.EqualsData(metadata) })
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

// ByID returns the staged change with id.
func (c *Changes) ByID(id uuid.UUID) (*ChangeAction, bool) {
	found := c.manager.Filter(func(ca *ChangeAction) bool { return ca.ID == id })
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}
