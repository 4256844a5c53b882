// Package changes stages reversible changes
// that are committed or discarded later.
package changes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	retree "github.com/domonda/go-retree"
)

// ErrCommandFailed is reported when a command
// returned false without an error.
var ErrCommandFailed = errors.New("command failed")

// Command is a named operation.
// Run returns false if the operation did not succeed
// and an error if it could not be executed at all.
type Command struct {
	Name string
	Run  func(ctx context.Context) (bool, error)
	// Undo reverts a successful Run.
	// Sequence calls it when a later command fails.
	Undo func(ctx context.Context) error
}

// NewCommand returns a Command.
func NewCommand(name string, run func(ctx context.Context) (bool, error)) Command {
	return Command{Name: name, Run: run}
}

// Func returns a Command for a function that always succeeds.
func Func(name string, f func()) Command {
	return Command{
		Name: name,
		Run: func(context.Context) (bool, error) {
			f()
			return true, nil
		},
	}
}

// WithUndo returns a copy of c with undo as Undo.
func (c Command) WithUndo(undo func(ctx context.Context) error) Command {
	c.Undo = undo
	return c
}

// Sequence returns a Command running commands in order
// until one of them fails.
//
// When a command fails, the completed commands are undone
// in reverse order, up to the first one without Undo
// or whose Undo returned an error. Commands that could not
// be undone stay completed and are skipped by the next Run,
// so a retry continues with the failed command.
func Sequence(name string, commands ...Command) Command {
	var (
		mu        sync.Mutex
		completed int
	)
	return Command{
		Name: name,
		Run: func(ctx context.Context) (bool, error) {
			mu.Lock()
			defer mu.Unlock()

			for completed < len(commands) {
				cmd := commands[completed]
				ok, err := cmd.Execute(ctx)
				if err == nil && ok {
					completed++
					continue
				}
				if err != nil {
					err = fmt.Errorf("%s: %w", cmd.Name, err)
				}
				for completed > 0 {
					done := commands[completed-1]
					if done.Undo == nil {
						break
					}
					if undoErr := done.Undo(context.WithoutCancel(ctx)); undoErr != nil {
						return false, errors.Join(err, fmt.Errorf("undo %s: %w", done.Name, undoErr))
					}
					completed--
				}
				return false, err
			}
			completed = 0
			return true, nil
		},
	}
}

// Execute runs the command.
// A command without Run succeeds.
func (c Command) Execute(ctx context.Context) (bool, error) {
	if c.Run == nil {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return c.Run(ctx)
}

func (c Command) String() string { return c.Name }

var _ retree.ToDisplayData = new(ChangeAction)

// ChangeAction is a staged change with a Forward command
// that performs the change and a Backward command
// that compensates for staging it.
//
// Metadata is the snapshot of the table row the change
// was created for and is used to find the change again.
type ChangeAction struct {
	ID           uuid.UUID
	Forward      Command
	Backward     Command
	CreationTime time.Time
	Category     string
	Description  string
	Metadata     retree.DataObject
}

// New returns a ChangeAction with a new ID created now.
func New(category, description string, metadata retree.DataObject, forward, backward Command) *ChangeAction {
	return &ChangeAction{
		ID:           uuid.New(),
		Forward:      forward,
		Backward:     backward,
		CreationTime: time.Now(),
		Category:     category,
		Description:  description,
		Metadata:     metadata.Clone(),
	}
}

// Perform executes the Forward command.
func (ca *ChangeAction) Perform(ctx context.Context) (bool, error) {
	return ca.Forward.Execute(ctx)
}

// Revert executes the Backward command.
func (ca *ChangeAction) Revert(ctx context.Context) (bool, error) {
	return ca.Backward.Execute(ctx)
}

// Equal returns if both changes have the same creation time,
// category, description and metadata.
// The ID and the commands are not compared.
func (ca *ChangeAction) Equal(other *ChangeAction) bool {
	if ca == nil || other == nil {
		return ca == other
	}
	return ca.CreationTime.Equal(other.CreationTime) &&
		ca.Category == other.Category &&
		ca.Description == other.Description &&
		ca.Metadata.Equal(other.Metadata)
}

// EqualsData returns if the metadata of the change equals metadata.
func (ca *ChangeAction) EqualsData(metadata retree.DataObject) bool {
	return ca.Metadata.Equal(metadata)
}

func (ca *ChangeAction) ToDisplayData() []retree.Display {
	return []retree.Display{
		retree.TextDisplay(ca.Category),
		retree.TextDisplay(ca.Description),
		retree.TextDisplay(ca.CreationTime.Format(time.DateTime)),
		retree.ObjectDisplay(ca.Metadata),
	}
}

func (ca *ChangeAction) String() string {
	return ca.Category + ": " + ca.Description
}
