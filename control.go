package retree

// Control is an interactive element like a button
// that is rendered by an external view layer.
type Control interface {
	Label() string
	// Activate performs the action of the control.
	Activate()
}

// ControlFactory creates a Control with a label
// that calls all onClick callbacks in order when activated.
type ControlFactory func(onClick []func(), label string) Control

var _ ControlFactory = NewButton

// Button is the default Control implementation.
type Button struct {
	Text    string
	OnClick []func()
}

// NewButton returns a Button as Control, usable as ControlFactory.
func NewButton(onClick []func(), label string) Control {
	return &Button{Text: label, OnClick: onClick}
}

func (b *Button) Label() string { return b.Text }

func (b *Button) Activate() {
	for _, f := range b.OnClick {
		f()
	}
}
