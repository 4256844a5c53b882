package retree

import "strings"

type Option int

const (
	OptionAddHeaderRow Option = 1 << iota
	OptionSkipHidden
)

func (o Option) Has(option Option) bool {
	return o&option != 0
}

func (o Option) String() string {
	var b strings.Builder
	if o.Has(OptionAddHeaderRow) {
		b.WriteString("AddHeaderRow")
	}
	if o.Has(OptionSkipHidden) {
		if b.Len() > 0 {
			b.WriteString("|")
		}
		b.WriteString("SkipHidden")
	}
	if b.Len() == 0 {
		return "no Option"
	}
	return b.String()
}

// JoinOptions combines options into one Option.
func JoinOptions(options ...Option) Option {
	var joined Option
	for _, o := range options {
		joined |= o
	}
	return joined
}

func HasOption(options []Option, option Option) bool {
	return JoinOptions(options...).Has(option)
}
