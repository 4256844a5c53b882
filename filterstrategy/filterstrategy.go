// Package filterstrategy implements per-column filters
// that are configured by a view layer with a current filter value.
package filterstrategy

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	retree "github.com/domonda/go-retree"
)

// ValueSupplier returns the current filter value
// and false if no filter value is set.
type ValueSupplier func() (value string, ok bool)

// Strategy is a column filter with a mutable filter value.
type Strategy interface {
	// SetFilter sets the supplier of the current filter value.
	SetFilter(supplier ValueSupplier)

	// Filter returns if the values of a column cell satisfy
	// the current filter value. Abstain is returned if there
	// is no usable filter value or no data to filter.
	Filter(values []string) retree.Verdict

	// ToDisplayData returns the name of the strategy.
	ToDisplayData() []string
}

// Predicate returns the Filter method of strategy
// as retree.ColumnPredicate.
func Predicate(strategy Strategy) retree.ColumnPredicate[string] {
	return strategy.Filter
}

// Value returns a ValueSupplier for a fixed value.
// An empty value is treated as unset.
func Value(value string) ValueSupplier {
	return func() (string, bool) { return value, value != "" }
}

type supplied struct {
	supplier ValueSupplier
}

func (s *supplied) SetFilter(supplier ValueSupplier) { s.supplier = supplier }

func (s *supplied) value() (string, bool) {
	if s.supplier == nil {
		return "", false
	}
	return s.supplier()
}

var _ Strategy = new(Lexicographic)

// Lexicographic matches if any of the values contains
// the filter value ignoring case.
type Lexicographic struct {
	supplied
}

func NewLexicographic() *Lexicographic { return new(Lexicographic) }

func (l *Lexicographic) Filter(values []string) retree.Verdict {
	filter, ok := l.value()
	if !ok || filter == "" || len(values) == 0 {
		return retree.Abstain
	}
	filter = strings.ToLower(filter)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), filter) {
			return retree.Pass
		}
	}
	return retree.Fail
}

func (*Lexicographic) ToDisplayData() []string { return []string{"Lexicographic"} }

var (
	_ Strategy = new(MinimumNumeric)
	_ Strategy = new(MaximumNumeric)
)

// MinimumNumeric matches if any numeric value
// is greater than or equal to the filter value.
type MinimumNumeric struct {
	supplied
}

func NewMinimumNumeric() *MinimumNumeric { return new(MinimumNumeric) }

func (m *MinimumNumeric) Filter(values []string) retree.Verdict {
	return numericFilter(&m.supplied, values, func(v, threshold float64) bool { return v >= threshold })
}

func (*MinimumNumeric) ToDisplayData() []string { return []string{"Minimum"} }

// MaximumNumeric matches if any numeric value
// is less than or equal to the filter value.
type MaximumNumeric struct {
	supplied
}

func NewMaximumNumeric() *MaximumNumeric { return new(MaximumNumeric) }

func (m *MaximumNumeric) Filter(values []string) retree.Verdict {
	return numericFilter(&m.supplied, values, func(v, threshold float64) bool { return v <= threshold })
}

func (*MaximumNumeric) ToDisplayData() []string { return []string{"Maximum"} }

func numericFilter(s *supplied, values []string, match func(v, threshold float64) bool) retree.Verdict {
	filter, ok := s.value()
	if !ok {
		return retree.Abstain
	}
	threshold, err := parseNumber(filter)
	if err != nil || len(values) == 0 {
		return retree.Abstain
	}
	for _, str := range values {
		v, err := parseNumber(str)
		if err == nil && match(v, threshold) {
			return retree.Pass
		}
	}
	return retree.Fail
}

// parseNumber parses a finite number.
func parseNumber(str string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", str)
	}
	return v, nil
}
