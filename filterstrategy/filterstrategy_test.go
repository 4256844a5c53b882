package filterstrategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	retree "github.com/domonda/go-retree"
)

func TestLexicographic(t *testing.T) {
	tests := []struct {
		name   string
		filter ValueSupplier
		values []string
		want   retree.Verdict
	}{
		{name: "no supplier", filter: nil, values: []string{"seggs"}, want: retree.Abstain},
		{name: "empty filter", filter: Value(""), values: []string{"seggs"}, want: retree.Abstain},
		{name: "no values", filter: Value("eg"), values: nil, want: retree.Abstain},
		{name: "substring", filter: Value("EG"), values: []string{"seggs"}, want: retree.Pass},
		{name: "any value", filter: Value("lab"), values: []string{"r1", "Main Lab"}, want: retree.Pass},
		{name: "no match", filter: Value("hall"), values: []string{"r1", "Main Lab"}, want: retree.Fail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewLexicographic()
			if tt.filter != nil {
				s.SetFilter(tt.filter)
			}
			require.Equal(t, tt.want, s.Filter(tt.values))
		})
	}
	require.Equal(t, []string{"Lexicographic"}, NewLexicographic().ToDisplayData())
}

func TestMinimumNumeric_Boundary(t *testing.T) {
	s := NewMinimumNumeric()
	require.Equal(t, retree.Abstain, s.Filter([]string{"42"}), "unset filter value")

	s.SetFilter(Value("42"))
	require.Equal(t, retree.Fail, s.Filter([]string{"41.9"}))
	require.Equal(t, retree.Pass, s.Filter([]string{"42"}))
	require.Equal(t, retree.Pass, s.Filter([]string{"x", "43"}))

	s.SetFilter(func() (string, bool) { return "", false })
	require.Equal(t, retree.Abstain, s.Filter([]string{"41.9"}))
}

func TestNumericFilters(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		filter   string
		values   []string
		want     retree.Verdict
	}{
		{name: "min non numeric filter", strategy: NewMinimumNumeric(), filter: "abc", values: []string{"1"}, want: retree.Abstain},
		{name: "min no values", strategy: NewMinimumNumeric(), filter: "1", values: nil, want: retree.Abstain},
		{name: "min non numeric values", strategy: NewMinimumNumeric(), filter: "1", values: []string{"one"}, want: retree.Fail},
		{name: "min spaces", strategy: NewMinimumNumeric(), filter: " 1 ", values: []string{" 2"}, want: retree.Pass},
		{name: "max equal", strategy: NewMaximumNumeric(), filter: "42", values: []string{"42"}, want: retree.Pass},
		{name: "max above", strategy: NewMaximumNumeric(), filter: "42", values: []string{"42.1"}, want: retree.Fail},
		{name: "max negative", strategy: NewMaximumNumeric(), filter: "0", values: []string{"-3"}, want: retree.Pass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.strategy.SetFilter(Value(tt.filter))
			require.Equal(t, tt.want, tt.strategy.Filter(tt.values))
		})
	}
}

func TestPredicate(t *testing.T) {
	s := NewLexicographic()
	s.SetFilter(Value("lab"))
	table := retree.NewTable(
		retree.ValueTitleRow("Name", "Location"),
		retree.ValueRow("seggs", "Lab"),
		retree.ValueRow("yeet", "Hall"),
	)
	table.Accept(retree.NewColumnFilterCrawler(map[int]retree.ColumnPredicate[string]{1: Predicate(s)}))
	require.False(t, table.Row(0).Hidden())
	require.True(t, table.Row(1).Hidden())
}

func TestNumericFilters_NonFinite(t *testing.T) {
	for _, value := range []string{"NaN", "nan", "Inf", "-Inf", "+infinity"} {
		t.Run(value, func(t *testing.T) {
			for _, s := range []Strategy{NewMinimumNumeric(), NewMaximumNumeric()} {
				s.SetFilter(Value(value))
				require.Equal(t, retree.Abstain, s.Filter([]string{"42"}), "threshold")
			}
			s := NewMinimumNumeric()
			s.SetFilter(Value("0"))
			require.Equal(t, retree.Fail, s.Filter([]string{value}), "value")
		})
	}
}
