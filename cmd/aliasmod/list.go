package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	retree "github.com/domonda/go-retree"
	"github.com/domonda/go-retree/alias"
	"github.com/domonda/go-retree/filterstrategy"
)

var (
	listSort   string
	listDesc   bool
	listMatch  []string
	listSearch string
)

var listCmd = withStores(&cobra.Command{
	Use:   "list [TABLE...]",
	Short: "Print tables",
	Long: `Print the tables Officials, Suggestions, Blacklist and Changes.

Examples:
  # Print all tables
  aliasmod list

  # Print officials sorted by name in descending order
  aliasmod list officials --sort Name --desc

  # Print suggestions with a name containing "lab" suggested by "ali"
  aliasmod list suggestions --match Name=lab --match "Suggested By=ali"

  # Print officials with any value containing "hall", including locations
  aliasmod list officials --search hall
`,
	RunE: runList,
})

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort by the column with this title")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Sort in descending order")
	listCmd.Flags().StringArrayVar(&listMatch, "match", nil, "Only show rows where COLUMN contains TEXT, as COLUMN=TEXT")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Only show rows with any value containing TEXT")
}

func runList(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = tableNames()
	}
	for i, name := range args {
		info, err := app.mod.Table(name)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if err := printTable(cmd, info); err != nil {
			return err
		}
	}
	return nil
}

func printTable(cmd *cobra.Command, info alias.TableInfo) error {
	table, err := info.Supplier(cmd.Context())
	if err != nil {
		return err
	}
	if listSort != "" && !info.SortBy(listSort, listDesc) {
		return fmt.Errorf("table %s can't be sorted by %q", info.TableTitle, listSort)
	}
	if err := setMatches(info, table, listMatch); err != nil {
		return err
	}
	// Search applies the column filters too
	info.Search(listSearch)

	out, err := renderTable(table, -1, -1)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(fmt.Sprintf("%s (%d)", info.TableTitle, info.Size(cmd.Context()))))
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// setMatches sets the filter of the strategy of every
// column named in matches of the form "COLUMN=TEXT".
func setMatches(info alias.TableInfo, table *retree.Table[string], matches []string) error {
	for _, match := range matches {
		column, text, ok := strings.Cut(match, "=")
		if !ok {
			return fmt.Errorf("invalid match %q, expected COLUMN=TEXT", match)
		}
		col := table.Title().ColumnIndex(strings.TrimSpace(column))
		if col < 0 || col >= len(info.FilterableData) || info.FilterableData[col] == nil {
			return fmt.Errorf("table %s has no filterable column %q", info.TableTitle, column)
		}
		info.FilterableData[col].SetFilter(filterstrategy.Value(text))
	}
	return nil
}
