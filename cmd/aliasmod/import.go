package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-retree/csvtree"
)

var importCmd = withStores(&cobra.Command{
	Use:   "import COLLECTION FILE",
	Short: "Import a CSV file into a collection",
	Long: `Import the rows of a CSV file into Officials, Suggestions or Blacklist.

The encoding, separator and line endings of the file are detected.
The first row names the columns:

  Name, Location Key, Location Name, Suggested By

Records are inserted directly without staging changes.
Nothing is inserted if any record is invalid.

Examples:
  aliasmod import officials officials.csv
  aliasmod --backend redis import blacklist blacklist.csv
`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
})

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	info, err := app.mod.Table(args[0])
	if err != nil {
		return err
	}
	n, err := importFile(cmd.Context(), info.TableTitle, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s\n", n, info.TableTitle)
	return nil
}

func importFile(ctx context.Context, collection, path string) (int, error) {
	data, err := fs.File(path).ReadAll()
	if err != nil {
		return 0, err
	}
	rows, format, err := csvtree.ParseDetectFormat(data, nil)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	app.log.WithField("format", format).Debugf("parsed %s", path)
	records, err := csvtree.Records(rows)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return app.mod.Import(ctx, collection, records)
}
