package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-retree/alias"
	"github.com/domonda/go-retree/csvtree"
	"github.com/domonda/go-retree/htmltree"
)

var (
	exportFormat    string
	exportOutput    string
	exportSeparator string
	exportEncoding  string
	exportHidden    bool
)

var exportCmd = withStores(&cobra.Command{
	Use:   "export TABLE",
	Short: "Write a table as HTML or CSV",
	Long: `Write a table as HTML or CSV to stdout or a file.

Examples:
  # Write the officials as HTML table
  aliasmod export officials --format html --output officials.html

  # Write the blacklist as Windows 1252 encoded CSV with comma separator
  aliasmod export blacklist --format csv --separator , --encoding "Windows 1252"
`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
})

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv or html")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSeparator, "separator", ";", "CSV field separator")
	exportCmd.Flags().StringVar(&exportEncoding, "encoding", "UTF-8", "CSV character encoding")
	exportCmd.Flags().BoolVar(&exportHidden, "hidden", false, "Include hidden rows")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	info, err := app.mod.Table(args[0])
	if err != nil {
		return err
	}

	var dest io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		w, err := fs.File(exportOutput).OpenWriter()
		if err != nil {
			return err
		}
		defer func() {
			if e := w.Close(); e != nil && err == nil {
				err = e
			}
		}()
		dest = w
	}
	return exportTable(cmd, info, dest)
}

func exportTable(cmd *cobra.Command, info alias.TableInfo, dest io.Writer) error {
	table, err := info.Supplier(cmd.Context())
	if err != nil {
		return err
	}
	switch strings.ToLower(exportFormat) {
	case "html":
		return htmltree.NewWriter[string]().
			WithHeaderRow(true).
			WithSkipHidden(!exportHidden).
			WithTableClass(strings.ToLower(info.TableTitle)).
			WithNestedTableClass("location").
			Write(cmd.Context(), dest, table, info.TableTitle)

	case "csv":
		format := csvtree.NewFormat(exportSeparator)
		format.Encoding = exportEncoding
		w, err := csvtree.NewFormatWriter[string](format)
		if err != nil {
			return err
		}
		return w.WithHeaderRow(true).WithSkipHidden(!exportHidden).Write(cmd.Context(), dest, table)
	}
	return fmt.Errorf("invalid format %q, expected csv or html", exportFormat)
}
