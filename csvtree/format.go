// Package csvtree writes table trees as CSV and parses
// CSV files with various encodings, separators and line endings.
//
// Nested tables are flattened to a single field per cell,
// see retree.Strings.
package csvtree

import (
	"errors"
	"fmt"
	"strings"
)

// Format describes the encoding and structural format of a CSV file.
//
// Example:
//
//	format := &Format{
//	    Encoding:  "UTF-8",
//	    Separator: ",",
//	    Newline:   "\r\n",
//	}
type Format struct {
	// Encoding of the CSV data, like "UTF-8", "UTF-16LE", "ISO 8859-1" or "Windows 1252"
	Encoding string `json:"encoding" yaml:"encoding"`

	// Separator is the single character field delimiter
	Separator string `json:"separator" yaml:"separator"`

	// Newline is one of "\n", "\r\n" or "\n\r"
	Newline string `json:"newline" yaml:"newline"`
}

// NewFormat returns a Format with the specified separator,
// UTF-8 encoding and "\r\n" line endings.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\r\n",
	}
}

// Validate checks if the Format configuration is valid.
// It can be safely called on a nil receiver.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csvtree.Format")
	case f.Encoding == "":
		return errors.New("missing csvtree.Format.Encoding")
	case f.Separator == "":
		return errors.New("missing csvtree.Format.Separator")
	case len(f.Separator) > 1:
		return fmt.Errorf("invalid csvtree.Format.Separator: %q", f.Separator)
	case f.Newline == "":
		return errors.New("missing csvtree.Format.Newline")
	case f.Newline != "\n" && f.Newline != "\n\r" && f.Newline != "\r\n":
		return fmt.Errorf("invalid csvtree.Format.Newline: %q", f.Newline)
	}
	return nil
}

// IsUTF8 reports whether the format uses UTF-8 encoding.
func (f *Format) IsUTF8() bool {
	return strings.EqualFold(strings.ReplaceAll(f.Encoding, "-", ""), "UTF8")
}

// DetectionConfig lists the encodings tried during format detection
// and the strings used to decide if an encoding decoded the data correctly.
type DetectionConfig struct {
	// Encodings in priority order
	Encodings []string `json:"encodings" yaml:"encodings"`

	// EncodingTests contain characters with different
	// byte representations across the encodings
	EncodingTests []string `json:"encodingTests" yaml:"encodingTests"`
}

// NewDefaultDetectionConfig returns a DetectionConfig
// for European and Cyrillic CSV files.
func NewDefaultDetectionConfig() *DetectionConfig {
	return &DetectionConfig{
		Encodings: []string{
			"UTF-8",
			"UTF-16LE",
			"ISO 8859-1",
			"Windows 1252", // like ANSI
			"Macintosh",
		},
		EncodingTests: []string{
			"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
			"д", "Д", "ъ", "Ъ", "б", "Б", "л", "Л", "и", "И", "ж",
		},
	}
}

// EscapeQuotes doubles every double quote of val.
func EscapeQuotes(val string) string {
	return strings.ReplaceAll(val, `"`, `""`)
}
