package csvtree

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/domonda/go-types/charset"
)

// ParseDetectFormat parses CSV data after detecting
// its encoding, line endings and separator.
//
// A first line of the form "sep=X" declares the separator
// and is not part of the returned rows.
// If config is nil, NewDefaultDetectionConfig() is used.
//
// Example:
//
//	rows, format, err := ParseDetectFormat([]byte("Name;Room\r\nseggs;r1"), nil)
//	// format.Separator == ";"
//	// format.Newline == "\r\n"
//	// rows == [][]string{{"Name", "Room"}, {"seggs", "r1"}}
func ParseDetectFormat(data []byte, config *DetectionConfig) (rows [][]string, format *Format, err error) {
	if config == nil {
		config = NewDefaultDetectionConfig()
	}
	format = new(Format)

	var encodings []charset.Encoding
	for _, name := range config.Encodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
		encodings = append(encodings, enc)
	}
	data, format.Encoding, err = charset.AutoDecode(data, encodings, config.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}
	data = sanitizeUTF8(charset.TrimBOM(data, charset.BOMUTF8))

	// \r\n wins because that's the standard
	if bytes.Contains(data, []byte{'\r', '\n'}) {
		format.Newline = "\r\n"
	} else {
		format.Newline = "\n"
	}

	data, format.Separator = cutSepHeaderLine(data, format.Newline)
	if format.Separator == "" {
		format.Separator = detectSeparator(data)
	}

	rows, err = readRecords(data, format.Separator)
	return rows, format, err
}

// ParseWithFormat parses CSV data using an explicitly specified format.
// A "sep=X" header line must match format.Separator.
func ParseWithFormat(data []byte, format *Format) (rows [][]string, err error) {
	err = format.Validate()
	if err != nil {
		return nil, err
	}

	if format.IsUTF8() {
		data = charset.TrimBOM(data, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		data, err = enc.Decode(data)
		if err != nil {
			return nil, err
		}
	}
	data = sanitizeUTF8(data)

	data, headerSep := cutSepHeaderLine(data, format.Newline)
	if headerSep != "" && headerSep != format.Separator {
		return nil, fmt.Errorf("separator '%s' in header line is different from format.Separator '%s'", headerSep, format.Separator)
	}
	return readRecords(data, format.Separator)
}

// RemoveEmptyRows removes rows without any non empty field.
func RemoveEmptyRows(rows [][]string) [][]string {
	kept := rows[:0:0]
	for _, row := range rows {
		for _, field := range row {
			if strings.TrimSpace(field) != "" {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}

// Records maps the fields of every row after the header row
// to the column titles of the header row.
// Missing fields are mapped to empty strings
// and fields without column title are ignored.
func Records(rows [][]string) ([]map[string]string, error) {
	rows = RemoveEmptyRows(rows)
	if len(rows) == 0 {
		return nil, errors.New("missing CSV header row")
	}
	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for col, title := range header {
			title = strings.TrimSpace(title)
			if title == "" {
				continue
			}
			if col < len(row) {
				record[title] = strings.TrimSpace(row[col])
			} else {
				record[title] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func readRecords(data []byte, separator string) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = rune(separator[0])
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// cutSepHeaderLine removes a first line of the form
// "sep=X" or "SEP=X", possibly quoted, and returns X.
func cutSepHeaderLine(data []byte, newline string) (rest []byte, sep string) {
	line, rest, found := bytes.Cut(data, []byte(newline))
	if !found {
		rest = nil
	}
	if len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"' {
		line = line[1 : len(line)-1]
	}
	if len(line) != 5 || !(bytes.HasPrefix(line, []byte("sep=")) || bytes.HasPrefix(line, []byte("SEP="))) {
		return data, ""
	}
	return rest, string(line[4:5])
}

// detectSeparator returns the most frequent of comma,
// semicolon and tab, defaulting to comma.
func detectSeparator(data []byte) string {
	var (
		commas     = bytes.Count(data, []byte{','})
		semicolons = bytes.Count(data, []byte{';'})
		tabs       = bytes.Count(data, []byte{'\t'})
	)
	switch {
	case semicolons > commas && semicolons > tabs:
		return ";"
	case tabs > commas && tabs > semicolons:
		return "\t"
	default:
		return ","
	}
}

func sanitizeUTF8(str []byte) []byte {
	return bytes.Map(
		func(r rune) rune {
			switch r {
			// \u00a0 is No-Break Space (NBSP)
			case '\uFFFD', '\u00a0':
				return ' '
			default:
				return r
			}
		},
		str,
	)
}
