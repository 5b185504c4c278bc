package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/xuri/excelize/v2"
)

// Format identifies how a source file is encoded.
type Format string

// Supported source formats.
const (
	FormatDelimited Format = "delimited"
	FormatExcel     Format = "xlsx"
	FormatSQLite    Format = "sqlite"
)

// DetectFormat chooses a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return FormatDelimited, nil
	case ".xlsx", ".xlsm":
		return FormatExcel, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, path)
	}
}

// rawTable is a header plus string records, before any typing.
type rawTable struct {
	header    []string
	records   [][]string
	delimiter rune
}

// cell returns the trimmed value at idx, or "" when the record is short.
func (t *rawTable) cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func readRawTable(ctx context.Context, path string, format Format, sheet string) (*rawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch format {
	case FormatDelimited:
		f, err := os.Open(path) //nolint:gosec // path comes from user configuration
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return readDelimited(f)

	case FormatExcel:
		return readExcel(path, sheet)

	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, format)
	}
}

// readDelimited parses delimited text, sniffing the delimiter from the header line.
func readDelimited(r io.Reader) (*rawTable, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	delim := sniffDelimiter(head)

	reader := csv.NewReader(br)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file has no header row", common.ErrMissingColumn)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	return &rawTable{
		header:    header,
		records:   dropBlank(records[1:]),
		delimiter: delim,
	}, nil
}

// sniffDelimiter picks the most frequent of ',', ';' and tab on the first line.
func sniffDelimiter(head []byte) rune {
	if idx := bytes.IndexByte(head, '\n'); idx >= 0 {
		head = head[:idx]
	}

	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(head, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// readExcel reads the named worksheet, or the first one when sheet is empty.
func readExcel(path, sheet string) (*rawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, fmt.Errorf("%w: worksheet %q not found", common.ErrMissingColumn, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: worksheet %q has no header row", common.ErrMissingColumn, sheet)
	}

	return &rawTable{
		header:  rows[0],
		records: dropBlank(rows[1:]),
	}, nil
}

func dropBlank(records [][]string) [][]string {
	out := make([][]string, 0, len(records))
	for _, rec := range records {
		blank := true
		for _, v := range rec {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out
}
