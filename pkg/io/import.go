package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/errors"
)

// XLSXOptions configures spreadsheet import.
type XLSXOptions struct {
	// Sheet selects a sheet by name; empty uses the first sheet.
	Sheet string
	// TitleMain and TitleSub override the titles found above the header.
	TitleMain string
	TitleSub  string
}

// ImportFile reads path as JSON or XLSX according to its extension.
func ImportFile(path string, opts XLSXOptions) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", "":
		return ReadJSON(f)
	case ".xlsx", ".xlsm":
		return ReadXLSX(f, opts)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input type %s (want .json or .xlsx)", ext)
	}
}

// ReadJSON decodes a request object without validating it. Numbers are
// kept as json.Number so change values keep their precision.
func ReadJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.NewInputError([]string{"input is not valid JSON: " + err.Error()})
	}
	return raw, nil
}

// headerAliases maps normalized header cells to request fields.
var headerAliases = map[string]string{
	"ticker":     chart.FieldTicker,
	"symbol":     chart.FieldTicker,
	"name":       chart.FieldName,
	"company":    chart.FieldName,
	"logo":       chart.FieldLogo,
	"logo_url":   chart.FieldLogo,
	"driver":     chart.FieldDriver,
	"cause":      chart.FieldDriver,
	"reason":     chart.FieldDriver,
	"change_pct": chart.FieldChangePct,
	"change":     chart.FieldChangePct,
	"changepct":  chart.FieldChangePct,
}

// ReadXLSX converts a spreadsheet into a request object. The header row
// is the first row with a ticker column; non-empty cells in column A
// above it supply title_main and title_sub in order.
func ReadXLSX(r io.Reader, opts XLSXOptions) (map[string]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open spreadsheet")
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.NewInputError([]string{"spreadsheet has no sheets"})
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %q", sheet)
	}

	headerRow, columns := findHeader(rows)
	if headerRow < 0 {
		return nil, errors.NewInputError([]string{"spreadsheet has no header row with a ticker column"})
	}

	out := map[string]any{}
	var titles []string
	for _, row := range rows[:headerRow] {
		if len(row) > 0 && strings.TrimSpace(row[0]) != "" {
			titles = append(titles, strings.TrimSpace(row[0]))
		}
	}
	if len(titles) > 0 {
		out[chart.FieldTitleMain] = titles[0]
	}
	if len(titles) > 1 {
		out[chart.FieldTitleSub] = titles[1]
	}
	if opts.TitleMain != "" {
		out[chart.FieldTitleMain] = opts.TitleMain
	}
	if opts.TitleSub != "" {
		out[chart.FieldTitleSub] = opts.TitleSub
	}

	data := []any{}
	for _, row := range rows[headerRow+1:] {
		rec := map[string]any{}
		for col, field := range columns {
			if col < len(row) && strings.TrimSpace(row[col]) != "" {
				rec[field] = row[col]
			}
		}
		if len(rec) > 0 {
			data = append(data, rec)
		}
	}
	out[chart.FieldData] = data
	return out, nil
}

// findHeader returns the header row index and a column → field map, or -1.
func findHeader(rows [][]string) (int, map[int]string) {
	for i, row := range rows {
		columns := map[int]string{}
		for col, cell := range row {
			if field, ok := headerAliases[normalizeHeader(cell)]; ok {
				columns[col] = field
			}
		}
		for _, field := range columns {
			if field == chart.FieldTicker {
				return i, columns
			}
		}
	}
	return -1, nil
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("%", "pct", " ", "_", "-", "_").Replace(s)
	s = strings.Trim(s, "_")
	return strings.ReplaceAll(s, "__", "_")
}
