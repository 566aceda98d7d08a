package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/errors"
)

// buildXLSX writes rows starting at A1 of the first sheet.
func buildXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := buildXLSX(t, [][]any{
		{"Sep 15"},
		{"Big Movers & Drivers"},
		{},
		{"Ticker", "Company", "Logo", "Driver", "Change %"},
		{"CHEK", "Check-cap", "https://x/CHEK.png", "Merger deal", "+184.18%"},
		{},
		{"HSDT", "Helius Medical", "", "PIPE financing", "+141.67%"},
	})

	raw, err := ReadXLSX(bytes.NewReader(data), XLSXOptions{})
	if err != nil {
		t.Fatalf("ReadXLSX() error: %v", err)
	}
	if raw[chart.FieldTitleMain] != "Sep 15" || raw[chart.FieldTitleSub] != "Big Movers & Drivers" {
		t.Errorf("titles = %v / %v", raw[chart.FieldTitleMain], raw[chart.FieldTitleSub])
	}
	records := raw[chart.FieldData].([]any)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 (blank rows skipped)", len(records))
	}
	first := records[0].(map[string]any)
	if first[chart.FieldChangePct] != "+184.18%" || first[chart.FieldName] != "Check-cap" {
		t.Errorf("first record = %v", first)
	}
	if _, ok := records[1].(map[string]any)[chart.FieldLogo]; ok {
		t.Error("empty logo cell should be omitted")
	}

	res := chart.Validate(any(raw), chart.WithOptionalLogo())
	if !res.OK() {
		t.Errorf("Validate(xlsx) errors = %v", res.Errors())
	}
}

func TestReadXLSXTitleOverride(t *testing.T) {
	data := buildXLSX(t, [][]any{
		{"ticker", "name", "driver", "change_pct"},
		{"A", "Alpha", "news", "-1.5%"},
	})

	raw, err := ReadXLSX(bytes.NewReader(data), XLSXOptions{TitleMain: "Oct 1", TitleSub: "Losers"})
	if err != nil {
		t.Fatalf("ReadXLSX() error: %v", err)
	}
	if raw[chart.FieldTitleMain] != "Oct 1" || raw[chart.FieldTitleSub] != "Losers" {
		t.Errorf("titles = %v / %v, want overrides", raw[chart.FieldTitleMain], raw[chart.FieldTitleSub])
	}

	noTitles, _ := ReadXLSX(bytes.NewReader(data), XLSXOptions{})
	res := chart.Validate(any(noTitles))
	want := []string{"missing title_main field", "missing title_sub field", "item 1 is missing logo field"}
	if strings.Join(res.Errors(), "|") != strings.Join(want, "|") {
		t.Errorf("Validate() errors = %q, want %q", res.Errors(), want)
	}
}

func TestReadXLSXErrors(t *testing.T) {
	data := buildXLSX(t, [][]any{{"just", "some", "cells"}})
	if _, err := ReadXLSX(bytes.NewReader(data), XLSXOptions{}); err == nil {
		t.Error("ReadXLSX(no header) should fail")
	}
	if _, err := ReadXLSX(bytes.NewReader(data), XLSXOptions{Sheet: "Nope"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadXLSX(missing sheet) error = %v, want INVALID_FORMAT", err)
	}
	if _, err := ReadXLSX(strings.NewReader("not a zip"), XLSXOptions{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadXLSX(garbage) error = %v, want INVALID_FORMAT", err)
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ticker", "ticker"},
		{" Change % ", "change_pct"},
		{"change_pct", "change_pct"},
		{"Logo URL", "logo_url"},
		{"changePct", "changepct"},
	}
	for _, tt := range tests {
		if got := normalizeHeader(tt.in); got != tt.want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "movers.json")
	if err := os.WriteFile(jsonPath, chart.ExampleJSON(), 0o644); err != nil {
		t.Fatal(err)
	}
	raw, err := ImportFile(jsonPath, XLSXOptions{})
	if err != nil {
		t.Fatalf("ImportFile(json) error: %v", err)
	}
	if !chart.Validate(raw).OK() {
		t.Error("imported example should validate")
	}

	xlsxPath := filepath.Join(dir, "movers.xlsx")
	if err := os.WriteFile(xlsxPath, buildXLSX(t, [][]any{{"T"}, {"S"}, {"ticker"}, {"A"}}), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportFile(xlsxPath, XLSXOptions{}); err != nil {
		t.Errorf("ImportFile(xlsx) error: %v", err)
	}

	if _, err := ImportFile(filepath.Join(dir, "missing.json"), XLSXOptions{}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}

	csvPath := filepath.Join(dir, "movers.csv")
	os.WriteFile(csvPath, []byte("a,b"), 0o644)
	if _, err := ImportFile(csvPath, XLSXOptions{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ImportFile(csv) error = %v, want INVALID_FORMAT", err)
	}

	badPath := filepath.Join(dir, "bad.json")
	os.WriteFile(badPath, []byte("{"), 0o644)
	if _, err := ImportFile(badPath, XLSXOptions{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ImportFile(bad json) error = %v, want INVALID_INPUT", err)
	}
}
