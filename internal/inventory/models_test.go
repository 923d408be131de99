package inventory

import (
	"errors"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"123", "123"},
		{123, "123"},
		{float64(123), "123"},
		{"123.0", "123"},
		{" 123 ", "123"},
		{"PLA-9", "PLA-9"},
		{nil, ""},
		{"", ""},
		{12.5, "12.5"},
	}
	for _, c := range cases {
		if got := NormalizeKey(c.in); got != c.want {
			t.Fatalf("NormalizeKey(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFromCSVMissingKeyColumn(t *testing.T) {
	rows := [][]string{
		{"Transport NE", "GE_1G"},
		{"NE-A", "4"},
	}
	if _, err := FromCSV(rows); !errors.Is(err, ErrMissingKeyColumn) {
		t.Fatalf("expect ErrMissingKeyColumn, got %v", err)
	}
}

func TestFromCSVEmpty(t *testing.T) {
	_, err := FromCSV(nil)
	if !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("expect ErrEmptyTable for empty input, got %v", err)
	}
	// 空表与缺列是两类错误，调用方按 errors.Is 区分
	if errors.Is(err, ErrMissingKeyColumn) {
		t.Fatalf("empty input must not report a missing key column: %v", err)
	}
}

func TestLookupKeepsSourceOrder(t *testing.T) {
	rows := [][]string{
		{"PLA ID", "Transport NE", "GE_1G"},
		{"100", "NE-A", "4"},
		{"200", "NE-X", "8"},
		{"100", "NE-B", "2"},
	}
	tbl, err := FromCSV(rows)
	if err != nil {
		t.Fatalf("from csv: %v", err)
	}
	matches := tbl.Lookup("100")
	if len(matches) != 2 {
		t.Fatalf("expect 2 matches, got %d", len(matches))
	}
	if matches[0].TransportNE() != "NE-A" || matches[1].TransportNE() != "NE-B" {
		t.Fatalf("unexpected match order: %s, %s", matches[0].TransportNE(), matches[1].TransportNE())
	}
}

func TestLookupNormalizesKey(t *testing.T) {
	rows := [][]string{
		{"PLA ID", "Transport NE"},
		{"123", "NE-A"},
	}
	tbl, err := FromCSV(rows)
	if err != nil {
		t.Fatalf("from csv: %v", err)
	}
	if got := tbl.Lookup("123.0"); len(got) != 1 {
		t.Fatalf("expect numeric-looking keys to compare equal, got %d matches", len(got))
	}
}

func TestFromCSVShortRows(t *testing.T) {
	rows := [][]string{
		{"PLA ID", "Transport NE", "GE_1G"},
		{"100"},
	}
	tbl, err := FromCSV(rows)
	if err != nil {
		t.Fatalf("from csv: %v", err)
	}
	rec := tbl.Records[0]
	if _, ok := rec.Fields[ColGE1G]; ok {
		t.Fatalf("missing cell should leave field absent")
	}
	if rec.PlaID() != "100" {
		t.Fatalf("unexpected key %q", rec.PlaID())
	}
}
