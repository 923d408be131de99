package nomination

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	input := "PLA ID,GE Port Demand,10GE Port Demand,Remark\n100,2,0,urgent\n200,0,1,\n"
	tbl, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tbl.Records) != 2 {
		t.Fatalf("expect 2 records, got %d", len(tbl.Records))
	}
	if tbl.Records[0].Fields["Remark"] != "urgent" {
		t.Fatalf("passthrough column lost: %v", tbl.Records[0].Fields["Remark"])
	}
	if tbl.Columns[0] != ColPlaID {
		t.Fatalf("unexpected column order: %v", tbl.Columns)
	}
}

func TestParseCSVMissingKeyColumn(t *testing.T) {
	input := "Node,GE Port Demand\nA,1\n"
	if _, err := ParseCSV(strings.NewReader(input)); !errors.Is(err, ErrMissingKeyColumn) {
		t.Fatalf("expect ErrMissingKeyColumn, got %v", err)
	}
}

func TestFromRows(t *testing.T) {
	rows := []map[string]any{
		{"PLA ID": "100", "GE Port Demand": 2, "Zone": "east"},
		{"PLA ID": "200", "GE Port Demand": 0, "Area": "west"},
	}
	tbl, err := FromRows(rows)
	if err != nil {
		t.Fatalf("from rows: %v", err)
	}
	if len(tbl.Records) != 2 {
		t.Fatalf("expect 2 records, got %d", len(tbl.Records))
	}
	if tbl.Columns[0] != ColPlaID || tbl.Columns[1] != ColGEDemand {
		t.Fatalf("key columns should come first: %v", tbl.Columns)
	}
	// 其余列按字典序，保证输出稳定
	if tbl.Columns[2] != "Area" || tbl.Columns[3] != "Zone" {
		t.Fatalf("unexpected passthrough order: %v", tbl.Columns)
	}
}

func TestFromRowsMissingKeyColumn(t *testing.T) {
	rows := []map[string]any{{"Node": "A"}}
	if _, err := FromRows(rows); !errors.Is(err, ErrMissingKeyColumn) {
		t.Fatalf("expect ErrMissingKeyColumn, got %v", err)
	}
	if _, err := FromRows(nil); !errors.Is(err, ErrMissingKeyColumn) {
		t.Fatalf("expect ErrMissingKeyColumn for empty rows, got %v", err)
	}
}
