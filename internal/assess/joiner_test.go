package assess

import (
	"errors"
	"testing"

	"nomassess/internal/inventory"
	"nomassess/internal/nomination"
)

func invTable(t *testing.T, rows [][]string) inventory.Table {
	t.Helper()
	tbl, err := inventory.FromCSV(rows)
	if err != nil {
		t.Fatalf("inventory from csv: %v", err)
	}
	return tbl
}

func nomTable(t *testing.T, rows []map[string]any) nomination.Table {
	t.Helper()
	tbl, err := nomination.FromRows(rows)
	if err != nil {
		t.Fatalf("nomination from rows: %v", err)
	}
	return tbl
}

func dupInventory(t *testing.T) inventory.Table {
	return invTable(t, [][]string{
		{"PLA ID", "Transport NE", "GE_1G"},
		{"100", "A", "4"},
		{"100", "B", "8"},
	})
}

func TestJoinCardinalityAndOrder(t *testing.T) {
	inv := invTable(t, [][]string{
		{"PLA ID", "Transport NE"},
		{"200", "NE-X"},
	})
	noms := nomTable(t, []map[string]any{
		{"PLA ID": "200"},
		{"PLA ID": "999"},
		{"PLA ID": "200"},
	})
	combined, err := Join(noms, inv, nil)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(combined) != len(noms.Records) {
		t.Fatalf("expect %d records, got %d", len(noms.Records), len(combined))
	}
	for i, rec := range combined {
		want := inventory.NormalizeKey(noms.Records[i].Fields["PLA ID"])
		if rec.PlaID != want {
			t.Fatalf("row %d out of order: got %s, want %s", i, rec.PlaID, want)
		}
	}
}

func TestJoinDefaultsToFirstMatch(t *testing.T) {
	noms := nomTable(t, []map[string]any{{"PLA ID": "100"}})
	combined, err := Join(noms, dupInventory(t), nil)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if got := combined[0].Fields["Inv_Transport NE"]; got != "A" {
		t.Fatalf("expect first match A, got %v", got)
	}
}

func TestJoinHonorsChoice(t *testing.T) {
	noms := nomTable(t, []map[string]any{{"PLA ID": "100"}})
	combined, err := Join(noms, dupInventory(t), map[string]string{"100": "B"})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if got := combined[0].Fields["Inv_Transport NE"]; got != "B" {
		t.Fatalf("expect chosen match B, got %v", got)
	}
	if got := combined[0].Fields["Inv_GE_1G"]; got != "8" {
		t.Fatalf("expect fields of chosen row, got %v", got)
	}
}

func TestJoinRejectsUnknownChoice(t *testing.T) {
	noms := nomTable(t, []map[string]any{{"PLA ID": "100"}})
	if _, err := Join(noms, dupInventory(t), map[string]string{"100": "C"}); !errors.Is(err, ErrChoiceNotFound) {
		t.Fatalf("expect ErrChoiceNotFound, got %v", err)
	}
}

func TestJoinZeroMatchLeavesInventoryAbsent(t *testing.T) {
	inv := invTable(t, [][]string{
		{"PLA ID", "Transport NE", "GE_1G"},
		{"100", "A", "4"},
	})
	noms := nomTable(t, []map[string]any{{"PLA ID": "999", "GE Port Demand": 1}})
	combined, err := Join(noms, inv, nil)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	rec := combined[0]
	if rec.Matched {
		t.Fatalf("expect unmatched record")
	}
	for col := range rec.Fields {
		if len(col) >= len(InvPrefix) && col[:len(InvPrefix)] == InvPrefix {
			t.Fatalf("unmatched record should carry no inventory field, found %s", col)
		}
	}
}

func TestJoinComparesNumericLookingKeysAsText(t *testing.T) {
	inv := invTable(t, [][]string{
		{"PLA ID", "Transport NE"},
		{"123", "NE-A"},
	})
	noms := nomTable(t, []map[string]any{{"PLA ID": float64(123)}})
	combined, err := Join(noms, inv, nil)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !combined[0].Matched {
		t.Fatalf("numeric key should match textual inventory key")
	}
}

func TestJoinKeepsBothVersionsOfSharedColumn(t *testing.T) {
	inv := invTable(t, [][]string{
		{"PLA ID", "Transport NE"},
		{"100", "NE-A"},
	})
	noms := nomTable(t, []map[string]any{{"PLA ID": "100"}})
	combined, err := Join(noms, inv, nil)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	rec := combined[0]
	if rec.Fields["PLA ID"] != "100" || rec.Fields["Inv_PLA ID"] != "100" {
		t.Fatalf("both the nomination and namespaced inventory key must survive: %v", rec.Fields)
	}
}

func TestDetectAmbiguities(t *testing.T) {
	inv := invTable(t, [][]string{
		{"PLA ID", "Transport NE"},
		{"100", "A"},
		{"100", "B"},
		{"200", "X"},
		{"300", "M"},
		{"300", "N"},
	})
	noms := nomTable(t, []map[string]any{
		{"PLA ID": "100"},
		{"PLA ID": "200"},
		{"PLA ID": "100"},
	})
	ambiguities := DetectAmbiguities(noms, inv)
	if len(ambiguities) != 1 {
		t.Fatalf("expect 1 ambiguity, got %d", len(ambiguities))
	}
	amb := ambiguities[0]
	if amb.PlaID != "100" {
		t.Fatalf("unexpected id %s", amb.PlaID)
	}
	if len(amb.Candidates) != 2 || amb.Candidates[0] != "A" || amb.Candidates[1] != "B" {
		t.Fatalf("unexpected candidates %v", amb.Candidates)
	}
}
