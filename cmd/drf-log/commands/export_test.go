package commands

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportToJSONL(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.jsonl")

	if err := RunExport(path, "jsonl", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if first["timestamp"] != "2026-01-28T10:15:32.123456Z" {
		t.Errorf("timestamp = %v", first["timestamp"])
	}
	if first["source"] != "ARGS" || first["outcome"] != "ACCEPTED" {
		t.Errorf("source/outcome = %v/%v", first["source"], first["outcome"])
	}
	result, ok := first["result"].(map[string]any)
	if !ok || result["canonical"] != "M:OUTTMP.STATUS.ON@E,2,E,0" {
		t.Errorf("result = %v", first["result"])
	}

	var second map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	errData, ok := second["error"].(map[string]any)
	if !ok || errData["kind"] != "trailing_input" || errData["pos"] != float64(8) {
		t.Errorf("error = %v", second["error"])
	}
	if _, ok := second["result"]; ok {
		t.Error("rejected parse should have no result")
	}
}

func TestExportToCSV(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.csv")

	if err := RunExport(path, "csv", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	if records[0][0] != "timestamp" || records[0][6] != "canonical" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][6] != "M:OUTTMP.STATUS.ON@E,2,E,0" || records[1][7] != "" {
		t.Errorf("row 1 = %v", records[1])
	}
	if records[2][7] != "trailing_input" || records[2][8] != "8" || records[2][9] != "900" {
		t.Errorf("row 2 = %v", records[2])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out.xml"))
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}
