package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/drf-protocol/drf-go/pkg/drf"
)

func TestParseYAMLFile(t *testing.T) {
	c, err := ParseFile("testdata/linac.yaml")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if c.Format != FormatYAML {
		t.Errorf("Format = %v, want yaml", c.Format)
	}
	if c.Name != "linac-temps" {
		t.Errorf("Name = %q", c.Name)
	}
	if c.Description != "Linac temperatures" {
		t.Errorf("Description = %q", c.Description)
	}

	tests := []struct {
		name      string
		canonical string
		line      int
	}{
		{"OUTTMP", "M:OUTTMP.READING.SCALED@P,1S,TRUE", 5},
		{"OUTTMP_STS", "M:OUTTMP.STATUS.ALL", 8},
		{"OUTTMP_SET", "M:OUTTMP.SETTING.SCALED", 10},
		{"AMANDA.ON", "G:AMANDA.STATUS.ON@E,2,E,0", 12},
		{"line14", "M:OUTTMP.DESCRIPTION", 14},
	}

	if len(c.Entries) != len(tests) {
		t.Fatalf("got %d entries, want %d", len(c.Entries), len(tests))
	}
	for i, tt := range tests {
		e := c.Entries[i]
		if e.Name != tt.name {
			t.Errorf("entry %d: Name = %q, want %q", i, e.Name, tt.name)
		}
		if e.Canonical() != tt.canonical {
			t.Errorf("%s: Canonical() = %q, want %q", tt.name, e.Canonical(), tt.canonical)
		}
		if e.LineNumber != tt.line {
			t.Errorf("%s: LineNumber = %d, want %d", tt.name, e.LineNumber, tt.line)
		}
	}

	if e, _ := c.Get("OUTTMP"); e.Description != "outdoor temperature" {
		t.Errorf("OUTTMP description = %q", e.Description)
	}
}

func TestYAMLAndKeyValueAgree(t *testing.T) {
	kv, err := ParseFile("testdata/linac.drf")
	if err != nil {
		t.Fatalf("ParseFile(kv) failed: %v", err)
	}
	y, err := ParseFile("testdata/linac.yaml")
	if err != nil {
		t.Fatalf("ParseFile(yaml) failed: %v", err)
	}

	if len(kv.Entries) != len(y.Entries) {
		t.Fatalf("entry counts differ: %d vs %d", len(kv.Entries), len(y.Entries))
	}
	for i := range kv.Entries {
		if kv.Entries[i].Request != y.Entries[i].Request {
			t.Errorf("entry %d: %v vs %v", i, kv.Entries[i].Request, y.Entries[i].Request)
		}
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantErr  error
		wantLine string
	}{
		{
			name:     "bad request",
			data:     "requests:\n  - name: A\n    drf: M:OUTTMP\n  - name: B\n    drf: M:OUTTMP.ON[0]\n",
			wantErr:  drf.ErrTrailingInput,
			wantLine: "line 4:",
		},
		{
			name:     "missing drf",
			data:     "requests:\n  - name: A\n",
			wantErr:  ErrMissingRequest,
			wantLine: "line 2:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytesWithOptions([]byte(tt.data), ParseOptions{Format: FormatYAML})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !strings.Contains(err.Error(), tt.wantLine) {
				t.Errorf("error should contain %q: %v", tt.wantLine, err)
			}
		})
	}
}

func TestParseYAMLSyntaxError(t *testing.T) {
	_, err := ParseBytesWithOptions([]byte("requests: [unclosed\n"), ParseOptions{Format: FormatYAML})
	if err == nil || !strings.Contains(err.Error(), "YAML parse error") {
		t.Errorf("expected YAML parse error, got %v", err)
	}
}

func TestParseYAMLStrictDuplicates(t *testing.T) {
	data := "requests:\n  - name: A\n    drf: M:OUTTMP\n  - name: A\n    drf: M|OUTTMP\n"

	if _, err := ParseBytesWithOptions([]byte(data), ParseOptions{Format: FormatYAML}); err != nil {
		t.Errorf("lenient parse failed: %v", err)
	}
	_, err := ParseBytesWithOptions([]byte(data), ParseOptions{Format: FormatYAML, Strict: true})
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}
