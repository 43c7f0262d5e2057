package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drf-protocol/drf-go/pkg/catalog"
	drflog "github.com/drf-protocol/drf-go/pkg/log"
)

const (
	linacCatalog = "../../../testdata/linac.drf"
	vectorsFile  = "../../../testdata/vectors.yaml"
)

func readTrace(t *testing.T, path string) []drflog.Event {
	t.Helper()
	r, err := drflog.NewReader(path)
	if err != nil {
		t.Fatalf("open trace: %v", err)
	}
	defer r.Close()

	var events []drflog.Event
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		if err != nil {
			t.Fatalf("read trace: %v", err)
		}
		events = append(events, e)
	}
}

func TestRunCanon_Args(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunCanon([]string{"M|OUTTMP.On@e,02", "M:OUTTMP[0:0]"}, nil, stdout, stderr)

	if exitCode != exitSuccess {
		t.Errorf("expected exit code %d, got %d", exitSuccess, exitCode)
		t.Logf("stderr: %s", stderr.String())
	}
	want := "M:OUTTMP.STATUS.ON@E,2,E,0\nM:OUTTMP.READING.SCALED\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestRunCanon_Stdin(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	stdin := strings.NewReader("M:OUTTMP\n# comment\n\n  M|OUTTMP  \n")

	exitCode := RunCanon(nil, stdin, stdout, stderr)

	if exitCode != exitSuccess {
		t.Errorf("expected exit code %d, got %d", exitSuccess, exitCode)
	}
	if stdout.String() != "M:OUTTMP.READING.SCALED\nM:OUTTMP.STATUS.ALL\n" {
		t.Errorf("unexpected stdout: %q", stdout.String())
	}
}

func TestRunCanon_InvalidInput(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunCanon([]string{"M:OUTTMP.ON[0]", "M|OUTTMP"}, nil, stdout, stderr)

	if exitCode != exitValidation {
		t.Errorf("expected exit code %d, got %d", exitValidation, exitCode)
	}
	if stdout.String() != "M:OUTTMP.STATUS.ALL\n" {
		t.Errorf("valid inputs should still print, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "  M:OUTTMP.ON[0]\n          ^\n") {
		t.Errorf("expected caret under offset 8, got: %s", stderr.String())
	}
}

func TestRunCanon_Trace(t *testing.T) {
	trace := filepath.Join(t.TempDir(), "session.dlog")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunCanon([]string{"-trace", trace, "M:OUTTMP", "M:OUTTMP.ON"}, nil, stdout, stderr)
	if exitCode != exitValidation {
		t.Fatalf("expected exit code %d, got %d", exitValidation, exitCode)
	}

	events := readTrace(t, trace)
	if len(events) != 2 {
		t.Fatalf("got %d trace events, want 2", len(events))
	}
	if events[0].Source != drflog.SourceArgs || events[0].Origin != "arg 1" || events[0].Failed() {
		t.Errorf("event 0 = %+v", events[0])
	}
	if !events[1].Failed() || events[1].Error.Kind != "trailing_input" {
		t.Errorf("event 1 = %+v", events[1])
	}
	if events[0].SessionID == "" || events[0].SessionID != events[1].SessionID {
		t.Errorf("events should share one session: %q, %q", events[0].SessionID, events[1].SessionID)
	}
}

func TestRunCanon_BadLogLevel(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunCanon([]string{"-log-level", "loud", "M:OUTTMP"}, nil, stdout, stderr)

	if exitCode != exitCommandError {
		t.Errorf("expected exit code %d, got %d", exitCommandError, exitCode)
	}
	if !strings.Contains(stderr.String(), `invalid log level "loud"`) {
		t.Errorf("unexpected stderr: %s", stderr.String())
	}
}

func TestRunCanon_DebugLogsParses(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	RunCanon([]string{"-log-level", "debug", "M|OUTTMP"}, nil, stdout, stderr)

	for _, want := range []string{"msg=\"drf parse\"", "canonical=M:OUTTMP.STATUS.ALL", "source=ARGS"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("debug log missing %q:\n%s", want, stderr.String())
		}
	}
}

func TestRunCanon_Help(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	if exitCode := RunCanon([]string{"-help"}, nil, stdout, stderr); exitCode != exitSuccess {
		t.Errorf("expected exit code %d, got %d", exitSuccess, exitCode)
	}
	if !strings.Contains(stdout.String(), "Usage: drf canon") {
		t.Errorf("expected usage, got: %s", stdout.String())
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	trace := filepath.Join(dir, "from-config.dlog")
	config := filepath.Join(dir, "drf.yaml")
	data := "log_level: error\ntrace_file: " + trace + "\nformat: json\n"
	if err := os.WriteFile(config, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := RunShow([]string{"-config", config, "M:OUTTMP"}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d: %s", exitSuccess, exitCode, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "[") {
		t.Errorf("config format should select JSON, got: %s", stdout.String())
	}
	if events := readTrace(t, trace); len(events) != 1 {
		t.Errorf("got %d trace events, want 1", len(events))
	}

	// An explicit flag wins over the file.
	stdout.Reset()
	exitCode = RunShow([]string{"-config", config, "-format", "text", "M:OUTTMP"}, stdout, stderr)
	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, exitCode)
	}
	if !strings.HasPrefix(stdout.String(), "Input:") {
		t.Errorf("-format text should win, got: %s", stdout.String())
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	os.WriteFile(good, []byte("log_level: debug\nstrict: true\n"), 0644)
	cfg, err := LoadConfig(good)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.LogLevel != "debug" || !cfg.Strict {
		t.Errorf("cfg = %+v", cfg)
	}

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, nil, 0644)
	if _, err := LoadConfig(empty); err != nil {
		t.Errorf("empty config should load: %v", err)
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	os.WriteFile(unknown, []byte("colour: blue\n"), 0644)
	if _, err := LoadConfig(unknown); err == nil {
		t.Error("expected error for unknown key")
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunShow_Text(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunShow([]string{"M|OUTTMP.On@e,02"}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Errorf("expected exit code %d, got %d", exitSuccess, exitCode)
	}
	for _, want := range []string{
		"Canonical:  M:OUTTMP.STATUS.ON@E,2,E,0",
		"Category:   STATUS",
		"Field:      ON",
		"Range:      none",
		"Event:      Clock 2 (E) +0",
	} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestRunShow_JSON(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunShow([]string{"-format", "json", "M:OUTTMP[3:]@p,1s", "M:OUTTMP.CONTROL"}, stdout, stderr)
	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, exitCode)
	}

	var outputs []RequestOutput
	if err := json.Unmarshal(stdout.Bytes(), &outputs); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if len(outputs) != 2 {
		t.Fatalf("got %d outputs, want 2", len(outputs))
	}

	first := outputs[0]
	if first.Range == nil || first.Range.Kind != "Array" || first.Range.Start != 3 || first.Range.End != nil {
		t.Errorf("range = %+v", first.Range)
	}
	if first.Event == nil || first.Event.Kind != "Periodic" || first.Event.DelayUS != 1_000_000 || !first.Event.Immediate {
		t.Errorf("event = %+v", first.Event)
	}

	second := outputs[1]
	if second.Category != "CONTROL" || second.Field != "" || second.Range != nil || second.Event != nil {
		t.Errorf("second = %+v", second)
	}
}

func TestRunShow_YAML(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunShow([]string{"-format", "yaml", "M:OUTTMP@S,1234,0,1s,="}, stdout, stderr)
	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d", exitSuccess, exitCode)
	}
	for _, want := range []string{"kind: State", "state_device: 1234", "delay_us: 1000000"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestRunShow_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no input", nil, exitCommandError},
		{"bad format", []string{"-format", "xml", "M:OUTTMP"}, exitCommandError},
		{"bad drf", []string{"M:OUTTMP@Z"}, exitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunShow(tt.args, &bytes.Buffer{}, &bytes.Buffer{}); got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunCheck_Valid(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunCheck([]string{"-v", linacCatalog}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Errorf("expected exit code %d, got %d", exitSuccess, exitCode)
		t.Logf("stdout: %s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "OK (5 entries, 3 warnings)") {
		t.Errorf("unexpected output: %s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "WARNING [line 10] line10: entry has no name") {
		t.Errorf("verbose output should list warnings: %s", stdout.String())
	}
}

func TestRunCheck_Strict(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunCheck([]string{"-strict", linacCatalog}, stdout, stderr)

	if exitCode != exitValidation {
		t.Errorf("expected exit code %d, got %d", exitValidation, exitCode)
	}
	if !strings.Contains(stdout.String(), "FAILED (3 errors, 0 warnings)") {
		t.Errorf("unexpected output: %s", stdout.String())
	}
}

func TestRunCheck_Invalid(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunCheck([]string{"../../../pkg/catalog/testdata/broken.drf", "nonexistent.drf"}, stdout, stderr)

	if exitCode != exitValidation {
		t.Errorf("expected exit code %d, got %d", exitValidation, exitCode)
	}
	if !strings.Contains(stdout.String(), "line 2:") {
		t.Errorf("error should carry the line number: %s", stdout.String())
	}
	if strings.Count(stdout.String(), "FAILED") != 2 {
		t.Errorf("expected two failures: %s", stdout.String())
	}
}

func TestRunCheck_JSON(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunCheck([]string{"-json", "../../../pkg/catalog/testdata/duplicates.drf"}, stdout, stderr)
	if exitCode != exitValidation {
		t.Errorf("expected exit code %d, got %d", exitValidation, exitCode)
	}

	var results map[string]CheckOutput
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	result, ok := results["../../../pkg/catalog/testdata/duplicates.drf"]
	if !ok {
		t.Fatalf("missing result: %v", results)
	}
	if result.Valid || result.Entries != 3 || len(result.Errors) != 1 || result.Format != "kv" {
		t.Errorf("result = %+v", result)
	}
}

func TestRunCheck_NoFile(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunCheck([]string{}, stdout, stderr)

	if exitCode != exitCommandError {
		t.Errorf("expected exit code %d, got %d", exitCommandError, exitCode)
	}
	if !strings.Contains(stderr.String(), "no files specified") {
		t.Errorf("expected 'no files specified' in stderr, got: %s", stderr.String())
	}
}

func TestRunConvert_ToYAML(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunConvert([]string{"-to", "yaml", linacCatalog}, stdout, stderr)
	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d: %s", exitSuccess, exitCode, stderr.String())
	}

	c, err := catalog.ParseBytes(stdout.Bytes())
	if err != nil {
		t.Fatalf("converted output does not parse: %v\n%s", err, stdout.String())
	}
	if c.Format != catalog.FormatYAML || len(c.Entries) != 5 {
		t.Errorf("format = %v, entries = %d", c.Format, len(c.Entries))
	}
	for _, e := range c.Entries {
		if !e.IsCanonical() {
			t.Errorf("%s: %q is not canonical", e.Name, e.Text)
		}
	}
}

func TestRunConvert_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "linac.drf")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunConvert([]string{"-o", out, linacCatalog}, stdout, stderr)
	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d: %s", exitSuccess, exitCode, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Converted") {
		t.Errorf("unexpected stdout: %s", stdout.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "OUTTMP_STS = M:OUTTMP.STATUS.ALL") {
		t.Errorf("unexpected output file:\n%s", data)
	}
}

func TestRunConvert_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no input", nil, exitCommandError},
		{"bad format", []string{"-to", "xml", linacCatalog}, exitCommandError},
		{"bad catalog", []string{"../../../pkg/catalog/testdata/broken.drf"}, exitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunConvert(tt.args, &bytes.Buffer{}, &bytes.Buffer{}); got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunConform_Vectors(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunConform([]string{vectorsFile}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Errorf("expected exit code %d, got %d", exitSuccess, exitCode)
		t.Logf("stdout: %s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "=== Suite: drf-core ===") {
		t.Errorf("unexpected output: %s", stdout.String())
	}
	if strings.Contains(stdout.String(), "[FAIL]") {
		t.Errorf("no case should fail: %s", stdout.String())
	}
}

func TestRunConform_Failing(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunConform([]string{"-json", "../../../internal/conformance/testdata/failing.yaml"}, stdout, stderr)

	if exitCode != exitValidation {
		t.Errorf("expected exit code %d, got %d", exitValidation, exitCode)
	}
	if !strings.Contains(stdout.String(), `"failed": 3`) {
		t.Errorf("unexpected output: %s", stdout.String())
	}
}

func TestRunConform_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no paths", nil},
		{"missing file", []string{"nonexistent.yaml"}},
		{"invalid suite", []string{"../../../internal/conformance/testdata/invalid/unknown_kind.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunConform(tt.args, &bytes.Buffer{}, &bytes.Buffer{}); got != exitCommandError {
				t.Errorf("exit code = %d, want %d", got, exitCommandError)
			}
		})
	}
}

func TestRunEncodeDecode(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	if exitCode := RunEncode([]string{"M:OUTTMP"}, stdout, stderr); exitCode != exitSuccess {
		t.Fatalf("encode exit code %d: %s", exitCode, stderr.String())
	}
	encoded := strings.TrimSpace(stdout.String())
	if encoded != "a301684d3a4f5554544d5002000303" {
		t.Errorf("encoded = %s", encoded)
	}

	stdout.Reset()
	if exitCode := RunDecode([]string{encoded}, stdout, stderr); exitCode != exitSuccess {
		t.Fatalf("decode exit code %d: %s", exitCode, stderr.String())
	}
	if stdout.String() != "M:OUTTMP.READING.SCALED\n" {
		t.Errorf("decoded = %q", stdout.String())
	}
}

func TestRunEncodeDecode_Batch(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	inputs := []string{"-batch", "M|OUTTMP.On@e,02", "G:AMANDA.SETTING[2]@S,1234,0,1s,="}
	if exitCode := RunEncode(inputs, stdout, stderr); exitCode != exitSuccess {
		t.Fatalf("encode exit code %d: %s", exitCode, stderr.String())
	}
	encoded := strings.TrimSpace(stdout.String())
	if strings.Contains(encoded, "\n") {
		t.Fatalf("batch should be one message, got %q", encoded)
	}

	stdout.Reset()
	if exitCode := RunDecode([]string{"-batch", encoded}, stdout, stderr); exitCode != exitSuccess {
		t.Fatalf("decode exit code %d: %s", exitCode, stderr.String())
	}
	want := "M:OUTTMP.STATUS.ON@E,2,E,0\nG:AMANDA.SETTING[2].SCALED@S,1234,0,1S,=\n"
	if stdout.String() != want {
		t.Errorf("decoded = %q, want %q", stdout.String(), want)
	}
}

func TestRunEncode_Canonical(t *testing.T) {
	stdout := &bytes.Buffer{}

	RunEncode([]string{"-canonical", "M:OUTTMP"}, stdout, &bytes.Buffer{})

	// Key 6 carries the canonical text.
	if !strings.Contains(stdout.String(), "06774d3a4f5554544d502e52454144494e472e5343414c4544") {
		t.Errorf("encoded = %s", stdout.String())
	}
}

func TestRunDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no input", nil, exitCommandError},
		{"bad hex", []string{"zz"}, exitValidation},
		{"bad cbor", []string{"ff"}, exitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunDecode(tt.args, &bytes.Buffer{}, &bytes.Buffer{}); got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunEncode_Errors(t *testing.T) {
	if got := RunEncode(nil, &bytes.Buffer{}, &bytes.Buffer{}); got != exitCommandError {
		t.Errorf("exit code = %d, want %d", got, exitCommandError)
	}
	if got := RunEncode([]string{"M:OUTTMP.ON"}, &bytes.Buffer{}, &bytes.Buffer{}); got != exitValidation {
		t.Errorf("exit code = %d, want %d", got, exitValidation)
	}
}
