package commands

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/drf-protocol/drf-go/pkg/log"
)

func readEvents(t *testing.T, path string) []log.Event {
	t.Helper()
	r, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer r.Close()

	var events []log.Event
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		events = append(events, e)
	}
}

func TestFilter(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	tests := []struct {
		name    string
		opts    FilterOptions
		origins []string
	}{
		{"by session", FilterOptions{SessionID: "abc12345-0000-4000-8000-000000000001"}, []string{"arg 1", "arg 2"}},
		{"by source", FilterOptions{Source: "catalog"}, []string{"linac.drf:5"}},
		{"by outcome", FilterOptions{Outcome: "accepted"}, []string{"arg 1", "linac.drf:5"}},
		{"by category", FilterOptions{Category: "STATUS"}, []string{"arg 1"}},
		{"by error kind", FilterOptions{ErrorKind: "trailing_input"}, []string{"arg 2"}},
		{"by time", FilterOptions{TimeStart: "2026-01-28T10:15:33Z"}, []string{"linac.drf:5"}},
		{"time end", FilterOptions{TimeEnd: "2026-01-28T10:15:33Z"}, []string{"arg 1", "arg 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Output = filepath.Join(t.TempDir(), "out.dlog")

			count, err := RunFilter(path, tt.opts)
			if err != nil {
				t.Fatalf("RunFilter failed: %v", err)
			}
			if count != len(tt.origins) {
				t.Errorf("count = %d, want %d", count, len(tt.origins))
			}

			events := readEvents(t, tt.opts.Output)
			if len(events) != len(tt.origins) {
				t.Fatalf("got %d events, want %d", len(events), len(tt.origins))
			}
			for i, e := range events {
				if e.Origin != tt.origins[i] {
					t.Errorf("event %d origin = %q, want %q", i, e.Origin, tt.origins[i])
				}
			}
		})
	}
}

func TestFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.dlog")

	for _, opts := range []FilterOptions{
		{Output: out, Source: "network"},
		{Output: out, Outcome: "maybe"},
		{Output: out, TimeStart: "yesterday"},
		{Output: out, TimeEnd: "tomorrow"},
	} {
		if _, err := RunFilter(path, opts); err == nil {
			t.Errorf("expected error for %+v", opts)
		}
	}
}
