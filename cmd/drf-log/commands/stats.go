package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/drf-protocol/drf-go/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	Accepted         int
	Rejected         int
	EventsBySource   map[log.Source]int
	EventsByCategory map[string]int
	ErrorsByKind     map[string]int
	Sessions         map[string]*SessionStats
	ParseTime        time.Duration
	SlowestParse     time.Duration
	SlowestInput     string
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single tool invocation.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Rejected  int
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsBySource:   make(map[log.Source]int),
		EventsByCategory: make(map[string]int),
		ErrorsByKind:     make(map[string]int),
		Sessions:         make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsBySource[event.Source]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	s.ParseTime += event.Duration
	if event.Duration > s.SlowestParse {
		s.SlowestParse = event.Duration
		s.SlowestInput = event.Input
	}

	session, ok := s.Sessions[event.SessionID]
	if !ok {
		session = &SessionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Sessions[event.SessionID] = session
	}
	session.Events++
	if event.Timestamp.After(session.LastSeen) {
		session.LastSeen = event.Timestamp
	}

	switch {
	case event.Failed():
		s.Rejected++
		session.Rejected++
		kind := "other"
		if event.Error != nil && event.Error.Kind != "" {
			kind = event.Error.Kind
		}
		s.ErrorsByKind[kind]++
	default:
		s.Accepted++
		if event.Result != nil {
			s.EventsByCategory[event.Result.Category]++
		}
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== DRF Parse Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Parses: %d (%d accepted, %d rejected)\n", stats.TotalEvents, stats.Accepted, stats.Rejected)
	if stats.TotalEvents > 0 {
		avg := stats.ParseTime / time.Duration(stats.TotalEvents)
		fmt.Fprintf(w, "Parse Time:   avg %s, max %s\n", formatDuration(avg), formatDuration(stats.SlowestParse))
		if stats.SlowestInput != "" {
			fmt.Fprintf(w, "Slowest:      %s\n", stats.SlowestInput)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Parses by Source:")
	for _, src := range []log.Source{log.SourceArgs, log.SourceStdin, log.SourceCatalog, log.SourceREPL, log.SourceConformance, log.SourceWire} {
		if count := stats.EventsBySource[src]; count > 0 {
			fmt.Fprintf(w, "  %-13s %d\n", src.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.EventsByCategory) > 0 {
		fmt.Fprintln(w, "Accepted by Category:")
		printCounts(w, stats.EventsByCategory)
		fmt.Fprintln(w)
	}

	if len(stats.ErrorsByKind) > 0 {
		fmt.Fprintln(w, "Rejected by Kind:")
		printCounts(w, stats.ErrorsByKind)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		// Sort by first seen time
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d parses, %d rejected, duration %s\n", shortenSessionID(s.id), s.stats.Events, s.stats.Rejected, duration)
		}
	}
}

// printCounts prints name/count pairs, largest first.
func printCounts(w io.Writer, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(w, "  %-20s %d\n", name+":", counts[name])
	}
}
