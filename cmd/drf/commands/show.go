package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/drf-protocol/drf-go/pkg/drf"
	drflog "github.com/drf-protocol/drf-go/pkg/log"
)

// ShowOptions configures the show command.
type ShowOptions struct {
	CommonOptions
	Format string // text, json, yaml
	Inputs []string
}

// RequestOutput is the structured form of a parsed request.
type RequestOutput struct {
	Input     string       `json:"input" yaml:"input"`
	Canonical string       `json:"canonical" yaml:"canonical"`
	Device    string       `json:"device" yaml:"device"`
	Category  string       `json:"category" yaml:"category"`
	Field     string       `json:"field,omitempty" yaml:"field,omitempty"`
	Range     *RangeOutput `json:"range,omitempty" yaml:"range,omitempty"`
	Event     *EventOutput `json:"event,omitempty" yaml:"event,omitempty"`
}

// RangeOutput describes a range. It is absent for the implicit range.
type RangeOutput struct {
	Kind  string  `json:"kind" yaml:"kind"`
	Start uint32  `json:"start" yaml:"start"`
	End   *uint32 `json:"end,omitempty" yaml:"end,omitempty"`
}

// EventOutput describes an event. It is absent for the default event.
type EventOutput struct {
	Kind      string `json:"kind" yaml:"kind"`
	DelayUS   uint32 `json:"delay_us,omitempty" yaml:"delay_us,omitempty"`
	Immediate bool   `json:"immediate,omitempty" yaml:"immediate,omitempty"`
	SkipDups  bool   `json:"skip_dups,omitempty" yaml:"skip_dups,omitempty"`
	Clock     string `json:"clock,omitempty" yaml:"clock,omitempty"`
	ClockType string `json:"clock_type,omitempty" yaml:"clock_type,omitempty"`
	Device    uint32 `json:"state_device,omitempty" yaml:"state_device,omitempty"`
	Value     uint16 `json:"state_value,omitempty" yaml:"state_value,omitempty"`
	Op        string `json:"op,omitempty" yaml:"op,omitempty"`
}

// RunShow prints the parsed structure of each argument.
func RunShow(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := ShowOptions{}
	addCommonFlags(fs, &opts.CommonOptions)
	fs.StringVar(&opts.Format, "format", "text", "Output format: text, json, yaml")

	if err := fs.Parse(args); err != nil {
		if isHelp(err) {
			printShowUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	opts.Inputs = fs.Args()

	if len(opts.Inputs) == 0 {
		fmt.Fprintln(stderr, "Error: no DRF string specified")
		printShowUsage(stderr)
		return exitCommandError
	}

	env, err := setup(fs, &opts.CommonOptions, drflog.SourceArgs, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer env.close()
	overrideString(fs, "format", &opts.Format, env.config.Format)

	switch opts.Format {
	case "text", "json", "yaml":
	default:
		fmt.Fprintf(stderr, "Error: unknown format %q\n", opts.Format)
		return exitCommandError
	}

	var outputs []RequestOutput
	failed := false
	for i, text := range opts.Inputs {
		req, err := env.tracer.ParseFrom(fmt.Sprintf("arg %d", i+1), text)
		if err != nil {
			printParseError(stderr, err)
			failed = true
			continue
		}
		outputs = append(outputs, NewRequestOutput(text, req))
	}

	if err := writeOutputs(stdout, opts.Format, outputs); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if failed {
		return exitValidation
	}
	return exitSuccess
}

// NewRequestOutput builds the structured form of req.
func NewRequestOutput(input string, req drf.Request) RequestOutput {
	out := RequestOutput{
		Input:     input,
		Canonical: req.Canonical(),
		Device:    req.Device.String(),
		Category:  req.Property.Category().Token(),
		Field:     req.Property.Field().Token(),
	}

	if r := req.Range; !r.IsImplicit() {
		ro := &RangeOutput{Kind: r.Kind().String(), Start: r.Start()}
		if end, ok := r.End(); ok && r.Kind() != drf.RangeFull {
			ro.End = &end
		}
		out.Range = ro
	}

	e := req.Event
	switch e.Kind() {
	case drf.EventDefault:
	case drf.EventPeriodic:
		out.Event = &EventOutput{Kind: e.Kind().String(), DelayUS: e.Period(), Immediate: e.FireImmediately(), SkipDups: e.SkipIfLate()}
	case drf.EventClock:
		out.Event = &EventOutput{Kind: e.Kind().String(), DelayUS: e.Delay(), Clock: fmt.Sprintf("%X", e.ClockCode()), ClockType: e.ClockType().String()}
	case drf.EventState:
		out.Event = &EventOutput{Kind: e.Kind().String(), DelayUS: e.Delay(), Device: e.StateDevice(), Value: e.StateValue(), Op: e.StateOp().String()}
	default:
		out.Event = &EventOutput{Kind: e.Kind().String()}
	}
	return out
}

func writeOutputs(w io.Writer, format string, outputs []RequestOutput) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(outputs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(outputs); err != nil {
			return err
		}
		return enc.Close()
	default:
		for i, out := range outputs {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeText(w, out)
		}
	}
	return nil
}

func writeText(w io.Writer, out RequestOutput) {
	fmt.Fprintf(w, "Input:      %s\n", out.Input)
	fmt.Fprintf(w, "Canonical:  %s\n", out.Canonical)
	fmt.Fprintf(w, "Device:     %s\n", out.Device)
	fmt.Fprintf(w, "Category:   %s\n", out.Category)
	if out.Field != "" {
		fmt.Fprintf(w, "Field:      %s\n", out.Field)
	}

	switch {
	case out.Range == nil:
		fmt.Fprintln(w, "Range:      none")
	case out.Range.End != nil:
		fmt.Fprintf(w, "Range:      %s %d..%d\n", out.Range.Kind, out.Range.Start, *out.Range.End)
	case out.Range.Kind == drf.RangeFull.String():
		fmt.Fprintln(w, "Range:      full")
	default:
		fmt.Fprintf(w, "Range:      %s %d..end\n", out.Range.Kind, out.Range.Start)
	}

	e := out.Event
	switch {
	case e == nil:
		fmt.Fprintln(w, "Event:      default")
	case e.Kind == drf.EventPeriodic.String():
		fmt.Fprintf(w, "Event:      %s every %s, immediate=%t, skip_dups=%t\n", e.Kind, drf.CanonicalDelay(e.DelayUS), e.Immediate, e.SkipDups)
	case e.Kind == drf.EventClock.String():
		fmt.Fprintf(w, "Event:      %s %s (%s) +%s\n", e.Kind, e.Clock, e.ClockType, drf.CanonicalDelay(e.DelayUS))
	case e.Kind == drf.EventState.String():
		fmt.Fprintf(w, "Event:      %s device %d %s %d +%s\n", e.Kind, e.Device, e.Op, e.Value, drf.CanonicalDelay(e.DelayUS))
	default:
		fmt.Fprintf(w, "Event:      %s\n", e.Kind)
	}
}

func printShowUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: drf show [options] <drf...>

Options:
  -format fmt      text, json, yaml [default: text]
  -trace file      Append a CBOR parse trace to file
  -log-level lvl   debug, info, warn, error [default: warn]
  -config file     YAML configuration file

Examples:
  drf show 'M|OUTTMP.On@e,02'
  drf show -format json 'M:OUTTMP[0:3]@p,1s'`)
}
