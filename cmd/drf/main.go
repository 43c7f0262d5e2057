// drf is a CLI tool for parsing, canonicalizing and checking Device
// Reference Format strings.
package main

import (
	"fmt"
	"os"

	"github.com/drf-protocol/drf-go/cmd/drf/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "canon":
		exitCode = commands.RunCanon(args, os.Stdin, os.Stdout, os.Stderr)
	case "show":
		exitCode = commands.RunShow(args, os.Stdout, os.Stderr)
	case "check":
		exitCode = commands.RunCheck(args, os.Stdout, os.Stderr)
	case "convert":
		exitCode = commands.RunConvert(args, os.Stdout, os.Stderr)
	case "conform":
		exitCode = commands.RunConform(args, os.Stdout, os.Stderr)
	case "encode":
		exitCode = commands.RunEncode(args, os.Stdout, os.Stderr)
	case "decode":
		exitCode = commands.RunDecode(args, os.Stdout, os.Stderr)
	case "repl":
		exitCode = commands.RunRepl(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("drf version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`drf - Device Reference Format tool

Usage:
  drf <command> [options] [args...]

Commands:
  canon      Print the canonical form of DRF strings
  show       Display the parsed structure of DRF strings
  check      Parse and validate request catalog files
  convert    Rewrite a catalog canonically (key=value <-> YAML)
  conform    Run conformance vector suites
  encode     Print the CBOR wire encoding of DRF strings
  decode     Decode CBOR wire messages back to DRF
  repl       Interactive prompt

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  drf canon 'M|OUTTMP.On@e,02'
  drf show -format json 'M:OUTTMP[0:3]@p,1s'
  drf check -strict linac.drf
  drf conform testdata/vectors.yaml

For command-specific help, run:
  drf <command> -help`)
}
