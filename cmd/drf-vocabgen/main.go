// Command drf-vocabgen generates the DRF vocabulary tables of pkg/drf from
// the YAML vocabulary definition.
//
// Usage:
//
//	drf-vocabgen -vocab docs/vocab.yaml -output pkg/drf
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

const outputFile = "vocab_gen.go"

func main() {
	vocabPath := flag.String("vocab", "", "Path to the vocabulary YAML (docs/vocab.yaml)")
	outputDir := flag.String("output", "", "Output directory for the generated Go file")
	flag.Parse()

	if *vocabPath == "" || *outputDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: drf-vocabgen -vocab <path> -output <dir>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*vocabPath, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(vocabPath, outputDir string) error {
	v, err := LoadVocab(vocabPath)
	if err != nil {
		return fmt.Errorf("loading vocabulary: %w", err)
	}

	code, err := GenerateVocab(v, vocabPath)
	if err != nil {
		return fmt.Errorf("generating vocabulary: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	outPath := filepath.Join(outputDir, outputFile)
	if err := writeFormatted(outPath, code); err != nil {
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}
	fmt.Printf("  generated %s\n", outPath)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
