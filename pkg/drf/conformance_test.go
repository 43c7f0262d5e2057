package drf_test

import (
	"testing"

	"github.com/drf-protocol/drf-go/internal/conformance"
)

func TestConformanceVectors(t *testing.T) {
	suite, err := conformance.LoadSuite("../../testdata/vectors.yaml")
	if err != nil {
		t.Fatalf("LoadSuite failed: %v", err)
	}

	result := conformance.Run(suite)
	for _, cr := range result.Results {
		for _, f := range cr.Failures {
			t.Errorf("%s (%q): %s", cr.Case.ID, cr.Case.Input, f)
		}
	}
	if result.PassCount != len(suite.Cases) {
		t.Errorf("passed %d of %d cases", result.PassCount, len(suite.Cases))
	}
}
