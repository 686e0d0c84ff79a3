// internal/core/domain/enums_test.go
package domain

import (
	"errors"
	"testing"

	"subprobe/internal/testutil"
)

func TestParseScanMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ScanMode
		wantErr bool
	}{
		{"subdomains", ScanModeSubdomains, false},
		{" TLDs ", ScanModeTLDs, false},
		{"all", ScanModeAll, false},
		{"passive", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScanMode(tt.input)
			if tt.wantErr {
				testutil.AssertTrue(t, errors.Is(err, ErrInvalidScanMode), "should return ErrInvalidScanMode")
				return
			}
			testutil.AssertNoError(t, err, "ParseScanMode")
			testutil.AssertEqual(t, got, tt.want, "scan mode")
		})
	}
}

func TestScanMode_Forms(t *testing.T) {
	tests := []struct {
		mode   ScanMode
		labels bool
		bare   bool
	}{
		{ScanModeSubdomains, true, false},
		{ScanModeTLDs, false, true},
		{ScanModeAll, true, true},
	}

	for _, tt := range tests {
		testutil.AssertTrue(t, tt.mode.IsValid(), tt.mode.String()+" valid")
		testutil.AssertEqual(t, tt.mode.IncludesLabels(), tt.labels, tt.mode.String()+" includes labels")
		testutil.AssertEqual(t, tt.mode.IncludesBare(), tt.bare, tt.mode.String()+" includes bare")
	}

	testutil.AssertFalse(t, ScanMode("deep").IsValid(), "unknown mode")
}
