package main

import (
	"context"
	"fmt"
	"testing"

	kferrors "github.com/matzehuels/keyforge/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"interrupted", fmt.Errorf("build: %w", context.Canceled), exitInterrupted},
		{"bad spec", kferrors.New(kferrors.ErrCodeInvalidSpec, "depth exceeds height"), exitBadInput},
		{"bad label", kferrors.New(kferrors.ErrCodeInvalidLabel, "unknown row"), exitBadInput},
		{"geometry", kferrors.New(kferrors.ErrCodeScoopCoverage, "scoop does not cover the core"), exitFailure},
		{"plain", fmt.Errorf("unknown flag: --nope"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
