package buildinfo

import (
	"strings"
	"testing"
)

func TestGenerator(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	tests := []struct {
		version, commit string
		want            string
	}{
		{"v1.2.3", "3f9a2c1d0e", "keyforge v1.2.3"},
		{"dev", "3f9a2c1d0e", "keyforge dev+3f9a2c1"},
		{"dev", "none", "keyforge dev"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			Version, Commit = tt.version, tt.commit
			if got := Generator(); got != tt.want {
				t.Errorf("Generator() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "v1.2.3", "3f9a2c1d0e"
	got := Template()
	for _, want := range []string{"v1.2.3", "3f9a2c1", "{{.Name}}"} {
		if !strings.Contains(got, want) {
			t.Errorf("Template() = %q, missing %q", got, want)
		}
	}
}
