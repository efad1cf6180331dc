package fonts

import "testing"

func TestFamilies(t *testing.T) {
	tests := []struct {
		name string
		load func() (any, error)
	}{
		{"sheet", func() (any, error) { return Sheet() }},
		{"mono", func() (any, error) { return Mono() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.load()
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if f == nil {
				t.Error("family should not be nil")
			}
		})
	}
}

func TestSheetIsCached(t *testing.T) {
	a, _ := Sheet()
	b, _ := Sheet()
	if a != b {
		t.Error("Sheet() should return the same family on every call")
	}
}
