package util

import (
	"errors"
	"testing"
)

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "fitsynth-plan-1.xlsx", want: "fitsynth-plan-1.xlsx"},
		{in: " a/b\\c.json ", want: "a_b_c.json"},
		{in: `plan "x";.xlsx`, want: "plan__x__.xlsx"},
		{in: "plán.xlsx", want: "pl_n.xlsx"},
		{in: "../etc/passwd", wantErr: true},
		{in: ".env", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SafeFileName(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsafeFileName) {
					t.Fatalf("SafeFileName(%q) expected ErrUnsafeFileName, got %v", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("SafeFileName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}
