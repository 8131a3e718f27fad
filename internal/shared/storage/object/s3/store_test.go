package s3

import "testing"

func TestNormalizePrefix(t *testing.T) {
	if got := normalizePrefix("  /fitsynth/plans/ "); got != "fitsynth/plans" {
		t.Fatalf("normalizePrefix = %q", got)
	}
}

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "exports/u/p1.xlsx", want: "exports/u/p1.xlsx"},
		{name: "simple prefix", prefix: "root", key: "exports/u/p1.xlsx", want: "root/exports/u/p1.xlsx"},
		{name: "prefix trailing slash", prefix: "root/", key: "exports/u/p1.xlsx", want: "root/exports/u/p1.xlsx"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/exports/u/p1.xlsx", want: "root/exports/u/p1.xlsx"},
		{name: "nested prefix", prefix: "root/sub", key: "exports/u/p1.xlsx", want: "root/sub/exports/u/p1.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
