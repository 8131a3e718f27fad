package util

import "testing"

func TestOwnerKey(t *testing.T) {
	got := OwnerKey("guest:anonymous")
	if got != OwnerKey(" guest:anonymous ") {
		t.Fatalf("expected surrounding space to be ignored")
	}
	if got == OwnerKey("guest:other") {
		t.Fatalf("expected distinct owners to get distinct keys")
	}
	if len(got) != 24 {
		t.Fatalf("expected 24 hex characters, got %d", len(got))
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("key contains non-hex character: %c", ch)
		}
	}
}
