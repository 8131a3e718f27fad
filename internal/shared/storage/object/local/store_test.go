package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"fitsynth-backend/internal/shared/storage/object"
)

func TestPutOpenDelete(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	n, err := store.Put(ctx, "exports/abc/p1.xlsx", object.ContentTypeXLSX, bytes.NewReader([]byte("hello")))
	if err != nil || n != 5 {
		t.Fatalf("Put = %d, %v", n, err)
	}
	// Overwrite in place.
	if _, err := store.Put(ctx, "exports/abc/p1.xlsx", object.ContentTypeXLSX, bytes.NewReader([]byte("world!"))); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}

	rc, err := store.Open(ctx, "exports/abc/p1.xlsx")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "world!" {
		t.Fatalf("unexpected content %q", data)
	}

	if err := store.Delete(ctx, "exports/abc/p1.xlsx"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "exports/abc/p1.xlsx"); err != nil {
		t.Fatalf("Delete missing should be a no-op: %v", err)
	}
	if _, err := store.Open(ctx, "exports/abc/p1.xlsx"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../escape", "/abs/path", ""} {
		if _, err := store.Put(context.Background(), key, "", bytes.NewReader(nil)); err == nil {
			t.Fatalf("expected %q to be rejected", key)
		}
	}
}
