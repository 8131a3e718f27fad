package object

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"fitsynth-backend/internal/shared/util"
)

// ErrNotFound is returned by Open when no object exists at the key.
var ErrNotFound = errors.New("object not found")

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeJSON = "application/json"
)

// ObjectStore saves and retrieves blobs by storage key. Keys are
// slash-separated and relative; implementations reject traversal.
type ObjectStore interface {
	Put(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}

// ExportKey is where a plan's workbook lives, namespaced by hashed owner.
func ExportKey(userID, planID string) (string, error) {
	name, err := util.SafeFileName(planID + ".xlsx")
	if err != nil {
		return "", fmt.Errorf("export key: %w", err)
	}
	return path.Join("exports", util.OwnerKey(userID), name), nil
}

// ArchiveKey is where retention writes a pruned plan, bucketed by creation month.
func ArchiveKey(planID string, createdAt time.Time) (string, error) {
	name, err := util.SafeFileName(planID + ".json")
	if err != nil {
		return "", fmt.Errorf("archive key: %w", err)
	}
	return path.Join("archive", createdAt.UTC().Format("2006/01"), name), nil
}
