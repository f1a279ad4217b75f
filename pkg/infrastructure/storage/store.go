// Package storage keeps the documents attached to site records, such as the
// signed PDF of a monthly checklist.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound is returned when a document key does not exist
var ErrNotFound = errors.New("document not found")

// DocumentStore stores binary documents by key
type DocumentStore interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// URL returns a link the document can be downloaded from
	URL(ctx context.Context, key string) (string, error)
}

// ChecklistKey builds the object key of a checklist document
func ChecklistKey(siteID, checklistID, fileName string) (string, error) {
	siteID = strings.TrimSpace(siteID)
	checklistID = strings.TrimSpace(checklistID)
	if siteID == "" || checklistID == "" {
		return "", fmt.Errorf("site id and checklist id are required")
	}
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" {
		ext = ".pdf"
	}
	return "checklists/" + siteID + "/" + checklistID + ext, nil
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", fmt.Errorf("key is required")
	}
	return key, nil
}
