// Package catalog wraps pkg/store's repositories with the semantic
// operations every other package calls instead of touching models directly:
// movie/episode file bookkeeping, monitor cascades, and the queries that
// drive automated search (missing, missing-and-available, with-files).
// Every state-changing operation appends an activity log entry in the same
// unit of work.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reelforge/reelforge/pkg/store"
)

// Catalog is the semantic layer over store.Store.
type Catalog struct {
	store store.Store
}

// New builds a Catalog backed by s.
func New(s store.Store) *Catalog {
	return &Catalog{store: s}
}

// logActivity JSON-encodes details and appends an activity
// row. Called from inside the same WithTx as the write it documents, so a
// logging failure aborts the whole operation rather than leaving an
// inconsistent record.
func (c *Catalog) logActivity(ctx context.Context, entityType string, entityID int64, eventType, message string, details any) error {
	encoded := "{}"
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("encode activity details: %w", err)
		}
		encoded = string(b)
	}

	return c.store.LogActivity(ctx, store.ActivityEntry{
		EntityType: entityType,
		EntityID:   entityID,
		EventType:  eventType,
		Message:    message,
		Details:    encoded,
	})
}
