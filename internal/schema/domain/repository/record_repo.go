package repository

import (
	"context"

	"sheltercms/internal/schema/domain/model"
)

// RecordRepository persists records against the backing document store.
// Records reference their section only by ID; the section definition may have
// been deleted, and values may reference columns that no longer exist. The
// repository never validates either.
type RecordRepository interface {
	// CreateRecord writes a new record document.
	CreateRecord(ctx context.Context, family model.Family, projectID string, record *model.Record) error

	// GetRecord returns one record by ID.
	GetRecord(ctx context.Context, family model.Family, projectID, ownerID, sectionID, recordID string) (*model.Record, error)

	// UpdateRecordValues replaces the record's values map wholesale.
	UpdateRecordValues(ctx context.Context, family model.Family, projectID, ownerID, sectionID, recordID string, values map[string]model.Value) error

	// ListRecords returns all records for a section (and owner, when the
	// family is owner-scoped). No ordering is defined.
	ListRecords(ctx context.Context, family model.Family, projectID, ownerID, sectionID string) ([]*model.Record, error)

	// DeleteRecord removes one record document.
	DeleteRecord(ctx context.Context, family model.Family, projectID, ownerID, sectionID, recordID string) error
}
