package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/schema/domain/repository"
	apperrors "sheltercms/internal/shared/errors"
	"sheltercms/internal/shared/logger"
	"sheltercms/internal/shared/paths"
)

// RecordRepository implements the record store using MongoDB. Records are
// plain documents keyed by their full path; nothing here consults the column
// catalog, so values for deleted columns survive untouched.
type RecordRepository struct {
	logger     logger.Logger
	recordsCol *mongo.Collection
}

// NewRecordRepository creates a new MongoDB-backed record repository.
func NewRecordRepository(db *mongo.Database, log logger.Logger) *RecordRepository {
	return &RecordRepository{
		logger:     log.WithComponent("record-repository"),
		recordsCol: db.Collection("records"),
	}
}

var _ repository.RecordRepository = (*RecordRepository)(nil)

// CreateRecord inserts the record document.
func (r *RecordRepository) CreateRecord(ctx context.Context, family model.Family, projectID string, record *model.Record) error {
	doc := newRecordDoc(family, projectID, record)
	if _, err := r.recordsCol.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to create record", "recordID", record.ID, "error", err)
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// GetRecord returns one record by path.
func (r *RecordRepository) GetRecord(ctx context.Context, family model.Family, projectID, ownerID, sectionID, recordID string) (*model.Record, error) {
	var doc recordDoc
	err := r.recordsCol.FindOne(ctx, bson.M{"_id": paths.RecordPath(string(family), projectID, ownerID, sectionID, recordID)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("record %s: %w", recordID, apperrors.ErrRecordNotFound)
	}
	if err != nil {
		r.logger.Error("Failed to get record", "recordID", recordID, "error", err)
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return doc.toModel(), nil
}

// UpdateRecordValues replaces the record's values wholesale.
func (r *RecordRepository) UpdateRecordValues(ctx context.Context, family model.Family, projectID, ownerID, sectionID, recordID string, values map[string]model.Value) error {
	filter := bson.M{"_id": paths.RecordPath(string(family), projectID, ownerID, sectionID, recordID)}
	update := bson.M{"$set": bson.M{"values": valueDocs(values)}}
	res, err := r.recordsCol.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error("Failed to update record", "recordID", recordID, "error", err)
		return fmt.Errorf("failed to update record: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("record %s: %w", recordID, apperrors.ErrRecordNotFound)
	}
	return nil
}

// ListRecords returns the records of one section scope. No ordering is
// applied; callers treat the result as a set.
func (r *RecordRepository) ListRecords(ctx context.Context, family model.Family, projectID, ownerID, sectionID string) ([]*model.Record, error) {
	filter := bson.M{
		"family":     string(family),
		"project_id": projectID,
		"section_id": sectionID,
	}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	} else {
		filter["owner_id"] = bson.M{"$in": bson.A{nil, ""}}
	}

	cursor, err := r.recordsCol.Find(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to list records", "sectionID", sectionID, "error", err)
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*model.Record
	for cursor.Next(ctx) {
		var doc recordDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		records = append(records, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error listing records: %w", err)
	}
	return records, nil
}

// DeleteRecord removes one record document.
func (r *RecordRepository) DeleteRecord(ctx context.Context, family model.Family, projectID, ownerID, sectionID, recordID string) error {
	_, err := r.recordsCol.DeleteOne(ctx, bson.M{"_id": paths.RecordPath(string(family), projectID, ownerID, sectionID, recordID)})
	if err != nil {
		r.logger.Error("Failed to delete record", "recordID", recordID, "error", err)
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
