package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/schema/domain/repository"
	apperrors "sheltercms/internal/shared/errors"
	"sheltercms/internal/shared/logger"
	"sheltercms/internal/shared/paths"
)

// CatalogRepository implements the schema catalog repository using MongoDB.
// Sections and columns live in separate collections keyed by their full path,
// so a section delete never touches its columns unless the caller asks for
// the whole tree.
type CatalogRepository struct {
	db          *mongo.Database
	logger      logger.Logger
	sectionsCol *mongo.Collection
	columnsCol  *mongo.Collection
	recordsCol  *mongo.Collection
}

// NewCatalogRepository creates a new MongoDB-backed catalog repository.
func NewCatalogRepository(db *mongo.Database, log logger.Logger) *CatalogRepository {
	return &CatalogRepository{
		db:          db,
		logger:      log.WithComponent("catalog-repository"),
		sectionsCol: db.Collection("sections"),
		columnsCol:  db.Collection("columns"),
		recordsCol:  db.Collection("records"),
	}
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// EnsureIndexes creates the secondary indexes list and lookup queries rely on.
func (r *CatalogRepository) EnsureIndexes(ctx context.Context) error {
	scopeKeys := bson.D{{Key: "family", Value: 1}, {Key: "project_id", Value: 1}}
	if _, err := r.sectionsCol.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: scopeKeys}); err != nil {
		return fmt.Errorf("failed to create sections index: %w", err)
	}
	columnKeys := bson.D{
		{Key: "family", Value: 1},
		{Key: "project_id", Value: 1},
		{Key: "section_id", Value: 1},
		{Key: "order_key", Value: 1},
	}
	if _, err := r.columnsCol.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: columnKeys}); err != nil {
		return fmt.Errorf("failed to create columns index: %w", err)
	}
	recordKeys := bson.D{
		{Key: "family", Value: 1},
		{Key: "project_id", Value: 1},
		{Key: "owner_id", Value: 1},
		{Key: "section_id", Value: 1},
	}
	if _, err := r.recordsCol.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: recordKeys}); err != nil {
		return fmt.Errorf("failed to create records index: %w", err)
	}
	return nil
}

func scopeFilter(family model.Family, projectID string) bson.M {
	return bson.M{"family": string(family), "project_id": projectID}
}

// ListSections returns all sections of the scope with their columns attached,
// sections in display order.
func (r *CatalogRepository) ListSections(ctx context.Context, family model.Family, projectID string) ([]*model.SectionDefinition, error) {
	cursor, err := r.sectionsCol.Find(ctx, scopeFilter(family, projectID))
	if err != nil {
		r.logger.Error("Failed to list sections", "family", family, "projectID", projectID, "error", err)
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer cursor.Close(ctx)

	var sections []*model.SectionDefinition
	for cursor.Next(ctx) {
		var doc sectionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode section: %w", err)
		}
		section := doc.toModel()
		if err := r.attachColumns(ctx, family, projectID, section); err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error listing sections: %w", err)
	}
	model.SortSections(sections)
	return sections, nil
}

// GetSection returns one section with its columns in display order.
func (r *CatalogRepository) GetSection(ctx context.Context, family model.Family, projectID, sectionID string) (*model.SectionDefinition, error) {
	var doc sectionDoc
	err := r.sectionsCol.FindOne(ctx, bson.M{"_id": paths.SectionPath(string(family), projectID, sectionID)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("section %s: %w", sectionID, apperrors.ErrSectionNotFound)
	}
	if err != nil {
		r.logger.Error("Failed to get section", "sectionID", sectionID, "error", err)
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	section := doc.toModel()
	if err := r.attachColumns(ctx, family, projectID, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (r *CatalogRepository) attachColumns(ctx context.Context, family model.Family, projectID string, section *model.SectionDefinition) error {
	filter := scopeFilter(family, projectID)
	filter["section_id"] = section.ID
	opts := options.Find().SetSort(bson.D{{Key: "order_key", Value: 1}, {Key: "column_id", Value: 1}})
	cursor, err := r.columnsCol.Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("failed to list columns: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc columnDoc
		if err := cursor.Decode(&doc); err != nil {
			return fmt.Errorf("failed to decode column: %w", err)
		}
		section.Columns = append(section.Columns, doc.toModel())
	}
	return cursor.Err()
}

// PutSection upserts the section header. Columns are written individually
// through PutColumn.
func (r *CatalogRepository) PutSection(ctx context.Context, family model.Family, projectID string, section *model.SectionDefinition) error {
	doc := newSectionDoc(family, projectID, section)
	_, err := r.sectionsCol.ReplaceOne(ctx, bson.M{"_id": doc.Path}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		r.logger.Error("Failed to put section", "sectionID", section.ID, "error", err)
		return fmt.Errorf("failed to put section: %w", err)
	}
	return nil
}

// DeleteSection removes only the section header. Its columns and records
// remain in place as orphans.
func (r *CatalogRepository) DeleteSection(ctx context.Context, family model.Family, projectID, sectionID string) error {
	_, err := r.sectionsCol.DeleteOne(ctx, bson.M{"_id": paths.SectionPath(string(family), projectID, sectionID)})
	if err != nil {
		r.logger.Error("Failed to delete section", "sectionID", sectionID, "error", err)
		return fmt.Errorf("failed to delete section: %w", err)
	}
	return nil
}

// DeleteSectionTree removes the section, its columns and its records in one
// transaction.
func (r *CatalogRepository) DeleteSectionTree(ctx context.Context, family model.Family, projectID, sectionID string) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		r.logger.Error("Failed to start session", "error", err)
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	sectionFilter := scopeFilter(family, projectID)
	sectionFilter["section_id"] = sectionID

	err = mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(); err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}
		if _, err := r.sectionsCol.DeleteOne(sc, bson.M{"_id": paths.SectionPath(string(family), projectID, sectionID)}); err != nil {
			r.abort(sc, session)
			return fmt.Errorf("failed to delete section: %w", err)
		}
		if _, err := r.columnsCol.DeleteMany(sc, sectionFilter); err != nil {
			r.abort(sc, session)
			return fmt.Errorf("failed to delete columns: %w", err)
		}
		if _, err := r.recordsCol.DeleteMany(sc, sectionFilter); err != nil {
			r.abort(sc, session)
			return fmt.Errorf("failed to delete records: %w", err)
		}
		if err := session.CommitTransaction(sc); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Section tree delete failed", "sectionID", sectionID, "error", err)
		return err
	}
	return nil
}

// PutColumn upserts one column document.
func (r *CatalogRepository) PutColumn(ctx context.Context, family model.Family, projectID string, column model.ColumnDefinition) error {
	doc := newColumnDoc(family, projectID, column)
	_, err := r.columnsCol.ReplaceOne(ctx, bson.M{"_id": doc.Path}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		r.logger.Error("Failed to put column", "columnID", column.ID, "error", err)
		return fmt.Errorf("failed to put column: %w", err)
	}
	return nil
}

// DeleteColumn removes one column document. Record values keyed by the
// column stay behind.
func (r *CatalogRepository) DeleteColumn(ctx context.Context, family model.Family, projectID, sectionID, columnID string) error {
	_, err := r.columnsCol.DeleteOne(ctx, bson.M{"_id": paths.ColumnPath(string(family), projectID, sectionID, columnID)})
	if err != nil {
		r.logger.Error("Failed to delete column", "columnID", columnID, "error", err)
		return fmt.Errorf("failed to delete column: %w", err)
	}
	return nil
}

// SwapColumnOrder persists both columns, whose order keys the caller has
// already exchanged, inside one transaction so a reader never observes only
// half the swap.
func (r *CatalogRepository) SwapColumnOrder(ctx context.Context, family model.Family, projectID string, a, b model.ColumnDefinition) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		r.logger.Error("Failed to start session", "error", err)
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	err = mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(); err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}
		for _, col := range []model.ColumnDefinition{a, b} {
			doc := newColumnDoc(family, projectID, col)
			update := bson.M{"$set": bson.M{"order_key": doc.OrderKey}}
			res, err := r.columnsCol.UpdateOne(sc, bson.M{"_id": doc.Path}, update)
			if err != nil {
				r.abort(sc, session)
				return fmt.Errorf("failed to update column order: %w", err)
			}
			if res.MatchedCount == 0 {
				r.abort(sc, session)
				return fmt.Errorf("column %s: %w", col.ID, apperrors.ErrColumnNotFound)
			}
		}
		if err := session.CommitTransaction(sc); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Column swap failed", "columnA", a.ID, "columnB", b.ID, "error", err)
		return err
	}
	return nil
}

func (r *CatalogRepository) abort(sc mongo.SessionContext, session mongo.Session) {
	if err := session.AbortTransaction(sc); err != nil {
		r.logger.Error("Failed to abort transaction", "error", err)
	}
}
