package repository

import (
	"context"

	"sheltercms/internal/schema/domain/model"
)

// CatalogRepository persists section and column definitions against the
// backing document store. Implementations own the wire shape of the
// documents; ordering of returned lists follows each entity's order key.
type CatalogRepository interface {
	// ListSections returns a project's sections ascending by order key, each
	// with its columns loaded and sorted.
	ListSections(ctx context.Context, family model.Family, projectID string) ([]*model.SectionDefinition, error)

	// GetSection returns one section with its columns loaded and sorted.
	GetSection(ctx context.Context, family model.Family, projectID, sectionID string) (*model.SectionDefinition, error)

	// PutSection creates or replaces the section document itself. Columns are
	// managed through the column methods.
	PutSection(ctx context.Context, family model.Family, projectID string, section *model.SectionDefinition) error

	// DeleteSection removes only the section document. Columns and records
	// are left behind as orphans.
	DeleteSection(ctx context.Context, family model.Family, projectID, sectionID string) error

	// DeleteSectionTree removes the section, its columns, and its records in
	// one store transaction.
	DeleteSectionTree(ctx context.Context, family model.Family, projectID, sectionID string) error

	// PutColumn creates or replaces one column document.
	PutColumn(ctx context.Context, family model.Family, projectID string, column model.ColumnDefinition) error

	// DeleteColumn removes one column document. Record values stored under
	// the column ID are untouched.
	DeleteColumn(ctx context.Context, family model.Family, projectID, sectionID, columnID string) error

	// SwapColumnOrder persists both columns with their order keys already
	// exchanged, inside one store transaction so a partial write cannot leave
	// the pair without a defined relative order.
	SwapColumnOrder(ctx context.Context, family model.Family, projectID string, a, b model.ColumnDefinition) error
}
