package usecase

import (
	"context"

	"sheltercms/internal/schema/domain/model"
)

// Request/Response DTOs - Centralized type definitions

// ColumnInput is one column as submitted by the section editor. ID is set
// for columns that already exist; new columns leave it empty.
type ColumnInput struct {
	ID   string           `json:"id,omitempty"`
	Name string           `json:"name"`
	Type model.ColumnType `json:"type"`
}

// Section operations

type SaveSectionRequest struct {
	Family    model.Family  `json:"family"`
	ProjectID string        `json:"projectId"`
	SectionID string        `json:"sectionId,omitempty"` // empty creates a new section
	Name      string        `json:"name"`
	Columns   []ColumnInput `json:"columns"`
}

type DeleteSectionRequest struct {
	Family    model.Family `json:"family"`
	ProjectID string       `json:"projectId"`
	SectionID string       `json:"sectionId"`
}

type SwapColumnsRequest struct {
	Family    model.Family `json:"family"`
	ProjectID string       `json:"projectId"`
	SectionID string       `json:"sectionId"`
	IndexA    int          `json:"indexA"`
	IndexB    int          `json:"indexB"`
}

// Record operations. Values arrive as raw strings keyed by column ID, the
// way form inputs submit them; blank entries are treated as absent.

type CreateRecordRequest struct {
	Family    model.Family      `json:"family"`
	ProjectID string            `json:"projectId"`
	OwnerID   string            `json:"ownerId,omitempty"`
	SectionID string            `json:"sectionId"`
	Values    map[string]string `json:"values"`
}

type UpdateRecordRequest struct {
	Family    model.Family      `json:"family"`
	ProjectID string            `json:"projectId"`
	OwnerID   string            `json:"ownerId,omitempty"`
	SectionID string            `json:"sectionId"`
	RecordID  string            `json:"recordId"`
	Values    map[string]string `json:"values"`
}

type GetRecordRequest struct {
	Family    model.Family `json:"family"`
	ProjectID string       `json:"projectId"`
	OwnerID   string       `json:"ownerId,omitempty"`
	SectionID string       `json:"sectionId"`
	RecordID  string       `json:"recordId"`
}

type ListRecordsRequest struct {
	Family    model.Family `json:"family"`
	ProjectID string       `json:"projectId"`
	OwnerID   string       `json:"ownerId,omitempty"`
	SectionID string       `json:"sectionId"`
}

type DeleteRecordRequest struct {
	Family    model.Family `json:"family"`
	ProjectID string       `json:"projectId"`
	OwnerID   string       `json:"ownerId,omitempty"`
	SectionID string       `json:"sectionId"`
	RecordID  string       `json:"recordId"`
}

// Form operations

type BuildFormRequest struct {
	Family    model.Family `json:"family"`
	ProjectID string       `json:"projectId"`
	OwnerID   string       `json:"ownerId,omitempty"`
	SectionID string       `json:"sectionId"`
	RecordID  string       `json:"recordId,omitempty"` // set when editing
}

type SubmitFormRequest struct {
	Family    model.Family      `json:"family"`
	ProjectID string            `json:"projectId"`
	OwnerID   string            `json:"ownerId,omitempty"`
	SectionID string            `json:"sectionId"`
	RecordID  string            `json:"recordId,omitempty"` // empty creates a record
	Values    map[string]string `json:"values"`
}

// SectionCache caches per-project section lists. A nil cache is valid and
// disables caching.
type SectionCache interface {
	Get(ctx context.Context, family model.Family, projectID string) ([]*model.SectionDefinition, bool)
	Set(ctx context.Context, family model.Family, projectID string, sections []*model.SectionDefinition)
	Invalidate(ctx context.Context, family model.Family, projectID string)
}

// EventCatalogChanged is published after every successful section save or
// delete so catalog views can refresh.
const EventCatalogChanged = "catalog.changed"

// CatalogChange is the payload of EventCatalogChanged.
type CatalogChange struct {
	Family    model.Family `json:"family"`
	ProjectID string       `json:"projectId"`
}
