package usecase

import (
	"context"
	"fmt"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/schema/domain/repository"
	"sheltercms/internal/shared/logger"
)

// Widget identifies the input control rendered for a column type.
type Widget string

const (
	WidgetTextInput   Widget = "text-input"
	WidgetDateInput   Widget = "date-input"
	WidgetNumberInput Widget = "number-input"
)

// WidgetForType maps a column type to its input widget.
func WidgetForType(t model.ColumnType) Widget {
	switch t {
	case model.ColumnTypeDate:
		return WidgetDateInput
	case model.ColumnTypeNumber:
		return WidgetNumberInput
	default:
		return WidgetTextInput
	}
}

// FormField is one rendered input of a record form.
type FormField struct {
	ColumnID string           `json:"columnId"`
	Label    string           `json:"label"`
	Type     model.ColumnType `json:"type"`
	Widget   Widget           `json:"widget"`
	Value    string           `json:"value"` // prefill, empty when blank
}

// FormView is the renderable description of a record entry form: one field
// per live column, in column order.
type FormView struct {
	SectionID   string      `json:"sectionId"`
	SectionName string      `json:"sectionName"`
	RecordID    string      `json:"recordId,omitempty"`
	Fields      []FormField `json:"fields"`
}

// FormUsecase builds record entry forms from the live section definition and
// turns submissions into record writes.
type FormUsecase interface {
	BuildForm(ctx context.Context, req BuildFormRequest) (*FormView, error)
	SubmitForm(ctx context.Context, req SubmitFormRequest) (*model.Record, error)
}

type formUsecase struct {
	catalog repository.CatalogRepository
	records RecordUsecase
	logger  logger.Logger
}

// NewFormUsecase creates a new FormUsecase.
func NewFormUsecase(catalog repository.CatalogRepository, records RecordUsecase, log logger.Logger) FormUsecase {
	return &formUsecase{
		catalog: catalog,
		records: records,
		logger:  log.WithComponent("record-form"),
	}
}

// BuildForm renders one field per live column. When editing, fields are
// prefilled from the record; columns the record has no value for render
// blank, and record keys without a live column are left out of the form (they
// stay in storage untouched).
func (uc *formUsecase) BuildForm(ctx context.Context, req BuildFormRequest) (*FormView, error) {
	section, err := uc.catalog.GetSection(ctx, req.Family, req.ProjectID, req.SectionID)
	if err != nil {
		uc.logger.Error("Failed to load section for form", "sectionID", req.SectionID, "error", err)
		return nil, fmt.Errorf("failed to load section: %w", err)
	}
	section.SortColumns()

	var record *model.Record
	if req.RecordID != "" {
		record, err = uc.records.GetRecord(ctx, GetRecordRequest{
			Family:    req.Family,
			ProjectID: req.ProjectID,
			OwnerID:   req.OwnerID,
			SectionID: req.SectionID,
			RecordID:  req.RecordID,
		})
		if err != nil {
			return nil, err
		}
	}

	view := &FormView{
		SectionID:   section.ID,
		SectionName: section.Name,
		Fields:      make([]FormField, 0, len(section.Columns)),
	}
	if record != nil {
		view.RecordID = record.ID
	}

	for _, col := range section.Columns {
		field := FormField{
			ColumnID: col.ID,
			Label:    col.Name,
			Type:     col.Type,
			Widget:   WidgetForType(col.Type),
		}
		if record != nil {
			if v, ok := record.Value(col.ID); ok {
				field.Value = v.DisplayString()
			}
		}
		view.Fields = append(view.Fields, field)
	}
	return view, nil
}

// SubmitForm persists a submission: a new record when RecordID is empty, a
// wholesale values replacement otherwise.
func (uc *formUsecase) SubmitForm(ctx context.Context, req SubmitFormRequest) (*model.Record, error) {
	if req.RecordID == "" {
		return uc.records.CreateRecord(ctx, CreateRecordRequest{
			Family:    req.Family,
			ProjectID: req.ProjectID,
			OwnerID:   req.OwnerID,
			SectionID: req.SectionID,
			Values:    req.Values,
		})
	}
	return uc.records.UpdateRecord(ctx, UpdateRecordRequest{
		Family:    req.Family,
		ProjectID: req.ProjectID,
		OwnerID:   req.OwnerID,
		SectionID: req.SectionID,
		RecordID:  req.RecordID,
		Values:    req.Values,
	})
}
