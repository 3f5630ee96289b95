package usecase

import (
	"context"
	"fmt"
	"strings"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/schema/domain/repository"
	apperrors "sheltercms/internal/shared/errors"
	"sheltercms/internal/shared/logger"
)

// RecordUsecase defines the record store operations. Records are never
// validated for completeness against their section: any subset of column IDs
// may be present, and keys for columns deleted since the record was written
// are retained untouched.
type RecordUsecase interface {
	CreateRecord(ctx context.Context, req CreateRecordRequest) (*model.Record, error)
	UpdateRecord(ctx context.Context, req UpdateRecordRequest) (*model.Record, error)
	GetRecord(ctx context.Context, req GetRecordRequest) (*model.Record, error)
	ListRecords(ctx context.Context, req ListRecordsRequest) ([]*model.Record, error)
	DeleteRecord(ctx context.Context, req DeleteRecordRequest) error
}

type recordUsecase struct {
	records  repository.RecordRepository
	catalog  repository.CatalogRepository
	families *model.FamilyRegistry
	logger   logger.Logger
}

// NewRecordUsecase creates a new RecordUsecase. The catalog repository
// supplies the live column set used to type record values at the write
// boundary.
func NewRecordUsecase(
	records repository.RecordRepository,
	catalog repository.CatalogRepository,
	families *model.FamilyRegistry,
	log logger.Logger,
) RecordUsecase {
	return &recordUsecase{
		records:  records,
		catalog:  catalog,
		families: families,
		logger:   log.WithComponent("record-store"),
	}
}

func (uc *recordUsecase) CreateRecord(ctx context.Context, req CreateRecordRequest) (*model.Record, error) {
	if err := uc.checkOwnerScope(req.Family, req.OwnerID); err != nil {
		return nil, err
	}

	values, err := uc.coerceValues(ctx, req.Family, req.ProjectID, req.SectionID, req.Values)
	if err != nil {
		return nil, err
	}

	record := model.NewRecord(req.SectionID, req.OwnerID, values)
	if err := uc.records.CreateRecord(ctx, req.Family, req.ProjectID, record); err != nil {
		uc.logger.Error("Failed to create record", "sectionID", req.SectionID, "error", err)
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	uc.logger.Info("Record created", "family", req.Family, "sectionID", req.SectionID, "recordID", record.ID)
	return record, nil
}

func (uc *recordUsecase) UpdateRecord(ctx context.Context, req UpdateRecordRequest) (*model.Record, error) {
	if err := uc.checkOwnerScope(req.Family, req.OwnerID); err != nil {
		return nil, err
	}

	record, err := uc.records.GetRecord(ctx, req.Family, req.ProjectID, req.OwnerID, req.SectionID, req.RecordID)
	if err != nil {
		uc.logger.Error("Failed to load record for update", "recordID", req.RecordID, "error", err)
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	values, err := uc.coerceValues(ctx, req.Family, req.ProjectID, req.SectionID, req.Values)
	if err != nil {
		return nil, err
	}

	// The values map is replaced wholesale; nothing is re-validated against
	// columns deleted since the record was created.
	if err := uc.records.UpdateRecordValues(ctx, req.Family, req.ProjectID, req.OwnerID, req.SectionID, req.RecordID, values); err != nil {
		uc.logger.Error("Failed to update record", "recordID", req.RecordID, "error", err)
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	record.Values = values
	uc.logger.Info("Record updated", "family", req.Family, "recordID", req.RecordID)
	return record, nil
}

func (uc *recordUsecase) GetRecord(ctx context.Context, req GetRecordRequest) (*model.Record, error) {
	if err := uc.checkOwnerScope(req.Family, req.OwnerID); err != nil {
		return nil, err
	}

	record, err := uc.records.GetRecord(ctx, req.Family, req.ProjectID, req.OwnerID, req.SectionID, req.RecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return record, nil
}

func (uc *recordUsecase) ListRecords(ctx context.Context, req ListRecordsRequest) ([]*model.Record, error) {
	if err := uc.checkOwnerScope(req.Family, req.OwnerID); err != nil {
		return nil, err
	}

	records, err := uc.records.ListRecords(ctx, req.Family, req.ProjectID, req.OwnerID, req.SectionID)
	if err != nil {
		uc.logger.Error("Failed to list records", "sectionID", req.SectionID, "error", err)
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

func (uc *recordUsecase) DeleteRecord(ctx context.Context, req DeleteRecordRequest) error {
	if err := uc.checkOwnerScope(req.Family, req.OwnerID); err != nil {
		return err
	}

	if err := uc.records.DeleteRecord(ctx, req.Family, req.ProjectID, req.OwnerID, req.SectionID, req.RecordID); err != nil {
		uc.logger.Error("Failed to delete record", "recordID", req.RecordID, "error", err)
		return fmt.Errorf("failed to delete record: %w", err)
	}
	uc.logger.Info("Record deleted", "family", req.Family, "recordID", req.RecordID)
	return nil
}

// checkOwnerScope enforces the family's owner requirement: owner-scoped
// families need an owner ID, project-scoped ones must not carry one.
func (uc *recordUsecase) checkOwnerScope(family model.Family, ownerID string) error {
	policy, err := uc.families.Policy(family)
	if err != nil {
		return err
	}
	if policy.OwnerScoped && ownerID == "" {
		return apperrors.NewValidationError("owner ID is required for this record family").
			WithCause(apperrors.ErrOwnerRequired)
	}
	if !policy.OwnerScoped && ownerID != "" {
		return apperrors.NewValidationError("owner ID is not permitted for this record family").
			WithCause(apperrors.ErrOwnerNotPermitted)
	}
	return nil
}

// coerceValues types the raw submitted strings against the live column set.
// Blank entries become absent, keys matching a live column are coerced to its
// type, and unknown keys pass through as text. When the section definition is
// gone entirely (orphaned records), every key passes through as text.
func (uc *recordUsecase) coerceValues(ctx context.Context, family model.Family, projectID, sectionID string, raw map[string]string) (map[string]model.Value, error) {
	section, err := uc.catalog.GetSection(ctx, family, projectID, sectionID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("failed to load section: %w", err)
		}
		section = nil
	}

	values := make(map[string]model.Value, len(raw))
	for columnID, rawValue := range raw {
		if strings.TrimSpace(rawValue) == "" {
			continue
		}

		if section != nil {
			if col, ok := section.Column(columnID); ok {
				v, err := model.CoerceValue(col.Type, rawValue)
				if err != nil {
					return nil, apperrors.NewValidationError(fmt.Sprintf("invalid value for column %q", col.Name)).
						WithDetail("column", col.Name).WithCause(err)
				}
				values[columnID] = v
				continue
			}
		}
		values[columnID] = model.NewTextValue(rawValue)
	}
	return values, nil
}
