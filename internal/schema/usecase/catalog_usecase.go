package usecase

import (
	"context"
	"fmt"
	"strings"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/schema/domain/repository"
	apperrors "sheltercms/internal/shared/errors"
	"sheltercms/internal/shared/eventbus"
	"sheltercms/internal/shared/logger"
)

// CatalogUsecase defines the schema catalog operations: listing, saving and
// deleting section definitions, and reordering their columns.
type CatalogUsecase interface {
	ListSections(ctx context.Context, family model.Family, projectID string) ([]*model.SectionDefinition, error)
	GetSection(ctx context.Context, family model.Family, projectID, sectionID string) (*model.SectionDefinition, error)
	SaveSection(ctx context.Context, req SaveSectionRequest) (*model.SectionDefinition, error)
	DeleteSection(ctx context.Context, req DeleteSectionRequest) error
	SwapColumns(ctx context.Context, req SwapColumnsRequest) (*model.SectionDefinition, error)
}

type catalogUsecase struct {
	repo     repository.CatalogRepository
	families *model.FamilyRegistry
	cache    SectionCache
	bus      eventbus.EventBusInterface
	logger   logger.Logger
}

// NewCatalogUsecase creates a new CatalogUsecase. cache and bus may be nil.
func NewCatalogUsecase(
	repo repository.CatalogRepository,
	families *model.FamilyRegistry,
	cache SectionCache,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) CatalogUsecase {
	return &catalogUsecase{
		repo:     repo,
		families: families,
		cache:    cache,
		bus:      bus,
		logger:   log.WithComponent("schema-catalog"),
	}
}

func (uc *catalogUsecase) ListSections(ctx context.Context, family model.Family, projectID string) ([]*model.SectionDefinition, error) {
	if _, err := uc.families.Policy(family); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if sections, ok := uc.cache.Get(ctx, family, projectID); ok {
			return sections, nil
		}
	}

	sections, err := uc.repo.ListSections(ctx, family, projectID)
	if err != nil {
		uc.logger.Error("Failed to list sections", "family", family, "projectID", projectID, "error", err)
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, family, projectID, sections)
	}
	return sections, nil
}

func (uc *catalogUsecase) GetSection(ctx context.Context, family model.Family, projectID, sectionID string) (*model.SectionDefinition, error) {
	if _, err := uc.families.Policy(family); err != nil {
		return nil, err
	}

	section, err := uc.repo.GetSection(ctx, family, projectID, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	section.SortColumns()
	return section, nil
}

func (uc *catalogUsecase) SaveSection(ctx context.Context, req SaveSectionRequest) (*model.SectionDefinition, error) {
	policy, err := uc.families.Policy(req.Family)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("section name cannot be empty").
			WithCause(apperrors.ErrEmptySectionName)
	}

	columns := filterColumnInputs(req.Columns)
	if len(columns) == 0 {
		return nil, apperrors.NewValidationError("section must have at least one column with a name and type").
			WithCause(apperrors.ErrNoValidColumns)
	}

	if policy.UniqueSectionNames {
		if err := uc.checkNameUnique(ctx, req.Family, req.ProjectID, req.SectionID, name); err != nil {
			return nil, err
		}
	}

	var section *model.SectionDefinition
	if req.SectionID == "" {
		section, err = uc.createSection(ctx, req.Family, req.ProjectID, name, columns)
	} else {
		section, err = uc.updateSection(ctx, req.Family, req.ProjectID, req.SectionID, name, columns)
	}
	if err != nil {
		return nil, err
	}

	uc.notifyCatalogChanged(ctx, req.Family, req.ProjectID)
	uc.logger.Info("Section saved", "family", req.Family, "projectID", req.ProjectID, "sectionID", section.ID)
	return section, nil
}

func (uc *catalogUsecase) DeleteSection(ctx context.Context, req DeleteSectionRequest) error {
	policy, err := uc.families.Policy(req.Family)
	if err != nil {
		return err
	}

	if policy.CascadeSectionDelete {
		err = uc.repo.DeleteSectionTree(ctx, req.Family, req.ProjectID, req.SectionID)
	} else {
		// Columns and records under the section stay behind as orphans.
		err = uc.repo.DeleteSection(ctx, req.Family, req.ProjectID, req.SectionID)
	}
	if err != nil {
		uc.logger.Error("Failed to delete section", "sectionID", req.SectionID, "error", err)
		return fmt.Errorf("failed to delete section: %w", err)
	}

	uc.notifyCatalogChanged(ctx, req.Family, req.ProjectID)
	uc.logger.Info("Section deleted", "family", req.Family, "sectionID", req.SectionID, "cascade", policy.CascadeSectionDelete)
	return nil
}

func (uc *catalogUsecase) SwapColumns(ctx context.Context, req SwapColumnsRequest) (*model.SectionDefinition, error) {
	if _, err := uc.families.Policy(req.Family); err != nil {
		return nil, err
	}

	diff := req.IndexA - req.IndexB
	if diff != 1 && diff != -1 {
		return nil, apperrors.NewValidationError("only adjacent columns can be swapped").
			WithCause(apperrors.ErrNonAdjacentSwap)
	}

	section, err := uc.repo.GetSection(ctx, req.Family, req.ProjectID, req.SectionID)
	if err != nil {
		uc.logger.Error("Failed to load section for swap", "sectionID", req.SectionID, "error", err)
		return nil, fmt.Errorf("failed to load section: %w", err)
	}
	section.SortColumns()

	if req.IndexA < 0 || req.IndexB < 0 || req.IndexA >= len(section.Columns) || req.IndexB >= len(section.Columns) {
		return nil, apperrors.NewValidationError("column index out of range")
	}

	a := section.Columns[req.IndexA]
	b := section.Columns[req.IndexB]
	a.OrderKey, b.OrderKey = b.OrderKey, a.OrderKey

	// Both columns are persisted in one store transaction; a failure between
	// the two writes cannot leave them with duplicate or inverted keys.
	if err := uc.repo.SwapColumnOrder(ctx, req.Family, req.ProjectID, a, b); err != nil {
		uc.logger.Error("Failed to swap columns", "sectionID", req.SectionID, "error", err)
		return nil, fmt.Errorf("failed to swap columns: %w", err)
	}

	section.Columns[req.IndexA] = a
	section.Columns[req.IndexB] = b
	section.SortColumns()

	uc.notifyCatalogChanged(ctx, req.Family, req.ProjectID)
	uc.logger.Info("Columns swapped", "sectionID", req.SectionID, "indexA", req.IndexA, "indexB", req.IndexB)
	return section, nil
}

// filterColumnInputs drops columns whose name or type is empty, preserving
// input order for the survivors.
func filterColumnInputs(inputs []ColumnInput) []ColumnInput {
	out := make([]ColumnInput, 0, len(inputs))
	for _, in := range inputs {
		in.Name = strings.TrimSpace(in.Name)
		if in.Name == "" || !in.Type.Valid() {
			continue
		}
		out = append(out, in)
	}
	return out
}

func (uc *catalogUsecase) checkNameUnique(ctx context.Context, family model.Family, projectID, excludeID, name string) error {
	sections, err := uc.repo.ListSections(ctx, family, projectID)
	if err != nil {
		return fmt.Errorf("failed to check section names: %w", err)
	}
	for _, s := range sections {
		if s.ID != excludeID && s.HasName(name) {
			return apperrors.NewDuplicateNameError(name)
		}
	}
	return nil
}

func (uc *catalogUsecase) createSection(ctx context.Context, family model.Family, projectID, name string, columns []ColumnInput) (*model.SectionDefinition, error) {
	section := model.NewSectionDefinition(projectID, name)

	ranks := model.SequentialRanks(len(columns))
	for i, in := range columns {
		section.Columns = append(section.Columns, model.NewColumnDefinition(section.ID, in.Name, in.Type, ranks[i]))
	}

	if err := uc.repo.PutSection(ctx, family, projectID, section); err != nil {
		return nil, fmt.Errorf("failed to save section: %w", err)
	}
	for _, col := range section.Columns {
		if err := uc.repo.PutColumn(ctx, family, projectID, col); err != nil {
			return nil, fmt.Errorf("failed to save column %q: %w", col.Name, err)
		}
	}
	return section, nil
}

// updateSection reconciles the submitted columns against the stored ones:
// matched IDs are renamed/retyped in place keeping their order key, inputs
// without a known ID become new columns ranked after the last, and stored
// columns absent from the input are deleted. Deleting a column never touches
// record values already stored under its ID.
func (uc *catalogUsecase) updateSection(ctx context.Context, family model.Family, projectID, sectionID, name string, columns []ColumnInput) (*model.SectionDefinition, error) {
	section, err := uc.repo.GetSection(ctx, family, projectID, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load section: %w", err)
	}
	section.SortColumns()

	section.Name = name
	if err := uc.repo.PutSection(ctx, family, projectID, section); err != nil {
		return nil, fmt.Errorf("failed to save section: %w", err)
	}

	existing := make(map[string]model.ColumnDefinition, len(section.Columns))
	lastRank := ""
	for _, col := range section.Columns {
		existing[col.ID] = col
		if col.OrderKey > lastRank {
			lastRank = col.OrderKey
		}
	}

	kept := make(map[string]bool, len(columns))
	result := make([]model.ColumnDefinition, 0, len(columns))
	for _, in := range columns {
		if col, ok := existing[in.ID]; in.ID != "" && ok {
			col.Name = in.Name
			col.Type = in.Type
			if err := uc.repo.PutColumn(ctx, family, projectID, col); err != nil {
				return nil, fmt.Errorf("failed to save column %q: %w", col.Name, err)
			}
			kept[col.ID] = true
			result = append(result, col)
			continue
		}

		rank, err := model.RankAfter(lastRank)
		if err != nil {
			rank = model.InitialRank()
		}
		lastRank = rank
		col := model.NewColumnDefinition(section.ID, in.Name, in.Type, rank)
		if err := uc.repo.PutColumn(ctx, family, projectID, col); err != nil {
			return nil, fmt.Errorf("failed to save column %q: %w", col.Name, err)
		}
		kept[col.ID] = true
		result = append(result, col)
	}

	for id := range existing {
		if !kept[id] {
			if err := uc.repo.DeleteColumn(ctx, family, projectID, sectionID, id); err != nil {
				return nil, fmt.Errorf("failed to delete column: %w", err)
			}
		}
	}

	section.Columns = result
	section.SortColumns()
	return section, nil
}

func (uc *catalogUsecase) notifyCatalogChanged(ctx context.Context, family model.Family, projectID string) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, family, projectID)
	}
	if uc.bus != nil {
		uc.bus.PublishAndForget(ctx, eventbus.NewBaseEvent(EventCatalogChanged, "schema-catalog", CatalogChange{
			Family:    family,
			ProjectID: projectID,
		}))
	}
}
