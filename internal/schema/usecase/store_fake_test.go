package usecase_test

import (
	"context"
	"fmt"
	"sync"

	"sheltercms/internal/schema/domain/model"
	apperrors "sheltercms/internal/shared/errors"
)

// fakeStore is a stateful in-memory implementation of both repositories,
// faithful to the store semantics the usecases depend on: non-cascading
// section deletes leave columns and records behind, and record values are
// stored verbatim with no validation against the column set.
type fakeStore struct {
	mu       sync.Mutex
	sections map[string]model.SectionDefinition // key: family/project/sectionID
	columns  map[string]model.ColumnDefinition  // key: family/project/columnID
	records  map[string]model.Record            // key: family/project/recordID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sections: make(map[string]model.SectionDefinition),
		columns:  make(map[string]model.ColumnDefinition),
		records:  make(map[string]model.Record),
	}
}

func fakeKey(family model.Family, projectID, id string) string {
	return fmt.Sprintf("%s/%s/%s", family, projectID, id)
}

// CatalogRepository implementation

func (f *fakeStore) ListSections(ctx context.Context, family model.Family, projectID string) ([]*model.SectionDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.SectionDefinition
	for key, s := range f.sections {
		if key == fakeKey(family, projectID, s.ID) {
			out = append(out, f.assembleLocked(family, projectID, s))
		}
	}
	model.SortSections(out)
	return out, nil
}

func (f *fakeStore) GetSection(ctx context.Context, family model.Family, projectID, sectionID string) (*model.SectionDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sections[fakeKey(family, projectID, sectionID)]
	if !ok {
		return nil, fmt.Errorf("get section: %w", apperrors.ErrSectionNotFound)
	}
	return f.assembleLocked(family, projectID, s), nil
}

// assembleLocked copies the section and attaches its sorted columns.
func (f *fakeStore) assembleLocked(family model.Family, projectID string, s model.SectionDefinition) *model.SectionDefinition {
	out := s
	out.Columns = nil
	for key, c := range f.columns {
		if c.SectionID == s.ID && key == fakeKey(family, projectID, c.ID) {
			out.Columns = append(out.Columns, c)
		}
	}
	out.SortColumns()
	return &out
}

func (f *fakeStore) PutSection(ctx context.Context, family model.Family, projectID string, section *model.SectionDefinition) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := *section
	stored.Columns = nil
	f.sections[fakeKey(family, projectID, section.ID)] = stored
	return nil
}

func (f *fakeStore) DeleteSection(ctx context.Context, family model.Family, projectID, sectionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Single-document delete: columns and records stay behind.
	delete(f.sections, fakeKey(family, projectID, sectionID))
	return nil
}

func (f *fakeStore) DeleteSectionTree(ctx context.Context, family model.Family, projectID, sectionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.sections, fakeKey(family, projectID, sectionID))
	for key, c := range f.columns {
		if c.SectionID == sectionID && key == fakeKey(family, projectID, c.ID) {
			delete(f.columns, key)
		}
	}
	for key, r := range f.records {
		if r.SectionID == sectionID && key == fakeKey(family, projectID, r.ID) {
			delete(f.records, key)
		}
	}
	return nil
}

func (f *fakeStore) PutColumn(ctx context.Context, family model.Family, projectID string, column model.ColumnDefinition) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.columns[fakeKey(family, projectID, column.ID)] = column
	return nil
}

func (f *fakeStore) DeleteColumn(ctx context.Context, family model.Family, projectID, sectionID, columnID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.columns, fakeKey(family, projectID, columnID))
	return nil
}

func (f *fakeStore) SwapColumnOrder(ctx context.Context, family model.Family, projectID string, a, b model.ColumnDefinition) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Both writes land together, mirroring the transactional contract.
	f.columns[fakeKey(family, projectID, a.ID)] = a
	f.columns[fakeKey(family, projectID, b.ID)] = b
	return nil
}

// RecordRepository implementation

func (f *fakeStore) CreateRecord(ctx context.Context, family model.Family, projectID string, record *model.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.records[fakeKey(family, projectID, record.ID)] = cloneRecord(*record)
	return nil
}

func (f *fakeStore) GetRecord(ctx context.Context, family model.Family, projectID, ownerID, sectionID, recordID string) (*model.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.records[fakeKey(family, projectID, recordID)]
	if !ok || r.SectionID != sectionID || r.OwnerID != ownerID {
		return nil, fmt.Errorf("get record: %w", apperrors.ErrRecordNotFound)
	}
	out := cloneRecord(r)
	return &out, nil
}

func (f *fakeStore) UpdateRecordValues(ctx context.Context, family model.Family, projectID, ownerID, sectionID, recordID string, values map[string]model.Value) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := fakeKey(family, projectID, recordID)
	r, ok := f.records[key]
	if !ok {
		return fmt.Errorf("update record: %w", apperrors.ErrRecordNotFound)
	}
	r.Values = make(map[string]model.Value, len(values))
	for k, v := range values {
		r.Values[k] = v
	}
	f.records[key] = r
	return nil
}

func (f *fakeStore) ListRecords(ctx context.Context, family model.Family, projectID, ownerID, sectionID string) ([]*model.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Record
	for key, r := range f.records {
		if key == fakeKey(family, projectID, r.ID) && r.SectionID == sectionID && r.OwnerID == ownerID {
			c := cloneRecord(r)
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteRecord(ctx context.Context, family model.Family, projectID, ownerID, sectionID, recordID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.records, fakeKey(family, projectID, recordID))
	return nil
}

// rawRecord returns the stored record by direct ID, bypassing the section and
// owner filters, the way a direct document read would.
func (f *fakeStore) rawRecord(family model.Family, projectID, recordID string) (model.Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.records[fakeKey(family, projectID, recordID)]
	return r, ok
}

// rawColumn returns the stored column by direct ID.
func (f *fakeStore) rawColumn(family model.Family, projectID, columnID string) (model.ColumnDefinition, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.columns[fakeKey(family, projectID, columnID)]
	return c, ok
}

func cloneRecord(r model.Record) model.Record {
	out := r
	out.Values = make(map[string]model.Value, len(r.Values))
	for k, v := range r.Values {
		out.Values[k] = v
	}
	return out
}
