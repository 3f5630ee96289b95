package usecase_test

import (
	"context"
	"sync"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/schema/usecase"
	"sheltercms/internal/shared/logger"
)

// mockLogger discards everything.
type mockLogger struct{}

func (m *mockLogger) Debug(args ...interface{})                       {}
func (m *mockLogger) Info(args ...interface{})                        {}
func (m *mockLogger) Warn(args ...interface{})                        {}
func (m *mockLogger) Error(args ...interface{})                       {}
func (m *mockLogger) Fatal(args ...interface{})                       {}
func (m *mockLogger) Debugf(format string, args ...interface{})       {}
func (m *mockLogger) Infof(format string, args ...interface{})        {}
func (m *mockLogger) Warnf(format string, args ...interface{})        {}
func (m *mockLogger) Errorf(format string, args ...interface{})       {}
func (m *mockLogger) Fatalf(format string, args ...interface{})       {}
func (m *mockLogger) WithFields(map[string]interface{}) logger.Logger { return m }
func (m *mockLogger) WithContext(context.Context) logger.Logger       { return m }
func (m *mockLogger) WithComponent(string) logger.Logger              { return m }

// memoryCache is a SectionCache recording invalidations.
type memoryCache struct {
	mu            sync.Mutex
	entries       map[string][]*model.SectionDefinition
	invalidations int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]*model.SectionDefinition)}
}

func (c *memoryCache) key(family model.Family, projectID string) string {
	return string(family) + ":" + projectID
}

func (c *memoryCache) Get(ctx context.Context, family model.Family, projectID string) ([]*model.SectionDefinition, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sections, ok := c.entries[c.key(family, projectID)]
	return sections, ok
}

func (c *memoryCache) Set(ctx context.Context, family model.Family, projectID string, sections []*model.SectionDefinition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(family, projectID)] = sections
}

func (c *memoryCache) Invalidate(ctx context.Context, family model.Family, projectID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, c.key(family, projectID))
	c.invalidations++
}

// newTestEngine wires a catalog, record and form usecase over one fakeStore
// with the builtin family policies.
func newTestEngine(store *fakeStore) (usecase.CatalogUsecase, usecase.RecordUsecase, usecase.FormUsecase) {
	families := model.NewFamilyRegistry()
	log := &mockLogger{}
	catalog := usecase.NewCatalogUsecase(store, families, nil, nil, log)
	records := usecase.NewRecordUsecase(store, store, families, log)
	forms := usecase.NewFormUsecase(store, records, log)
	return catalog, records, forms
}

// columnIDsInOrder returns the section's column IDs in display order.
func columnIDsInOrder(s *model.SectionDefinition) []string {
	ids := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		ids = append(ids, c.ID)
	}
	return ids
}

// columnNamesInOrder returns the section's column names in display order.
func columnNamesInOrder(s *model.SectionDefinition) []string {
	names := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		names = append(names, c.Name)
	}
	return names
}
