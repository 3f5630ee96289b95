package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/schema/usecase"
	"sheltercms/internal/shared/logger"
)

// testLogger discards everything.
type testLogger struct{}

func (testLogger) Debug(args ...interface{})                       {}
func (testLogger) Info(args ...interface{})                        {}
func (testLogger) Warn(args ...interface{})                        {}
func (testLogger) Error(args ...interface{})                       {}
func (testLogger) Fatal(args ...interface{})                       {}
func (testLogger) Debugf(format string, args ...interface{})       {}
func (testLogger) Infof(format string, args ...interface{})        {}
func (testLogger) Warnf(format string, args ...interface{})        {}
func (testLogger) Errorf(format string, args ...interface{})       {}
func (testLogger) Fatalf(format string, args ...interface{})       {}
func (t testLogger) WithFields(map[string]interface{}) logger.Logger { return t }
func (t testLogger) WithContext(context.Context) logger.Logger       { return t }
func (t testLogger) WithComponent(string) logger.Logger              { return t }

// mockCatalogUC implements usecase.CatalogUsecase with function fields.
type mockCatalogUC struct {
	listSectionsFunc func(ctx context.Context, family model.Family, projectID string) ([]*model.SectionDefinition, error)
	getSectionFunc   func(ctx context.Context, family model.Family, projectID, sectionID string) (*model.SectionDefinition, error)
	saveSectionFunc  func(ctx context.Context, req usecase.SaveSectionRequest) (*model.SectionDefinition, error)
	deleteFunc       func(ctx context.Context, req usecase.DeleteSectionRequest) error
	swapFunc         func(ctx context.Context, req usecase.SwapColumnsRequest) (*model.SectionDefinition, error)
}

func (m *mockCatalogUC) ListSections(ctx context.Context, family model.Family, projectID string) ([]*model.SectionDefinition, error) {
	if m.listSectionsFunc != nil {
		return m.listSectionsFunc(ctx, family, projectID)
	}
	return nil, nil
}

func (m *mockCatalogUC) GetSection(ctx context.Context, family model.Family, projectID, sectionID string) (*model.SectionDefinition, error) {
	if m.getSectionFunc != nil {
		return m.getSectionFunc(ctx, family, projectID, sectionID)
	}
	return &model.SectionDefinition{ID: sectionID}, nil
}

func (m *mockCatalogUC) SaveSection(ctx context.Context, req usecase.SaveSectionRequest) (*model.SectionDefinition, error) {
	if m.saveSectionFunc != nil {
		return m.saveSectionFunc(ctx, req)
	}
	return &model.SectionDefinition{ID: "sec-1", Name: req.Name}, nil
}

func (m *mockCatalogUC) DeleteSection(ctx context.Context, req usecase.DeleteSectionRequest) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, req)
	}
	return nil
}

func (m *mockCatalogUC) SwapColumns(ctx context.Context, req usecase.SwapColumnsRequest) (*model.SectionDefinition, error) {
	if m.swapFunc != nil {
		return m.swapFunc(ctx, req)
	}
	return &model.SectionDefinition{ID: req.SectionID}, nil
}

// mockRecordUC implements usecase.RecordUsecase with function fields.
type mockRecordUC struct {
	createFunc func(ctx context.Context, req usecase.CreateRecordRequest) (*model.Record, error)
	getFunc    func(ctx context.Context, req usecase.GetRecordRequest) (*model.Record, error)
	updateFunc func(ctx context.Context, req usecase.UpdateRecordRequest) (*model.Record, error)
	listFunc   func(ctx context.Context, req usecase.ListRecordsRequest) ([]*model.Record, error)
	deleteFunc func(ctx context.Context, req usecase.DeleteRecordRequest) error
}

func (m *mockRecordUC) CreateRecord(ctx context.Context, req usecase.CreateRecordRequest) (*model.Record, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &model.Record{ID: "rec-1", SectionID: req.SectionID}, nil
}

func (m *mockRecordUC) GetRecord(ctx context.Context, req usecase.GetRecordRequest) (*model.Record, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, req)
	}
	return &model.Record{ID: req.RecordID, SectionID: req.SectionID}, nil
}

func (m *mockRecordUC) UpdateRecord(ctx context.Context, req usecase.UpdateRecordRequest) (*model.Record, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return &model.Record{ID: req.RecordID, SectionID: req.SectionID}, nil
}

func (m *mockRecordUC) ListRecords(ctx context.Context, req usecase.ListRecordsRequest) ([]*model.Record, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockRecordUC) DeleteRecord(ctx context.Context, req usecase.DeleteRecordRequest) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, req)
	}
	return nil
}

// mockFormUC implements usecase.FormUsecase with function fields.
type mockFormUC struct {
	buildFunc  func(ctx context.Context, req usecase.BuildFormRequest) (*usecase.FormView, error)
	submitFunc func(ctx context.Context, req usecase.SubmitFormRequest) (*model.Record, error)
}

func (m *mockFormUC) BuildForm(ctx context.Context, req usecase.BuildFormRequest) (*usecase.FormView, error) {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, req)
	}
	return &usecase.FormView{SectionID: req.SectionID}, nil
}

func (m *mockFormUC) SubmitForm(ctx context.Context, req usecase.SubmitFormRequest) (*model.Record, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, req)
	}
	return &model.Record{ID: "rec-1", SectionID: req.SectionID}, nil
}

// newTestApp wires the handler under /api/v1 the way the server does.
func newTestApp(catalog *mockCatalogUC, records *mockRecordUC, forms *mockFormUC) *fiber.App {
	app := fiber.New()
	h := &HTTPHandler{
		CatalogUC: catalog,
		RecordUC:  records,
		FormUC:    forms,
		Log:       testLogger{},
	}
	h.RegisterRoutes(app.Group("/api/v1"))
	return app
}
