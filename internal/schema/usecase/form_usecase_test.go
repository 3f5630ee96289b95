package usecase_test

import (
	"context"
	"testing"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/schema/usecase"
	apperrors "sheltercms/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFormWidgetMapping(t *testing.T) {
	store := newFakeStore()
	catalog, _, forms := newTestEngine(store)
	ctx := context.Background()

	section, err := catalog.SaveSection(ctx, usecase.SaveSectionRequest{
		Family: model.FamilyAdoption, ProjectID: "shelter-1", Name: "Intake",
		Columns: []usecase.ColumnInput{
			{Name: "Notes", Type: model.ColumnTypeText},
			{Name: "Arrival", Type: model.ColumnTypeDate},
			{Name: "Weight", Type: model.ColumnTypeNumber},
		},
	})
	require.NoError(t, err)

	view, err := forms.BuildForm(ctx, usecase.BuildFormRequest{
		Family: model.FamilyAdoption, ProjectID: "shelter-1", SectionID: section.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Intake", view.SectionName)
	assert.Empty(t, view.RecordID)
	require.Len(t, view.Fields, 3)

	assert.Equal(t, usecase.WidgetTextInput, view.Fields[0].Widget)
	assert.Equal(t, usecase.WidgetDateInput, view.Fields[1].Widget)
	assert.Equal(t, usecase.WidgetNumberInput, view.Fields[2].Widget)
	assert.Equal(t, "Notes", view.Fields[0].Label)
	for _, f := range view.Fields {
		assert.Empty(t, f.Value)
	}
}

func TestBuildFormPrefillAndBlanks(t *testing.T) {
	store := newFakeStore()
	catalog, records, forms := newTestEngine(store)
	ctx := context.Background()
	section := setupVaccinationSection(t, catalog)
	dateID, weightID := section.Columns[0].ID, section.Columns[1].ID

	rec, err := records.CreateRecord(ctx, usecase.CreateRecordRequest{
		Family: model.FamilyPetHealth, ProjectID: "clinic-1", OwnerID: "pet-7", SectionID: section.ID,
		Values: map[string]string{dateID: "2024-03-01"},
	})
	require.NoError(t, err)

	view, err := forms.BuildForm(ctx, usecase.BuildFormRequest{
		Family: model.FamilyPetHealth, ProjectID: "clinic-1", OwnerID: "pet-7",
		SectionID: section.ID, RecordID: rec.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, rec.ID, view.RecordID)
	require.Len(t, view.Fields, 2)
	assert.Equal(t, dateID, view.Fields[0].ColumnID)
	assert.Equal(t, "2024-03-01", view.Fields[0].Value)
	// Weight has no stored value; the field renders blank rather than erroring.
	assert.Equal(t, weightID, view.Fields[1].ColumnID)
	assert.Empty(t, view.Fields[1].Value)
}

func TestBuildFormOmitsOrphanValues(t *testing.T) {
	store := newFakeStore()
	catalog, records, forms := newTestEngine(store)
	ctx := context.Background()
	section := setupVaccinationSection(t, catalog)
	dateID, weightID := section.Columns[0].ID, section.Columns[1].ID

	rec, err := records.CreateRecord(ctx, usecase.CreateRecordRequest{
		Family: model.FamilyPetHealth, ProjectID: "clinic-1", OwnerID: "pet-7", SectionID: section.ID,
		Values: map[string]string{dateID: "2024-03-01", weightID: "4.2"},
	})
	require.NoError(t, err)

	// Drop the Weight column; its stored value becomes an orphan.
	_, err = catalog.SaveSection(ctx, usecase.SaveSectionRequest{
		Family: model.FamilyPetHealth, ProjectID: "clinic-1", SectionID: section.ID, Name: "Vaccination",
		Columns: []usecase.ColumnInput{{ID: dateID, Name: "Date", Type: model.ColumnTypeDate}},
	})
	require.NoError(t, err)

	view, err := forms.BuildForm(ctx, usecase.BuildFormRequest{
		Family: model.FamilyPetHealth, ProjectID: "clinic-1", OwnerID: "pet-7",
		SectionID: section.ID, RecordID: rec.ID,
	})
	require.NoError(t, err)

	// The orphaned value appears nowhere in the form but survives in storage.
	require.Len(t, view.Fields, 1)
	assert.Equal(t, dateID, view.Fields[0].ColumnID)

	stored, ok := store.rawRecord(model.FamilyPetHealth, "clinic-1", rec.ID)
	require.True(t, ok)
	_, ok = stored.Values[weightID]
	assert.True(t, ok)
}

func TestBuildFormMissingSection(t *testing.T) {
	store := newFakeStore()
	_, _, forms := newTestEngine(store)

	_, err := forms.BuildForm(context.Background(), usecase.BuildFormRequest{
		Family: model.FamilyAdoption, ProjectID: "shelter-1", SectionID: "nope",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSectionNotFound)
}

func TestSubmitFormCreateAndEdit(t *testing.T) {
	store := newFakeStore()
	catalog, records, forms := newTestEngine(store)
	ctx := context.Background()
	section := setupVaccinationSection(t, catalog)
	dateID, weightID := section.Columns[0].ID, section.Columns[1].ID

	created, err := forms.SubmitForm(ctx, usecase.SubmitFormRequest{
		Family: model.FamilyPetHealth, ProjectID: "clinic-1", OwnerID: "pet-7", SectionID: section.ID,
		Values: map[string]string{dateID: "2024-03-01", weightID: "4.2"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	edited, err := forms.SubmitForm(ctx, usecase.SubmitFormRequest{
		Family: model.FamilyPetHealth, ProjectID: "clinic-1", OwnerID: "pet-7",
		SectionID: section.ID, RecordID: created.ID,
		Values: map[string]string{dateID: "2024-03-01", weightID: "4.5"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, edited.ID)

	got, err := records.GetRecord(ctx, usecase.GetRecordRequest{
		Family: model.FamilyPetHealth, ProjectID: "clinic-1", OwnerID: "pet-7",
		SectionID: section.ID, RecordID: created.ID,
	})
	require.NoError(t, err)
	weight, ok := got.Value(weightID)
	require.True(t, ok)
	assert.Equal(t, 4.5, weight.Number)
}

// TestSwapReordersFormWithoutTouchingValues walks the full flow: define a
// section, file a record, swap the two columns, and re-render the edit form.
// The fields change places; the stored values do not move.
func TestSwapReordersFormWithoutTouchingValues(t *testing.T) {
	store := newFakeStore()
	catalog, records, forms := newTestEngine(store)
	ctx := context.Background()

	section, err := catalog.SaveSection(ctx, usecase.SaveSectionRequest{
		Family: model.FamilyAdoption, ProjectID: "shelter-1", Name: "Intake",
		Columns: []usecase.ColumnInput{
			{Name: "Date", Type: model.ColumnTypeText},
			{Name: "Weight", Type: model.ColumnTypeNumber},
		},
	})
	require.NoError(t, err)
	dateID, weightID := section.Columns[0].ID, section.Columns[1].ID

	rec, err := forms.SubmitForm(ctx, usecase.SubmitFormRequest{
		Family: model.FamilyAdoption, ProjectID: "shelter-1", SectionID: section.ID,
		Values: map[string]string{dateID: "yesterday", weightID: "4.2"},
	})
	require.NoError(t, err)
	before, ok := store.rawRecord(model.FamilyAdoption, "shelter-1", rec.ID)
	require.True(t, ok)

	_, err = catalog.SwapColumns(ctx, usecase.SwapColumnsRequest{
		Family: model.FamilyAdoption, ProjectID: "shelter-1", SectionID: section.ID,
		IndexA: 0, IndexB: 1,
	})
	require.NoError(t, err)

	view, err := forms.BuildForm(ctx, usecase.BuildFormRequest{
		Family: model.FamilyAdoption, ProjectID: "shelter-1",
		SectionID: section.ID, RecordID: rec.ID,
	})
	require.NoError(t, err)

	require.Len(t, view.Fields, 2)
	assert.Equal(t, weightID, view.Fields[0].ColumnID)
	assert.Equal(t, "4.2", view.Fields[0].Value)
	assert.Equal(t, dateID, view.Fields[1].ColumnID)
	assert.Equal(t, "yesterday", view.Fields[1].Value)

	after, ok := store.rawRecord(model.FamilyAdoption, "shelter-1", rec.ID)
	require.True(t, ok)
	assert.Equal(t, before.Values, after.Values)

	got, err := records.GetRecord(ctx, usecase.GetRecordRequest{
		Family: model.FamilyAdoption, ProjectID: "shelter-1",
		SectionID: section.ID, RecordID: rec.ID,
	})
	require.NoError(t, err)
	date, ok := got.Value(dateID)
	require.True(t, ok)
	assert.Equal(t, "yesterday", date.Text)
}
