package mongodb

import (
	"time"

	"sheltercms/internal/schema/domain/model"
	"sheltercms/internal/shared/paths"
)

// sectionDoc is the stored shape of a section definition. Columns live in
// their own collection; the section document only carries the header.
type sectionDoc struct {
	Path      string    `bson:"_id"`
	Family    string    `bson:"family"`
	ProjectID string    `bson:"project_id"`
	SectionID string    `bson:"section_id"`
	Name      string    `bson:"name"`
	OrderKey  time.Time `bson:"order_key"`
}

func newSectionDoc(family model.Family, projectID string, s *model.SectionDefinition) sectionDoc {
	return sectionDoc{
		Path:      paths.SectionPath(string(family), projectID, s.ID),
		Family:    string(family),
		ProjectID: projectID,
		SectionID: s.ID,
		Name:      s.Name,
		OrderKey:  s.OrderKey,
	}
}

func (d sectionDoc) toModel() *model.SectionDefinition {
	return &model.SectionDefinition{
		ID:        d.SectionID,
		ProjectID: d.ProjectID,
		Name:      d.Name,
		OrderKey:  d.OrderKey,
	}
}

// columnDoc is the stored shape of a column definition.
type columnDoc struct {
	Path      string `bson:"_id"`
	Family    string `bson:"family"`
	ProjectID string `bson:"project_id"`
	SectionID string `bson:"section_id"`
	ColumnID  string `bson:"column_id"`
	Name      string `bson:"name"`
	Type      string `bson:"type"`
	OrderKey  string `bson:"order_key"`
}

func newColumnDoc(family model.Family, projectID string, c model.ColumnDefinition) columnDoc {
	return columnDoc{
		Path:      paths.ColumnPath(string(family), projectID, c.SectionID, c.ID),
		Family:    string(family),
		ProjectID: projectID,
		SectionID: c.SectionID,
		ColumnID:  c.ID,
		Name:      c.Name,
		Type:      string(c.Type),
		OrderKey:  c.OrderKey,
	}
}

func (d columnDoc) toModel() model.ColumnDefinition {
	return model.ColumnDefinition{
		ID:        d.ColumnID,
		SectionID: d.SectionID,
		Name:      d.Name,
		Type:      model.ColumnType(d.Type),
		OrderKey:  d.OrderKey,
	}
}

// valueDoc stores a record value as a single-key union: exactly one of the
// three fields is set, named after the wire keys.
type valueDoc struct {
	Text   *string    `bson:"textValue,omitempty"`
	Number *float64   `bson:"numberValue,omitempty"`
	Date   *time.Time `bson:"dateValue,omitempty"`
}

func newValueDoc(v model.Value) valueDoc {
	switch v.Kind {
	case model.ColumnTypeNumber:
		n := v.Number
		return valueDoc{Number: &n}
	case model.ColumnTypeDate:
		d := v.Date
		return valueDoc{Date: &d}
	default:
		t := v.Text
		return valueDoc{Text: &t}
	}
}

func (d valueDoc) toModel() model.Value {
	switch {
	case d.Number != nil:
		return model.NewNumberValue(*d.Number)
	case d.Date != nil:
		return model.NewDateValue(*d.Date)
	case d.Text != nil:
		return model.NewTextValue(*d.Text)
	default:
		return model.NewTextValue("")
	}
}

// recordDoc is the stored shape of a record.
type recordDoc struct {
	Path      string              `bson:"_id"`
	Family    string              `bson:"family"`
	ProjectID string              `bson:"project_id"`
	OwnerID   string              `bson:"owner_id,omitempty"`
	SectionID string              `bson:"section_id"`
	RecordID  string              `bson:"record_id"`
	Values    map[string]valueDoc `bson:"values"`
	CreatedAt time.Time           `bson:"created_at"`
}

func newRecordDoc(family model.Family, projectID string, r *model.Record) recordDoc {
	values := make(map[string]valueDoc, len(r.Values))
	for k, v := range r.Values {
		values[k] = newValueDoc(v)
	}
	return recordDoc{
		Path:      paths.RecordPath(string(family), projectID, r.OwnerID, r.SectionID, r.ID),
		Family:    string(family),
		ProjectID: projectID,
		OwnerID:   r.OwnerID,
		SectionID: r.SectionID,
		RecordID:  r.ID,
		Values:    values,
		CreatedAt: r.CreatedAt,
	}
}

func (d recordDoc) toModel() *model.Record {
	values := make(map[string]model.Value, len(d.Values))
	for k, v := range d.Values {
		values[k] = v.toModel()
	}
	return &model.Record{
		ID:        d.RecordID,
		SectionID: d.SectionID,
		OwnerID:   d.OwnerID,
		Values:    values,
		CreatedAt: d.CreatedAt,
	}
}

func valueDocs(values map[string]model.Value) map[string]valueDoc {
	out := make(map[string]valueDoc, len(values))
	for k, v := range values {
		out[k] = newValueDoc(v)
	}
	return out
}
