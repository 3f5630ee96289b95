package model

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ColumnType enumerates the supported column value types.
type ColumnType string

const (
	ColumnTypeText   ColumnType = "text"
	ColumnTypeDate   ColumnType = "date"
	ColumnTypeNumber ColumnType = "number"
)

// Valid reports whether t is a known column type.
func (t ColumnType) Valid() bool {
	switch t {
	case ColumnTypeText, ColumnTypeDate, ColumnTypeNumber:
		return true
	}
	return false
}

// ColumnDefinition defines one named, typed field of a section's schema and
// its display position. OrderKey is a sortable rank string.
type ColumnDefinition struct {
	ID        string     `json:"id"`
	SectionID string     `json:"sectionId"`
	Name      string     `json:"name"`
	Type      ColumnType `json:"type"`
	OrderKey  string     `json:"orderKey"`
}

// SectionDefinition is one user-defined record type scoped to a project.
// Sections are listed ascending by OrderKey, which is the creation timestamp;
// sections themselves are never reordered.
type SectionDefinition struct {
	ID        string             `json:"id"`
	ProjectID string             `json:"projectId"`
	Name      string             `json:"name"`
	OrderKey  time.Time          `json:"orderKey"`
	Columns   []ColumnDefinition `json:"columns"`
}

// NewSectionDefinition creates a section with a fresh ID and creation-time
// order key.
func NewSectionDefinition(projectID, name string) *SectionDefinition {
	return &SectionDefinition{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      strings.TrimSpace(name),
		OrderKey:  time.Now().UTC(),
	}
}

// NewColumnDefinition creates a column with a fresh ID.
func NewColumnDefinition(sectionID, name string, columnType ColumnType, orderKey string) ColumnDefinition {
	return ColumnDefinition{
		ID:        uuid.NewString(),
		SectionID: sectionID,
		Name:      strings.TrimSpace(name),
		Type:      columnType,
		OrderKey:  orderKey,
	}
}

// SortColumns orders the section's columns ascending by OrderKey, with the
// column ID as a deterministic tie-break.
func (s *SectionDefinition) SortColumns() {
	sort.Slice(s.Columns, func(i, j int) bool {
		if s.Columns[i].OrderKey != s.Columns[j].OrderKey {
			return s.Columns[i].OrderKey < s.Columns[j].OrderKey
		}
		return s.Columns[i].ID < s.Columns[j].ID
	})
}

// Column returns the column with the given ID, if present.
func (s *SectionDefinition) Column(columnID string) (ColumnDefinition, bool) {
	for _, c := range s.Columns {
		if c.ID == columnID {
			return c, true
		}
	}
	return ColumnDefinition{}, false
}

// HasName reports whether the section's name matches case-insensitively.
func (s *SectionDefinition) HasName(name string) bool {
	return strings.EqualFold(s.Name, strings.TrimSpace(name))
}

// SortSections orders sections ascending by OrderKey, ID as tie-break.
func SortSections(sections []*SectionDefinition) {
	sort.Slice(sections, func(i, j int) bool {
		if !sections[i].OrderKey.Equal(sections[j].OrderKey) {
			return sections[i].OrderKey.Before(sections[j].OrderKey)
		}
		return sections[i].ID < sections[j].ID
	})
}
