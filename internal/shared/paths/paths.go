package paths

import (
	"fmt"
	"strings"

	apperrors "sheltercms/internal/shared/errors"
)

// Documents in the backing store are addressed by hierarchical paths:
//
//	{family}/{projectId}/sections/{sectionId}
//	{family}/{projectId}/sections/{sectionId}/columns/{columnId}
//	{family}/{projectId}/{ownerId}/{sectionId}/records/{recordId}   (owner-scoped)
//	{family}/{projectId}/{sectionId}/records/{recordId}             (project-scoped)
//
// The path is stored on every document so existing data stays addressable even
// after its section definition is gone.

const (
	sectionsSegment = "sections"
	columnsSegment  = "columns"
	recordsSegment  = "records"
)

// SectionPath builds the document path for a section definition.
func SectionPath(family, projectID, sectionID string) string {
	return fmt.Sprintf("%s/%s/%s/%s", family, projectID, sectionsSegment, sectionID)
}

// ColumnPath builds the document path for a column definition.
func ColumnPath(family, projectID, sectionID, columnID string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s/%s", family, projectID, sectionsSegment, sectionID, columnsSegment, columnID)
}

// RecordPath builds the document path for a record. The owner segment is
// omitted for project-scoped families.
func RecordPath(family, projectID, ownerID, sectionID, recordID string) string {
	if ownerID == "" {
		return fmt.Sprintf("%s/%s/%s/%s/%s", family, projectID, sectionID, recordsSegment, recordID)
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s/%s", family, projectID, ownerID, sectionID, recordsSegment, recordID)
}

// SectionRef identifies a section document parsed from a path.
type SectionRef struct {
	Family    string
	ProjectID string
	SectionID string
}

// ColumnRef identifies a column document parsed from a path.
type ColumnRef struct {
	Family    string
	ProjectID string
	SectionID string
	ColumnID  string
}

// RecordRef identifies a record document parsed from a path.
type RecordRef struct {
	Family    string
	ProjectID string
	OwnerID   string
	SectionID string
	RecordID  string
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// ParseSectionPath parses a section document path.
func ParseSectionPath(path string) (SectionRef, error) {
	parts := splitPath(path)
	if len(parts) != 4 || parts[2] != sectionsSegment {
		return SectionRef{}, fmt.Errorf("%w: %q is not a section path", apperrors.ErrInvalidInput, path)
	}
	return SectionRef{Family: parts[0], ProjectID: parts[1], SectionID: parts[3]}, nil
}

// ParseColumnPath parses a column document path.
func ParseColumnPath(path string) (ColumnRef, error) {
	parts := splitPath(path)
	if len(parts) != 6 || parts[2] != sectionsSegment || parts[4] != columnsSegment {
		return ColumnRef{}, fmt.Errorf("%w: %q is not a column path", apperrors.ErrInvalidInput, path)
	}
	return ColumnRef{Family: parts[0], ProjectID: parts[1], SectionID: parts[3], ColumnID: parts[5]}, nil
}

// ParseRecordPath parses a record document path. Owner-scoped and
// project-scoped shapes are distinguished by segment count.
func ParseRecordPath(path string) (RecordRef, error) {
	parts := splitPath(path)
	switch {
	case len(parts) == 5 && parts[3] == recordsSegment:
		return RecordRef{Family: parts[0], ProjectID: parts[1], SectionID: parts[2], RecordID: parts[4]}, nil
	case len(parts) == 6 && parts[4] == recordsSegment:
		return RecordRef{Family: parts[0], ProjectID: parts[1], OwnerID: parts[2], SectionID: parts[3], RecordID: parts[5]}, nil
	default:
		return RecordRef{}, fmt.Errorf("%w: %q is not a record path", apperrors.ErrInvalidInput, path)
	}
}
