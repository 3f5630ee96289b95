package model

import (
	"time"

	"github.com/google/uuid"
)

// Record is one instance of data conforming to a section's columns. Values
// are keyed by column ID. The key set is not guaranteed to match the live
// column set: keys for deleted columns are retained (never purged), and
// columns added after creation are simply absent.
type Record struct {
	ID        string           `json:"id"`
	SectionID string           `json:"sectionId"`
	OwnerID   string           `json:"ownerId,omitempty"`
	Values    map[string]Value `json:"values"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewRecord creates a record with a fresh ID and creation timestamp.
func NewRecord(sectionID, ownerID string, values map[string]Value) *Record {
	if values == nil {
		values = make(map[string]Value)
	}
	return &Record{
		ID:        uuid.NewString(),
		SectionID: sectionID,
		OwnerID:   ownerID,
		Values:    values,
		CreatedAt: time.Now().UTC(),
	}
}

// Value returns the stored value for a column ID, if any.
func (r *Record) Value(columnID string) (Value, bool) {
	v, ok := r.Values[columnID]
	return v, ok
}
