package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "sheltercms/internal/shared/errors"
)

// DateLayout is the wire and form layout for date values.
const DateLayout = "2006-01-02"

// Value is a tagged union for record cell values. Only the field matching
// Kind is meaningful. Values written under a column that no longer exists
// keep their original kind.
type Value struct {
	Kind   ColumnType
	Text   string
	Number float64
	Date   time.Time
}

// NewTextValue builds a text value.
func NewTextValue(s string) Value {
	return Value{Kind: ColumnTypeText, Text: s}
}

// NewNumberValue builds a number value.
func NewNumberValue(f float64) Value {
	return Value{Kind: ColumnTypeNumber, Number: f}
}

// NewDateValue builds a date value, truncated to the day.
func NewDateValue(t time.Time) Value {
	return Value{Kind: ColumnTypeDate, Date: t.UTC().Truncate(24 * time.Hour)}
}

// CoerceValue converts a raw form/API string into a Value of the column's
// type. Blank input must be filtered out by the caller; it is never an
// explicit null here.
func CoerceValue(columnType ColumnType, raw string) (Value, error) {
	switch columnType {
	case ColumnTypeText:
		return NewTextValue(raw), nil
	case ColumnTypeNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidInput, raw)
		}
		return NewNumberValue(f), nil
	case ColumnTypeDate:
		t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a date (want %s)", apperrors.ErrInvalidInput, raw, DateLayout)
		}
		return NewDateValue(t), nil
	default:
		return Value{}, fmt.Errorf("%w: unknown column type %q", apperrors.ErrInvalidInput, columnType)
	}
}

// DisplayString renders the value the way a form input prefills it.
func (v Value) DisplayString() string {
	switch v.Kind {
	case ColumnTypeText:
		return v.Text
	case ColumnTypeNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ColumnTypeDate:
		return v.Date.Format(DateLayout)
	}
	return ""
}

// valueJSON is the tagged wire shape, mirroring the store's field-value
// encoding: exactly one of the pointers is set.
type valueJSON struct {
	Text   *string  `json:"textValue,omitempty"`
	Number *float64 `json:"numberValue,omitempty"`
	Date   *string  `json:"dateValue,omitempty"`
}

// MarshalJSON encodes the value in its tagged wire shape.
func (v Value) MarshalJSON() ([]byte, error) {
	var out valueJSON
	switch v.Kind {
	case ColumnTypeText:
		out.Text = &v.Text
	case ColumnTypeNumber:
		out.Number = &v.Number
	case ColumnTypeDate:
		d := v.Date.Format(DateLayout)
		out.Date = &d
	default:
		return nil, fmt.Errorf("%w: cannot marshal value of kind %q", apperrors.ErrInvalidInput, v.Kind)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a value from its tagged wire shape.
func (v *Value) UnmarshalJSON(data []byte) error {
	var in valueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch {
	case in.Text != nil:
		*v = NewTextValue(*in.Text)
	case in.Number != nil:
		*v = NewNumberValue(*in.Number)
	case in.Date != nil:
		t, err := time.Parse(DateLayout, *in.Date)
		if err != nil {
			return fmt.Errorf("%w: bad dateValue %q", apperrors.ErrInvalidInput, *in.Date)
		}
		*v = NewDateValue(t)
	default:
		return fmt.Errorf("%w: value has no recognized tag", apperrors.ErrInvalidInput)
	}
	return nil
}
