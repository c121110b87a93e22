package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// StringList is an ordered list of strings persisted as a JSON-serialized
// text column. Consumers reading the store directly must replicate this
// encoding.
type StringList []string

// Scan implements the sql.Scanner interface for StringList
func (sl *StringList) Scan(value interface{}) error {
	if value == nil {
		*sl = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	if len(bytes) == 0 {
		*sl = StringList{}
		return nil
	}

	return json.Unmarshal(bytes, sl)
}

// Value implements the driver.Valuer interface for StringList
func (sl StringList) Value() (driver.Value, error) {
	if sl == nil {
		sl = StringList{}
	}
	data, err := json.Marshal(sl)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// GormDataType keeps the column a plain text column across dialects
func (StringList) GormDataType() string {
	return "text"
}

// Contains reports whether the list holds the given value
func (sl StringList) Contains(value string) bool {
	for _, item := range sl {
		if item == value {
			return true
		}
	}
	return false
}

// ContainsAny reports whether the list holds any of the given values
func (sl StringList) ContainsAny(values []string) bool {
	for _, v := range values {
		if sl.Contains(v) {
			return true
		}
	}
	return false
}

// Gender represents the influencer gender enum
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Genders lists the valid gender values
var Genders = []Gender{GenderMale, GenderFemale}

// IsValid reports whether the value is a member of the enum
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Sentinel errors surfaced by services and mapped to HTTP statuses by handlers
var (
	// ErrDuplicateName is returned when a unique name already exists
	ErrDuplicateName = errors.New("name already exists")
	// ErrInUse is returned when a referenced record cannot be deleted
	ErrInUse = errors.New("record is still referenced")
	// ErrUnsupportedFormat is returned for unknown export/import formats
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ValidationError carries field-level detail for malformed input
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a field-level validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
