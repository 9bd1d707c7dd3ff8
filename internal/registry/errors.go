package registry

import (
	"errors"
	"fmt"
)

// UnknownFacilityError is returned by Lookup when the facility identifier
// has no entry in the registry.
type UnknownFacilityError struct {
	FacilityID string
}

func (e *UnknownFacilityError) Error() string {
	return fmt.Sprintf("unknown facility %q: no timezone registered", e.FacilityID)
}

// IsUnknownFacility reports whether err is (or wraps) an UnknownFacilityError.
func IsUnknownFacility(err error) bool {
	var ue *UnknownFacilityError
	return errors.As(err, &ue)
}

// ValidationErrorCode categorizes registry validation failures.
type ValidationErrorCode string

const (
	// ErrCodeDuplicateFacility indicates two entries share a facility id.
	ErrCodeDuplicateFacility ValidationErrorCode = "DUPLICATE_FACILITY"

	// ErrCodeEmptyFacilityID indicates an entry has no facility id.
	ErrCodeEmptyFacilityID ValidationErrorCode = "EMPTY_FACILITY_ID"

	// ErrCodeEmptyZone indicates an entry has no IANA zone name.
	ErrCodeEmptyZone ValidationErrorCode = "EMPTY_ZONE"

	// ErrCodeSchema indicates a facility file violates the CUE schema.
	ErrCodeSchema ValidationErrorCode = "SCHEMA_VIOLATION"

	// ErrCodeUnsupportedFile indicates a facility file with an unknown extension.
	ErrCodeUnsupportedFile ValidationErrorCode = "UNSUPPORTED_FILE"
)

// ValidationError describes a registry that cannot be constructed.
type ValidationError struct {
	Code       ValidationErrorCode
	Message    string
	FacilityID string
	Source     string // file path when loaded from disk
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.FacilityID != "" {
		msg = fmt.Sprintf("%s (facility=%s)", msg, e.FacilityID)
	}
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	return msg
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
