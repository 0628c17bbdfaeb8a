package alfa

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrRange indicates a field value outside its documented bounds.
	ErrRange = errors.New("value out of range")

	// ErrChecksum indicates an MRZ check digit did not match its field.
	ErrChecksum = errors.New("check digit mismatch")

	// ErrFormat indicates malformed base45, C40, MRZ or header input.
	ErrFormat = errors.New("malformed input")

	// ErrTruncated indicates a zone or TLV ran past the end of the buffer.
	ErrTruncated = errors.New("truncated data")

	// ErrDuplicateFeature indicates a tag appeared twice in one message zone.
	ErrDuplicateFeature = errors.New("duplicate feature")

	// ErrMissingFeature indicates a required seal feature was absent.
	ErrMissingFeature = errors.New("missing feature")

	// ErrMissingEncryptor indicates a required encryptor was not registered.
	ErrMissingEncryptor = errors.New("missing encryptor")

	// ErrMissingMasker indicates a required masker was not registered.
	ErrMissingMasker = errors.New("missing masker")

	// ErrMissingHasher indicates an unknown fingerprint algorithm.
	ErrMissingHasher = errors.New("missing hasher")

	// ErrInvalidTag indicates a struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrEncrypt indicates encryption of a field failed.
	ErrEncrypt = errors.New("encrypt failed")

	// ErrDecrypt indicates decryption of a field failed.
	ErrDecrypt = errors.New("decrypt failed")
)

// RangeError reports a field value outside its documented bounds.
// It is raised by setters before any derivation or encoding runs.
type RangeError struct {
	Field  string // Field name, e.g. "durationOfStay"
	Value  string // Offending value as text
	Reason string
}

func (e *RangeError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *RangeError) Unwrap() error {
	return ErrRange
}

// ChecksumError reports an MRZ check digit that does not match the
// substring it protects.
type ChecksumError struct {
	Field    string // MRZ field the digit protects
	Input    string // Protected substring
	Expected int    // Digit computed from Input
	Actual   string // Digit found in the MRZ
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s check digit over %q: expected %d, got %q", e.Field, e.Input, e.Expected, e.Actual)
}

func (e *ChecksumError) Unwrap() error {
	return ErrChecksum
}

// FormatError reports malformed text or bytes handed to a codec.
type FormatError struct {
	Codec  string // "base45", "c40", "mrz", "header", ...
	Offset int    // Position of the failure, -1 when not applicable
	Reason string
}

func (e *FormatError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s at offset %d", e.Codec, e.Reason, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Codec, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// TruncatedDataError reports a length that runs past the end of a buffer.
type TruncatedDataError struct {
	Zone   string // "header", "message", "signature"
	Offset int
	Need   int
	Have   int
}

func (e *TruncatedDataError) Error() string {
	return fmt.Sprintf("%s zone truncated at offset %d: need %d bytes, have %d", e.Zone, e.Offset, e.Need, e.Have)
}

func (e *TruncatedDataError) Unwrap() error {
	return ErrTruncated
}

// DuplicateFeatureError reports a repeated tag in one message zone.
type DuplicateFeatureError struct {
	Tag Tag
}

func (e *DuplicateFeatureError) Error() string {
	return fmt.Sprintf("duplicate feature tag 0x%02X", byte(e.Tag))
}

func (e *DuplicateFeatureError) Unwrap() error {
	return ErrDuplicateFeature
}

// ConfigError represents a processor configuration error.
// It wraps a sentinel error with additional context about the field and algorithm.
type ConfigError struct {
	Err       error  // Underlying sentinel error (ErrMissingEncryptor, etc.)
	Field     string // Field name that triggered the error
	Algorithm string // Algorithm or type that was missing/invalid
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q (field %s)", e.Err.Error(), e.Algorithm, e.Field)
	}
	if e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q", e.Err.Error(), e.Algorithm)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransformError represents an error during record field transformation.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrEncrypt, ErrDecrypt)
	Field     string // Field name that failed
	Operation string // encrypt, decrypt
	Cause     error  // Original error from the underlying operation
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s field %s: %v", e.Operation, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s field %s", e.Operation, e.Field)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newRangeError(field, value, reason string) error {
	return &RangeError{Field: field, Value: value, Reason: reason}
}

func newFormatError(codec string, offset int, reason string) error {
	return &FormatError{Codec: codec, Offset: offset, Reason: reason}
}

func newTruncatedError(zone string, offset, need, have int) error {
	return &TruncatedDataError{Zone: zone, Offset: offset, Need: need, Have: have}
}

// newConfigError creates a ConfigError for missing handler scenarios.
func newConfigError(sentinel error, algorithm, field string) error {
	return &ConfigError{
		Err:       sentinel,
		Algorithm: algorithm,
		Field:     field,
	}
}

// newTransformError creates a TransformError for field transformation failures.
func newTransformError(sentinel error, operation, field string, cause error) error {
	return &TransformError{
		Err:       sentinel,
		Field:     field,
		Operation: operation,
		Cause:     cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
