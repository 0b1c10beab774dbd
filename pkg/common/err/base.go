package err

import (
	"errors"
	"strings"
)

// Error is the base error type shared by every package in the module.
//
// A package identifies itself through Package, classifies the failure through
// Code and names the failing step through Op. Two errors are considered equal
// by errors.Is when they carry the same non-empty Code, which is what lets
// callers write errors.Is(e, err.ErrNotFound) regardless of which layer
// produced the failure.
type Error struct {
	// Package identifies the originating package (e.g., "store", "tree", "index")
	Package string

	// Code is the machine-readable category, one of the Code* constants.
	Code string

	// Op is the operation being performed, e.g. "get", "parse", "add_entry".
	Op string

	// Message is a short human-readable description.
	Message string

	// Err is the wrapped cause. Can be nil for leaf errors.
	Err error

	// Context holds optional structured metadata, allocated lazily.
	Context map[string]any
}

// Error implements the error interface.
// Format: [package][code] operation: message: wrapped_error
func (e *Error) Error() string {
	var parts []string

	var prefix strings.Builder
	if e.Package != "" {
		prefix.WriteString("[")
		prefix.WriteString(e.Package)
		prefix.WriteString("]")
	}
	if e.Code != "" {
		prefix.WriteString("[")
		prefix.WriteString(e.Code)
		prefix.WriteString("]")
	}
	if prefix.Len() > 0 {
		parts = append(parts, prefix.String())
	}
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, ": ")
	if e.Err != nil {
		if result != "" {
			result += ": " + e.Err.Error()
		} else {
			result = e.Err.Error()
		}
	}
	return result
}

// Unwrap returns the underlying error for errors.Is() and errors.As() support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on code: two errors match if they have the same non-empty code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext adds a key-value pair to the error's context.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves a value from the error's context.
func (e *Error) GetContext(key string) any {
	if e.Context == nil {
		return nil
	}
	return e.Context[key]
}

// New creates a new base error with the specified fields.
func New(pkg, code, op, message string, cause error) *Error {
	return &Error{
		Package: pkg,
		Code:    code,
		Op:      op,
		Message: message,
		Err:     cause,
	}
}

// Error codes. The first four form the storage taxonomy every layer reports
// through; the rest cover input validation and locking.
const (
	// CodeNotFound indicates a referenced fingerprint or path is absent
	CodeNotFound = "NOT_FOUND"

	// CodeMalformedRecord indicates index, tree, commit or HEAD text that does
	// not parse into the expected field grammar
	CodeMalformedRecord = "MALFORMED_RECORD"

	// CodeDuplicateEntry indicates a staging or tree insertion collided on a name
	CodeDuplicateEntry = "DUPLICATE_ENTRY"

	// CodeIOFailure indicates an underlying storage read or write failure
	CodeIOFailure = "IO_FAILURE"

	// CodeInvalidInput indicates invalid caller-supplied parameters
	CodeInvalidInput = "INVALID_INPUT"

	// CodeLockFailed indicates failure to acquire the repository lock
	CodeLockFailed = "LOCK_FAILED"
)

// Sentinels for errors.Is checks. They match any *Error with the same code.
var (
	ErrNotFound        = &Error{Code: CodeNotFound}
	ErrMalformedRecord = &Error{Code: CodeMalformedRecord}
	ErrDuplicateEntry  = &Error{Code: CodeDuplicateEntry}
	ErrIOFailure       = &Error{Code: CodeIOFailure}
	ErrInvalidInput    = &Error{Code: CodeInvalidInput}
	ErrLockFailed      = &Error{Code: CodeLockFailed}
)

// IsCode checks if an error has a specific error code. Works with wrapped errors.
func IsCode(e error, code string) bool {
	var base *Error
	for errors.As(e, &base) {
		if base.Code == code {
			return true
		}
		if base.Err == nil {
			return false
		}
		e = base.Err
	}
	return false
}

// GetCode extracts the outermost error code from an error.
// Returns empty string if no coded base Error is in the chain.
func GetCode(e error) string {
	var base *Error
	for errors.As(e, &base) {
		if base.Code != "" {
			return base.Code
		}
		if base.Err == nil {
			return ""
		}
		e = base.Err
	}
	return ""
}

// GetPackage extracts the package name from an error.
func GetPackage(e error) string {
	var base *Error
	if errors.As(e, &base) {
		return base.Package
	}
	return ""
}

// GetOp extracts the operation from an error.
func GetOp(e error) string {
	var base *Error
	if errors.As(e, &base) {
		return base.Op
	}
	return ""
}
