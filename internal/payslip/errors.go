package payslip

import "fmt"

// NotFoundKind tells callers which referenced thing was missing, so the
// frontend can prompt differently for "no such payslip" versus "payslip
// exists but has no PDF yet" versus "PDF path is stale".
type NotFoundKind int

const (
	NotFoundPayslip NotFoundKind = iota
	NotFoundEmployee
	NotFoundBankAccount
	NotFoundArtifactUnavailable // path column is empty
	NotFoundArtifactMissing     // path set but file gone from disk
)

type NotFoundError struct {
	Kind    NotFoundKind
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ValidationError carries an optional field level error map for the
// structured 400 response.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GenerationError wraps a PDF rendering or file I/O failure for one copy.
type GenerationError struct {
	Copy string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate %s payslip: %v", e.Copy, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// StorageError wraps a database failure. Always surfaced as a 500.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
