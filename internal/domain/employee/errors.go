package employee

import "errors"

var (
	// ErrNotFound is returned when no employee matches the id.
	ErrNotFound = errors.New("employee not found")
	// ErrDuplicateEmail is returned when another employee already uses the
	// email, whether caught by pre-check or by the unique constraint.
	ErrDuplicateEmail = errors.New("employee email already exists")
	// ErrDepartmentNotFound is returned when the referenced department id
	// does not exist.
	ErrDepartmentNotFound = errors.New("department not found")
	// ErrRoleNotFound is returned when the referenced role id does not
	// exist.
	ErrRoleNotFound = errors.New("role not found")
	// ErrPartialWrite is returned when the employee row was written but the
	// salary sub-record write failed. The employee write is not rolled
	// back; the caller must verify final state.
	ErrPartialWrite = errors.New("employee saved but salary write failed")
)
