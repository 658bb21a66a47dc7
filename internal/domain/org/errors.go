package org

import "errors"

var (
	// ErrNotFound is returned when no department or role matches the id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateName is returned when a department name is already taken.
	ErrDuplicateName = errors.New("department name already exists")
	// ErrDuplicateTitle is returned when a role title is already taken.
	ErrDuplicateTitle = errors.New("role title already exists")
	// ErrHasEmployees blocks deletion while employees still reference the
	// record; the record is left intact.
	ErrHasEmployees = errors.New("record has existing employees")
)
