package employee

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Employee, error) {
	return s.store.GetByID(ctx, id)
}

// Create inserts the employee and, when provided, its single salary
// record. The two writes are not atomic: a failed salary write surfaces as
// ErrPartialWrite with the employee row kept.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Employee, error) {
	inUse, err := s.store.EmailInUse(ctx, in.Email, "")
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrDuplicateEmail
	}

	if err := s.checkReferences(ctx, in.DepartmentID, in.RoleID); err != nil {
		return nil, err
	}

	emp := Employee{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		HireDate:     time.Now(),
		DepartmentID: in.DepartmentID,
		RoleID:       in.RoleID,
		Status:       in.Status,
	}
	if in.HireDate != nil {
		emp.HireDate = *in.HireDate
	}
	if emp.Status == "" {
		emp.Status = StatusActive
	}

	id, err := s.store.Insert(ctx, emp)
	if err != nil {
		return nil, err
	}

	if in.Salary != nil {
		if err := s.store.UpsertSalary(ctx, id, *in.Salary); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPartialWrite, err)
		}
	}

	return s.store.GetByID(ctx, id)
}

// Update applies partial semantics: empty request fields keep the stored
// values. A salary sub-object overwrites the existing salary record or
// creates one, never a second row.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Employee, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := mergeUpdate(*existing, in)

	if merged.Email != existing.Email {
		inUse, err := s.store.EmailInUse(ctx, merged.Email, id)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, ErrDuplicateEmail
		}
	}

	if merged.DepartmentID != existing.DepartmentID || merged.RoleID != existing.RoleID {
		if err := s.checkReferences(ctx, merged.DepartmentID, merged.RoleID); err != nil {
			return nil, err
		}
	}

	if err := s.store.Update(ctx, merged); err != nil {
		return nil, err
	}

	if in.Salary != nil {
		if err := s.store.UpsertSalary(ctx, id, *in.Salary); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPartialWrite, err)
		}
	}

	return s.store.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) checkReferences(ctx context.Context, departmentID, roleID string) error {
	exists, err := s.store.DepartmentExists(ctx, departmentID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrDepartmentNotFound
	}

	exists, err = s.store.RoleExists(ctx, roleID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRoleNotFound
	}
	return nil
}

func mergeUpdate(existing Employee, in UpdateInput) Employee {
	merged := existing
	if in.FirstName != "" {
		merged.FirstName = in.FirstName
	}
	if in.LastName != "" {
		merged.LastName = in.LastName
	}
	if in.Email != "" {
		merged.Email = in.Email
	}
	if in.Phone != "" {
		merged.Phone = in.Phone
	}
	if in.HireDate != nil {
		merged.HireDate = *in.HireDate
	}
	if in.DepartmentID != "" {
		merged.DepartmentID = in.DepartmentID
	}
	if in.RoleID != "" {
		merged.RoleID = in.RoleID
	}
	if in.Status != "" {
		merged.Status = in.Status
	}
	return merged
}
