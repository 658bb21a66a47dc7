package org

import "context"

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.store.ListDepartments(ctx)
}

func (s *Service) GetDepartment(ctx context.Context, id string) (*Department, error) {
	return s.store.GetDepartment(ctx, id)
}

func (s *Service) CreateDepartment(ctx context.Context, in DepartmentInput) (*Department, error) {
	inUse, err := s.store.DepartmentNameInUse(ctx, in.Name, "")
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrDuplicateName
	}

	id, err := s.store.InsertDepartment(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.store.GetDepartment(ctx, id)
}

func (s *Service) UpdateDepartment(ctx context.Context, id string, in DepartmentInput) (*Department, error) {
	if _, err := s.store.GetDepartment(ctx, id); err != nil {
		return nil, err
	}

	inUse, err := s.store.DepartmentNameInUse(ctx, in.Name, id)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrDuplicateName
	}

	if err := s.store.UpdateDepartment(ctx, id, in); err != nil {
		return nil, err
	}
	return s.store.GetDepartment(ctx, id)
}

// DeleteDepartment refuses while employees still reference the department.
// The check is check-then-act; the store's FK translation covers the race.
func (s *Service) DeleteDepartment(ctx context.Context, id string) error {
	count, err := s.store.DepartmentEmployeeCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasEmployees
	}
	return s.store.DeleteDepartment(ctx, id)
}

func (s *Service) ListJobRoles(ctx context.Context) ([]JobRole, error) {
	return s.store.ListJobRoles(ctx)
}

func (s *Service) GetJobRole(ctx context.Context, id string) (*JobRole, error) {
	return s.store.GetJobRole(ctx, id)
}

func (s *Service) CreateJobRole(ctx context.Context, in JobRoleInput) (*JobRole, error) {
	inUse, err := s.store.JobRoleTitleInUse(ctx, in.Title, "")
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrDuplicateTitle
	}

	id, err := s.store.InsertJobRole(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.store.GetJobRole(ctx, id)
}

func (s *Service) UpdateJobRole(ctx context.Context, id string, in JobRoleInput) (*JobRole, error) {
	if _, err := s.store.GetJobRole(ctx, id); err != nil {
		return nil, err
	}

	inUse, err := s.store.JobRoleTitleInUse(ctx, in.Title, id)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrDuplicateTitle
	}

	if err := s.store.UpdateJobRole(ctx, id, in); err != nil {
		return nil, err
	}
	return s.store.GetJobRole(ctx, id)
}

func (s *Service) DeleteJobRole(ctx context.Context, id string) error {
	count, err := s.store.JobRoleEmployeeCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasEmployees
	}
	return s.store.DeleteJobRole(ctx, id)
}
