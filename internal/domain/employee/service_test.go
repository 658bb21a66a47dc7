package employee

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"
)

type fakeStore struct {
	employees   map[string]*Employee
	salaries    map[string]*Salary
	departments map[string]string
	roles       map[string]string
	nextID      int
	salaryErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:   make(map[string]*Employee),
		salaries:    make(map[string]*Salary),
		departments: map[string]string{"d1": "Engineering"},
		roles:       map[string]string{"r1": "Engineer"},
	}
}

func (f *fakeStore) List(_ context.Context) ([]Employee, error) {
	var out []Employee
	for _, emp := range f.employees {
		copied := f.withRelations(*emp)
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := f.withRelations(*emp)
	return &copied, nil
}

func (f *fakeStore) withRelations(emp Employee) Employee {
	emp.Department = &DepartmentRef{ID: emp.DepartmentID, Name: f.departments[emp.DepartmentID]}
	emp.Role = &RoleRef{ID: emp.RoleID, Title: f.roles[emp.RoleID]}
	if salary, ok := f.salaries[emp.ID]; ok {
		copied := *salary
		emp.Salary = &copied
	}
	return emp
}

func (f *fakeStore) EmailInUse(_ context.Context, email, excludeID string) (bool, error) {
	for id, emp := range f.employees {
		if emp.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DepartmentExists(_ context.Context, id string) (bool, error) {
	_, ok := f.departments[id]
	return ok, nil
}

func (f *fakeStore) RoleExists(_ context.Context, id string) (bool, error) {
	_, ok := f.roles[id]
	return ok, nil
}

func (f *fakeStore) Insert(_ context.Context, emp Employee) (string, error) {
	f.nextID++
	emp.ID = "e" + strconv.Itoa(f.nextID)
	f.employees[emp.ID] = &emp
	return emp.ID, nil
}

func (f *fakeStore) Update(_ context.Context, emp Employee) error {
	if _, ok := f.employees[emp.ID]; !ok {
		return ErrNotFound
	}
	stored := emp
	f.employees[emp.ID] = &stored
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return ErrNotFound
	}
	delete(f.salaries, id)
	delete(f.employees, id)
	return nil
}

func (f *fakeStore) UpsertSalary(_ context.Context, employeeID string, in SalaryInput) error {
	if f.salaryErr != nil {
		return f.salaryErr
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	effective := time.Now()
	if in.EffectiveDate != nil {
		effective = *in.EffectiveDate
	}
	f.salaries[employeeID] = &Salary{
		ID:            "s-" + employeeID,
		EmployeeID:    employeeID,
		Amount:        in.Amount,
		Currency:      currency,
		EffectiveDate: effective,
	}
	return nil
}

func TestCreateWithSalary(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	emp, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		DepartmentID: "d1", RoleID: "r1",
		Salary: &SalaryInput{Amount: 85000},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if emp.Status != StatusActive {
		t.Fatalf("status = %q, want active default", emp.Status)
	}
	if emp.HireDate.IsZero() {
		t.Fatal("hire date should default to now")
	}
	if emp.Salary == nil || emp.Salary.Amount != 85000 || emp.Salary.Currency != "USD" {
		t.Fatalf("salary = %+v, want 85000 USD", emp.Salary)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	in := CreateInput{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", DepartmentID: "d1", RoleID: "r1"}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("first create error: %v", err)
	}

	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(store.employees) != 1 {
		t.Fatalf("expected a single employee, got %d", len(store.employees))
	}
}

func TestCreateUnknownReferences(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		DepartmentID: "missing", RoleID: "r1",
	})
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		DepartmentID: "d1", RoleID: "missing",
	})
	if !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestUpdateSalaryOverwrites(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	emp, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		DepartmentID: "d1", RoleID: "r1",
		Salary: &SalaryInput{Amount: 85000},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	updated, err := svc.Update(context.Background(), emp.ID, UpdateInput{
		Salary: &SalaryInput{Amount: 92000, Currency: "EUR"},
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.Salary.Amount != 92000 || updated.Salary.Currency != "EUR" {
		t.Fatalf("salary = %+v, want 92000 EUR", updated.Salary)
	}
	if len(store.salaries) != 1 {
		t.Fatalf("expected exactly one salary row, got %d", len(store.salaries))
	}
}

func TestUpdatePartialKeepsStoredFields(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	emp, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		Phone: "+1 555 0100", DepartmentID: "d1", RoleID: "r1",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	updated, err := svc.Update(context.Background(), emp.ID, UpdateInput{Status: StatusInactive})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.Status != StatusInactive {
		t.Fatalf("status = %q, want inactive", updated.Status)
	}
	if updated.FirstName != "Jane" || updated.Email != "jane@example.com" || updated.Phone != "+1 555 0100" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdatePartialWriteSurfaced(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	emp, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		DepartmentID: "d1", RoleID: "r1",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	store.salaryErr = errors.New("connection reset")
	_, err = svc.Update(context.Background(), emp.ID, UpdateInput{
		Status: StatusInactive,
		Salary: &SalaryInput{Amount: 90000},
	})
	if !errors.Is(err, ErrPartialWrite) {
		t.Fatalf("expected ErrPartialWrite, got %v", err)
	}
	// The employee write is kept, not rolled back.
	if store.employees[emp.ID].Status != StatusInactive {
		t.Fatal("employee update should persist despite salary failure")
	}
}

func TestDeleteCascadesSalary(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	emp, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		DepartmentID: "d1", RoleID: "r1",
		Salary: &SalaryInput{Amount: 85000},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := svc.Delete(context.Background(), emp.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if len(store.employees) != 0 || len(store.salaries) != 0 {
		t.Fatal("delete should remove the employee and its salary")
	}

	if err := svc.Delete(context.Background(), emp.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
