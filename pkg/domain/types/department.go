package types

import "fmt"

// Department represents the university department a case belongs to
type Department string

const (
	DepartmentAdmissions Department = "Admissions"
	DepartmentFinance    Department = "Finance"
	DepartmentRegistrar  Department = "Registrar"
	DepartmentHousing    Department = "Housing"
	DepartmentIT         Department = "IT"
)

// AllDepartments returns all valid departments
func AllDepartments() []Department {
	return []Department{
		DepartmentAdmissions,
		DepartmentFinance,
		DepartmentRegistrar,
		DepartmentHousing,
		DepartmentIT,
	}
}

// IsValid checks if the department is valid
func (d Department) IsValid() bool {
	switch d {
	case DepartmentAdmissions,
		DepartmentFinance,
		DepartmentRegistrar,
		DepartmentHousing,
		DepartmentIT:
		return true
	default:
		return false
	}
}

// String returns the string representation of the department
func (d Department) String() string {
	return string(d)
}

// ParseDepartment parses a string into a Department
func ParseDepartment(s string) (Department, error) {
	dept := Department(s)
	if !dept.IsValid() {
		return "", fmt.Errorf("invalid department: %s", s)
	}
	return dept, nil
}
