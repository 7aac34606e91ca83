package crud

type Department struct {
	ID   int64  `db:"id,omitempty"`
	Name string `db:"name"`
}

type Person struct {
	ID         int64  `db:"id,omitempty"`
	First      string `db:"first"`
	Last       string `db:"last"`
	Department int64  `db:"department"`
}

// Row of the department/person join read by the select benchmark
type DepartmentPerson struct {
	DepartmentID   int64  `db:"department_id"`
	DepartmentName string `db:"department_name"`
	PersonID       int64  `db:"person_id"`
	First          string `db:"first"`
	Last           string `db:"last"`
	Department     int64  `db:"department"`
}
