package crud

import (
	"time"

	dbutils "ormbench/dbUtils"
	"ormbench/util"

	"github.com/pkg/errors"
	db "github.com/upper/db/v4"
)

const (
	departmentTable = "department"
	personTable     = "person"
)

// Clears both tables and seeds the single department, keeping its generated key
func (c *Crud) InitializeData() error {
	sess, err := c.env.Engine.Open()
	if err != nil {
		return err
	}
	defer sess.Close()

	// persons reference the department, so they go first
	if err := dbutils.ClearTables(sess, personTable, departmentTable); err != nil {
		return err
	}

	_, err = sess.SQL().InsertInto(departmentTable).Columns("name").Values(c.DepartmentName).Exec()
	if err != nil {
		return errors.Wrap(err, "insert department")
	}

	var department Department
	err = sess.SQL().SelectFrom(departmentTable).Where(db.Cond{"name": c.DepartmentName}).One(&department)
	if err != nil {
		return errors.Wrapf(err, "select department '%s'", c.DepartmentName)
	}
	c.departmentKey = department.ID

	return nil
}

// Inserts InsertOuter*InsertInner persons one statement at a time. Loading the name lists is
// not timed.
func (c *Crud) TestInsert() (float64, error) {
	sess, err := c.env.Engine.Open()
	if err != nil {
		return 0, err
	}
	defer sess.Close()

	firstNames, err := loadNames(c.FirstNames)
	if err != nil {
		return 0, err
	}
	lastNames, err := loadNames(c.LastNames)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	for j := 0; j < c.InsertOuter; j++ {
		for i := 0; i < c.InsertInner; i++ {
			_, err := sess.SQL().InsertInto(personTable).
				Columns("first", "last", "department").
				Values(firstNames[i%len(firstNames)], lastNames[i%len(lastNames)], c.departmentKey).
				Exec()
			if err != nil {
				return 0, errors.Wrap(err, "insert person")
			}
		}
	}

	return util.Elapsed(start), nil
}

// Runs the department/person join Selects times, reading every row of each result
func (c *Crud) TestSelect() (float64, error) {
	sess, err := c.env.Engine.Open()
	if err != nil {
		return 0, err
	}
	defer sess.Close()

	start := time.Now()
	for i := 0; i < c.Selects; i++ {
		var rows []DepartmentPerson
		err := sess.SQL().
			Select(
				"d.id AS department_id",
				"d.name AS department_name",
				"p.id AS person_id",
				"p.first",
				"p.last",
				"p.department",
			).
			From("department AS d").
			Join("person AS p").On("p.department = d.id").
			All(&rows)
		if err != nil {
			return 0, errors.Wrap(err, "select department persons")
		}
	}

	return util.Elapsed(start), nil
}

// Reads every person and appends "2" to its last name, one update per row. The initial read is
// part of the timed region.
func (c *Crud) TestUpdate() (float64, error) {
	sess, err := c.env.Engine.Open()
	if err != nil {
		return 0, err
	}
	defer sess.Close()

	start := time.Now()

	var persons []Person
	if err := sess.SQL().SelectFrom(personTable).All(&persons); err != nil {
		return 0, errors.Wrap(err, "select persons")
	}
	for _, p := range persons {
		_, err := sess.SQL().Update(personTable).
			Set("last", p.Last+"2").
			Where("id = ?", p.ID).
			Exec()
		if err != nil {
			return 0, errors.Wrapf(err, "update person %d", p.ID)
		}
	}

	return util.Elapsed(start), nil
}

// Deletes every person with a single statement
func (c *Crud) TestDelete() (float64, error) {
	sess, err := c.env.Engine.Open()
	if err != nil {
		return 0, err
	}
	defer sess.Close()

	start := time.Now()
	if _, err := sess.SQL().DeleteFrom(personTable).Exec(); err != nil {
		return 0, errors.Wrap(err, "delete persons")
	}

	return util.Elapsed(start), nil
}
