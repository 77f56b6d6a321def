package schema

import (
	"fmt"
	"strings"
)

// Index describes a secondary index.
type Index struct {
	Name    string
	Table   string
	Columns []string
}

// DDL returns CREATE INDEX statement. With ifNotExists the statement
// succeeds silently when the index is already there.
func (i Index) DDL(ifNotExists bool) string {
	var guard string
	if ifNotExists {
		guard = "IF NOT EXISTS "
	}
	return fmt.Sprintf("CREATE INDEX %s%s ON %s (%s);",
		guard, i.Name, i.Table, strings.Join(i.Columns, ", "))
}

// AnalyticsIndexes returns composite indexes that serve the analytical
// queries. They are created after data import.
func AnalyticsIndexes() []Index {
	return []Index{
		{
			Name:    "idx_students_composite_analytics",
			Table:   "students",
			Columns: []string{"room_id", "sex", "age_years", "birthday"},
		},
		{
			Name:    "idx_students_age_range",
			Table:   "students",
			Columns: []string{"age_years", "room_id"},
		},
		{
			Name:    "idx_rooms_students_count",
			Table:   "students",
			Columns: []string{"room_id"},
		},
	}
}

// SexTypeDDL creates the enum of student sex values unless it exists.
const SexTypeDDL = `DO $$
BEGIN
    CREATE TYPE student_sex AS ENUM ('M', 'F');
EXCEPTION
    WHEN duplicate_object THEN NULL;
END $$;`

// AgeTriggerDDL returns statements that keep students.age_years equal to
// full years between birthday and the current date of the last write.
func AgeTriggerDDL() []string {
	return []string{
		`CREATE OR REPLACE FUNCTION students_set_age() RETURNS trigger AS $$
BEGIN
    NEW.age_years := date_part('year', age(CURRENT_DATE, NEW.birthday))::int;
    RETURN NEW;
END
$$ LANGUAGE plpgsql;`,
		"DROP TRIGGER IF EXISTS trg_students_age ON students;",
		`CREATE TRIGGER trg_students_age
    BEFORE INSERT OR UPDATE ON students
    FOR EACH ROW EXECUTE FUNCTION students_set_age();`,
	}
}

// CreateDDL returns all statements that build the schema, in order.
func CreateDDL() []string {
	res := []string{SexTypeDDL}
	models := []DDLGenerator{Room{}, Student{}}
	for _, m := range models {
		res = append(res, m.TableDDL())
	}
	for _, m := range models {
		res = append(res, m.IndexDDL()...)
	}
	return append(res, AgeTriggerDDL()...)
}

// DropDDL returns statements that remove the schema. Students go first
// because they reference rooms.
func DropDDL() []string {
	return []string{
		"DROP TABLE IF EXISTS students;",
		"DROP TABLE IF EXISTS rooms;",
		"DROP FUNCTION IF EXISTS students_set_age();",
		"DROP TYPE IF EXISTS student_sex;",
	}
}
