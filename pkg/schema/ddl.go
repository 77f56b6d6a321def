package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
// Constraints are appended after the columns.
func generateDDL(model any, tableName string, constraints ...string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}
	for _, c := range constraints {
		columns = append(columns, "    "+c)
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Columns returns the column names of a model in declaration order.
func Columns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var res []string
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			res = append(res, tag)
		}
	}
	return res
}

// Room DDL methods
func (r Room) TableDDL() string {
	return generateDDL(r, r.TableName())
}

func (r Room) IndexDDL() []string {
	return []string{
		Index{Name: "idx_rooms_name", Table: "rooms",
			Columns: []string{"name"}}.DDL(true),
	}
}

func (r Room) TableName() string {
	return "rooms"
}

// Student DDL methods
func (s Student) TableDDL() string {
	return generateDDL(s, s.TableName(),
		"CONSTRAINT fk_students_room FOREIGN KEY (room_id) "+
			"REFERENCES rooms(id) ON DELETE SET NULL ON UPDATE CASCADE",
	)
}

func (s Student) IndexDDL() []string {
	idxs := []Index{
		{Name: "idx_students_name", Table: "students", Columns: []string{"name"}},
		{Name: "idx_students_birthday", Table: "students", Columns: []string{"birthday"}},
		{Name: "idx_students_sex", Table: "students", Columns: []string{"sex"}},
		{Name: "idx_students_room_id", Table: "students", Columns: []string{"room_id"}},
		{Name: "idx_students_age", Table: "students", Columns: []string{"age_years"}},
		{Name: "idx_students_room_sex", Table: "students", Columns: []string{"room_id", "sex"}},
		{Name: "idx_students_room_age", Table: "students", Columns: []string{"room_id", "age_years"}},
	}
	res := make([]string, len(idxs))
	for i := range idxs {
		res[i] = idxs[i].DDL(true)
	}
	return res
}

func (s Student) TableName() string {
	return "students"
}
