package schema_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gnames/roomdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoomTableDDL tests DDL generation for Room model
func TestRoomTableDDL(t *testing.T) {
	r := schema.Room{}
	ddl := r.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS rooms")
	assert.Contains(t, ddl, "id INT PRIMARY KEY")
	assert.Contains(t, ddl, "name VARCHAR(255) NOT NULL")
	assert.Contains(t, ddl, "created_at TIMESTAMP")
	assert.Equal(t, "rooms", r.TableName())
}

// TestStudentTableDDL tests DDL generation for Student model
func TestStudentTableDDL(t *testing.T) {
	s := schema.Student{}
	ddl := s.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS students")
	assert.Contains(t, ddl, "birthday DATE NOT NULL")
	assert.Contains(t, ddl, "sex student_sex NOT NULL")
	assert.Contains(t, ddl, "room_id INT NULL")
	assert.Contains(t, ddl, "age_years INT")
	assert.Contains(t, ddl, "CONSTRAINT fk_students_room")
	assert.Contains(t, ddl, "ON DELETE SET NULL ON UPDATE CASCADE")

	// constraint is the last entry of the table body
	fk := strings.Index(ddl, "CONSTRAINT")
	upd := strings.Index(ddl, "updated_at")
	assert.Greater(t, fk, upd)
}

func TestColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"id", "name", "created_at", "updated_at"},
		schema.Columns(schema.Room{}),
	)
	assert.Equal(t,
		[]string{"id", "name", "birthday", "sex", "room_id", "age_years",
			"created_at", "updated_at"},
		schema.Columns(&schema.Student{}),
	)
}

func TestIndexDDL(t *testing.T) {
	idx := schema.Index{
		Name:    "idx_a",
		Table:   "students",
		Columns: []string{"room_id", "sex"},
	}
	assert.Equal(t,
		"CREATE INDEX IF NOT EXISTS idx_a ON students (room_id, sex);",
		idx.DDL(true))
	assert.Equal(t,
		"CREATE INDEX idx_a ON students (room_id, sex);",
		idx.DDL(false))

	baseline := schema.Student{}.IndexDDL()
	assert.Len(t, baseline, 7)
	for _, v := range baseline {
		assert.Contains(t, v, "IF NOT EXISTS")
	}
}

func TestAnalyticsIndexes(t *testing.T) {
	idxs := schema.AnalyticsIndexes()
	require.Len(t, idxs, 3)
	assert.Equal(t, "idx_students_composite_analytics", idxs[0].Name)
	assert.Equal(t,
		[]string{"room_id", "sex", "age_years", "birthday"}, idxs[0].Columns)
	assert.Equal(t, "idx_students_age_range", idxs[1].Name)
	assert.Equal(t, "idx_rooms_students_count", idxs[2].Name)
}

func TestCreateDDLOrder(t *testing.T) {
	stmts := schema.CreateDDL()
	require.NotEmpty(t, stmts)

	pos := func(sub string) int {
		for i, v := range stmts {
			if strings.Contains(v, sub) {
				return i
			}
		}
		return -1
	}
	typ := pos("CREATE TYPE student_sex")
	rooms := pos("CREATE TABLE IF NOT EXISTS rooms")
	students := pos("CREATE TABLE IF NOT EXISTS students")
	trigger := pos("CREATE TRIGGER trg_students_age")

	assert.Equal(t, 0, typ)
	assert.Less(t, typ, rooms)
	assert.Less(t, rooms, students)
	assert.Less(t, students, trigger)
}

func TestDropDDLOrder(t *testing.T) {
	stmts := schema.DropDDL()
	require.Len(t, stmts, 4)
	assert.Contains(t, stmts[0], "students")
	assert.Contains(t, stmts[1], "rooms")
}

func TestToMap(t *testing.T) {
	room := 3
	age := 24
	bd := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)

	t.Run("student with room", func(t *testing.T) {
		s := schema.Student{
			ID: 1, Name: "Ann", Birthday: bd, Sex: schema.SexFemale,
			RoomID: &room, AgeYears: &age,
		}
		res := s.ToMap()
		assert.Equal(t, "2000-02-29", res["birthday"])
		assert.Equal(t, 3, res["room_id"])
		assert.Equal(t, 24, res["age_years"])
		assert.Equal(t, "F", res["sex"])
	})

	t.Run("student without room", func(t *testing.T) {
		s := schema.Student{ID: 2, Name: "Bob", Birthday: bd, Sex: schema.SexMale}
		res := s.ToMap()
		assert.Nil(t, res["room_id"])
		assert.Nil(t, res["age_years"])
	})

	t.Run("room", func(t *testing.T) {
		res := schema.Room{ID: 5, Name: "Room #5"}.ToMap()
		assert.Equal(t, map[string]any{"id": 5, "name": "Room #5"}, res)
	})
}

func TestAgeTriggerDDL(t *testing.T) {
	ddl := schema.AgeTriggerDDL()
	require.Len(t, ddl, 3)
	assert.Contains(t, ddl[0], "age(CURRENT_DATE, NEW.birthday)")
	// age is recomputed on every write of a row, including re-imports
	assert.Contains(t, ddl[2], "BEFORE INSERT OR UPDATE ON students")
	assert.Contains(t, ddl[2], "FOR EACH ROW")
}
