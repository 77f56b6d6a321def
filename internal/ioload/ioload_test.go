package ioload_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/roomdb/internal/ioload"
	"github.com/gnames/roomdb/pkg/errcode"
	"github.com/gnames/roomdb/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewRegistry(t *testing.T) {
	reg := ioload.NewRegistry()
	assert.Equal(t, []string{"json", "sqlite", "yaml"}, reg.Formats())

	l, err := reg.Get("JSON")
	require.NoError(t, err)
	assert.Equal(t, "json", l.Format())

	_, err = reg.Get("xml")
	assert.Equal(t, errcode.UnsupportedFormatError, errcode.Of(err))
}

func TestJSON(t *testing.T) {
	l := ioload.NewJSON()

	t.Run("rooms", func(t *testing.T) {
		path := writeFile(t, "rooms.json",
			`[{"id": 0, "name": "Room #0"}, {"id": 1, "name": "Room #1"}]`)
		recs, err := l.LoadRooms(path)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "Room #1", recs[1]["name"])

		_, err = loader.ParseRooms(recs[1:])
		assert.NoError(t, err)
	})

	t.Run("students", func(t *testing.T) {
		path := writeFile(t, "students.json", `[
  {"birthday": "2011-08-22T00:00:00.000000", "id": 0,
   "name": "Peggy Ryan", "room": 473, "sex": "M"}
]`)
		recs, err := l.LoadStudents(path)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Peggy Ryan", recs[0]["name"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := l.LoadRooms(filepath.Join(t.TempDir(), "nope.json"))
		assert.Equal(t, errcode.DataImportError, errcode.Of(err))
	})

	t.Run("bad syntax", func(t *testing.T) {
		path := writeFile(t, "bad.json", `[{"id": 1,`)
		_, err := l.LoadRooms(path)
		assert.Equal(t, errcode.DataImportError, errcode.Of(err))
	})

	t.Run("not a list", func(t *testing.T) {
		path := writeFile(t, "obj.json", `{"id": 1, "name": "A"}`)
		_, err := l.LoadRooms(path)
		assert.Equal(t, errcode.ValidationError, errcode.Of(err))
	})

	t.Run("missing key", func(t *testing.T) {
		path := writeFile(t, "nokey.json", `[{"id": 1, "name": "A"}]`)
		_, err := l.LoadStudents(path)
		assert.Equal(t, errcode.ValidationError, errcode.Of(err))
	})
}

func TestYAML(t *testing.T) {
	l := ioload.NewYAML()

	path := writeFile(t, "students.yaml", `
- id: 1
  name: Ann
  birthday: 2000-02-29
  sex: F
  room: 3
- id: 2
  name: Bob
  birthday: "1999-12-31"
  sex: M
`)
	recs, err := l.LoadStudents(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	students, err := loader.ParseStudents(recs)
	require.NoError(t, err)
	assert.Equal(t, "2000-02-29", students[0].Birthday.Format("2006-01-02"))
	assert.Equal(t, 3, *students[0].RoomID)
	assert.Nil(t, students[1].RoomID)

	path = writeFile(t, "bad.yaml", "- id: [1\n")
	_, err = l.LoadRooms(path)
	assert.Equal(t, errcode.DataImportError, errcode.Of(err))
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.sqlite")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	for _, q := range []string{
		"CREATE TABLE rooms (id INTEGER PRIMARY KEY, name TEXT)",
		"CREATE TABLE students (id INTEGER PRIMARY KEY, name TEXT, " +
			"birthday TEXT, sex TEXT, room INTEGER)",
		"INSERT INTO rooms VALUES (1, 'Room #1'), (2, 'Room #2')",
		"INSERT INTO students VALUES (10, 'Ann', '2000-01-01', 'F', 1), " +
			"(11, 'Bob', '2001-01-01 00:00:00', 'M', NULL)",
	} {
		_, err = db.Exec(q)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	l := ioload.NewSQLite()
	rooms, err := l.LoadRooms(path)
	require.NoError(t, err)
	parsedRooms, err := loader.ParseRooms(rooms)
	require.NoError(t, err)
	assert.Equal(t, 2, parsedRooms[1].ID)
	assert.Equal(t, "Room #2", parsedRooms[1].Name)

	students, err := l.LoadStudents(path)
	require.NoError(t, err)
	parsed, err := loader.ParseStudents(students)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, 1, *parsed[0].RoomID)
	assert.Nil(t, parsed[1].RoomID)

	_, err = l.LoadRooms(filepath.Join(t.TempDir(), "none.sqlite"))
	assert.Equal(t, errcode.DataImportError, errcode.Of(err))
}
