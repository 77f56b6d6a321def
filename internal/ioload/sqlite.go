package ioload

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/gnames/roomdb/pkg/loader"
	_ "modernc.org/sqlite"
)

var sqliteTables = map[string]string{
	roomEntity:    "rooms",
	studentEntity: "students",
}

type sqliteLoader struct{}

// NewSQLite creates a loader that reads 'rooms' and 'students' tables of
// an SQLite database. Both paths may point to the same file.
func NewSQLite() loader.Loader {
	return sqliteLoader{}
}

func (sqliteLoader) Format() string {
	return "sqlite"
}

func (l sqliteLoader) LoadStudents(path string) ([]loader.Record, error) {
	return l.load(path, studentEntity)
}

func (l sqliteLoader) LoadRooms(path string) ([]loader.Record, error) {
	return l.load(path, roomEntity)
}

func (sqliteLoader) load(path, entity string) ([]loader.Record, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, DataImportError(path, err)
	}
	defer db.Close()

	q := fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", sqliteTables[entity])
	rows, err := db.Query(q)
	if err != nil {
		return nil, DataImportError(path, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, DataImportError(path, err)
	}

	var res []loader.Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err = rows.Scan(ptrs...); err != nil {
			return nil, DataImportError(path, err)
		}

		rec := make(loader.Record, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				vals[i] = string(b)
			}
			rec[c] = vals[i]
		}
		res = append(res, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, DataImportError(path, err)
	}

	if err = checkRecords(path, entity, res); err != nil {
		return nil, err
	}
	return res, nil
}

// openSQLite opens an existing SQLite file in read-only mode.
func openSQLite(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database %s: %w", path, err)
	}
	return db, nil
}
