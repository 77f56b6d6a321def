// Package schema provides database schema models for roomdb.
// The same structs describe the DDL of the tables (db and ddl tags)
// and the rows read back through GORM.
package schema

import (
	"time"
)

const (
	// SexMale is the storage value for male students.
	SexMale = "M"
	// SexFemale is the storage value for female students.
	SexFemale = "F"

	// DateFormat is the representation of birthdays in normalized records.
	DateFormat = "2006-01-02"
	// DateTimeFormat is the representation of birthdays sent to the store.
	DateTimeFormat = "2006-01-02 15:04:05"
)

// DDLGenerator defines how Go models generate PostgreSQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the PostgreSQL table name for this model.
	TableName() string
}

// Room is a named space that may hold students.
type Room struct {
	// ID is the identifier given by the data provider.
	ID int `db:"id" ddl:"INT PRIMARY KEY" gorm:"column:id;primaryKey"`

	// Name of the room.
	Name string `db:"name" ddl:"VARCHAR(255) NOT NULL" gorm:"column:name"`

	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMP NOT NULL DEFAULT now()" gorm:"column:created_at;->"`
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMP NOT NULL DEFAULT now()" gorm:"column:updated_at;->"`
}

// Student is a person with a birthday and sex, assigned to at most one room.
type Student struct {
	// ID is the identifier given by the data provider.
	ID int `db:"id" ddl:"INT PRIMARY KEY" gorm:"column:id;primaryKey"`

	// Name of the student.
	Name string `db:"name" ddl:"VARCHAR(255) NOT NULL" gorm:"column:name"`

	// Birthday keeps only the calendar date.
	Birthday time.Time `db:"birthday" ddl:"DATE NOT NULL" gorm:"column:birthday"`

	// Sex is either SexMale or SexFemale.
	Sex string `db:"sex" ddl:"student_sex NOT NULL" gorm:"column:sex"`

	// RoomID is nil for students without a room.
	RoomID *int `db:"room_id" ddl:"INT NULL" gorm:"column:room_id"`

	// AgeYears is maintained by the store from Birthday, never written by
	// the application. A trigger sets it on every insert and update, so
	// it is not refreshed on birthdays of rows that are not rewritten.
	// Re-importing or updating the student brings it up to date.
	AgeYears *int `db:"age_years" ddl:"INT" gorm:"column:age_years;->"`

	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMP NOT NULL DEFAULT now()" gorm:"column:created_at;->"`
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMP NOT NULL DEFAULT now()" gorm:"column:updated_at;->"`
}

// ToMap returns the normalized representation of a room.
func (r Room) ToMap() map[string]any {
	return map[string]any{
		"id":   r.ID,
		"name": r.Name,
	}
}

// ToMap returns the normalized representation of a student.
// Birthday is formatted as YYYY-MM-DD, absent room and age are nil.
func (s Student) ToMap() map[string]any {
	res := map[string]any{
		"id":        s.ID,
		"name":      s.Name,
		"birthday":  s.Birthday.Format(DateFormat),
		"sex":       s.Sex,
		"room_id":   nil,
		"age_years": nil,
	}
	if s.RoomID != nil {
		res["room_id"] = *s.RoomID
	}
	if s.AgeYears != nil {
		res["age_years"] = *s.AgeYears
	}
	return res
}
