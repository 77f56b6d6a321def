package lifecycle

import (
	"context"
	"time"
)

// ImportResult summarizes one import run.
type ImportResult struct {
	RunID            string        `json:"run_id"`
	RoomsImported    int64         `json:"rooms_imported"`
	StudentsImported int64         `json:"students_imported"`
	TotalRecords     int64         `json:"total_records"`
	Duration         time.Duration `json:"duration"`
}

// Importer loads rooms and students from files into the database.
// Settings (format, batch size) are provided during construction.
type Importer interface {
	// Import prepares the schema, loads both files with the loader of the
	// format, upserts rooms then students and builds analytical indexes.
	Import(ctx context.Context, studentsPath, roomsPath string) (*ImportResult, error)
}
