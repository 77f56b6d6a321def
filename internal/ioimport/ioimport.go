// Package ioimport implements lifecycle.Importer. It prepares the schema,
// reads files with a registered loader and upserts rooms, then students.
package ioimport

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/roomdb/internal/iorepo"
	"github.com/gnames/roomdb/internal/ioschema"
	"github.com/gnames/roomdb/pkg/config"
	"github.com/gnames/roomdb/pkg/db"
	"github.com/gnames/roomdb/pkg/lifecycle"
	"github.com/gnames/roomdb/pkg/loader"
	"github.com/google/uuid"
)

type importer struct {
	cfg      *config.Config
	registry *loader.Registry
	schema   lifecycle.SchemaManager
	rooms    lifecycle.RoomRepository
	students lifecycle.StudentRepository

	// bar shows progress of the running import, nil between imports.
	bar *pb.ProgressBar
}

// New creates an importer. The observer may be nil.
// The importer is not safe for concurrent imports.
func New(
	cfg *config.Config,
	op db.Operator,
	registry *loader.Registry,
	obs lifecycle.Observer,
) lifecycle.Importer {
	res := &importer{
		cfg:      cfg,
		registry: registry,
		schema:   ioschema.NewManager(op),
		rooms:    iorepo.NewRoomRepository(op, obs),
	}
	res.students = iorepo.NewStudentRepository(op, obs,
		iorepo.OptProgress(res.advance))
	return res
}

// Import reads both files before writing anything, so broken input
// leaves the database untouched. Rooms are written in one transaction
// and all students in another one, so a failure while writing students
// leaves none of them.
func (im *importer) Import(
	ctx context.Context,
	studentsPath, roomsPath string,
) (*lifecycle.ImportResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	format := im.cfg.Import.Format

	slog.Info("Starting import",
		"run_id", runID,
		"format", format,
		"students", studentsPath,
		"rooms", roomsPath,
	)

	l, err := im.registry.Get(format)
	if err != nil {
		return nil, ImportError(runID, "choosing loader", err)
	}

	if err = im.schema.CreateDatabase(ctx); err != nil {
		return nil, ImportError(runID, "creating database", err)
	}
	if err = im.schema.CreateTables(ctx); err != nil {
		return nil, ImportError(runID, "creating tables", err)
	}

	rooms, err := l.LoadRooms(roomsPath)
	if err == nil {
		err = loader.ValidateRooms(rooms)
	}
	if err != nil {
		return nil, ImportError(runID, "loading rooms", err)
	}

	students, err := l.LoadStudents(studentsPath)
	if err == nil {
		err = loader.ValidateStudents(students)
	}
	if err != nil {
		return nil, ImportError(runID, "loading students", err)
	}

	gn.Info("Loaded <em>%s</em> rooms and <em>%s</em> students",
		humanize.Comma(int64(len(rooms))), humanize.Comma(int64(len(students))))

	res := lifecycle.ImportResult{RunID: runID}
	res.RoomsImported, err = im.rooms.InsertRooms(ctx, rooms)
	if err != nil {
		return nil, ImportError(runID, "inserting rooms", err)
	}

	res.StudentsImported, err = im.insertStudents(ctx, students)
	if err != nil {
		return nil, ImportError(runID, "inserting students", err)
	}

	rep, err := im.schema.CreateIndexes(ctx)
	if err != nil {
		return nil, ImportError(runID, "creating indexes", err)
	}
	if len(rep.Failed) > 0 {
		gn.Warn("Could not create indexes: %v", rep.Failed)
	}

	res.TotalRecords = res.RoomsImported + res.StudentsImported
	res.Duration = time.Since(start)

	slog.Info("Import finished",
		"run_id", runID,
		"rooms", res.RoomsImported,
		"students", res.StudentsImported,
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	gn.Info("Imported <em>%s</em> records in %s",
		humanize.Comma(res.TotalRecords), gnfmt.TimeString(res.Duration.Seconds()))
	return &res, nil
}

func (im *importer) insertStudents(
	ctx context.Context,
	recs []loader.Record,
) (int64, error) {
	im.bar = newProgressBar(len(recs), "Students: ")
	defer func() {
		im.bar.Finish()
		im.bar = nil
	}()

	return im.students.InsertStudents(ctx, recs)
}

// advance moves the progress bar by rows sent to the database.
func (im *importer) advance(rows int) {
	if im.bar != nil {
		im.bar.Add(rows)
	}
}
