// Package loader defines how raw room and student records are read from
// files. Concrete variants live in internal/ioload, they are looked up by
// their format name in a Registry.
package loader

// Record is a raw loaded record: a mapping from field names to values as
// the source file provides them.
type Record = map[string]any

// Loader reads rooms and students from files of one format.
type Loader interface {
	// Format returns the unique name of the file format, for example 'json'.
	Format() string

	// LoadStudents reads student records from path. Records are
	// structurally validated before they are returned.
	LoadStudents(path string) ([]Record, error)

	// LoadRooms reads room records from path. Records are
	// structurally validated before they are returned.
	LoadRooms(path string) ([]Record, error)
}
