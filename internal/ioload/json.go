package ioload

import (
	"github.com/gnames/gnfmt"
	"github.com/gnames/roomdb/pkg/loader"
)

type jsonLoader struct {
	enc gnfmt.Encoder
}

// NewJSON creates a loader of files with a JSON array of objects.
func NewJSON() loader.Loader {
	return &jsonLoader{enc: gnfmt.GNjson{}}
}

func (l *jsonLoader) Format() string {
	return "json"
}

func (l *jsonLoader) LoadStudents(path string) ([]loader.Record, error) {
	return l.load(path, studentEntity)
}

func (l *jsonLoader) LoadRooms(path string) ([]loader.Record, error) {
	return l.load(path, roomEntity)
}

func (l *jsonLoader) load(path, entity string) ([]loader.Record, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	if err = l.enc.Decode(data, &doc); err != nil {
		return nil, DataImportError(path, err)
	}
	return toRecords(path, entity, doc)
}
