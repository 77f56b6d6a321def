package ioload

import (
	"github.com/gnames/roomdb/pkg/loader"
	"gopkg.in/yaml.v3"
)

type yamlLoader struct{}

// NewYAML creates a loader of files with a YAML sequence of mappings.
func NewYAML() loader.Loader {
	return yamlLoader{}
}

func (yamlLoader) Format() string {
	return "yaml"
}

func (l yamlLoader) LoadStudents(path string) ([]loader.Record, error) {
	return l.load(path, studentEntity)
}

func (l yamlLoader) LoadRooms(path string) ([]loader.Record, error) {
	return l.load(path, roomEntity)
}

func (yamlLoader) load(path, entity string) ([]loader.Record, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, DataImportError(path, err)
	}
	return toRecords(path, entity, doc)
}
