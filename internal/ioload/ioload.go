// Package ioload provides file loaders of room and student records for
// json, yaml and sqlite formats.
package ioload

import (
	"fmt"
	"os"

	"github.com/gnames/gnlib"
	"github.com/gnames/roomdb/pkg/loader"
)

const (
	roomEntity    = "room"
	studentEntity = "student"
)

var requiredKeys = map[string][]string{
	roomEntity:    {"id", "name"},
	studentEntity: {"id", "name", "birthday", "sex"},
}

// NewRegistry returns a registry with all supported loaders.
func NewRegistry() *loader.Registry {
	return loader.NewRegistry(
		NewJSON(),
		NewYAML(),
		NewSQLite(),
	)
}

// readFile returns the content of a file or DataImportError.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, DataImportError(path, err)
	}
	return data, nil
}

// toRecords checks that the decoded document is a list of objects with
// required keys and converts it to records.
func toRecords(path, entity string, doc any) ([]loader.Record, error) {
	list, ok := doc.([]any)
	if !ok {
		return nil, StructureError(path, entity, "document is not a list")
	}

	res := make([]loader.Record, len(list))
	for i, v := range list {
		rec, ok := v.(map[string]any)
		if !ok {
			return nil, StructureError(path, entity,
				fmt.Sprintf("item %d is not an object", i))
		}
		res[i] = rec
	}

	if err := checkRecords(path, entity, res); err != nil {
		return nil, err
	}
	return res, nil
}

// checkRecords verifies required keys and repairs UTF-8 of strings.
func checkRecords(path, entity string, recs []loader.Record) error {
	for i, rec := range recs {
		for _, k := range requiredKeys[entity] {
			if _, ok := rec[k]; !ok {
				return StructureError(path, entity,
					fmt.Sprintf("item %d has no field '%s'", i, k))
			}
		}
		for k, v := range rec {
			if s, ok := v.(string); ok {
				rec[k] = gnlib.FixUtf8(s)
			}
		}
	}
	return nil
}
