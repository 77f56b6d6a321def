/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/internal/ioimport"
	"github.com/gnames/roomdb/internal/ioload"
	"github.com/gnames/roomdb/internal/iometrics"
	"github.com/gnames/roomdb/pkg/config"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var students, rooms, format string

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import students and rooms from files",
		Long: `Import students and rooms from files into the database.

This command:
  1. Creates the database and tables if they are missing
  2. Reads rooms and students with the loader of the given format
  3. Upserts rooms, then students, so repeated imports are safe
  4. Creates composite indexes for analytical queries

Supported formats: json, yaml, sqlite. For sqlite both flags may point to
the same file with 'rooms' and 'students' tables.

Examples:
  roomdb import --students students.json --rooms rooms.json
  roomdb import -s data.sqlite -r data.sqlite --format sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, students, rooms, format)
		},
	}

	importCmd.Flags().StringVarP(&students, "students", "s", "",
		"path to the students file")
	importCmd.Flags().StringVarP(&rooms, "rooms", "r", "",
		"path to the rooms file")
	importCmd.Flags().StringVarP(&format, "format", "F", "",
		"format of input files (json, yaml, sqlite)")

	return importCmd
}

func runImport(cmd *cobra.Command, students, rooms, format string) error {
	ctx := context.Background()

	var flagOpts []config.Option
	if cmd.Flags().Changed("format") {
		flagOpts = append(flagOpts, config.OptImportFormat(format))
	}
	if students != "" {
		flagOpts = append(flagOpts, config.OptImportStudentsFile(students))
	}
	if rooms != "" {
		flagOpts = append(flagOpts, config.OptImportRoomsFile(rooms))
	}
	cfg.Update(flagOpts)

	if cfg.Import.StudentsFile == "" || cfg.Import.RoomsFile == "" {
		err := errors.New("both --students and --rooms are required")
		gn.PrintErrorMessage(err)
		return err
	}

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	metrics := iometrics.NewCollector(op)
	im := ioimport.New(cfg, op, ioload.NewRegistry(), metrics)

	res, err := im.Import(ctx, cfg.Import.StudentsFile, cfg.Import.RoomsFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return printJSON(cmd.OutOrStdout(), res)
}
