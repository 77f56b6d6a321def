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

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/internal/ioschema"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the roomdb database schema.

This command:
  1. Creates the PostgreSQL database if it does not exist
  2. Creates rooms and students tables with their indexes
  3. Installs the trigger that keeps student age up to date
  4. Creates composite indexes for analytical queries

The command is idempotent, existing objects are left intact.

Examples:
  roomdb create`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args)
		},
	}

	return createCmd
}

func runCreate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	sm := ioschema.NewManager(op)

	if err = sm.CreateDatabase(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Creating tables...")
	if err = sm.CreateTables(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Creating analytical indexes...")
	rep, err := sm.CreateIndexes(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Indexes created: %d, already present: %d, failed: %d",
		len(rep.Created), len(rep.Skipped), len(rep.Failed))

	gn.Info(`Database schema creation complete!

Next steps:
  - Run 'roomdb import' to load students and rooms
  - Run 'roomdb analytics --report' to see the results`)

	return nil
}
