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

// getDropCmd returns the drop command.
func getDropCmd() *cobra.Command {
	var force bool

	dropCmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop rooms and students tables",
		Long: `Drop students and rooms tables with all their data.

Students are dropped first because they reference rooms. The age
trigger function and the sex enum type are removed as well.

Use --force to skip confirmation.

Examples:
  roomdb drop
  roomdb drop --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrop(cmd, args, force)
		},
	}

	dropCmd.Flags().BoolVarP(&force, "force", "f",
		false, "drop tables without confirmation")

	return dropCmd
}

func runDrop(cmd *cobra.Command, _ []string, force bool) error {
	ctx := context.Background()

	if !force {
		gn.Warn("All rooms and students will be deleted.")
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Do you want to continue?") {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	if err = ioschema.NewManager(op).DropTables(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Tables dropped")
	return nil
}
