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
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/roomdb/internal/iometrics"
	"github.com/gnames/roomdb/internal/iorepo"
	"github.com/gnames/roomdb/internal/ioschema"
	"github.com/gnames/roomdb/pkg/schema"
	"github.com/spf13/cobra"
)

// getStatusCmd returns the status command.
func getStatusCmd() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show database connectivity, tables and pool state",
		Long: `Show the state of the roomdb database.

The report includes connectivity, size of tables, numbers of rooms
and students and connection pool metrics.

Examples:
  roomdb status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, args)
		},
	}

	return statusCmd
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	w := cmd.OutOrStdout()

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	metrics := iometrics.NewCollector(op)

	if !op.TestConnectivity(ctx) {
		gn.Warn("Database <em>%s</em> is not reachable", cfg.Database.Database)
		return nil
	}
	gn.Info("Database is reachable")

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	sm := ioschema.NewManager(op)
	if !hasTables {
		gn.Warn("Database is empty, run 'roomdb create' first")
	} else if !sm.TableExists(ctx, "rooms") || !sm.TableExists(ctx, "students") {
		gn.Warn("Tables are missing, run 'roomdb create' first")
	} else {
		printTables(w, sm.TableInfo(ctx))

		rooms := iorepo.NewRoomRepository(op, metrics)
		students := iorepo.NewStudentRepository(op, metrics)
		title(w, "Records")
		fmt.Fprintf(w, "rooms:    %s\n", humanize.Comma(rooms.CountRooms(ctx)))
		fmt.Fprintf(w, "students: %s\n", humanize.Comma(students.CountStudents(ctx)))
	}

	snap, err := iometrics.Snapshot(iometrics.NewRegistry(metrics))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	printPool(w, snap)
	return nil
}

func printTables(w io.Writer, tables []schema.TableInfo) {
	title(w, "Tables")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tROWS\tSIZE MB\tDATA MB\tINDEX MB")
	for _, v := range tables {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\n",
			v.TableName, humanize.Comma(v.RowCount),
			v.SizeMB, v.DataSizeMB, v.IndexSizeMB)
	}
	tw.Flush()
}

func printPool(w io.Writer, snap map[string]float64) {
	title(w, "Connection pool")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"max connections", "roomdb_pool_max_conns"},
		{"open connections", "roomdb_pool_total_conns"},
		{"in use", "roomdb_pool_acquired_conns"},
		{"idle", "roomdb_pool_idle_conns"},
		{"acquires", "roomdb_pool_acquire_total"},
		{"timed operations", "roomdb_operation_duration_seconds"},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.0f\n", r[0], snap[r[1]])
	}
	tw.Flush()
}
