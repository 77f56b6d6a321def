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
	"github.com/gnames/roomdb/internal/ioadvisor"
	"github.com/gnames/roomdb/pkg/advisor"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
func getOptimizeCmd() *cobra.Command {
	var analyze, recommendations, asJSON bool

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Analyze query plans and suggest optimizations",
		Long: `Analyze execution plans of analytical queries.

With --analyze every analytical query is explained with
EXPLAIN (FORMAT JSON) and checked for full scans, nested loops, sorts
and temporary tables. Table and index usage statistics are shown too.
With --recommendations general schema advice is printed.
Without flags both are shown.

Examples:
  roomdb optimize --analyze
  roomdb optimize --recommendations
  roomdb optimize --analyze --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, analyze, recommendations, asJSON)
		},
	}

	optimizeCmd.Flags().BoolVarP(&analyze, "analyze", "a", false,
		"analyze analytical queries")
	optimizeCmd.Flags().BoolVarP(&recommendations, "recommendations", "r",
		false, "show schema recommendations")
	optimizeCmd.Flags().BoolVar(&asJSON, "json", false,
		"output in JSON format")

	return optimizeCmd
}

func runOptimize(
	cmd *cobra.Command,
	analyze, recommendations, asJSON bool,
) error {
	ctx := context.Background()
	w := cmd.OutOrStdout()
	if !analyze && !recommendations {
		analyze, recommendations = true, true
	}

	var rep *advisor.Report
	if analyze {
		op, err := connect(ctx)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		defer op.Close()

		rep = ioadvisor.New(op).AnalyzeAnalytics(ctx)
	}

	var recs []string
	if recommendations {
		recs = advisor.Recommendations()
	}

	if asJSON {
		return printJSON(w, struct {
			Analysis        *advisor.Report `json:"analysis,omitempty"`
			Recommendations []string        `json:"recommendations,omitempty"`
		}{rep, recs})
	}

	if rep != nil {
		printAnalysis(w, rep)
	}
	if len(recs) > 0 {
		title(w, "Recommendations")
		for i, v := range recs {
			fmt.Fprintf(w, "%d. %s\n", i+1, v)
		}
	}
	return nil
}

func printAnalysis(w io.Writer, rep *advisor.Report) {
	title(w, "Query analysis")
	for _, v := range rep.Queries {
		fmt.Fprintf(w, "%s:\n", v.Name)
		if v.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", v.Error)
			continue
		}
		for _, s := range v.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}

	title(w, "Table statistics")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tROWS\tSEQ SCANS\tINDEX SCANS\tDATA MB\tINDEX MB")
	for _, v := range rep.TableStatistics {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.2f\n", v.TableName,
			humanize.Comma(v.RowCount), humanize.Comma(v.SeqScans),
			humanize.Comma(v.IndexScans), v.DataSizeMB, v.IndexSizeMB)
	}
	tw.Flush()

	title(w, "Index usage")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tINDEX\tUNIQUE\tSCANS\tTUPLES READ")
	for _, v := range rep.IndexStatistics {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\n", v.TableName, v.IndexName,
			v.Unique, humanize.Comma(v.Scans), humanize.Comma(v.TuplesRead))
	}
	tw.Flush()
}
