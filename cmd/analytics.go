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

	"github.com/gnames/gn"
	"github.com/gnames/roomdb/internal/ioanalytics"
	"github.com/gnames/roomdb/internal/iometrics"
	"github.com/gnames/roomdb/pkg/analytics"
	"github.com/gnames/roomdb/pkg/lifecycle"
	"github.com/spf13/cobra"
)

type analyticsFlags struct {
	report     bool
	roomCounts bool
	youngest   int
	ageGaps    int
	mixed      bool
	json       bool

	// youngestSet and ageGapsSet are true when the flags are given, a
	// non-positive value then means the configured top_n.
	youngestSet bool
	ageGapsSet  bool
}

// getAnalyticsCmd returns the analytics command.
func getAnalyticsCmd() *cobra.Command {
	var fl analyticsFlags

	analyticsCmd := &cobra.Command{
		Use:   "analytics",
		Short: "Run analytical queries about rooms",
		Long: `Run analytical queries about rooms and their students.

Without flags the full report is shown. Top-N lists use 'analytics.top_n'
from the configuration unless a number is given.

Examples:
  roomdb analytics --report
  roomdb analytics --room-counts --mixed-gender
  roomdb analytics --youngest-rooms 3 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalytics(cmd, fl)
		},
	}

	f := analyticsCmd.Flags()
	f.BoolVar(&fl.report, "report", false, "full analytics report")
	f.BoolVar(&fl.roomCounts, "room-counts", false,
		"number of students in every room")
	f.IntVar(&fl.youngest, "youngest-rooms", 0,
		"N rooms with the smallest average age")
	f.IntVar(&fl.ageGaps, "age-gaps", 0,
		"N rooms with the largest age difference")
	f.BoolVar(&fl.mixed, "mixed-gender", false,
		"rooms with both male and female students")
	f.BoolVar(&fl.json, "json", false, "output in JSON format")

	return analyticsCmd
}

func runAnalytics(cmd *cobra.Command, fl analyticsFlags) error {
	ctx := context.Background()
	w := cmd.OutOrStdout()

	fl.youngestSet = cmd.Flags().Changed("youngest-rooms")
	fl.ageGapsSet = cmd.Flags().Changed("age-gaps")
	topN := func(n int) int {
		if n <= 0 {
			return cfg.Analytics.TopN
		}
		return n
	}

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	repo := ioanalytics.New(op, iometrics.NewCollector(op))

	partial := fl.roomCounts || fl.mixed || fl.youngestSet || fl.ageGapsSet
	if fl.report || !partial {
		rep, err := repo.GenerateReport(ctx, cfg.Analytics.TopN)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		if fl.json {
			return printJSON(w, rep)
		}
		printReport(w, rep)
		return nil
	}

	rep, err := partialReport(ctx, repo, fl, topN)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if fl.json {
		return printJSON(w, rep)
	}
	printReport(w, rep)
	return nil
}

// partialReport runs only requested queries. Sections that were not
// requested stay nil and are not printed.
func partialReport(
	ctx context.Context,
	repo lifecycle.AnalyticsRepository,
	fl analyticsFlags,
	topN func(int) int,
) (*analytics.Report, error) {
	var res analytics.Report
	var err error

	if fl.roomCounts {
		if res.RoomStudentCounts, err = repo.RoomStudentCounts(ctx); err != nil {
			return nil, err
		}
	}
	if fl.youngestSet {
		if res.YoungestRooms, err = repo.TopRoomsByAverageAge(ctx, topN(fl.youngest)); err != nil {
			return nil, err
		}
	}
	if fl.ageGapsSet {
		if res.AgeGapRooms, err = repo.TopRoomsByAgeDifference(ctx, topN(fl.ageGaps)); err != nil {
			return nil, err
		}
	}
	if fl.mixed {
		if res.MixedGenderRooms, err = repo.MixedGenderRooms(ctx); err != nil {
			return nil, err
		}
	}
	res.Summary = analytics.Summarize(res.RoomStudentCounts, res.MixedGenderRooms)
	return &res, nil
}

func printReport(w io.Writer, rep *analytics.Report) {
	if rep.RoomStudentCounts != nil {
		title(w, "Students per room")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ROOM ID\tROOM\tSTUDENTS")
		for _, v := range rep.RoomStudentCounts {
			fmt.Fprintf(tw, "%d\t%s\t%d\n", v.RoomID, v.RoomName, v.StudentCount)
		}
		tw.Flush()
	}

	if rep.YoungestRooms != nil {
		title(w, "Rooms with the smallest average age")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ROOM ID\tROOM\tAVERAGE AGE\tSTUDENTS")
		for _, v := range rep.YoungestRooms {
			fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\n",
				v.RoomID, v.RoomName, v.AverageAge, v.StudentCount)
		}
		tw.Flush()
	}

	if rep.AgeGapRooms != nil {
		title(w, "Rooms with the largest age difference")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ROOM ID\tROOM\tDIFFERENCE\tMIN\tMAX\tSTUDENTS")
		for _, v := range rep.AgeGapRooms {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\n", v.RoomID, v.RoomName,
				v.AgeDifference, v.MinAge, v.MaxAge, v.StudentCount)
		}
		tw.Flush()
	}

	if rep.MixedGenderRooms != nil {
		title(w, "Mixed gender rooms")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ROOM ID\tROOM\tMALE\tFEMALE\tTOTAL")
		for _, v := range rep.MixedGenderRooms {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", v.RoomID, v.RoomName,
				v.MaleCount, v.FemaleCount, v.TotalStudents)
		}
		tw.Flush()
	}

	if rep.RoomStudentCounts != nil {
		title(w, "Summary")
		fmt.Fprintf(w, "rooms analyzed:      %d\n", rep.Summary.TotalRoomsAnalyzed)
		fmt.Fprintf(w, "rooms with students: %d\n", rep.Summary.RoomsWithStudents)
		fmt.Fprintf(w, "mixed gender rooms:  %d\n", rep.Summary.MixedGenderRoomCount)
	}
}
