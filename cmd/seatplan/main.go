package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/arnavshah/seatplan-api/pkg/config"
	"github.com/arnavshah/seatplan-api/pkg/examapi"
	"github.com/arnavshah/seatplan-api/pkg/models"
	"github.com/arnavshah/seatplan-api/pkg/seating"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(config.Load()).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type cli struct {
	cfg    config.Config
	api    string
	format string
	strict bool
}

func newRootCmd(cfg config.Config) *cobra.Command {
	c := &cli{cfg: cfg}

	root := &cobra.Command{
		Use:          "seatplan",
		Short:        "Arrange exam seating so neighbours sit different programs",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.api, "api", cfg.ExamAPIBaseURL, "exam API base URL")

	arrange := &cobra.Command{
		Use:   "arrange <examId>",
		Short: "Print the seating arrangement of an exam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, result, err := c.run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), data, result)
		},
	}
	arrange.Flags().StringVarP(&c.format, "format", "f", "text", "output format: text, csv or json")
	arrange.Flags().BoolVar(&c.strict, "strict", false, "leave a seat empty instead of seating two students of one program side by side")

	stats := &cobra.Command{
		Use:   "stats <examId>",
		Short: "Print occupancy statistics of an exam as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := c.run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				RunID      string              `json:"runId"`
				Statistics seating.Statistics  `json:"statistics"`
				Violations []seating.Violation `json:"violations"`
			}{result.RunID, seating.Stats(result), seating.Violations(result)})
		},
	}
	stats.Flags().BoolVar(&c.strict, "strict", false, "leave a seat empty instead of seating two students of one program side by side")

	var program, semester, roll int
	find := &cobra.Command{
		Use:   "find <examId>",
		Short: "Print the seat of one student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := c.run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			label := models.Student{ProgramCode: program, Semester: semester, Roll: roll}.Label()
			seat, ok := seating.FindSeat(result, program, semester, roll)
			if !ok {
				if u, unseated := seating.FindUnseated(result, program, semester, roll); unseated {
					return errors.Errorf("student %s has no seat: %s", label, u.Reason)
				}
				return errors.Errorf("student %s is not part of exam %s", label, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: room %d, row %d, bench %d, seat %d\n",
				label, seat.RoomNo, seat.Row+1, seat.Bench+1, seat.Position+1)
			if seat.Forced {
				fmt.Fprintln(cmd.OutOrStdout(), "next to a student of the same program")
			}
			return nil
		},
	}
	find.Flags().IntVarP(&program, "program", "p", 0, "program code")
	find.Flags().IntVarP(&semester, "semester", "s", 0, "semester")
	find.Flags().IntVarP(&roll, "roll", "r", 0, "roll number")
	find.Flags().BoolVar(&c.strict, "strict", false, "leave a seat empty instead of seating two students of one program side by side")
	for _, name := range []string{"program", "semester", "roll"} {
		_ = find.MarkFlagRequired(name)
	}

	root.AddCommand(arrange, stats, find)
	return root
}

// run fetches an exam and allocates it
func (c *cli) run(ctx context.Context, arg string) (*models.ExamData, models.AllocationResult, error) {
	examID, err := strconv.Atoi(arg)
	if err != nil {
		return nil, models.AllocationResult{}, errors.Errorf("exam id %q is not a number", arg)
	}

	client := examapi.NewClient(c.api, examapi.WithTimeout(c.timeout()))
	data, err := client.ExamSnapshot(ctx, examID)
	if err != nil {
		return nil, models.AllocationResult{}, errors.Wrapf(err, "load exam %d", examID)
	}
	if err := seating.CheckRooms(data.Rooms); err != nil {
		return nil, models.AllocationResult{}, err
	}

	var opts []seating.Option
	if c.strict {
		opts = append(opts, seating.WithStrictAdjacency())
	}
	return data, seating.Allocate(data.Programs, data.Students, data.Rooms, opts...), nil
}

func (c *cli) timeout() time.Duration {
	if c.cfg.ExamAPITimeout > 0 {
		return c.cfg.ExamAPITimeout
	}
	return 10 * time.Second
}

func (c *cli) print(w io.Writer, data *models.ExamData, result models.AllocationResult) error {
	switch c.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "csv":
		return seating.WriteCSV(w, result)
	case "text":
		fmt.Fprintf(w, "Exam %d", data.ExamID)
		if data.ExamDate != "" {
			fmt.Fprintf(w, " on %s", data.ExamDate)
		}
		fmt.Fprintf(w, ": %d of %d students seated\n\n", result.SeatedStudents, result.TotalStudents)
		for _, ra := range result.Rooms {
			if err := seating.RenderText(w, ra); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
		for _, u := range result.Unseated {
			fmt.Fprintf(w, "unseated %s: %s\n", u.Student.Label(), u.Reason)
		}
		return nil
	default:
		return errors.Errorf("unknown format %q", c.format)
	}
}
