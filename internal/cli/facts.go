package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hamster/internal/model"
	"hamster/internal/service"
)

const dateLayout = "2006-01-02"

// NewStartCommand creates the start command.
func NewStartCommand(rootOpts *RootOptions) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "start <activity>",
		Short: "Switch to an activity",
		Long: `Switch to an activity, closing the one that is running.

Starting the running activity again changes nothing. Switching again within
a minute replaces the previous entry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := resolveClock(rootOpts.now(), at)
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			return rootOpts.withApp(cmd, func(ctx context.Context, app *App) error {
				fact, err := app.Facts.AddFact(ctx, name, when)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s since %s\n", fact.ActivityName, fact.StartTime.Format("15:04"))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "start time today (HH:MM), defaults to now")
	return cmd
}

// NewStopCommand creates the stop command.
func NewStopCommand(rootOpts *RootOptions) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Close the running activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := resolveClock(rootOpts.now(), at)
			if err != nil {
				return err
			}
			return rootOpts.withApp(cmd, func(ctx context.Context, app *App) error {
				fact, err := app.Facts.Stop(ctx, when)
				if err != nil {
					return err
				}
				if fact == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "no activity")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "stopped %s after %s\n", fact.ActivityName, formatDuration(fact.Duration(when)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "stop time today (HH:MM), defaults to now")
	return cmd
}

// NewTodayCommand creates the today command.
func NewTodayCommand(rootOpts *RootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "List the facts of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := rootOpts.now()
			day := now
			if date != "" {
				parsed, err := time.ParseInLocation(dateLayout, date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				day = parsed
			}
			return rootOpts.withApp(cmd, func(ctx context.Context, app *App) error {
				facts, err := app.Facts.Facts(ctx, day)
				if err != nil {
					return err
				}
				writeFacts(cmd.OutOrStdout(), facts, now)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to list (YYYY-MM-DD), defaults to today")
	return cmd
}

// NewFactCommand creates the fact command group.
func NewFactCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fact",
		Short: "Edit recorded facts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a fact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rootOpts.withApp(cmd, func(ctx context.Context, app *App) error {
				if _, err := app.Facts.Fact(ctx, id); err != nil {
					return err
				}
				if err := app.Facts.RemoveFact(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed fact %d\n", id)
				return nil
			})
		},
	})

	return cmd
}

func writeFacts(w io.Writer, facts []model.FactEntry, now time.Time) {
	if len(facts) == 0 {
		fmt.Fprintln(w, "no facts")
		return
	}

	var total time.Duration
	for _, fact := range facts {
		end := "..."
		if !fact.Open() {
			end = fact.EndTime.Format("15:04")
		}
		d := fact.Duration(now)
		total += d
		fmt.Fprintf(w, "%4d  %s-%-5s  %-24s %-24s %s\n",
			fact.ID, fact.StartTime.Format("15:04"), end, fact.ActivityName, fact.CategoryName, formatDuration(d))
	}
	fmt.Fprintf(w, "total %s\n", formatDuration(total))
}

// resolveClock returns now, or the given HH:MM on the day of now.
func resolveClock(now time.Time, at string) (time.Time, error) {
	if at == "" {
		return now, nil
	}
	clock, err := service.ParseClock(at)
	if err != nil {
		return time.Time{}, err
	}
	return clock.On(now), nil
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Minute)
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
