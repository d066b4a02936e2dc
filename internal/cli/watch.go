package cli

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"hamster/internal/service"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Report the running activity and close it at the end of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(cmd, func(ctx context.Context, app *App) error {
				dayEnd, err := service.ParseClock(app.Config.DayEnd)
				if err != nil {
					return err
				}

				scheduler := service.NewSchedulerService(time.Local)
				watcher := service.NewWatcher(app.Facts, scheduler, dayEnd, app.Config.StatusInterval)
				if err := watcher.Schedule(); err != nil {
					return err
				}
				if err := watcher.ReportStatus(ctx); err != nil {
					return err
				}

				scheduler.Start()
				defer scheduler.Stop()

				log.Printf("[info] watching, day ends at %s", dayEnd)
				<-ctx.Done()
				log.Println("[info] watch stopped")
				return nil
			})
		},
	}
}
