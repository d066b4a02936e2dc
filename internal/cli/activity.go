package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hamster/internal/model"
)

// NewActivityCommand creates the activity command group.
func NewActivityCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"activities"},
		Short:   "Manage activities",
	}

	cmd.AddCommand(newActivityListCommand(rootOpts))
	cmd.AddCommand(newActivityAddCommand(rootOpts))
	cmd.AddCommand(newActivityRenameCommand(rootOpts))
	cmd.AddCommand(newActivityMoveCommand(rootOpts))
	cmd.AddCommand(newActivitySwapCommand(rootOpts))
	cmd.AddCommand(newActivityPlaceCommand(rootOpts))
	cmd.AddCommand(newActivityRemoveCommand(rootOpts))

	return cmd
}

func newActivityListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		category string
		sorted   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities",
		Long: `List activities that are not deleted.

Without flags activities are listed by name. --category lists one category
in its manual order (-1 is the unsorted bucket, listed by name). --sorted
lists all categorized activities in display order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(cmd, func(ctx context.Context, app *App) error {
				var (
					activities []model.Activity
					err        error
				)
				switch {
				case sorted:
					activities, err = app.Activities.ListSorted(ctx)
				case category != "":
					var id int
					id, err = parseID(category)
					if err == nil {
						activities, err = app.Activities.ListInCategory(ctx, id)
					}
				default:
					activities, err = app.Activities.List(ctx)
				}
				if err != nil {
					return err
				}
				writeActivities(cmd.OutOrStdout(), activities)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category id to list")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "list categorized activities in display order")
	return cmd
}

func newActivityAddCommand(rootOpts *RootOptions) *cobra.Command {
	var categoryID int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an activity",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return rootOpts.withApp(cmd, func(ctx context.Context, app *App) error {
				id, err := app.Activities.Insert(ctx, name, categoryID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created activity %d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&categoryID, "category", model.UnsortedCategoryID, "category id")
	return cmd
}

func newActivityRenameCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename an activity",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			return rootOpts.withApp(cmd, func(ctx context.Context, app *App) error {
				activity, err := app.Activities.Get(ctx, id)
				if err != nil {
					return err
				}
				return app.Activities.Update(ctx, id, name, activity.CategoryID)
			})
		},
	}
}

func newActivityMoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <category-id>",
		Short: "Move an activity to the end of a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return rootOpts.withApp(cmd, func(ctx context.Context, app *App) error {
				if ids[1] != model.UnsortedCategoryID {
					if _, err := app.Categories.Get(ctx, ids[1]); err != nil {
						return err
					}
				}
				return app.Activities.ChangeCategory(ctx, ids[0], ids[1])
			})
		},
	}
}

func newActivitySwapCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <id> <id>",
		Short: "Swap the order of two neighbouring activities",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return rootOpts.withApp(cmd, func(ctx context.Context, app *App) error {
				return app.Activities.Swap(ctx, ids[0], ids[1])
			})
		},
	}
}

func newActivityPlaceCommand(rootOpts *RootOptions) *cobra.Command {
	var after bool

	cmd := &cobra.Command{
		Use:   "place <id> <order>",
		Short: "Put an activity at a position, shifting the ones behind it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			order, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid order %q", args[1])
			}
			return rootOpts.withApp(cmd, func(ctx context.Context, app *App) error {
				return app.Activities.MoveTo(ctx, id, order, after)
			})
		},
	}

	cmd.Flags().BoolVar(&after, "after", false, "place right after the given position")
	return cmd
}

func newActivityRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an activity",
		Long:  "Remove an activity. Activities with recorded facts are only marked deleted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return rootOpts.withApp(cmd, func(ctx context.Context, app *App) error {
				if _, err := app.Activities.Get(ctx, id); err != nil {
					return err
				}
				return app.Activities.Remove(ctx, id)
			})
		},
	}
}

func writeActivities(w io.Writer, activities []model.Activity) {
	if len(activities) == 0 {
		fmt.Fprintln(w, "no activities")
		return
	}
	for _, a := range activities {
		fmt.Fprintf(w, "%4d  %-32s category=%d order=%d\n", a.ID, a.Name, a.CategoryID, a.Order)
	}
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
