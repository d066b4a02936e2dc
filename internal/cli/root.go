package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hamster/internal/config"
	"hamster/internal/repository"
	"hamster/internal/service"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DatabasePath string
	LogSQL       bool

	// Now is the clock used for commands acting on the current time.
	Now func() time.Time

	config config.Config
}

// App is the set of stores a command works with, built after the schema has
// been migrated.
type App struct {
	db         *gorm.DB
	Categories *repository.CategoryRepository
	Activities *repository.ActivityRepository
	Facts      *service.FactService
	Overview   *service.CategoryService
	Config     config.Config
}

// Close releases the database connection.
func (a *App) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewRootCommand creates the root command for the hamster CLI.
func NewRootCommand(cfg config.Config) *cobra.Command {
	return newRootCommand(&RootOptions{Now: time.Now, config: cfg})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cfg := opts.config

	cmd := &cobra.Command{
		Use:           "hamster",
		Short:         "Track where your time goes",
		Long:          "Record what you work on through the day and keep activities sorted in categories.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DatabasePath, "db", cfg.DatabasePath, "path to the database file")
	cmd.PersistentFlags().BoolVar(&opts.LogSQL, "log-sql", cfg.LogSQL, "log every SQL statement")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewStartCommand(opts))
	cmd.AddCommand(NewStopCommand(opts))
	cmd.AddCommand(NewTodayCommand(opts))
	cmd.AddCommand(NewFactCommand(opts))
	cmd.AddCommand(NewActivityCommand(opts))
	cmd.AddCommand(NewCategoryCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

func (o *RootOptions) logLevel() logger.LogLevel {
	if o.LogSQL {
		return logger.Info
	}
	return logger.Warn
}

func (o *RootOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// open migrates the database and builds the stores.
func (o *RootOptions) open(ctx context.Context) (*App, error) {
	db, err := repository.NewDB(ctx, o.DatabasePath, o.logLevel())
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	categoryRepo := repository.NewCategoryRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	factRepo := repository.NewFactRepository(db)

	cfg := o.config
	cfg.DatabasePath = o.DatabasePath
	cfg.LogSQL = o.LogSQL

	return &App{
		db:         db,
		Categories: categoryRepo,
		Activities: activityRepo,
		Facts:      service.NewFactService(factRepo, activityRepo),
		Overview:   service.NewCategoryService(categoryRepo, activityRepo),
		Config:     cfg,
	}, nil
}

// withApp opens the stores for the duration of fn.
func (o *RootOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := o.open(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(ctx, app)
}
