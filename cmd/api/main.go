package main

import (
	"fmt"
	"os"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/config"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/database"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/logger"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := &cli.App{
		Name:   "telugu-association",
		Usage:  "Telugu Association membership backend",
		Action: serve,
		Commands: []*cli.Command{
			serveCommand,
			migrateCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Migrate the schema and seed the administrator account",
	Action: func(cCtx *cli.Context) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := openDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer database.Close(db)

		return migrate(db, cfg, log)
	},
}

// bootstrap loads the configuration and builds the process logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}

func openDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewDatabase(database.Options{
		Dialect:      cfg.Database.Dialect,
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}, log)
	if err != nil {
		return nil, err
	}
	log.Info("database connected", zap.String("dialect", cfg.Database.Dialect))
	return db, nil
}

func migrate(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	if err := database.RunMigrations(db); err != nil {
		return err
	}
	seeded, err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if seeded {
		log.Info("administrator account created", zap.String("email", cfg.AdminEmail))
	}
	log.Info("migrations applied")
	return nil
}
