// The sweep binary runs one overdue-notification pass and exits. It is
// meant to be invoked by cron (or equivalent); exit status is non-zero when
// any candidate failed, so schedulers can alert on it.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rayroman1160/agencyos/internal/config"
	"github.com/rayroman1160/agencyos/internal/service"
	"github.com/rayroman1160/agencyos/internal/store"
	"github.com/rayroman1160/agencyos/pkg/email"
)

func main() {
	var (
		cooldown time.Duration
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:          "sweep",
		Short:        "Scan overdue tasks and notify their assignees",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cooldown, dryRun)
		},
	}
	cmd.Flags().DurationVar(&cooldown, "cooldown", 0,
		"minimum gap between notifications for the same task (default from SWEEP_COOLDOWN, 24h)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"report what would be sent without sending or stamping")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cooldown time.Duration, dryRun bool) error {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cooldown <= 0 {
		cooldown = cfg.Sweep.Cooldown
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	db, err := store.Connect(store.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var notifier email.Notifier
	if cfg.SMTP.TestingMode {
		log.Info("Using mock notifier (EMAIL_TESTING_MODE)")
		notifier = email.NewMockNotifier()
	} else {
		notifier = email.NewSMTPNotifier(&email.Config{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			Username:  cfg.SMTP.Username,
			Password:  cfg.SMTP.Password,
			FromEmail: cfg.SMTP.FromEmail,
			FromName:  cfg.SMTP.FromName,
		})
	}

	sweep := service.NewOverdueSweep(store.NewTaskStore(db), store.NewUserStore(db), notifier, log)
	sweep.DryRun = dryRun

	report, err := sweep.Run(ctx, time.Now().UTC(), cooldown)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"notified":            report.Notified,
		"skipped_no_assignee": report.SkippedNoAssignee,
		"skipped_cooldown":    report.SkippedCooldown,
		"failed":              report.Failed,
	}).Info("sweep complete")

	if report.Failed > 0 {
		return fmt.Errorf("%d notifications failed", report.Failed)
	}
	return nil
}
