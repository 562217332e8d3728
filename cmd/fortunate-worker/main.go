package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/amqp"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/cli"
	applog "github.com/meheraj786/fortunate-business-management-sub001/internal/log"
	gsheet "github.com/meheraj786/fortunate-business-management-sub001/internal/sheets/google"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/worker"
)

func main() {
	var backfill bool

	cmd := &cobra.Command{
		Use:          "fortunate-worker",
		Short:        "Mirror submitted sales and team members into Google Sheets",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(backfill)
		},
	}
	cmd.Flags().BoolVar(&backfill, "backfill", false, "append every stored record once before consuming messages")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(backfill bool) error {
	cfg, logger := cli.LoadAndValidateConfig(applog.ComponentWorker)
	if err := cfg.ValidateWorker(); err != nil {
		logger.Error("Worker configuration invalid", applog.FieldError, err)
		return err
	}

	logger.Info("Starting fortunate-worker", "backfill", backfill)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	sheets, err := gsheet.NewFromEnv(context.Background())
	if err != nil {
		logger.WithComponent(applog.ComponentSheets).Error("Failed to initialize Google Sheets client", applog.FieldError, err)
		return err
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.WithComponent(applog.ComponentAMQP).Error("Failed to initialize AMQP client", applog.FieldError, err)
		return err
	}
	defer amqpClient.Close()

	mirror := worker.NewMirrorWorker(repo, sheets, sheets.SalesSheet(), sheets.TeamSheet())

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)
	g, gctx := errgroup.WithContext(ctx)

	if backfill {
		g.Go(func() error {
			n, err := mirror.Backfill(gctx)
			if err != nil {
				logger.Error("Backfill failed", applog.FieldError, err, "rows", n)
			}
			return nil
		})
	}

	g.Go(func() error {
		return amqpClient.ConsumeRecordSubmitted(gctx, mirror.HandleRecordMessage)
	})

	err = g.Wait()
	if ctx.Err() != nil {
		cli.WaitForShutdown(ctx, done)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", applog.FieldError, err)
		return err
	}
	logger.Info("Worker shutdown complete")
	return nil
}
