package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cropmaster/config"
	"cropmaster/database"
	"cropmaster/pkg/logger"
	"cropmaster/pkg/middleware"
	"cropmaster/router"

	// Farmland
	landCtrlImp "cropmaster/pkg/farmland/controllerImp"
	"cropmaster/pkg/farmland/importer"
	landRepoImp "cropmaster/pkg/farmland/repositoryImp"
	"cropmaster/pkg/farmland/service"
	landSvcImp "cropmaster/pkg/farmland/serviceImp"

	// Health
	healthCtrlImp "cropmaster/pkg/health/controllerImp"
)

// app holds what every subcommand needs after boot.
type app struct {
	cfg config.AppConfig
	log *zap.Logger
	db  *gorm.DB
	svc service.FarmlandService
}

func boot() (*app, error) {
	cfg, envErr := config.Load()
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	if envErr != nil {
		log.Named("cfg").Debug("no .env file loaded", zap.Error(envErr))
	}
	log.Named("cfg").Info("config loaded",
		zap.String("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
		zap.Bool("metrics", cfg.MetricsEnabled),
	)

	db, err := database.Open(cfg.DBPath, log.Named("db"))
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, db: db, svc: landSvcImp.NewFarmlandService(landRepoImp.New(db))}, nil
}

func (a *app) serve(ctx context.Context) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLog(a.log.Named("http")))

	landCtrl := landCtrlImp.New(a.svc, a.log.Named("farmland"))
	hCtrl := healthCtrlImp.NewHealthCtrl(a.db)
	r := router.New(e, landCtrl, hCtrl, a.cfg.MetricsEnabled)

	errc := make(chan error, 1)
	go func() {
		a.log.Info("listening", zap.String("addr", ":"+a.cfg.Port))
		if err := r.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.log.Info("shutting down")
	return r.Shutdown(shutdownCtx)
}

func (a *app) importFile(ctx context.Context, path, sheet string) error {
	log := a.log.Named("import")
	res, err := importer.LoadXLSX(path, sheet)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for _, row := range res.Skipped {
		log.Warn("skipped unparsable row", zap.Int("row", row))
	}
	n, err := a.svc.ImportLands(ctx, res.Lands)
	if err != nil {
		return err
	}
	log.Info("imported land register", zap.String("file", path), zap.Int("lands", n), zap.Int("skipped", len(res.Skipped)))
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cropmaster",
		Short:         "Farmland ownership and crop registry service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := boot()
			if err != nil {
				return err
			}
			defer a.log.Sync()
			return a.serve(cmd.Context())
		},
	})

	var sheet string
	importCmd := &cobra.Command{
		Use:   "import <register.xlsx>",
		Short: "Bulk import farmland parcels from a land register workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := boot()
			if err != nil {
				return err
			}
			defer a.log.Sync()
			if sheet == "" {
				sheet = a.cfg.ImportSheet
			}
			return a.importFile(cmd.Context(), args[0], sheet)
		},
	}
	importCmd.Flags().StringVar(&sheet, "sheet", "", "worksheet to read (default $IMPORT_SHEET)")
	root.AddCommand(importCmd)

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "cropmaster:", err)
		stop()
		os.Exit(1)
	}
}
