package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dtroode/basketd/database"
	httpctx "github.com/dtroode/basketd/internal/api/http/context"
	"github.com/dtroode/basketd/internal/api/http/router"
	httpserver "github.com/dtroode/basketd/internal/api/http/server"
	"github.com/dtroode/basketd/internal/model"
	"github.com/dtroode/basketd/internal/repository/postgres"
	"github.com/dtroode/basketd/internal/server"
	"github.com/dtroode/basketd/internal/service"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func runServe(ctx context.Context, out io.Writer) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.migrate(ctx); err != nil {
		return err
	}

	accountRepo := postgres.NewAccountRepository(a.db)
	productRepo := postgres.NewProductRepository(a.db)
	basketRepo := postgres.NewBasketRepository(a.db)

	services := router.Services{
		Baskets:  service.NewBasket(basketRepo, a.logger),
		Catalog:  service.NewCatalog(productRepo, a.logger),
		Verifier: service.NewAuth(accountRepo, a.hasher, a.logger),
		Resetter: database.NewSeeder(a.sqlDB, a.hasher),
		Pinger:   a.db,
	}
	if a.cfg.Debug {
		a.logger.Warn("debug mode is on: database reset is exposed and error details are disclosed")
	}

	r := router.New(services, httpctx.NewManager(), a.logger, a.cfg.Debug)
	srv := httpserver.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", a.cfg.HTTP.Port), httpserver.Timeouts{
		Read:  a.cfg.HTTP.ReadTimeout,
		Write: a.cfg.HTTP.WriteTimeout,
		Idle:  a.cfg.HTTP.IdleTimeout,
	})

	var sl model.SecurityLayer
	if a.cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(a.cfg.HTTP.CertFileName, a.cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	logAppVersion(out)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("Starting server on", "address", srv.Address(), "https", a.cfg.HTTP.EnableHTTPS)
		if err := srv.Start(sl); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("received interruption signal, shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			a.logger.Error("error during server shutdown", "error", err.Error(), "address", srv.Address())
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("server stopped with error", "error", err.Error())
		return err
	}

	a.logger.Info("shutdown complete")
	return nil
}
