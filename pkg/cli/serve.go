package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pqops/relsnap/pkg/cli/config"
	controller "github.com/pqops/relsnap/pkg/controller/http"
	"github.com/pqops/relsnap/pkg/domain/interfaces"
	fsinfra "github.com/pqops/relsnap/pkg/infra/firestore"
	"github.com/pqops/relsnap/pkg/infra/jira"
	"github.com/pqops/relsnap/pkg/infra/memory"
	"github.com/pqops/relsnap/pkg/infra/sonarqube"
	"github.com/pqops/relsnap/pkg/usecase"
	"github.com/pqops/relsnap/pkg/utils/authtoken"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		sourcesCfg   config.Sources
		firestoreCfg config.Firestore
		authCfg      config.Auth
	)

	flags := append(serverCfg.Flags(), sourcesCfg.Flags()...)
	flags = append(flags, firestoreCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting relsnap server",
				slog.String("addr", serverCfg.Addr),
				slog.Bool("firestore", firestoreCfg.ProjectID != ""),
			)

			var (
				directory interfaces.ProductDirectory
				store     interfaces.SnapshotStore
			)
			if firestoreCfg.ProjectID != "" {
				fsClient, err := fsinfra.New(ctx, firestoreCfg.ProjectID)
				if err != nil {
					return err
				}
				defer fsClient.Close()
				directory, store = fsClient, fsClient
			} else {
				logger.Warn("No Firestore project configured, using in-memory store")
				mem := memory.New()
				directory, store = mem, mem
			}

			qualityClient := sonarqube.New(sonarqube.WithTimeout(sourcesCfg.Timeout))
			sprintClient := jira.New(jira.WithTimeout(sourcesCfg.Timeout))

			collectUC := usecase.NewCollect(directory, store, qualityClient, sprintClient)
			connectionUC := usecase.NewConnection(directory, qualityClient, sprintClient)

			serverOpts := []controller.Option{
				controller.WithAddr(serverCfg.Addr),
			}
			if authCfg.Secret != "" {
				issuer, err := authtoken.New(authCfg.Secret, authCfg.TokenLifetime)
				if err != nil {
					return err
				}
				serverOpts = append(serverOpts, controller.WithTokenIssuer(issuer))
			} else {
				logger.Warn("No token secret configured, API authentication is disabled")
			}

			server, err := controller.NewServer(ctx, collectUC, connectionUC, store, serverOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
