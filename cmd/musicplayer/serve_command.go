package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/deusvagus/musicplayer/internal/browser"
	"github.com/deusvagus/musicplayer/internal/logging"
	"github.com/deusvagus/musicplayer/internal/prefs"
	"github.com/deusvagus/musicplayer/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bindFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the browser HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), ctx, strings.TrimSpace(bindFlag), cmd)
		},
	}
	cmd.Flags().StringVar(&bindFlag, "bind", "", "Listen address (overrides server.bind)")
	return cmd
}

func runServe(cmdCtx context.Context, ctx *commandContext, bind string, cmd *cobra.Command) error {
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if bind != "" {
		cfg.Server.Bind = bind
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another musicplayer server is running (lock %s)", cfg.LockPath())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release server lock", logging.Error(err))
		}
	}()

	b, err := ctx.loadBrowser(signalCtx)
	if err != nil {
		logging.ErrorWithContext(logger, "catalog load failed", "catalog_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check source.base_url and the manifest/data index"),
		)
		return err
	}

	store, err := prefs.Open(cfg)
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer store.Close()

	gin.SetMode(gin.ReleaseMode)
	reload := func(ctx context.Context) (*browser.Browser, error) {
		return browser.Load(ctx, cfg, logger)
	}
	srv, err := server.New(cfg, b, store, reload, logger)
	if err != nil {
		return err
	}
	if err := srv.Start(signalCtx); err != nil {
		return err
	}
	defer srv.Stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d albums on http://%s\n", len(b.Catalog().Albums), srv.Addr())
	<-signalCtx.Done()
	logger.Info("shutting down api server")
	return nil
}
