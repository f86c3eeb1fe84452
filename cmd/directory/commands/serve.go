package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sternrassler/employee-directory/internal/config"
	"github.com/Sternrassler/employee-directory/internal/server"
	"github.com/Sternrassler/employee-directory/pkg/client"
	"github.com/Sternrassler/employee-directory/pkg/loader"
	"github.com/Sternrassler/employee-directory/pkg/logging"
	"github.com/Sternrassler/employee-directory/pkg/screen"
	"github.com/Sternrassler/employee-directory/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the web front end command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Fetch the directory and serve the paginated table over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().String(config.KeyAddr, "", "listen address (default :8080)")
	cmd.Flags().String(config.KeyRedisAddr, "", "Redis address for session state; in-memory when empty")
	cmd.Flags().Duration(config.KeySessionTTL, 0, "idle session lifetime (default 30m)")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := logging.Setup(cfg.Logging())

	c, err := client.New(cfg.Client())
	if err != nil {
		return err
	}

	store, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	loaderLog := logging.NewLogger("loader")
	ld := loader.New(c, loader.NotifierFunc(func(message string) {
		loaderLog.Warn().Msg(message)
	}), loaderLog)
	ld.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(screen.New(ld, 0), ld, store, cfg.SessionTTL, logging.NewLogger("server"))

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", cfg.Addr).
			Str("endpoint", cfg.Endpoint).
			Msg("Starting directory server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down directory server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// newStore picks the Redis session store when an address is configured and
// the in-memory store otherwise.
func newStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (session.Store, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info().Msg("Using in-memory session store")
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	store := session.NewRedisStore(redisClient, cfg.SessionTTL, logging.NewLogger("session"))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		redisClient.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info().Str("redis", cfg.RedisAddr).Msg("Connected to Redis")

	return store, func() { redisClient.Close() }, nil
}
