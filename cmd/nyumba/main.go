// Command nyumba runs the rental platform API server and its operational
// helpers (migrations, admin bootstrap).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/nyumbahomes/nyumba/internal/config"
	"github.com/nyumbahomes/nyumba/internal/database"
	"github.com/nyumbahomes/nyumba/internal/handler"
	"github.com/nyumbahomes/nyumba/internal/logger"
	"github.com/nyumbahomes/nyumba/internal/middleware"
	"github.com/nyumbahomes/nyumba/internal/repository"
	"github.com/nyumbahomes/nyumba/internal/router"
	"github.com/nyumbahomes/nyumba/internal/server"
	"github.com/nyumbahomes/nyumba/internal/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nyumba",
		Short: "Nyumba Homes rental platform API",
	}

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		adminCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run database migrations and start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log, loggerService, err := logger.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer loggerService.Shutdown()

			return database.Migrate(cmd.Context(), log, cfg)
		},
	}
}

func adminCmd() *cobra.Command {
	var (
		email      string
		password   string
		superAdmin bool
	)

	cmd := &cobra.Command{
		Use:   "admin-create",
		Short: "Create a back-office admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			hash, err := service.HashPassword(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			conn, err := pgx.Connect(ctx, database.DSN(cfg))
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer conn.Close(ctx)

			var id string
			err = conn.QueryRow(ctx,
				`INSERT INTO admins (email, password_hash, super_admin) VALUES ($1, $2, $3) RETURNING id`,
				email, hash, superAdmin,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			fmt.Printf("created admin %s (%s)\n", email, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email address")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().BoolVar(&superAdmin, "super", false, "grant super admin rights")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, loggerService, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer loggerService.Shutdown()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancelMigrate()

	if err := database.Migrate(migrateCtx, log, cfg); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	s, err := server.New(cfg, log, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(s)
	services := service.NewServices(s, repos)
	middlewares := middleware.NewMiddlewares(s)
	handlers := handler.NewHandlers(s, services)

	e := router.Setup(s, handlers, middlewares)
	s.SetupHTTPServer(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
