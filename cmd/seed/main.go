package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dealexpress/dealexpress-api/config"
	"github.com/dealexpress/dealexpress-api/internal/application"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
	pginfra "github.com/dealexpress/dealexpress-api/internal/infrastructure/postgres"
	"github.com/dealexpress/dealexpress-api/pkg/helpers"
)

var (
	// flags
	verbose bool

	logger *logrus.Logger
	pool   *pgxpool.Pool
	repos  repository.Set

	authService *application.AuthService
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose mode")
}

var RootCmd = cobra.Command{
	Use:   "seed",
	Short: "Bootstrap DealExpress accounts",
	Long:  "Creates administrators and assigns roles directly in the database, outside the HTTP API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg := config.Load()

		logger = helpers.NewNopLogger()
		if verbose {
			logger = helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
		}

		var err error
		pool, err = pginfra.NewPool(cmd.Context(), poolConfig(cfg, cfg.AppName+"-seed"))
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		repos = pginfra.NewRepositories(pool)
		authService = application.NewAuthService(repos.Users, helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL), logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if pool != nil {
			pool.Close()
		}
	},
}

func main() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func poolConfig(cfg *config.Config, app string) pginfra.PoolConfig {
	return pginfra.PoolConfig{
		DSN:         cfg.PostgresDSN(),
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
		AppName:     app,
	}
}
