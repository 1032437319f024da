package main

import (
	"context"
	"fmt"
	"os"

	"github.com/andresuchdata/autopo-forecast/internal/config"
	"github.com/andresuchdata/autopo-forecast/internal/repository/postgres"
	"github.com/andresuchdata/autopo-forecast/internal/service"
	"github.com/andresuchdata/autopo-forecast/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type contextKey string

const (
	serviceKey contextKey = "forecast_service"
	dbKey      contextKey = "db"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initService(c *cli.Context) error {
	db, err := sqlx.Connect("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	cfg := config.Load()
	wrapped := postgres.Wrap(db, cfg.Database.MaxConcurrentReads)

	svc := service.NewForecastService(
		postgres.NewSalesRepository(wrapped),
		postgres.NewInventoryRepository(wrapped),
		postgres.NewCatalogRepository(wrapped),
		cfg.Forecast,
	)

	c.Context = context.WithValue(c.Context, dbKey, db)
	c.Context = context.WithValue(c.Context, serviceKey, svc)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sqlx.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func forecastService(c *cli.Context) (*service.ForecastService, error) {
	svc, ok := c.Context.Value(serviceKey).(*service.ForecastService)
	if !ok || svc == nil {
		return nil, fmt.Errorf("forecast service not found in context")
	}
	return svc, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}

	app := &cli.App{
		Name:  "forecast",
		Usage: "Run demand forecasts and reorder recommendations against the sales ledger",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetLevel(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "sku",
				Usage: "Forecast a single SKU",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "SKU identifier",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "horizon",
						Usage: "Forecast horizon in days (0 uses the configured default)",
					},
					&cli.IntFlag{
						Name:  "lookback",
						Usage: "History lookback in days (0 uses the configured default)",
					},
				},
				Before: initService,
				After:  closeDB,
				Action: runSKU,
			},
			{
				Name:  "batch",
				Usage: "Forecast the top-selling SKUs",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{
						Name:  "horizon",
						Usage: "Forecast horizon in days (0 uses the configured default)",
					},
					&cli.IntFlag{
						Name:  "max-skus",
						Usage: "Number of top SKUs to forecast (0 uses the configured default)",
					},
				},
				Before: initService,
				After:  closeDB,
				Action: runBatch,
			},
			{
				Name:  "reorder",
				Usage: "List SKUs that need replenishment",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Write CSV instead of JSON",
					},
				},
				Before: initService,
				After:  closeDB,
				Action: runReorder,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("forecast command failed")
	}
}
