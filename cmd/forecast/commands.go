package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/andresuchdata/autopo-forecast/internal/service"
	"github.com/urfave/cli/v2"
)

func runSKU(c *cli.Context) error {
	svc, err := forecastService(c)
	if err != nil {
		return err
	}

	skuID := c.String("id")
	result, ok, err := svc.ForecastOne(c.Context, skuID, c.Int("horizon"), c.Int("lookback"))
	if err != nil {
		return fmt.Errorf("failed to forecast sku %s: %w", skuID, err)
	}
	if !ok {
		return cli.Exit(fmt.Sprintf("sku %s not found", skuID), 2)
	}

	return writeJSON(c.App.Writer, result)
}

func runBatch(c *cli.Context) error {
	svc, err := forecastService(c)
	if err != nil {
		return err
	}

	batch, err := svc.ForecastBatch(c.Context, c.Int("horizon"), c.Int("max-skus"))
	if err != nil {
		return fmt.Errorf("batch forecast failed: %w", err)
	}

	return writeJSON(c.App.Writer, batch)
}

func runReorder(c *cli.Context) error {
	svc, err := forecastService(c)
	if err != nil {
		return err
	}

	recs, err := svc.ReorderRecommendations(c.Context)
	if err != nil {
		return fmt.Errorf("failed to build reorder list: %w", err)
	}

	if c.Bool("csv") {
		return service.WriteReorderCSV(c.App.Writer, recs)
	}
	return writeJSON(c.App.Writer, recs)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
