// priceload runs the price-list cascade over a supplier document and loads
// the extracted products into the catalog database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/supplyline/pricelist/internal/catalog"
	"github.com/supplyline/pricelist/internal/common"
	"github.com/supplyline/pricelist/internal/extract"
	"github.com/supplyline/pricelist/internal/llm"
	"github.com/supplyline/pricelist/internal/llm/openai"
)

func main() {
	var (
		supplier = flag.String("supplier", "", "supplier name to attribute the products to (required)")
		dryRun   = flag.Bool("dry-run", false, "extract and print, do not touch the catalog")
		timeout  = flag.Duration("timeout", 5*time.Minute, "overall run bound")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 || *supplier == "" {
		logger.Error("usage: priceload -supplier <name> [-dry-run] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	var gen llm.Generator
	if cfg.LLM.APIKey != "" {
		gen = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
	} else {
		logger.Warn("OPENAI_API_KEY is empty, running heuristic level only")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cascade := extract.NewPriceListCascade(cfg, gen, logger)
	start := time.Now()
	res := cascade.Run(ctx, path)

	for _, line := range res.Log {
		fmt.Fprintln(os.Stdout, line)
	}
	if !res.Success {
		logger.Error("extraction failed", "file", path, "error", res.Err,
			"elapsed_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}
	logger.Info("extraction.ok", "file", path, "method", res.FinalMethod,
		"products", len(res.Items), "elapsed_ms", time.Since(start).Milliseconds())

	if *dryRun {
		for _, p := range res.Items {
			price := "-"
			if p.Price != nil {
				price = fmt.Sprintf("%.2f", *p.Price)
			}
			fmt.Printf("%s\t%s\t%s\n", p.FullName, price, p.Stock)
		}
		return
	}

	store, err := catalog.Open(ctx, cfg.Catalog.Path, logger)
	if err != nil {
		logger.Error("open catalog", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	n, err := store.ReplaceForSupplier(ctx, *supplier, res.Items)
	if err != nil {
		logger.Error("load catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("done", "supplier", *supplier, "loaded", n)
}
