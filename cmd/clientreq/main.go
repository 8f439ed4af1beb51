// clientreq runs the client-request cascade over a request document and,
// optionally, matches each extracted position against the catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/supplyline/pricelist/internal/catalog"
	"github.com/supplyline/pricelist/internal/common"
	"github.com/supplyline/pricelist/internal/extract"
	"github.com/supplyline/pricelist/internal/llm"
	"github.com/supplyline/pricelist/internal/llm/openai"
)

func main() {
	var (
		match   = flag.Bool("match", false, "look each position up in the catalog")
		topN    = flag.Int("top", 3, "matches to show per position")
		text    = flag.String("text", "", "inline request text instead of a file")
		timeout = flag.Duration("timeout", 5*time.Minute, "overall run bound")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if (*text == "" && flag.NArg() != 1) || (*text != "" && flag.NArg() != 0) {
		logger.Error("usage: clientreq [-match] [-top N] (<file> | -text <request text>)")
		os.Exit(2)
	}

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

	cascade := extract.NewClientRequestCascade(cfg, gen, logger)

	var res extract.Result[extract.RequestedItem]
	source := "inline"
	if *text != "" {
		res = cascade.RunText(ctx, *text)
	} else {
		source = filepath.Base(flag.Arg(0))
		res = cascade.Run(ctx, flag.Arg(0))
	}

	for _, line := range res.Log {
		fmt.Fprintln(os.Stderr, line)
	}
	if !res.Success {
		logger.Error("extraction failed", "source", source, "error", res.Err)
		os.Exit(1)
	}
	logger.Info("extraction.ok", "source", source, "method", res.FinalMethod, "items", len(res.Items))

	var store *catalog.Store
	if *match {
		var err error
		store, err = catalog.Open(ctx, cfg.Catalog.Path, logger)
		if err != nil {
			logger.Error("open catalog", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		if err := store.SaveRequestItems(ctx, source, res.Items); err != nil {
			logger.Warn("save request items", "error", err)
		}
	}

	for _, item := range res.Items {
		fmt.Printf("%s\tx%d\n", item.FullName, item.Quantity)
		if store == nil {
			continue
		}
		matches, err := store.Search(ctx, item.FullName, *topN)
		if err != nil {
			logger.Error("catalog search", "query", item.FullName, "error", err)
			continue
		}
		for _, m := range matches {
			price := "-"
			if m.Record.Price != nil {
				price = fmt.Sprintf("%.2f", *m.Record.Price)
			}
			fmt.Printf("  [%d] %s | %s | %s | остаток %s\n",
				m.Score, m.Record.Supplier, m.Record.Name, price, m.Record.Stock)
		}
	}
}
