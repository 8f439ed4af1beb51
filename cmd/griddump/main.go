// griddump prints the normalized cell grid of a document, for inspecting
// what the extraction levels actually see.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/supplyline/pricelist/internal/grid"
)

func main() {
	var (
		asJSON  = flag.Bool("json", false, "emit the annotated cell list as JSON")
		maxRows = flag.Int("max-rows", grid.DefaultMaxRows, "row cap")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage: griddump [-json] <file>")
		os.Exit(2)
	}

	r := &grid.Reader{MaxRows: *maxRows, Logger: logger}
	g, err := r.Read(flag.Arg(0))
	if err != nil {
		logger.Error("read failed", "error", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(g.Cells()); err != nil {
			logger.Error("encode failed", "error", err)
			os.Exit(1)
		}
		return
	}

	for _, row := range g.RowIndices() {
		fmt.Printf("%d:", row)
		for _, c := range g.Row(row) {
			marker := ""
			if c.Bold {
				marker += "*"
			}
			if c.Merged {
				marker += "+"
			}
			fmt.Printf(" [%d]%s%q", c.Col, marker, c.Value)
		}
		fmt.Println()
	}
}
