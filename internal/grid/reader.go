package grid

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/supplyline/pricelist/internal/common"
)

// DefaultMaxRows bounds how many rows a reader captures. Real supplier files
// fit well inside this, and it keeps model-facing payloads bounded.
const DefaultMaxRows = 500

// Reader produces cell grids from files on disk.
type Reader struct {
	MaxRows int
	Logger  *slog.Logger
}

func NewReader(maxRows int, logger *slog.Logger) *Reader {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{MaxRows: maxRows, Logger: logger}
}

// Read dispatches on the file extension. Errors are wrapped as
// common.ErrReadFailure and never panic past this boundary.
func (r *Reader) Read(path string) (*Grid, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		g   *Grid
		err error
	)
	switch ext {
	case ".xlsx", ".xlsm":
		g, err = r.readXLSX(path)
	case ".csv":
		g, err = r.readCSV(path)
	case ".txt":
		g, err = r.readTXT(path)
	case ".pdf":
		g, err = r.readPDF(path)
	case ".docx":
		g, err = r.readDOCX(path)
	case ".xls":
		// Legacy BIFF format; no maintained pure-Go reader.
		err = fmt.Errorf("legacy .xls format is not supported, convert to .xlsx")
	default:
		err = fmt.Errorf("unsupported extension %q", ext)
	}
	if err != nil {
		r.Logger.Warn("grid.read.failed", "path", path, "ext", ext, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", common.ErrReadFailure, path, err)
	}
	if g.Len() == 0 {
		r.Logger.Warn("grid.read.empty", "path", path, "ext", ext)
		return nil, fmt.Errorf("%w: %s: no cells", common.ErrReadFailure, path)
	}

	r.Logger.Info("grid.read.ok",
		"path", path,
		"ext", ext,
		"cells", g.Len(),
		"rows", g.MaxRow()+1,
		"cols", g.MaxCol()+1,
	)
	return g, nil
}

// Styled reports whether the format carries styling signal (bold/merged).
// Plain CSV and text do not, which disqualifies them from spatial analysis.
func Styled(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls", ".pdf", ".docx":
		return true
	}
	return false
}

// FromText wraps free-form text into a one-column grid, one line per row.
// Used for inline client requests that arrive without a file.
func FromText(text string) *Grid {
	var cells []Cell
	row := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cells = append(cells, Cell{Row: row, Col: 0, Value: line})
		row++
	}
	return New(cells)
}
