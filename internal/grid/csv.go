package grid

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// readCSV sniffs the delimiter from a leading sample and decodes cp1251 when
// the bytes are not valid UTF-8, which is the norm for exports from Russian
// 1C installations.
func (r *Reader) readCSV(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode cp1251: %w", err)
		}
		data = decoded
		r.Logger.Info("grid.csv.decoded_cp1251", "path", path)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	sep := sniffDelimiter(data)
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var cells []Cell
	rowIdx := 0
	for rowIdx < r.MaxRows {
		record, err := cr.Read()
		if err != nil {
			break
		}
		for colIdx, raw := range record {
			value := strings.TrimSpace(raw)
			if value == "" {
				continue
			}
			cells = append(cells, Cell{Row: rowIdx, Col: colIdx, Value: value})
		}
		rowIdx++
	}
	return New(cells), nil
}

// readTXT wraps a plain-text file into a one-column grid, one line per row.
func (r *Reader) readTXT(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if !utf8.Valid(data) {
		if decoded, err := charmap.Windows1251.NewDecoder().Bytes(data); err == nil {
			data = decoded
		}
	}
	return FromText(string(data)), nil
}

// sniffDelimiter counts candidate separators over a 1 KiB sample and picks
// the most frequent, falling back to comma.
func sniffDelimiter(data []byte) rune {
	sample := data
	if len(sample) > 1024 {
		sample = sample[:1024]
	}
	best := ','
	bestCount := bytes.Count(sample, []byte{','})
	for _, cand := range []byte{';', '\t'} {
		if n := bytes.Count(sample, []byte{cand}); n > bestCount {
			best = rune(cand)
			bestCount = n
		}
	}
	return best
}
