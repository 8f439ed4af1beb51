package grid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// readPDF reconstructs a table from positional glyph runs: runs are clustered
// into lines by Y, lines split into cells on horizontal gaps, and cell start
// positions across the whole document define the column boundaries. Tables
// from consecutive pages are concatenated vertically.
func (r *Reader) readPDF(path string) (*Grid, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	type run struct {
		startX float64
		text   string
	}
	var lines [][]run

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		if len(texts) == 0 {
			continue
		}
		// Top of page first; PDF Y grows upward.
		sort.SliceStable(texts, func(i, j int) bool {
			if texts[i].Y != texts[j].Y {
				return texts[i].Y > texts[j].Y
			}
			return texts[i].X < texts[j].X
		})

		const yTol = 3.0
		lineStart := 0
		for i := 1; i <= len(texts); i++ {
			if i < len(texts) && texts[lineStart].Y-texts[i].Y < yTol {
				continue
			}
			line := texts[lineStart:i]
			sort.SliceStable(line, func(a, b int) bool { return line[a].X < line[b].X })

			var cells []run
			var cur strings.Builder
			curStart := line[0].X
			prevEnd := line[0].X
			for _, t := range line {
				gap := t.X - prevEnd
				if cur.Len() > 0 && gap > cellGap(t.FontSize) {
					cells = append(cells, run{startX: curStart, text: strings.TrimSpace(cur.String())})
					cur.Reset()
					curStart = t.X
				}
				cur.WriteString(t.S)
				prevEnd = t.X + t.W
			}
			if cur.Len() > 0 {
				cells = append(cells, run{startX: curStart, text: strings.TrimSpace(cur.String())})
			}
			if len(cells) > 0 {
				lines = append(lines, cells)
			}
			lineStart = i
			if len(lines) >= r.MaxRows {
				break
			}
		}
		if len(lines) >= r.MaxRows {
			break
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no text content")
	}

	// Column boundaries from the clustered start positions of all cells.
	var starts []float64
	for _, line := range lines {
		for _, c := range line {
			starts = append(starts, c.startX)
		}
	}
	bounds := clusterPositions(starts, 15.0)

	var cells []Cell
	for rowIdx, line := range lines {
		for _, c := range line {
			if c.text == "" {
				continue
			}
			cells = append(cells, Cell{
				Row:   rowIdx,
				Col:   nearestColumn(bounds, c.startX),
				Value: c.text,
			})
		}
	}
	return New(cells), nil
}

func cellGap(fontSize float64) float64 {
	if fontSize > 8 {
		return fontSize
	}
	return 8
}

// clusterPositions merges sorted positions lying within tol of the cluster
// start and returns one representative per cluster.
func clusterPositions(pos []float64, tol float64) []float64 {
	if len(pos) == 0 {
		return nil
	}
	sort.Float64s(pos)
	bounds := []float64{pos[0]}
	for _, p := range pos[1:] {
		if p-bounds[len(bounds)-1] > tol {
			bounds = append(bounds, p)
		}
	}
	return bounds
}

func nearestColumn(bounds []float64, x float64) int {
	best := 0
	for i, b := range bounds {
		if x >= b-1 {
			best = i
		}
	}
	return best
}
