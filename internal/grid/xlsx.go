package grid

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readXLSX captures the densest sheet of a workbook as a grid, including bold
// and merged flags. Supplier workbooks routinely carry cover or contact sheets
// next to the data sheet, so sheet choice goes by non-empty cell count.
func (r *Reader) readXLSX(path string) (*Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	bestSheet := sheets[0]
	bestCount := -1
	var bestRows [][]string
	for _, sh := range sheets {
		rows, err := f.GetRows(sh)
		if err != nil {
			continue
		}
		count := 0
		for i, row := range rows {
			if i >= r.MaxRows {
				break
			}
			for _, v := range row {
				if strings.TrimSpace(v) != "" {
					count++
				}
			}
		}
		if count > bestCount {
			bestCount = count
			bestSheet = sh
			bestRows = rows
		}
	}
	if bestRows == nil {
		return nil, fmt.Errorf("no readable sheet")
	}

	merged := mergedSet(f, bestSheet)
	boldCache := make(map[int]bool)

	var cells []Cell
	for rowIdx, row := range bestRows {
		if rowIdx >= r.MaxRows {
			break
		}
		for colIdx, raw := range row {
			value := strings.TrimSpace(raw)
			if value == "" {
				continue
			}
			cells = append(cells, Cell{
				Row:    rowIdx,
				Col:    colIdx,
				Value:  value,
				Bold:   r.cellBold(f, bestSheet, colIdx, rowIdx, boldCache),
				Merged: merged[[2]int{rowIdx, colIdx}],
			})
		}
	}
	return New(cells), nil
}

func (r *Reader) cellBold(f *excelize.File, sheet string, col, row int, cache map[int]bool) bool {
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false
	}
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return false
	}
	if b, ok := cache[styleID]; ok {
		return b
	}
	bold := false
	if style, err := f.GetStyle(styleID); err == nil && style != nil && style.Font != nil {
		bold = style.Font.Bold
	}
	cache[styleID] = bold
	return bold
}

// mergedSet marks every (row, col) covered by a merge range.
func mergedSet(f *excelize.File, sheet string) map[[2]int]bool {
	out := make(map[[2]int]bool)
	ranges, err := f.GetMergeCells(sheet)
	if err != nil {
		return out
	}
	for _, mg := range ranges {
		sc, sr, err1 := excelize.CellNameToCoordinates(mg.GetStartAxis())
		ec, er, err2 := excelize.CellNameToCoordinates(mg.GetEndAxis())
		if err1 != nil || err2 != nil {
			continue
		}
		for row := sr - 1; row <= er-1; row++ {
			for col := sc - 1; col <= ec-1; col++ {
				out[[2]int{row, col}] = true
			}
		}
	}
	return out
}
