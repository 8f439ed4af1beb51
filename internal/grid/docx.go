package grid

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// readDOCX extracts tables from word/document.xml and keeps the single
// largest one by cell count. Supplier request documents typically contain one
// data table plus noise tables (letterheads, contact blocks), so the largest
// table is the canonical source.
func (r *Reader) readDOCX(path string) (*Grid, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer func() { _ = zr.Close() }()

	var doc io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return nil, fmt.Errorf("open document.xml: %w", err)
			}
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("word/document.xml not found")
	}
	defer func() { _ = doc.Close() }()

	tables, err := parseDocxTables(doc)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables in document")
	}

	var best [][]string
	bestSize := -1
	for _, t := range tables {
		size := 0
		for _, row := range t {
			size += len(row)
		}
		if size > bestSize {
			bestSize = size
			best = t
		}
	}

	var cells []Cell
	for rowIdx, row := range best {
		if rowIdx >= r.MaxRows {
			break
		}
		for colIdx, raw := range row {
			value := strings.TrimSpace(raw)
			if value == "" {
				continue
			}
			cells = append(cells, Cell{Row: rowIdx, Col: colIdx, Value: value})
		}
	}
	return New(cells), nil
}

// parseDocxTables walks the OOXML stream and collects top-level w:tbl tables
// as row/cell text matrices.
func parseDocxTables(r io.Reader) ([][][]string, error) {
	dec := xml.NewDecoder(r)

	var (
		tables   [][][]string
		table    [][]string
		row      []string
		cell     strings.Builder
		tblDepth int
		inRow    bool
		inCell   bool
		inText   bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					table = nil
				}
			case "tr":
				if tblDepth == 1 {
					inRow = true
					row = nil
				}
			case "tc":
				if tblDepth == 1 && inRow {
					inCell = true
					cell.Reset()
				}
			case "t":
				if inCell {
					inText = true
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tblDepth == 1 && len(table) > 0 {
					tables = append(tables, table)
				}
				tblDepth--
			case "tr":
				if tblDepth == 1 && inRow {
					table = append(table, row)
					inRow = false
				}
			case "tc":
				if tblDepth == 1 && inCell {
					row = append(row, cell.String())
					inCell = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cell.Write(t)
			}
		}
	}
	return tables, nil
}
