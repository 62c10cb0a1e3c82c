package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
	"golang.org/x/exp/slices"

	"github.com/thomhuang/MonumentsByPostcode/pkg/finder"
)

const SheetName = "Nearest"

// WriteJSON writes the nearest table as indented json.
func WriteJSON(w io.Writer, n *finder.Nearest) error {
	return WriteJSONValue(w, n)
}

func WriteJSONValue(w io.Writer, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not serialize nearest monuments: %w", err)
	}
	jsonData = append(jsonData, '\n')

	if _, err := w.Write(jsonData); err != nil {
		return fmt.Errorf("could not write nearest monuments json: %w", err)
	}
	return nil
}

// WriteXLSX writes the nearest table to a single sheet workbook, one column per
// attribute after the fixed columns.
func WriteXLSX(w io.Writer, n *finder.Nearest) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}

	attrs := attributeColumns(n.Rows)
	headers := []interface{}{
		"Index", "Name", "Distance (m)", "Centroid Easting", "Centroid Northing", "Centroid (km)",
	}
	for _, a := range attrs {
		headers = append(headers, a)
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}

	for i, r := range n.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			r.Index, r.Name, r.Distance, r.Centroid.X(), r.Centroid.Y(), r.CentroidKm,
		}
		for _, a := range attrs {
			row = append(row, r.Attributes[a])
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.Write(w)
}

func attributeColumns(rows []finder.Result) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, r := range rows {
		for k := range r.Attributes {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	slices.Sort(cols)
	return cols
}

// SaveFile creates path and hands it to write.
func SaveFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create output file %s: %w", path, err)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return err
	}
	return file.Close()
}
