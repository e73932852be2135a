package main

import (
	"encoding/csv"
	"io"
	"os"
	"path"
	"strconv"

	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-file/fileutil"
)

func saveGridExt(fname string, grid *rimg64.Multi) error {
	switch path.Ext(fname) {
	case ".csv":
		return saveGridCSV(fname, grid)
	default:
		return fileutil.SaveExt(fname, grid)
	}
}

func saveGridCSV(fname string, grid *rimg64.Multi) error {
	file, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer file.Close()
	return encodeGridCSV(file, grid)
}

// One record per descriptor element: row, col, dim, value.
func encodeGridCSV(w io.Writer, grid *rimg64.Multi) error {
	ww := csv.NewWriter(w)
	defer ww.Flush()
	for r := 0; r < grid.Height; r++ {
		for c := 0; c < grid.Width; c++ {
			for d := 0; d < grid.Channels; d++ {
				rec := formatRecord(r, c, d, grid.At(c, r, d))
				if err := ww.Write(rec); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func formatRecord(r, c, d int, x float64) []string {
	return []string{
		strconv.FormatInt(int64(r), 10),
		strconv.FormatInt(int64(c), 10),
		strconv.FormatInt(int64(d), 10),
		strconv.FormatFloat(x, 'g', -1, 64),
	}
}
