package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
)

// Table is a named CSV sheet going into an export archive.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Archive renders each table as CSV and bundles them in a zip archive.
func Archive(tables []Table) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, table := range tables {
		w, err := zw.Create(table.Name + ".csv")
		if err != nil {
			return nil, err
		}
		cw := csv.NewWriter(w)
		if len(table.Header) > 0 {
			if err := cw.Write(table.Header); err != nil {
				return nil, err
			}
		}
		if err := cw.WriteAll(table.Rows); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
