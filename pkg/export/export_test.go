package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"io"
	"testing"
)

func TestArchiveBundlesTables(t *testing.T) {
	data, err := Archive([]Table{
		{
			Name:   "donations",
			Header: []string{"id", "amount"},
			Rows:   [][]string{{"d1", "25000"}, {"d2", "100"}},
		},
		{
			Name:   "campaigns",
			Header: []string{"id", "title"},
			Rows:   [][]string{{"c1", "Solar lab, with commas"}},
		},
	})
	if err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 files, got %d", len(zr.File))
	}

	f, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("open donations.csv: %v", err)
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read donations.csv: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		t.Fatalf("parse donations.csv: %v", err)
	}
	if len(records) != 3 || records[1][0] != "d1" || records[2][1] != "100" {
		t.Fatalf("unexpected csv contents: %#v", records)
	}
	if zr.File[1].Name != "campaigns.csv" {
		t.Fatalf("second file = %q, want campaigns.csv", zr.File[1].Name)
	}
}
