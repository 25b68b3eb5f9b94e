// pkg/extract/csv.go

// Package extract reads the raw tabular inputs and produces tagged row
// sets for the transformers. The first record of each file names the
// columns; empty cells become null, cells that parse as numbers are
// tagged as numbers, and everything else stays a string.
package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fleximart/retail-ingress/pkg/model"
)

// CSVSource reads the three raw datasets from a directory of CSV files.
type CSVSource struct {
	dir    string
	files  Files
	logger *zap.Logger
}

// Files names the three raw input files inside the data directory.
type Files struct {
	Customers string
	Products  string
	Sales     string
}

// NewCSVSource creates a source rooted at dir. Zero-valued file names fall
// back to the conventional <entity>_raw.csv.
func NewCSVSource(dir string, files Files, logger *zap.Logger) *CSVSource {
	if files.Customers == "" {
		files.Customers = "customers_raw.csv"
	}
	if files.Products == "" {
		files.Products = "products_raw.csv"
	}
	if files.Sales == "" {
		files.Sales = "sales_raw.csv"
	}
	return &CSVSource{
		dir:    dir,
		files:  files,
		logger: logger.Named("extract"),
	}
}

// Customers reads the raw customer rows.
func (s *CSVSource) Customers() ([]model.RawRow, error) {
	return s.read(s.files.Customers)
}

// Products reads the raw product rows.
func (s *CSVSource) Products() ([]model.RawRow, error) {
	return s.read(s.files.Products)
}

// Sales reads the raw sales transaction rows.
func (s *CSVSource) Sales() ([]model.RawRow, error) {
	return s.read(s.files.Sales)
}

func (s *CSVSource) read(name string) ([]model.RawRow, error) {
	path := filepath.Join(s.dir, name)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	s.logger.Info("Extracted raw rows",
		zap.String("file", name),
		zap.Int("rows", len(rows)))
	return rows, nil
}

// ReadRows parses CSV from r into tagged raw rows. The first record is the
// header; short records leave the trailing columns null.
func ReadRows(r io.Reader) ([]model.RawRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	// Strip a UTF-8 BOM on the first column name if present.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []model.RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", len(rows)+2, err)
		}

		row := make(model.RawRow, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i >= len(record) {
				row[col] = model.Null()
				continue
			}
			row[col] = tagCell(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// tagCell classifies one CSV cell: empty -> null, finite numeric -> number,
// anything else -> string. ParseFloat accepts "NaN" and "Inf" spellings, but
// those are not usable quantities; they stay strings so downstream coercion
// falls back instead of carrying a non-finite value.
func tagCell(cell string) model.Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return model.Null()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return model.Number(f)
	}
	return model.String(trimmed)
}
