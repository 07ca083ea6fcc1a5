package timeseries

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	Name        string // Series name (default: value column name)
	DateColumn  string // Column name for dates (default: "date")
	ValueColumn string // Column name for values (default: "value")
	DateFormat  string // Date format (default: "2006-01-02")
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn:  "date",
		ValueColumn: "value",
		DateFormat:  "2006-01-02",
	}
}

// LoadCSV loads a time series from a CSV file with a header row. Blank, "NA",
// "NaN", and "null" cells load as missing values.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a time series from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	if opts.DateColumn == "" {
		opts.DateColumn = "date"
	}
	if opts.ValueColumn == "" {
		opts.ValueColumn = "value"
	}
	if opts.DateFormat == "" {
		opts.DateFormat = "2006-01-02"
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	dateIdx, valueIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.Trim(h, "\"")) {
		case opts.DateColumn:
			dateIdx = i
		case opts.ValueColumn:
			valueIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("date column %q not found in csv header", opts.DateColumn)
	}
	if valueIdx < 0 {
		return nil, fmt.Errorf("value column %q not found in csv header", opts.ValueColumn)
	}

	var (
		timestamps []time.Time
		values     []float64
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		if dateIdx >= len(record) || valueIdx >= len(record) {
			continue
		}

		dateStr := strings.TrimSpace(strings.Trim(record[dateIdx], "\""))
		ts, err := time.Parse(opts.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", dateStr, err)
		}

		valStr := strings.TrimSpace(strings.Trim(record[valueIdx], "\""))
		val := math.NaN()
		if valStr != "" && valStr != "NA" && valStr != "NaN" && valStr != "null" {
			val, err = strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, fmt.Errorf("parse value %q: %w", valStr, err)
			}
		}

		timestamps = append(timestamps, ts)
		values = append(values, val)
	}

	name := opts.Name
	if name == "" {
		name = opts.ValueColumn
	}
	return New(name, timestamps, values)
}
