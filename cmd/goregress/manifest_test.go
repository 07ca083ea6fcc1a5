package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleManifest = `
series:
  - name: NDX
    file: %s
    transform: pct_change
    as: ndx_ret
    endogenous: true
    date_column: DATE
    value_column: CLOSE
  - name: CPI
    file: %s
    transform: pct_change
    scale: 100
    as: inflation
start: 2020-01-01
end: 2020-12-31
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ndx := writeFile(t, dir, "ndx.csv",
		"DATE,CLOSE\n2020-01-31,9000\n2020-02-29,8500\n2020-03-31,7800\n")
	cpi := writeFile(t, dir, "cpi.csv",
		"date,value\n2020-01-31,258.7\n2020-02-29,258.8\n2020-03-31,257.9\n")
	manifestPath := writeFile(t, dir, "manifest.yaml",
		fmt.Sprintf(sampleManifest, ndx, cpi))

	m, err := loadManifest(manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Series) != 2 {
		t.Fatalf("parsed %d series, expected 2", len(m.Series))
	}
	if !m.Series[0].Endogenous || m.Series[0].As != "ndx_ret" {
		t.Errorf("first series lost its spec: %+v", m.Series[0])
	}
	if m.Series[1].Scale != 100 {
		t.Errorf("scale = %g, expected 100", m.Series[1].Scale)
	}
	if m.Start != "2020-01-01" || m.End != "2020-12-31" {
		t.Errorf("window = %q..%q", m.Start, m.End)
	}

	start := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	inputs, err := loadInputs(m, start, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) != 2 {
		t.Fatalf("loaded %d inputs, expected 2", len(inputs))
	}
	// January falls outside the window.
	if got := inputs[0].Series.Len(); got != 2 {
		t.Errorf("windowed series has %d rows, expected 2", got)
	}
	if inputs[0].Spec.ModelColumn() != "ndx_ret" {
		t.Errorf("model column = %q", inputs[0].Spec.ModelColumn())
	}
}

func TestManifestValidation(t *testing.T) {
	dir := t.TempDir()

	if _, err := loadManifest(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing manifest")
	}

	empty := writeFile(t, dir, "empty.yaml", "series: []\n")
	if _, err := loadManifest(empty); err == nil {
		t.Error("expected error for empty series list")
	}

	noFile := writeFile(t, dir, "nofile.yaml", "series:\n  - name: NDX\n")
	if _, err := loadManifest(noFile); err == nil {
		t.Error("expected error for series without file")
	}
}
