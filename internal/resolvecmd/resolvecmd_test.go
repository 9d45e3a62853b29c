package resolvecmd

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/config"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/resolution"
)

const sourceCSV = `id,Title,authors,venue,year,address
conf/1,Deep learning survey,Y. LeCun,,2015,10 Main St.
conf/2,Graph databases,R. Angles,,2008,20 Oak Ave
`

const targetCSV = `Title,id,authors,venue,year,address
Deep Learning Survey!,sch-1,Yann LeCun,Nature,2015,10 main st
Query optimization,sch-2,Y. Ioannidis,,1996,
`

const dictionaryJSON = `{
  "title": {"features": ["Title"]},
  "authors": {"features": ["authors"]}
}`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func pipelineConfig(dir string) string {
	return fmt.Sprintf(`
paths:
  input_folder: %[1]s/input
  output_folder: %[1]s/output
  dictionary_folder: %[1]s/dictionaries
files:
  source_dataset: DBLP1.csv
  target_dataset: Scholar.csv
  entity_resolution_results_csv: entity_resolution_results.csv
  filtered_mapped_transformed_csv: filtered_mapped_transformed.csv
columns:
  address_column: address
schema:
  - name: id
    kind: structured
  - name: venue
    kind: textual
`, dir)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse %s: %v", path, err)
	}
	return records
}

func TestRunPipeline(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"input/DBLP1.csv":                   sourceCSV,
		"input/Scholar.csv":                 targetCSV,
		"dictionaries/updated_mapping.json": dictionaryJSON,
	})
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(pipelineConfig(dir)), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}

	summary, err := runPipeline(cfg)
	if err != nil {
		t.Fatalf("runPipeline failed: %v", err)
	}
	if summary == nil {
		t.Fatal("Expected a summary")
	}
	if summary.Rows != 4 {
		t.Errorf("Expected 4 rows, got %d", summary.Rows)
	}
	if _, ok := summary.Scores[resolution.JaroColumn]; !ok {
		t.Errorf("Expected %s statistics, got %v", resolution.JaroColumn, summary.Scores)
	}

	out := filepath.Join(dir, "output")
	for _, name := range []string{
		"entity_resolution_results.csv",
		"entity_resolution_results.xlsx",
		"entity_resolution_results_summary.yaml",
		"normalized_addresses.csv",
		"filtered_mapped_transformed.csv",
	} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}

	filtered := readCSV(t, filepath.Join(out, "filtered_mapped_transformed.csv"))
	if !reflect.DeepEqual(filtered[0], []string{"title", "authors"}) {
		t.Errorf("Expected mapped header [title authors], got %v", filtered[0])
	}

	ranked := readCSV(t, filepath.Join(out, "entity_resolution_results.csv"))
	header := ranked[0]
	if strings.Contains(strings.Join(header, ","), "venue") {
		t.Errorf("Expected sparse venue column to be dropped, got %v", header)
	}
	titleIdx := -1
	for i, h := range header {
		if h == "title" {
			titleIdx = i
		}
	}
	if titleIdx < 0 {
		t.Fatalf("Expected title column in %v", header)
	}
	// the two spellings of the same paper rank first
	if ranked[1][titleIdx] != "deep learning survey" || ranked[2][titleIdx] != "deep learning survey" {
		t.Errorf("Expected duplicates ranked first, got %q and %q", ranked[1][titleIdx], ranked[2][titleIdx])
	}
}

func TestRunPipelineEmptyInput(t *testing.T) {
	header := "id,title,authors\n"
	dir := writeFiles(t, map[string]string{
		"input/DBLP1.csv":   header,
		"input/Scholar.csv": header,
	})
	cfgPath := filepath.Join(dir, "config.yaml")
	cfgData := fmt.Sprintf("paths:\n  input_folder: %[1]s/input\n  output_folder: %[1]s/output\n", dir)
	if err := os.WriteFile(cfgPath, []byte(cfgData), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := executeRun(cfgPath, &buf); err != nil {
		t.Fatalf("executeRun failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "output"))
	if err != nil {
		t.Fatalf("Failed to read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no files for empty input, got %d", len(entries))
	}
}

func TestScoreCmd(t *testing.T) {
	dir := writeFiles(t, map[string]string{"DBLP1.csv": sourceCSV})
	output := filepath.Join(dir, "out", "ranked.csv")

	cmd := NewScoreCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{
		"--input", filepath.Join(dir, "DBLP1.csv"),
		"--output", output,
		"--address-column", "address",
		"--structured", "id",
		"--formats", "csv,parquet,sqlite",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("score failed: %v", err)
	}

	for _, ext := range []string{".csv", ".parquet", ".sqlite"} {
		path := strings.TrimSuffix(output, ".csv") + ext
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}
	if !strings.Contains(buf.String(), resolution.CosineColumn) {
		t.Errorf("Expected printed summary, got:\n%s", buf.String())
	}
}

func TestScoreOptionsDeclared(t *testing.T) {
	opts := scoreOptions{textual: []string{"title"}, structured: []string{"title"}}
	if _, err := opts.declared(); err == nil {
		t.Error("Expected error for a column declared twice")
	}
}

func TestDescribeCmd(t *testing.T) {
	dir := writeFiles(t, map[string]string{"DBLP1.csv": sourceCSV})
	yamlPath := filepath.Join(dir, "profile.yaml")

	cmd := NewDescribeCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--input", filepath.Join(dir, "DBLP1.csv"), "--output-yaml", yamlPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("describe failed: %v", err)
	}

	if !strings.Contains(buf.String(), "authors") {
		t.Errorf("Expected column listing, got:\n%s", buf.String())
	}
	if _, err := os.Stat(yamlPath); err != nil {
		t.Errorf("Expected %s to exist: %v", yamlPath, err)
	}
}

func TestMissingInput(t *testing.T) {
	cmd := NewScoreCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--input", "/nonexistent/file.csv"})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for a missing input file")
	}
}
