// Package preset reads and writes the parameter tables that drive
// batch part generation. Tables come in two interchangeable formats:
// customizer JSON (parsed as relaxed JSON5) and flat CSV with one
// row per parameter set.
package preset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/titanous/json5"
)

// Params holds one parameter set as raw string values keyed by
// parameter name.
type Params map[string]string

// Set pairs a parameter set with the name its output file takes.
type Set struct {
	Name   string
	Params Params
}

// Table is an ordered collection of parameter sets.
type Table struct {
	Sets []Set
}

// Names returns the set names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Sets))
	for i, set := range t.Sets {
		names[i] = set.Name
	}
	return names
}

// customizerFile is the on-disk JSON layout written by the
// customizer and by SaveJSON.
type customizerFile struct {
	ParameterSets     map[string]map[string]interface{} `json:"parameterSets"`
	FileFormatVersion string                            `json:"fileFormatVersion"`
}

// LoadJSON reads a customizer table. JSON5 relaxations such as
// comments and trailing commas are accepted. Sets are ordered by
// name since JSON objects carry no order of their own.
func LoadJSON(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file customizerFile
	if err := json5.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	names := make([]string, 0, len(file.ParameterSets))
	for name := range file.ParameterSets {
		names = append(names, name)
	}
	sort.Strings(names)
	t := &Table{}
	for _, name := range names {
		params := make(Params, len(file.ParameterSets[name]))
		for k, v := range file.ParameterSets[name] {
			s, err := stringify(v)
			if err != nil {
				return nil, fmt.Errorf("%s: set %q, parameter %q: %w", path, name, k, err)
			}
			params[k] = s
		}
		t.Sets = append(t.Sets, Set{Name: name, Params: params})
	}
	return t, nil
}

// stringify flattens the scalar types a customizer file may hold.
func stringify(v interface{}) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	}
	return "", fmt.Errorf("unsupported value type %T", v)
}

// SaveJSON writes the table as a strict JSON customizer file.
func (t *Table) SaveJSON(path string) error {
	file := customizerFile{
		ParameterSets:     make(map[string]map[string]interface{}, len(t.Sets)),
		FileFormatVersion: "1",
	}
	for _, set := range t.Sets {
		params := make(map[string]interface{}, len(set.Params))
		for k, v := range set.Params {
			params[k] = v
		}
		file.ParameterSets[set.Name] = params
	}
	b, err := json.MarshalIndent(&file, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0666)
}

// nameColumn heads the CSV column holding set names.
const nameColumn = "preset"

// LoadCSV reads a flat table. The first column names each set and
// the remaining header cells name parameters. An empty cell means
// the parameter is absent from that row's set. Row order is kept.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	header := rows[0]
	if header[0] != nameColumn {
		return nil, fmt.Errorf("%s: first column is %q, want %q", path, header[0], nameColumn)
	}
	t := &Table{}
	for i, row := range rows[1:] {
		name := row[0]
		if name == "" {
			name = fmt.Sprintf("model_%d", i)
		}
		params := make(Params)
		for j := 1; j < len(row) && j < len(header); j++ {
			if row[j] != "" {
				params[header[j]] = row[j]
			}
		}
		t.Sets = append(t.Sets, Set{Name: name, Params: params})
	}
	return t, nil
}

// SaveCSV writes the table with one row per set. Columns are the
// union of parameter names across all sets, sorted, so sets with
// differing parameters share one header.
func (t *Table) SaveCSV(path string) error {
	seen := make(map[string]bool)
	header := []string{nameColumn}
	for _, set := range t.Sets {
		for k := range set.Params {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}
	sort.Strings(header[1:])
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	rows := [][]string{header}
	for _, set := range t.Sets {
		row := make([]string, len(header))
		row[0] = set.Name
		for j, k := range header[1:] {
			row[j+1] = set.Params[k]
		}
		rows = append(rows, row)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a table, picking the format from the file extension.
func Load(path string) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return LoadCSV(path)
	case ".json", ".json5":
		return LoadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported parameter file format %q", ext)
	}
}

// Save writes a table, picking the format from the file extension.
func (t *Table) Save(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return t.SaveCSV(path)
	case ".json", ".json5":
		return t.SaveJSON(path)
	default:
		return fmt.Errorf("unsupported parameter file format %q", ext)
	}
}

// Convert rewrites a table from one format to the other. It covers
// both the csv-to-json and json-to-csv directions.
func Convert(from, to string) error {
	t, err := Load(from)
	if err != nil {
		return err
	}
	return t.Save(to)
}
