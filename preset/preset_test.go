package preset

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// customizerJSON exercises the JSON5 relaxations saved customizer
// files actually contain.
const customizerJSON = `{
	// two sets saved from the customizer, trailing commas and all
	"fileFormatVersion": "1",
	"parameterSets": {
		"low": {
			"teeth": 11,
			"gear_module": 1.25,
			"keyed": true,
			"type": "spur",
		},
		"high": {
			"teeth": 17,
			"dogged": false,
		},
	},
}
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	table, err := LoadJSON(writeFile(t, "presets.json", customizerJSON))
	if err != nil {
		t.Fatal(err)
	}
	want := []Set{
		{Name: "high", Params: Params{"teeth": "17", "dogged": "false"}},
		{Name: "low", Params: Params{"teeth": "11", "gear_module": "1.25", "keyed": "true", "type": "spur"}},
	}
	if !reflect.DeepEqual(table.Sets, want) {
		t.Errorf("got %+v, want %+v", table.Sets, want)
	}
	if names := table.Names(); !reflect.DeepEqual(names, []string{"high", "low"}) {
		t.Errorf("names %v", names)
	}
}

func TestLoadJSONBadValue(t *testing.T) {
	path := writeFile(t, "bad.json", `{"parameterSets": {"a": {"teeth": [1, 2]}}}`)
	_, err := LoadJSON(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported value type") {
		t.Errorf("got %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	want := &Table{Sets: []Set{
		{Name: "a", Params: Params{"teeth": "12", "type": "bevel"}},
		{Name: "b", Params: Params{"fork_angle": "140"}},
	}}
	path := filepath.Join(t.TempDir(), "out.json")
	if err := want.SaveJSON(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip changed the table:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "presets.csv", "preset,teeth,gear_width\nfirst,12,5\n,17,\n")
	table, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []Set{
		{Name: "first", Params: Params{"teeth": "12", "gear_width": "5"}},
		{Name: "model_1", Params: Params{"teeth": "17"}},
	}
	if !reflect.DeepEqual(table.Sets, want) {
		t.Errorf("got %+v, want %+v", table.Sets, want)
	}
}

func TestLoadCSVBadHeader(t *testing.T) {
	path := writeFile(t, "bad.csv", "name,teeth\nfirst,12\n")
	_, err := LoadCSV(path)
	if err == nil || !strings.Contains(err.Error(), "first column is") {
		t.Errorf("got %v", err)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	want := &Table{Sets: []Set{
		{Name: "one", Params: Params{"teeth": "12", "dog_angle": "28"}},
		{Name: "two", Params: Params{"teeth": "9"}},
	}}
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := want.SaveCSV(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip changed the table:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "in.json")
	csvPath := filepath.Join(dir, "out.csv")
	want := &Table{Sets: []Set{{Name: "only", Params: Params{"teeth": "13"}}}}
	if err := want.SaveJSON(jsonPath); err != nil {
		t.Fatal(err)
	}
	if err := Convert(jsonPath, csvPath); err != nil {
		t.Fatal(err)
	}
	got, err := Load(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if err := Convert(csvPath, filepath.Join(dir, "back.json5")); err != nil {
		t.Fatal(err)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := Load("table.yaml"); err == nil || !strings.Contains(err.Error(), "unsupported parameter file format") {
		t.Errorf("got %v", err)
	}
	empty := &Table{}
	if err := empty.Save("table.toml"); err == nil {
		t.Error("save to toml did not fail")
	}
}
