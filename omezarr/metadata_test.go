package omezarr

import (
	"reflect"
	"testing"

	json "github.com/goccy/go-json"
)

func TestParseGroupAttrs(t *testing.T) {
	attrs, err := parseGroupAttrs([]byte(imageAttrs))
	if err != nil {
		t.Fatalf("parseGroupAttrs failed: %v", err)
	}

	if len(attrs.Multiscales) != 1 {
		t.Fatalf("expected 1 multiscale, got %d", len(attrs.Multiscales))
	}
	ms := attrs.Multiscales[0]
	if len(ms.Datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(ms.Datasets))
	}
	if ms.Datasets[0].Path != "0" {
		t.Errorf("dataset path: got %q", ms.Datasets[0].Path)
	}

	if attrs.Omero == nil || len(attrs.Omero.Channels) != 2 {
		t.Fatal("expected 2 omero channels")
	}
	if attrs.Omero.Channels[0].Label != "red" {
		t.Errorf("channel label: got %q", attrs.Omero.Channels[0].Label)
	}
}

func TestDecodeAxes(t *testing.T) {
	axes, err := decodeAxes(json.RawMessage(`[
		{"name": "t", "type": "time"},
		{"name": "c", "type": "channel"},
		{"name": "y", "type": "space", "unit": "micrometer"}
	]`))
	if err != nil {
		t.Fatalf("decodeAxes failed: %v", err)
	}

	want := []Axis{
		{Name: "t", Type: "time"},
		{Name: "c", Type: "channel"},
		{Name: "y", Type: "space", Unit: "micrometer"},
	}
	if !reflect.DeepEqual(axes, want) {
		t.Errorf("got %+v, want %+v", axes, want)
	}
}

func TestDecodeAxesLegacyStringsFail(t *testing.T) {
	// Pre-0.4 data declared axes as plain strings; that form cannot
	// carry axis types and must surface as an error, not as "no axes".
	if _, err := decodeAxes(json.RawMessage(`["t", "c", "y", "x"]`)); err == nil {
		t.Error("expected error for string-form axes")
	}
}

func TestDatasetTransformsDraftForm(t *testing.T) {
	ds := rawDataset{
		Transformations: []rawTransform{
			{Scale: []float64{0.2, 0.06, 0.06}, AxisIndices: []int{1, 2, 3}},
		},
	}

	got := ds.transforms()
	want := []Transform{{Scale: []float64{0.2, 0.06, 0.06}, AxisIndices: []int{1, 2, 3}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDatasetTransformsCoordinateForm(t *testing.T) {
	// v0.4 coordinateTransformations carry a full-length scale; the
	// axis indices are implied.
	ds := rawDataset{
		CoordinateTransformations: []rawTransform{
			{Type: "scale", Scale: []float64{1, 0.5, 0.5}},
			{Type: "translation", Scale: nil},
		},
	}

	got := ds.transforms()
	want := []Transform{{Scale: []float64{1, 0.5, 0.5}, AxisIndices: []int{0, 1, 2}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParsePropertyRowPreservesOrder(t *testing.T) {
	row, err := parsePropertyRow(json.RawMessage(
		`{"label-value": 2, "roiId": 20, "shapeId": 99, "area": 1.5}`))
	if err != nil {
		t.Fatalf("parsePropertyRow failed: %v", err)
	}

	if row.Label != 2 {
		t.Errorf("label: got %d, want 2", row.Label)
	}

	var names []string
	for _, f := range row.Fields {
		names = append(names, f.Name)
	}
	want := []string{"roiId", "shapeId", "area"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("field order: got %v, want %v", names, want)
	}
	if row.Fields[0].Value != float64(20) {
		t.Errorf("roiId: got %v", row.Fields[0].Value)
	}
}

func TestParsePropertyRowRejectsNonObject(t *testing.T) {
	if _, err := parsePropertyRow(json.RawMessage(`[1, 2]`)); err == nil {
		t.Error("expected error for non-object property row")
	}
}

func TestChannelMetadata(t *testing.T) {
	attrs, err := parseGroupAttrs([]byte(imageAttrs))
	if err != nil {
		t.Fatal(err)
	}

	var md NodeMetadata
	channelMetadata(attrs.Omero, &md)

	if !reflect.DeepEqual(md.Name, []string{"red", "green"}) {
		t.Errorf("names: got %v", md.Name)
	}
	if !reflect.DeepEqual(md.Visible, []bool{true, false}) {
		t.Errorf("visible: got %v", md.Visible)
	}
	wantCL := [][]float64{{0, 255}, {10, 100}}
	if !reflect.DeepEqual(md.ContrastLimits, wantCL) {
		t.Errorf("contrast limits: got %v, want %v", md.ContrastLimits, wantCL)
	}
	if len(md.Colormaps) != 2 {
		t.Fatalf("expected 2 colormap specs, got %d", len(md.Colormaps))
	}
	if md.Colormaps[0].IsWrapped() {
		t.Error("reader should produce raw ramps, not wrapped colormaps")
	}
}

func TestLabelMetadata(t *testing.T) {
	attrs, err := parseGroupAttrs([]byte(labelAttrs))
	if err != nil {
		t.Fatal(err)
	}

	var md NodeMetadata
	if err := labelMetadata(attrs.ImageLabel, &md); err != nil {
		t.Fatalf("labelMetadata failed: %v", err)
	}

	if len(md.Color) != 2 {
		t.Fatalf("expected 2 label colors, got %d", len(md.Color))
	}
	if md.Color[1][0] != 1 || md.Color[1][3] != 1 {
		t.Errorf("label 1 color: got %v", md.Color[1])
	}

	if len(md.Properties) != 2 {
		t.Fatalf("expected 2 property rows, got %d", len(md.Properties))
	}
	if md.Properties[0].Label != 1 || md.Properties[1].Label != 2 {
		t.Errorf("row labels: got %d, %d", md.Properties[0].Label, md.Properties[1].Label)
	}
}
