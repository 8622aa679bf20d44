package omezarr

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// newSmallArrayStore builds a 3x3 uint8 array with 2x2 chunks. The
// bottom-right chunk is missing and covered by the fill value.
func newSmallArrayStore() *MemStore {
	s := NewMemStore()
	s.SetString("a/.zarray", `{
	  "zarr_format": 2,
	  "shape": [3, 3],
	  "chunks": [2, 2],
	  "dtype": "|u1",
	  "compressor": null,
	  "fill_value": 9,
	  "order": "C"
	}`)
	// Edge chunks are stored at the full chunk shape; the padding
	// bytes (0) fall outside the array and are ignored.
	s.Set("a/0.0", []byte{1, 2, 4, 5})
	s.Set("a/0.1", []byte{3, 0, 6, 0})
	s.Set("a/1.0", []byte{7, 8, 0, 0})
	return s
}

func TestArrayOpen(t *testing.T) {
	loc := NewLocation(newSmallArrayStore())

	a, err := loc.OpenArray("a")
	if err != nil {
		t.Fatalf("OpenArray failed: %v", err)
	}
	if !reflect.DeepEqual(a.Shape(), []int{3, 3}) {
		t.Errorf("shape: got %v", a.Shape())
	}
	if a.DTypeString() != "|u1" {
		t.Errorf("dtype: got %q", a.DTypeString())
	}
	if a.NumElements() != 9 {
		t.Errorf("elements: got %d", a.NumElements())
	}
}

func TestArrayOpenMissing(t *testing.T) {
	loc := NewLocation(NewMemStore())
	if _, err := loc.OpenArray("nope"); err == nil {
		t.Error("expected error opening a missing array")
	}
}

func TestArrayReadAssemblesChunksAndFill(t *testing.T) {
	loc := NewLocation(newSmallArrayStore())
	a, err := loc.OpenArray("a")
	if err != nil {
		t.Fatal(err)
	}

	var got []uint8
	if err := a.Read(&got); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	want := []uint8{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9, // 9 = fill value for the missing chunk
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestArrayReadCompressedChunk(t *testing.T) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write([]byte{10, 20, 30, 40}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	s := NewMemStore()
	s.SetString("z/.zarray", `{
	  "zarr_format": 2,
	  "shape": [2, 2],
	  "chunks": [2, 2],
	  "dtype": "|u1",
	  "compressor": {"id": "zlib", "level": 1},
	  "fill_value": 0,
	  "order": "C"
	}`)
	s.Set("z/0.0", buf.Bytes())

	a, err := NewLocation(s).OpenArray("z")
	if err != nil {
		t.Fatal(err)
	}

	var got []uint8
	if err := a.Read(&got); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	want := []uint8{10, 20, 30, 40}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestArrayDimensionSeparator(t *testing.T) {
	s := NewMemStore()
	s.SetString("n/.zarray", `{
	  "zarr_format": 2,
	  "shape": [2, 2],
	  "chunks": [2, 2],
	  "dtype": "|u1",
	  "compressor": null,
	  "fill_value": 0,
	  "order": "C",
	  "dimension_separator": "/"
	}`)
	s.Set("n/0/0", []byte{1, 2, 3, 4})

	a, err := NewLocation(s).OpenArray("n")
	if err != nil {
		t.Fatal(err)
	}

	var got []uint8
	if err := a.Read(&got); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !reflect.DeepEqual(got, []uint8{1, 2, 3, 4}) {
		t.Errorf("got %v", got)
	}
}

func TestArrayRejectsFortranOrder(t *testing.T) {
	s := NewMemStore()
	s.SetString("f/.zarray", `{
	  "zarr_format": 2,
	  "shape": [2, 2],
	  "chunks": [2, 2],
	  "dtype": "|u1",
	  "compressor": null,
	  "fill_value": 0,
	  "order": "F"
	}`)

	if _, err := NewLocation(s).OpenArray("f"); err == nil {
		t.Error("expected error for Fortran order")
	}
}

func TestArraySqueeze(t *testing.T) {
	loc := NewLocation(newImageStore())
	a, err := loc.OpenArray("labels/cells/0")
	if err != nil {
		t.Fatal(err)
	}

	sq, err := a.Squeeze(0)
	if err != nil {
		t.Fatalf("Squeeze failed: %v", err)
	}
	if !reflect.DeepEqual(sq.Shape(), []int{4, 4}) {
		t.Errorf("squeezed shape: got %v", sq.Shape())
	}

	// The original view is unchanged.
	if !reflect.DeepEqual(a.Shape(), []int{1, 4, 4}) {
		t.Errorf("original shape mutated: %v", a.Shape())
	}
}

func TestArraySqueezeInvalidAxis(t *testing.T) {
	loc := NewLocation(newImageStore())
	a, err := loc.OpenArray("0") // shape [2, 4, 4]
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.Squeeze(0); err == nil {
		t.Error("expected error squeezing an axis of size 2")
	}
	if _, err := a.Squeeze(5); err == nil {
		t.Error("expected error for out-of-range axis")
	}
}

func TestArraySqueezeReadsUnchangedData(t *testing.T) {
	s := NewMemStore()
	s.SetString("v/.zarray", `{
	  "zarr_format": 2,
	  "shape": [1, 2, 2],
	  "chunks": [1, 2, 2],
	  "dtype": "|u1",
	  "compressor": null,
	  "fill_value": 0,
	  "order": "C"
	}`)
	s.Set("v/0.0.0", []byte{1, 2, 3, 4})

	a, err := NewLocation(s).OpenArray("v")
	if err != nil {
		t.Fatal(err)
	}
	sq, err := a.Squeeze(0)
	if err != nil {
		t.Fatal(err)
	}

	var got []uint8
	if err := sq.Read(&got); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !reflect.DeepEqual(got, []uint8{1, 2, 3, 4}) {
		t.Errorf("got %v", got)
	}
}
