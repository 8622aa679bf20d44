package omezarr

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/robert-malhotra/go-omezarr/internal/chunk"
	"github.com/robert-malhotra/go-omezarr/internal/codec"
	"github.com/robert-malhotra/go-omezarr/internal/dtype"
)

// ArrayMeta is the zarr v2 .zarray metadata document.
type ArrayMeta struct {
	ZarrFormat         int             `json:"zarr_format"`
	Shape              []int           `json:"shape"`
	Chunks             []int           `json:"chunks"`
	DType              string          `json:"dtype"`
	Compressor         *codec.Config   `json:"compressor"`
	Filters            []*codec.Config `json:"filters"`
	FillValue          interface{}     `json:"fill_value"`
	Order              string          `json:"order"`
	DimensionSeparator string          `json:"dimension_separator"`
}

// Array is a zarr array within a hierarchy. Chunk data is read lazily:
// opening an array reads only its metadata.
type Array struct {
	store    Store
	path     string
	meta     ArrayMeta
	dt       dtype.DType
	pipeline *codec.Pipeline

	// shape is the externally visible shape; it differs from meta.Shape
	// only for squeezed views.
	shape []int
}

// openArray opens the array at path and validates its metadata.
func openArray(store Store, path string) (*Array, error) {
	data, err := store.Get(joinKey(path, zarrayKey))
	if notFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotArray, path)
	}
	if err != nil {
		return nil, err
	}

	var meta ArrayMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decoding %s for %q: %w", zarrayKey, path, err)
	}

	if len(meta.Shape) != len(meta.Chunks) {
		return nil, fmt.Errorf("array %q: shape rank %d does not match chunk rank %d",
			path, len(meta.Shape), len(meta.Chunks))
	}
	if meta.Order != "" && meta.Order != "C" {
		return nil, fmt.Errorf("%w: array order %q", ErrUnsupported, meta.Order)
	}

	dt, err := dtype.Parse(meta.DType)
	if err != nil {
		return nil, fmt.Errorf("array %q: %w", path, err)
	}

	pipeline, err := codec.NewPipeline(meta.Compressor, meta.Filters, dt.Size)
	if err != nil {
		return nil, fmt.Errorf("array %q: %w", path, err)
	}

	return &Array{
		store:    store,
		path:     path,
		meta:     meta,
		dt:       dt,
		pipeline: pipeline,
		shape:    meta.Shape,
	}, nil
}

// Path returns the array's hierarchy path.
func (a *Array) Path() string {
	return a.path
}

// Name returns the last component of the array's path.
func (a *Array) Name() string {
	return baseName(a.path)
}

// Shape returns the array's dimensions.
func (a *Array) Shape() []int {
	out := make([]int, len(a.shape))
	copy(out, a.shape)
	return out
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.shape)
}

// NumElements returns the total number of elements.
func (a *Array) NumElements() int {
	return chunk.NumElements(a.shape)
}

// DTypeString returns the zarr dtype string, e.g. "<u2".
func (a *Array) DTypeString() string {
	return a.meta.DType
}

// ElemSize returns the element size in bytes.
func (a *Array) ElemSize() int {
	return a.dt.Size
}

// Squeeze returns a view of the array with the given size-1 axis
// removed. Removing a size-1 axis does not reorder elements in C
// order, so reads go through the original chunk layout unchanged.
func (a *Array) Squeeze(axis int) (*Array, error) {
	if axis < 0 || axis >= len(a.shape) {
		return nil, fmt.Errorf("array %q: squeeze axis %d out of range", a.path, axis)
	}
	if a.shape[axis] != 1 {
		return nil, fmt.Errorf("array %q: cannot squeeze axis %d of size %d",
			a.path, axis, a.shape[axis])
	}

	view := *a
	view.shape = make([]int, 0, len(a.shape)-1)
	view.shape = append(view.shape, a.shape[:axis]...)
	view.shape = append(view.shape, a.shape[axis+1:]...)
	return &view, nil
}

// separator returns the chunk key separator ("." unless overridden).
func (a *Array) separator() string {
	if a.meta.DimensionSeparator != "" {
		return a.meta.DimensionSeparator
	}
	return "."
}

// ReadRaw reads the whole array into a C-order byte buffer. Missing
// chunks are filled with the array's fill value.
func (a *Array) ReadRaw() ([]byte, error) {
	total := chunk.NumElements(a.meta.Shape) * a.dt.Size
	buf := make([]byte, total)

	fill, err := dtype.EncodeFill(a.dt, a.meta.FillValue)
	if err != nil {
		return nil, fmt.Errorf("array %q: %w", a.path, err)
	}
	if !allZero(fill) {
		for off := 0; off < total; off += a.dt.Size {
			copy(buf[off:], fill)
		}
	}

	if len(a.meta.Shape) == 0 {
		// 0-D array: a single chunk keyed "0".
		if err := a.readChunkInto(buf, nil); err != nil {
			return nil, err
		}
		return buf, nil
	}

	grid := chunk.GridShape(a.meta.Shape, a.meta.Chunks)
	indices := make([]int, len(grid))
	for {
		if err := a.readChunkInto(buf, indices); err != nil {
			return nil, err
		}
		if !chunk.Next(indices, grid) {
			break
		}
	}

	return buf, nil
}

// readChunkInto reads one chunk and assembles it into the full buffer.
// A missing chunk is left at the fill value.
func (a *Array) readChunkInto(buf []byte, indices []int) error {
	key := joinKey(a.path, chunk.Key(indices, a.separator()))

	data, err := a.store.Get(key)
	if notFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	decoded, err := a.pipeline.Decode(data)
	if err != nil {
		return fmt.Errorf("chunk %s: %w", key, err)
	}

	want := chunk.NumElements(a.meta.Chunks) * a.dt.Size
	if len(decoded) < want {
		return fmt.Errorf("chunk %s: short data: have %d bytes, want %d", key, len(decoded), want)
	}

	chunk.Assemble(buf, decoded, a.meta.Shape, a.meta.Chunks, indices, a.dt.Size)
	return nil
}

// Read reads the whole array into dest, a pointer to a slice of the
// dtype's Go type.
func (a *Array) Read(dest interface{}) error {
	raw, err := a.ReadRaw()
	if err != nil {
		return err
	}
	return dtype.Convert(a.dt, raw, a.NumElements(), dest)
}

// ReadAll reads the whole array into its natural Go slice type.
func (a *Array) ReadAll() (interface{}, error) {
	raw, err := a.ReadRaw()
	if err != nil {
		return nil, err
	}
	return dtype.Decode(a.dt, raw, a.NumElements())
}

// ReadFloat64 reads the array as float64 values.
func (a *Array) ReadFloat64() ([]float64, error) {
	var result []float64
	err := a.Read(&result)
	return result, err
}

// ReadUint16 reads the array as uint16 values.
func (a *Array) ReadUint16() ([]uint16, error) {
	var result []uint16
	err := a.Read(&result)
	return result, err
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
