// Package codec decodes zarr chunk payloads.
//
// A zarr v2 array encodes each chunk by applying its filters in order and
// its compressor last. Decoding therefore decompresses first and then
// applies the filters in reverse order.
package codec

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned for codecs this package cannot decode
// (notably blosc, which has no pure Go implementation).
var ErrUnsupported = errors.New("unsupported codec")

// Config is the numcodecs-style codec configuration from .zarray.
// Fields beyond ID are meaningful only for specific codecs.
type Config struct {
	ID          string `json:"id"`
	Level       int    `json:"level"`
	ElementSize int    `json:"elementsize"`
}

// Codec decodes a single encoding step.
type Codec interface {
	// ID returns the numcodecs identifier.
	ID() string

	// Decode reverses the codec's transformation.
	Decode(input []byte) ([]byte, error)
}

// New creates a codec from its configuration. elemSize is the array's
// element size in bytes, used by codecs whose configuration omits it.
func New(cfg *Config, elemSize int) (Codec, error) {
	switch cfg.ID {
	case "zlib":
		return &Zlib{}, nil
	case "gzip":
		return &Gzip{}, nil
	case "zstd":
		return &Zstd{}, nil
	case "shuffle":
		size := cfg.ElementSize
		if size <= 0 {
			size = elemSize
		}
		return &Shuffle{elemSize: size}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, cfg.ID)
	}
}

// Pipeline decodes a chunk through its compressor and filters.
type Pipeline struct {
	compressor Codec
	filters    []Codec
}

// NewPipeline builds a decode pipeline from .zarray codec configurations.
// Both compressor and filters may be nil or empty.
func NewPipeline(compressor *Config, filters []*Config, elemSize int) (*Pipeline, error) {
	p := &Pipeline{}

	if compressor != nil {
		c, err := New(compressor, elemSize)
		if err != nil {
			return nil, fmt.Errorf("creating compressor: %w", err)
		}
		p.compressor = c
	}

	for _, cfg := range filters {
		f, err := New(cfg, elemSize)
		if err != nil {
			return nil, fmt.Errorf("creating filter %q: %w", cfg.ID, err)
		}
		p.filters = append(p.filters, f)
	}

	return p, nil
}

// Decode decompresses input and applies the filters in reverse order.
func (p *Pipeline) Decode(input []byte) ([]byte, error) {
	data := input

	if p.compressor != nil {
		var err error
		data, err = p.compressor.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s decode: %w", p.compressor.ID(), err)
		}
	}

	for i := len(p.filters) - 1; i >= 0; i-- {
		var err error
		data, err = p.filters[i].Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s decode: %w", p.filters[i].ID(), err)
		}
	}

	return data, nil
}

// Empty returns true if the pipeline performs no transformation.
func (p *Pipeline) Empty() bool {
	return p.compressor == nil && len(p.filters) == 0
}
