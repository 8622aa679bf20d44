// Package layer adapts OME-Zarr hierarchies into the layer records a
// visualization host consumes: one (data levels, metadata, kind) record
// per image or label node.
package layer

import (
	"github.com/robert-malhotra/go-omezarr/omezarr"
	"github.com/robert-malhotra/go-omezarr/viz"
)

// Kind classifies a layer record.
type Kind string

const (
	KindImage  Kind = "image"
	KindLabels Kind = "labels"
)

// Data is one layer record: multiscale data levels (level 0 first),
// derived display metadata, and the layer kind.
type Data struct {
	Data     []*omezarr.Array
	Metadata *Metadata
	Kind     Kind
}

// ReaderFunc is the deferred computation returned for a supported
// path. Invoking it walks the node iterator once and builds the layer
// records; invoking it again after the iterator is exhausted yields an
// empty list.
type ReaderFunc func() ([]Data, error)

// Metadata is the typed display metadata of one layer. Nil fields were
// absent from the node's metadata.
//
// For a multi-channel image (ChannelAxis set) the per-channel fields
// hold one entry per channel. For a single-channel image they hold
// exactly one entry: the first element of the node's per-channel list.
// For labels they are copied verbatim.
type Metadata struct {
	// ChannelAxis is the index of the channel dimension within the
	// data's dimension ordering. Set only for multi-channel images.
	ChannelAxis *int

	// Scale holds one factor per non-channel data dimension, in
	// dimension order.
	Scale []float64

	Name           []string
	Visible        []bool
	ContrastLimits [][]float64
	Colormaps      []*viz.Colormap

	// Color maps label values to display colors (label layers).
	Color map[int64]viz.Color

	// Extra is arbitrary pass-through metadata.
	Extra map[string]interface{}

	// Properties is the pivoted per-object property table.
	Properties *PropertyTable
}

// SingleName returns the layer's name for single-channel consumption.
func (m *Metadata) SingleName() (string, bool) {
	if len(m.Name) == 0 {
		return "", false
	}
	return m.Name[0], true
}
