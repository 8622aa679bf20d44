package layer

import (
	"fmt"

	"github.com/robert-malhotra/go-omezarr/omezarr"
	"github.com/robert-malhotra/go-omezarr/viz"
)

// Transform builds the deferred layer producer for a node iterator.
// The iterator is captured by reference and consumed on the first
// invocation; nodes without data levels produce no record.
func Transform(nodes *omezarr.NodeIterator) ReaderFunc {
	return func() ([]Data, error) {
		results := []Data{}

		for nodes.Next() {
			node := nodes.Node()
			if len(node.Data) == 0 {
				log.Debugf("skipping non-data node %q", node.Path())
				continue
			}
			log.Debugf("transforming node %q", node.Path())

			record, err := derive(node, results)
			if err != nil {
				return nil, err
			}
			results = append(results, record)
		}
		if err := nodes.Err(); err != nil {
			return nil, err
		}

		return results, nil
	}
}

// derive builds one layer record from a node with non-empty data.
// Earlier records are consulted for scale inheritance.
func derive(node *omezarr.Node, results []Data) (Data, error) {
	md := &Metadata{}
	data := node.Data

	channelAxis, err := findChannelAxis(node.Metadata)
	if err != nil {
		log.Errorf("error reading axes of %q: %v", node.Path(), err)
		return Data{}, fmt.Errorf("reading axes of %q: %w", node.Path(), err)
	}

	md.Scale = extractScale(node.Metadata.Transformations, channelAxis, data[0].Shape())

	// A node without its own scale inherits the first record's, so
	// label layers line up with the image layer that preceded them.
	if md.Scale == nil && len(results) > 0 && results[0].Metadata.Scale != nil {
		md.Scale = results[0].Metadata.Scale
	}

	kind := KindImage
	if node.IsLabel() {
		kind = KindLabels
		copyDisplayMetadata(md, node.Metadata)

		if channelAxis != nil {
			// Label arrays carry no independent channel dimension; a
			// declared channel axis is an artifact to collapse.
			squeezed := make([]*omezarr.Array, len(data))
			for i, level := range data {
				sq, err := level.Squeeze(*channelAxis)
				if err != nil {
					return Data{}, fmt.Errorf("squeezing channel axis of %q: %w", node.Path(), err)
				}
				squeezed[i] = sq
			}
			data = squeezed
		}
	} else if channelAxis != nil {
		md.ChannelAxis = channelAxis
		copyDisplayMetadata(md, node.Metadata)
	} else {
		extractSingleChannelMetadata(md, node.Metadata)
	}

	if node.Metadata.Properties != nil {
		md.Properties = pivotProperties(node.Metadata.Properties)
	}

	return Data{Data: data, Metadata: md, Kind: kind}, nil
}

// findChannelAxis locates the channel dimension among the node's axes.
// A nil result with a nil error means no channel axis is declared; an
// axes list that was present but undecodable is a hard failure.
func findChannelAxis(md omezarr.NodeMetadata) (*int, error) {
	if md.AxesErr != nil {
		return nil, md.AxesErr
	}
	for i, axis := range md.Axes {
		if axis.Type == omezarr.AxisTypeChannel {
			idx := i
			return &idx, nil
		}
	}
	return nil, nil
}

// extractScale derives per-dimension scale factors from the node's
// level-0 transforms. Dimensions absent from a transform's axis
// indices default to 1; the channel dimension contributes no entry.
// Only level 0 is consulted, and when several transforms carry scale
// information later ones overwrite earlier ones per dimension.
func extractScale(transforms [][]omezarr.Transform, channelAxis *int, shape []int) []float64 {
	if len(transforms) == 0 {
		return nil
	}

	scaleByAxis := map[int]float64{}
	found := false
	for _, tf := range transforms[0] {
		if len(tf.Scale) == 0 || len(tf.AxisIndices) == 0 {
			continue
		}
		found = true
		for i, axis := range tf.AxisIndices {
			if i < len(tf.Scale) {
				scaleByAxis[axis] = tf.Scale[i]
			}
		}
	}
	if !found {
		return nil
	}

	scale := make([]float64, 0, len(shape))
	for dim := range shape {
		if channelAxis != nil && dim == *channelAxis {
			continue
		}
		value, ok := scaleByAxis[dim]
		if !ok {
			value = 1
		}
		scale = append(scale, value)
	}
	if len(scale) == 0 {
		return nil
	}
	return scale
}

// copyDisplayMetadata copies the recognized display keys verbatim:
// label layers and multi-channel images keep the full per-channel
// lists. Colormap specs are normalized exactly once; an
// already-constructed colormap is never re-wrapped.
func copyDisplayMetadata(md *Metadata, nm omezarr.NodeMetadata) {
	if nm.Name != nil {
		md.Name = nm.Name
	}
	if nm.Visible != nil {
		md.Visible = nm.Visible
	}
	if nm.ContrastLimits != nil {
		md.ContrastLimits = nm.ContrastLimits
	}
	if nm.Colormaps != nil {
		md.Colormaps = resolveColormaps(nm.Colormaps)
	}
	if nm.Color != nil {
		md.Color = nm.Color
	}
	if nm.Extra != nil {
		md.Extra = nm.Extra
	}
}

// extractSingleChannelMetadata keeps only the first element of each
// per-channel list. Keys whose list is empty are omitted rather than
// failing the node.
func extractSingleChannelMetadata(md *Metadata, nm omezarr.NodeMetadata) {
	if len(nm.Name) > 0 {
		md.Name = nm.Name[:1]
	}
	if len(nm.Visible) > 0 {
		md.Visible = nm.Visible[:1]
	}
	if len(nm.ContrastLimits) > 0 {
		md.ContrastLimits = nm.ContrastLimits[:1]
	}
	if len(nm.Colormaps) > 0 {
		md.Colormaps = resolveColormaps(nm.Colormaps[:1])
	}
	// Color and Extra are keyed collections, not per-channel lists;
	// they have no meaningful first element and are omitted here.
}

func resolveColormaps(specs []viz.Spec) []*viz.Colormap {
	out := make([]*viz.Colormap, len(specs))
	for i, spec := range specs {
		out[i] = spec.Resolve()
	}
	return out
}
