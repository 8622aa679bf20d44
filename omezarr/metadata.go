package omezarr

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/robert-malhotra/go-omezarr/viz"
)

// Axis is one entry of a multiscale image's axes list.
type Axis struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Unit string `json:"unit,omitempty"`
}

// AxisTypeChannel tags the channel dimension of an image.
const AxisTypeChannel = "channel"

// Transform is a per-level scale transform. Scale[i] applies to data
// dimension AxisIndices[i].
type Transform struct {
	Scale       []float64
	AxisIndices []int
}

// PropertyField is one field of a per-object property row. Field order
// within a row follows the JSON document.
type PropertyField struct {
	Name  string
	Value interface{}
}

// PropertyRow is the property set of one labelled object.
type PropertyRow struct {
	Label  int64
	Fields []PropertyField
}

// NodeMetadata is the typed metadata attached to a node. Nil slices and
// maps mean the key was absent from the node's attributes.
type NodeMetadata struct {
	// Axes describes the data dimensions. AxesErr is set instead when an
	// axes list was present but could not be decoded (for example the
	// legacy plain-string form); readers of Axes must treat that case as
	// a hard failure, not as "no axes".
	Axes    []Axis
	AxesErr error

	// Transformations holds one transform list per multiscale level,
	// level 0 first.
	Transformations [][]Transform

	// Per-channel display metadata, one entry per channel.
	Name           []string
	Visible        []bool
	ContrastLimits [][]float64
	Colormaps      []viz.Spec

	// Label display metadata.
	Color      map[int64]viz.Color
	Properties []PropertyRow

	// Extra is arbitrary pass-through metadata.
	Extra map[string]interface{}
}

// Raw JSON forms of the OME-NGFF attribute documents.

type rawTransform struct {
	Type        string    `json:"type"`
	Scale       []float64 `json:"scale"`
	AxisIndices []int     `json:"axisIndices"`
}

type rawDataset struct {
	Path                      string         `json:"path"`
	Transformations           []rawTransform `json:"transformations"`
	CoordinateTransformations []rawTransform `json:"coordinateTransformations"`
}

type rawMultiscale struct {
	Version  string          `json:"version"`
	Name     string          `json:"name"`
	Axes     json.RawMessage `json:"axes"`
	Datasets []rawDataset    `json:"datasets"`
}

type rawWindow struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type rawChannel struct {
	Label  string    `json:"label"`
	Color  string    `json:"color"`
	Window rawWindow `json:"window"`
	Active *bool     `json:"active"`
}

type rawOmero struct {
	Name     string       `json:"name"`
	Channels []rawChannel `json:"channels"`
}

type rawLabelColor struct {
	LabelValue int64     `json:"label-value"`
	RGBA       []float64 `json:"rgba"`
}

type rawImageLabel struct {
	Version    string            `json:"version"`
	Colors     []rawLabelColor   `json:"colors"`
	Properties []json.RawMessage `json:"properties"`
}

type groupAttrs struct {
	Multiscales []rawMultiscale `json:"multiscales"`
	Omero       *rawOmero       `json:"omero"`
	ImageLabel  *rawImageLabel  `json:"image-label"`
	Labels      []string        `json:"labels"`
}

func parseGroupAttrs(data []byte) (*groupAttrs, error) {
	attrs := &groupAttrs{}
	if err := json.Unmarshal(data, attrs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", zattrsKey, err)
	}
	return attrs, nil
}

// decodeAxes decodes a multiscale axes document into typed axes.
// Legacy string-form axes fail here and are reported through
// NodeMetadata.AxesErr.
func decodeAxes(raw json.RawMessage) ([]Axis, error) {
	var axes []Axis
	if err := json.Unmarshal(raw, &axes); err != nil {
		return nil, fmt.Errorf("decoding axes: %w", err)
	}
	return axes, nil
}

// transforms normalizes a dataset's transform list. The draft-form
// "transformations" key carries explicit axisIndices; the final v0.4
// "coordinateTransformations" key carries a full-length scale, which
// maps to the identity axis indices.
func (d *rawDataset) transforms() []Transform {
	raw := d.Transformations
	identity := false
	if len(raw) == 0 {
		raw = d.CoordinateTransformations
		identity = true
	}

	out := make([]Transform, 0, len(raw))
	for _, t := range raw {
		if t.Type != "" && t.Type != "scale" {
			continue
		}
		tf := Transform{Scale: t.Scale, AxisIndices: t.AxisIndices}
		if identity && len(tf.AxisIndices) == 0 && len(tf.Scale) > 0 {
			tf.AxisIndices = make([]int, len(tf.Scale))
			for i := range tf.AxisIndices {
				tf.AxisIndices[i] = i
			}
		}
		out = append(out, tf)
	}
	return out
}

// parsePropertyRow decodes one properties entry, preserving the order
// of its keys. The "label-value" key identifies the object and is not
// kept as a field.
func parsePropertyRow(raw json.RawMessage) (PropertyRow, error) {
	var row PropertyRow

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return row, fmt.Errorf("decoding property row: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return row, fmt.Errorf("property row is not an object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return row, fmt.Errorf("decoding property key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return row, fmt.Errorf("property key is not a string")
		}

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return row, fmt.Errorf("decoding property %q: %w", key, err)
		}

		if key == "label-value" {
			num, ok := value.(float64)
			if !ok {
				return row, fmt.Errorf("label-value is not a number")
			}
			row.Label = int64(num)
			continue
		}
		row.Fields = append(row.Fields, PropertyField{Name: key, Value: value})
	}

	return row, nil
}

// channelMetadata derives per-channel display metadata from an omero
// channel block. A channel whose color does not parse contributes a
// plain grayscale ramp.
func channelMetadata(omero *rawOmero, md *NodeMetadata) {
	if omero == nil || len(omero.Channels) == 0 {
		return
	}

	for _, ch := range omero.Channels {
		md.Name = append(md.Name, ch.Label)

		visible := true
		if ch.Active != nil {
			visible = *ch.Active
		}
		md.Visible = append(md.Visible, visible)

		md.ContrastLimits = append(md.ContrastLimits, []float64{ch.Window.Start, ch.Window.End})

		spec, err := viz.RampFromHex(ch.Color)
		if err != nil {
			spec = viz.Ramp(viz.Color{0, 0, 0, 1}, viz.Color{1, 1, 1, 1})
		}
		md.Colormaps = append(md.Colormaps, spec)
	}
}

// labelMetadata derives label display metadata from an image-label block.
func labelMetadata(il *rawImageLabel, md *NodeMetadata) error {
	if il == nil {
		return nil
	}

	if len(il.Colors) > 0 {
		md.Color = make(map[int64]viz.Color, len(il.Colors))
		for _, c := range il.Colors {
			var col viz.Color
			for i := 0; i < len(c.RGBA) && i < 4; i++ {
				col[i] = float32(c.RGBA[i]) / 255
			}
			md.Color[c.LabelValue] = col
		}
	}

	for _, raw := range il.Properties {
		row, err := parsePropertyRow(raw)
		if err != nil {
			return err
		}
		md.Properties = append(md.Properties, row)
	}
	return nil
}
