package omezarr

// Shared MemStore fixtures for store, array and reader tests.

const imageAttrs = `{
  "multiscales": [
    {
      "version": "0.4",
      "name": "test image",
      "axes": [
        {"name": "c", "type": "channel"},
        {"name": "y", "type": "space", "unit": "micrometer"},
        {"name": "x", "type": "space", "unit": "micrometer"}
      ],
      "datasets": [
        {
          "path": "0",
          "transformations": [
            {"scale": [1.0, 0.5, 0.5], "axisIndices": [0, 1, 2]}
          ]
        },
        {
          "path": "1",
          "transformations": [
            {"scale": [1.0, 1.0, 1.0], "axisIndices": [0, 1, 2]}
          ]
        }
      ]
    }
  ],
  "omero": {
    "channels": [
      {
        "label": "red",
        "color": "FF0000",
        "active": true,
        "window": {"start": 0, "end": 255, "min": 0, "max": 255}
      },
      {
        "label": "green",
        "color": "00FF00",
        "active": false,
        "window": {"start": 10, "end": 100, "min": 0, "max": 255}
      }
    ]
  }
}`

const labelAttrs = `{
  "multiscales": [
    {
      "version": "0.4",
      "axes": [
        {"name": "c", "type": "channel"},
        {"name": "y", "type": "space"},
        {"name": "x", "type": "space"}
      ],
      "datasets": [{"path": "0"}]
    }
  ],
  "image-label": {
    "version": "0.4",
    "colors": [
      {"label-value": 1, "rgba": [255, 0, 0, 255]},
      {"label-value": 2, "rgba": [0, 255, 0, 255]}
    ],
    "properties": [
      {"label-value": 1, "roiId": 10},
      {"label-value": 2, "roiId": 20, "shapeId": 99}
    ]
  }
}`

func zarrayDoc(shape, chunks, dtype string) string {
	return `{
  "zarr_format": 2,
  "shape": ` + shape + `,
  "chunks": ` + chunks + `,
  "dtype": "` + dtype + `",
  "compressor": null,
  "fill_value": 0,
  "order": "C"
}`
}

// newImageStore builds a two-level multi-channel image hierarchy with a
// "cells" label image underneath it.
func newImageStore() *MemStore {
	s := NewMemStore()
	s.SetString(".zgroup", `{"zarr_format": 2}`)
	s.SetString(".zattrs", imageAttrs)
	s.SetString("0/.zarray", zarrayDoc("[2, 4, 4]", "[2, 4, 4]", "|u1"))
	s.SetString("1/.zarray", zarrayDoc("[2, 2, 2]", "[2, 2, 2]", "|u1"))

	s.SetString("labels/.zgroup", `{"zarr_format": 2}`)
	s.SetString("labels/.zattrs", `{"labels": ["cells"]}`)
	s.SetString("labels/cells/.zgroup", `{"zarr_format": 2}`)
	s.SetString("labels/cells/.zattrs", labelAttrs)
	s.SetString("labels/cells/0/.zarray", zarrayDoc("[1, 4, 4]", "[1, 4, 4]", "|u1"))

	return s
}
