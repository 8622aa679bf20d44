// Package omezarr reads OME-Zarr image hierarchies: zarr v2 groups and
// arrays with OME-NGFF JSON metadata (multiscales, omero channels,
// image-label) describing multiscale images and their label images.
package omezarr

import "errors"

// Common errors
var (
	ErrNotZarr     = errors.New("not a zarr group")
	ErrKeyNotFound = errors.New("key not found")
	ErrNotGroup    = errors.New("object is not a group")
	ErrNotArray    = errors.New("object is not an array")
	ErrUnsupported = errors.New("unsupported feature")
)
