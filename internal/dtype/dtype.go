// Package dtype parses zarr dtype strings and converts raw chunk bytes
// into Go slices.
//
// Zarr v2 encodes element types as numpy-style strings: a byte-order
// character ('<' little-endian, '>' big-endian, '|' not applicable),
// a kind character ('b' boolean, 'i' signed, 'u' unsigned, 'f' float),
// and the element size in bytes. Only fixed-size numeric and boolean
// types are supported; structured and string dtypes are not.
package dtype

import (
	"encoding/binary"
	"fmt"
	"reflect"
)

// Kind is the element kind of a zarr dtype.
type Kind int

const (
	Bool Kind = iota
	Int
	Uint
	Float
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DType describes a parsed zarr element type.
type DType struct {
	Kind  Kind
	Size  int // element size in bytes
	Order binary.ByteOrder
}

// Parse parses a zarr dtype string such as "<f4", ">u2" or "|b1".
func Parse(s string) (DType, error) {
	if len(s) != 3 {
		return DType{}, fmt.Errorf("invalid dtype %q", s)
	}

	var order binary.ByteOrder
	switch s[0] {
	case '<', '|':
		order = binary.LittleEndian
	case '>':
		order = binary.BigEndian
	default:
		return DType{}, fmt.Errorf("invalid byte order in dtype %q", s)
	}

	var kind Kind
	switch s[1] {
	case 'b':
		kind = Bool
	case 'i':
		kind = Int
	case 'u':
		kind = Uint
	case 'f':
		kind = Float
	default:
		return DType{}, fmt.Errorf("unsupported dtype kind in %q", s)
	}

	var size int
	switch s[2] {
	case '1':
		size = 1
	case '2':
		size = 2
	case '4':
		size = 4
	case '8':
		size = 8
	default:
		return DType{}, fmt.Errorf("unsupported dtype size in %q", s)
	}

	switch kind {
	case Bool:
		if size != 1 {
			return DType{}, fmt.Errorf("invalid bool dtype %q", s)
		}
	case Float:
		if size != 4 && size != 8 {
			return DType{}, fmt.Errorf("unsupported float size in %q", s)
		}
	}

	return DType{Kind: kind, Size: size, Order: order}, nil
}

// GoType returns the Go type corresponding to this dtype.
func (dt DType) GoType() (reflect.Type, error) {
	switch dt.Kind {
	case Bool:
		return reflect.TypeOf(false), nil
	case Int:
		switch dt.Size {
		case 1:
			return reflect.TypeOf(int8(0)), nil
		case 2:
			return reflect.TypeOf(int16(0)), nil
		case 4:
			return reflect.TypeOf(int32(0)), nil
		case 8:
			return reflect.TypeOf(int64(0)), nil
		}
	case Uint:
		switch dt.Size {
		case 1:
			return reflect.TypeOf(uint8(0)), nil
		case 2:
			return reflect.TypeOf(uint16(0)), nil
		case 4:
			return reflect.TypeOf(uint32(0)), nil
		case 8:
			return reflect.TypeOf(uint64(0)), nil
		}
	case Float:
		switch dt.Size {
		case 4:
			return reflect.TypeOf(float32(0)), nil
		case 8:
			return reflect.TypeOf(float64(0)), nil
		}
	}
	return nil, fmt.Errorf("no Go type for dtype %v/%d", dt.Kind, dt.Size)
}
